package store

import (
	"strconv"

	"photokeeper/internal/client/models"
)

// OwnerScope restricts an image view to the current user's uploads.
type OwnerScope string

const (
	ScopeAll  OwnerScope = "all"
	ScopeMine OwnerScope = "mine"
)

// FilterImages is the pure selector algorithm: owner predicate and group
// predicate compose as AND, source order is preserved, and the input list
// is never mutated. ScopeMine with a nil user matches nothing.
func FilterImages(list []models.Image, scope OwnerScope, groupFilter int64, user *models.User) []models.Image {
	out := make([]models.Image, 0, len(list))
	for _, img := range list {
		if scope == ScopeMine && !img.Owner.MatchesUser(user) {
			continue
		}
		if groupFilter != NoGroup && !img.InGroup(groupFilter) {
			continue
		}
		out = append(out, img)
	}
	return out
}

// filterMemo caches the last FilterImages result keyed on the input tuple,
// so unchanged inputs return a referentially stable slice and subscribers
// can skip redundant re-renders.
type filterMemo struct {
	valid  bool
	key    filterKey
	result []models.Image
}

type filterKey struct {
	version uint64
	scope   OwnerScope
	group   int64
	user    string
}

func userKey(u *models.User) string {
	if u == nil {
		return ""
	}
	return strconv.FormatInt(u.ID, 10) + "/" + u.Username
}

// FilteredImages derives the visible image list from the container's list,
// its filter criteria and the given current user. Memoized: calling twice
// with unchanged inputs returns the identical slice. Performs no I/O.
func (s *Images) FilteredImages(user *models.User) []models.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := filterKey{
		version: s.version,
		scope:   s.ownerFilter,
		group:   s.groupFilter,
		user:    userKey(user),
	}
	if s.memo.valid && s.memo.key == key {
		return s.memo.result
	}

	s.memo = filterMemo{
		valid:  true,
		key:    key,
		result: FilterImages(s.list, s.ownerFilter, s.groupFilter, user),
	}
	return s.memo.result
}

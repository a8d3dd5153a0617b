package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"photokeeper/internal/client/api"
	"photokeeper/internal/client/models"
	"photokeeper/internal/logging"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Op names one of the independent concerns the images container tracks.
// Each has its own status and error slot.
type Op int

const (
	OpList Op = iota
	OpDetail
	OpUpload
	OpUpdate
	OpDelete
	OpGroups
	opCount
)

// NoGroup is the group-filter value meaning "no group filter".
const NoGroup int64 = 0

// Images holds the photo list, the per-item detail slot, the selection set,
// the group list and the filter criteria. The list is the single source of
// truth for every rendered view; derived views are pure filters over it.
type Images struct {
	mu  sync.Mutex
	api api.API
	log logging.Logger

	slots [opCount]slot

	list    []models.Image
	version uint64    // bumped on every list mutation; selector memo key
	listReq uuid.UUID // tag of the latest list request; stale responses are dropped

	current  *models.Image
	cache    *ristretto.Cache
	cacheTTL time.Duration

	selected map[int64]struct{}

	groups      []models.Group
	groupFilter int64
	ownerFilter OwnerScope

	memo filterMemo
}

// NewImages builds the images container. cacheTTL bounds how long a detail
// record is served from the local cache before it is re-fetched.
func NewImages(client api.API, log logging.Logger, cacheTTL time.Duration) (*Images, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("detail cache: %w", err)
	}
	return &Images{
		api:         client,
		log:         log,
		cache:       cache,
		cacheTTL:    cacheTTL,
		selected:    make(map[int64]struct{}),
		ownerFilter: ScopeAll,
	}, nil
}

// StatusOf returns the status and last error of one concern.
func (s *Images) StatusOf(op Op) (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slots[op]
	if sl.status == "" {
		return StatusIdle, sl.err
	}
	return sl.status, sl.err
}

// ResetStatus returns one concern's slot to idle (e.g. when leaving an
// upload form).
func (s *Images) ResetStatus(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[op].reset()
}

// List returns a copy of the in-memory image list, most recent upload
// first.
func (s *Images) List() []models.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Image, len(s.list))
	copy(out, s.list)
	return out
}

// Current returns a copy of the image in the detail slot, or nil.
func (s *Images) Current() *models.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	img := *s.current
	return &img
}

// Groups returns a copy of the group list.
func (s *Images) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// ListImages replaces the in-memory list from the backend, scoped
// server-side to the current user when scope is ScopeMine. Concurrent
// calls: the newest request wins; an older response that resolves after a
// newer request was issued is discarded without touching state.
func (s *Images) ListImages(ctx context.Context, scope OwnerScope) error {
	req := uuid.New()
	s.mu.Lock()
	s.listReq = req
	s.slots[OpList].begin()
	s.mu.Unlock()

	images, err := s.api.ListImages(ctx, scope == ScopeMine)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listReq != req {
		s.log.Info(ctx, "dropping stale image list response", "request", req)
		return nil
	}
	if err != nil {
		s.slots[OpList].fail(err)
		return err
	}
	s.list = images
	s.version++
	s.slots[OpList].succeed()
	return nil
}

// GetImageDetail loads one image into the detail slot. List entries can be
// incomplete, so the full record comes from the cache when fresh, from the
// detail endpoint otherwise.
func (s *Images) GetImageDetail(ctx context.Context, id int64) error {
	if v, ok := s.cache.Get(id); ok {
		if img, ok := v.(models.Image); ok {
			s.mu.Lock()
			s.current = &img
			s.slots[OpDetail].succeed()
			s.mu.Unlock()
			return nil
		}
	}

	s.mu.Lock()
	s.slots[OpDetail].begin()
	s.mu.Unlock()

	img, err := s.api.GetImage(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.slots[OpDetail].fail(err)
		s.mu.Unlock()
		return err
	}

	s.cache.SetWithTTL(id, *img, 1, s.cacheTTL)
	s.cache.Wait()

	s.mu.Lock()
	s.current = img
	s.slots[OpDetail].succeed()
	s.mu.Unlock()
	return nil
}

// ClearCurrentImage resets the detail slot so no stale detail leaks into
// the next navigation.
func (s *Images) ClearCurrentImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.slots[OpDetail].reset()
}

// UploadImage sends the multipart upload and, on success, prepends the new
// image to the list (most-recent-first), deduplicating by id.
func (s *Images) UploadImage(ctx context.Context, req api.UploadRequest) (*models.Image, error) {
	s.mu.Lock()
	s.slots[OpUpload].begin()
	s.mu.Unlock()

	img, err := s.api.UploadImage(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.slots[OpUpload].fail(err)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	if s.indexOf(img.ID) < 0 {
		s.list = append([]models.Image{*img}, s.list...)
		s.version++
	}
	s.slots[OpUpload].succeed()
	s.mu.Unlock()
	return img, nil
}

// UpdateImage patches name/description and synchronizes both slots that may
// hold the image: the list entry and, when it is the one being viewed, the
// detail slot.
func (s *Images) UpdateImage(ctx context.Context, id int64, upd api.ImageUpdate) error {
	s.mu.Lock()
	s.slots[OpUpdate].begin()
	s.mu.Unlock()

	img, err := s.api.UpdateImage(ctx, id, upd)
	if err != nil {
		s.mu.Lock()
		s.slots[OpUpdate].fail(err)
		s.mu.Unlock()
		return err
	}
	s.applyUpdated(img)
	return nil
}

// UpdateImageGroups patches only the image's group membership, with the
// same dual-slot synchronization as UpdateImage.
func (s *Images) UpdateImageGroups(ctx context.Context, id int64, groupIDs []int64) error {
	s.mu.Lock()
	s.slots[OpUpdate].begin()
	s.mu.Unlock()

	img, err := s.api.SetImageGroups(ctx, id, groupIDs)
	if err != nil {
		s.mu.Lock()
		s.slots[OpUpdate].fail(err)
		s.mu.Unlock()
		return err
	}
	s.applyUpdated(img)
	return nil
}

func (s *Images) applyUpdated(img *models.Image) {
	s.cache.Del(img.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(img.ID); i >= 0 {
		s.list[i] = *img
		s.version++
	}
	if s.current != nil && s.current.ID == img.ID {
		s.current = img
	}
	s.slots[OpUpdate].succeed()
}

// DeleteImage deletes one image and removes every local trace of it: the
// list entry, its selection mark, the detail slot if it was being viewed,
// and its cache entry.
func (s *Images) DeleteImage(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.slots[OpDelete].begin()
	s.mu.Unlock()

	if err := s.api.DeleteImage(ctx, id); err != nil {
		s.mu.Lock()
		s.slots[OpDelete].fail(err)
		s.mu.Unlock()
		return err
	}

	s.cache.Del(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.list = append(s.list[:i:i], s.list[i+1:]...)
		s.version++
	}
	delete(s.selected, id)
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.slots[OpDelete].succeed()
	return nil
}

// BulkDelete deletes the given ids concurrently. Each id is an independent
// delete: successes are applied as they resolve and are not rolled back
// when a sibling fails. The call reports failure if any id failed.
func (s *Images) BulkDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	// A plain Group, not WithContext: one failed delete must not cancel
	// the others.
	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			return s.DeleteImage(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		err = fmt.Errorf("bulk delete: %w", err)
		s.mu.Lock()
		s.slots[OpDelete].fail(err)
		s.mu.Unlock()
		return err
	}
	s.ClearSelection()
	return nil
}

// ListGroups replaces the in-memory group list.
func (s *Images) ListGroups(ctx context.Context) error {
	s.mu.Lock()
	s.slots[OpGroups].begin()
	s.mu.Unlock()

	groups, err := s.api.ListGroups(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.slots[OpGroups].fail(err)
		return err
	}
	s.groups = groups
	s.slots[OpGroups].succeed()
	return nil
}

// CreateGroup validates the name locally, creates the group, and appends it
// to the group list.
func (s *Images) CreateGroup(ctx context.Context, name, description string) (*models.Group, error) {
	candidate := models.Group{Name: name, Description: description}
	if err := candidate.Validate(); err != nil {
		s.mu.Lock()
		s.slots[OpGroups].fail(err)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.slots[OpGroups].begin()
	s.mu.Unlock()

	g, err := s.api.CreateGroup(ctx, name, description)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.slots[OpGroups].fail(err)
		return nil, err
	}
	s.groups = append(s.groups, *g)
	s.slots[OpGroups].succeed()
	return g, nil
}

// UpdateGroup renames/redescribes a group and replaces the matching list
// entry.
func (s *Images) UpdateGroup(ctx context.Context, id int64, name, description string) error {
	candidate := models.Group{Name: name, Description: description}
	if err := candidate.Validate(); err != nil {
		s.mu.Lock()
		s.slots[OpGroups].fail(err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.slots[OpGroups].begin()
	s.mu.Unlock()

	g, err := s.api.UpdateGroup(ctx, id, name, description)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.slots[OpGroups].fail(err)
		return err
	}
	for i := range s.groups {
		if s.groups[i].ID == g.ID {
			s.groups[i] = *g
			break
		}
	}
	s.slots[OpGroups].succeed()
	return nil
}

// DeleteGroup removes a group. A matching group filter is reset; the group
// ids inside each image are left alone; the backend already dropped the
// association and the next list refresh reconciles it.
func (s *Images) DeleteGroup(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.slots[OpGroups].begin()
	s.mu.Unlock()

	if err := s.api.DeleteGroup(ctx, id); err != nil {
		s.mu.Lock()
		s.slots[OpGroups].fail(err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.groups[:0]
	for _, g := range s.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.groups = kept
	if s.groupFilter == id {
		s.groupFilter = NoGroup
	}
	s.slots[OpGroups].succeed()
	return nil
}

// ToggleSelection flips one image's membership in the bulk-selection set.
// Pure local mutation; toggling twice restores the original set.
func (s *Images) ToggleSelection(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// ClearSelection empties the selection set (mode exit, bulk delete done).
func (s *Images) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[int64]struct{})
}

// SelectAll marks every image in the current list.
func (s *Images) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, img := range s.list {
		s.selected[img.ID] = struct{}{}
	}
}

// SelectedIDs returns the selection as a sorted slice.
func (s *Images) SelectedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsSelected reports membership in the selection set.
func (s *Images) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// SetGroupFilter sets the group filter; NoGroup clears it. Pure local
// mutation.
func (s *Images) SetGroupFilter(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupFilter = id
}

// GroupFilter returns the active group filter, or NoGroup.
func (s *Images) GroupFilter() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groupFilter
}

// SetOwnerFilter sets the owner scope. Pure local mutation.
func (s *Images) SetOwnerFilter(scope OwnerScope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerFilter = scope
}

// OwnerFilter returns the active owner scope.
func (s *Images) OwnerFilter() OwnerScope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerFilter
}

// indexOf returns the list index of id, or -1. Callers hold s.mu.
func (s *Images) indexOf(id int64) int {
	for i := range s.list {
		if s.list[i].ID == id {
			return i
		}
	}
	return -1
}

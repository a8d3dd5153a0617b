package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type ownerKind int

const (
	ownerNone ownerKind = iota
	ownerByID
	ownerByName
)

// Owner identifies the uploader of an image. The backend serializes it
// inconsistently: as a numeric user id, as a username string (sometimes a
// numeric string), or as null. Owner keeps the distinction explicit instead
// of carrying an untyped value around.
type Owner struct {
	kind ownerKind
	id   int64
	name string
}

// NoOwner returns the absent owner (serialized as null).
func NoOwner() Owner { return Owner{} }

// OwnerByID returns an owner referenced by user id.
func OwnerByID(id int64) Owner { return Owner{kind: ownerByID, id: id} }

// OwnerByName returns an owner referenced by username.
func OwnerByName(name string) Owner { return Owner{kind: ownerByName, name: name} }

// IsNone reports whether no owner is set.
func (o Owner) IsNone() bool { return o.kind == ownerNone }

// MatchesUser reports whether the owner refers to u. An id reference matches
// on u.ID. A name reference first tries numeric coercion against u.ID (the
// backend occasionally emits ids as strings) and falls back to a username
// comparison. The absent owner matches nobody.
func (o Owner) MatchesUser(u *User) bool {
	if u == nil {
		return false
	}
	switch o.kind {
	case ownerByID:
		return o.id == u.ID
	case ownerByName:
		if id, err := strconv.ParseInt(o.name, 10, 64); err == nil {
			return id == u.ID
		}
		return o.name == u.Username
	default:
		return false
	}
}

func (o Owner) String() string {
	switch o.kind {
	case ownerByID:
		return strconv.FormatInt(o.id, 10)
	case ownerByName:
		return o.name
	default:
		return "-"
	}
}

func (o Owner) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case ownerByID:
		return json.Marshal(o.id)
	case ownerByName:
		return json.Marshal(o.name)
	default:
		return []byte("null"), nil
	}
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = NoOwner()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("owner: %w", err)
		}
		*o = OwnerByName(s)
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	*o = OwnerByID(id)
	return nil
}

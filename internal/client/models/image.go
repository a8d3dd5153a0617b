package models

import (
	"errors"
	"fmt"
	"time"
)

// Image is a photo as the backend serves it. List responses may omit some
// metadata (e.g. Size); the detail endpoint returns the complete record.
type Image struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image"`
	ThumbnailURL string    `json:"thumbnail,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	Size         int64     `json:"size,omitempty"`
	Owner        Owner     `json:"owner"`
	Groups       []int64   `json:"groups"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InGroup reports whether the image belongs to the given group.
// Group membership is a soft reference: ids may point at groups that were
// deleted since the last list refresh.
func (i *Image) InGroup(groupID int64) bool {
	for _, g := range i.Groups {
		if g == groupID {
			return true
		}
	}
	return false
}

const maxGroupNameLen = 100

var ErrInvalidGroupName = errors.New("group name must be 1-100 characters")

// Group is a named collection of images. Deleting a group never deletes the
// images in it, only the association.
type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the constraints the backend enforces on group names, so a
// bad name can be rejected before the round trip.
func (g *Group) Validate() error {
	if g.Name == "" || len(g.Name) > maxGroupNameLen {
		return fmt.Errorf("%w (got %d)", ErrInvalidGroupName, len(g.Name))
	}
	return nil
}

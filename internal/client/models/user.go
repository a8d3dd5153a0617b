// Package models defines the photo-gallery entities exchanged with the
// backend: users, images, groups, and the owner reference attached to images.
package models

// User is the account entity returned by the registration, profile and
// user-listing endpoints. Optional fields may be absent depending on the
// endpoint that produced the value.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// DisplayName returns the full name when available, the username otherwise.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

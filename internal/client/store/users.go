package store

import (
	"context"
	"sync"

	"photokeeper/internal/client/api"
	"photokeeper/internal/client/models"
	"photokeeper/internal/logging"
)

// Users holds the browsable user directory: the list plus a detail slot,
// each with its own status. Decoupled from Auth, which owns the session's
// own user.
type Users struct {
	mu  sync.Mutex
	api api.API
	log logging.Logger

	listSlot   slot
	detailSlot slot
	list       []models.User
	current    *models.User
}

func NewUsers(client api.API, log logging.Logger) *Users {
	return &Users{api: client, log: log}
}

// ListStatus returns the list slot's status and last error.
func (s *Users) ListStatus() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listSlot.status == "" {
		return StatusIdle, s.listSlot.err
	}
	return s.listSlot.status, s.listSlot.err
}

// DetailStatus returns the detail slot's status and last error.
func (s *Users) DetailStatus() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailSlot.status == "" {
		return StatusIdle, s.detailSlot.err
	}
	return s.detailSlot.status, s.detailSlot.err
}

// List returns a copy of the user list.
func (s *Users) List() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.list))
	copy(out, s.list)
	return out
}

// Current returns a copy of the user in the detail slot, or nil.
func (s *Users) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// ListUsers replaces the in-memory user list.
func (s *Users) ListUsers(ctx context.Context) error {
	s.mu.Lock()
	s.listSlot.begin()
	s.mu.Unlock()

	users, err := s.api.ListUsers(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.listSlot.fail(err)
		return err
	}
	s.list = users
	s.listSlot.succeed()
	return nil
}

// GetUser loads one user into the detail slot.
func (s *Users) GetUser(ctx context.Context, username string) error {
	s.mu.Lock()
	s.detailSlot.begin()
	s.mu.Unlock()

	u, err := s.api.GetUser(ctx, username)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.detailSlot.fail(err)
		return err
	}
	s.current = u
	s.detailSlot.succeed()
	return nil
}

// ClearCurrentUser resets the detail slot when leaving a detail view.
func (s *Users) ClearCurrentUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.detailSlot.reset()
}

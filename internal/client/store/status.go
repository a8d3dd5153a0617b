// Package store implements the client-side state layer: normalized
// containers for session, images and users, and the derived selectors over
// them. Containers are explicit injectable values, not package globals;
// every mutation happens through their methods, serialized by a mutex.
package store

import (
	"errors"

	"photokeeper/internal/client/api"
)

// Status is the lifecycle of one asynchronous operation.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// slot tracks one operation's status together with its last error message.
// The images container keeps an independent slot per concern so that, for
// example, an in-progress upload never blocks detail viewing.
type slot struct {
	status Status
	err    string
}

func (s *slot) begin() {
	s.status = StatusLoading
	s.err = ""
}

func (s *slot) succeed() {
	s.status = StatusSucceeded
	s.err = ""
}

func (s *slot) fail(err error) {
	s.status = StatusFailed
	s.err = errText(err)
}

func (s *slot) reset() {
	s.status = StatusIdle
	s.err = ""
}

// errText normalizes an operation error into the single display string the
// containers store. API errors contribute their extracted message; anything
// else falls back to Error().
func errText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

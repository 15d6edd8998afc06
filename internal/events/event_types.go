package events

import (
	"time"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventAdminLoggedIn  EventType = "admin_logged_in"
	EventLoggedOut      EventType = "logged_out"
	EventLoginFailed    EventType = "login_failed"
)

// Event represents an auth lifecycle event emitted by services.
type Event struct {
	ID        string               `json:"id"`
	Type      EventType            `json:"type"`
	Principal domain.PrincipalType `json:"principal"`
	SubjectID string               `json:"subject_id,omitempty"`
	Email     string               `json:"email,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

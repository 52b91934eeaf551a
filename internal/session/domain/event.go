package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const aggregateNameSession = "session"

var (
	EventTypeLoggedIn       = fmt.Sprintf("%s.logged_in", aggregateNameSession)
	EventTypeTokenRefreshed = fmt.Sprintf("%s.token_refreshed", aggregateNameSession)
	EventTypeSessionExpired = fmt.Sprintf("%s.expired", aggregateNameSession)
	EventTypeLoggedOut      = fmt.Sprintf("%s.logged_out", aggregateNameSession)
)

type (
	EventLoggedIn struct {
		EventID     uuid.UUID `json:"eventID"`
		DisplayName string    `json:"displayName"`
	}

	EventTokenRefreshed struct {
		EventID uuid.UUID `json:"eventID"`
	}

	// EventSessionExpired tells observers the user has to log in again at LoginPath.
	EventSessionExpired struct {
		EventID   uuid.UUID `json:"eventID"`
		LoginPath string    `json:"loginPath"`
	}

	EventLoggedOut struct {
		EventID uuid.UUID `json:"eventID"`
	}
)

func (e EventLoggedIn) ID() uuid.UUID {
	return e.EventID
}

func (e EventLoggedIn) Type() string {
	return EventTypeLoggedIn
}

func (e EventTokenRefreshed) ID() uuid.UUID {
	return e.EventID
}

func (e EventTokenRefreshed) Type() string {
	return EventTypeTokenRefreshed
}

func (e EventSessionExpired) ID() uuid.UUID {
	return e.EventID
}

func (e EventSessionExpired) Type() string {
	return EventTypeSessionExpired
}

func (e EventLoggedOut) ID() uuid.UUID {
	return e.EventID
}

func (e EventLoggedOut) Type() string {
	return EventTypeLoggedOut
}

package domain

import "time"

// Workspace scopes all tracked data. Its identity comes from startup
// configuration, never from lazy creation inside business logic.
type Workspace struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

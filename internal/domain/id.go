package domain

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID string for use as an entity identifier.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// IsValidID reports whether s parses as a ULID.
func IsValidID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

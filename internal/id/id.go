package id

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run returns a new time-ordered run identifier (UUID v7).
func Run() string {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return u.String()
}

// Short returns the first eight hex characters of an identifier,
// for compact log fields.
func Short(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

// RunTime extracts the creation time from a run identifier.
func RunTime(id string) (time.Time, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("run id %q is version %d, expected 7", id, u.Version())
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}

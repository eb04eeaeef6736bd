// Package calendarsync pushes scheduled entities to an external calendar.
// Tasks, approved leave and menu slots map to all-day events; a per-entity
// mapping row remembers the pushed event and a fingerprint of its payload.
package calendarsync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Event is the calendar payload pushed for an entity. Start and End are
// calendar dates; End is exclusive, as all-day calendar events expect.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Fingerprint returns a stable hash of the event payload. Matching
// fingerprints mean the remote event is already current.
func Fingerprint(e Event) string {
	payload := fmt.Sprintf("%s|%s|%s|%s",
		e.Summary, e.Description,
		e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

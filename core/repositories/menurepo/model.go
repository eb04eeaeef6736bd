package menurepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
)

// MenuEntry represents one slot of a weekly menu: a recipe planned for a
// weekday of a given week. A week is keyed by its start date (the Sunday
// on or before any day in it, matching the service's Sunday=0 weekday
// numbering).
type MenuEntry struct {
	EntryID   string    `db:"entry_id" json:"entry_id"`
	WeekStart time.Time `db:"week_start" json:"week_start"`
	Weekday   int       `db:"weekday" json:"weekday"`
	RecipeID  string    `db:"recipe_id" json:"recipe_id"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SetMenuEntry contains fields for planning a slot. Writing the same
// (week, weekday) twice replaces the slot.
type SetMenuEntry struct {
	WeekStart time.Time
	Weekday   int
	RecipeID  string
	Note      *string
}

// WeekStartOf returns the Sunday on or before t, date-normalized.
func WeekStartOf(t time.Time) time.Time {
	d := recurrence.Date(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

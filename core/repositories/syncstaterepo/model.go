package syncstaterepo

import "time"

// Set of syncable entity types.
const (
	EntityTask  = "task"
	EntityLeave = "leave"
	EntityMenu  = "menu"
)

// ValidEntityType reports whether t is a known syncable entity type.
func ValidEntityType(t string) bool {
	return t == EntityTask || t == EntityLeave || t == EntityMenu
}

// Set of sync job statuses.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobDone       = "done"
	JobFailed     = "failed"
)

// EventMapping links a local entity to the calendar event pushed for it.
// The fingerprint is a hash of the last pushed payload; an unchanged
// fingerprint means the push can be skipped.
type EventMapping struct {
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    string    `db:"entity_id" json:"entity_id"`
	EventID     string    `db:"event_id" json:"event_id"`
	Fingerprint string    `db:"fingerprint" json:"fingerprint"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SyncJob is one unit of outbox work: push the current state of an entity
// to the calendar.
type SyncJob struct {
	JobID      string    `db:"job_id" json:"job_id"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   string    `db:"entity_id" json:"entity_id"`
	Status     string    `db:"status" json:"status"`
	Attempts   int       `db:"attempts" json:"attempts"`
	LastError  *string   `db:"last_error" json:"last_error,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// GetID satisfies the worker pool's task contract.
func (j SyncJob) GetID() string {
	return j.JobID
}

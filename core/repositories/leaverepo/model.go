package leaverepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
)

// Set of leave request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// Set of leave types.
const (
	TypeVacation = "vacation"
	TypeSick     = "sick"
	TypePersonal = "personal"
)

// ValidType reports whether t is a known leave type.
func ValidType(t string) bool {
	return t == TypeVacation || t == TypeSick || t == TypePersonal
}

// LeaveRequest represents a member's request for a span of days off.
type LeaveRequest struct {
	LeaveID   string     `db:"leave_id" json:"leave_id"`
	UserID    string     `db:"user_id" json:"user_id"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   time.Time  `db:"end_date" json:"end_date"`
	Type      string     `db:"type" json:"type"`
	Status    string     `db:"status" json:"status"`
	Reason    *string    `db:"reason" json:"reason,omitempty"`
	DecidedBy *string    `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateLeaveRequest contains fields for filing a new leave request.
type CreateLeaveRequest struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Type      string
	Reason    *string
}

// LeaveBalance tracks a member's allotted and used leave days for one year.
type LeaveBalance struct {
	UserID       string    `db:"user_id" json:"user_id"`
	Year         int       `db:"year" json:"year"`
	AllottedDays int       `db:"allotted_days" json:"allotted_days"`
	UsedDays     int       `db:"used_days" json:"used_days"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Remaining returns the days left in the balance.
func (b LeaveBalance) Remaining() int {
	return b.AllottedDays - b.UsedDays
}

// DaySpan returns the inclusive number of calendar days a request covers.
// Time-of-day on either bound is ignored.
func DaySpan(start, end time.Time) int {
	s := recurrence.Date(start)
	e := recurrence.Date(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

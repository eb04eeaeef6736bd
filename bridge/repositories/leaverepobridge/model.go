package leaverepobridge

import (
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

// CreateLeaveRequestBody carries fields for filing a leave request. Dates
// use the YYYY-MM-DD calendar form, inclusive on both ends.
type CreateLeaveRequestBody struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Type      string  `json:"type"`
	Reason    *string `json:"reason"`
}

func (r CreateLeaveRequestBody) Validate() error {
	start, err := validation.ParseCalendarDate(r.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := validation.ParseCalendarDate(r.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date before start_date")
	}
	if !leaverepo.ValidType(r.Type) {
		return fmt.Errorf("unknown leave type: %q", r.Type)
	}
	return nil
}

func (r CreateLeaveRequestBody) toRepo(userID string) leaverepo.CreateLeaveRequest {
	start, _ := validation.ParseCalendarDate(r.StartDate)
	end, _ := validation.ParseCalendarDate(r.EndDate)
	return leaverepo.CreateLeaveRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Type:      r.Type,
		Reason:    r.Reason,
	}
}

// SetAllotmentRequest carries an admin's yearly allotment for a member.
type SetAllotmentRequest struct {
	Year         int `json:"year"`
	AllottedDays int `json:"allotted_days"`
}

func (r SetAllotmentRequest) Validate() error {
	if r.Year < 2000 || r.Year > 2200 {
		return fmt.Errorf("year out of range: %d", r.Year)
	}
	if r.AllottedDays < 0 {
		return fmt.Errorf("allotted_days cannot be negative")
	}
	return nil
}

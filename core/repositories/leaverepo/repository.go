// Package leaverepo provides access to leave request and leave balance
// storage.
package leaverepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

var (
	// ErrAlreadyDecided is returned when deciding a request that is no
	// longer pending.
	ErrAlreadyDecided = errors.New("leave request already decided")

	// ErrInvalidRange is returned when a request's end precedes its start.
	ErrInvalidRange = errors.New("leave end date precedes start date")

	// ErrInsufficientBalance is returned when approving a request would
	// overdraw the member's balance for the year.
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)

// Storer defines the data storage interface for leave requests and
// balances.
type Storer interface {
	Create(ctx context.Context, input CreateLeaveRequest) (LeaveRequest, error)
	Get(ctx context.Context, leaveID string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter, orderBy fop.By, page fop.PageStringCursor) ([]LeaveRequest, error)
	Delete(ctx context.Context, leaveID string) error

	// Decide flips a pending request to approved or denied; when approving
	// it debits debitDays from the balance row (userID, year) in the same
	// transaction.
	Decide(ctx context.Context, leaveID, status, deciderID string, debitDays, year int) (LeaveRequest, error)

	GetBalance(ctx context.Context, userID string, year int) (LeaveBalance, error)
	UpsertAllotment(ctx context.Context, userID string, year, allottedDays int) (LeaveBalance, error)
	ListBalances(ctx context.Context, year int) ([]LeaveBalance, error)
}

// Repository provides access to leave storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Leave repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Request files a new pending leave request.
func (r *Repository) Request(ctx context.Context, input CreateLeaveRequest) (LeaveRequest, error) {
	if !ValidType(input.Type) {
		return LeaveRequest{}, fmt.Errorf("invalid leave type %q", input.Type)
	}
	if DaySpan(input.StartDate, input.EndDate) == 0 {
		return LeaveRequest{}, ErrInvalidRange
	}

	request, err := r.storer.Create(ctx, input)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("create leave request: %w", err)
	}

	r.log.Info(ctx, "leave requested", "leave_id", request.LeaveID, "user_id", request.UserID,
		"days", DaySpan(request.StartDate, request.EndDate))
	return request, nil
}

// Get retrieves a leave request by id.
func (r *Repository) Get(ctx context.Context, leaveID string) (LeaveRequest, error) {
	request, err := r.storer.Get(ctx, leaveID)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("get leave request %s: %w", leaveID, err)
	}
	return request, nil
}

// List retrieves leave requests matching the filter.
func (r *Repository) List(ctx context.Context, filter LeaveFilter, orderBy fop.By, page fop.PageStringCursor) ([]LeaveRequest, error) {
	requests, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return requests, nil
}

// Approve transitions a pending request to approved and debits the
// member's balance for the year the leave starts in. Only approved
// requests ever debit a balance.
func (r *Repository) Approve(ctx context.Context, leaveID, deciderID string) (LeaveRequest, error) {
	request, err := r.storer.Get(ctx, leaveID)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("get leave request %s: %w", leaveID, err)
	}
	if request.Status != StatusPending {
		return LeaveRequest{}, ErrAlreadyDecided
	}

	days := DaySpan(request.StartDate, request.EndDate)
	year := request.StartDate.Year()

	// A missing balance row means no allotment is being enforced for the
	// member; the debit below will create the row.
	balance, err := r.storer.GetBalance(ctx, request.UserID, year)
	switch {
	case err == nil:
		if balance.Remaining() < days {
			return LeaveRequest{}, ErrInsufficientBalance
		}
	case !errors.Is(err, repositories.ErrNotFound):
		return LeaveRequest{}, fmt.Errorf("get balance %s/%d: %w", request.UserID, year, err)
	}

	decided, err := r.storer.Decide(ctx, leaveID, StatusApproved, deciderID, days, year)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("approve leave request %s: %w", leaveID, err)
	}

	r.log.Info(ctx, "leave approved", "leave_id", leaveID, "decided_by", deciderID, "days", days)
	return decided, nil
}

// Deny transitions a pending request to denied. No balance is touched.
func (r *Repository) Deny(ctx context.Context, leaveID, deciderID string) (LeaveRequest, error) {
	request, err := r.storer.Get(ctx, leaveID)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("get leave request %s: %w", leaveID, err)
	}
	if request.Status != StatusPending {
		return LeaveRequest{}, ErrAlreadyDecided
	}

	decided, err := r.storer.Decide(ctx, leaveID, StatusDenied, deciderID, 0, 0)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("deny leave request %s: %w", leaveID, err)
	}

	r.log.Info(ctx, "leave denied", "leave_id", leaveID, "decided_by", deciderID)
	return decided, nil
}

// Delete removes a leave request.
func (r *Repository) Delete(ctx context.Context, leaveID string) error {
	if err := r.storer.Delete(ctx, leaveID); err != nil {
		return fmt.Errorf("delete leave request %s: %w", leaveID, err)
	}
	return nil
}

// Balance retrieves a member's balance for a year.
func (r *Repository) Balance(ctx context.Context, userID string, year int) (LeaveBalance, error) {
	balance, err := r.storer.GetBalance(ctx, userID, year)
	if err != nil {
		return LeaveBalance{}, fmt.Errorf("get balance %s/%d: %w", userID, year, err)
	}
	return balance, nil
}

// SetAllotment creates or updates a member's allotment for a year.
func (r *Repository) SetAllotment(ctx context.Context, userID string, year, allottedDays int) (LeaveBalance, error) {
	if allottedDays < 0 {
		return LeaveBalance{}, fmt.Errorf("allotted days must not be negative")
	}

	balance, err := r.storer.UpsertAllotment(ctx, userID, year, allottedDays)
	if err != nil {
		return LeaveBalance{}, fmt.Errorf("set allotment %s/%d: %w", userID, year, err)
	}
	return balance, nil
}

// Balances lists every member's balance for a year.
func (r *Repository) Balances(ctx context.Context, year int) ([]LeaveBalance, error) {
	balances, err := r.storer.ListBalances(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list balances %d: %w", year, err)
	}
	return balances, nil
}

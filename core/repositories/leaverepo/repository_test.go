package leaverepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

func TestDaySpan(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single day",
			start: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
			end:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
			want:  1,
		},
		{
			name:  "inclusive week",
			start: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
			end:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local),
			want:  7,
		},
		{
			name:  "time of day ignored",
			start: time.Date(2024, time.March, 4, 23, 0, 0, 0, time.Local),
			end:   time.Date(2024, time.March, 5, 1, 0, 0, 0, time.Local),
			want:  2,
		},
		{
			name:  "inverted range",
			start: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local),
			end:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaySpan(tc.start, tc.end))
		})
	}
}

type fakeLeaveStorer struct {
	requests map[string]LeaveRequest
	balance  LeaveBalance
	noBal    bool

	decidedStatus string
	decidedBy     string
	debitedDays   int
	debitedYear   int
}

func (f *fakeLeaveStorer) Create(_ context.Context, input CreateLeaveRequest) (LeaveRequest, error) {
	return LeaveRequest{
		LeaveID:   "l1",
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Type:      input.Type,
		Status:    StatusPending,
	}, nil
}

func (f *fakeLeaveStorer) Get(_ context.Context, leaveID string) (LeaveRequest, error) {
	req, ok := f.requests[leaveID]
	if !ok {
		return LeaveRequest{}, repositories.ErrNotFound
	}
	return req, nil
}

func (f *fakeLeaveStorer) List(context.Context, LeaveFilter, fop.By, fop.PageStringCursor) ([]LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveStorer) Delete(context.Context, string) error { return nil }

func (f *fakeLeaveStorer) Decide(_ context.Context, leaveID, status, deciderID string, debitDays, year int) (LeaveRequest, error) {
	f.decidedStatus = status
	f.decidedBy = deciderID
	f.debitedDays = debitDays
	f.debitedYear = year

	req := f.requests[leaveID]
	req.Status = status
	req.DecidedBy = &deciderID
	return req, nil
}

func (f *fakeLeaveStorer) GetBalance(context.Context, string, int) (LeaveBalance, error) {
	if f.noBal {
		return LeaveBalance{}, repositories.ErrNotFound
	}
	return f.balance, nil
}

func (f *fakeLeaveStorer) UpsertAllotment(_ context.Context, userID string, year, allottedDays int) (LeaveBalance, error) {
	return LeaveBalance{UserID: userID, Year: year, AllottedDays: allottedDays}, nil
}

func (f *fakeLeaveStorer) ListBalances(context.Context, int) ([]LeaveBalance, error) {
	return nil, nil
}

func pendingRequest() LeaveRequest {
	return LeaveRequest{
		LeaveID:   "l1",
		UserID:    "u1",
		StartDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, time.July, 5, 0, 0, 0, 0, time.Local),
		Type:      TypeVacation,
		Status:    StatusPending,
	}
}

func TestApproveDebitsBalance(t *testing.T) {
	storer := &fakeLeaveStorer{
		requests: map[string]LeaveRequest{"l1": pendingRequest()},
		balance:  LeaveBalance{UserID: "u1", Year: 2024, AllottedDays: 20, UsedDays: 5},
	}
	repo := NewRepository(logger.NewDefault(), storer)

	decided, err := repo.Approve(context.Background(), "l1", "admin1")
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, decided.Status)
	assert.Equal(t, 5, storer.debitedDays)
	assert.Equal(t, 2024, storer.debitedYear)
	assert.Equal(t, "admin1", storer.decidedBy)
}

func TestApproveInsufficientBalance(t *testing.T) {
	storer := &fakeLeaveStorer{
		requests: map[string]LeaveRequest{"l1": pendingRequest()},
		balance:  LeaveBalance{UserID: "u1", Year: 2024, AllottedDays: 20, UsedDays: 17},
	}
	repo := NewRepository(logger.NewDefault(), storer)

	_, err := repo.Approve(context.Background(), "l1", "admin1")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Empty(t, storer.decidedStatus)
}

func TestApproveWithoutBalanceRow(t *testing.T) {
	// No balance row configured means no enforcement; the debit creates it.
	storer := &fakeLeaveStorer{
		requests: map[string]LeaveRequest{"l1": pendingRequest()},
		noBal:    true,
	}
	repo := NewRepository(logger.NewDefault(), storer)

	_, err := repo.Approve(context.Background(), "l1", "admin1")
	require.NoError(t, err)
	assert.Equal(t, 5, storer.debitedDays)
}

func TestDenyDoesNotDebit(t *testing.T) {
	storer := &fakeLeaveStorer{
		requests: map[string]LeaveRequest{"l1": pendingRequest()},
	}
	repo := NewRepository(logger.NewDefault(), storer)

	decided, err := repo.Deny(context.Background(), "l1", "admin1")
	require.NoError(t, err)

	assert.Equal(t, StatusDenied, decided.Status)
	assert.Zero(t, storer.debitedDays)
}

func TestDecideTwice(t *testing.T) {
	approved := pendingRequest()
	approved.Status = StatusApproved

	storer := &fakeLeaveStorer{
		requests: map[string]LeaveRequest{"l1": approved},
	}
	repo := NewRepository(logger.NewDefault(), storer)

	_, err := repo.Approve(context.Background(), "l1", "admin2")
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	_, err = repo.Deny(context.Background(), "l1", "admin2")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestRequestValidation(t *testing.T) {
	repo := NewRepository(logger.NewDefault(), &fakeLeaveStorer{})

	_, err := repo.Request(context.Background(), CreateLeaveRequest{
		UserID:    "u1",
		Type:      "sabbatical",
		StartDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, time.July, 5, 0, 0, 0, 0, time.Local),
	})
	assert.Error(t, err)

	_, err = repo.Request(context.Background(), CreateLeaveRequest{
		UserID:    "u1",
		Type:      TypeSick,
		StartDate: time.Date(2024, time.July, 5, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

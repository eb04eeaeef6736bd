package tasksrepobridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringTaskRequestValidate(t *testing.T) {
	valid := RecurringTaskRequest{
		Title:     "Take out trash",
		Weekdays:  []int{1, 4},
		Interval:  "weekly",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-31",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *RecurringTaskRequest)
	}{
		{name: "missing title", mutate: func(r *RecurringTaskRequest) { r.Title = "" }},
		{name: "weekday too large", mutate: func(r *RecurringTaskRequest) { r.Weekdays = []int{7} }},
		{name: "weekday negative", mutate: func(r *RecurringTaskRequest) { r.Weekdays = []int{-1} }},
		{name: "unknown interval", mutate: func(r *RecurringTaskRequest) { r.Interval = "fortnightly" }},
		{name: "bad start date", mutate: func(r *RecurringTaskRequest) { r.StartDate = "03/02/2026" }},
		{name: "bad end date", mutate: func(r *RecurringTaskRequest) { r.EndDate = "never" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestRecurringTaskRequestToRepo(t *testing.T) {
	req := RecurringTaskRequest{
		Title:     "Water plants",
		Weekdays:  []int{0, 3},
		Interval:  "biweekly",
		StartDate: "2026-03-01",
		EndDate:   "2026-04-30",
	}
	require.NoError(t, req.Validate())

	input := req.toRepo("creator-1")

	assert.Equal(t, "creator-1", input.CreatorID)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Wednesday}, input.Weekdays)
	assert.Equal(t, "2026-03-01", input.Start.Format(time.DateOnly))
	assert.Equal(t, "2026-04-30", input.End.Format(time.DateOnly))
}

func TestUpdateTaskRequestValidate(t *testing.T) {
	empty := ""
	badDate := "soon"
	goodDate := "2026-05-01"
	done := true

	assert.NoError(t, UpdateTaskRequest{}.Validate())
	assert.NoError(t, UpdateTaskRequest{DueDate: &goodDate, Done: &done}.Validate())
	assert.Error(t, UpdateTaskRequest{Title: &empty}.Validate())
	assert.Error(t, UpdateTaskRequest{DueDate: &badDate}.Validate())
}

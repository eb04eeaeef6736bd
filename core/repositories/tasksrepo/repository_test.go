package tasksrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

type fakeStorer struct {
	tasks         map[string]Task
	batchInputs   []CreateTask
	batchWeekdays string
	batchInterval string
	batchDate     time.Time
	deleteFrom    time.Time
	deleteTitle   string
	deleted       int64
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{tasks: make(map[string]Task)}
}

func (f *fakeStorer) Create(_ context.Context, input CreateTask) (Task, error) {
	task := Task{TaskID: "t1", Title: input.Title, CreatorID: input.CreatorID, DueDate: input.DueDate}
	f.tasks[task.TaskID] = task
	return task, nil
}

func (f *fakeStorer) CreateBatch(_ context.Context, inputs []CreateTask, repeatWeekdays, repeatInterval string, batchDate time.Time) ([]Task, error) {
	f.batchInputs = inputs
	f.batchWeekdays = repeatWeekdays
	f.batchInterval = repeatInterval
	f.batchDate = batchDate

	tasks := make([]Task, len(inputs))
	for i, input := range inputs {
		tasks[i] = Task{
			TaskID:    input.Title + input.DueDate.Format(time.DateOnly),
			Title:     input.Title,
			CreatorID: input.CreatorID,
			DueDate:   input.DueDate,
			BatchDate: &batchDate,
		}
	}
	return tasks, nil
}

func (f *fakeStorer) Get(_ context.Context, taskID string) (Task, error) {
	return f.tasks[taskID], nil
}

func (f *fakeStorer) List(context.Context, TaskFilter, fop.By, fop.PageStringCursor) ([]Task, error) {
	return nil, nil
}

func (f *fakeStorer) Update(context.Context, string, UpdateTask) error { return nil }
func (f *fakeStorer) Delete(context.Context, string) error             { return nil }

func (f *fakeStorer) DeleteBatchFrom(_ context.Context, title, _ string, _, from time.Time) (int64, error) {
	f.deleteTitle = title
	f.deleteFrom = from
	return f.deleted, nil
}

func newTestRepository(storer Storer, now time.Time) *Repository {
	r := NewRepository(logger.NewDefault(), storer)
	r.nowFn = func() time.Time { return now }
	return r
}

func TestCreateRecurringExpandsBatch(t *testing.T) {
	storer := newFakeStorer()
	now := time.Date(2024, time.March, 6, 15, 30, 0, 0, time.Local)
	repo := newTestRepository(storer, now)

	tasks, err := repo.CreateRecurring(context.Background(), CreateRecurringTask{
		Title:     "Laundry",
		CreatorID: "u1",
		Weekdays:  []time.Weekday{time.Monday, time.Friday},
		Interval:  recurrence.IntervalWeekly,
		Start:     time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
		End:       time.Date(2024, time.March, 17, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	// Mar 4, 8, 11, 15.
	require.Len(t, tasks, 4)
	assert.Len(t, storer.batchInputs, 4)
	assert.Equal(t, "1,5", storer.batchWeekdays)
	assert.Equal(t, "weekly", storer.batchInterval)
	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.Local), storer.batchDate)

	for _, input := range storer.batchInputs {
		assert.Equal(t, "Laundry", input.Title)
		assert.Equal(t, "u1", input.CreatorID)
	}
}

func TestCreateRecurringRejectsLongSpan(t *testing.T) {
	repo := newTestRepository(newFakeStorer(), time.Now())

	_, err := repo.CreateRecurring(context.Background(), CreateRecurringTask{
		Title:    "Yearly",
		Weekdays: []time.Weekday{time.Monday},
		Interval: recurrence.IntervalWeekly,
		Start:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		End:      time.Date(2028, time.January, 1, 0, 0, 0, 0, time.Local),
	})
	assert.ErrorIs(t, err, ErrSpanTooLarge)
}

func TestCreateRecurringRejectsEmptyExpansion(t *testing.T) {
	repo := newTestRepository(newFakeStorer(), time.Now())

	_, err := repo.CreateRecurring(context.Background(), CreateRecurringTask{
		Title:    "Nothing",
		Weekdays: nil,
		Interval: recurrence.IntervalWeekly,
		Start:    time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
		End:      time.Date(2024, time.March, 17, 0, 0, 0, 0, time.Local),
	})
	assert.ErrorIs(t, err, ErrEmptyExpansion)
}

func TestCreateRecurringRejectsUnknownInterval(t *testing.T) {
	repo := newTestRepository(newFakeStorer(), time.Now())

	_, err := repo.CreateRecurring(context.Background(), CreateRecurringTask{
		Title:    "Odd",
		Weekdays: []time.Weekday{time.Monday},
		Interval: recurrence.Interval("fortnightly"),
		Start:    time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
		End:      time.Date(2024, time.March, 17, 0, 0, 0, 0, time.Local),
	})
	assert.Error(t, err)
}

func TestPreviewRecurring(t *testing.T) {
	repo := newTestRepository(newFakeStorer(), time.Now())

	preview, err := repo.PreviewRecurring(CreateRecurringTask{
		Title:    "Trash",
		Weekdays: []time.Weekday{time.Monday, time.Wednesday},
		Interval: recurrence.IntervalWeekly,
		Start:    time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
		End:      time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.March, 6, 0, 0, 0, 0, time.Local),
	}, preview.Dates)
	assert.Equal(t, "Repeats every week on Mon, Wed", preview.Description)
}

func TestDeleteFuture(t *testing.T) {
	storer := newFakeStorer()
	batchDate := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	storer.tasks["t9"] = Task{
		TaskID:    "t9",
		Title:     "Dishes",
		CreatorID: "u1",
		BatchDate: &batchDate,
	}
	storer.deleted = 3

	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)
	repo := newTestRepository(storer, now)

	n, err := repo.DeleteFuture(context.Background(), "t9")
	require.NoError(t, err)

	assert.Equal(t, int64(3), n)
	assert.Equal(t, "Dishes", storer.deleteTitle)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local), storer.deleteFrom)
}

func TestDeleteFutureNonRecurring(t *testing.T) {
	storer := newFakeStorer()
	storer.tasks["t2"] = Task{TaskID: "t2", Title: "One-off", CreatorID: "u1"}

	repo := newTestRepository(storer, time.Now())

	_, err := repo.DeleteFuture(context.Background(), "t2")
	assert.ErrorIs(t, err, ErrNotRecurring)
}

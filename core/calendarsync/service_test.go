package calendarsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/workers"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

type fakeClient struct {
	inserted  []Event
	patched   map[string]Event
	deleted   []string
	missingID string
}

func newFakeClient() *fakeClient {
	return &fakeClient{patched: make(map[string]Event)}
}

func (f *fakeClient) InsertEvent(_ context.Context, event Event) (string, error) {
	f.inserted = append(f.inserted, event)
	return "ev-new", nil
}

func (f *fakeClient) PatchEvent(_ context.Context, eventID string, event Event) error {
	if eventID == f.missingID {
		return ErrEventNotFound
	}
	f.patched[eventID] = event
	return nil
}

func (f *fakeClient) DeleteEvent(_ context.Context, eventID string) error {
	if eventID == f.missingID {
		return ErrEventNotFound
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeState struct {
	mappings map[string]syncstaterepo.EventMapping
	jobs     []syncstaterepo.SyncJob
	done     []string
	failed   map[string]string
	swept    int64
}

func newFakeState() *fakeState {
	return &fakeState{
		mappings: make(map[string]syncstaterepo.EventMapping),
		failed:   make(map[string]string),
	}
}

func key(entityType, entityID string) string { return entityType + "/" + entityID }

func (f *fakeState) Enqueue(_ context.Context, entityType, entityID string) (bool, error) {
	f.jobs = append(f.jobs, syncstaterepo.SyncJob{
		JobID:      key(entityType, entityID),
		EntityType: entityType,
		EntityID:   entityID,
		Status:     syncstaterepo.JobPending,
	})
	return true, nil
}

func (f *fakeState) CheckoutJob(context.Context, string) (syncstaterepo.SyncJob, error) {
	if len(f.jobs) == 0 {
		return syncstaterepo.SyncJob{}, repositories.ErrNotFound
	}
	job := f.jobs[0]
	f.jobs = f.jobs[1:]
	return job, nil
}

func (f *fakeState) CompleteJob(_ context.Context, jobID string) error {
	f.done = append(f.done, jobID)
	return nil
}

func (f *fakeState) FailJob(_ context.Context, jobID, errMsg string) error {
	f.failed[jobID] = errMsg
	return nil
}

func (f *fakeState) SweepEnqueue(context.Context) (int64, error) {
	f.swept++
	return f.swept, nil
}

func (f *fakeState) GetMapping(_ context.Context, entityType, entityID string) (syncstaterepo.EventMapping, error) {
	m, ok := f.mappings[key(entityType, entityID)]
	if !ok {
		return syncstaterepo.EventMapping{}, repositories.ErrNotFound
	}
	return m, nil
}

func (f *fakeState) UpsertMapping(_ context.Context, mapping syncstaterepo.EventMapping) error {
	f.mappings[key(mapping.EntityType, mapping.EntityID)] = mapping
	return nil
}

func (f *fakeState) DeleteMapping(_ context.Context, entityType, entityID string) error {
	delete(f.mappings, key(entityType, entityID))
	return nil
}

type fakeSource struct {
	entityType string
	events     map[string]Event
	errOn      string
}

func (f *fakeSource) EntityType() string { return f.entityType }

func (f *fakeSource) Desired(_ context.Context, entityID string) (Event, bool, error) {
	if entityID == f.errOn {
		return Event{}, false, errors.New("source blew up")
	}
	event, ok := f.events[entityID]
	return event, ok, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func testEvent() Event {
	return Event{
		Summary: "Task: Laundry",
		Start:   day(2024, time.March, 8),
		End:     day(2024, time.March, 9),
	}
}

func newTestService(state *fakeState, client *fakeClient, source EventSource) *Service {
	log := logger.NewDefault()
	return NewService(log, syncstaterepo.NewRepository(log, state), client, source)
}

func TestSyncEntityInsertsNewEvent(t *testing.T) {
	state := newFakeState()
	client := newFakeClient()
	source := &fakeSource{entityType: "task", events: map[string]Event{"t1": testEvent()}}
	svc := newTestService(state, client, source)

	require.NoError(t, svc.SyncEntity(context.Background(), "task", "t1"))

	require.Len(t, client.inserted, 1)
	mapping := state.mappings["task/t1"]
	assert.Equal(t, "ev-new", mapping.EventID)
	assert.Equal(t, Fingerprint(testEvent()), mapping.Fingerprint)
}

func TestSyncEntitySkipsUnchanged(t *testing.T) {
	state := newFakeState()
	state.mappings["task/t1"] = syncstaterepo.EventMapping{
		EntityType: "task", EntityID: "t1", EventID: "ev-1",
		Fingerprint: Fingerprint(testEvent()),
	}
	client := newFakeClient()
	source := &fakeSource{entityType: "task", events: map[string]Event{"t1": testEvent()}}
	svc := newTestService(state, client, source)

	require.NoError(t, svc.SyncEntity(context.Background(), "task", "t1"))

	assert.Empty(t, client.inserted)
	assert.Empty(t, client.patched)
}

func TestSyncEntityPatchesChanged(t *testing.T) {
	state := newFakeState()
	state.mappings["task/t1"] = syncstaterepo.EventMapping{
		EntityType: "task", EntityID: "t1", EventID: "ev-1", Fingerprint: "stale",
	}
	client := newFakeClient()
	source := &fakeSource{entityType: "task", events: map[string]Event{"t1": testEvent()}}
	svc := newTestService(state, client, source)

	require.NoError(t, svc.SyncEntity(context.Background(), "task", "t1"))

	assert.Contains(t, client.patched, "ev-1")
	assert.Equal(t, Fingerprint(testEvent()), state.mappings["task/t1"].Fingerprint)
	assert.Equal(t, "ev-1", state.mappings["task/t1"].EventID)
}

func TestSyncEntityRecreatesVanishedEvent(t *testing.T) {
	state := newFakeState()
	state.mappings["task/t1"] = syncstaterepo.EventMapping{
		EntityType: "task", EntityID: "t1", EventID: "ev-gone", Fingerprint: "stale",
	}
	client := newFakeClient()
	client.missingID = "ev-gone"
	source := &fakeSource{entityType: "task", events: map[string]Event{"t1": testEvent()}}
	svc := newTestService(state, client, source)

	require.NoError(t, svc.SyncEntity(context.Background(), "task", "t1"))

	require.Len(t, client.inserted, 1)
	assert.Equal(t, "ev-new", state.mappings["task/t1"].EventID)
}

func TestSyncEntityDeletesAbsent(t *testing.T) {
	state := newFakeState()
	state.mappings["task/t1"] = syncstaterepo.EventMapping{
		EntityType: "task", EntityID: "t1", EventID: "ev-1", Fingerprint: "x",
	}
	client := newFakeClient()
	source := &fakeSource{entityType: "task", events: map[string]Event{}}
	svc := newTestService(state, client, source)

	require.NoError(t, svc.SyncEntity(context.Background(), "task", "t1"))

	assert.Equal(t, []string{"ev-1"}, client.deleted)
	assert.NotContains(t, state.mappings, "task/t1")
}

func TestSyncEntityAbsentUnmappedIsNoop(t *testing.T) {
	state := newFakeState()
	client := newFakeClient()
	source := &fakeSource{entityType: "task", events: map[string]Event{}}
	svc := newTestService(state, client, source)

	require.NoError(t, svc.SyncEntity(context.Background(), "task", "t1"))

	assert.Empty(t, client.deleted)
	assert.Empty(t, client.inserted)
}

func TestProcessorContract(t *testing.T) {
	state := newFakeState()
	client := newFakeClient()
	source := &fakeSource{entityType: "task", events: map[string]Event{"t1": testEvent()}, errOn: "boom"}
	svc := newTestService(state, client, source)

	ctx := context.Background()

	_, err := svc.Checkout(ctx, "worker-1")
	assert.ErrorIs(t, err, workers.ErrNoWorkAvailable)

	_, err = state.Enqueue(ctx, "task", "t1")
	require.NoError(t, err)

	job, err := svc.Checkout(ctx, "worker-1")
	require.NoError(t, err)

	job, err = svc.Process(ctx, job)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, job, 5))
	assert.Equal(t, []string{"task/t1"}, state.done)

	_, err = state.Enqueue(ctx, "task", "boom")
	require.NoError(t, err)
	job, err = svc.Checkout(ctx, "worker-1")
	require.NoError(t, err)

	_, err = svc.Process(ctx, job)
	require.Error(t, err)
	require.NoError(t, svc.Fail(ctx, job, err))
	assert.Contains(t, state.failed["task/boom"], "source blew up")
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint(testEvent())
	b := Fingerprint(testEvent())
	assert.Equal(t, a, b)

	changed := testEvent()
	changed.Summary = "Task: Dishes"
	assert.NotEqual(t, a, Fingerprint(changed))
}

package goals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundpal/clientcore/internal/api"
	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/logging"
)

type stubGateway struct {
	remote    []domain.Goal
	listErr   error
	created   []api.GoalInput
	createRes api.CreateResult
	createErr error
	// observe lets a test inspect the tracker mid-call, before the create
	// settles.
	observe func()
}

func (s *stubGateway) ListGoals(context.Context) ([]domain.Goal, error) {
	return s.remote, s.listErr
}

func (s *stubGateway) CreateGoal(_ context.Context, goal api.GoalInput) (api.CreateResult, error) {
	if s.observe != nil {
		s.observe()
	}
	if s.createErr != nil {
		return api.CreateResult{}, s.createErr
	}
	s.created = append(s.created, goal)
	return s.createRes, nil
}

func TestCreateIsVisibleBeforeTheCallSettles(t *testing.T) {
	gateway := &stubGateway{createRes: api.CreateResult{Status: "success", ID: "srv-1"}}
	tracker := NewTracker(gateway, logging.Discard())

	var midCall []TrackedGoal
	gateway.observe = func() { midCall = tracker.Goals() }

	created, err := tracker.Create(context.Background(), api.GoalInput{
		Name:         "Emergency Fund",
		TargetAmount: 50000,
		Deadline:     "2027-12-31",
	})
	require.NoError(t, err)

	// Optimistic entry was listed while the request was in flight.
	require.Len(t, midCall, 1)
	assert.Equal(t, SyncPending, midCall[0].Sync)
	assert.Equal(t, 0.0, midCall[0].CurrentAmount)
	assert.NotEmpty(t, midCall[0].ID)

	// After settle: confirmed under the server id.
	assert.Equal(t, SyncConfirmed, created.Sync)
	assert.Equal(t, "srv-1", created.ID)

	goals := tracker.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "srv-1", goals[0].ID)
}

func TestCreateFailureKeepsItemAsFailed(t *testing.T) {
	// Current behavior: the entry is not rolled back on failure, it stays
	// listed and is tagged so a UI can badge it.
	gateway := &stubGateway{createErr: errors.New("boom")}
	tracker := NewTracker(gateway, logging.Discard())

	created, err := tracker.Create(context.Background(), api.GoalInput{Name: "Bike", TargetAmount: 80000})
	require.Error(t, err)
	assert.Equal(t, SyncFailed, created.Sync)

	goals := tracker.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "Bike", goals[0].Name)
	assert.Equal(t, SyncFailed, goals[0].Sync)
	assert.Equal(t, 0.0, goals[0].CurrentAmount)
}

func TestRefreshKeepsUnsettledLocalEntries(t *testing.T) {
	gateway := &stubGateway{
		createErr: errors.New("boom"),
		remote: []domain.Goal{
			{ID: "srv-1", Name: "Emergency Fund", TargetAmount: 50000, CurrentAmount: 12000},
		},
	}
	tracker := NewTracker(gateway, logging.Discard())

	_, err := tracker.Create(context.Background(), api.GoalInput{Name: "Bike", TargetAmount: 80000})
	require.Error(t, err)

	require.NoError(t, tracker.Refresh(context.Background()))

	goals := tracker.Goals()
	require.Len(t, goals, 2)
	assert.Equal(t, "Emergency Fund", goals[0].Name)
	assert.Equal(t, SyncConfirmed, goals[0].Sync)
	assert.Equal(t, "Bike", goals[1].Name)
	assert.Equal(t, SyncFailed, goals[1].Sync)
}

func TestRefreshReplacesConfirmedEntries(t *testing.T) {
	gateway := &stubGateway{remote: []domain.Goal{{ID: "srv-1", Name: "Old"}}}
	tracker := NewTracker(gateway, logging.Discard())
	require.NoError(t, tracker.Refresh(context.Background()))

	gateway.remote = []domain.Goal{{ID: "srv-2", Name: "New"}}
	require.NoError(t, tracker.Refresh(context.Background()))

	goals := tracker.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "New", goals[0].Name)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 24.0, Progress(domain.Goal{TargetAmount: 50000, CurrentAmount: 12000}))
	assert.Equal(t, 0.0, Progress(domain.Goal{TargetAmount: 0, CurrentAmount: 100}))
	assert.Equal(t, 100.0, Progress(domain.Goal{TargetAmount: 100, CurrentAmount: 250}))
	assert.Equal(t, 0.0, Progress(domain.Goal{TargetAmount: 100, CurrentAmount: 0}))
	// Decimal math keeps awkward fractions stable.
	assert.Equal(t, 33.0, Progress(domain.Goal{TargetAmount: 3, CurrentAmount: 1}))
}

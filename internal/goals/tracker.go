// Package goals tracks the savings-goal list with explicit optimistic-write
// states: a created goal is visible immediately and reconciled when the
// network call settles.
package goals

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundpal/clientcore/internal/api"
	"github.com/fundpal/clientcore/internal/domain"
)

// SyncState tags how far an optimistic write has settled.
type SyncState string

const (
	// SyncPending means the goal exists locally under a client-generated id
	// and the create call has not settled.
	SyncPending SyncState = "pending"
	// SyncConfirmed means the server acknowledged the goal; the id is the
	// server-assigned one.
	SyncConfirmed SyncState = "confirmed"
	// SyncFailed means the create call failed. The goal stays listed so the
	// user's input is not lost, but it is not on the server.
	SyncFailed SyncState = "failed"
)

// TrackedGoal is a goal plus its settle state.
type TrackedGoal struct {
	domain.Goal
	Sync SyncState
}

// Gateway is the API surface the tracker needs.
type Gateway interface {
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, goal api.GoalInput) (api.CreateResult, error)
}

// Tracker owns the local goal list for one screen.
type Tracker struct {
	gateway Gateway
	logger  *slog.Logger

	mu    sync.Mutex
	goals []TrackedGoal
}

// NewTracker builds an empty tracker.
func NewTracker(gateway Gateway, logger *slog.Logger) *Tracker {
	return &Tracker{gateway: gateway, logger: logger}
}

// Goals returns a snapshot of the list in display order: server-confirmed
// goals first, unsettled local ones after.
func (t *Tracker) Goals() []TrackedGoal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TrackedGoal(nil), t.goals...)
}

// Refresh replaces the confirmed goals with the server's list, preserving
// local pending and failed entries.
func (t *Tracker) Refresh(ctx context.Context) error {
	remote, err := t.gateway.ListGoals(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var unsettled []TrackedGoal
	for _, g := range t.goals {
		if g.Sync != SyncConfirmed {
			unsettled = append(unsettled, g)
		}
	}

	t.goals = make([]TrackedGoal, 0, len(remote)+len(unsettled))
	for _, g := range remote {
		t.goals = append(t.goals, TrackedGoal{Goal: g, Sync: SyncConfirmed})
	}
	t.goals = append(t.goals, unsettled...)
	return nil
}

// Create appends the goal optimistically under a client-generated id, then
// issues the create call and reconciles: the server id on success, a failed
// tag on error. The item is never removed on failure.
func (t *Tracker) Create(ctx context.Context, input api.GoalInput) (TrackedGoal, error) {
	clientID := uuid.NewString()

	t.mu.Lock()
	t.goals = append(t.goals, TrackedGoal{
		Goal: domain.Goal{
			ID:            clientID,
			Name:          input.Name,
			TargetAmount:  input.TargetAmount,
			CurrentAmount: 0,
			Deadline:      input.Deadline,
		},
		Sync: SyncPending,
	})
	t.mu.Unlock()

	res, err := t.gateway.CreateGoal(ctx, input)

	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexLocked(clientID)
	if idx < 0 {
		// Refresh dropped it in the meantime; nothing to reconcile.
		return TrackedGoal{}, err
	}

	if err != nil {
		t.logger.Warn("goal create failed, keeping local entry", "goal", input.Name, "error", err)
		t.goals[idx].Sync = SyncFailed
		return t.goals[idx], err
	}

	if res.ID != "" {
		t.goals[idx].ID = res.ID
	}
	t.goals[idx].Sync = SyncConfirmed
	return t.goals[idx], nil
}

func (t *Tracker) indexLocked(id string) int {
	for i, g := range t.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// Progress returns the goal's completion percentage, rounded to a whole
// number and clamped to [0, 100]. Decimal math keeps display values stable.
func Progress(g domain.Goal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := decimal.NewFromFloat(g.CurrentAmount).
		Div(decimal.NewFromFloat(g.TargetAmount)).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	if pct.LessThan(decimal.Zero) {
		return 0
	}
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	f, _ := pct.Float64()
	return f
}

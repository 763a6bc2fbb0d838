package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/session"
)

// Submitter is the API surface the flow needs for the final submission.
type Submitter interface {
	SubmitOnboarding(ctx context.Context, userID string, profile domain.Profile) error
}

// Flow walks the wizard: each screen merges its answers into the session's
// draft, the summary screen submits the finalized profile.
type Flow struct {
	store  *session.Store
	api    Submitter
	logger *slog.Logger
	index  int
}

// NewFlow builds a Flow starting at the welcome screen.
func NewFlow(store *session.Store, api Submitter, logger *slog.Logger) *Flow {
	return &Flow{store: store, api: api, logger: logger}
}

// Current returns the active screen.
func (f *Flow) Current() ScreenID {
	return Sequence()[f.index]
}

// Advance merges a validated screen answer into the draft and moves to the
// next screen. Exactly one merge per forward navigation.
func (f *Flow) Advance(ctx context.Context, partial domain.Draft) error {
	if f.Current() == ScreenSummary {
		return fmt.Errorf("summary screen submits, it does not advance")
	}
	if err := f.store.MergeDraft(ctx, partial); err != nil {
		return err
	}
	f.index++
	return nil
}

// Back moves to the previous screen without touching the draft.
func (f *Flow) Back() {
	if f.index > 0 {
		f.index--
	}
}

// Submit finalizes the draft with documented defaults and posts it. On
// success the session is marked onboarded, and on the sign-up-less path a
// generated identity is stored. On failure the draft is retained and the user
// stays on the summary screen for a manual retry.
func (f *Flow) Submit(ctx context.Context) error {
	profile := f.store.Draft().Finalize()

	identity, authenticated := f.store.Identity()
	userID := identity.ID
	if !authenticated {
		userID = generateUserID()
	}
	profile.UserID = userID

	if err := f.api.SubmitOnboarding(ctx, userID, profile); err != nil {
		f.logger.Warn("onboarding submission failed", "error", err)
		return err
	}

	if err := f.store.MarkOnboarded(ctx); err != nil {
		return err
	}
	if !authenticated {
		return f.store.SetIdentity(ctx, domain.Identity{ID: userID, Name: "User"})
	}
	return nil
}

// generateUserID mints a throwaway id for the sign-up-less onboarding path.
func generateUserID() string {
	return fmt.Sprintf("user_%d", rand.Intn(10000))
}

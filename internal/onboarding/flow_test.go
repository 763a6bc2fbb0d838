package onboarding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/logging"
	"github.com/fundpal/clientcore/internal/session"
	"github.com/fundpal/clientcore/internal/storage"
)

type stubSubmitter struct {
	submitted []domain.Profile
	userIDs   []string
	err       error
}

func (s *stubSubmitter) SubmitOnboarding(_ context.Context, userID string, profile domain.Profile) error {
	if s.err != nil {
		return s.err
	}
	s.userIDs = append(s.userIDs, userID)
	s.submitted = append(s.submitted, profile)
	return nil
}

func newFlow(t *testing.T, submitter Submitter) (*Flow, *session.Store) {
	t.Helper()
	store, err := session.Open(context.Background(), storage.NewMemoryStore(), logging.Discard())
	require.NoError(t, err)
	return NewFlow(store, submitter, logging.Discard()), store
}

func answer(t *testing.T) func(domain.Draft, error) domain.Draft {
	t.Helper()
	return func(draft domain.Draft, err error) domain.Draft {
		require.NoError(t, err)
		return draft
	}
}

func TestFullWizardMergesAndSubmitsWithDefaults(t *testing.T) {
	ctx := context.Background()
	submitter := &stubSubmitter{}
	flow, store := newFlow(t, submitter)

	require.NoError(t, store.SetIdentity(ctx, domain.Identity{ID: "u1", Name: "Asha"}))

	assert.Equal(t, ScreenWelcome, flow.Current())
	require.NoError(t, flow.Advance(ctx, domain.Draft{}))

	assert.Equal(t, ScreenIncomeType, flow.Current())
	require.NoError(t, flow.Advance(ctx, answer(t)(AnswerIncomeType("gig"))))

	assert.Equal(t, ScreenIncomeDetails, flow.Current())
	require.NoError(t, flow.Advance(ctx, answer(t)(AnswerIncomeDetails("15000", "25000"))))

	assert.Equal(t, ScreenFixedExpenses, flow.Current())
	require.NoError(t, flow.Advance(ctx, answer(t)(AnswerFixedExpenses("5000", "0", "200"))))

	assert.Equal(t, ScreenPrimaryGoal, flow.Current())
	require.NoError(t, flow.Advance(ctx, answer(t)(AnswerPrimaryGoal("emergency"))))

	assert.Equal(t, ScreenRiskLiteracy, flow.Current())
	require.NoError(t, flow.Advance(ctx, answer(t)(AnswerRiskLiteracy("moderate", 2))))

	assert.Equal(t, ScreenSummary, flow.Current())
	require.NoError(t, flow.Submit(ctx))

	require.Len(t, submitter.submitted, 1)
	p := submitter.submitted[0]
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "gig", p.IncomeType)
	assert.Equal(t, 15000.0, p.MonthlyIncomeMin)
	assert.Equal(t, 25000.0, p.MonthlyIncomeMax)
	assert.Equal(t, 5000.0, p.MonthlyRent)
	assert.Equal(t, 0.0, p.MonthlyEMITotal)
	assert.Equal(t, 200.0, p.MonthlyFixedOther)
	assert.Equal(t, "emergency", p.PrimaryGoal)
	assert.Equal(t, "moderate", p.RiskTolerance)
	assert.Equal(t, 2, p.LiteracyLevel)
	// Never-visited fields carry the documented defaults.
	assert.Equal(t, domain.DefaultAgeGroup, p.AgeGroup)
	assert.False(t, p.SupportsFamily)
	assert.Equal(t, domain.DefaultIncomePattern, p.IncomePattern)

	assert.True(t, store.IsOnboarded())
	identity, _ := store.Identity()
	assert.Equal(t, "Asha", identity.Name) // post-login path leaves identity untouched
}

func TestSubmitFailureRetainsDraftForRetry(t *testing.T) {
	ctx := context.Background()
	submitter := &stubSubmitter{err: errors.New("boom")}
	flow, store := newFlow(t, submitter)

	require.NoError(t, store.MergeDraft(ctx, answer(t)(AnswerIncomeType("business"))))

	require.Error(t, flow.Submit(ctx))
	assert.False(t, store.IsOnboarded())
	require.NotNil(t, store.Draft().IncomeType)
	assert.Equal(t, "business", *store.Draft().IncomeType)

	// Manual retry succeeds once the backend recovers.
	submitter.err = nil
	require.NoError(t, flow.Submit(ctx))
	assert.True(t, store.IsOnboarded())
}

func TestSignupLessPathGeneratesIdentity(t *testing.T) {
	ctx := context.Background()
	submitter := &stubSubmitter{}
	flow, store := newFlow(t, submitter)

	require.NoError(t, flow.Submit(ctx))

	identity, ok := store.Identity()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(identity.ID, "user_"))
	assert.Equal(t, "User", identity.Name)
	assert.True(t, store.IsOnboarded())

	require.Len(t, submitter.userIDs, 1)
	assert.Equal(t, identity.ID, submitter.userIDs[0])
	assert.Equal(t, identity.ID, submitter.submitted[0].UserID)
}

func TestBackNavigationDoesNotTouchDraft(t *testing.T) {
	ctx := context.Background()
	flow, store := newFlow(t, &stubSubmitter{})

	require.NoError(t, flow.Advance(ctx, domain.Draft{}))
	require.NoError(t, flow.Advance(ctx, answer(t)(AnswerIncomeType("salaried"))))
	flow.Back()

	assert.Equal(t, ScreenIncomeType, flow.Current())
	assert.Equal(t, "salaried", *store.Draft().IncomeType)
}

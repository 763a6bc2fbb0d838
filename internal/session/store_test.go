package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/logging"
	"github.com/fundpal/clientcore/internal/storage"
)

func openStore(t *testing.T, backend storage.Store) *Store {
	t.Helper()
	store, err := Open(context.Background(), backend, logging.Discard())
	require.NoError(t, err)
	return store
}

func TestOpenOnFreshBackendYieldsEmptySession(t *testing.T) {
	store := openStore(t, storage.NewMemoryStore())

	_, ok := store.Identity()
	assert.False(t, ok)
	assert.False(t, store.IsOnboarded())
	assert.Equal(t, domain.Draft{}, store.Draft())
}

func TestEveryMutationWritesThrough(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	store := openStore(t, backend)

	require.NoError(t, store.SetIdentity(ctx, domain.Identity{ID: "u1", Name: "Asha"}))
	require.NoError(t, store.MergeDraft(ctx, domain.Draft{IncomeType: ptr("gig")}))
	require.NoError(t, store.MarkOnboarded(ctx))

	assert.Equal(t, 3, backend.SaveCalls())
}

func TestRestartResumesWhereUserLeftOff(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()

	store := openStore(t, backend)
	require.NoError(t, store.SetIdentity(ctx, domain.Identity{ID: "u1", Name: "Asha"}))
	require.NoError(t, store.MergeDraft(ctx, domain.Draft{IncomeType: ptr("gig")}))
	require.NoError(t, store.MarkOnboarded(ctx))

	reopened := openStore(t, backend)
	identity, ok := reopened.Identity()
	require.True(t, ok)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "Asha", identity.Name)
	assert.True(t, reopened.IsOnboarded())
	require.NotNil(t, reopened.Draft().IncomeType)
	assert.Equal(t, "gig", *reopened.Draft().IncomeType)
}

func TestLogoutClearsEverythingAtomically(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	store := openStore(t, backend)

	require.NoError(t, store.SetIdentity(ctx, domain.Identity{ID: "u1"}))
	require.NoError(t, store.MergeDraft(ctx, domain.Draft{PrimaryGoal: ptr("debt")}))
	require.NoError(t, store.MarkOnboarded(ctx))
	saves := backend.SaveCalls()

	require.NoError(t, store.Logout(ctx))

	_, ok := store.Identity()
	assert.False(t, ok)
	assert.False(t, store.IsOnboarded())
	assert.Equal(t, domain.Draft{}, store.Draft())
	// One persisted update for the triple clear.
	assert.Equal(t, saves+1, backend.SaveCalls())

	// A restart sees the logged-out state too.
	reopened := openStore(t, backend)
	_, ok = reopened.Identity()
	assert.False(t, ok)
	assert.False(t, reopened.IsOnboarded())
}

func TestCorruptBlobStartsOver(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Save(ctx, []byte("{not json")))

	store := openStore(t, backend)
	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestMergeDraftAccumulates(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, storage.NewMemoryStore())

	require.NoError(t, store.MergeDraft(ctx, domain.Draft{IncomeType: ptr("salaried")}))
	require.NoError(t, store.MergeDraft(ctx, domain.Draft{PrimaryGoal: ptr("purchase")}))
	require.NoError(t, store.MergeDraft(ctx, domain.Draft{IncomeType: ptr("mixed")}))

	draft := store.Draft()
	assert.Equal(t, "mixed", *draft.IncomeType)
	assert.Equal(t, "purchase", *draft.PrimaryGoal)
}

func ptr(s string) *string { return &s }

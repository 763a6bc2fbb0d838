// Package session owns the persisted client session: the signed-in identity,
// the onboarding-completion flag, and the in-progress onboarding draft. It is
// the sole source of truth for route gating.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/storage"
)

// state is the wire form of the persisted blob. Key names match the blob the
// original web client leaves in local storage, so a migration stays trivial.
type state struct {
	User           *domain.Identity `json:"user"`
	IsOnboarded    bool             `json:"isOnboarded"`
	OnboardingData domain.Draft     `json:"onboardingData"`
}

// Store holds the session state and writes every mutation through to its
// persistence backend before returning. Single-writer by design; the mutex
// only guards against the controller and UI goroutines racing reads.
type Store struct {
	mu      sync.Mutex
	backend storage.Store
	logger  *slog.Logger
	state   state
}

// Open rehydrates the session from the backend. A never-written backend
// yields a fresh unauthenticated session. Callers must not evaluate the route
// gate before Open returns.
func Open(ctx context.Context, backend storage.Store, logger *slog.Logger) (*Store, error) {
	s := &Store{backend: backend, logger: logger}

	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt blob should not brick the client; start over.
		logger.Warn("discarding unreadable session blob", "error", err)
		s.state = state{}
	}
	return s, nil
}

// Identity returns the signed-in identity. The second return is false when
// unauthenticated.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return domain.Identity{}, false
	}
	return *s.state.User, true
}

// UserID returns the signed-in user's id, or the empty string.
func (s *Store) UserID() string {
	id, ok := s.Identity()
	if !ok {
		return ""
	}
	return id.ID
}

// SetIdentity replaces the identity wholesale and persists.
func (s *Store) SetIdentity(ctx context.Context, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := identity
	s.state.User = &id
	return s.persistLocked(ctx)
}

// IsOnboarded reports whether onboarding has been completed.
func (s *Store) IsOnboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOnboarded
}

// MarkOnboarded sets the onboarding-complete flag and persists. Only Logout
// resets it.
func (s *Store) MarkOnboarded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsOnboarded = true
	return s.persistLocked(ctx)
}

// Draft returns the current onboarding draft.
func (s *Store) Draft() domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.OnboardingData
}

// MergeDraft overlays the answered fields of partial onto the stored draft
// and persists.
func (s *Store) MergeDraft(ctx context.Context, partial domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OnboardingData = s.state.OnboardingData.Merge(partial)
	return s.persistLocked(ctx)
}

// Logout clears identity, the onboarded flag, and the draft atomically in one
// persisted update.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{}
	return s.persistLocked(ctx)
}

// Close releases the persistence backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

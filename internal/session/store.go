// Package session owns the process-wide authenticated user context.
//
// Store is the single writer of the session's UserProfile: readers get value
// copies, and Commit is the only way to change the profile once a session
// is established.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/model"
)

var _ model.SessionStore = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	current *model.Session
	repo    model.SessionRepository
	logger  *logger.Logger
	now     func() time.Time
}

// NewStore creates an empty Store. repo may be nil for an in-memory session.
func NewStore(repo model.SessionRepository, logger *logger.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Establish starts a session, replacing any previous one.
// The in-memory session is kept even if persisting it fails.
func (s *Store) Establish(ctx context.Context, session model.Session) error {
	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	s.logger.Info("Session: established", "user_id", session.User.ID)

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Restore loads a persisted session. Expired sessions are discarded.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, nil
	}

	session, err := s.repo.Load(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(s.now()) {
		s.logger.Info("Session: persisted session expired", "user_id", session.User.ID)
		if err := s.repo.Delete(ctx); err != nil {
			return false, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return false, nil
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	return true, nil
}

// Clear tears the session down.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.logger.Info("Session: cleared")

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Current returns a copy of the signed-in user.
func (s *Store) Current() (model.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.UserProfile{}, false
	}
	return s.current.User, true
}

// Snapshot returns a copy of the whole session.
func (s *Store) Snapshot() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.Session{}, false
	}
	return *s.current, true
}

// Token returns the access token of the current session.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || s.current.Token == "" {
		return "", false
	}
	return s.current.Token, true
}

// Commit merges the present fields of patch into the session's profile.
// Fields absent from patch are untouched; concurrent commits are last-applied-wins per field.
func (s *Store) Commit(ctx context.Context, patch model.ProfilePatch) (model.UserProfile, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return model.UserProfile{}, model.ErrNoSession
	}
	if patch.Empty() {
		user := s.current.User
		s.mu.Unlock()
		return user, nil
	}
	s.current.User = patch.Apply(s.current.User)
	committed := *s.current
	s.mu.Unlock()

	s.logger.Debug("Session: profile committed", "user_id", committed.User.ID)

	if s.repo != nil {
		// the server already confirmed the change; a local write failure must not undo it
		if err := s.repo.Save(ctx, committed); err != nil {
			s.logger.Error("Session: failed to persist committed profile",
				"user_id", committed.User.ID,
				"error", err.Error())
		}
	}

	return committed.User, nil
}

// AvatarURL joins base and the current avatar reference. It is empty without
// a session or avatar.
func (s *Store) AvatarURL(base string) string {
	user, ok := s.Current()
	if !ok || user.AvatarRef == "" {
		return ""
	}
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + user.AvatarRef
}

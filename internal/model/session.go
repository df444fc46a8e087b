package model

import (
	"context"
	"time"
)

// Session is the authenticated user context of one application run.
type Session struct {
	User         UserProfile
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token is past its expiry at now.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionStore is the process-wide session as seen by the pipeline.
// Commit is the only mutation path for the stored UserProfile.
type SessionStore interface {
	Current() (UserProfile, bool)
	Commit(ctx context.Context, patch ProfilePatch) (UserProfile, error)
}

// SessionRepository persists the session between runs.
type SessionRepository interface {
	Save(ctx context.Context, session Session) error
	Load(ctx context.Context) (Session, error)
	Delete(ctx context.Context) error
}

// SessionLifecycle starts and tears down the session.
type SessionLifecycle interface {
	Establish(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

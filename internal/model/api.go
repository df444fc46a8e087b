package model

import (
	"context"
	"io"
	"time"
)

// ProfileUpdate is the JSON body of a profile update. Empty password fields are omitted.
type ProfileUpdate struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	OldPassword     string `json:"old_password,omitempty"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// AvatarFile is the single file of an avatar upload.
type AvatarFile struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// SignInResult is returned by the remote service on sign-in.
type SignInResult struct {
	User         UserProfile `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
}

// ProfileAPI is the remote profile service.
type ProfileAPI interface {
	UpdateAvatar(ctx context.Context, file AvatarFile) (string, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) error
}

// AuthAPI is the remote authentication service.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (SignInResult, error)
	SignUp(ctx context.Context, name, email, password string) error
}

// TokenInspector reads claims of access tokens issued by the remote service.
type TokenInspector interface {
	ExpiresAt(token string) (time.Time, bool)
}

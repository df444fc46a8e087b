package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/gymfit-client/internal/model"
)

// Claims represents the claims the client reads from access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id,omitempty"`
	TokenType string `json:"typ,omitempty"`
}

// Inspector reads claims of tokens issued by the remote service.
// The client holds no signing key, so signatures are not verified here;
// the server remains the authority on validity.
type Inspector struct {
	parser *jwt.Parser
}

var _ model.TokenInspector = (*Inspector)(nil)

// NewInspector creates a token Inspector.
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// Claims decodes the token payload.
func (i *Inspector) Claims(tokenString string) (Claims, error) {
	claims := Claims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, &claims); err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim. ok is false for opaque tokens or tokens without exp.
func (i *Inspector) ExpiresAt(tokenString string) (time.Time, bool) {
	claims, err := i.Claims(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/gymfit-client/internal/model"
)

// SessionRepository is a mock type for the SessionRepository type
type SessionRepository struct {
	mock.Mock
}

// Save provides a mock function with given fields: ctx, session
func (_m *SessionRepository) Save(ctx context.Context, session model.Session) error {
	ret := _m.Called(ctx, session)
	return ret.Error(0)
}

// Load provides a mock function with given fields: ctx
func (_m *SessionRepository) Load(ctx context.Context) (model.Session, error) {
	ret := _m.Called(ctx)

	var r0 model.Session
	if v, ok := ret.Get(0).(model.Session); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx
func (_m *SessionRepository) Delete(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// TokenInspector is a mock type for the TokenInspector type
type TokenInspector struct {
	mock.Mock
}

// ExpiresAt provides a mock function with given fields: token
func (_m *TokenInspector) ExpiresAt(token string) (time.Time, bool) {
	ret := _m.Called(token)

	var r0 time.Time
	if v, ok := ret.Get(0).(time.Time); ok {
		r0 = v
	}

	return r0, ret.Bool(1)
}

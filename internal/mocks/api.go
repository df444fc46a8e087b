// Package mocks holds testify mocks of the model interfaces.
package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/gymfit-client/internal/model"
)

// ProfileAPI is a mock type for the ProfileAPI type
type ProfileAPI struct {
	mock.Mock
}

// UpdateAvatar provides a mock function with given fields: ctx, file
func (_m *ProfileAPI) UpdateAvatar(ctx context.Context, file model.AvatarFile) (string, error) {
	ret := _m.Called(ctx, file)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, model.AvatarFile) string); ok {
		r0 = rf(ctx, file)
	} else {
		r0 = ret.String(0)
	}

	return r0, ret.Error(1)
}

// UpdateProfile provides a mock function with given fields: ctx, update
func (_m *ProfileAPI) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	ret := _m.Called(ctx, update)
	return ret.Error(0)
}

// AuthAPI is a mock type for the AuthAPI type
type AuthAPI struct {
	mock.Mock
}

// SignIn provides a mock function with given fields: ctx, email, password
func (_m *AuthAPI) SignIn(ctx context.Context, email string, password string) (model.SignInResult, error) {
	ret := _m.Called(ctx, email, password)

	var r0 model.SignInResult
	if v, ok := ret.Get(0).(model.SignInResult); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// SignUp provides a mock function with given fields: ctx, name, email, password
func (_m *AuthAPI) SignUp(ctx context.Context, name string, email string, password string) error {
	ret := _m.Called(ctx, name, email, password)
	return ret.Error(0)
}

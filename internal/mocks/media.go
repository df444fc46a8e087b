package mocks

import (
	context "context"
	io "io"

	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/gymfit-client/internal/model"
)

// MediaPicker is a mock type for the MediaPicker type
type MediaPicker struct {
	mock.Mock
}

// Pick provides a mock function with given fields: ctx
func (_m *MediaPicker) Pick(ctx context.Context) (model.PickResult, error) {
	ret := _m.Called(ctx)

	var r0 model.PickResult
	if v, ok := ret.Get(0).(model.PickResult); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FileInspector is a mock type for the FileInspector type
type FileInspector struct {
	mock.Mock
}

// StatSize provides a mock function with given fields: ctx, uri
func (_m *FileInspector) StatSize(ctx context.Context, uri string) (int64, bool, error) {
	ret := _m.Called(ctx, uri)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Bool(1), ret.Error(2)
}

// Open provides a mock function with given fields: ctx, uri
func (_m *FileInspector) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, uri)

	var r0 io.ReadCloser
	if v, ok := ret.Get(0).(io.ReadCloser); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Notifier is a mock type for the Notifier type
type Notifier struct {
	mock.Mock
}

// Notify provides a mock function with given fields: n
func (_m *Notifier) Notify(n model.Notification) {
	_m.Called(n)
}

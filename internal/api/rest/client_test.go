package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gymfit-client/internal/model"
	"github.com/dtroode/gymfit-client/internal/testutil"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, staticToken("tok"), testutil.MakeNoopLogger())
}

func TestClient_UpdateAvatar(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/avatar", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get(headerRequestID))
		assert.NoError(t, err)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File, 1)
		f, hdr, err := r.FormFile("avatar")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)

		assert.Equal(t, "marcus.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "pngbytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"avatar":"4f1c-marcus.png"}`))
	})

	ref, err := c.UpdateAvatar(context.Background(), model.AvatarFile{
		FileName:    "marcus.png",
		ContentType: "image/png",
		Body:        strings.NewReader("pngbytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "4f1c-marcus.png", ref)
}

func TestClient_UpdateAvatar_NestedUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"avatar":"nested.png"}}`))
	})

	ref, err := c.UpdateAvatar(context.Background(), model.AvatarFile{FileName: "a.png", Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "nested.png", ref)
}

func TestClient_UpdateAvatar_MissingRef(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.UpdateAvatar(context.Background(), model.AvatarFile{FileName: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)
}

func TestClient_UpdateProfile_OmitsEmptyPasswords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "Marcus", "email": "marcus@gmail.com"}, body)

		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateProfile(context.Background(), model.ProfileUpdate{Name: "Marcus", Email: "marcus@gmail.com"})
	require.NoError(t, err)
}

func TestClient_UpdateProfile_WithPasswords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old123", body["old_password"])
		assert.Equal(t, "abc123", body["password"])
		assert.Equal(t, "abc123", body["confirm_password"])
	})

	err := c.UpdateProfile(context.Background(), model.ProfileUpdate{
		Name: "Marcus", Email: "marcus@gmail.com",
		OldPassword: "old123", Password: "abc123", ConfirmPassword: "abc123",
	})
	require.NoError(t, err)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantKnown string
	}{
		{name: "message body", status: http.StatusBadRequest, body: `{"status":"error","message":"Old password does not match."}`, wantKnown: "Old password does not match."},
		{name: "error body", status: http.StatusConflict, body: `{"error":"email already in use"}`, wantKnown: "email already in use"},
		{name: "empty message", status: http.StatusBadRequest, body: `{"message":"  "}`},
		{name: "html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
		{name: "no body", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := c.UpdateProfile(context.Background(), model.ProfileUpdate{Name: "Marcus"})
			require.Error(t, err)

			var known *model.KnownServiceError
			if tt.wantKnown != "" {
				require.ErrorAs(t, err, &known)
				assert.Equal(t, tt.wantKnown, known.Message)
				assert.Equal(t, tt.status, known.Status)
				return
			}
			assert.False(t, errors.As(err, &known))
			assert.Contains(t, err.Error(), "unexpected status")
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second, nil, testutil.MakeNoopLogger())
	err := c.UpdateProfile(context.Background(), model.ProfileUpdate{Name: "Marcus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(srv.URL, 50*time.Millisecond, nil, testutil.MakeNoopLogger())
	err := c.UpdateProfile(context.Background(), model.ProfileUpdate{Name: "Marcus"})
	require.Error(t, err)
}

func TestClient_SignIn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "marcus@gmail.com", body["email"])
		assert.Equal(t, "123456", body["password"])

		_, _ = w.Write([]byte(`{"user":{"id":"1","name":"Marcus","email":"marcus@gmail.com","avatar":"marcus.png"},"token":"t","refresh_token":"r"}`))
	})

	res, err := c.SignIn(context.Background(), "marcus@gmail.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, model.UserProfile{ID: "1", Name: "Marcus", Email: "marcus@gmail.com", AvatarRef: "marcus.png"}, res.User)
	assert.Equal(t, "t", res.Token)
	assert.Equal(t, "r", res.RefreshToken)
}

func TestClient_SignIn_MissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"1"}}`))
	})

	_, err := c.SignIn(context.Background(), "marcus@gmail.com", "123456")
	require.Error(t, err)
}

func TestClient_SignUp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.SignUp(context.Background(), "Marcus", "marcus@gmail.com", "123456"))
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	name    string
	updates []map[string]any
	avatars int
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/sessions":
		json.NewEncoder(w).Encode(map[string]any{
			"user":          map[string]string{"id": "u-1", "name": b.name, "email": "ana@example.com", "avatar": "a1.jpg"},
			"token":         "opaque-token",
			"refresh_token": "refresh",
		})
	case r.Method == http.MethodPut && r.URL.Path == "/users":
		if r.Header.Get("Authorization") != "Bearer opaque-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Token invalid."})
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		b.updates = append(b.updates, body)
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPatch && r.URL.Path == "/users/avatar":
		b.avatars++
		json.NewEncoder(w).Encode(map[string]string{"avatar": "a2.png"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setupEnv(t *testing.T, backend http.Handler) string {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("API_AVATAR_BASE_URL", srv.URL+"/avatar/")
	t.Setenv("SESSION_DB_PATH", filepath.Join(dir, "session.db"))
	t.Setenv("METRICS_FILE", filepath.Join(dir, "metrics.prom"))
	t.Setenv("LOG_LEVEL", "8")

	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ProfileFlow(t *testing.T) {
	backend := &fakeBackend{name: "Ana Lima"}
	dir := setupEnv(t, backend)

	out, err := run(t, "", "signin", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ana Lima")

	out, err = run(t, "", "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:   Ana Lima")
	assert.Contains(t, out, "/avatar/a1.jpg")

	out, err = run(t, "", "profile", "update", "--name", "Ana Souza")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated!")

	require.Len(t, backend.updates, 1)
	assert.Equal(t, "Ana Souza", backend.updates[0]["name"])
	assert.Equal(t, "ana@example.com", backend.updates[0]["email"])
	assert.NotContains(t, backend.updates[0], "password")

	out, err = run(t, "", "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:   Ana Souza")

	photo := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(photo, []byte("png"), 0o600))

	out, err = run(t, photo+"\n", "profile", "photo")
	require.NoError(t, err)
	assert.Contains(t, out, "Photo updated!")
	assert.Contains(t, out, "/avatar/a2.png")
	assert.Equal(t, 1, backend.avatars)

	_, err = run(t, "", "signout")
	require.NoError(t, err)

	_, err = run(t, "", "profile", "show")
	assert.ErrorIs(t, err, errNotSignedIn)

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "gymfit_submissions_total")
	assert.Contains(t, string(metrics), `operation="photo",outcome="success"`)
}

func TestCLI_InvalidProfileUpdate(t *testing.T) {
	backend := &fakeBackend{name: "Ana Lima"}
	setupEnv(t, backend)

	_, err := run(t, "", "signin", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, err := run(t, "", "profile", "update", "--name", " ", "--password", "abc")
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Contains(t, out, "name:")
	assert.Contains(t, out, "password:")
	assert.Contains(t, out, "confirm_password:")
	assert.Empty(t, backend.updates)
}

func TestCLI_PhotoCancelled(t *testing.T) {
	backend := &fakeBackend{name: "Ana Lima"}
	setupEnv(t, backend)

	_, err := run(t, "", "signin", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, err := run(t, "\n", "profile", "photo")
	require.NoError(t, err)
	assert.NotContains(t, out, "Photo updated!")
	assert.Equal(t, 0, backend.avatars)
}

func TestCLI_SignInValidation(t *testing.T) {
	setupEnv(t, &fakeBackend{})

	out, err := run(t, "", "signin", "--email", "not-an-email", "--password", "123")
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Contains(t, out, "email:")
	assert.Contains(t, out, "password:")
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: N/A")
}

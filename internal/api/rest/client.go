// Package rest talks to the remote fitness service over HTTP.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/model"
)

const (
	pathAvatar   = "/users/avatar"
	pathUsers    = "/users"
	pathSessions = "/sessions"

	headerRequestID = "X-Request-ID"

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 64 << 10
)

var (
	_ model.ProfileAPI = (*Client)(nil)
	_ model.AuthAPI    = (*Client)(nil)
)

// TokenSource supplies the bearer token of the current session.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the remote service client.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *logger.Logger
}

// NewClient creates a Client with request logging. timeout bounds every
// request; zero disables it.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *logger.Logger) *Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: NewLogging(http.DefaultTransport, logger),
	}
	return NewClientWithHTTP(baseURL, httpClient, tokens, logger)
}

// NewClientWithHTTP creates a Client around an existing *http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client, tokens TokenSource, logger *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}
}

type avatarResponse struct {
	Avatar string `json:"avatar"`
	User   *struct {
		Avatar string `json:"avatar"`
	} `json:"user"`
}

// UpdateAvatar uploads the avatar as a single-field multipart form and returns
// the avatar reference confirmed by the server.
func (c *Client) UpdateAvatar(ctx context.Context, file model.AvatarFile) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, model.AvatarField, file.FileName))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return "", fmt.Errorf("failed to read avatar file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	c.logger.Debug("API client: uploading avatar", "file", file.FileName, "bytes", body.Len())

	var resp avatarResponse
	if err := c.do(ctx, http.MethodPatch, pathAvatar, mw.FormDataContentType(), &body, &resp); err != nil {
		return "", err
	}

	ref := resp.Avatar
	if ref == "" && resp.User != nil {
		ref = resp.User.Avatar
	}
	if ref == "" {
		return "", fmt.Errorf("avatar missing from response")
	}

	return ref, nil
}

// UpdateProfile sends the validated profile form.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	return c.doJSON(ctx, http.MethodPut, pathUsers, update, nil)
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (model.SignInResult, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var res model.SignInResult
	if err := c.doJSON(ctx, http.MethodPost, pathSessions, req, &res); err != nil {
		return model.SignInResult{}, err
	}
	if res.Token == "" {
		return model.SignInResult{}, fmt.Errorf("token missing from response")
	}

	return res, nil
}

// SignUp creates an account.
func (c *Client) SignUp(ctx context.Context, name, email, password string) error {
	req := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	return c.doJSON(ctx, http.MethodPost, pathUsers, req, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(payload), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request %s: %w", requestID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

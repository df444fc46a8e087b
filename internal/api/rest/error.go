package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dtroode/gymfit-client/internal/model"
)

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// decodeError turns a failed response into a *model.KnownServiceError when the
// body carries a readable message, and a plain error otherwise.
func decodeError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("unexpected status %d: failed to read body: %w", resp.StatusCode, err)
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		msg := strings.TrimSpace(body.Message)
		if msg == "" {
			msg = strings.TrimSpace(body.Error)
		}
		if msg != "" {
			return &model.KnownServiceError{Status: resp.StatusCode, Message: msg}
		}
	}

	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

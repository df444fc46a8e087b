package rest

import (
	"net/http"
	"time"

	"github.com/dtroode/gymfit-client/internal/logger"
)

// Logging is a RoundTripper that logs outgoing requests and their results.
type Logging struct {
	next   http.RoundTripper
	logger *logger.Logger
}

// NewLogging wraps next. A nil next uses http.DefaultTransport.
func NewLogging(next http.RoundTripper, logger *logger.Logger) *Logging {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Logging{next: next, logger: logger}
}

// RoundTrip logs method, path, duration and status of each request.
func (l *Logging) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := req.Header.Get(headerRequestID)

	l.logger.Debug("API request started",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", requestID)

	resp, err := l.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("API request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error())
		return nil, err
	}

	l.logger.Debug("API request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", requestID,
		"duration_ms", duration.Milliseconds(),
		"status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		l.logger.Warn("API request rejected",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID,
			"status", resp.StatusCode)
	}

	return resp, nil
}

package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dtroode/gymfit-client/internal/model"
)

var _ model.FileInspector = (*Router)(nil)

// Router dispatches inspection by URI scheme. URIs without a registered
// scheme go to the fallback inspector.
type Router struct {
	schemes  map[string]model.FileInspector
	fallback model.FileInspector
}

// NewRouter creates a Router with fallback for unregistered schemes.
func NewRouter(fallback model.FileInspector) *Router {
	return &Router{schemes: map[string]model.FileInspector{}, fallback: fallback}
}

// Handle registers inspector for scheme ("s3").
func (r *Router) Handle(scheme string, inspector model.FileInspector) {
	r.schemes[strings.ToLower(scheme)] = inspector
}

func (r *Router) StatSize(ctx context.Context, uri string) (int64, bool, error) {
	in, err := r.route(uri)
	if err != nil {
		return 0, false, err
	}
	return in.StatSize(ctx, uri)
}

func (r *Router) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	in, err := r.route(uri)
	if err != nil {
		return nil, err
	}
	return in.Open(ctx, uri)
}

func (r *Router) route(uri string) (model.FileInspector, error) {
	if scheme, _, ok := strings.Cut(uri, "://"); ok {
		if in, ok := r.schemes[strings.ToLower(scheme)]; ok {
			return in, nil
		}
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no inspector for %q", uri)
	}
	return r.fallback, nil
}

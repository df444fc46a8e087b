// Package media picks assets and inspects them on the local filesystem.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/dtroode/gymfit-client/internal/model"
)

var _ model.FileInspector = (*LocalInspector)(nil)

// LocalInspector reads assets addressed by plain paths or file:// URIs.
type LocalInspector struct{}

// NewLocalInspector creates a LocalInspector.
func NewLocalInspector() *LocalInspector {
	return &LocalInspector{}
}

// StatSize returns the file size. Non-regular files report an unknown size.
func (i *LocalInspector) StatSize(_ context.Context, uri string) (int64, bool, error) {
	path, err := localPath(uri)
	if err != nil {
		return 0, false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, fmt.Errorf("failed to stat %s: %w", path, model.ErrNotFound)
		}
		return 0, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return 0, false, nil
	}

	return info.Size(), true, nil
}

// Open opens the file for reading.
func (i *LocalInspector) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	path, err := localPath(uri)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

func localPath(uri string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse uri: %w", err)
	}
	return u.Path, nil
}

// Package photo turns a media pick into an avatar upload that fits the size limit.
package photo

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/model"
)

const defaultExtension = "jpg"

// Acquirer picks a photo, measures it and checks it against the size limit.
type Acquirer struct {
	picker    model.MediaPicker
	inspector model.FileInspector
	maxBytes  int64
	logger    *logger.Logger
}

// NewAcquirer creates an Acquirer. A non-positive maxBytes falls back to model.MaxPhotoBytes.
func NewAcquirer(picker model.MediaPicker, inspector model.FileInspector, maxBytes int64, logger *logger.Logger) *Acquirer {
	if maxBytes <= 0 {
		maxBytes = model.MaxPhotoBytes
	}
	return &Acquirer{
		picker:    picker,
		inspector: inspector,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// Acquire runs the picker. ok is false when the user cancelled; that is not an error.
// A *model.ConstraintViolation is returned for oversized photos.
func (a *Acquirer) Acquire(ctx context.Context, userName string) (upload model.PhotoUpload, ok bool, err error) {
	picked, err := a.picker.Pick(ctx)
	if err != nil {
		return model.PhotoUpload{}, false, fmt.Errorf("failed to pick photo: %w", err)
	}
	if picked.Cancelled {
		a.logger.Debug("Photo: pick cancelled")
		return model.PhotoUpload{}, false, nil
	}

	candidate := model.PhotoCandidate{
		LocalURI:    picked.URI,
		MimeSubtype: picked.MimeSubtype,
	}

	size, known, err := a.inspector.StatSize(ctx, picked.URI)
	if err != nil {
		// unknown size must not block the user
		a.logger.Debug("Photo: size unavailable, continuing",
			"uri", picked.URI,
			"error", err.Error())
	} else if known {
		candidate.SizeBytes = size
		candidate.SizeKnown = true
	}

	if err := CheckSize(candidate, a.maxBytes); err != nil {
		a.logger.Info("Photo: candidate rejected",
			"size", candidate.SizeBytes,
			"limit", a.maxBytes)
		return model.PhotoUpload{}, false, err
	}

	return model.PhotoUpload{
		Candidate:   candidate,
		FileName:    UploadName(userName, candidate.LocalURI, candidate.MimeSubtype),
		ContentType: ContentType(candidate.MimeSubtype),
	}, true, nil
}

// CheckSize rejects candidates whose known size exceeds maxBytes. Unknown sizes pass.
func CheckSize(candidate model.PhotoCandidate, maxBytes int64) error {
	if !candidate.SizeKnown || candidate.SizeBytes <= maxBytes {
		return nil
	}
	return &model.ConstraintViolation{
		Reason: "photo too large",
		Limit:  maxBytes,
		Actual: candidate.SizeBytes,
	}
}

// UploadName builds "<user>.<ext>", lower-cased. Only the extension of uri is used.
func UploadName(userName, uri, mimeSubtype string) string {
	ext := extension(uri)
	if ext == "" || strings.Contains(ext, "\\") {
		ext = mimeSubtype
	}
	if ext == "" {
		ext = defaultExtension
	}

	base := strings.Join(strings.Fields(userName), "-")
	base = strings.NewReplacer("/", "-", "\\", "-").Replace(base)
	if base == "" {
		base = "avatar"
	}

	return strings.ToLower(base + "." + ext)
}

// extension returns the extension of the path component of uri, so query
// strings and fragments never reach the upload name.
func extension(uri string) string {
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.TrimPrefix(path.Ext(p), ".")
}

// ContentType returns the image media type for a subtype.
func ContentType(mimeSubtype string) string {
	if mimeSubtype == "" {
		return "image/jpeg"
	}
	return "image/" + strings.ToLower(mimeSubtype)
}

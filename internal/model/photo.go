package model

import (
	"context"
	"io"
)

// MaxPhotoBytes is the largest avatar the client will upload.
const MaxPhotoBytes int64 = 3 * 1024 * 1024

// AvatarField is the multipart field carrying the avatar file.
const AvatarField = "avatar"

// PickResult is what the media picker hands back.
type PickResult struct {
	Cancelled   bool
	URI         string
	MimeSubtype string
}

// PhotoCandidate is a picked asset awaiting the size check.
type PhotoCandidate struct {
	LocalURI    string
	SizeBytes   int64
	SizeKnown   bool
	MimeSubtype string
}

// PhotoUpload is a candidate that passed the constraint check.
type PhotoUpload struct {
	Candidate   PhotoCandidate
	FileName    string
	ContentType string
}

// MediaPicker is the user-cancelable media selection surface.
type MediaPicker interface {
	Pick(ctx context.Context) (PickResult, error)
}

// FileInspector reads metadata and content of picked assets.
// StatSize returns known=false when the size cannot be determined.
type FileInspector interface {
	StatSize(ctx context.Context, uri string) (size int64, known bool, err error)
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

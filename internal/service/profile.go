package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/metrics"
	"github.com/dtroode/gymfit-client/internal/model"
	"github.com/dtroode/gymfit-client/internal/photo"
	"github.com/dtroode/gymfit-client/internal/validation"
)

const (
	msgPhotoUpdated   = "Photo updated!"
	msgProfileUpdated = "Profile updated!"
	msgPhotoFailed    = "Could not update the photo. Try again later."
	msgProfileFailed  = "Could not update profile. Try again later."
)

// PhotoSource produces a size-checked avatar upload. ok is false on cancel.
type PhotoSource interface {
	Acquire(ctx context.Context, userName string) (upload model.PhotoUpload, ok bool, err error)
}

// Profile coordinates avatar and profile field submissions for one profile
// screen. At most one submission runs at a time.
type Profile struct {
	api       model.ProfileAPI
	session   model.SessionStore
	photos    PhotoSource
	inspector model.FileInspector
	maxBytes  int64
	failures  failureReporter
	notifier  model.Notifier
	metrics   *metrics.Pipeline
	logger    *logger.Logger

	busy atomic.Bool
}

func NewProfile(
	api model.ProfileAPI,
	session model.SessionStore,
	photos PhotoSource,
	inspector model.FileInspector,
	maxBytes int64,
	notifier model.Notifier,
	metrics *metrics.Pipeline,
	logger *logger.Logger,
) *Profile {
	if maxBytes <= 0 {
		maxBytes = model.MaxPhotoBytes
	}
	return &Profile{
		api:       api,
		session:   session,
		photos:    photos,
		inspector: inspector,
		maxBytes:  maxBytes,
		failures:  failureReporter{notifier: notifier, metrics: metrics, logger: logger},
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
	}
}

// Loading reports whether a submission is in flight.
func (p *Profile) Loading() bool {
	return p.busy.Load()
}

func (p *Profile) enter(op string) bool {
	if p.busy.CompareAndSwap(false, true) {
		return true
	}
	p.logger.Debug("Profile service: submission already in progress", "operation", op)
	p.metrics.Observe(op, metrics.OutcomeBusy)
	return false
}

// ChangePhoto runs the whole avatar flow: pick, check, upload, commit.
// A cancelled pick returns ("", nil) with no notification.
func (p *Profile) ChangePhoto(ctx context.Context) (string, error) {
	if !p.enter(metrics.OpPhoto) {
		return "", model.ErrBusy
	}
	defer p.busy.Store(false)

	user, ok := p.session.Current()
	if !ok {
		return "", p.failures.report(metrics.OpPhoto, msgPhotoFailed, model.ErrNoSession)
	}

	upload, ok, err := p.photos.Acquire(ctx, user.Name)
	if err != nil {
		var cv *model.ConstraintViolation
		if errors.As(err, &cv) {
			return "", p.failures.constraint(metrics.OpPhoto, cv, photoTooLargeMessage(p.maxBytes))
		}
		return "", p.failures.report(metrics.OpPhoto, msgPhotoFailed, err)
	}
	if !ok {
		p.metrics.Observe(metrics.OpPhoto, metrics.OutcomeCancelled)
		return "", nil
	}

	return p.submitPhoto(ctx, upload)
}

// SubmitPhoto uploads an already acquired photo and commits the confirmed avatar.
func (p *Profile) SubmitPhoto(ctx context.Context, upload model.PhotoUpload) (string, error) {
	if !p.enter(metrics.OpPhoto) {
		return "", model.ErrBusy
	}
	defer p.busy.Store(false)

	return p.submitPhoto(ctx, upload)
}

func (p *Profile) submitPhoto(ctx context.Context, upload model.PhotoUpload) (string, error) {
	var cv *model.ConstraintViolation
	if err := photo.CheckSize(upload.Candidate, p.maxBytes); errors.As(err, &cv) {
		return "", p.failures.constraint(metrics.OpPhoto, cv, photoTooLargeMessage(p.maxBytes))
	}

	p.logger.Debug("Profile service: uploading avatar",
		"file_name", upload.FileName,
		"size", upload.Candidate.SizeBytes)

	rc, err := p.inspector.Open(ctx, upload.Candidate.LocalURI)
	if err != nil {
		return "", p.failures.report(metrics.OpPhoto, msgPhotoFailed, fmt.Errorf("failed to open photo: %w", err))
	}
	defer rc.Close()

	start := time.Now()
	ref, err := p.api.UpdateAvatar(ctx, model.AvatarFile{
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Body:        rc,
	})
	p.metrics.ObserveDuration(metrics.OpPhoto, time.Since(start))
	if err != nil {
		return "", p.failures.report(metrics.OpPhoto, msgPhotoFailed, err)
	}

	committed, err := p.session.Commit(ctx, model.ProfilePatch{AvatarRef: &ref})
	if err != nil {
		return "", p.failures.report(metrics.OpPhoto, msgPhotoFailed, fmt.Errorf("failed to commit avatar: %w", err))
	}

	p.logger.Info("Profile service: avatar updated",
		"user_id", committed.ID,
		"avatar", committed.AvatarRef)
	p.metrics.Observe(metrics.OpPhoto, metrics.OutcomeSuccess)
	p.notifier.Notify(model.Notification{Title: msgPhotoUpdated, Severity: model.SeveritySuccess})

	return ref, nil
}

// SubmitProfile validates form and, when it is valid, sends it. The name change
// is applied to a draft copy and only committed once the server confirms it.
// A non-OK ValidationResult means nothing was sent.
func (p *Profile) SubmitProfile(ctx context.Context, form model.ProfileForm) (model.ValidationResult, error) {
	if !p.enter(metrics.OpProfile) {
		return model.ValidationResult{}, model.ErrBusy
	}
	defer p.busy.Store(false)

	res := validation.ValidateProfile(form)
	if !res.OK() {
		p.metrics.Observe(metrics.OpProfile, metrics.OutcomeInvalid)
		return res, nil
	}

	user, ok := p.session.Current()
	if !ok {
		return res, p.failures.report(metrics.OpProfile, msgProfileFailed, model.ErrNoSession)
	}

	name := strings.TrimSpace(form.Name)
	draft := model.ProfilePatch{Name: &name}.Apply(user)

	update := model.ProfileUpdate{
		Name:  draft.Name,
		Email: draft.Email,
	}
	if form.Password != "" {
		update.OldPassword = form.OldPassword
		update.Password = form.Password
		update.ConfirmPassword = form.ConfirmPassword
	}

	start := time.Now()
	err := p.api.UpdateProfile(ctx, update)
	p.metrics.ObserveDuration(metrics.OpProfile, time.Since(start))
	if err != nil {
		return res, p.failures.report(metrics.OpProfile, msgProfileFailed, err)
	}

	committed, err := p.session.Commit(ctx, model.ProfilePatch{Name: &draft.Name})
	if err != nil {
		return res, p.failures.report(metrics.OpProfile, msgProfileFailed, fmt.Errorf("failed to commit profile: %w", err))
	}

	p.logger.Info("Profile service: profile updated",
		"user_id", committed.ID,
		"password_changed", update.Password != "")
	p.metrics.Observe(metrics.OpProfile, metrics.OutcomeSuccess)
	p.notifier.Notify(model.Notification{Title: msgProfileUpdated, Severity: model.SeveritySuccess})

	return res, nil
}

func photoTooLargeMessage(maxBytes int64) string {
	const mib = 1024 * 1024
	if maxBytes%mib == 0 {
		return fmt.Sprintf("This image is too large. Choose one up to %dMB.", maxBytes/mib)
	}
	return fmt.Sprintf("This image is too large. Choose one up to %d bytes.", maxBytes)
}

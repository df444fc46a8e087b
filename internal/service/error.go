package service

import (
	"errors"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/metrics"
	"github.com/dtroode/gymfit-client/internal/model"
)

// classify maps any failure from the network side of a pipeline to either a
// *model.KnownServiceError or a *model.UnknownFailure.
func classify(err error) error {
	var known *model.KnownServiceError
	if errors.As(err, &known) {
		return known
	}

	var unknown *model.UnknownFailure
	if errors.As(err, &unknown) {
		return unknown
	}

	return &model.UnknownFailure{Err: err}
}

// failureReporter turns a classified failure into exactly one notification.
type failureReporter struct {
	notifier model.Notifier
	metrics  *metrics.Pipeline
	logger   *logger.Logger
}

func (r failureReporter) report(op, fallback string, err error) error {
	classified := classify(err)

	switch e := classified.(type) {
	case *model.KnownServiceError:
		r.logger.Info("Service: request rejected",
			"operation", op,
			"status", e.Status,
			"message", e.Message)
		r.metrics.Observe(op, metrics.OutcomeKnown)
		r.notifier.Notify(model.Notification{Title: e.Message, Severity: model.SeverityError})
	case *model.UnknownFailure:
		r.logger.Error("Service: request failed",
			"operation", op,
			"error", e.Error())
		r.metrics.Observe(op, metrics.OutcomeUnknown)
		r.notifier.Notify(model.Notification{Title: fallback, Severity: model.SeverityError})
	}

	return classified
}

func (r failureReporter) constraint(op string, cv *model.ConstraintViolation, title string) error {
	r.logger.Info("Service: constraint violated",
		"operation", op,
		"reason", cv.Reason,
		"limit", cv.Limit,
		"actual", cv.Actual)
	r.metrics.Observe(op, metrics.OutcomeConstraint)
	r.notifier.Notify(model.Notification{Title: title, Severity: model.SeverityError})
	return cv
}

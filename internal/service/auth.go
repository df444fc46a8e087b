package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/metrics"
	"github.com/dtroode/gymfit-client/internal/model"
	"github.com/dtroode/gymfit-client/internal/validation"
)

const (
	msgSignInFailed = "Could not sign in. Try again later."
	msgSignUpFailed = "Could not create the account. Try again later."
)

type Auth struct {
	api      model.AuthAPI
	session  model.SessionLifecycle
	tokens   model.TokenInspector
	failures failureReporter
	metrics  *metrics.Pipeline
	logger   *logger.Logger

	busy atomic.Bool
}

func NewAuth(
	api model.AuthAPI,
	session model.SessionLifecycle,
	tokens model.TokenInspector,
	notifier model.Notifier,
	metrics *metrics.Pipeline,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		api:      api,
		session:  session,
		tokens:   tokens,
		failures: failureReporter{notifier: notifier, metrics: metrics, logger: logger},
		metrics:  metrics,
		logger:   logger,
	}
}

// Loading reports whether a sign-in or sign-up is in flight.
func (a *Auth) Loading() bool {
	return a.busy.Load()
}

// SignIn validates credentials and establishes a session.
func (a *Auth) SignIn(ctx context.Context, form model.SignInForm) (model.ValidationResult, error) {
	if !a.busy.CompareAndSwap(false, true) {
		a.metrics.Observe(metrics.OpSignIn, metrics.OutcomeBusy)
		return model.ValidationResult{}, model.ErrBusy
	}
	defer a.busy.Store(false)

	res := validation.ValidateSignIn(form)
	if !res.OK() {
		a.metrics.Observe(metrics.OpSignIn, metrics.OutcomeInvalid)
		return res, nil
	}

	if err := a.signIn(ctx, strings.TrimSpace(form.Email), form.Password); err != nil {
		return res, a.failures.report(metrics.OpSignIn, msgSignInFailed, err)
	}

	a.metrics.Observe(metrics.OpSignIn, metrics.OutcomeSuccess)
	return res, nil
}

// SignUp creates the account and signs in with it.
func (a *Auth) SignUp(ctx context.Context, form model.SignUpForm) (model.ValidationResult, error) {
	if !a.busy.CompareAndSwap(false, true) {
		a.metrics.Observe(metrics.OpSignUp, metrics.OutcomeBusy)
		return model.ValidationResult{}, model.ErrBusy
	}
	defer a.busy.Store(false)

	res := validation.ValidateSignUp(form)
	if !res.OK() {
		a.metrics.Observe(metrics.OpSignUp, metrics.OutcomeInvalid)
		return res, nil
	}

	email := strings.TrimSpace(form.Email)

	a.logger.Debug("Auth service: creating account", "email", email)

	if err := a.api.SignUp(ctx, strings.TrimSpace(form.Name), email, form.Password); err != nil {
		return res, a.failures.report(metrics.OpSignUp, msgSignUpFailed, err)
	}

	if err := a.signIn(ctx, email, form.Password); err != nil {
		return res, a.failures.report(metrics.OpSignUp, msgSignInFailed, err)
	}

	a.metrics.Observe(metrics.OpSignUp, metrics.OutcomeSuccess)
	return res, nil
}

// SignOut tears the session down.
func (a *Auth) SignOut(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (a *Auth) signIn(ctx context.Context, email, password string) error {
	a.logger.Debug("Auth service: signing in", "email", email)

	res, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	session := model.Session{
		User:         res.User,
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
	}
	if exp, ok := a.tokens.ExpiresAt(res.Token); ok {
		session.ExpiresAt = exp
	}

	if err := a.session.Establish(ctx, session); err != nil {
		// the session is live in memory; only the next run loses it
		a.logger.Warn("Auth service: session not persisted",
			"user_id", res.User.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: signed in",
		"user_id", res.User.ID,
		"expires_at", session.ExpiresAt.Format(time.RFC3339))

	return nil
}

// Package validation evaluates form state into per-field errors.
// It performs no I/O and never returns errors: failures live in the result.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dtroode/gymfit-client/internal/model"
)

const (
	msgNameRequired     = "Enter your name"
	msgEmailRequired    = "Enter your email"
	msgEmailInvalid     = "Invalid email"
	msgPasswordRequired = "Enter your password"
	msgConfirmRequired  = "Confirm your new password"
	msgConfirmMismatch  = "Passwords do not match"
)

var msgPasswordTooShort = fmt.Sprintf("Password must have at least %d characters", model.MinPasswordLength)

// ValidateProfile checks the profile editor form.
// The password change is optional: an empty password disables both password rules.
func ValidateProfile(form model.ProfileForm) model.ValidationResult {
	res := model.ValidationResult{}

	requireName(res, form.Name)

	if form.Password != "" && tooShort(form.Password) {
		res.Add(model.FieldPassword, model.KindTooShort, msgPasswordTooShort)
	}

	confirmPassword(res, form.Password, form.ConfirmPassword)

	return res
}

// ValidateSignIn checks sign-in credentials.
func ValidateSignIn(form model.SignInForm) model.ValidationResult {
	res := model.ValidationResult{}

	requireEmail(res, form.Email)
	requirePassword(res, form.Password)

	return res
}

// ValidateSignUp checks the fields of a new account.
func ValidateSignUp(form model.SignUpForm) model.ValidationResult {
	res := model.ValidationResult{}

	requireName(res, form.Name)
	requireEmail(res, form.Email)
	requirePassword(res, form.Password)

	return res
}

// confirmPassword is a whole-form rule: whether the confirmation is required
// depends on the password value, not on the confirmation itself.
func confirmPassword(res model.ValidationResult, password, confirm string) {
	if password == "" {
		return
	}

	switch {
	case confirm == "":
		res.Add(model.FieldConfirmPassword, model.KindRequired, msgConfirmRequired)
	case confirm != password:
		res.Add(model.FieldConfirmPassword, model.KindMismatch, msgConfirmMismatch)
	}
}

func requireName(res model.ValidationResult, name string) {
	if strings.TrimSpace(name) == "" {
		res.Add(model.FieldName, model.KindRequired, msgNameRequired)
	}
}

func requireEmail(res model.ValidationResult, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		res.Add(model.FieldEmail, model.KindRequired, msgEmailRequired)
		return
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		res.Add(model.FieldEmail, model.KindInvalidEmail, msgEmailInvalid)
	}
}

func requirePassword(res model.ValidationResult, password string) {
	switch {
	case password == "":
		res.Add(model.FieldPassword, model.KindRequired, msgPasswordRequired)
	case tooShort(password):
		res.Add(model.FieldPassword, model.KindTooShort, msgPasswordTooShort)
	}
}

func tooShort(password string) bool {
	return utf8.RuneCountInString(password) < model.MinPasswordLength
}

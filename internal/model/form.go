package model

// MinPasswordLength is the shortest password the client accepts.
const MinPasswordLength = 6

// Form field names, as sent to the remote service.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

// ProfileForm is the transient state of the profile editor.
// Empty strings mean the field was left blank.
type ProfileForm struct {
	Name            string
	Email           string
	OldPassword     string
	Password        string
	ConfirmPassword string
}

// SignInForm holds sign-in credentials.
type SignInForm struct {
	Email    string
	Password string
}

// SignUpForm holds the fields of a new account.
type SignUpForm struct {
	Name     string
	Email    string
	Password string
}

// FieldErrorKind classifies a validation failure.
type FieldErrorKind string

const (
	// KindRequired means the field must not be empty.
	KindRequired FieldErrorKind = "required"
	// KindTooShort means the value is below the minimum length.
	KindTooShort FieldErrorKind = "too_short"
	// KindMismatch means the confirmation does not equal its source field.
	KindMismatch FieldErrorKind = "mismatch"
	// KindInvalidEmail means the value is not a well-formed address.
	KindInvalidEmail FieldErrorKind = "invalid_email"
)

// FieldError is a single inline validation error.
type FieldError struct {
	Field   string
	Kind    FieldErrorKind
	Message string
}

// ValidationResult maps field names to their error. A field without an entry is valid.
type ValidationResult map[string]FieldError

// OK reports whether no field failed.
func (r ValidationResult) OK() bool {
	return len(r) == 0
}

// Has reports whether field failed with the given kind.
func (r ValidationResult) Has(field string, kind FieldErrorKind) bool {
	fe, ok := r[field]
	return ok && fe.Kind == kind
}

// Add records an error for field. The first error recorded for a field wins.
func (r ValidationResult) Add(field string, kind FieldErrorKind, message string) {
	if _, ok := r[field]; ok {
		return
	}
	r[field] = FieldError{Field: field, Kind: kind, Message: message}
}

package domain

import "errors"

// Error kinds. Use errors.Is against these; the message shown to API callers
// is carried by *Error.
var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("access forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Canonical messages returned by the user directory.
const (
	MsgNamesRequired     = "Name and firstname are required"
	MsgInvalidRole       = "Invalid role"
	MsgDeleteSuperadmin  = "Cannot delete superadmin"
	MsgSuperadminRole    = "Cannot change superadmin role"
	MsgAdminRoleRequired = "Admin role required"
)

// Error pairs an error kind with a user-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Validation returns an ErrValidation carrying msg.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

// Forbidden returns an ErrForbidden carrying msg.
func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

// Unauthorized returns an ErrUnauthorized carrying msg.
func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Msg: msg}
}

// Message extracts the user-facing message from err, falling back to
// err.Error() for errors that are not *Error.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return err.Error()
}

package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Failure kinds. Every business-rule failure returned by a service unwraps to
// exactly one of these, so callers can branch with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// Error is a business-rule failure of a known kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func errorf(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrHackathonNotFound    = newError(ErrNotFound, "hackathon not found")
	ErrTeamNotFound         = newError(ErrNotFound, "team not found")
	ErrMemberNotFound       = newError(ErrNotFound, "user is not a member of this team")
	ErrInvitationNotFound   = newError(ErrNotFound, "invitation not found")
	ErrRegistrationNotFound = newError(ErrNotFound, "registration not found")
	ErrSkillNotFound        = newError(ErrNotFound, "skill not found")

	ErrUsernameTaken      = newError(ErrConflict, "telegram username already registered")
	ErrAlreadyRegistered  = newError(ErrConflict, "already registered for this hackathon")
	ErrTeamNameTaken      = newError(ErrConflict, "team name already taken in this hackathon")
	ErrAlreadyMember      = newError(ErrConflict, "already a member")
	ErrAlreadyInTeam      = newError(ErrConflict, "user already belongs to a team in this hackathon")
	ErrInvitationExists   = newError(ErrConflict, "invitation already sent")
	ErrSkillExists        = newError(ErrConflict, "skill already added")
	ErrRegistrationInTeam = newError(ErrConflict, "leave the team before unregistering")

	ErrNotCaptain          = newError(ErrForbidden, "only the team captain can do this")
	ErrCannotRemoveCaptain = newError(ErrForbidden, "the captain cannot be removed from the team")
	ErrRemovalForbidden    = newError(ErrForbidden, "only the member or the captain can remove a member")
	ErrNotInvitee          = newError(ErrForbidden, "invitation is addressed to another user")

	ErrHackathonClosed    = newError(ErrInvalidState, "hackathon is not open for registration")
	ErrNotRegistered      = newError(ErrInvalidState, "user not registered for this hackathon")
	ErrInvitationResolved = newError(ErrInvalidState, "invitation already resolved")

	ErrInvalidCredentials  = newError(ErrUnauthorized, "invalid credentials")
	ErrRefreshTokenInvalid = newError(ErrUnauthorized, "refresh token invalid or revoked")

	ErrCannotInviteSelf = newError(ErrValidation, "cannot invite yourself")
)

// teamFullError reports that a team has no free seat left.
func teamFullError(limit int) error {
	return errorf(ErrConflict, "team already reached maximum size (%d)", limit)
}

// translate maps a missing row to notFound and wraps anything else as a storage failure.
func translate(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// translateWrite maps a unique-constraint violation to duplicate and wraps anything else.
func translateWrite(err error, duplicate error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicate
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

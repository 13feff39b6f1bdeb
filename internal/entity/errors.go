package entity

import "errors"

// Domain errors for entries and the review workflow.
var (
	ErrEntryNotFound      = errors.New("entry not found")
	ErrInvalidEntryID     = errors.New("invalid entry ID")
	ErrEmptyHeadword      = errors.New("headword display text required")
	ErrEmptyDefinition    = errors.New("sense definition required")
	ErrDuplicateEntry     = errors.New("entry already exists for this headword and dialect")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrDialectNotGranted  = errors.New("dialect outside the user's granted set")
	ErrReviewConflict     = errors.New("entry already reviewed by someone else")
	ErrNotPendingReview   = errors.New("entry is not pending review")
	ErrHistoryNotFound    = errors.New("edit history record not found")
	ErrInvalidHistoryID   = errors.New("invalid history ID")
)

// Domain errors for users and authentication.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidUserName    = errors.New("invalid user name")
	ErrInvalidUserEmail   = errors.New("invalid user email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

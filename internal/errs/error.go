package errs

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrNotAvailable    = errors.New("book is not available")
	ErrDuplicateLoan   = errors.New("book already issued to this user")
	ErrAlreadyReturned = errors.New("book has already been returned")

	ErrDuplicatePending = errors.New("pending request for this book already exists")
	ErrAlreadyResolved  = errors.New("request has already been responded to")
	ErrIssueClosed      = errors.New("issue is closed")

	ErrOutOfRange = errors.New("rating must be between 1 and 5")

	ErrDuplicateUser = errors.New("user already exists with this email")
	ErrBookInUse     = errors.New("book has loans, requests or ratings attached")

	// ErrUnavailable covers store contention that survived a retry.
	ErrUnavailable = errors.New("temporarily unavailable")
)

// InvalidInput aggregates every violated field constraint, not just the first.
type InvalidInput struct {
	Violations []string
}

func (e *InvalidInput) Error() string {
	return "invalid input: " + strings.Join(e.Violations, "; ")
}

func NewInvalidInput(violations ...string) error {
	return &InvalidInput{Violations: violations}
}

func IsInvalidInput(err error) bool {
	var ii *InvalidInput
	return errors.As(err, &ii)
}

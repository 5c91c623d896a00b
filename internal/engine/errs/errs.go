package errs

import "github.com/pkg/errors"

// Sentinel errors shared by the service and authorization layers.
// Routers map these onto the response code taxonomy.
var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
	ErrAlreadyGranted = errors.New("association already granted")
	ErrNotGranted     = errors.New("association not granted")

	ErrMissingDomain     = errors.New("no domain selected")
	ErrOutOfDomain       = errors.New("target belongs to another domain")
	ErrInsufficientLevel = errors.New("role level is insufficient")
	ErrAdminOnly         = errors.New("only a system admin may perform this operation")
	ErrPermissionDenied  = errors.New("permission denied")

	ErrUserNotExist      = errors.New("user does not exist")
	ErrUserAlreadyExist  = errors.New("user already exists")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrUserDisabled      = errors.New("user is disabled")

	ErrValidationFailed  = errors.New("validation failed")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Wrap annotates err with a message, keeping the sentinel matchable
// through errors.Is.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

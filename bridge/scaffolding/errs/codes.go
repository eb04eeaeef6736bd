package errs

import "net/http"

// ErrCode represents a coded error condition.
type ErrCode struct {
	value int
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return codeNames[ec]
}

// Set of possible error codes.
var (
	OK                 = ErrCode{value: 0}
	Internal           = ErrCode{value: 1}
	NotFound           = ErrCode{value: 2}
	InvalidArgument    = ErrCode{value: 3}
	Unauthenticated    = ErrCode{value: 4}
	PermissionDenied   = ErrCode{value: 5}
	AlreadyExists      = ErrCode{value: 6}
	FailedPrecondition = ErrCode{value: 7}
	Aborted            = ErrCode{value: 8}
	Unavailable        = ErrCode{value: 9}
	InternalOnlyLog    = ErrCode{value: 10}
)

var codeNames = map[ErrCode]string{
	OK:                 "ok",
	Internal:           "internal",
	NotFound:           "not_found",
	InvalidArgument:    "invalid_argument",
	Unauthenticated:    "unauthenticated",
	PermissionDenied:   "permission_denied",
	AlreadyExists:      "already_exists",
	FailedPrecondition: "failed_precondition",
	Aborted:            "aborted",
	Unavailable:        "unavailable",
	InternalOnlyLog:    "internal",
}

var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	Internal:           http.StatusInternalServerError,
	NotFound:           http.StatusNotFound,
	InvalidArgument:    http.StatusBadRequest,
	Unauthenticated:    http.StatusUnauthorized,
	PermissionDenied:   http.StatusForbidden,
	AlreadyExists:      http.StatusConflict,
	FailedPrecondition: http.StatusBadRequest,
	Aborted:            http.StatusConflict,
	Unavailable:        http.StatusServiceUnavailable,
	InternalOnlyLog:    http.StatusInternalServerError,
}

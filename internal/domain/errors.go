package domain

import "errors"

// Error is a domain failure with a stable machine-readable code. The HTTP
// layer maps codes to status codes; services return these unwrapped so
// callers can match with errors.As.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation failures: recoverable by the caller correcting input.
var (
	ErrInvalidPropertyType = newError("INVALID_PROPERTY_TYPE", "bookings can only be created for short-term properties")
	ErrInvalidDateRange    = newError("INVALID_DATES", "check-out date must be after check-in date")
	ErrPastDate            = newError("PAST_DATE", "check-in date cannot be in the past")
	ErrGuestLimitExceeded  = newError("GUESTS_LIMIT_EXCEEDED", "number of guests exceeds the property limit")
	ErrMinStayViolation    = newError("MIN_STAY_VIOLATION", "stay is shorter than the property minimum")
	ErrMaxStayViolation    = newError("MAX_STAY_VIOLATION", "stay is longer than the property maximum")
	ErrMissingPricing      = newError("MISSING_PRICING", "short-term property has no base price configured")
	ErrInvalidAmount       = newError("INVALID_AMOUNT", "payment amount must be greater than zero")
	ErrAmountExceedsTotal  = newError("AMOUNT_EXCEEDS_TOTAL", "payment amount exceeds the remaining balance")
)

// Conflict and state failures.
var (
	ErrDatesUnavailable       = newError("DATES_UNAVAILABLE", "an overlapping booking exists for these dates")
	ErrInvalidStateTransition = newError("INVALID_STATE_TRANSITION", "booking status does not permit this operation")
	ErrBookingNotEditable     = newError("BOOKING_NOT_EDITABLE", "completed or cancelled bookings cannot be edited")
)

// Lookup and access failures.
var (
	ErrNotFound     = newError("NOT_FOUND", "resource not found")
	ErrAccessDenied = newError("ACCESS_DENIED", "you do not have permission to access this resource")
	ErrUnauthorized = newError("UNAUTHORIZED", "authentication required")
)

// Authentication failures.
var (
	ErrInvalidCredentials = newError("INVALID_CREDENTIALS", "invalid email or password")
	ErrTooManyAttempts    = newError("TOO_MANY_LOGIN_ATTEMPTS", "too many failed login attempts, try again later")
	ErrEmailTaken         = newError("EMAIL_TAKEN", "an account with this email already exists")
)

// IsCode reports whether err is a domain error carrying the given code.
func IsCode(err error, code string) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

package errors

import "net/http"

// Operation sentinels. Each carries only the fixed message of the failing
// operation; compare with errors.Is to match a failure of any status or kind.
var (
	ErrRegister    = New(0, "registration failed")
	ErrLoginFailed = New(0, "login failed")
	ErrProfile     = New(0, "error fetching profile")
	ErrFetch       = New(0, "error fetching clientes")
	ErrCreate      = New(0, "error creating cliente")
	ErrUpdate      = New(0, "error updating cliente")
	ErrDelete      = New(0, "error deleting cliente")
	ErrSession     = New(0, "session storage failed")
	ErrInvalid     = New(0, "invalid payload")
)

// Transport builds a failure for a request that never received a response
func Transport(op *Error, cause error) *Error {
	return op.WithKind(KindTransport).WithCause(cause)
}

// StatusFailure builds a failure for a non-2xx response
func StatusFailure(op *Error, code int, detail string) *Error {
	err := op.WithKind(KindStatus).WithCode(code)
	if detail != "" {
		err = err.WithMetadata(map[string]string{MetadataDetail: detail})
	}
	return err
}

// Decode builds a failure for a response body that could not be decoded
func Decode(op *Error, code int, cause error) *Error {
	return op.WithKind(KindDecode).WithCode(code).WithCause(cause)
}

// Validation builds a failure for a payload rejected before sending
func Validation(op *Error, cause error) *Error {
	return op.WithKind(KindValidation).WithCause(cause)
}

// Storage builds a failure for a session store error
func Storage(op *Error, cause error) *Error {
	return op.WithKind(KindStorage).WithCause(cause)
}

// StatusCode returns the HTTP status carried by err, or 0 if none
func StatusCode(err error) int {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return 0
}

// KindOf returns the kind carried by err
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Detail returns the server provided detail carried by err
func Detail(err error) string {
	var e *Error
	if As(err, &e) {
		return e.GetDetail()
	}
	return ""
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsBadRequest(err error) bool {
	code := StatusCode(err)
	return code == http.StatusBadRequest || code == http.StatusUnprocessableEntity
}

// IsServer reports a 5xx response
func IsServer(err error) bool {
	return StatusCode(err) >= http.StatusInternalServerError
}

// IsTransport reports a request that never received a response
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// ErrNotAuthenticated is returned by operations that need a stored token when none is held
var ErrNotAuthenticated = New(0, "not authenticated")

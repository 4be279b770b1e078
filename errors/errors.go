package errors

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
)

const (
	MetadataSeparator = ", "
	MetadataPrefix    = "metadata={"
	MetadataSuffix    = "}"
	CausePrefix       = "cause="

	// MetadataDetail holds the server provided error detail, if any
	MetadataDetail = "detail"
	// MetadataURL holds the request URL that failed
	MetadataURL = "url"
)

// Kind classifies where a failure happened
type Kind uint8

const (
	// KindUnknown is the zero kind, used by operation sentinels to match any kind
	KindUnknown Kind = iota
	// KindTransport means the request never completed (dial, timeout, canceled)
	KindTransport
	// KindStatus means the remote answered with a non-2xx status
	KindStatus
	// KindDecode means the response body could not be decoded
	KindDecode
	// KindValidation means a payload was rejected locally before sending
	KindValidation
	// KindStorage means the session store failed
	KindStorage
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Status is the serializable part of an error: HTTP status code, fixed message and metadata
type Status struct {
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error is the single failure type returned by every client operation.
// Code is the HTTP status of the remote response, or 0 when no response arrived.
type Error struct {
	Status
	Kind  Kind
	cause error
}

// Error returns a human-readable error message with optional error chain
func (e *Error) Error() string {
	var msg strings.Builder

	msg.WriteString("code=")
	msg.WriteString(strconv.Itoa(e.Code))
	msg.WriteString(MetadataSeparator)
	msg.WriteString("kind=")
	msg.WriteString(e.Kind.String())
	msg.WriteString(MetadataSeparator)
	msg.WriteString("message=")
	msg.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		msg.WriteString(MetadataSeparator)
		msg.WriteString(MetadataPrefix)
		for i, k := range keys {
			if i > 0 {
				msg.WriteString(", ")
			}
			msg.WriteString(k)
			msg.WriteByte('=')
			msg.WriteString(e.Metadata[k])
		}
		msg.WriteString(MetadataSuffix)
	}

	if e.cause != nil {
		msg.WriteString(MetadataSeparator)
		msg.WriteString(CausePrefix)
		msg.WriteString(e.cause.Error())
	}

	return msg.String()
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithMetadata adds metadata to the error. Returns a new error instance to maintain immutability.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}

	err := e.clone()
	if err.Metadata == nil {
		err.Metadata = make(map[string]string, len(m))
	}

	maps.Copy(err.Metadata, m)
	return err
}

// WithCause adds a cause to the error. Returns a new error instance to maintain immutability.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}

	err := e.clone()
	err.cause = cause
	return err
}

// WithCode returns a copy carrying the given status code
func (e *Error) WithCode(code int) *Error {
	err := e.clone()
	err.Code = code
	return err
}

// WithKind returns a copy carrying the given kind
func (e *Error) WithKind(kind Kind) *Error {
	err := e.clone()
	err.Kind = kind
	return err
}

func (e *Error) clone() *Error {
	var metadata map[string]string
	if len(e.Metadata) > 0 {
		metadata = make(map[string]string, len(e.Metadata))
		maps.Copy(metadata, e.Metadata)
	}

	return &Error{
		Status: Status{
			Code:     e.Code,
			Message:  e.Message,
			Metadata: metadata,
		},
		Kind:  e.Kind,
		cause: e.cause,
	}
}

// Is reports whether err is an *Error with the same message.
// A zero Code or KindUnknown on target acts as a wildcard, so the operation
// sentinels (ErrDelete, ErrLoginFailed, ...) match a failure of any status.
func (e *Error) Is(err error) bool {
	var target *Error
	if !errors.As(err, &target) {
		return false
	}
	if e.Message != target.Message {
		return false
	}
	if target.Code != 0 && e.Code != target.Code {
		return false
	}
	if target.Kind != KindUnknown && e.Kind != target.Kind {
		return false
	}
	return true
}

// GetCode returns the error code
func (e *Error) GetCode() int {
	return e.Code
}

// GetMessage returns the error message
func (e *Error) GetMessage() string {
	return e.Message
}

// GetDetail returns the server provided detail, empty when none was sent
func (e *Error) GetDetail() string {
	return e.Metadata[MetadataDetail]
}

// GetMetadata returns a copy of the metadata to prevent external modification
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}

	result := make(map[string]string, len(e.Metadata))
	maps.Copy(result, e.Metadata)
	return result
}

// GetCause returns the underlying cause of the error
func (e *Error) GetCause() error {
	return e.cause
}

// New creates a new error with the given error code and formatted message
func New(code int, format string, args ...any) *Error {
	var message string
	if len(args) == 0 {
		message = format
	} else {
		message = fmt.Sprintf(format, args...)
	}

	return &Error{
		Status: Status{
			Code:    code,
			Message: message,
		},
	}
}

// FromError converts a generic error to *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	return New(0, "%v", err)
}

// Wrap wraps an error with additional context while preserving the original error chain
// Returns nil if the input error is nil
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}

	return New(code, format, args...).WithCause(err)
}

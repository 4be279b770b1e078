package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kochabx/vetclinic/errors"
)

// StatusError reports a response outside the 2xx range
type StatusError struct {
	StatusCode int
	URL        string
	// Detail is the server's "detail" message, if the body carried one
	Detail string
	Body   []byte
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.URL, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
}

// DecodeError reports a 2xx response whose body could not be decoded
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RequestError reports a request that could not be built, so nothing was sent
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("build %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseDetail extracts the message from an error body of the form
// {"detail": "..."} or {"detail": [{"loc": [...], "msg": "..."}]}.
// Anything else yields the trimmed body text.
func ParseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if len(it.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
				continue
			}
			msgs = append(msgs, it.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return strings.TrimSpace(string(envelope.Detail))
}

// Classify binds a Request error to the failing operation, keeping the
// status code and server detail.
func Classify(op *errors.Error, err error) *errors.Error {
	if err == nil {
		return nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return errors.StatusFailure(op, statusErr.StatusCode, statusErr.Detail).
			WithMetadata(map[string]string{errors.MetadataURL: statusErr.URL})
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return errors.Decode(op, decodeErr.StatusCode, decodeErr.Err)
	}

	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return errors.Validation(op, requestErr)
	}

	return errors.Transport(op, err)
}

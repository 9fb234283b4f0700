package gh

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrProjectNotFound indicates the project node could not be located under
// the given login and number (wrong login, nonexistent project, or a token
// without project scope).
var ErrProjectNotFound = errors.New("project not found")

// TransportError is a failed API call at the HTTP level: a network error,
// a non-200 status, or an undecodable response. Op names the operation
// that failed; StatusCode and Body are set for REST calls, and zero/empty
// when the detail is carried inside the wrapped error.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GraphQLError is an error GitHub returned inside an otherwise successful
// GraphQL response payload. Fatal, like a transport failure, but
// distinguishable by callers.
type GraphQLError struct {
	Op  string
	Err error
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GraphQLError) Unwrap() error {
	return e.Err
}

// wrapRunError classifies a failed GraphQL run. machinebox/graphql does
// not export its error types, so transport-level failures are recognized
// by shape (network errors, its non-200 message, its decode wrapping) and
// everything else is a payload-level error.
func wrapRunError(op string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) ||
		strings.Contains(err.Error(), "non-200 status code") ||
		strings.Contains(err.Error(), "decoding response") {
		return &TransportError{Op: op, Err: err}
	}
	return &GraphQLError{Op: op, Err: err}
}

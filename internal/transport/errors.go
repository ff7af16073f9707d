package transport

import (
	"fmt"
	"net/http"
)

// TransportError reports a failed exchange with the platform: a network
// failure, a non-2xx status, or a response that could not be understood.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: API error (HTTP %d): %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: API error (HTTP %d %s)", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": transport error"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Malformed builds a TransportError for a response body that did not have the
// expected shape.
func Malformed(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
}

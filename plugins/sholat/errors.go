package sholat

import (
	"fmt"
	"unicode/utf8"

	"github.com/BDNK1/sflowg-sholat/runtime/plugin"
)

// maxErrorBody bounds how much of a remote response body is kept on an error.
const maxErrorBody = 512

// NetworkError reports a request that never produced a response
// (DNS, connection, timeout, cancellation).
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RemoteError reports a response the service answered with but that cannot be
// used: a non-2xx status or a body that is not JSON. It carries an error
// context so the host can tag the failing record in place.
type RemoteError struct {
	Op         string
	URL        string
	StatusCode int
	Status     string
	Reason     string
	Body       string
	Context    *plugin.ErrorContext
}

func newRemoteError(op, url string, statusCode int, status, reason string, body []byte) *RemoteError {
	if len(body) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n]
	}
	return &RemoteError{
		Op:         op,
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
		Reason:     reason,
		Body:       string(body),
		Context: plugin.NewErrorContext().
			WithMeta("httpCode", statusCode).
			WithMeta("url", url),
	}
}

func (e *RemoteError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("%s: %s returned %s: %s", e.Op, e.URL, status, e.Reason)
}

func (e *RemoteError) ErrorContext() *plugin.ErrorContext {
	return e.Context
}

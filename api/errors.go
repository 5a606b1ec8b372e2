package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPError is any non-2xx response. Message carries the API's "detail"
// field when present, otherwise the raw body.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ErrEmptyAddress is returned by Geocode before any I/O happens.
var ErrEmptyAddress = errors.New("geocode: address is empty")

func newHTTPError(resp *http.Response) *HTTPError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(body))

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		msg = envelope.Detail
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &HTTPError{Status: resp.StatusCode, Message: msg}
}

func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusUnauthorized
}

// IsValidation reports a request the API rejected as malformed or
// unresolvable (400/422), e.g. an address that does not geocode.
func IsValidation(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && (he.Status == http.StatusBadRequest || he.Status == http.StatusUnprocessableEntity)
}

// IsNetwork reports a transport-level failure (no HTTP response at all).
func IsNetwork(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue)
}

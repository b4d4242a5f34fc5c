package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
)

var (
	// ErrNotFound matches any APIError with status 404.
	ErrNotFound = errors.New("gateway: not found")
	// ErrNoLocation is returned when a create response identifies no resource.
	ErrNoLocation = errors.New("gateway: no location in create response")
)

// APIError is an error response of the upstream service.
type APIError struct {
	Operation string `json:"-"`
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("gateway: %s: status %d: %s - %s", e.Operation, e.Status, e.Code, msg)
	}
	return fmt.Sprintf("gateway: %s: status %d: %s", e.Operation, e.Status, msg)
}

// Is reports ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is, or wraps, a 404 from the upstream service.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// handleAPIError turns a transport failure or an error status into an error.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("gateway: %s: %w", operation, requestErr)
	}
	if !resp.IsErrorState() {
		return nil
	}

	apiErr := &APIError{Operation: operation, Status: resp.GetStatusCode()}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if raw := resp.Bytes(); len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

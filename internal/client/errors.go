package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// conflictMessage is the exact backend message for a transaction-commit
// failure caused by a referential constraint. Matching must stay literal:
// other 500s are plain backend errors, not conflicts.
const conflictMessage = "Could not commit JPA transaction"

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsAccessDenied reports an authentication failure.
func (e *APIError) IsAccessDenied() bool { return e.Status == http.StatusUnauthorized }

// IsForbidden reports an authorization failure with server detail.
func (e *APIError) IsForbidden() bool { return e.Status == http.StatusForbidden }

// IsNotFound reports a missing record.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsConflict reports the specific 500 shape that means the record is
// linked to others and the operation could not be committed.
func (e *APIError) IsConflict() bool {
	return e.Status == http.StatusInternalServerError && e.Message == conflictMessage
}

// AsAPIError unwraps err into an *APIError when one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// readAPIError builds an APIError from a non-2xx response, decoding the
// backend's {"message": ...} body when present and falling back to the
// raw body text.
func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
		return apiErr
	}
	apiErr.Message = string(raw)
	return apiErr
}

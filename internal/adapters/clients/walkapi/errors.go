package walkapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/blochwalk/blochwalk/internal/adapters/clients"
	"github.com/blochwalk/blochwalk/internal/domain"
)

// errorResponse mirrors the server's error envelope.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail carries the code, message and optional field details.
type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes the server emits. Kept in sync with the HTTP adapter's
// error envelope.
const (
	codeNotFound    = "NOT_FOUND"
	codeConflict    = "CONFLICT"
	codeValidation  = "VALIDATION_ERROR"
	codeBadRequest  = "BAD_REQUEST"
	codeUnavailable = "SERVICE_UNAVAILABLE"
	codeTimeout     = "TIMEOUT"
)

// parseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or cannot be parsed.
func parseErrorResponse(body io.Reader) *errorResponse {
	if body == nil {
		return nil
	}

	var errResp errorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Error.Code == "" && errResp.Error.Message == "" {
		return nil
	}

	return &errResp
}

// mapHTTPError maps an HTTP failure to a domain error. Either resp or
// clientErr may be nil; clientErr takes precedence since no response
// was received at all.
//
// The entityID is used for NotFoundError so callers can report which
// walk was missing.
func mapHTTPError(resp *http.Response, clientErr error, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *errorResponse
	if resp.Body != nil {
		errResp = parseErrorResponse(resp.Body)
	}

	// Prefer the server's error code over the raw status when both are
	// present; a reverse proxy can rewrite statuses but not bodies.
	if errResp != nil && errResp.Error.Code != "" {
		return mapErrorCode(errResp, operation, entityID)
	}

	return mapStatusCode(resp.StatusCode, errResp, operation, entityID)
}

// mapClientError translates transport-level errors to domain errors.
func mapClientError(err error, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// mapErrorCode translates the server's error code to a domain error.
func mapErrorCode(errResp *errorResponse, operation, entityID string) error {
	message := errResp.Error.Message
	if message == "" {
		message = fmt.Sprintf("%s failed", operation)
	}

	switch errResp.Error.Code {
	case codeNotFound:
		return domain.NewNotFoundError("walk", entityID)

	case codeConflict:
		return domain.NewConflictError("walk", message)

	case codeValidation, codeBadRequest:
		if errResp.Error.Details != nil {
			for field, msg := range errResp.Error.Details {
				return domain.NewValidationError(field, msg)
			}
		}

		return domain.NewValidationError("", message)

	case codeUnavailable, codeTimeout:
		return domain.NewUnavailableError(serviceName, message)

	default:
		return domain.NewUnavailableError(serviceName, message)
	}
}

// mapStatusCode translates bare HTTP status codes to domain errors.
// Used when the response body carried no recognizable error envelope.
func mapStatusCode(status int, errResp *errorResponse, operation, entityID string) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundError("walk", entityID)

	case http.StatusConflict:
		return domain.NewConflictError("walk", message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("", message)

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return domain.NewUnavailableError(serviceName, message)

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		// Unknown 4xx errors default to validation.
		return domain.NewValidationError("", message)
	}
}

// defaultMessageForStatus returns a fallback message for a status code.
func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "walk not found"
	case http.StatusConflict:
		return "walk state conflict"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}

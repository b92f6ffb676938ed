package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/blochwalk/blochwalk/internal/domain"
)

// TraceIDKey is the gin context key under which middleware stores the
// request's trace ID.
const TraceIDKey = "trace_id"

// GetTraceID extracts the trace ID from the gin context, falling back
// to the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError maps a domain error to an HTTP error response and writes
// it to the context. Unknown errors become 500 with a generic message
// so internals never leak to clients.
func HandleError(c *gin.Context, err error) {
	traceID := GetTraceID(c)

	var resp *ErrorResponse

	switch {
	case domain.IsNotFound(err):
		resp = NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		resp = NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp = NewErrorResponse(ErrorCodeValidation, err.Error())

	case domain.IsUnavailable(err):
		resp = NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable: "+err.Error())

	default:
		resp = NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}

	resp.TraceID = traceID
	c.JSON(HTTPStatusFromCode(resp.Error.Code), resp)
}

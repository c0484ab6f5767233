package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

type errorPayload struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	MessageKey string `json:"messageKey,omitempty"`
	ItemIndex  *int   `json:"itemIndex,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps collected errors onto HTTP statuses
// after the handler chain runs.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var validation *invoicedomain.ValidationError
	if errors.As(err, &validation) {
		payload := errorPayload{
			Type:       "validation_error",
			Message:    validation.Error(),
			Field:      validation.Field,
			MessageKey: validation.MessageKey,
		}
		if validation.ItemIndex >= 0 {
			idx := validation.ItemIndex
			payload.ItemIndex = &idx
		}
		return http.StatusUnprocessableEntity, payload
	}

	switch {
	case errors.Is(err, invoicedomain.ErrLastItem),
		errors.Is(err, invoicedomain.ErrItemIndex),
		errors.Is(err, invoicedomain.ErrUnknownImage),
		errors.Is(err, invoicedomain.ErrMalformedImage):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	case errors.Is(err, invoicedomain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, errorPayload{Type: "invalid_request", Message: err.Error()}
	case errors.Is(err, invoicedomain.ErrExportInFlight):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal error"}
	}
}

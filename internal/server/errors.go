package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	listingdomain "github.com/smallbiznis/domora/internal/listing/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts accumulated gin errors into the JSON
// error envelope, once, after the handler chain ran.
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
		c.Header("Content-Type", "application/json")
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

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func immutableFieldError(field string) error {
	return fmt.Errorf("%s: %w", field, listingdomain.ErrImmutableField)
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if recordErr := asRecordValidationError(err); recordErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  violationsToPayload(recordErr.Violations),
		}
	}

	switch {
	case errors.Is(err, listingdomain.ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "request", Code: "invalid_request", Message: "invalid request"},
			},
		}
	case errors.Is(err, listingdomain.ErrImmutableField):
		return http.StatusBadRequest, errorPayload{
			Type:    "immutable_field",
			Message: "immutable fields cannot be modified",
			Errors: []ValidationError{
				{
					Field:   immutableFieldName(err),
					Code:    "immutable_field",
					Message: "field is fixed at creation time",
				},
			},
		}
	case errors.Is(err, listingdomain.ErrPropertyIDConflict),
		errors.Is(err, listingdomain.ErrSlugConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, listingdomain.ErrOwnerNotFound):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "owner_resolution_error",
			Message: "property owner could not be resolved",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func asRecordValidationError(err error) *listingdomain.ValidationError {
	var vErr *listingdomain.ValidationError
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// immutableFieldName recovers the field from the "<field>: immutable_field"
// error produced by immutableFieldError.
func immutableFieldName(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ":"); idx > 0 {
		return strings.TrimSpace(msg[:idx])
	}
	return "request"
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, listingdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func violationsToPayload(violations []listingdomain.Violation) []ValidationError {
	out := make([]ValidationError, 0, len(violations))
	for _, v := range violations {
		out = append(out, ValidationError{
			Field:   v.Field,
			Code:    violationCode(v.Field),
			Message: v.Message,
		})
	}
	return out
}

func violationCode(field string) string {
	return "invalid_" + strings.ReplaceAll(field, ".", "_")
}

// classifyErrorForLog labels handler errors for the request log.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	switch {
	case asValidationErrors(err) != nil, asRecordValidationError(err) != nil,
		errors.Is(err, listingdomain.ErrInvalidRequest):
		return "validation_error", "invalid_request"
	case errors.Is(err, listingdomain.ErrImmutableField):
		return "immutable_field", "immutable_field"
	case errors.Is(err, listingdomain.ErrPropertyIDConflict):
		return "conflict", "property_id_conflict"
	case errors.Is(err, listingdomain.ErrSlugConflict):
		return "conflict", "slug_conflict"
	case errors.Is(err, listingdomain.ErrOwnerNotFound):
		return "owner_resolution_error", "owner_not_found"
	case isNotFoundError(err):
		return "not_found", "not_found"
	default:
		return "internal_error", "internal"
	}
}

package api

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/validation"
)

// APIError is the body of every failed operation. It implements huma.StatusError.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Message string `json:"message" doc:"Human-readable error message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler makes huma report every failure as {"message": ...}.
// Call this before creating the huma.API.
func RegisterErrorHandler() {
	huma.NewError = newAPIError
}

func newAPIError(status int, message string, errs ...error) huma.StatusError {
	for _, err := range errs {
		var domainErr *domainerrors.Error
		if domainerrors.As(err, &domainErr) {
			return fromDomainError(domainErr)
		}
	}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &APIError{
			status:  http.StatusBadRequest,
			Message: validation.InvalidInputMessage(invalidFields(errs)),
		}
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		return &APIError{status: http.StatusInternalServerError, Message: domainerrors.InternalMessage}
	default:
		return &APIError{status: status, Message: message}
	}
}

func fromDomainError(err *domainerrors.Error) *APIError {
	if err.Code == domainerrors.CodeInternal {
		return &APIError{status: http.StatusInternalServerError, Message: domainerrors.InternalMessage}
	}
	return &APIError{status: err.HTTPStatus(), Message: err.Message}
}

// invalidFields lists the request fields named by huma's validation details.
// "body.tags[1]" and "path.id" become "tags" and "id".
func invalidFields(errs []error) []string {
	var fields []string
	for _, err := range errs {
		var detailer huma.ErrorDetailer
		if !domainerrors.As(err, &detailer) {
			continue
		}

		_, field, ok := strings.Cut(detailer.ErrorDetail().Location, ".")
		if !ok {
			continue
		}
		field, _, _ = strings.Cut(field, "[")
		field, _, _ = strings.Cut(field, ".")
		if field != "" && !slices.Contains(fields, field) {
			fields = append(fields, field)
		}
	}
	return fields
}

// fail converts a service error into the operation's error response.
// Unclassified errors are logged here and never reach the client.
func fail(logger *slog.Logger, op string, err error) error {
	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) || domainErr.Code == domainerrors.CodeInternal {
		if logger != nil {
			logger.Error("operation failed", "operation", op, "error", err)
		}
	}
	return newAPIError(http.StatusInternalServerError, "", err)
}

// Package response writes the plain JSON bodies used outside the typed API
// operations: the authorization gate, the catch-all and the health probe.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
)

// Message is the body of every non-data response.
type Message struct {
	Message string `json:"message"`
}

// NotFoundBody is returned for unknown routes.
type NotFoundBody struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// NotFoundMessage is the catch-all text for unknown routes.
const NotFoundMessage = "The requested resource could not be found."

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil && logger != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Error writes {"message": message} with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, Message{Message: message}, logger)
}

// NotFound writes the 404 catch-all body for path.
func NotFound(w http.ResponseWriter, path string, logger *slog.Logger) {
	JSON(w, http.StatusNotFound, NotFoundBody{Message: NotFoundMessage, Path: path}, logger)
}

// InternalError writes a 500 response with the static client message.
func InternalError(w http.ResponseWriter, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, domainerrors.InternalMessage, logger)
}

// HandleError maps a domain error to its status and message.
// Anything else is logged and answered with a generic 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) && domainErr.Code != domainerrors.CodeInternal {
		Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
		return
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, logger)
}

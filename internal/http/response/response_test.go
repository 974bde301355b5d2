package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
)

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) Message {
	t.Helper()
	var body Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON_WritesBody(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, map[string]int{"id": 3}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":3}`, w.Body.String())
}

func TestJSON_EncodeFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, func() {}, logger)

	assert.Contains(t, buf.String(), "Failed to encode JSON response")
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()

	OK(w, []string{}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, "Invalid login.", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid login.", decodeMessage(t, w).Message)
}

func TestNotFound_IncludesPath(t *testing.T) {
	w := httptest.NewRecorder()

	NotFound(w, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"The requested resource could not be found.","path":"/nope"}`, w.Body.String())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         domainerrors.Validation("Invalid or missing input provided for: text"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid or missing input provided for: text",
		},
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("delete quote: %w", domainerrors.NotFound("Quote not found.")),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Quote not found.",
		},
		{
			name:        "forbidden",
			err:         domainerrors.Forbidden("You are not allowed to delete this quote."),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "You are not allowed to delete this quote.",
		},
		{
			name:        "internal keeps static text",
			err:         domainerrors.Wrap(errors.New("disk"), domainerrors.CodeInternal, "save failed"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: domainerrors.InternalMessage,
		},
		{
			name:        "unknown",
			err:         errors.New("sql: database is closed"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: domainerrors.InternalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			HandleError(w, tt.err, logger)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMessage, decodeMessage(t, w).Message)
		})
	}
}

func TestHandleError_UnknownIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	HandleError(httptest.NewRecorder(), errors.New("sql: database is closed"), logger)

	assert.Contains(t, buf.String(), "database is closed")
}

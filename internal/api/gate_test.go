package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/quotebook/quotebook-server/internal/auth"
	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/metrics"
)

func newTestGate(t *testing.T, opts ...auth.TokenOption) (*Gate, *auth.TokenService, *metrics.Metrics) {
	t.Helper()

	tokens, err := auth.NewTokenServiceFromSecret("gate-test-secret", opts...)
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	return NewGate(tokens, m, nil), tokens, m
}

func requestWithAuth(header string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func TestGate_Authorize_Rejections(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate, _, _ := newTestGate(t)

	tests := []struct {
		name        string
		header      string
		wantCode    domainerrors.Code
		wantMessage string
	}{
		{"missing header", "", domainerrors.CodeUnauthorized, "`Authorization` header is required."},
		{"wrong scheme", "Basic dXNlcjpwYXNz", domainerrors.CodeUnauthorized, "Invalid access token."},
		{"scheme without space", "Bearer", domainerrors.CodeUnauthorized, "Invalid access token."},
		{"empty token", "Bearer ", domainerrors.CodeUnauthorized, "Invalid access token."},
		{"token after double space", "Bearer  v4.local.abc", domainerrors.CodeUnauthorized, "Invalid access token."},
		{"garbage token", "Bearer garbage", domainerrors.CodeInvalidToken, "Invalid access token."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := gate.Authorize(requestWithAuth(tt.header))
			require.Error(t, err)
			assert.Zero(t, session)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
			assert.Equal(t, tt.wantMessage, domainErr.Message)
			assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus())
		})
	}
}

func TestGate_Authorize_ValidToken(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate, tokens, _ := newTestGate(t)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	session, err := gate.Authorize(requestWithAuth("Bearer " + token))
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
}

func TestGate_Authorize_ExpiredToken(t *testing.T) {
	defer goleak.VerifyNone(t)

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt

	gate, tokens, _ := newTestGate(t, auth.WithClock(func() time.Time { return now }))

	token, err := tokens.Issue(7)
	require.NoError(t, err)

	now = issuedAt.Add(auth.AccessTokenDuration + time.Second)

	_, err = gate.Authorize(requestWithAuth("Bearer " + token))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestGate_Authorize_TokenFromOtherSecret(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate, _, _ := newTestGate(t)

	other, err := auth.NewTokenServiceFromSecret("some-other-secret")
	require.NoError(t, err)
	token, err := other.Issue(1)
	require.NoError(t, err)

	_, err = gate.Authorize(requestWithAuth("Bearer " + token))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestGate_Middleware_Preflight(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate, _, m := newTestGate(t)

	called := false
	handler := gate.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/quotes", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Preflight check successful."}`, w.Body.String())
	assert.Zero(t, testutil.CollectAndCount(m.GateRejects))
}

func TestGate_Middleware_Rejects(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate, _, m := newTestGate(t)

	handler := gate.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for rejected requests")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithAuth(""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, "{\"message\":\"`Authorization` header is required.\"}", w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithAuth("Bearer garbage"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid access token."}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithAuth("Token abc"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.InDelta(t, 1, testutil.ToFloat64(m.GateRejects.WithLabelValues(rejectMissingHeader)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GateRejects.WithLabelValues(rejectInvalidToken)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GateRejects.WithLabelValues(rejectMalformedHeader)), 0)
}

func TestGate_Middleware_AttachesSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate, tokens, _ := newTestGate(t)

	token, err := tokens.Issue(99)
	require.NoError(t, err)

	var got Session
	var ok bool
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithAuth("Bearer "+token))

	require.True(t, ok)
	assert.Equal(t, int64(99), got.UserID)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSessionFromContext_Empty(t *testing.T) {
	_, ok := SessionFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestGate_RejectionBodyIsMessageOnly(t *testing.T) {
	gate, _, _ := newTestGate(t)
	handler := gate.Middleware(http.NotFoundHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithAuth("Bearer garbage"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"message": "Invalid access token."}, body)
}

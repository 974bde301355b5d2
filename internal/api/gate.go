package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/http/response"
	"github.com/quotebook/quotebook-server/internal/metrics"
)

// Client-facing gate messages.
const (
	msgPreflightOK   = "Preflight check successful."
	msgMissingHeader = "`Authorization` header is required."
	msgInvalidToken  = "Invalid access token."
)

// Gate rejection reasons recorded in metrics.
const (
	rejectMissingHeader   = "missing_header"
	rejectMalformedHeader = "malformed_header"
	rejectInvalidToken    = "invalid_token"
)

// TokenValidator resolves a bearer token to the user id it was issued for.
type TokenValidator interface {
	Validate(token string) (int64, error)
}

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID int64
}

type sessionKey struct{}

// SessionFromContext returns the session the gate attached, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

func withSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// Gate authenticates requests to protected routes.
type Gate struct {
	tokens  TokenValidator
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewGate creates a gate backed by tokens.
func NewGate(tokens TokenValidator, m *metrics.Metrics, logger *slog.Logger) *Gate {
	return &Gate{tokens: tokens, metrics: m, logger: logger}
}

// Authorize resolves the request's bearer token to a Session.
// It has no side effects; rejected requests get an Unauthorized or InvalidToken error.
func (g *Gate) Authorize(r *http.Request) (Session, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Session{}, domainerrors.Unauthorized(msgMissingHeader)
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return Session{}, domainerrors.Unauthorized(msgInvalidToken)
	}

	token := strings.TrimSpace(strings.Split(header, " ")[1])
	if token == "" {
		return Session{}, domainerrors.Unauthorized(msgInvalidToken)
	}

	userID, err := g.tokens.Validate(token)
	if err != nil {
		return Session{}, domainerrors.InvalidToken(msgInvalidToken).WithCause(err)
	}

	return Session{UserID: userID}, nil
}

// Middleware answers preflight requests and rejects unauthenticated ones.
// Authenticated requests continue with the Session in their context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			response.OK(w, response.Message{Message: msgPreflightOK}, g.logger)
			return
		}

		session, err := g.Authorize(r)
		if err != nil {
			g.metrics.RecordGateRejection(rejectionReason(r, err))
			if g.logger != nil {
				g.logger.Debug("request rejected by gate", "path", r.URL.Path, "error", err)
			}
			response.HandleError(w, err, g.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

func rejectionReason(r *http.Request, err error) string {
	switch {
	case domainerrors.Is(err, domainerrors.ErrInvalidToken):
		return rejectInvalidToken
	case r.Header.Get("Authorization") == "":
		return rejectMissingHeader
	default:
		return rejectMalformedHeader
	}
}

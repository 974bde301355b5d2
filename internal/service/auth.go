package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quotebook/quotebook-server/internal/domain"
	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/metrics"
	"github.com/quotebook/quotebook-server/internal/validation"
)

const (
	msgAccountNotFound = "Account not found."
	msgInvalidLogin    = "Invalid login."
)

// TokenIssuer issues access tokens for a user.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// SignupRequest is the input to AuthService.Signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=1024"`
}

// SignupResult is returned by a successful signup.
type SignupResult struct {
	User  domain.UserSummary
	Token string
}

// SigninRequest is the input to AuthService.Signin.
type SigninRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=1024"`
}

// SigninResult is returned by a successful signin.
type SigninResult struct {
	Username string
	Token    string
}

// AuthService handles signup and signin.
type AuthService struct {
	credentials *CredentialStore
	tokens      TokenIssuer
	validator   *validation.Validator
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(credentials *CredentialStore, tokens TokenIssuer, m *metrics.Metrics, logger *slog.Logger) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		validator:   validation.New(),
		metrics:     m,
		logger:      logger,
	}
}

// Signup registers a new user and returns a token for them.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordAuth("signup", metrics.OutcomeRejected)
		return nil, err
	}

	existing, err := s.credentials.FindByUsername(ctx, req.Username)
	if err != nil {
		s.metrics.RecordAuth("signup", metrics.OutcomeError)
		return nil, err
	}
	if existing != nil {
		s.metrics.RecordAuth("signup", metrics.OutcomeRejected)
		return nil, domainerrors.AlreadyExists(msgUsernameTaken)
	}

	user, err := s.credentials.Create(ctx, req.Username, req.Password)
	if err != nil {
		s.metrics.RecordAuth("signup", outcomeFor(err))
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.RecordAuth("signup", metrics.OutcomeError)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.RecordAuth("signup", metrics.OutcomeSuccess)
	return &SignupResult{User: user.Summary(), Token: token}, nil
}

// Signin verifies a username and password and returns a fresh token.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*SigninResult, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordAuth("signin", metrics.OutcomeRejected)
		return nil, err
	}

	user, err := s.credentials.FindByUsername(ctx, req.Username)
	if err != nil {
		s.metrics.RecordAuth("signin", metrics.OutcomeError)
		return nil, err
	}
	if user == nil {
		s.metrics.RecordAuth("signin", metrics.OutcomeRejected)
		return nil, domainerrors.Validation(msgAccountNotFound)
	}

	if !s.credentials.VerifyPassword(req.Password, user.PasswordHash) {
		s.metrics.RecordAuth("signin", metrics.OutcomeRejected)
		if s.logger != nil {
			s.logger.Info("signin rejected", "user_id", user.ID)
		}
		return nil, domainerrors.Validation(msgInvalidLogin)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.RecordAuth("signin", metrics.OutcomeError)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.RecordAuth("signin", metrics.OutcomeSuccess)
	return &SigninResult{Username: user.Username, Token: token}, nil
}

// outcomeFor classifies err for metrics: domain errors are client rejections.
func outcomeFor(err error) string {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotebook/quotebook-server/internal/domain"
	"github.com/quotebook/quotebook-server/internal/service"
)

const (
	msgRegistered = "Registered successfully"
	msgLoggedIn   = "Login successful!"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/auth/signup",
		Summary:     "Register new user",
		Description: "Creates an account and returns a session token for it.",
		Tags:        []string{"Authentication"},
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "signin",
		Method:      http.MethodPost,
		Path:        "/auth/signin",
		Summary:     "User login",
		Description: "Verifies a username and password and returns a fresh session token.",
		Tags:        []string{"Authentication"},
	}, s.handleSignin)
}

// === DTOs ===

// CredentialsRequest is the body of signup and signin. Required fields are
// checked by the auth service so every missing field is reported at once.
type CredentialsRequest struct {
	_        struct{} `additionalProperties:"true"`
	Username string   `json:"username,omitempty" doc:"Username"`
	Password string   `json:"password,omitempty" doc:"Password"`
}

// CredentialsInput wraps the credentials body for Huma.
type CredentialsInput struct {
	Body *CredentialsRequest `required:"false"`
}

func (in *CredentialsInput) credentials() CredentialsRequest {
	if in.Body == nil {
		return CredentialsRequest{}
	}
	return *in.Body
}

// SignupResponse is returned by a successful signup.
type SignupResponse struct {
	Message string             `json:"message" doc:"Status message"`
	User    domain.UserSummary `json:"user" doc:"Created user"`
	Token   string             `json:"token" doc:"Session token, valid for 24 hours"`
}

// SignupOutput wraps the signup response for Huma.
type SignupOutput struct {
	Body SignupResponse
}

// SigninResponse is returned by a successful signin.
type SigninResponse struct {
	Message  string `json:"message" doc:"Status message"`
	Username string `json:"username" doc:"Authenticated username"`
	Token    string `json:"token" doc:"Session token, valid for 24 hours"`
}

// SigninOutput wraps the signin response for Huma.
type SigninOutput struct {
	Body SigninResponse
}

// === Handlers ===

func (s *Server) handleSignup(ctx context.Context, input *CredentialsInput) (*SignupOutput, error) {
	creds := input.credentials()

	result, err := s.services.Auth.Signup(ctx, service.SignupRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return nil, fail(s.logger, "signup", err)
	}

	return &SignupOutput{
		Body: SignupResponse{
			Message: msgRegistered,
			User:    result.User,
			Token:   result.Token,
		},
	}, nil
}

func (s *Server) handleSignin(ctx context.Context, input *CredentialsInput) (*SigninOutput, error) {
	creds := input.credentials()

	result, err := s.services.Auth.Signin(ctx, service.SigninRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return nil, fail(s.logger, "signin", err)
	}

	return &SigninOutput{
		Body: SigninResponse{
			Message:  msgLoggedIn,
			Username: result.Username,
			Token:    result.Token,
		},
	}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotebook/quotebook-server/internal/domain"
	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/service"
)

const (
	msgQuoteCreated = "Quote created successfully."
	msgQuoteDeleted = "Quote deleted successfully."
)

var bearerAuth = []map[string][]string{{"bearer": {}}}

// registerQuoteRoutes registers the quote operations on the gated API.
func (s *Server) registerQuoteRoutes() {
	huma.Register(s.protected, huma.Operation{
		OperationID: "listQuotes",
		Method:      http.MethodGet,
		Path:        "/quotes",
		Summary:     "List quotes",
		Description: "Returns the caller's quotes with their tags, oldest first.",
		Tags:        []string{"Quotes"},
		Security:    bearerAuth,
	}, s.handleListQuotes)

	huma.Register(s.protected, huma.Operation{
		OperationID: "createQuote",
		Method:      http.MethodPost,
		Path:        "/quotes",
		Summary:     "Create quote",
		Description: "Stores a quote for the caller. Tags are created by name when they do not exist yet.",
		Tags:        []string{"Quotes"},
		Security:    bearerAuth,
	}, s.handleCreateQuote)

	huma.Register(s.protected, huma.Operation{
		OperationID: "deleteQuote",
		Method:      http.MethodDelete,
		Path:        "/quotes/{id}",
		Summary:     "Delete quote",
		Description: "Deletes one of the caller's quotes. Tags no other quote uses are removed with it.",
		Tags:        []string{"Quotes"},
		Security:    bearerAuth,
	}, s.handleDeleteQuote)
}

// === DTOs ===

// CreateQuoteRequest is the body of POST /quotes.
type CreateQuoteRequest struct {
	_    struct{} `additionalProperties:"true"`
	Text string   `json:"text,omitempty" doc:"Quote text"`
	Tags []string `json:"tags,omitempty" doc:"Tag names; created on first use"`
}

// CreateQuoteInput wraps the create request for Huma.
type CreateQuoteInput struct {
	Body *CreateQuoteRequest `required:"false"`
}

// DeleteQuoteInput identifies the quote to delete.
type DeleteQuoteInput struct {
	ID int64 `path:"id" doc:"Quote ID"`
}

// QuoteResponse wraps a single quote with a status message.
type QuoteResponse struct {
	Message string        `json:"message" doc:"Status message"`
	Quote   *domain.Quote `json:"quote" doc:"The affected quote"`
}

// QuoteOutput wraps the quote response for Huma.
type QuoteOutput struct {
	Body QuoteResponse
}

// ListQuotesOutput wraps the caller's quotes for Huma.
type ListQuotesOutput struct {
	Body []domain.Quote
}

// === Handlers ===

// requireSession returns the identity the gate attached to ctx.
func requireSession(ctx context.Context) (Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return Session{}, newAPIError(http.StatusUnauthorized, "", domainerrors.Unauthorized(msgInvalidToken))
	}
	return session, nil
}

func (s *Server) handleListQuotes(ctx context.Context, _ *struct{}) (*ListQuotesOutput, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := s.services.Quotes.List(ctx, session.UserID)
	if err != nil {
		return nil, fail(s.logger, "listQuotes", err)
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	return &ListQuotesOutput{Body: quotes}, nil
}

func (s *Server) handleCreateQuote(ctx context.Context, input *CreateQuoteInput) (*QuoteOutput, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	var req service.CreateQuoteRequest
	if input.Body != nil {
		req = service.CreateQuoteRequest{Text: input.Body.Text, Tags: input.Body.Tags}
	}

	quote, err := s.services.Quotes.Create(ctx, session.UserID, req)
	if err != nil {
		return nil, fail(s.logger, "createQuote", err)
	}

	return &QuoteOutput{Body: QuoteResponse{Message: msgQuoteCreated, Quote: quote}}, nil
}

func (s *Server) handleDeleteQuote(ctx context.Context, input *DeleteQuoteInput) (*QuoteOutput, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := s.services.Quotes.Delete(ctx, session.UserID, input.ID)
	if err != nil {
		return nil, fail(s.logger, "deleteQuote", err)
	}

	return &QuoteOutput{Body: QuoteResponse{Message: msgQuoteDeleted, Quote: quote}}, nil
}

package api

import (
	"github.com/quotebook/quotebook-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Auth   *service.AuthService
	Quotes *service.QuoteService
}

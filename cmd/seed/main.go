// Package main provides a tool to seed the database with a demo user and tagged quotes.
//
// It goes through the same services as the API, so tags are reconciled exactly
// as they would be for real requests. Configuration comes from the environment
// (DATABASE_PATH, API_SECRET, optional .env).
//
// Usage:
//
//	API_SECRET=dev go run ./cmd/seed
//	API_SECRET=dev go run ./cmd/seed -username demo -password s3cret
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/config"
	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/logger"
	"github.com/quotebook/quotebook-server/internal/service"
	"github.com/quotebook/quotebook-server/internal/store/sqlite"
)

type seedQuote struct {
	text string
	tags []string
}

var demoQuotes = []seedQuote{
	{"Simplicity is prerequisite for reliability.", []string{"engineering", "dijkstra"}},
	{"Clear is better than clever.", []string{"go", "proverbs"}},
	{"Don't communicate by sharing memory, share memory by communicating.", []string{"go", "proverbs", "concurrency"}},
	{"A little copying is better than a little dependency.", []string{"go", "proverbs"}},
	{"Premature optimization is the root of all evil.", []string{"engineering", "knuth"}},
	{"Make it work, make it right, make it fast.", []string{"engineering"}},
}

func main() {
	username := flag.String("username", "demo", "Username of the demo account")
	password := flag.String("password", "demo-password", "Password of the demo account")
	flag.Parse()

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	if err := run(context.Background(), cfg, log, *username, *password); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, username, password string) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o750); err != nil {
		return err
	}

	st, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	tokens, err := auth.NewTokenServiceFromSecret(cfg.Auth.Secret)
	if err != nil {
		return err
	}

	creds := service.NewCredentialStore(st, log.Logger)
	authService := service.NewAuthService(creds, tokens, nil, log.Logger)
	quotes := service.NewQuoteService(st, service.NewTagReconciler(nil, log.Logger), log.Logger)

	userID, err := demoUser(ctx, creds, authService, username, password)
	if err != nil {
		return err
	}

	for _, q := range demoQuotes {
		if _, err := quotes.Create(ctx, userID, service.CreateQuoteRequest{Text: q.text, Tags: q.tags}); err != nil {
			return fmt.Errorf("create quote %q: %w", q.text, err)
		}
	}

	tags, err := st.ListTags(ctx)
	if err != nil {
		return err
	}

	log = log.WithFields(map[string]any{
		"database": cfg.Database.Path,
		"username": username,
	})
	log.Info("Seed complete", "quotes", len(demoQuotes), "tags", len(tags))
	for _, t := range tags {
		log.Debug("tag", "name", t.Name, "color", t.Color)
	}
	return nil
}

// demoUser signs the demo account up, or signs it in when it already exists.
func demoUser(ctx context.Context, creds *service.CredentialStore, authService *service.AuthService, username, password string) (int64, error) {
	result, err := authService.Signup(ctx, service.SignupRequest{Username: username, Password: password})
	if err == nil {
		return result.User.ID, nil
	}
	if !domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
		return 0, fmt.Errorf("signup: %w", err)
	}

	if _, err := authService.Signin(ctx, service.SigninRequest{Username: username, Password: password}); err != nil {
		return 0, fmt.Errorf("signin as existing %q: %w", username, err)
	}

	user, err := creds.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

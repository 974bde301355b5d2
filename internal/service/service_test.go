package service

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/metrics"
	"github.com/quotebook/quotebook-server/internal/store/sqlite"
)

// testEnv bundles the services under test over a temporary database.
type testEnv struct {
	store   *sqlite.Store
	tokens  *auth.TokenService
	metrics *metrics.Metrics
	creds   *CredentialStore
	auth    *AuthService
	tags    *TagReconciler
	quotes  *QuoteService
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	tokens, err := auth.NewTokenServiceFromSecret("service-test-secret")
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	creds := NewCredentialStore(s, nil)
	tags := NewTagReconciler(m, nil)

	return &testEnv{
		store:   s,
		tokens:  tokens,
		metrics: m,
		creds:   creds,
		auth:    NewAuthService(creds, tokens, m, nil),
		tags:    tags,
		quotes:  NewQuoteService(s, tags, nil),
	}
}

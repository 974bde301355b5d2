package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
)

func newTestTokenService(t *testing.T, opts ...TokenOption) *TokenService {
	t.Helper()
	svc, err := NewTokenServiceFromSecret("test-secret", opts...)
	require.NoError(t, err)
	return svc
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(42)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	userID, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_ExpiresAfter24Hours(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestTokenService(t, WithClock(func() time.Time { return issuedAt }))

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	claims, err := issuer.Claims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(86400), int64(claims.Expiration.Sub(claims.IssuedAt).Seconds()))
	assert.NotEmpty(t, claims.TokenID)

	justBefore := newTestTokenService(t, WithClock(func() time.Time {
		return issuedAt.Add(AccessTokenDuration - time.Second)
	}))
	_, err = justBefore.Validate(token)
	require.NoError(t, err)

	after := newTestTokenService(t, WithClock(func() time.Time {
		return issuedAt.Add(AccessTokenDuration + time.Second)
	}))
	_, err = after.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidityFollowsInjectedClock(t *testing.T) {
	issuedAt := time.Date(2001, 9, 9, 1, 46, 40, 0, time.UTC)
	now := issuedAt
	svc := newTestTokenService(t, WithClock(func() time.Time { return now }))

	token, err := svc.Issue(3)
	require.NoError(t, err)

	now = issuedAt.Add(time.Hour)
	userID, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), userID)

	now = issuedAt.Add(-time.Minute)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsOtherKeys(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenServiceFromSecret("some-other-secret")
	require.NoError(t, err)

	token, err := other.Issue(1)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)
	token, err := svc.Issue(1)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "AA"
	if tampered == token {
		tampered = token[:len(token)-2] + "BB"
	}

	for _, tok := range []string{"", "garbage", "v4.local.", "v4.public.abc", tampered} {
		_, err := svc.Validate(tok)
		require.Error(t, err, "token %q", tok)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domainerrors.CodeInvalidToken, domainErr.Code)
	}
}

func TestNewTokenService_KeyLength(t *testing.T) {
	_, err := NewTokenService(make([]byte, 16))
	assert.Error(t, err)

	_, err = NewTokenServiceFromSecret("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

package auth

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/id"
)

const (
	tokenIssuer   = "quotebook-server"
	tokenAudience = "quotebook-client"

	// AccessTokenDuration is the fixed lifetime of an access token.
	AccessTokenDuration = 24 * time.Hour
)

// ErrInvalidToken is the kind returned for any token that fails verification.
var ErrInvalidToken = domainerrors.ErrInvalidToken

// TokenService issues and verifies PASETO v4.local access tokens.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	now          func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service keyed by a 32-byte symmetric key.
func NewTokenService(key []byte, opts ...TokenOption) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("create PASETO symmetric key: %w", err)
	}

	s := &TokenService{symmetricKey: symmetricKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewTokenServiceFromSecret derives the token key from secret.
func NewTokenServiceFromSecret(secret string, opts ...TokenOption) (*TokenService, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	return NewTokenService(key, opts...)
}

// Issue creates an access token for userID that expires AccessTokenDuration from now.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(strconv.FormatInt(userID, 10))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(AccessTokenDuration))

	tokenID, err := id.Generate("tok")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	if err := token.Set("user_id", userID); err != nil {
		return "", fmt.Errorf("set user_id claim: %w", err)
	}

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Validate decrypts tokenString and returns the user it was issued for.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims, err := s.Claims(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Claims verifies tokenString and returns its full claim set.
func (s *TokenService) Claims(tokenString string) (*AccessClaims, error) {
	// ValidAt checks iat, nbf and exp against the injected clock.
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInvalidToken, "invalid token")
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInvalidToken, "invalid token claims")
	}
	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, domainerrors.InvalidToken("invalid token subject")
	}

	return &claims, nil
}

package auth

import (
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/id"
)

const (
	tokenIssuer   = "readup-server"
	tokenAudience = "readup-client"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string
)

// Claims are the identity claims carried by a verified bearer credential.
// The UserID here is the sole source of truth for ownership checks; it is
// never taken from request bodies.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// TokenService issues and verifies PASETO v4.local bearer tokens.
type TokenService struct {
	symmetricKey  paseto.V4SymmetricKey
	tokenDuration time.Duration
}

// NewTokenService creates a token service from a hex-encoded 256-bit key.
func NewTokenService(keyHex string, tokenDuration time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:  key,
		tokenDuration: tokenDuration,
	}, nil
}

// IssueToken creates an encrypted v4.local token for the user, valid for the
// configured window (24 hours by default).
func (s *TokenService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.tokenDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("user_id", user.ID)
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("username", user.Username)
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("email", user.Email)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken verifies and parses a bearer token.
// Returns the claims if valid, or an error if invalid or expired.
func (s *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &claims, nil
}

// TokenDuration returns the configured token lifetime.
func (s *TokenService) TokenDuration() time.Duration {
	return s.tokenDuration
}

// Package token issues and verifies the access tokens handed out at login.
// Tokens are PASETO v4.local: authenticated symmetric encryption, so the
// claims are both tamper-evident and opaque to the client.
package token

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

var ErrInvalidToken = errors.New("invalid token")

const usernameClaim = "username"

type Service struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
}

// NewService derives the symmetric key from its hex encoding. The key is
// loaded once at startup and shared for the process lifetime; rotating it
// invalidates all outstanding tokens.
func NewService(hexKey string, ttl time.Duration) (*Service, error) {
	key, err := paseto.V4SymmetricKeyFromHex(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode paseto secret key failed: %w", err)
	}
	return &Service{key: key, ttl: ttl}, nil
}

// Issue encrypts a claim set {username, iat, exp} under the service key.
func (s *Service) Issue(username string) (string, error) {
	return s.IssueWithTTL(username, s.ttl)
}

func (s *Service) IssueWithTTL(username string, ttl time.Duration) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: empty username", ErrInvalidToken)
	}
	now := time.Now()
	t := paseto.NewToken()
	t.SetString(usernameClaim, username)
	t.SetIssuedAt(now)
	t.SetExpiration(now.Add(ttl))
	return t.V4Encrypt(s.key, nil), nil
}

// Verify decrypts and authenticates the token and returns the username claim.
// It is a pure function of (key, token, current time): the parser's default
// rules reject expired tokens, and no server-side state is consulted.
func (s *Service) Verify(tokenString string) (string, error) {
	parser := paseto.NewParser()
	parsed, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	username, err := parsed.GetString(usernameClaim)
	if err != nil || username == "" {
		return "", fmt.Errorf("%w: missing username claim", ErrInvalidToken)
	}
	return username, nil
}

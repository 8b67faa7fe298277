package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long minted tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Issuer mints HS256 tokens accepted by middleware.EnsureValidToken when
// the server runs with JWT_SECRET instead of an Auth0 tenant.
type Issuer struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// CreateToken returns a signed token whose subject is userID.
func (i Issuer) CreateToken(userID, nickname string) (string, error) {
	if len(i.Secret) == 0 {
		return "", errors.New("auth: JWT secret key not set")
	}
	if userID == "" {
		return "", errors.New("auth: user ID is required")
	}

	ttl := i.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": userID,
		"iss": i.Issuer,
		"aud": []string{i.Audience},
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if nickname != "" {
		claims["nickname"] = nickname
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
}

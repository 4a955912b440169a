// Package auth gates the study lab endpoints behind short-lived JWTs.
// Clients exchange a shared access key for a token, then present it as a
// bearer credential.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lexfeed/pkg/config"
)

// minSecretLength is the floor for HS256 signing secrets. Anything shorter
// is brute-forceable offline.
const minSecretLength = 32

// ErrInvalidToken covers every token verification failure presented to
// clients; the specific cause is logged, not returned.
var ErrInvalidToken = errors.New("invalid or expired token")

// Config holds the auth settings loaded at startup.
type Config struct {
	Secret    []byte        // HS256 signing secret
	AccessKey string        // shared key exchanged for a token
	TokenTTL  time.Duration // issued token lifetime
}

// LoadConfig reads auth settings from the environment.
//
// Environment variables:
//   - JWT_SECRET: signing secret, at least 32 bytes (required)
//   - LAB_ACCESS_KEY: shared key clients exchange for a token (required)
//   - TOKEN_TTL: issued token lifetime (default: 1h)
func LoadConfig() (Config, error) {
	secret := config.GetEnvString("JWT_SECRET", "")
	if len(secret) < minSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", minSecretLength, len(secret))
	}

	accessKey := config.GetEnvString("LAB_ACCESS_KEY", "")
	if accessKey == "" {
		return Config{}, fmt.Errorf("LAB_ACCESS_KEY is required")
	}

	return Config{
		Secret:    []byte(secret),
		AccessKey: accessKey,
		TokenTTL:  config.GetEnvDuration("TOKEN_TTL", time.Hour),
	}, nil
}

// VerifyAccessKey compares a presented key against the configured one in
// constant time.
func (c Config) VerifyAccessKey(presented string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(c.AccessKey)) == 1
}

// IssueToken signs a new HS256 token for the study lab audience.
func IssueToken(cfg Config) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "lab",
		"iat": now.Unix(),
		"exp": now.Add(cfg.TokenTTL).Unix(),
	})

	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a presented token's signature and expiry.
func ParseToken(cfg Config, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

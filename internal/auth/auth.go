// Package auth validates bearer tokens and exposes the resulting caller identity.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
)

// Config holds signer verification parameters.
type Config struct {
	Secret string
	Issuer string
}

// Claims represents the payload extracted from a JWT.
type Claims struct {
	Subject   string
	Username  string
	Role      access.Role
	ExpiresAt time.Time
}

// ErrMissingToken is returned when the Authorization header is absent.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps parsing/validation errors.
var ErrInvalidToken = errors.New("invalid bearer token")

// Parse validates a JWT and returns normalized claims.
func Parse(token string, cfg Config) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if subject == "" || username == "" {
		return nil, ErrInvalidToken
	}

	role := access.RoleUser
	if raw, _ := claims["role"].(string); raw != "" {
		role = access.Role(strings.ToLower(raw))
	}
	if role != access.RoleUser && role != access.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &Claims{
		Subject:   subject,
		Username:  username,
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}

// Issue signs a token for caller valid for ttl.
func Issue(cfg Config, caller access.Caller, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      caller.ID,
		"username": caller.Username,
		"role":     string(caller.Role),
		"iss":      cfg.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(cfg.Secret))
}

// Caller converts the claims into the identity consumed by the domain layer.
func (c *Claims) Caller() access.Caller {
	if c == nil {
		return access.Caller{}
	}
	return access.Caller{ID: c.Subject, Username: c.Username, Role: c.Role}
}

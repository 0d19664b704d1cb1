// Package auth validates the bearer credential presented during the
// websocket handshake and resolves it to a fixed connection identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wardpulse/realtime-gateway/internal/models"
)

// Authentication failures. Each is fatal to the connection attempt; no room
// state is created before Authenticate returns.
var (
	ErrMissingToken    = errors.New("authentication error: no token provided")
	ErrInvalidToken    = errors.New("authentication error: invalid token")
	ErrExpiredToken    = errors.New("authentication error: token expired")
	ErrInactiveAccount = errors.New("authentication error: invalid user")
)

// User is an entry in the external user store.
type User struct {
	ID         string
	Role       string
	Department string
	IsActive   bool
}

// Directory looks identities up in the external user store. The lookup is
// the only blocking I/O in the realtime layer.
type Directory interface {
	Lookup(ctx context.Context, userID string) (User, error)
}

// ErrUserNotFound is returned by Directory implementations when no user
// exists for the id.
var ErrUserNotFound = errors.New("user not found")

// Claims are the JWT claims issued by the HTTP auth layer.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Authenticator validates tokens and resolves them against the directory.
type Authenticator struct {
	secret    []byte
	directory Directory
}

// New returns an Authenticator using the given HMAC secret and directory.
func New(secret string, directory Directory) *Authenticator {
	return &Authenticator{secret: []byte(secret), directory: directory}
}

// Authenticate validates token and returns the connection identity. The
// referenced user must exist and be active.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrExpiredToken
		}
		return models.Identity{}, ErrInvalidToken
	}
	if !parsed.Valid || claims.UserID == "" {
		return models.Identity{}, ErrInvalidToken
	}

	user, err := a.directory.Lookup(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.Identity{}, ErrInactiveAccount
		}
		return models.Identity{}, fmt.Errorf("directory lookup: %w", err)
	}
	if !user.IsActive {
		return models.Identity{}, ErrInactiveAccount
	}

	return models.Identity{
		UserID:     user.ID,
		Role:       user.Role,
		Department: user.Department,
	}, nil
}

// TokenFromRequest extracts the handshake token: the token query parameter
// takes precedence, then an Authorization: Bearer header.
func TokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Package identity resolves the current viewer from the session's access
// token. The engine only reads claims; issuing and refreshing tokens is the
// identity provider's job, except for the dev tokens the stub server mints.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rentmate-client-core/internal/remote"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoViewerID   = errors.New("token carries no user id")
)

// UserClaims is the claim set shared with the marketplace identity provider.
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager validates access tokens and mints development tokens for the
// stub server.
type TokenManager interface {
	MintDevToken(userID, email string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

func (m *tokenManager) MintDevToken(userID, email string, ttl time.Duration) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenSource supplies the session's current access token. A closure keeps
// the engine decoupled from wherever the token actually lives.
type TokenSource func() string

type viewerResolver struct {
	manager TokenManager
	source  TokenSource
}

// NewViewerResolver builds the engine-side IdentityService: it resolves the
// viewer id from the access token's claims without a network round trip.
func NewViewerResolver(manager TokenManager, source TokenSource) remote.IdentityService {
	return &viewerResolver{manager: manager, source: source}
}

func (r *viewerResolver) GetCurrentViewerID(ctx context.Context) (string, error) {
	claims, err := r.manager.ValidateToken(r.source())
	if err != nil {
		return "", &remote.Failure{Message: err.Error(), Code: remote.CodeUnauthorized}
	}
	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	if id == "" {
		return "", &remote.Failure{Message: ErrNoViewerID.Error(), Code: remote.CodeUnauthorized}
	}
	return id, nil
}

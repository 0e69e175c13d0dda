package identity

import (
	"fmt"
	"razorpay-checkout-demo/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager mints and validates the HS256 session tokens handed to the
// client at sign-in.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(sessionCfg *config.Session) *TokenManager {
	return &TokenManager{
		secret: []byte(sessionCfg.Secret),
		ttl:    sessionCfg.TTL,
	}
}

func (m *TokenManager) Mint(identity *Identity) (string, error) {
	now := time.Now()

	claims := &sessionClaims{
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		AvatarURL:   identity.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return token, nil
}

func (m *TokenManager) Parse(tokenString string) (*Identity, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token")
	}

	return &Identity{
		ID:          claims.Subject,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		AvatarURL:   claims.AvatarURL,
	}, nil
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

var ErrInvalidRole = errors.New("invalid role")

type Claims struct {
	Sub  string `json:"sub"`  // operator name
	Role string `json:"role"` // EDITOR/VIEWER
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for subject and returns it with its id.
func GenerateToken(secret, subject, role string, ttl time.Duration) (string, string, error) {
	if role != RoleEditor && role != RoleViewer {
		return "", "", ErrInvalidRole
	}
	jti := uuid.New().String()
	now := time.Now()
	c := Claims{
		Sub:  subject,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

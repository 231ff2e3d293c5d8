package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	jwtSecret []byte
	jwtTTL    = 60 * time.Minute
)

// Claims are the access-token claims: who the caller is and which role
// they held at issue time.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Init configures the signing secret and token lifetime. Must be called
// once at startup before tokens are issued or parsed.
func Init(secret string, ttlMinutes int) {
	jwtSecret = []byte(secret)
	if ttlMinutes > 0 {
		jwtTTL = time.Duration(ttlMinutes) * time.Minute
	}
}

// GenerateToken issues a signed HS256 access token.
func GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates the token and returns its claims. Any decode or
// signature failure yields ErrInvalidToken; there is no partially trusted
// result.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

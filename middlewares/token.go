package middlewares

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var errTokenExpiry = errors.New("token has no expiry")

// Claims carries the account id under "id", as the login response
// always has.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for the account id, valid for ttl.
func IssueToken(secret []byte, accountID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature, algorithm and expiry and returns the claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.ExpiresAt == nil {
		return nil, errTokenExpiry
	}
	return claims, nil
}

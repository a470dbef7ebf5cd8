package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessExpiry is the access token lifetime in seconds.
const DefaultAccessExpiry = 900 // 15 min

// TokenIssuer implements ports.TokenIssuer with HS256. Tokens are stateless:
// validity is determined by signature and expiry alone, there is no
// server-side session lookup.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	expirySecs int64
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func NewTokenIssuer(secret []byte, issuer string, expirySecs int64) *TokenIssuer {
	if expirySecs <= 0 {
		expirySecs = DefaultAccessExpiry
	}
	return &TokenIssuer{secret: secret, issuer: issuer, expirySecs: expirySecs}
}

func (t *TokenIssuer) IssueAccessToken(userID, email string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.expirySecs) * time.Second)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) ValidateAccessToken(tokenString string) (userID, email string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	return claims.Subject, claims.Email, nil
}

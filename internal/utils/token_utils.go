package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a token of one kind is presented where the other is expected.
var ErrWrongTokenType = errors.New("unexpected token type")

// AccessTokenClaims carries the identity fields embedded in an access token.
type AccessTokenClaims struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"fullname"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RefreshTokenClaims carries only the subject. The jti keeps two tokens issued
// within the same second distinct.
type RefreshTokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func registeredClaims(userID string, issuer string, now time.Time, expiry time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

// GenerateAccessJWT signs an access token for the given identity.
func GenerateAccessJWT(userID, email, username, fullName, secret string, expiry time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		Email:            email,
		Username:         username,
		FullName:         fullName,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: registeredClaims(userID, issuer, now, expiry),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, claims.ExpiresAt.Time, err
}

// GenerateRefreshJWT signs a refresh token for userID.
func GenerateRefreshJWT(userID, secret string, expiry time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	claims := RefreshTokenClaims{
		TokenType:        TokenTypeRefresh,
		RegisteredClaims: registeredClaims(userID, issuer, now, expiry),
	}
	claims.ID = uuid.NewString()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, claims.ExpiresAt.Time, err
}

func hmacKey(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
}

// ParseAccessJWT validates signature, expiry and token type of an access token.
func ParseAccessJWT(tokenString string, secret string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(secret), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.TokenType != TokenTypeAccess || claims.Subject == "" {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ParseRefreshJWT validates signature, expiry and token type of a refresh token.
func ParseRefreshJWT(tokenString string, secret string) (*RefreshTokenClaims, error) {
	claims := &RefreshTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(secret), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.TokenType != TokenTypeRefresh || claims.Subject == "" {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

package domain

import "time"

// TokenConfig is the signing configuration of the token service. It is built once
// at startup and never mutated.
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	Issuer        string
}

// TokenPair is the result of a login or refresh.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// AccessClaims are the identity claims carried by a verified access token.
type AccessClaims struct {
	UserID    string
	Email     string
	Username  string
	FullName  string
	ExpiresAt time.Time
}

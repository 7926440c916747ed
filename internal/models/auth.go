package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest carries the shared admin password. There are no user
// accounts: the gate exists to keep students out of the admin screens, not
// to authenticate anyone.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued admin token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// AdminClaims are the JWT claims embedded in admin tokens.
type AdminClaims struct {
	jwt.RegisteredClaims
}

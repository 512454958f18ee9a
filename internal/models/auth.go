package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User roles issued in access tokens.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// LoginRequest is the unified login payload for students and faculty.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the authenticated identity and access token.
// User is the sanitized Student or Faculty record, credential stripped.
type LoginResponse struct {
	UserType    string      `json:"user_type"`
	User        interface{} `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	IssuedAt    time.Time   `json:"issued_at"`
}

// JWTClaims are the registered and portal-specific access token claims.
type JWTClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

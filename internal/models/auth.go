package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"-"`
}

// LoginResponse returns the issued access token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	CoachID  string   `json:"coach_id,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	CoachID  string   `json:"coach_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthContext is the request-scoped actor passed explicitly to services that record who did what.
type AuthContext struct {
	UserID  string
	Role    UserRole
	CoachID string
}

// AuthContextFromClaims projects token claims onto an AuthContext.
func AuthContextFromClaims(claims *JWTClaims) AuthContext {
	if claims == nil {
		return AuthContext{}
	}
	return AuthContext{UserID: claims.UserID, Role: claims.Role, CoachID: claims.CoachID}
}

// IsStaff reports whether the actor may see data for every coach.
func (a AuthContext) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// CanViewCoach reports whether the actor may read the given coach's pay.
func (a AuthContext) CanViewCoach(coachID string) bool {
	if a.IsStaff() {
		return true
	}
	return a.Role == RoleCoach && a.CoachID != "" && a.CoachID == coachID
}

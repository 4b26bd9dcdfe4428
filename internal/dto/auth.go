package dto

import "time"

// TokenTypeBearer is the only token type issued
const TokenTypeBearer = "Bearer"

// LoginRequest is the body of login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by login
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RegisterResponse is returned by register
type RegisterResponse struct {
	User UserDetailsDTO `json:"user"`
	TokenResponse
}

// NewTokenResponse wraps a signed token
func NewTokenResponse(token string, expiresAt time.Time) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}
}

package auth

import (
	"github.com/aquaplan/aquatutor-backend/internal/profiles"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted access token and the signed-in profile.
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	User        *profiles.ProfileDTO `json:"user"`
}

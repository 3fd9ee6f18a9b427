package domain

import "github.com/stockhaus/stockhaus-backend/internal/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")
	ErrInvalidToken       = apperr.Unauthorized("Invalid or expired token")
	ErrTooManyAttempts    = apperr.RateLimited("Too many failed login attempts, try again later")
	ErrMissingCredentials = apperr.Validation("Username and password are required")
)

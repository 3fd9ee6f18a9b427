package domain

import "github.com/stockhaus/stockhaus-backend/internal/apperr"

var (
	ErrNotFound      = apperr.NotFound("Painting not found")
	ErrImageRequired = apperr.ValidationFields("Invalid painting", map[string]string{"imageBase64": "required"})
)

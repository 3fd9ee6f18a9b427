package domain

import "github.com/stockhaus/stockhaus-backend/internal/apperr"

var ErrNotFound = apperr.NotFound("Project not found")

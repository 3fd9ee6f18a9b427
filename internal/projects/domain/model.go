package domain

import (
	"strings"
	"time"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
)

// Project is an inventory session owned by exactly one user.
// ItemCount is a cached count of the project's paintings.
type Project struct {
	ID           string
	OwnerUserID  string
	Name         string
	Description  *string
	CreatedAt    time.Time
	LastAccessed time.Time
	ItemCount    int
}

type CreateInput struct {
	Name        string
	Description *string
}

// Normalize trims the name and drops a blank description, then validates.
func (in *CreateInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
	if in.Name == "" {
		return apperr.ValidationFields("Project name is required", map[string]string{"name": "required"})
	}
	return nil
}

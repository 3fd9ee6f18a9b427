package domain

import "github.com/google/uuid"

// ValidID reports whether id can name a stored row. Anything else is
// answered with ErrNotFound before reaching the database.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

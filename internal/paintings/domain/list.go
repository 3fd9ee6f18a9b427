package domain

import (
	"strings"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
)

type SortField string

const (
	SortSerialNumber SortField = "serialNumber"
	SortName         SortField = "name"
	SortCreatedAt    SortField = "createdAt"
	SortRate         SortField = "rate"
	SortQuantity     SortField = "quantity"
)

// ListOptions controls ordering and filtering of a project's paintings.
type ListOptions struct {
	Sort  SortField
	Desc  bool
	Query string
}

// DefaultListOptions lists newest first.
func DefaultListOptions() ListOptions {
	return ListOptions{Sort: SortCreatedAt, Desc: true}
}

// ParseListOptions reads the sort, order and q query parameters. Empty
// values fall back to the defaults; unknown values are rejected.
func ParseListOptions(sort, order, q string) (ListOptions, error) {
	opts := DefaultListOptions()

	switch SortField(sort) {
	case "":
	case SortSerialNumber, SortName, SortCreatedAt, SortRate, SortQuantity:
		opts.Sort = SortField(sort)
		opts.Desc = false
	default:
		return opts, apperr.ValidationFields("Invalid list options", map[string]string{"sort": "unsupported sort field"})
	}

	switch strings.ToLower(order) {
	case "":
	case "asc":
		opts.Desc = false
	case "desc":
		opts.Desc = true
	default:
		return opts, apperr.ValidationFields("Invalid list options", map[string]string{"order": "must be asc or desc"})
	}

	opts.Query = strings.TrimSpace(q)
	return opts, nil
}

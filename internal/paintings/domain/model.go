package domain

import (
	"math"
	"strings"
	"time"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
)

type Unit string

const (
	UnitCM Unit = "cm"
	UnitIN Unit = "in"
)

func (u Unit) Valid() bool {
	return u == UnitCM || u == UnitIN
}

// Painting is one inventory line inside a project. ImageKey locates the
// stored object and is never sent to clients.
type Painting struct {
	ID           string
	ProjectID    string
	OwnerUserID  string
	SerialNumber string
	Name         string
	Width        float64
	Height       float64
	Unit         Unit
	Quantity     int
	Rate         *float64
	ImageURL     string
	ImageKey     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fields is the complete set of client-editable attributes. Quantity stays a
// float until validated so that 2.5 is rejected rather than truncated.
type Fields struct {
	SerialNumber string
	Name         string
	Width        float64
	Height       float64
	Unit         Unit
	Quantity     float64
	Rate         *float64
}

// Validate trims text fields and checks every rule a new painting must meet.
func (f *Fields) Validate() error {
	f.SerialNumber = strings.TrimSpace(f.SerialNumber)
	f.Name = strings.TrimSpace(f.Name)

	bad := map[string]string{}
	if f.SerialNumber == "" {
		bad["serialNumber"] = "required"
	}
	if f.Name == "" {
		bad["name"] = "required"
	}
	checkDimension(bad, "width", f.Width)
	checkDimension(bad, "height", f.Height)
	if !f.Unit.Valid() {
		bad["unit"] = "must be cm or in"
	}
	checkQuantity(bad, f.Quantity)
	if f.Rate != nil {
		checkRate(bad, *f.Rate)
	}
	return invalid(bad)
}

func (f Fields) QuantityInt() int {
	return int(f.Quantity)
}

// Patch carries a partial update. Nil fields keep the stored value, rate
// included: a rate cannot be cleared once set.
type Patch struct {
	SerialNumber *string
	Name         *string
	Width        *float64
	Height       *float64
	Unit         *Unit
	Quantity     *float64
	Rate         *float64
}

// Validate checks the provided fields with the same rules as Fields.
func (p *Patch) Validate() error {
	bad := map[string]string{}
	if p.SerialNumber != nil {
		s := strings.TrimSpace(*p.SerialNumber)
		p.SerialNumber = &s
		if s == "" {
			bad["serialNumber"] = "required"
		}
	}
	if p.Name != nil {
		s := strings.TrimSpace(*p.Name)
		p.Name = &s
		if s == "" {
			bad["name"] = "required"
		}
	}
	if p.Width != nil {
		checkDimension(bad, "width", *p.Width)
	}
	if p.Height != nil {
		checkDimension(bad, "height", *p.Height)
	}
	if p.Unit != nil && !p.Unit.Valid() {
		bad["unit"] = "must be cm or in"
	}
	if p.Quantity != nil {
		checkQuantity(bad, *p.Quantity)
	}
	if p.Rate != nil {
		checkRate(bad, *p.Rate)
	}
	return invalid(bad)
}

// Apply merges a validated patch into dst.
func (p Patch) Apply(dst *Painting) {
	if p.SerialNumber != nil {
		dst.SerialNumber = *p.SerialNumber
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Width != nil {
		dst.Width = *p.Width
	}
	if p.Height != nil {
		dst.Height = *p.Height
	}
	if p.Unit != nil {
		dst.Unit = *p.Unit
	}
	if p.Quantity != nil {
		dst.Quantity = int(*p.Quantity)
	}
	if p.Rate != nil {
		r := *p.Rate
		dst.Rate = &r
	}
}

func checkDimension(bad map[string]string, field string, v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		bad[field] = "must be greater than 0"
	}
}

func checkQuantity(bad map[string]string, q float64) {
	if q < 1 || q != math.Trunc(q) || q > math.MaxInt32 {
		bad["quantity"] = "must be a positive integer"
	}
}

func checkRate(bad map[string]string, r float64) {
	if !(r >= 0) || math.IsInf(r, 0) {
		bad["rate"] = "must be 0 or greater"
	}
}

func invalid(bad map[string]string) error {
	if len(bad) == 0 {
		return nil
	}
	return apperr.ValidationFields("Invalid painting", bad)
}

// Stats are the dashboard totals for one project.
type Stats struct {
	UniqueTitles int
	TotalItems   int64
	TotalValue   float64
}

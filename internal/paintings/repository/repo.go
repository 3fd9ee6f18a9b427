package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stockhaus/stockhaus-backend/internal/paintings/domain"
)

const paintingColumns = `id::text, project_id::text, user_id::text, serial_number, name, width, height, unit, quantity, rate, image_url, image_key, created_at, updated_at`

// sortColumns whitelists the ORDER BY expressions a client may pick.
var sortColumns = map[domain.SortField]string{
	domain.SortSerialNumber: "serial_number",
	domain.SortName:         "lower(name)",
	domain.SortCreatedAt:    "created_at",
	domain.SortRate:         "rate",
	domain.SortQuantity:     "quantity",
}

// PaintingRepository persists paintings. Every query is scoped by project id;
// callers verify project ownership first.
type PaintingRepository struct {
	db *sql.DB
}

func NewPaintingRepository(db *sql.DB) *PaintingRepository {
	return &PaintingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPainting(row rowScanner) (*domain.Painting, error) {
	var (
		p    domain.Painting
		unit string
		rate sql.NullFloat64
	)
	err := row.Scan(&p.ID, &p.ProjectID, &p.OwnerUserID, &p.SerialNumber, &p.Name,
		&p.Width, &p.Height, &unit, &p.Quantity, &rate, &p.ImageURL, &p.ImageKey,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Unit = domain.Unit(unit)
	if rate.Valid {
		p.Rate = &rate.Float64
	}
	return &p, nil
}

func nullRate(r *float64) sql.NullFloat64 {
	if r == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *r, Valid: true}
}

func orderBy(opts domain.ListOptions) string {
	col, ok := sortColumns[opts.Sort]
	if !ok {
		col = sortColumns[domain.SortCreatedAt]
	}
	dir := "ASC"
	if opts.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s NULLS LAST, created_at DESC, id", col, dir)
}

// likePattern escapes LIKE metacharacters so q matches literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// List returns the project's paintings in the requested order.
func (r *PaintingRepository) List(ctx context.Context, projectID string, opts domain.ListOptions) ([]domain.Painting, error) {
	q := `SELECT ` + paintingColumns + ` FROM paintings WHERE project_id = $1`
	args := []any{projectID}
	if opts.Query != "" {
		q += ` AND (name ILIKE $2 OR serial_number ILIKE $2)`
		args = append(args, likePattern(opts.Query))
	}
	q += ` ORDER BY ` + orderBy(opts)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list paintings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Painting, 0, 32)
	for rows.Next() {
		p, err := scanPainting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan painting: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list paintings: %w", err)
	}
	return out, nil
}

// Insert stores p and returns the row as persisted.
func (r *PaintingRepository) Insert(ctx context.Context, p *domain.Painting) (*domain.Painting, error) {
	const q = `
INSERT INTO paintings (project_id, user_id, serial_number, name, width, height, unit, quantity, rate, image_url, image_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + paintingColumns + `;
`
	out, err := scanPainting(r.db.QueryRowContext(ctx, q,
		p.ProjectID, p.OwnerUserID, p.SerialNumber, p.Name, p.Width, p.Height,
		string(p.Unit), p.Quantity, nullRate(p.Rate), p.ImageURL, p.ImageKey,
		p.CreatedAt, p.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert painting: %w", err)
	}
	return out, nil
}

// GetInProject returns the painting only if it belongs to projectID.
func (r *PaintingRepository) GetInProject(ctx context.Context, projectID, paintingID string) (*domain.Painting, error) {
	if !domain.ValidID(paintingID) {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT ` + paintingColumns + `
FROM paintings
WHERE id = $1 AND project_id = $2;
`
	p, err := scanPainting(r.db.QueryRowContext(ctx, q, paintingID, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get painting: %w", err)
	}
	return p, nil
}

// Update writes every editable column of p, matched on id and project.
func (r *PaintingRepository) Update(ctx context.Context, p *domain.Painting) (*domain.Painting, error) {
	const q = `
UPDATE paintings
SET serial_number = $3, name = $4, width = $5, height = $6, unit = $7,
    quantity = $8, rate = $9, image_url = $10, image_key = $11, updated_at = $12
WHERE id = $1 AND project_id = $2
RETURNING ` + paintingColumns + `;
`
	out, err := scanPainting(r.db.QueryRowContext(ctx, q,
		p.ID, p.ProjectID, p.SerialNumber, p.Name, p.Width, p.Height,
		string(p.Unit), p.Quantity, nullRate(p.Rate), p.ImageURL, p.ImageKey,
		p.UpdatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update painting: %w", err)
	}
	return out, nil
}

// Delete removes the painting and returns the image key it referenced.
func (r *PaintingRepository) Delete(ctx context.Context, projectID, paintingID string) (string, error) {
	if !domain.ValidID(paintingID) {
		return "", domain.ErrNotFound
	}

	var key string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM paintings WHERE id = $1 AND project_id = $2 RETURNING image_key`,
		paintingID, projectID).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("delete painting: %w", err)
	}
	return key, nil
}

// Stats aggregates the dashboard totals. A missing rate counts as zero value.
func (r *PaintingRepository) Stats(ctx context.Context, projectID string) (*domain.Stats, error) {
	const q = `
SELECT count(*), coalesce(sum(quantity), 0), coalesce(sum(quantity * coalesce(rate, 0)), 0)
FROM paintings
WHERE project_id = $1;
`
	var s domain.Stats
	if err := r.db.QueryRowContext(ctx, q, projectID).Scan(&s.UniqueTitles, &s.TotalItems, &s.TotalValue); err != nil {
		return nil, fmt.Errorf("painting stats: %w", err)
	}
	return &s, nil
}

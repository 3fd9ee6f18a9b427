package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockhaus/stockhaus-backend/internal/db"
	"github.com/stockhaus/stockhaus-backend/internal/projects/domain"
)

const projectColumns = `id::text, user_id::text, name, description, created_at, last_accessed, item_count`

// ProjectRepository provides persistence operations for projects. Every
// per-project query matches on id and owner together.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p    domain.Project
		desc sql.NullString
	)
	if err := row.Scan(&p.ID, &p.OwnerUserID, &p.Name, &desc, &p.CreatedAt, &p.LastAccessed, &p.ItemCount); err != nil {
		return nil, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	return &p, nil
}

// List returns the user's projects, most recently accessed first.
func (r *ProjectRepository) List(ctx context.Context, userID string) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	if !domain.ValidID(userID) {
		return out, nil
	}

	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1
ORDER BY last_accessed DESC, created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Create inserts an empty project stamped with now.
func (r *ProjectRepository) Create(ctx context.Context, userID string, in domain.CreateInput, now time.Time) (*domain.Project, error) {
	const q = `
INSERT INTO projects (user_id, name, description, created_at, last_accessed, item_count)
VALUES ($1, $2, $3, $4, $4, 0)
RETURNING ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, userID, in.Name, in.Description, now))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// GetOwned returns the project only if userID owns it.
func (r *ProjectRepository) GetOwned(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	if !domain.ValidID(projectID) || !domain.ValidID(userID) {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1 AND user_id = $2;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, projectID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Touch marks an owned project as accessed at now.
func (r *ProjectRepository) Touch(ctx context.Context, userID, projectID string, now time.Time) (*domain.Project, error) {
	if !domain.ValidID(projectID) || !domain.ValidID(userID) {
		return nil, domain.ErrNotFound
	}

	const q = `
UPDATE projects
SET last_accessed = $3
WHERE id = $1 AND user_id = $2
RETURNING ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, projectID, userID, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("touch project: %w", err)
	}
	return p, nil
}

// Delete removes an owned project and, through the foreign key cascade, its
// paintings. It returns the image keys those paintings referenced.
func (r *ProjectRepository) Delete(ctx context.Context, userID, projectID string) ([]string, error) {
	if !domain.ValidID(projectID) || !domain.ValidID(userID) {
		return nil, domain.ErrNotFound
	}

	var keys []string
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id::text FROM projects WHERE id = $1 AND user_id = $2 FOR UPDATE`, projectID, userID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		keys, err = imageKeys(ctx, tx, projectID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete project: %w", err)
	}
	return keys, nil
}

// RefreshMetadata recomputes item_count and bumps last_accessed in one statement.
func (r *ProjectRepository) RefreshMetadata(ctx context.Context, projectID string) error {
	const q = `
UPDATE projects
SET item_count = (SELECT count(*) FROM paintings WHERE project_id = $1),
    last_accessed = now()
WHERE id = $1;
`
	if _, err := r.db.ExecContext(ctx, q, projectID); err != nil {
		return fmt.Errorf("refresh project metadata: %w", err)
	}
	return nil
}

// ReconcileItemCounts corrects every drifted item_count without touching
// last_accessed and returns how many projects changed.
func (r *ProjectRepository) ReconcileItemCounts(ctx context.Context) (int64, error) {
	const q = `
UPDATE projects p
SET item_count = c.cnt
FROM (
  SELECT pr.id, count(pa.id)::int AS cnt
  FROM projects pr
  LEFT JOIN paintings pa ON pa.project_id = pr.id
  GROUP BY pr.id
) c
WHERE p.id = c.id AND p.item_count <> c.cnt;
`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("reconcile item counts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reconcile item counts: %w", err)
	}
	return n, nil
}

func imageKeys(ctx context.Context, tx db.DBTX, projectID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT image_key FROM paintings WHERE project_id = $1 AND image_key <> ''`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

// EntityRepo reads the seeded PUBLIC_ENTITIES reference table.
type EntityRepo struct {
	db *sql.DB
}

func NewEntityRepo(db *sql.DB) *EntityRepo { return &EntityRepo{db: db} }

// FindAll returns every entity ordered by name.
func (r *EntityRepo) FindAll(ctx context.Context) ([]model.PublicEntity, error) {
	const q = "SELECT id_public_entity, name FROM PUBLIC_ENTITIES ORDER BY name ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	out := make([]model.PublicEntity, 0)
	for rows.Next() {
		var e model.PublicEntity
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FindByID returns ErrEntityNotFound when the id is unknown.
func (r *EntityRepo) FindByID(ctx context.Context, id uint64) (*model.PublicEntity, error) {
	const q = "SELECT id_public_entity, name FROM PUBLIC_ENTITIES WHERE id_public_entity = ?"
	var e model.PublicEntity
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("find entity: %w", err)
	}
	return &e, nil
}

// Exists reports whether an entity with the id is present.
func (r *EntityRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = "SELECT 1 FROM PUBLIC_ENTITIES WHERE id_public_entity = ? LIMIT 1"
	var one int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("entity exists: %w", err)
	}
	return true, nil
}

// Package repository contains data access logic separated from HTTP handlers.
// This file holds the complaint queries: filing, listing active complaints,
// soft deletion, status changes and the two aggregations behind the stats
// view.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

// ComplaintRepo encapsulates all database queries related to complaints.
type ComplaintRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewComplaintRepo constructs a ComplaintRepo with the provided DB handle.
func NewComplaintRepo(db *sql.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db, now: time.Now}
}

// Create inserts an active complaint with the default status and returns
// its id.  Entity existence is checked by the caller.
func (r *ComplaintRepo) Create(ctx context.Context, nc model.NewComplaint) (uint64, error) {
	const q = `INSERT INTO COMPLAINTS (id_public_entity, description, complaint_status, status, created_at, updated_at)
	           VALUES (?, ?, ?, 1, ?, ?)`
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx, q, nc.PublicEntityID, nc.Description, model.StatusOpen, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert complaint: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert complaint: %w", err)
	}
	return uint64(id), nil
}

// FindAllActive returns every active complaint joined with its entity
// name, newest first.
func (r *ComplaintRepo) FindAllActive(ctx context.Context) ([]model.ComplaintView, error) {
	const q = `SELECT c.id_complaint, c.description, c.complaint_status, c.created_at, COALESCE(p.name, '')
	           FROM COMPLAINTS c
	           LEFT JOIN PUBLIC_ENTITIES p ON c.id_public_entity = p.id_public_entity
	           WHERE c.status = 1
	           ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	out := make([]model.ComplaintView, 0)
	for rows.Next() {
		var v model.ComplaintView
		if err := rows.Scan(&v.ID, &v.Description, &v.Status, &v.CreatedAt, &v.PublicEntity); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return out, nil
}

// FindByID fetches an active complaint by id.  Soft-deleted complaints are
// reported as ErrComplaintNotFound.
func (r *ComplaintRepo) FindByID(ctx context.Context, id uint64) (*model.ComplaintView, error) {
	const q = `SELECT c.id_complaint, c.description, c.complaint_status, c.created_at, c.updated_at, COALESCE(p.name, '')
	           FROM COMPLAINTS c
	           LEFT JOIN PUBLIC_ENTITIES p ON c.id_public_entity = p.id_public_entity
	           WHERE c.id_complaint = ? AND c.status = 1`
	var (
		v       model.ComplaintView
		updated sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Description, &v.Status, &v.CreatedAt, &updated, &v.PublicEntity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	if updated.Valid {
		v.UpdatedAt = &updated.Time
	}
	return &v, nil
}

// SoftDelete flips the active flag off.  The update is unconditional
// (last writer wins); ErrComplaintNotFound means no row has that id.
func (r *ComplaintRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = "UPDATE COMPLAINTS SET status = 0 WHERE id_complaint = ?"
	return r.execMatched(ctx, q, id)
}

// UpdateStatus sets the lifecycle status and stamps updated_at.
func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id uint64, status model.ComplaintStatus) error {
	const q = "UPDATE COMPLAINTS SET complaint_status = ?, updated_at = ? WHERE id_complaint = ?"
	return r.execMatched(ctx, q, status, r.now().UTC(), id)
}

func (r *ComplaintRepo) execMatched(ctx context.Context, q string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	if n == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

// StatsByEntity counts active complaints per entity, largest first.
func (r *ComplaintRepo) StatsByEntity(ctx context.Context) ([]model.EntityStat, error) {
	const q = `SELECT p.name AS public_entity, COUNT(c.id_complaint) AS total_complaints
	           FROM COMPLAINTS c
	           JOIN PUBLIC_ENTITIES p ON c.id_public_entity = p.id_public_entity
	           WHERE c.status = 1
	           GROUP BY p.id_public_entity, p.name
	           ORDER BY total_complaints DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("stats by entity: %w", err)
	}
	defer rows.Close()

	out := make([]model.EntityStat, 0)
	for rows.Next() {
		var s model.EntityStat
		if err := rows.Scan(&s.PublicEntity, &s.TotalComplaints); err != nil {
			return nil, fmt.Errorf("stats by entity: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// StatsByStatus counts active complaints per lifecycle status.
func (r *ComplaintRepo) StatsByStatus(ctx context.Context) ([]model.StatusStat, error) {
	const q = `SELECT complaint_status, COUNT(id_complaint) AS total
	           FROM COMPLAINTS
	           WHERE status = 1
	           GROUP BY complaint_status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("stats by status: %w", err)
	}
	defer rows.Close()

	out := make([]model.StatusStat, 0)
	for rows.Next() {
		var s model.StatusStat
		if err := rows.Scan(&s.Status, &s.Total); err != nil {
			return nil, fmt.Errorf("stats by status: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

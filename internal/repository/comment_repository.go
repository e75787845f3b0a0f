package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

// CommentRepo stores anonymous comments in ANONYMOUS_COMMENTS.
type CommentRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db, now: time.Now} }

// FindByComplaintID lists the active comments of a complaint, newest first.
func (r *CommentRepo) FindByComplaintID(ctx context.Context, complaintID uint64) ([]model.Comment, error) {
	const q = `SELECT id_comment, comment_text, created_at
	           FROM ANONYMOUS_COMMENTS
	           WHERE id_complaint = ? AND status = 1
	           ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, complaintID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := make([]model.Comment, 0)
	for rows.Next() {
		c := model.Comment{ComplaintID: complaintID}
		if err := rows.Scan(&c.ID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts an active comment and returns its id.
func (r *CommentRepo) Create(ctx context.Context, complaintID uint64, text string) (uint64, error) {
	const q = "INSERT INTO ANONYMOUS_COMMENTS (id_complaint, comment_text, status, created_at) VALUES (?, ?, 1, ?)"
	res, err := r.db.ExecContext(ctx, q, complaintID, text, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return uint64(id), nil
}

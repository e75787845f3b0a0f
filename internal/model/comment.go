package model

import "time"

// Comment is an anonymous comment attached to a complaint.  No author
// identity is stored.
type Comment struct {
	ID          uint64    `json:"id_comment"`   // ANONYMOUS_COMMENTS.id_comment
	ComplaintID uint64    `json:"-"`            // ANONYMOUS_COMMENTS.id_complaint
	Text        string    `json:"comment_text"` // ANONYMOUS_COMMENTS.comment_text
	CreatedAt   time.Time `json:"created_at"`   // ANONYMOUS_COMMENTS.created_at
}

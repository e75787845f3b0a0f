package model

import "time"

// ComplaintStatus is the lifecycle state of a complaint as stored in
// COMPLAINTS.complaint_status.
type ComplaintStatus string

const (
	StatusOpen     ComplaintStatus = "abierta"
	StatusInReview ComplaintStatus = "en_revision"
	StatusClosed   ComplaintStatus = "cerrada"
)

// ComplaintStatuses lists the accepted status literals in display order.
var ComplaintStatuses = []ComplaintStatus{StatusOpen, StatusInReview, StatusClosed}

// Valid reports whether s is one of the enumerated literals.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInReview, StatusClosed:
		return true
	}
	return false
}

// Complaint represents a row in the `COMPLAINTS` table.  Rows are never
// hard-deleted; Active=false marks a soft-deleted complaint.
//
// Fields:
//
//	ID             – primary key identifier (id_complaint).
//	PublicEntityID – entity the complaint is filed against.
//	Description    – citizen supplied text, trimmed.
//	Active         – status column (1 active, 0 soft-deleted).
//	Status         – lifecycle status (complaint_status).
//	CreatedAt      – timestamp of creation.
//	UpdatedAt      – timestamp of the last status change.
type Complaint struct {
	ID             uint64          // COMPLAINTS.id_complaint
	PublicEntityID uint64          // COMPLAINTS.id_public_entity
	Description    string          // COMPLAINTS.description
	Active         bool            // COMPLAINTS.status
	Status         ComplaintStatus // COMPLAINTS.complaint_status
	CreatedAt      time.Time       // COMPLAINTS.created_at
	UpdatedAt      time.Time       // COMPLAINTS.updated_at
}

// NewComplaint is the validated input for filing a complaint.
type NewComplaint struct {
	PublicEntityID uint64
	Description    string
}

// ComplaintView is an active complaint joined with the name of the entity it
// was filed against.  It is the projection returned to views and JSON
// clients.
type ComplaintView struct {
	ID           uint64          `json:"id_complaint"`
	Description  string          `json:"description"`
	Status       ComplaintStatus `json:"complaint_status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	PublicEntity string          `json:"public_entity"`
}

// EntityStat is one row of the complaints-per-entity aggregation.
type EntityStat struct {
	PublicEntity    string `json:"public_entity"`
	TotalComplaints int64  `json:"total_complaints"`
}

// StatusStat is one row of the complaints-per-status aggregation.
type StatusStat struct {
	Status ComplaintStatus `json:"complaint_status"`
	Total  int64           `json:"total"`
}

// ComplaintStats bundles both aggregations for the stats view.
type ComplaintStats struct {
	ByEntity []EntityStat `json:"entityStats"`
	ByStatus []StatusStat `json:"statusStats"`
}

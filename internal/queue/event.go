// Package queue defines message payloads exchanged over the message broker
// together with the publisher used by the web process and the consumer run
// by cmd/auditlog.  Only complaint audit events travel through the broker;
// notification emails never do.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// QueueName is the durable queue carrying complaint audit events.
const QueueName = "complaints.events"

// Event types.
const (
	EventComplaintFiled   = "complaint.filed"
	EventComplaintDeleted = "complaint.deleted"
	EventStatusUpdated    = "complaint.status_updated"
	EventCommentAdded     = "comment.added"
)

// ComplaintEvent is published after a complaint mutation has been committed.
// It contains enough information for downstream consumers to keep an audit
// trail without querying the primary database.
type ComplaintEvent struct {
	ID             string    `json:"event_id"`
	Type           string    `json:"type"`
	ComplaintID    uint64    `json:"id_complaint"`
	PublicEntityID uint64    `json:"id_public_entity,omitempty"`
	Status         string    `json:"complaint_status,omitempty"`
	CommentID      uint64    `json:"id_comment,omitempty"`
	Username       string    `json:"username,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh id and the current UTC time.
func NewEvent(eventType string, complaintID uint64) ComplaintEvent {
	return ComplaintEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		ComplaintID: complaintID,
		OccurredAt:  time.Now().UTC(),
	}
}

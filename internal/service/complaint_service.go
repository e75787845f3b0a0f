// Package service orchestrates validation, repository calls and the
// cross-entity checks of the complaint workflow.  Every operation returns a
// result.Result; store errors are logged and turned into 500 envelopes
// without leaking detail.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/quejasboyaca/complaint-service/internal/auth"
	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/queue"
	"github.com/quejasboyaca/complaint-service/internal/repository"
	"github.com/quejasboyaca/complaint-service/internal/result"
	"github.com/quejasboyaca/complaint-service/internal/validation"
)

// ComplaintStore is implemented by repository.ComplaintRepo.
type ComplaintStore interface {
	Create(ctx context.Context, nc model.NewComplaint) (uint64, error)
	FindAllActive(ctx context.Context) ([]model.ComplaintView, error)
	FindByID(ctx context.Context, id uint64) (*model.ComplaintView, error)
	SoftDelete(ctx context.Context, id uint64) error
	UpdateStatus(ctx context.Context, id uint64, status model.ComplaintStatus) error
	StatsByEntity(ctx context.Context) ([]model.EntityStat, error)
	StatsByStatus(ctx context.Context) ([]model.StatusStat, error)
}

// EntityStore is implemented by repository.EntityRepo.
type EntityStore interface {
	FindAll(ctx context.Context) ([]model.PublicEntity, error)
	Exists(ctx context.Context, id uint64) (bool, error)
}

// CommentStore is implemented by repository.CommentRepo.
type CommentStore interface {
	FindByComplaintID(ctx context.Context, complaintID uint64) ([]model.Comment, error)
	Create(ctx context.Context, complaintID uint64, text string) (uint64, error)
}

// SessionValidator is the slice of auth.Service the mutation gate needs.
type SessionValidator interface {
	ValidateSession(ctx context.Context, username string) result.Result
}

// EventSink receives audit events after a mutation commits.
type EventSink interface {
	Emit(ev queue.ComplaintEvent)
}

type nopSink struct{}

func (nopSink) Emit(queue.ComplaintEvent) {}

// User-facing messages.
const (
	MsgComplaintFiled     = "Queja registrada exitosamente"
	MsgUnknownEntity      = "La entidad pública especificada no existe"
	MsgCreateFailed       = "Error interno al crear la queja"
	MsgListFailed         = "Error al obtener las quejas"
	MsgDeleted            = "Queja eliminada exitosamente"
	MsgDeleteNeedsUser    = "Se requiere un usuario con sesión activa para realizar esta acción"
	MsgUpdateNeedsUser    = "Se requiere un usuario para realizar esta acción"
	MsgSessionInactive    = "Sesión inactiva. Por favor, inicie sesión nuevamente."
	MsgNotFound           = "Queja no encontrada"
	MsgDeleteFailed       = "Error interno al eliminar la queja"
	MsgStatusUpdated      = "Estado de la queja actualizado a: %s"
	MsgUpdateFailed       = "Error interno al actualizar el estado de la queja"
	MsgStatsFailed        = "Error al obtener las estadísticas"
	MsgEntitiesFailed     = "Error al obtener las entidades"
	MsgDetailsFailed      = "Error al obtener los detalles de la queja"
	MsgCommentsFailed     = "Error al obtener los comentarios"
	MsgCommentAdded       = "Comentario agregado exitosamente"
	MsgComplaintNotActive = "Queja no encontrada o inactiva"
	MsgCommentFailed      = "Error interno al agregar el comentario"
)

// ComplaintService implements the complaint workflow.
type ComplaintService struct {
	complaints ComplaintStore
	entities   EntityStore
	comments   CommentStore
	sessions   SessionValidator
	events     EventSink
	logger     zerolog.Logger
}

// NewComplaintService wires the stores and the session gate.  events may be
// nil, in which case nothing is emitted.
func NewComplaintService(complaints ComplaintStore, entities EntityStore, comments CommentStore,
	sessions SessionValidator, events EventSink, logger zerolog.Logger) *ComplaintService {
	if events == nil {
		events = nopSink{}
	}
	return &ComplaintService{
		complaints: complaints,
		entities:   entities,
		comments:   comments,
		sessions:   sessions,
		events:     events,
		logger:     logger.With().Str("component", "complaints").Logger(),
	}
}

func rejected(err error) result.Result {
	if ve, ok := validation.As(err); ok {
		return result.Fail(ve.StatusCode, ve.Message)
	}
	return result.Fail(http.StatusBadRequest, err.Error())
}

func (s *ComplaintService) internal(err error, op, msg string) result.Result {
	s.logger.Error().Err(err).Str("op", op).Msg("complaint operation failed")
	return result.Fail(http.StatusInternalServerError, msg)
}

// CreateComplaint validates and files a complaint with the default status.
func (s *ComplaintService) CreateComplaint(ctx context.Context, entity, description string) result.Result {
	nc, err := validation.Complaint(entity, description)
	if err != nil {
		return rejected(err)
	}
	exists, err := s.entities.Exists(ctx, nc.PublicEntityID)
	if err != nil {
		return s.internal(err, "create", MsgCreateFailed)
	}
	if !exists {
		return result.Fail(http.StatusBadRequest, MsgUnknownEntity)
	}
	id, err := s.complaints.Create(ctx, nc)
	if err != nil {
		return s.internal(err, "create", MsgCreateFailed)
	}

	ev := queue.NewEvent(queue.EventComplaintFiled, id)
	ev.PublicEntityID = nc.PublicEntityID
	ev.Status = string(model.StatusOpen)
	s.events.Emit(ev)

	return result.Created(MsgComplaintFiled, map[string]uint64{"id_complaint": id})
}

// GetAllComplaints lists active complaints, newest first.
func (s *ComplaintService) GetAllComplaints(ctx context.Context) result.Result {
	list, err := s.complaints.FindAllActive(ctx)
	if err != nil {
		return s.internal(err, "list", MsgListFailed)
	}
	return result.OK("", list)
}

// GetAllEntities lists public entities alphabetically.
func (s *ComplaintService) GetAllEntities(ctx context.Context) result.Result {
	list, err := s.entities.FindAll(ctx)
	if err != nil {
		return s.internal(err, "entities", MsgEntitiesFailed)
	}
	return result.OK("", list)
}

// requireSession refuses with 401 unless username has an active session.
// A failed validation of any kind (unknown user, upstream down) counts as
// inactive.
func (s *ComplaintService) requireSession(ctx context.Context, username string) (result.Result, bool) {
	vr := s.sessions.ValidateSession(ctx, username)
	if !auth.IsActive(vr) {
		return result.Fail(http.StatusUnauthorized, MsgSessionInactive), false
	}
	return result.Result{}, true
}

// DeleteComplaint soft-deletes a complaint on behalf of an authenticated
// administrator.  The session check runs before any mutation.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, rawID, username string) result.Result {
	id, err := validation.ComplaintID(rawID)
	if err != nil {
		return rejected(err)
	}
	if username == "" {
		return result.Fail(http.StatusBadRequest, MsgDeleteNeedsUser)
	}
	if r, ok := s.requireSession(ctx, username); !ok {
		return r
	}
	if err := s.complaints.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return result.Fail(http.StatusNotFound, MsgNotFound)
		}
		return s.internal(err, "delete", MsgDeleteFailed)
	}

	ev := queue.NewEvent(queue.EventComplaintDeleted, id)
	ev.Username = username
	s.events.Emit(ev)

	return result.OK(MsgDeleted, nil)
}

// UpdateComplaintStatus changes the lifecycle status on behalf of an
// authenticated administrator.  Checks run in order: id, status, username,
// session.
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, rawID, rawStatus, username string) result.Result {
	id, err := validation.ComplaintID(rawID)
	if err != nil {
		return rejected(err)
	}
	status, err := validation.Status(rawStatus)
	if err != nil {
		return rejected(err)
	}
	if username == "" {
		return result.Fail(http.StatusBadRequest, MsgUpdateNeedsUser)
	}
	if r, ok := s.requireSession(ctx, username); !ok {
		return r
	}
	if err := s.complaints.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return result.Fail(http.StatusNotFound, MsgNotFound)
		}
		return s.internal(err, "update-status", MsgUpdateFailed)
	}

	ev := queue.NewEvent(queue.EventStatusUpdated, id)
	ev.Status = string(status)
	ev.Username = username
	s.events.Emit(ev)

	return result.OK(fmt.Sprintf(MsgStatusUpdated, status), nil)
}

// GetComplaintsStats runs both aggregations concurrently.
func (s *ComplaintService) GetComplaintsStats(ctx context.Context) result.Result {
	var stats model.ComplaintStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.ByEntity, err = s.complaints.StatsByEntity(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ByStatus, err = s.complaints.StatsByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return s.internal(err, "stats", MsgStatsFailed)
	}
	return result.OK("", stats)
}

// ComplaintDetails is the payload of GetComplaintDetails.
type ComplaintDetails struct {
	Complaint *model.ComplaintView `json:"complaint"`
	Comments  []model.Comment      `json:"comments"`
}

// GetComplaintDetails fetches a complaint and its comments concurrently.
func (s *ComplaintService) GetComplaintDetails(ctx context.Context, rawID string) result.Result {
	id, err := validation.ComplaintID(rawID)
	if err != nil {
		return rejected(err)
	}
	var details ComplaintDetails
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details.Complaint, err = s.complaints.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		details.Comments, err = s.comments.FindByComplaintID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return result.Fail(http.StatusNotFound, MsgNotFound)
		}
		return s.internal(err, "details", MsgDetailsFailed)
	}
	return result.OK("", details)
}

// GetComments lists the active comments of a complaint.
func (s *ComplaintService) GetComments(ctx context.Context, rawID string) result.Result {
	id, err := validation.ComplaintID(rawID)
	if err != nil {
		return rejected(err)
	}
	list, err := s.comments.FindByComplaintID(ctx, id)
	if err != nil {
		return s.internal(err, "comments", MsgCommentsFailed)
	}
	return result.OK("", list)
}

// AddComment attaches an anonymous comment to an active complaint.
func (s *ComplaintService) AddComment(ctx context.Context, rawID, text string) result.Result {
	id, body, err := validation.Comment(rawID, text)
	if err != nil {
		return rejected(err)
	}
	if _, err := s.complaints.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return result.Fail(http.StatusNotFound, MsgComplaintNotActive)
		}
		return s.internal(err, "add-comment", MsgCommentFailed)
	}
	commentID, err := s.comments.Create(ctx, id, body)
	if err != nil {
		return s.internal(err, "add-comment", MsgCommentFailed)
	}

	ev := queue.NewEvent(queue.EventCommentAdded, id)
	ev.CommentID = commentID
	s.events.Emit(ev)

	return result.Created(MsgCommentAdded, map[string]uint64{"id_comment": commentID})
}

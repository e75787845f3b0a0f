package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/render"
	"github.com/quejasboyaca/complaint-service/internal/result"
	"github.com/quejasboyaca/complaint-service/internal/service"
)

// ComplaintOps is the complaint workflow the handlers drive.
// *service.ComplaintService implements it.
type ComplaintOps interface {
	CreateComplaint(ctx context.Context, entity, description string) result.Result
	GetAllComplaints(ctx context.Context) result.Result
	GetAllEntities(ctx context.Context) result.Result
	DeleteComplaint(ctx context.Context, rawID, username string) result.Result
	UpdateComplaintStatus(ctx context.Context, rawID, rawStatus, username string) result.Result
	GetComplaintsStats(ctx context.Context) result.Result
	GetComplaintDetails(ctx context.Context, rawID string) result.Result
	GetComments(ctx context.Context, rawID string) result.Result
	AddComment(ctx context.Context, rawID, text string) result.Result
}

type ComplaintHandler struct {
	Complaints ComplaintOps
	Logger     zerolog.Logger
}

func NewComplaintHandler(ops ComplaintOps, logger zerolog.Logger) *ComplaintHandler {
	return &ComplaintHandler{Complaints: ops, Logger: logger.With().Str("component", "handler").Logger()}
}

func (h *ComplaintHandler) renderError(c echo.Context, status int, message string) error {
	return c.Render(status, render.ViewError, render.ErrorPage{Message: message})
}

// List: GET /complaints/list
func (h *ComplaintHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	r := h.Complaints.GetAllComplaints(ctx)
	if !r.Success {
		return h.renderError(c, r.StatusCode, r.Message)
	}
	list, _ := r.Data.([]model.ComplaintView)
	return c.Render(http.StatusOK, render.ViewComplaintsList, render.ListPage{Complaints: list})
}

// Stats: GET /complaints/stats
func (h *ComplaintHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	r := h.Complaints.GetComplaintsStats(ctx)
	if !r.Success {
		return h.renderError(c, r.StatusCode, r.Message)
	}
	stats, _ := r.Data.(model.ComplaintStats)
	return c.Render(http.StatusOK, render.ViewComplaintsStats, render.StatsPage{
		Stats:       stats.ByEntity,
		StatusStats: stats.ByStatus,
	})
}

// renderHomeWithAlert re-renders the filing form with a banner.
func (h *ComplaintHandler) renderHomeWithAlert(c echo.Context, alert render.Alert) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	r := h.Complaints.GetAllEntities(ctx)
	if !r.Success {
		return h.renderError(c, r.StatusCode, r.Message)
	}
	entities, _ := r.Data.([]model.PublicEntity)
	return c.Render(http.StatusOK, render.ViewHome, render.HomePage{Entities: entities, Alert: &alert})
}

// File: POST /complaints/file.  The outcome is always shown on the home
// page, success or not.
func (h *ComplaintHandler) File(c echo.Context) error {
	var req fileComplaintReq
	if err := c.Bind(&req); err != nil {
		h.Logger.Warn().Err(err).Msg("bind file complaint")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	r := h.Complaints.CreateComplaint(ctx, req.Entity.String(), req.Description)

	alert := render.Alert{Type: "success", Title: "Éxito", Message: r.Message}
	if !r.Success {
		alert = render.Alert{Type: "error", Title: "Error", Message: r.Message}
	}
	return h.renderHomeWithAlert(c, alert)
}

// writeMutation emits the result of a session-gated mutation.  A 401
// carries redirectToLogin so the client can send the user to /login.
func writeMutation(c echo.Context, r result.Result) error {
	if r.Unauthorized() {
		return c.JSON(http.StatusUnauthorized, sessionFailResp{Message: r.Message, RedirectToLogin: true})
	}
	return c.JSON(r.StatusCode, messageResp{Success: r.Success, Message: r.Message})
}

// Delete: POST /complaints/delete
func (h *ComplaintHandler) Delete(c echo.Context) error {
	var req deleteComplaintReq
	if err := c.Bind(&req); err != nil {
		h.Logger.Warn().Err(err).Msg("bind delete complaint")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	return writeMutation(c, h.Complaints.DeleteComplaint(ctx, req.ID.String(), req.Username))
}

// UpdateStatus: POST /complaints/update-status
func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		h.Logger.Warn().Err(err).Msg("bind update status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	return writeMutation(c, h.Complaints.UpdateComplaintStatus(ctx, req.ID.String(), req.Status, req.Username))
}

// Comments: GET /complaints/:id_complaint/comments
func (h *ComplaintHandler) Comments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	r := h.Complaints.GetComments(ctx, c.Param("id_complaint"))
	var comments interface{} = []model.Comment{}
	if list, ok := r.Data.([]model.Comment); ok && list != nil {
		comments = list
	}
	return c.JSON(r.StatusCode, commentsResp{Success: r.Success, Comments: comments, Message: r.Message})
}

// AddComment: POST /complaints/comments
func (h *ComplaintHandler) AddComment(c echo.Context) error {
	var req addCommentReq
	if err := c.Bind(&req); err != nil {
		h.Logger.Warn().Err(err).Msg("bind add comment")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	r := h.Complaints.AddComment(ctx, req.ID.String(), req.Text)
	return c.JSON(r.StatusCode, dataResp{Success: r.Success, Data: r.Data, Message: r.Message})
}

// Details: GET /complaints/:id_complaint/details
func (h *ComplaintHandler) Details(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	r := h.Complaints.GetComplaintDetails(ctx, c.Param("id_complaint"))
	resp := detailsResp{Success: r.Success, Comments: []model.Comment{}, Message: r.Message}
	if d, ok := r.Data.(service.ComplaintDetails); ok {
		if d.Complaint != nil {
			resp.Complaint = d.Complaint
		}
		if d.Comments != nil {
			resp.Comments = d.Comments
		}
	}
	return c.JSON(r.StatusCode, resp)
}

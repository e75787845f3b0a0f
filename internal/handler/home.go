package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/render"
)

const msgEntitiesLoad = "Error loading entities"

type HomeHandler struct {
	Complaints ComplaintOps
	Logger     zerolog.Logger
}

func NewHomeHandler(ops ComplaintOps, logger zerolog.Logger) *HomeHandler {
	return &HomeHandler{Complaints: ops, Logger: logger}
}

// Home: GET /
func (h *HomeHandler) Home(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	r := h.Complaints.GetAllEntities(ctx)
	if !r.Success {
		h.Logger.Error().Int("status", r.StatusCode).Msg("home: entities unavailable")
		return c.Render(http.StatusInternalServerError, render.ViewError, render.ErrorPage{Message: msgEntitiesLoad})
	}
	entities, _ := r.Data.([]model.PublicEntity)
	return c.Render(http.StatusOK, render.ViewHome, render.HomePage{Entities: entities})
}

// Login: GET /login
func (h *HomeHandler) Login(c echo.Context) error {
	return c.Render(http.StatusOK, render.ViewLogin, nil)
}

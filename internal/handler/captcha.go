package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/captcha"
)

const (
	msgTokenMissing    = "Token no enviado"
	msgCaptchaOK       = "Verificación exitosa"
	msgCaptchaFailed   = "Verificación fallida"
	msgCaptchaUpstream = "Error interno en verify-captcha"
)

// CaptchaVerifier is implemented by *captcha.Verifier.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (captcha.Outcome, error)
}

type CaptchaHandler struct {
	Verifier CaptchaVerifier
	Logger   zerolog.Logger
}

func NewCaptchaHandler(v CaptchaVerifier, logger zerolog.Logger) *CaptchaHandler {
	return &CaptchaHandler{Verifier: v, Logger: logger}
}

// Verify: POST /verify-captcha
func (h *CaptchaHandler) Verify(c echo.Context) error {
	var req captchaReq
	_ = c.Bind(&req)
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msgTokenMissing})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	out, err := h.Verifier.Verify(ctx, token, c.RealIP())
	if err != nil {
		h.Logger.Error().Err(err).Msg("verify-captcha failed")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": msgCaptchaUpstream})
	}
	if !out.Success {
		codes := out.ErrorCodes
		if codes == nil {
			codes = []string{}
		}
		return c.JSON(http.StatusOK, echo.Map{"success": false, "error": msgCaptchaFailed, "error-codes": codes})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": msgCaptchaOK})
}

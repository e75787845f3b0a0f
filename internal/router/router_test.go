package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quejasboyaca/complaint-service/internal/auth"
	"github.com/quejasboyaca/complaint-service/internal/captcha"
	"github.com/quejasboyaca/complaint-service/internal/config"
	"github.com/quejasboyaca/complaint-service/internal/handler"
	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/notification"
	"github.com/quejasboyaca/complaint-service/internal/render"
	"github.com/quejasboyaca/complaint-service/internal/repository/memstore"
	"github.com/quejasboyaca/complaint-service/internal/service"
	"github.com/quejasboyaca/complaint-service/internal/worker"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, req notification.RequestInfo, action string) error {
	return m.Called(ctx, req, action).Error(0)
}

// syncPool runs nothing on Submit; tests drain it explicitly.
type syncPool struct {
	mu    sync.Mutex
	tasks []worker.Task
}

func (p *syncPool) Submit(t worker.Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = append(p.tasks, t)
	return true
}

func (p *syncPool) drain(ctx context.Context) []error {
	p.mu.Lock()
	tasks := p.tasks
	p.tasks = nil
	p.mu.Unlock()
	errs := make([]error, 0, len(tasks))
	for _, t := range tasks {
		errs = append(errs, t.Run(ctx))
	}
	return errs
}

type fakeVerifier struct{ out captcha.Outcome }

func (f fakeVerifier) Verify(context.Context, string, string) (captcha.Outcome, error) {
	return f.out, nil
}

type app struct {
	e        *echo.Echo
	store    *memstore.Store
	pool     *syncPool
	notifier *MockNotifier
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := memstore.New()
	store.AddEntity(1, "Gobernación de Boyacá")
	store.AddEntity(2, "Alcaldía de Tunja")
	store.AddUser(model.User{Username: "admin", Password: "admin123", SessionStatus: model.SessionInactive})

	authSvc := auth.NewStoreService(store.Users(), zerolog.Nop())
	svc := service.NewComplaintService(store.Complaints(), store.Entities(), store.Comments(), authSvc, nil, zerolog.Nop())
	tpl, err := render.New(zerolog.Nop())
	require.NoError(t, err)

	a := &app{store: store, pool: &syncPool{}, notifier: &MockNotifier{}}
	a.e = New(Deps{
		Complaints: svc,
		Auth:       handler.NewAuthHandler(authSvc),
		Captcha:    handler.NewCaptchaHandler(fakeVerifier{out: captcha.Outcome{Success: true}}, zerolog.Nop()),
		Notifier:   a.notifier,
		Pool:       a.pool,
		Renderer:   tpl,
		RateLimit:  config.RateLimitConfig{Enabled: false},
		Logger:     zerolog.Nop(),
	})
	return a
}

func (a *app) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) postJSON(target, body string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, target, echo.MIMEApplicationJSON, body)
}

func (a *app) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, target, echo.MIMEApplicationForm, form.Encode())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func (a *app) file(t *testing.T, entity, description string) *httptest.ResponseRecorder {
	t.Helper()
	return a.postForm("/complaints/file", url.Values{"entity": {entity}, "description": {description}})
}

func TestFileComplaint_RendersSuccessAlert(t *testing.T) {
	a := newApp(t)

	rec := a.file(t, "1", "A valid ten-char description")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-success")
	assert.Contains(t, rec.Body.String(), service.MsgComplaintFiled)

	c, ok := a.store.Complaint(1)
	require.True(t, ok)
	assert.Equal(t, model.StatusOpen, c.Status)
	assert.True(t, c.Active)
	assert.Empty(t, a.pool.tasks)
}

func TestFileComplaint_ErrorsReRenderHome(t *testing.T) {
	a := newApp(t)

	rec := a.file(t, "1", "short")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-danger")
	assert.Contains(t, rec.Body.String(), "al menos 10 caracteres")

	rec = a.file(t, "99", "A valid ten-char description")
	assert.Contains(t, rec.Body.String(), service.MsgUnknownEntity)

	_, ok := a.store.Complaint(1)
	assert.False(t, ok)
}

func TestUpdateStatus_InactiveSessionRedirectsToLogin(t *testing.T) {
	a := newApp(t)
	a.file(t, "1", "A valid ten-char description")

	rec := a.postJSON("/complaints/update-status", `{"id_complaint":1,"complaint_status":"cerrada","username":"admin"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["redirectToLogin"])

	c, _ := a.store.Complaint(1)
	assert.Equal(t, model.StatusOpen, c.Status)
}

func TestListComplaints_FiresOneNotification(t *testing.T) {
	a := newApp(t)
	a.file(t, "2", "Demora injustificada en trámite")

	a.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(r notification.RequestInfo) bool {
		return r.URL == "/complaints/list" && r.Method == http.MethodGet
	}), notification.ActionComplaintsList).Return(assert.AnError).Once()

	rec := a.do(http.MethodGet, "/complaints/list", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alcaldía de Tunja")

	errs := a.pool.drain(t.Context())
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], assert.AnError)
	a.notifier.AssertExpectations(t)
}

func TestStats_FiresStatsNotification(t *testing.T) {
	a := newApp(t)
	a.file(t, "1", "A valid ten-char description")
	a.notifier.On("Notify", mock.Anything, mock.Anything, notification.ActionComplaintsStats).Return(nil).Once()

	rec := a.do(http.MethodGet, "/complaints/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gobernación de Boyacá")

	assert.Len(t, a.pool.drain(t.Context()), 1)
	a.notifier.AssertExpectations(t)
}

func TestAddComment_TooShortIsRejected(t *testing.T) {
	a := newApp(t)
	a.file(t, "1", "A valid ten-char description")

	rec := a.postJSON("/complaints/comments", `{"id_complaint":"1","comment_text":"corto"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
	assert.Equal(t, 0, a.store.CommentCount(1))
}

func TestCommentsAndDetails(t *testing.T) {
	a := newApp(t)
	a.file(t, "1", "A valid ten-char description")

	rec := a.postJSON("/complaints/comments", `{"id_complaint":1,"comment_text":"Me pasó exactamente lo mismo"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, map[string]interface{}{"id_comment": float64(1)}, body["data"])

	rec = a.do(http.MethodGet, "/complaints/1/comments", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decode(t, rec)["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Equal(t, "Me pasó exactamente lo mismo", comments[0].(map[string]interface{})["comment_text"])

	rec = a.do(http.MethodGet, "/complaints/1/details", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	details := decode(t, rec)
	assert.Equal(t, "Gobernación de Boyacá", details["complaint"].(map[string]interface{})["public_entity"])
	assert.Len(t, details["comments"], 1)

	rec = a.do(http.MethodGet, "/complaints/42/details", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	details = decode(t, rec)
	assert.Nil(t, details["complaint"])
	assert.Equal(t, []interface{}{}, details["comments"])
}

func TestLoginThenDelete(t *testing.T) {
	a := newApp(t)
	a.file(t, "1", "A valid ten-char description")
	a.postJSON("/complaints/comments", `{"id_complaint":1,"comment_text":"Comentario de prueba largo"}`)

	rec := a.postJSON("/auth/login", `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.postJSON("/auth/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, model.SessionActive, user["session_status"])

	rec = a.postJSON("/complaints/delete", `{"id_complaint":1,"username":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.MsgDeleted, decode(t, rec)["message"])

	// The row and its comments remain; the complaint is only hidden.
	c, ok := a.store.Complaint(1)
	require.True(t, ok)
	assert.False(t, c.Active)
	assert.Equal(t, 1, a.store.CommentCount(1))
	rec = a.do(http.MethodGet, "/complaints/1/details", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.postJSON("/complaints/delete", `{"id_complaint":7,"username":"admin"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateSessionAndLogout(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodGet, "/auth/validate?username=admin", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["data"].(map[string]interface{})["isActive"])

	rec = a.do(http.MethodGet, "/auth/validate", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/auth/validate?username=ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	a.postJSON("/auth/login", `{"username":"admin","password":"admin123"}`)
	rec = a.postJSON("/auth/logout", `{"username":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	u, _ := a.store.User("admin")
	assert.Equal(t, model.SessionInactive, u.SessionStatus)

	rec = a.postJSON("/auth/logout", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyCaptcha(t *testing.T) {
	a := newApp(t)

	rec := a.postJSON("/verify-captcha", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Token no enviado", decode(t, rec)["error"])

	rec = a.postJSON("/verify-captcha", `{"token":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
}

func TestHomeAndHealth(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	// Entities are listed alphabetically.
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "Alcaldía de Tunja"), strings.Index(body, "Gobernación de Boyacá"))

	rec = a.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, "ok", rec.Body.String())

	rec = a.do(http.MethodGet, "/login", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, a.pool.tasks)
}

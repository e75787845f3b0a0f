package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/result"
	"github.com/quejasboyaca/complaint-service/internal/upstream"
)

// Fallback messages when the upstream error body carries none.
const (
	msgLoginFailed    = "Error al autenticar usuario"
	msgValidateFailed = "Error al validar sesión"
	msgLogoutFailed   = "Error al cerrar sesión"
)

// Doer sends an HTTP request.  *upstream.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteService forwards the auth contract to the upstream microservice
// under {base}/api/auth.  Upstream status codes and messages pass through;
// an unreachable service yields 503.
type RemoteService struct {
	base   string
	client Doer
	logger zerolog.Logger
}

func NewRemoteService(baseURL string, client Doer, logger zerolog.Logger) *RemoteService {
	return &RemoteService{
		base:   strings.TrimRight(baseURL, "/"),
		client: client,
		logger: logger.With().Str("component", "auth.remote").Logger(),
	}
}

type upstreamBody struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *RemoteService) call(ctx context.Context, method, path string, query url.Values, payload interface{}) (int, upstreamBody, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, upstreamBody{}, err
		}
		body = bytes.NewReader(b)
	}
	u := s.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, upstreamBody{}, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, upstreamBody{}, err
	}
	defer resp.Body.Close()

	var ub upstreamBody
	// A non-JSON body leaves ub empty; the status still passes through.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&ub)
	return resp.StatusCode, ub, nil
}

func (s *RemoteService) unavailable(op string, err error) result.Result {
	s.logger.Warn().Err(err).Str("op", op).Msg("auth service unreachable")
	return result.Fail(http.StatusServiceUnavailable, MsgUnavailable)
}

func failed(status int, ub upstreamBody, fallback string) result.Result {
	msg := ub.Message
	if msg == "" {
		msg = fallback
	}
	return result.Fail(status, msg)
}

func ok2xx(status int) bool { return status >= 200 && status < 300 }

func (s *RemoteService) Login(ctx context.Context, username, password string) result.Result {
	status, ub, err := s.call(ctx, http.MethodPost, "/api/auth/login", nil,
		map[string]string{"username": username, "password": password})
	if err != nil {
		return s.unavailable("login", err)
	}
	if !ok2xx(status) {
		return failed(status, ub, msgLoginFailed)
	}
	r := result.Result{Success: true, StatusCode: status, Message: MsgLoginOK}
	if len(ub.Data) > 0 {
		r.Data = ub.Data
	}
	return r
}

func (s *RemoteService) ValidateSession(ctx context.Context, username string) result.Result {
	status, ub, err := s.call(ctx, http.MethodGet, "/api/auth/validate", url.Values{"username": {username}}, nil)
	if err != nil {
		return s.unavailable("validate", err)
	}
	if !ok2xx(status) {
		return failed(status, ub, msgValidateFailed)
	}
	var info model.SessionInfo
	if len(ub.Data) > 0 {
		if err := json.Unmarshal(ub.Data, &info); err != nil {
			s.logger.Warn().Err(err).Msg("unexpected validate payload")
		}
	}
	if info.Username == "" {
		info.Username = username
	}
	return result.Result{Success: true, StatusCode: status, Message: ub.Message, Data: info}
}

func (s *RemoteService) Logout(ctx context.Context, username string) result.Result {
	status, ub, err := s.call(ctx, http.MethodPost, "/api/auth/logout", nil, map[string]string{"username": username})
	if err != nil {
		return s.unavailable("logout", err)
	}
	if !ok2xx(status) {
		return failed(status, ub, msgLogoutFailed)
	}
	msg := ub.Message
	if msg == "" {
		msg = MsgLogoutOK
	}
	return result.Result{Success: true, StatusCode: status, Message: msg}
}

var _ Doer = (*upstream.Client)(nil)

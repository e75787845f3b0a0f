package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/repository"
	"github.com/quejasboyaca/complaint-service/internal/result"
	"github.com/quejasboyaca/complaint-service/internal/utils"
)

// UserStore is the subset of the user repository StoreService needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	SetSessionStatus(ctx context.Context, id uint64, status string) error
}

// StoreService authenticates against the USERS table.
type StoreService struct {
	users  UserStore
	logger zerolog.Logger
}

func NewStoreService(users UserStore, logger zerolog.Logger) *StoreService {
	return &StoreService{users: users, logger: logger.With().Str("component", "auth.store").Logger()}
}

func (s *StoreService) Login(ctx context.Context, username, password string) result.Result {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return result.Fail(http.StatusUnauthorized, MsgInvalidCredentials)
		}
		s.logger.Error().Err(err).Msg("login lookup failed")
		return result.Fail(http.StatusInternalServerError, MsgInternal)
	}
	if !utils.CheckPassword(u.Password, password) {
		return result.Fail(http.StatusUnauthorized, MsgInvalidCredentials)
	}
	if err := s.users.SetSessionStatus(ctx, u.ID, model.SessionActive); err != nil {
		s.logger.Error().Err(err).Str("username", u.Username).Msg("activate session failed")
		return result.Fail(http.StatusInternalServerError, MsgInternal)
	}
	u.SessionStatus = model.SessionActive
	return result.OK(MsgLoginOK, map[string]interface{}{"user": u.Info()})
}

func (s *StoreService) ValidateSession(ctx context.Context, username string) result.Result {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return result.Fail(http.StatusNotFound, MsgUserNotFound)
		}
		s.logger.Error().Err(err).Msg("session lookup failed")
		return result.Fail(http.StatusInternalServerError, MsgInternal)
	}
	info := model.SessionInfo{
		Username:      u.Username,
		IsActive:      u.SessionStatus == model.SessionActive,
		SessionStatus: u.SessionStatus,
	}
	msg := MsgSessionInactive
	if info.IsActive {
		msg = MsgSessionActive
	}
	return result.OK(msg, info)
}

func (s *StoreService) Logout(ctx context.Context, username string) result.Result {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return result.Fail(http.StatusNotFound, MsgUserNotFound)
		}
		s.logger.Error().Err(err).Msg("logout lookup failed")
		return result.Fail(http.StatusInternalServerError, MsgInternal)
	}
	if err := s.users.SetSessionStatus(ctx, u.ID, model.SessionInactive); err != nil {
		s.logger.Error().Err(err).Str("username", u.Username).Msg("deactivate session failed")
		return result.Fail(http.StatusInternalServerError, MsgInternal)
	}
	return result.OK(MsgLogoutOK, nil)
}

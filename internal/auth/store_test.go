package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/repository"
)

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserStore) SetSessionStatus(ctx context.Context, id uint64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func admin(status string) *model.User {
	return &model.User{ID: 1, Username: "admin", Password: "admin123", SessionStatus: status}
}

func TestStoreService_Login(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByUsername", mock.Anything, "admin").Return(admin(model.SessionInactive), nil)
	users.On("SetSessionStatus", mock.Anything, uint64(1), model.SessionActive).Return(nil)
	svc := NewStoreService(users, zerolog.Nop())

	r := svc.Login(context.Background(), "admin", "admin123")
	require.True(t, r.Success)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	data, ok := r.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, model.UserInfo{ID: 1, Username: "admin", SessionStatus: model.SessionActive}, data["user"])
	users.AssertExpectations(t)
}

func TestStoreService_Login_BadCredentials(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByUsername", mock.Anything, "admin").Return(admin(model.SessionInactive), nil)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)
	svc := NewStoreService(users, zerolog.Nop())

	r := svc.Login(context.Background(), "admin", "wrong_password")
	assert.False(t, r.Success)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	assert.Equal(t, MsgInvalidCredentials, r.Message)

	r = svc.Login(context.Background(), "ghost", "admin123")
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	users.AssertNotCalled(t, "SetSessionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreService_ValidateSession_InactiveIsStillSuccess(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByUsername", mock.Anything, "admin").Return(admin(model.SessionInactive), nil)
	svc := NewStoreService(users, zerolog.Nop())

	r := svc.ValidateSession(context.Background(), "admin")
	assert.True(t, r.Success)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, model.SessionInfo{Username: "admin", IsActive: false, SessionStatus: model.SessionInactive}, r.Data)
	assert.False(t, IsActive(r))
}

func TestStoreService_ValidateSession_Active(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByUsername", mock.Anything, "admin").Return(admin(model.SessionActive), nil)
	svc := NewStoreService(users, zerolog.Nop())

	r := svc.ValidateSession(context.Background(), "admin")
	assert.True(t, IsActive(r))
}

func TestStoreService_ValidateSession_Errors(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)
	users.On("GetByUsername", mock.Anything, "admin").Return(nil, errors.New("db down"))
	svc := NewStoreService(users, zerolog.Nop())

	r := svc.ValidateSession(context.Background(), "ghost")
	assert.Equal(t, http.StatusNotFound, r.StatusCode)
	assert.False(t, IsActive(r))

	r = svc.ValidateSession(context.Background(), "admin")
	assert.Equal(t, http.StatusInternalServerError, r.StatusCode)
	assert.Equal(t, MsgInternal, r.Message)
}

func TestStoreService_Logout(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByUsername", mock.Anything, "admin").Return(admin(model.SessionActive), nil)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)
	users.On("SetSessionStatus", mock.Anything, uint64(1), model.SessionInactive).Return(nil)
	svc := NewStoreService(users, zerolog.Nop())

	r := svc.Logout(context.Background(), "admin")
	assert.True(t, r.Success)
	assert.Equal(t, MsgLogoutOK, r.Message)

	r = svc.Logout(context.Background(), "ghost")
	assert.Equal(t, http.StatusNotFound, r.StatusCode)
	users.AssertExpectations(t)
}

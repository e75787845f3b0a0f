package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/queue"
	"github.com/quejasboyaca/complaint-service/internal/result"
)

type MockComplaintStore struct{ mock.Mock }

func (m *MockComplaintStore) Create(ctx context.Context, nc model.NewComplaint) (uint64, error) {
	args := m.Called(ctx, nc)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockComplaintStore) FindAllActive(ctx context.Context) ([]model.ComplaintView, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.ComplaintView)
	return v, args.Error(1)
}

func (m *MockComplaintStore) FindByID(ctx context.Context, id uint64) (*model.ComplaintView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.ComplaintView)
	return v, args.Error(1)
}

func (m *MockComplaintStore) SoftDelete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockComplaintStore) UpdateStatus(ctx context.Context, id uint64, status model.ComplaintStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockComplaintStore) StatsByEntity(ctx context.Context) ([]model.EntityStat, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.EntityStat)
	return v, args.Error(1)
}

func (m *MockComplaintStore) StatsByStatus(ctx context.Context) ([]model.StatusStat, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.StatusStat)
	return v, args.Error(1)
}

type MockEntityStore struct{ mock.Mock }

func (m *MockEntityStore) FindAll(ctx context.Context) ([]model.PublicEntity, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.PublicEntity)
	return v, args.Error(1)
}

func (m *MockEntityStore) Exists(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCommentStore struct{ mock.Mock }

func (m *MockCommentStore) FindByComplaintID(ctx context.Context, complaintID uint64) ([]model.Comment, error) {
	args := m.Called(ctx, complaintID)
	v, _ := args.Get(0).([]model.Comment)
	return v, args.Error(1)
}

func (m *MockCommentStore) Create(ctx context.Context, complaintID uint64, text string) (uint64, error) {
	args := m.Called(ctx, complaintID, text)
	return args.Get(0).(uint64), args.Error(1)
}

type MockSessions struct{ mock.Mock }

func (m *MockSessions) ValidateSession(ctx context.Context, username string) result.Result {
	return m.Called(ctx, username).Get(0).(result.Result)
}

type recordingSink struct {
	mu     sync.Mutex
	events []queue.ComplaintEvent
}

func (r *recordingSink) Emit(ev queue.ComplaintEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func activeSession(username string) result.Result {
	return result.OK("Sesión activa", model.SessionInfo{Username: username, IsActive: true, SessionStatus: model.SessionActive})
}

func inactiveSession(username string) result.Result {
	return result.OK("Sesión inactiva", model.SessionInfo{Username: username, IsActive: false, SessionStatus: model.SessionInactive})
}

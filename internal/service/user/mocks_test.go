package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
	ListFunc           func(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithRole, error)
	ListAssignableFunc func(ctx context.Context, managerID *uuid.UUID) ([]domain.UserWithRole, error)
	CreateFunc         func(ctx context.Context, u *domain.User) (*domain.UserWithRole, error)
	UpdateFunc         func(ctx context.Context, u *domain.User) (*domain.UserWithRole, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) List(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithRole, error) {
	if m.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *userRepoMock) ListAssignable(ctx context.Context, managerID *uuid.UUID) ([]domain.UserWithRole, error) {
	if m.ListAssignableFunc == nil {
		panic("userRepoMock.ListAssignableFunc: method is nil but userRepo.ListAssignable was just called")
	}
	return m.ListAssignableFunc(ctx, managerID)
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.UserWithRole, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) Update(ctx context.Context, u *domain.User) (*domain.UserWithRole, error) {
	if m.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, u)
}

func (m *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("userRepoMock.DeleteFunc: method is nil but userRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

var _ roleRepo = &roleRepoMock{}

type roleRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Role, error)
}

func (m *roleRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	if m.GetByIDFunc == nil {
		panic("roleRepoMock.GetByIDFunc: method is nil but roleRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

var _ activityWriter = &activityWriterMock{}

type activityWriterMock struct {
	RecordFunc func(ctx context.Context, e domain.ActivityLog) error

	mu      sync.Mutex
	records []domain.ActivityLog
}

func (m *activityWriterMock) Record(ctx context.Context, e domain.ActivityLog) error {
	m.mu.Lock()
	m.records = append(m.records, e)
	m.mu.Unlock()
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, e)
}

func (m *activityWriterMock) Records() []domain.ActivityLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ActivityLog(nil), m.records...)
}

package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.UserWithRole, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hashed string) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.UserWithRole, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	if m.UpdatePasswordFunc == nil {
		panic("userRepoMock.UpdatePasswordFunc: method is nil but userRepo.UpdatePassword was just called")
	}
	return m.UpdatePasswordFunc(ctx, id, hashed)
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

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	GenerateAccessTokenFunc func(id auth.Identity) (string, error)
}

func (m *tokenIssuerMock) GenerateAccessToken(id auth.Identity) (string, error) {
	if m.GenerateAccessTokenFunc == nil {
		panic("tokenIssuerMock.GenerateAccessTokenFunc: method is nil but tokenIssuer.GenerateAccessToken was just called")
	}
	return m.GenerateAccessTokenFunc(id)
}

package calllog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

var _ callLogRepo = &callLogRepoMock{}

type callLogRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.CallLogWithNames, error)
	ListFunc    func(ctx context.Context, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error)
	CreateFunc  func(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error)
	UpdateFunc  func(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *callLogRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.CallLogWithNames, error) {
	if m.GetByIDFunc == nil {
		panic("callLogRepoMock.GetByIDFunc: method is nil but callLogRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *callLogRepoMock) List(ctx context.Context, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error) {
	if m.ListFunc == nil {
		panic("callLogRepoMock.ListFunc: method is nil but callLogRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *callLogRepoMock) Create(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error) {
	if m.CreateFunc == nil {
		panic("callLogRepoMock.CreateFunc: method is nil but callLogRepo.Create was just called")
	}
	return m.CreateFunc(ctx, c)
}

func (m *callLogRepoMock) Update(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error) {
	if m.UpdateFunc == nil {
		panic("callLogRepoMock.UpdateFunc: method is nil but callLogRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, c)
}

func (m *callLogRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("callLogRepoMock.DeleteFunc: method is nil but callLogRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

var _ leadRepo = &leadRepoMock{}

type leadRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
	UpdateStageFunc func(ctx context.Context, id uuid.UUID, stage domain.LeadStage) error
}

func (m *leadRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
	if m.GetByIDFunc == nil {
		panic("leadRepoMock.GetByIDFunc: method is nil but leadRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *leadRepoMock) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.LeadStage) error {
	if m.UpdateStageFunc == nil {
		panic("leadRepoMock.UpdateStageFunc: method is nil but leadRepo.UpdateStage was just called")
	}
	return m.UpdateStageFunc(ctx, id, stage)
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

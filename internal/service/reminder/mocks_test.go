package reminder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

var _ reminderRepo = &reminderRepoMock{}

type reminderRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error)
	ListFunc    func(ctx context.Context, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error)
	CreateFunc  func(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error)
	UpdateFunc  func(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *reminderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error) {
	if m.GetByIDFunc == nil {
		panic("reminderRepoMock.GetByIDFunc: method is nil but reminderRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *reminderRepoMock) List(ctx context.Context, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error) {
	if m.ListFunc == nil {
		panic("reminderRepoMock.ListFunc: method is nil but reminderRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *reminderRepoMock) Create(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error) {
	if m.CreateFunc == nil {
		panic("reminderRepoMock.CreateFunc: method is nil but reminderRepo.Create was just called")
	}
	return m.CreateFunc(ctx, r)
}

func (m *reminderRepoMock) Update(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error) {
	if m.UpdateFunc == nil {
		panic("reminderRepoMock.UpdateFunc: method is nil but reminderRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, r)
}

func (m *reminderRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("reminderRepoMock.DeleteFunc: method is nil but reminderRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

var _ leadRepo = &leadRepoMock{}

type leadRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
}

func (m *leadRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
	if m.GetByIDFunc == nil {
		panic("leadRepoMock.GetByIDFunc: method is nil but leadRepo.GetByID was just called")
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

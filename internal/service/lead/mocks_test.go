package lead

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

var _ leadRepo = &leadRepoMock{}

type leadRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
	ListFunc    func(ctx context.Context, scope domain.LeadScope) ([]domain.LeadWithNames, error)
	CreateFunc  func(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error)
	UpdateFunc  func(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *leadRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
	if m.GetByIDFunc == nil {
		panic("leadRepoMock.GetByIDFunc: method is nil but leadRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *leadRepoMock) List(ctx context.Context, scope domain.LeadScope) ([]domain.LeadWithNames, error) {
	if m.ListFunc == nil {
		panic("leadRepoMock.ListFunc: method is nil but leadRepo.List was just called")
	}
	return m.ListFunc(ctx, scope)
}

func (m *leadRepoMock) Create(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error) {
	if m.CreateFunc == nil {
		panic("leadRepoMock.CreateFunc: method is nil but leadRepo.Create was just called")
	}
	return m.CreateFunc(ctx, l)
}

func (m *leadRepoMock) Update(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error) {
	if m.UpdateFunc == nil {
		panic("leadRepoMock.UpdateFunc: method is nil but leadRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, l)
}

func (m *leadRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("leadRepoMock.DeleteFunc: method is nil but leadRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	UpdateStatusAndLeadFunc func(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, leadID *uuid.UUID) error
	DetachByLeadFunc        func(ctx context.Context, leadID uuid.UUID) (int64, error)
}

func (m *submissionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if m.GetByIDFunc == nil {
		panic("submissionRepoMock.GetByIDFunc: method is nil but submissionRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *submissionRepoMock) UpdateStatusAndLead(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, leadID *uuid.UUID) error {
	if m.UpdateStatusAndLeadFunc == nil {
		panic("submissionRepoMock.UpdateStatusAndLeadFunc: method is nil but submissionRepo.UpdateStatusAndLead was just called")
	}
	return m.UpdateStatusAndLeadFunc(ctx, id, status, leadID)
}

func (m *submissionRepoMock) DetachByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	if m.DetachByLeadFunc == nil {
		panic("submissionRepoMock.DetachByLeadFunc: method is nil but submissionRepo.DetachByLead was just called")
	}
	return m.DetachByLeadFunc(ctx, leadID)
}

var _ commentRepo = &commentRepoMock{}

type commentRepoMock struct {
	CreateFunc       func(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error)
	ListByLeadFunc   func(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error)
	DeleteByLeadFunc func(ctx context.Context, leadID uuid.UUID) (int64, error)
}

func (m *commentRepoMock) Create(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error) {
	if m.CreateFunc == nil {
		panic("commentRepoMock.CreateFunc: method is nil but commentRepo.Create was just called")
	}
	return m.CreateFunc(ctx, c)
}

func (m *commentRepoMock) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error) {
	if m.ListByLeadFunc == nil {
		panic("commentRepoMock.ListByLeadFunc: method is nil but commentRepo.ListByLead was just called")
	}
	return m.ListByLeadFunc(ctx, leadID)
}

func (m *commentRepoMock) DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	if m.DeleteByLeadFunc == nil {
		panic("commentRepoMock.DeleteByLeadFunc: method is nil but commentRepo.DeleteByLead was just called")
	}
	return m.DeleteByLeadFunc(ctx, leadID)
}

var _ callLogRepo = &callLogRepoMock{}

type callLogRepoMock struct {
	DeleteByLeadFunc func(ctx context.Context, leadID uuid.UUID) (int64, error)
}

func (m *callLogRepoMock) DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	if m.DeleteByLeadFunc == nil {
		panic("callLogRepoMock.DeleteByLeadFunc: method is nil but callLogRepo.DeleteByLead was just called")
	}
	return m.DeleteByLeadFunc(ctx, leadID)
}

var _ reminderRepo = &reminderRepoMock{}

type reminderRepoMock struct {
	DeleteByLeadFunc func(ctx context.Context, leadID uuid.UUID) (int64, error)
}

func (m *reminderRepoMock) DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	if m.DeleteByLeadFunc == nil {
		panic("reminderRepoMock.DeleteByLeadFunc: method is nil but reminderRepo.DeleteByLead was just called")
	}
	return m.DeleteByLeadFunc(ctx, leadID)
}

var _ tagRepo = &tagRepoMock{}

type tagRepoMock struct {
	DeleteByEntityFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int64, error)
}

func (m *tagRepoMock) DeleteByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int64, error) {
	if m.DeleteByEntityFunc == nil {
		panic("tagRepoMock.DeleteByEntityFunc: method is nil but tagRepo.DeleteByEntity was just called")
	}
	return m.DeleteByEntityFunc(ctx, entityType, entityID)
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the function directly, outside any transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

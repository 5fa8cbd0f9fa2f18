package newsletter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

var _ subscriberRepo = &subscriberRepoMock{}

type subscriberRepoMock struct {
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.NewsletterSubscriber, error)
	ListFunc      func(ctx context.Context) ([]domain.NewsletterSubscriber, error)
	CreateFunc    func(ctx context.Context, s *domain.NewsletterSubscriber) error
	SetActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *subscriberRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsletterSubscriber, error) {
	if m.GetByIDFunc == nil {
		panic("subscriberRepoMock.GetByIDFunc: method is nil but subscriberRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *subscriberRepoMock) List(ctx context.Context) ([]domain.NewsletterSubscriber, error) {
	if m.ListFunc == nil {
		panic("subscriberRepoMock.ListFunc: method is nil but subscriberRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *subscriberRepoMock) Create(ctx context.Context, s *domain.NewsletterSubscriber) error {
	if m.CreateFunc == nil {
		panic("subscriberRepoMock.CreateFunc: method is nil but subscriberRepo.Create was just called")
	}
	return m.CreateFunc(ctx, s)
}

func (m *subscriberRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetActiveFunc == nil {
		panic("subscriberRepoMock.SetActiveFunc: method is nil but subscriberRepo.SetActive was just called")
	}
	return m.SetActiveFunc(ctx, id, active)
}

func (m *subscriberRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("subscriberRepoMock.DeleteFunc: method is nil but subscriberRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminIdentity() auth.Identity {
	return auth.Identity{
		UserID:      uuid.New(),
		RoleName:    domain.RoleNameAdmin,
		Class:       domain.RoleAdmin,
		Permissions: domain.Permissions{"all": true},
	}
}

func TestService_Subscribe_LowercasesEmail(t *testing.T) {
	t.Parallel()

	var created *domain.NewsletterSubscriber
	repo := &subscriberRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.NewsletterSubscriber) error {
			created = s
			return nil
		},
	}
	svc := NewService(testLogger(), repo)

	out, err := svc.Subscribe(context.Background(), "  Lee@Acme.Example ")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if created.Email != "lee@acme.example" {
		t.Errorf("Email = %q, want lowercased", created.Email)
	}
	if !out.Active {
		t.Error("Active = false, want true")
	}
}

func TestService_Subscribe_DuplicateIsSilent(t *testing.T) {
	t.Parallel()

	repo := &subscriberRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.NewsletterSubscriber) error {
			return domain.ErrAlreadyExists
		},
	}
	svc := NewService(testLogger(), repo)

	if _, err := svc.Subscribe(context.Background(), "lee@acme.example"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
}

func TestService_Subscribe_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &subscriberRepoMock{})

	_, err := svc.Subscribe(context.Background(), "not-an-email")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestService_List_RequiresPermission(t *testing.T) {
	t.Parallel()

	caller := auth.Identity{
		UserID:      uuid.New(),
		Class:       domain.RoleSalesExecutive,
		Permissions: domain.Permissions{"leads": true},
	}
	svc := NewService(testLogger(), &subscriberRepoMock{})

	_, err := svc.List(context.Background(), caller)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestService_SetActive(t *testing.T) {
	t.Parallel()

	var gotActive bool
	repo := &subscriberRepoMock{
		SetActiveFunc: func(ctx context.Context, id uuid.UUID, active bool) error {
			gotActive = active
			return nil
		},
	}
	svc := NewService(testLogger(), repo)

	if err := svc.SetActive(context.Background(), adminIdentity(), uuid.New(), false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if gotActive {
		t.Error("active = true, want false")
	}
}

package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	authsvc "github.com/spars/crm-backend/internal/service/auth"
	"github.com/spars/crm-backend/internal/service/lead"
	"github.com/spars/crm-backend/internal/service/submission"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminIdentity() auth.Identity {
	return auth.Identity{
		UserID:      uuid.New(),
		Email:       "admin@spars.com",
		RoleName:    domain.RoleNameAdmin,
		Class:       domain.RoleAdmin,
		Permissions: domain.Permissions{"all": true},
	}
}

func executiveIdentity() auth.Identity {
	return auth.Identity{
		UserID:      uuid.New(),
		Email:       "execa1@spars.com",
		RoleName:    domain.RoleNameSalesExecutive,
		Class:       domain.RoleSalesExecutive,
		Permissions: domain.Permissions{"leads": true, "reminders": true},
	}
}

// authed attaches a caller identity the way the Auth middleware would.
func authed(req *http.Request, id auth.Identity) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), id))
}

// withURLParam injects a chi route parameter for handlers called
// outside a router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return req
}

type authServiceMock struct {
	LoginFunc          func(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error)
	MeFunc             func(ctx context.Context, userID uuid.UUID) (*domain.UserWithRole, error)
	ChangePasswordFunc func(ctx context.Context, userID uuid.UUID, input authsvc.ChangePasswordInput) error
}

func (m *authServiceMock) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error) {
	if m.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Me(ctx context.Context, userID uuid.UUID) (*domain.UserWithRole, error) {
	if m.MeFunc == nil {
		panic("authServiceMock.MeFunc: method is nil but authService.Me was just called")
	}
	return m.MeFunc(ctx, userID)
}

func (m *authServiceMock) ChangePassword(ctx context.Context, userID uuid.UUID, input authsvc.ChangePasswordInput) error {
	if m.ChangePasswordFunc == nil {
		panic("authServiceMock.ChangePasswordFunc: method is nil but authService.ChangePassword was just called")
	}
	return m.ChangePasswordFunc(ctx, userID, input)
}

type leadServiceMock struct {
	ListFunc         func(ctx context.Context, caller auth.Identity) ([]domain.LeadWithNames, error)
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
	CreateFunc       func(ctx context.Context, caller auth.Identity, in lead.CreateInput) (*domain.LeadWithNames, error)
	UpdateFunc       func(ctx context.Context, caller auth.Identity, id uuid.UUID, in lead.UpdateInput) (*domain.LeadWithNames, error)
	DeleteFunc       func(ctx context.Context, caller auth.Identity, id uuid.UUID) (*lead.DeleteResult, error)
	ConvertFunc      func(ctx context.Context, caller auth.Identity, submissionID uuid.UUID, in lead.ConvertInput) (*domain.LeadWithNames, error)
	AddCommentFunc   func(ctx context.Context, caller auth.Identity, leadID uuid.UUID, in lead.CommentInput) (*domain.CommentWithAuthor, error)
	ListCommentsFunc func(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error)
}

func (m *leadServiceMock) List(ctx context.Context, caller auth.Identity) ([]domain.LeadWithNames, error) {
	if m.ListFunc == nil {
		panic("leadServiceMock.ListFunc: method is nil but leadService.List was just called")
	}
	return m.ListFunc(ctx, caller)
}

func (m *leadServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
	if m.GetFunc == nil {
		panic("leadServiceMock.GetFunc: method is nil but leadService.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *leadServiceMock) Create(ctx context.Context, caller auth.Identity, in lead.CreateInput) (*domain.LeadWithNames, error) {
	if m.CreateFunc == nil {
		panic("leadServiceMock.CreateFunc: method is nil but leadService.Create was just called")
	}
	return m.CreateFunc(ctx, caller, in)
}

func (m *leadServiceMock) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in lead.UpdateInput) (*domain.LeadWithNames, error) {
	if m.UpdateFunc == nil {
		panic("leadServiceMock.UpdateFunc: method is nil but leadService.Update was just called")
	}
	return m.UpdateFunc(ctx, caller, id, in)
}

func (m *leadServiceMock) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) (*lead.DeleteResult, error) {
	if m.DeleteFunc == nil {
		panic("leadServiceMock.DeleteFunc: method is nil but leadService.Delete was just called")
	}
	return m.DeleteFunc(ctx, caller, id)
}

func (m *leadServiceMock) Convert(ctx context.Context, caller auth.Identity, submissionID uuid.UUID, in lead.ConvertInput) (*domain.LeadWithNames, error) {
	if m.ConvertFunc == nil {
		panic("leadServiceMock.ConvertFunc: method is nil but leadService.Convert was just called")
	}
	return m.ConvertFunc(ctx, caller, submissionID, in)
}

func (m *leadServiceMock) AddComment(ctx context.Context, caller auth.Identity, leadID uuid.UUID, in lead.CommentInput) (*domain.CommentWithAuthor, error) {
	if m.AddCommentFunc == nil {
		panic("leadServiceMock.AddCommentFunc: method is nil but leadService.AddComment was just called")
	}
	return m.AddCommentFunc(ctx, caller, leadID, in)
}

func (m *leadServiceMock) ListComments(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error) {
	if m.ListCommentsFunc == nil {
		panic("leadServiceMock.ListCommentsFunc: method is nil but leadService.ListComments was just called")
	}
	return m.ListCommentsFunc(ctx, leadID)
}

type submissionServiceMock struct {
	IntakeFunc     func(ctx context.Context, in submission.IntakeInput) (*domain.Submission, error)
	ListFunc       func(ctx context.Context, caller auth.Identity, status *domain.SubmissionStatus) ([]domain.Submission, error)
	ListByTypeFunc func(ctx context.Context, caller auth.Identity, formType string) ([]domain.Submission, error)
	GetFunc        func(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Submission, error)
	ArchiveFunc    func(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	DeleteFunc     func(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

func (m *submissionServiceMock) Intake(ctx context.Context, in submission.IntakeInput) (*domain.Submission, error) {
	if m.IntakeFunc == nil {
		panic("submissionServiceMock.IntakeFunc: method is nil but submissionService.Intake was just called")
	}
	return m.IntakeFunc(ctx, in)
}

func (m *submissionServiceMock) List(ctx context.Context, caller auth.Identity, status *domain.SubmissionStatus) ([]domain.Submission, error) {
	if m.ListFunc == nil {
		panic("submissionServiceMock.ListFunc: method is nil but submissionService.List was just called")
	}
	return m.ListFunc(ctx, caller, status)
}

func (m *submissionServiceMock) ListByType(ctx context.Context, caller auth.Identity, formType string) ([]domain.Submission, error) {
	if m.ListByTypeFunc == nil {
		panic("submissionServiceMock.ListByTypeFunc: method is nil but submissionService.ListByType was just called")
	}
	return m.ListByTypeFunc(ctx, caller, formType)
}

func (m *submissionServiceMock) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Submission, error) {
	if m.GetFunc == nil {
		panic("submissionServiceMock.GetFunc: method is nil but submissionService.Get was just called")
	}
	return m.GetFunc(ctx, caller, id)
}

func (m *submissionServiceMock) Archive(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if m.ArchiveFunc == nil {
		panic("submissionServiceMock.ArchiveFunc: method is nil but submissionService.Archive was just called")
	}
	return m.ArchiveFunc(ctx, caller, id)
}

func (m *submissionServiceMock) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("submissionServiceMock.DeleteFunc: method is nil but submissionService.Delete was just called")
	}
	return m.DeleteFunc(ctx, caller, id)
}

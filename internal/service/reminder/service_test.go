package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

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

func executiveIdentity() auth.Identity {
	return auth.Identity{
		UserID:      uuid.New(),
		RoleName:    domain.RoleNameSalesExecutive,
		Class:       domain.RoleSalesExecutive,
		Permissions: domain.Permissions{"leads": true, "reminders": true},
	}
}

func TestService_List_PinsNonAdminsToOwnReminders(t *testing.T) {
	t.Parallel()

	caller := executiveIdentity()
	repo := &reminderRepoMock{}
	var got domain.ReminderFilter
	repo.ListFunc = func(ctx context.Context, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error) {
		got = filter
		return []domain.ReminderWithLead{}, nil
	}
	svc := NewService(testLogger(), repo, &leadRepoMock{}, &activityWriterMock{})

	other := uuid.New()
	if _, err := svc.List(context.Background(), caller, domain.ReminderFilter{UserID: &other}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.UserID == nil || *got.UserID != caller.UserID {
		t.Errorf("UserID filter = %v, want caller id", got.UserID)
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	caller := executiveIdentity()
	leadID := uuid.New()

	leads := &leadRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
			return &domain.LeadWithNames{Lead: domain.Lead{ID: id, Name: "Acme"}}, nil
		},
	}
	repo := &reminderRepoMock{
		CreateFunc: func(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error) {
			return &domain.ReminderWithLead{Reminder: *r}, nil
		},
	}
	activity := &activityWriterMock{}
	svc := NewService(testLogger(), repo, leads, activity)

	due := time.Now().Add(48 * time.Hour)
	out, err := svc.Create(context.Background(), caller, CreateInput{
		LeadID:  &leadID,
		Title:   "Send proposal",
		DueDate: due,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.UserID != caller.UserID {
		t.Errorf("UserID = %s, want caller id", out.UserID)
	}
	if out.Status != domain.ReminderStatusPending {
		t.Errorf("Status = %s, want Pending", out.Status)
	}
	if records := activity.Records(); len(records) != 1 || records[0].ActionType != domain.ActionCreate {
		t.Errorf("records = %+v, want one create event", records)
	}
}

func TestService_Create_MissingLead(t *testing.T) {
	t.Parallel()

	leadID := uuid.New()
	leads := &leadRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(testLogger(), &reminderRepoMock{}, leads, &activityWriterMock{})

	_, err := svc.Create(context.Background(), executiveIdentity(), CreateInput{
		LeadID:  &leadID,
		Title:   "Call back",
		DueDate: time.Now(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestService_Update_CompletionSyncsFlagAndTimestamp(t *testing.T) {
	t.Parallel()

	caller := executiveIdentity()
	repo := &reminderRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error) {
			return &domain.ReminderWithLead{Reminder: domain.Reminder{
				ID:      id,
				UserID:  caller.UserID,
				Title:   "Send proposal",
				DueDate: time.Now(),
				Status:  domain.ReminderStatusPending,
			}}, nil
		},
	}
	var updated *domain.Reminder
	repo.UpdateFunc = func(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error) {
		updated = r
		return &domain.ReminderWithLead{Reminder: *r}, nil
	}
	svc := NewService(testLogger(), repo, &leadRepoMock{}, &activityWriterMock{})

	done := domain.ReminderStatusCompleted
	_, err := svc.Update(context.Background(), caller, uuid.New(), UpdateInput{Status: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Errorf("completed = %v, completedAt = %v, want both set", updated.Completed, updated.CompletedAt)
	}
}

func TestService_Update_OwnerOnly(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	repo := &reminderRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error) {
			return &domain.ReminderWithLead{Reminder: domain.Reminder{ID: id, UserID: owner}}, nil
		},
	}
	svc := NewService(testLogger(), repo, &leadRepoMock{}, &activityWriterMock{})

	_, err := svc.Update(context.Background(), executiveIdentity(), uuid.New(), UpdateInput{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestService_Delete_AdminOverridesOwnership(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	repo := &reminderRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error) {
			return &domain.ReminderWithLead{Reminder: domain.Reminder{ID: id, UserID: owner, Title: "Old"}}, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	svc := NewService(testLogger(), repo, &leadRepoMock{}, &activityWriterMock{})

	if err := svc.Delete(context.Background(), adminIdentity(), uuid.New()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

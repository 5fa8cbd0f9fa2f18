package lead_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/spars/crm-backend/internal/adapter/postgres/lead"
	"github.com/spars/crm-backend/internal/domain"
)

var leadCols = []string{
	"id", "name", "email", "phone", "company", "designation",
	"source_type", "source", "status", "stage", "assigned", "assigned_to", "created_by",
	"follow_up_required", "follow_up_date", "follow_up_time", "follow_up_status",
	"created_at", "updated_at", "created_by_name", "assigned_to_name",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *lead.Repo) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, lead.New(mock)
}

func leadRow(id uuid.UUID, name, status, stage string, assignedTo *uuid.UUID) []any {
	now := time.Now()
	return []any{
		id, name, nil, nil, nil, nil,
		"Website", nil, status, stage, domain.UnassignedLabel, assignedTo, nil,
		false, nil, nil, nil,
		now, now, nil, nil,
	}
}

func TestRepo_GetByID(t *testing.T) {
	leadID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		rows := pgxmock.NewRows(leadCols).
			AddRow(leadRow(leadID, "Acme Corp", "New", "A", nil)...)
		mock.ExpectQuery(`SELECT .+ FROM leads l`).
			WithArgs(leadID).
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), leadID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != "Acme Corp" {
			t.Errorf("Name = %q, want %q", got.Name, "Acme Corp")
		}
		if got.Status != domain.LeadStatusNew {
			t.Errorf("Status = %q, want %q", got.Status, domain.LeadStatusNew)
		}
		if got.Stage != domain.LeadStageA {
			t.Errorf("Stage = %q, want %q", got.Stage, domain.LeadStageA)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM leads l`).
			WithArgs(leadID).
			WillReturnRows(pgxmock.NewRows(leadCols))

		_, err := repo.GetByID(context.Background(), leadID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestRepo_List_Scopes(t *testing.T) {
	userID := uuid.New()

	t.Run("unscoped lists everything", func(t *testing.T) {
		mock, repo := newMock(t)
		rows := pgxmock.NewRows(leadCols).
			AddRow(leadRow(uuid.New(), "First", "New", "A", nil)...).
			AddRow(leadRow(uuid.New(), "Second", "Contacted", "B", &userID)...)
		mock.ExpectQuery(`SELECT .+ FROM leads l .+ ORDER BY l.created_at DESC`).
			WillReturnRows(rows)

		got, err := repo.List(context.Background(), domain.LeadScope{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("assigned-to scope filters by owner", func(t *testing.T) {
		mock, repo := newMock(t)
		rows := pgxmock.NewRows(leadCols).
			AddRow(leadRow(uuid.New(), "Mine", "New", "A", &userID)...)
		mock.ExpectQuery(`SELECT .+ FROM leads l .+ WHERE l.assigned_to = \$1`).
			WithArgs(userID).
			WillReturnRows(rows)

		got, err := repo.List(context.Background(), domain.LeadScope{AssignedTo: &userID})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
	})

	t.Run("team scope queries manager's reports", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM leads l .+ WHERE l.assigned_to IN \(SELECT id FROM users WHERE manager_id = \$1\)`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(leadCols))

		got, err := repo.List(context.Background(), domain.LeadScope{TeamOf: &userID})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
	})
}

func TestRepo_ListByAssignees_Empty(t *testing.T) {
	// No query reaches the database for an empty assignee set.
	mock, repo := newMock(t)

	got, err := repo.ListByAssignees(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListByAssignees: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_UpdateStage(t *testing.T) {
	leadID := uuid.New()

	t.Run("updates the stage column", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(`UPDATE leads SET stage = \$2`).
			WithArgs(leadID, "C").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		if err := repo.UpdateStage(context.Background(), leadID, domain.LeadStageC); err != nil {
			t.Fatalf("UpdateStage: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("missing lead", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(`UPDATE leads SET stage = \$2`).
			WithArgs(leadID, "C").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStage(context.Background(), leadID, domain.LeadStageC)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestRepo_Delete(t *testing.T) {
	leadID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(`DELETE FROM leads WHERE id = \$1`).
			WithArgs(leadID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		if err := repo.Delete(context.Background(), leadID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("missing lead", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(`DELETE FROM leads WHERE id = \$1`).
			WithArgs(leadID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), leadID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/lead"
)

func sampleLead(id uuid.UUID) *domain.LeadWithNames {
	email := "jane@acme.com"
	return &domain.LeadWithNames{Lead: domain.Lead{
		ID:         id,
		Name:       "Jane Smith",
		Email:      &email,
		SourceType: "Manual",
		Status:     domain.LeadStatusNew,
		Stage:      domain.LeadStageA,
		Assigned:   domain.UnassignedLabel,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}}
}

func TestLeadHandler_List(t *testing.T) {
	t.Parallel()

	caller := executiveIdentity()
	svc := &leadServiceMock{
		ListFunc: func(_ context.Context, got auth.Identity) ([]domain.LeadWithNames, error) {
			if got.UserID != caller.UserID {
				t.Errorf("expected caller identity forwarded, got %s", got.UserID)
			}
			return []domain.LeadWithNames{*sampleLead(uuid.New()), *sampleLead(uuid.New())}, nil
		},
	}
	h := NewLeadHandler(svc, testLogger())

	req := authed(httptest.NewRequest(http.MethodGet, "/leads", nil), caller)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp []leadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("expected 2 leads, got %d", len(resp))
	}
	if resp[0].Status != "New" {
		t.Errorf("expected status 'New', got %q", resp[0].Status)
	}
}

func TestLeadHandler_Get_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewLeadHandler(&leadServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/leads/not-a-uuid", nil)
	req = withURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLeadHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc := &leadServiceMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*domain.LeadWithNames, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewLeadHandler(svc, testLogger())

	id := uuid.New()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/leads/"+id.String(), nil), "id", id.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestLeadHandler_Create(t *testing.T) {
	t.Parallel()

	caller := adminIdentity()
	svc := &leadServiceMock{}
	var gotInput lead.CreateInput
	svc.CreateFunc = func(_ context.Context, _ auth.Identity, in lead.CreateInput) (*domain.LeadWithNames, error) {
		gotInput = in
		l := sampleLead(uuid.New())
		l.Name = in.Name
		return l, nil
	}
	h := NewLeadHandler(svc, testLogger())

	body := strings.NewReader(`{"name":"Jane Smith","source_type":"Manual","status":"New","stage":"A"}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/leads", body), caller)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Name != "Jane Smith" {
		t.Errorf("expected name forwarded to service, got %q", gotInput.Name)
	}
	if gotInput.Stage != domain.LeadStageA {
		t.Errorf("expected stage A, got %q", gotInput.Stage)
	}
}

func TestLeadHandler_Update_ForbiddenForUnassigned(t *testing.T) {
	t.Parallel()

	svc := &leadServiceMock{
		UpdateFunc: func(_ context.Context, _ auth.Identity, _ uuid.UUID, _ lead.UpdateInput) (*domain.LeadWithNames, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewLeadHandler(svc, testLogger())

	id := uuid.New()
	body := strings.NewReader(`{"status":"Contacted"}`)
	req := authed(httptest.NewRequest(http.MethodPut, "/leads/"+id.String(), body), executiveIdentity())
	req = withURLParam(req, "id", id.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestLeadHandler_Delete_ReportsCascadeCounts(t *testing.T) {
	t.Parallel()

	svc := &leadServiceMock{
		DeleteFunc: func(_ context.Context, _ auth.Identity, _ uuid.UUID) (*lead.DeleteResult, error) {
			return &lead.DeleteResult{CallLogs: 3, Reminders: 2, Comments: 5, Tags: 1, Submissions: 1}, nil
		},
	}
	h := NewLeadHandler(svc, testLogger())

	id := uuid.New()
	req := authed(httptest.NewRequest(http.MethodDelete, "/leads/"+id.String(), nil), adminIdentity())
	req = withURLParam(req, "id", id.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp deleteLeadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Deleted.CallLogs != 3 || resp.Deleted.Comments != 5 {
		t.Errorf("unexpected cascade counts: %+v", resp.Deleted)
	}
}

func TestLeadHandler_Convert(t *testing.T) {
	t.Parallel()

	submissionID := uuid.New()
	svc := &leadServiceMock{}
	svc.ConvertFunc = func(_ context.Context, _ auth.Identity, gotID uuid.UUID, in lead.ConvertInput) (*domain.LeadWithNames, error) {
		if gotID != submissionID {
			t.Errorf("expected submission id %s, got %s", submissionID, gotID)
		}
		l := sampleLead(uuid.New())
		l.Name = in.Name
		return l, nil
	}
	h := NewLeadHandler(svc, testLogger())

	body := strings.NewReader(`{"name":"Converted Lead"}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/leads/convert/"+submissionID.String(), body), adminIdentity())
	req = withURLParam(req, "submissionID", submissionID.String())
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLeadHandler_AddComment(t *testing.T) {
	t.Parallel()

	leadID := uuid.New()
	caller := executiveIdentity()
	svc := &leadServiceMock{
		AddCommentFunc: func(_ context.Context, got auth.Identity, gotLeadID uuid.UUID, in lead.CommentInput) (*domain.CommentWithAuthor, error) {
			if gotLeadID != leadID {
				t.Errorf("expected lead id %s, got %s", leadID, gotLeadID)
			}
			return &domain.CommentWithAuthor{
				Comment: domain.Comment{
					ID:        uuid.New(),
					LeadID:    gotLeadID,
					Text:      in.Text,
					CreatedBy: got.UserID,
					CreatedAt: time.Now().UTC(),
				},
				AuthorName: "Sales Executive A1",
			}, nil
		},
	}
	h := NewLeadHandler(svc, testLogger())

	body := strings.NewReader(`{"lead_id":"` + leadID.String() + `","text":"spoke on the phone, send pricing"}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/comments", body), caller)
	rec := httptest.NewRecorder()

	h.AddComment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp commentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Text != "spoke on the phone, send pricing" {
		t.Errorf("unexpected comment text %q", resp.Text)
	}
	if resp.AuthorName == "" {
		t.Error("expected author name in response")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/api/middleware"
	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

type stubTicketService struct {
	listResult   *ports.TicketListResult
	detail       *ports.TicketDetail
	updateResult *ports.UpdateStatusResult
	updateErr    error
	lastInput    ports.ListAssignedInput
	lastUpdate   ports.UpdateStatusInput
}

func (s *stubTicketService) ListAssigned(_ context.Context, in ports.ListAssignedInput) (*ports.TicketListResult, error) {
	s.lastInput = in
	return s.listResult, nil
}

func (s *stubTicketService) ListCompleted(_ context.Context, _ int64, _, _ int) (*ports.TicketListResult, error) {
	return s.listResult, nil
}

func (s *stubTicketService) GetDetail(_ context.Context, _ int64) (*ports.TicketDetail, error) {
	if s.detail == nil {
		return nil, domain.ErrTicketNotFound
	}
	return s.detail, nil
}

func (s *stubTicketService) UpdateStatus(_ context.Context, in ports.UpdateStatusInput) (*ports.UpdateStatusResult, error) {
	s.lastUpdate = in
	return s.updateResult, s.updateErr
}

func (s *stubTicketService) CaptureLocation(_ context.Context, ticketID int64, lat, lng float64) (*ports.LocationAck, error) {
	return &ports.LocationAck{TicketID: ticketID, Latitude: lat, Longitude: lng, CapturedAt: time.Now()}, nil
}

func (s *stubTicketService) AttachPhotos(_ context.Context, ticketID int64, refs []string) (*ports.PhotosAck, error) {
	return &ports.PhotosAck{TicketID: ticketID, PhotoURLs: refs}, nil
}

func (s *stubTicketService) AttachSignature(_ context.Context, ticketID int64, _, _ string) (*ports.SignatureAck, error) {
	return &ports.SignatureAck{TicketID: ticketID, SignatureURL: "/sig.png", CapturedAt: time.Now()}, nil
}

func (s *stubTicketService) DaySchedule(_ context.Context, _ int64, _ time.Time) ([]ports.ScheduleEntry, error) {
	return nil, nil
}

func authedContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(t, method, path, body)
	c.Set(middleware.ContextKeyIdentity, &domain.Identity{UserID: 1, FullName: "Alice Field", Role: domain.RoleServiceStaff})
	return c, rec
}

func TestTicketHandler_ListAssigned(t *testing.T) {
	svc := &stubTicketService{
		listResult: &ports.TicketListResult{
			Tickets: []ports.TicketSummary{{
				ID: 1, TicketNumber: "TKT000001", CustomerName: "Acme Corp",
				Status: "SCHEDULED", Priority: "HIGH",
			}},
			TotalCount: 9,
		},
	}
	h := NewTicketHandler(svc)

	c, rec := authedContext(t, http.MethodGet, "/api/v1/tickets/assigned?status=SCHEDULED&limit=5&offset=10", "")
	if err := h.ListAssigned(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if svc.lastInput.StaffID != 1 || svc.lastInput.Status != "SCHEDULED" || svc.lastInput.Limit != 5 || svc.lastInput.Offset != 10 {
		t.Fatalf("query not forwarded: %+v", svc.lastInput)
	}

	var body ticketListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalCount != 9 || len(body.Tickets) != 1 || body.Tickets[0].TicketNumber != "TKT000001" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestTicketHandler_ListAssigned_Unauthenticated(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/tickets/assigned", "")
	err := h.ListAssigned(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestTicketHandler_Get_InvalidID(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := authedContext(t, http.MethodGet, "/api/v1/tickets/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.Get(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %v", err)
	}
}

func TestTicketHandler_Get_NotFound(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := authedContext(t, http.MethodGet, "/api/v1/tickets/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketHandler_UpdateStatus(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubTicketService{
		updateResult: &ports.UpdateStatusResult{TicketID: 5, NewStatus: "COMPLETED", UpdatedAt: now},
	}
	h := NewTicketHandler(svc)

	payload := `{"status":"COMPLETED","work_performed":"replaced pump","parts_used":[{"part_name":"Pump","quantity":1,"unit_cost":45.5}]}`
	c, rec := authedContext(t, http.MethodPut, "/api/v1/tickets/5/status", payload)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUpdate.ActorID != 1 || svc.lastUpdate.Status != "COMPLETED" || len(svc.lastUpdate.PartsUsed) != 1 {
		t.Fatalf("input not forwarded: %+v", svc.lastUpdate)
	}

	var body updateStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TicketID != 5 || body.Status != "COMPLETED" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestTicketHandler_UpdateStatus_MissingStatus(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := authedContext(t, http.MethodPut, "/api/v1/tickets/5/status", `{"notes":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	err := h.UpdateStatus(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing status, got %v", err)
	}
}

func TestTicketHandler_Schedule_BadDate(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := authedContext(t, http.MethodGet, "/api/v1/schedule?date=10-03-2026", "")
	err := h.Schedule(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %v", err)
	}
}

func TestTicketHandler_CaptureLocation_InvalidLatitude(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := authedContext(t, http.MethodPost, "/api/v1/tickets/5/location", `{"latitude":123.0,"longitude":10.0}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	err := h.CaptureLocation(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range latitude, got %v", err)
	}
}

func TestTicketHandler_CaptureLocation(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, rec := authedContext(t, http.MethodPost, "/api/v1/tickets/5/location", `{"latitude":12.97,"longitude":77.59}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.CaptureLocation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body locationAckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TicketID != 5 || body.Latitude != 12.97 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestTicketHandler_AttachPhotos_EmptyList(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, _ := authedContext(t, http.MethodPost, "/api/v1/tickets/5/photos", `{"photos":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	err := h.AttachPhotos(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty photo list, got %v", err)
	}
}

func TestTicketHandler_AttachSignature(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{})

	c, rec := authedContext(t, http.MethodPost, "/api/v1/tickets/5/signature", `{"customer_name":"Acme Corp"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.AttachSignature(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "signature_url") {
		t.Fatalf("expected signature_url in body: %s", rec.Body.String())
	}
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/apperrors"
)

// fakeEventService is a canned-response EventService for handler tests.
type fakeEventService struct {
	events map[uuid.UUID]*dto.EventResponse
}

func newFakeEventService() *fakeEventService {
	return &fakeEventService{events: make(map[uuid.UUID]*dto.EventResponse)}
}

func (s *fakeEventService) CreateEvent(_ context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	id := uuid.New()
	event := &dto.EventResponse{
		ID:        id.String(),
		Title:     req.Title,
		ShareLink: "http://localhost:8080/casting-call/" + id.String(),
		OwnerLink: "http://localhost:8080/event/" + id.String(),
	}
	s.events[id] = event
	return event, nil
}

func (s *fakeEventService) GetEventByID(_ context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (s *fakeEventService) GetAllEvents(_ context.Context) ([]dto.EventResponse, error) {
	events := []dto.EventResponse{}
	for _, event := range s.events {
		events = append(events, *event)
	}
	return events, nil
}

func (s *fakeEventService) GetCastingCall(_ context.Context, id uuid.UUID) (*dto.CastingCallResponse, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return &dto.CastingCallResponse{ID: event.ID, Title: event.Title}, nil
}

func newEventTestRouter(svc *fakeEventService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewEventController(svc)

	router := gin.New()
	router.POST("/api/v1/events", controller.CreateEvent)
	router.GET("/api/v1/events", controller.GetAllEvents)
	router.GET("/api/v1/events/:id", controller.GetEventByID)
	router.GET("/api/v1/casting-calls/:id", controller.GetCastingCall)
	return router
}

func TestCreateEventReturnsLinks(t *testing.T) {
	router := newEventTestRouter(newFakeEventService())

	body, _ := json.Marshal(dto.CreateEventRequest{Title: "Lead Role"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var envelope struct {
		Data dto.EventResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.ShareLink == "" || envelope.Data.OwnerLink == "" {
		t.Errorf("response missing derived links: %+v", envelope.Data)
	}
	if envelope.Data.Title != "Lead Role" {
		t.Errorf("Title = %q, want %q", envelope.Data.Title, "Lead Role")
	}
}

func TestCreateEventRejectsMalformedJSON(t *testing.T) {
	router := newEventTestRouter(newFakeEventService())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetEventByIDMalformedUUID(t *testing.T) {
	router := newEventTestRouter(newFakeEventService())

	// A malformed ID names no event, so it gets the same 404 as an unknown one.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetEventByIDUnknown(t *testing.T) {
	router := newEventTestRouter(newFakeEventService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetCastingCallReturnsApplicantView(t *testing.T) {
	svc := newFakeEventService()
	router := newEventTestRouter(svc)

	event, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{Title: "Indie Feature"})
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/casting-calls/"+event.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Data dto.CastingCallResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.ID != event.ID || envelope.Data.Title != "Indie Feature" {
		t.Errorf("casting call = %+v, want id %s title Indie Feature", envelope.Data, event.ID)
	}
}

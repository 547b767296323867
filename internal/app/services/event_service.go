package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/derya/castlink/internal/app/models"
	"github.com/derya/castlink/internal/app/models/dto"
)

// EventRepository is the persistence surface the event pipelines need. The
// concrete implementation lives in the repositories package; the interface
// keeps services testable without a live database.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]*models.Event, error)
}

// EventService defines the interface for casting event operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	GetAllEvents(ctx context.Context) ([]dto.EventResponse, error)
	GetCastingCall(ctx context.Context, id uuid.UUID) (*dto.CastingCallResponse, error)
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo    EventRepository
	publicOrigin string
}

// NewEventService creates a new event service instance. publicOrigin is the
// origin shareable links are derived against.
func NewEventService(eventRepo EventRepository, publicOrigin string) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		publicOrigin: strings.TrimRight(publicOrigin, "/"),
	}
}

// CreateEvent inserts exactly one event record and derives its links. There
// is no validation beyond what the persistence layer enforces: an empty
// title, or no fields at all, is an acceptable event.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.StartDate != "" {
		event.StartDate = &req.StartDate
	}
	if req.EndDate != "" {
		event.EndDate = &req.EndDate
	}

	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return s.toEventResponse(event), nil
}

// GetEventByID retrieves the owner-facing view of an event
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toEventResponse(event), nil
}

// GetAllEvents retrieves all events, newest first
func (s *eventServiceImpl) GetAllEvents(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.GetAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving events: %w", err)
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, *s.toEventResponse(event))
	}
	return responses, nil
}

// GetCastingCall retrieves the applicant-facing view of an event, as routed
// to by the shareable link.
func (s *eventServiceImpl) GetCastingCall(ctx context.Context, id uuid.UUID) (*dto.CastingCallResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CastingCallResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
	}, nil
}

// toEventResponse maps an event record to its response, deriving the
// shareable applicant link and the owner link from the configured origin.
func (s *eventServiceImpl) toEventResponse(event *models.Event) *dto.EventResponse {
	id := event.ID.String()
	return &dto.EventResponse{
		ID:          id,
		Title:       event.Title,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		CreatedAt:   event.CreatedAt,
		ShareLink:   s.publicOrigin + "/casting-call/" + id,
		OwnerLink:   s.publicOrigin + "/event/" + id,
	}
}

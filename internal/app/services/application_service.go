package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/derya/castlink/internal/app/models"
	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/objectstore"
	"github.com/derya/castlink/internal/pkg/websocket"
)

// ApplicationRepository is the persistence surface the submission pipeline
// needs.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplicationsByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Application, error)
}

// ApplicationService defines the interface for application operations
type ApplicationService interface {
	SubmitApplication(ctx context.Context, eventID uuid.UUID, req *dto.SubmitApplicationRequest, photo *multipart.FileHeader) (*dto.ApplicationResponse, error)
	GetApplicationsByEvent(ctx context.Context, eventID uuid.UUID) ([]dto.ApplicationResponse, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo ApplicationRepository
	eventRepo       EventRepository
	photos          objectstore.PhotoStore
	feedHub         *websocket.Hub // live feed hub; may be nil
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo ApplicationRepository,
	eventRepo EventRepository,
	photos objectstore.PhotoStore,
	feedHub *websocket.Hub,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		eventRepo:       eventRepo,
		photos:          photos,
		feedHub:         feedHub,
		logger:          logger,
	}
}

// SubmitApplication runs the two-phase submission pipeline: upload the photo
// first (when one was chosen), then insert the application record.
//
// The ordering is a contract, not an accident: the record's photo URL must
// reference an object that already exists by the time any reader can see the
// record, so a failed upload aborts the whole submission and no record is
// written. The reverse failure, a successful upload followed by a failed
// insert, leaves an orphaned object behind; that leak is accepted and not
// cleaned up. At most one record is created per invocation.
func (s *applicationServiceImpl) SubmitApplication(ctx context.Context, eventID uuid.UUID, req *dto.SubmitApplicationRequest, photo *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	// The event reference comes from the route, never from the form. Resolve
	// it before doing any work so a dead link fails fast.
	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	var photoURL *string
	if photo != nil {
		url, err := s.photos.Upload(ctx, eventID.String(), photo)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("eventID", eventID.String()).
				Str("filename", photo.Filename).
				Msg("Photo upload failed, aborting submission")
			return nil, err
		}
		photoURL = &url
	}

	app := &models.Application{
		EventID:           eventID,
		Name:              req.Name,
		Age:               req.Age,
		Phone:             req.Phone,
		Email:             req.Email,
		Location:          req.Location,
		Gender:            req.Gender,
		NativeState:       req.NativeState,
		Languages:         req.Languages,
		YouTubeLink:       req.YouTubeLink,
		PortfolioLink:     req.PortfolioLink,
		CandidatePhotoURL: photoURL,
	}

	if err := s.applicationRepo.CreateApplication(ctx, app); err != nil {
		// No retry; the already-uploaded photo object, if any, stays behind.
		return nil, fmt.Errorf("error submitting application: %w", err)
	}

	response := toApplicationResponse(app)

	// Notify open viewers of this event. Broadcast happens only after the
	// insert succeeded, so a feed frame always describes a persisted record.
	if s.feedHub != nil {
		s.feedHub.BroadcastApplication(eventID, response)
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("eventID", eventID.String()).
		Bool("hasPhoto", photoURL != nil).
		Msg("Application submitted")

	return response, nil
}

// GetApplicationsByEvent lists the stored applications for one event, most
// recent first.
func (s *applicationServiceImpl) GetApplicationsByEvent(ctx context.Context, eventID uuid.UUID) ([]dto.ApplicationResponse, error) {
	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	apps, err := s.applicationRepo.GetApplicationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving applications: %w", err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, *toApplicationResponse(app))
	}
	return responses, nil
}

// toApplicationResponse maps a stored application to its response shape
func toApplicationResponse(app *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:                app.ID,
		EventID:           app.EventID.String(),
		Name:              app.Name,
		Age:               app.Age,
		Phone:             app.Phone,
		Email:             app.Email,
		Location:          app.Location,
		Gender:            app.Gender,
		NativeState:       app.NativeState,
		Languages:         app.Languages,
		YouTubeLink:       app.YouTubeLink,
		PortfolioLink:     app.PortfolioLink,
		CandidatePhotoURL: app.CandidatePhotoURL,
		CreatedAt:         app.CreatedAt,
	}
}

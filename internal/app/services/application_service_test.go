package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/derya/castlink/internal/app/models"
	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/apperrors"
)

// fakeApplicationRepo is an in-memory ApplicationRepository for service tests.
type fakeApplicationRepo struct {
	created   []*models.Application
	createErr error
}

func (r *fakeApplicationRepo) CreateApplication(_ context.Context, app *models.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	app.ID = int64(len(r.created) + 1)
	app.CreatedAt = time.Now()
	stored := *app
	r.created = append(r.created, &stored)
	return nil
}

func (r *fakeApplicationRepo) GetApplicationsByEvent(_ context.Context, eventID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	for i := len(r.created) - 1; i >= 0; i-- {
		if r.created[i].EventID == eventID {
			apps = append(apps, r.created[i])
		}
	}
	return apps, nil
}

// fakePhotoStore records uploads and returns a canned URL or error.
type fakePhotoStore struct {
	url     string
	err     error
	uploads int
}

func (s *fakePhotoStore) Upload(_ context.Context, _ string, _ *multipart.FileHeader) (string, error) {
	s.uploads++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func seedEvent(t *testing.T, repo *fakeEventRepo) uuid.UUID {
	t.Helper()
	event := &models.Event{Title: "Lead Role"}
	if err := repo.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event.ID
}

func TestSubmitApplicationWithoutPhoto(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventID := seedEvent(t, eventRepo)
	appRepo := &fakeApplicationRepo{}
	photos := &fakePhotoStore{url: "http://minio/candidate-photos/x.jpg"}
	svc := NewApplicationService(appRepo, eventRepo, photos, nil, zerolog.Nop())

	resp, err := svc.SubmitApplication(context.Background(), eventID, &dto.SubmitApplicationRequest{
		Name:  "Ada",
		Email: "ada@x.com",
	}, nil)
	if err != nil {
		t.Fatalf("SubmitApplication returned error: %v", err)
	}

	if resp.CandidatePhotoURL != nil {
		t.Errorf("CandidatePhotoURL = %v, want nil", *resp.CandidatePhotoURL)
	}
	if photos.uploads != 0 {
		t.Errorf("photo store called %d times, want 0", photos.uploads)
	}
	if len(appRepo.created) != 1 {
		t.Fatalf("created %d records, want exactly 1", len(appRepo.created))
	}
	if got := appRepo.created[0]; got.EventID != eventID || got.Name != "Ada" || got.Email != "ada@x.com" {
		t.Errorf("stored record = %+v, want event %s, name Ada, email ada@x.com", got, eventID)
	}
}

func TestSubmitApplicationUploadsPhotoBeforeInsert(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventID := seedEvent(t, eventRepo)
	appRepo := &fakeApplicationRepo{}
	photos := &fakePhotoStore{url: "http://minio/candidate-photos/e/1-abcd1234.jpg"}
	svc := NewApplicationService(appRepo, eventRepo, photos, nil, zerolog.Nop())

	photo := &multipart.FileHeader{Filename: "headshot.jpg"}
	resp, err := svc.SubmitApplication(context.Background(), eventID, &dto.SubmitApplicationRequest{Name: "Grace"}, photo)
	if err != nil {
		t.Fatalf("SubmitApplication returned error: %v", err)
	}

	if photos.uploads != 1 {
		t.Errorf("photo store called %d times, want 1", photos.uploads)
	}
	if resp.CandidatePhotoURL == nil || *resp.CandidatePhotoURL != photos.url {
		t.Errorf("CandidatePhotoURL = %v, want %q", resp.CandidatePhotoURL, photos.url)
	}
	if len(appRepo.created) != 1 || appRepo.created[0].CandidatePhotoURL == nil {
		t.Fatal("record missing or stored without the resolved photo URL")
	}
}

func TestSubmitApplicationAbortsOnUploadFailure(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventID := seedEvent(t, eventRepo)
	appRepo := &fakeApplicationRepo{}
	photos := &fakePhotoStore{err: apperrors.NewBucketMissingError(
		`photo upload failed: storage bucket "candidate-photos" does not exist; create it and apply its access policy before accepting submissions`)}
	svc := NewApplicationService(appRepo, eventRepo, photos, nil, zerolog.Nop())

	photo := &multipart.FileHeader{Filename: "headshot.jpg"}
	_, err := svc.SubmitApplication(context.Background(), eventID, &dto.SubmitApplicationRequest{Name: "Ada"}, photo)
	if !errors.Is(err, apperrors.ErrBucketMissing) {
		t.Fatalf("SubmitApplication error = %v, want ErrBucketMissing", err)
	}
	if !strings.Contains(err.Error(), "candidate-photos") {
		t.Errorf("error message %q does not name the bucket to create", err.Error())
	}

	// The failed upload aborts the whole submission: no record exists.
	if len(appRepo.created) != 0 {
		t.Errorf("created %d records after failed upload, want 0", len(appRepo.created))
	}
}

func TestSubmitApplicationUnknownEvent(t *testing.T) {
	eventRepo := newFakeEventRepo()
	appRepo := &fakeApplicationRepo{}
	photos := &fakePhotoStore{url: "http://minio/candidate-photos/x.jpg"}
	svc := NewApplicationService(appRepo, eventRepo, photos, nil, zerolog.Nop())

	photo := &multipart.FileHeader{Filename: "headshot.jpg"}
	_, err := svc.SubmitApplication(context.Background(), uuid.New(), &dto.SubmitApplicationRequest{}, photo)
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("SubmitApplication error = %v, want ErrEventNotFound", err)
	}

	// Nothing was uploaded or inserted for a dead link.
	if photos.uploads != 0 {
		t.Errorf("photo store called %d times for unknown event, want 0", photos.uploads)
	}
	if len(appRepo.created) != 0 {
		t.Errorf("created %d records for unknown event, want 0", len(appRepo.created))
	}
}

func TestSubmitApplicationInsertFailureLeavesUpload(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventID := seedEvent(t, eventRepo)
	appRepo := &fakeApplicationRepo{createErr: errors.New("insert rejected")}
	photos := &fakePhotoStore{url: "http://minio/candidate-photos/x.jpg"}
	svc := NewApplicationService(appRepo, eventRepo, photos, nil, zerolog.Nop())

	photo := &multipart.FileHeader{Filename: "headshot.jpg"}
	_, err := svc.SubmitApplication(context.Background(), eventID, &dto.SubmitApplicationRequest{}, photo)
	if err == nil {
		t.Fatal("SubmitApplication succeeded despite insert failure")
	}

	// The upload happened first; the orphaned object is an accepted leak.
	if photos.uploads != 1 {
		t.Errorf("photo store called %d times, want 1", photos.uploads)
	}
	if len(appRepo.created) != 0 {
		t.Errorf("created %d records, want 0", len(appRepo.created))
	}
}

func TestGetApplicationsByEventNewestFirst(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventID := seedEvent(t, eventRepo)
	otherEventID := seedEvent(t, eventRepo)
	appRepo := &fakeApplicationRepo{}
	svc := NewApplicationService(appRepo, eventRepo, &fakePhotoStore{}, nil, zerolog.Nop())

	for _, name := range []string{"Ada", "Grace", "Margaret"} {
		if _, err := svc.SubmitApplication(context.Background(), eventID, &dto.SubmitApplicationRequest{Name: name}, nil); err != nil {
			t.Fatalf("SubmitApplication(%s) returned error: %v", name, err)
		}
	}
	if _, err := svc.SubmitApplication(context.Background(), otherEventID, &dto.SubmitApplicationRequest{Name: "Other"}, nil); err != nil {
		t.Fatalf("SubmitApplication(Other) returned error: %v", err)
	}

	apps, err := svc.GetApplicationsByEvent(context.Background(), eventID)
	if err != nil {
		t.Fatalf("GetApplicationsByEvent returned error: %v", err)
	}

	if len(apps) != 3 {
		t.Fatalf("listed %d applications, want 3", len(apps))
	}
	for i, want := range []string{"Margaret", "Grace", "Ada"} {
		if apps[i].Name != want {
			t.Errorf("apps[%d].Name = %q, want %q", i, apps[i].Name, want)
		}
	}
}

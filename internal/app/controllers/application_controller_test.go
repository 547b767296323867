package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/apperrors"
)

// fakeApplicationService records submissions and returns canned results.
type fakeApplicationService struct {
	eventID     uuid.UUID
	submitErr   error
	lastRequest *dto.SubmitApplicationRequest
	lastPhoto   *multipart.FileHeader
	submissions []dto.ApplicationResponse
}

func (s *fakeApplicationService) SubmitApplication(_ context.Context, eventID uuid.UUID, req *dto.SubmitApplicationRequest, photo *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	if eventID != s.eventID {
		return nil, apperrors.ErrEventNotFound
	}
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.lastRequest = req
	s.lastPhoto = photo
	resp := dto.ApplicationResponse{
		ID:      int64(len(s.submissions) + 1),
		EventID: eventID.String(),
		Name:    req.Name,
	}
	s.submissions = append(s.submissions, resp)
	return &resp, nil
}

func (s *fakeApplicationService) GetApplicationsByEvent(_ context.Context, eventID uuid.UUID) ([]dto.ApplicationResponse, error) {
	if eventID != s.eventID {
		return nil, apperrors.ErrEventNotFound
	}
	return s.submissions, nil
}

func newApplicationTestRouter(svc *fakeApplicationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewApplicationController(svc)

	router := gin.New()
	router.POST("/api/v1/events/:id/applications", controller.SubmitApplication)
	router.GET("/api/v1/events/:id/applications", controller.GetApplicationsByEvent)
	return router
}

// multipartBody builds a multipart form with the given fields and an optional
// photo file part named candidate_photo.
func multipartBody(t *testing.T, fields map[string]string, photoFilename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if photoFilename != "" {
		part, err := writer.CreateFormFile("candidate_photo", photoFilename)
		if err != nil {
			t.Fatalf("failed to create photo part: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write photo bytes: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestSubmitApplicationWithPhoto(t *testing.T) {
	svc := &fakeApplicationService{eventID: uuid.New()}
	router := newApplicationTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"name":         "Ada Lovelace",
		"email":        "ada@example.com",
		"native_state": "London",
	}, "headshot.jpg")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+svc.eventID.String()+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.lastRequest == nil || svc.lastRequest.Name != "Ada Lovelace" || svc.lastRequest.NativeState != "London" {
		t.Errorf("bound request = %+v, want name and native_state from the form", svc.lastRequest)
	}
	if svc.lastPhoto == nil || svc.lastPhoto.Filename != "headshot.jpg" {
		t.Errorf("photo = %+v, want headshot.jpg", svc.lastPhoto)
	}
}

func TestSubmitApplicationWithoutPhoto(t *testing.T) {
	svc := &fakeApplicationService{eventID: uuid.New()}
	router := newApplicationTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"name": "Grace"}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+svc.eventID.String()+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.lastPhoto != nil {
		t.Errorf("photo = %+v, want nil for a form without a file part", svc.lastPhoto)
	}
}

func TestSubmitApplicationUnknownEvent(t *testing.T) {
	svc := &fakeApplicationService{eventID: uuid.New()}
	router := newApplicationTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"name": "Ada"}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+uuid.NewString()+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSubmitApplicationBucketMissing(t *testing.T) {
	remediation := "photo upload failed: storage bucket \"candidate-photos\" does not exist; create it before accepting submissions"
	svc := &fakeApplicationService{
		eventID:   uuid.New(),
		submitErr: apperrors.NewBucketMissingError(remediation),
	}
	router := newApplicationTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"name": "Ada"}, "headshot.jpg")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+svc.eventID.String()+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusServiceUnavailable, rec.Body.String())
	}

	var envelope struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Error == nil || envelope.Error.Code != dto.ErrorCodeBucketMissing {
		t.Fatalf("error = %+v, want code %s", envelope.Error, dto.ErrorCodeBucketMissing)
	}
	// The operator-facing remediation message must survive to the response.
	if !strings.Contains(envelope.Error.Message, "candidate-photos") {
		t.Errorf("message %q does not name the bucket to create", envelope.Error.Message)
	}
}

func TestGetApplicationsByEvent(t *testing.T) {
	svc := &fakeApplicationService{eventID: uuid.New()}
	router := newApplicationTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"name": "Ada"}, "")
	submit := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+svc.eventID.String()+"/applications", body)
	submit.Header.Set("Content-Type", contentType)
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+svc.eventID.String()+"/applications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Data []dto.ApplicationResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Ada" {
		t.Errorf("applications = %+v, want one record named Ada", envelope.Data)
	}
}

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/apperrors"
)

// handleErr runs HandleAPIError against a fresh context and returns the
// recorded response.
func handleErr(t *testing.T, err error) (int, *dto.ErrorDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	HandleAPIError(c, err)

	var envelope struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if envelope.Error == nil {
		t.Fatal("response carries no error detail")
	}
	return rec.Code, envelope.Error
}

func TestHandleAPIErrorMapsDomainSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{
			name:       "event not found",
			err:        apperrors.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "bad request",
			err:        apperrors.NewBadRequestError("event rejected by the database: invalid date"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "bucket missing",
			err:        apperrors.NewBucketMissingError("photo upload failed: storage bucket \"candidate-photos\" does not exist"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrorCodeBucketMissing,
		},
		{
			name:       "object exists",
			err:        apperrors.ErrObjectExists,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrorCodeResourceAlreadyExists,
		},
		{
			name:       "upload failed",
			err:        apperrors.NewUploadFailedError("photo upload failed: connection reset"),
			wantStatus: http.StatusBadGateway,
			wantCode:   dto.ErrorCodeUploadFailed,
		},
		{
			name:       "unclassified",
			err:        errors.New("something else"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrorCodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := handleErr(t, tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if detail.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", detail.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleAPIErrorKeepsRemediationMessage(t *testing.T) {
	remediation := "photo upload failed: storage bucket \"candidate-photos\" does not exist; create it and apply its access policy before accepting submissions"
	_, detail := handleErr(t, apperrors.NewBucketMissingError(remediation))

	// The operator-facing text must survive the mapping untouched.
	if detail.Message != remediation {
		t.Errorf("message = %q, want the full remediation text", detail.Message)
	}
}

package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/app/services"
	"github.com/derya/castlink/internal/middleware"
)

// ApplicationController handles casting application operations
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// SubmitApplication handles an applicant submitting to a casting call
// @Summary Submit a casting application
// @Description Submits an application to a casting event. All profile fields are optional free text. When a photo is attached it is uploaded to object storage before the record is written; a failed upload aborts the submission.
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param name formData string false "Applicant name"
// @Param age formData string false "Applicant age"
// @Param phone formData string false "Phone number"
// @Param email formData string false "Email address"
// @Param location formData string false "Current location"
// @Param gender formData string false "Gender"
// @Param native_state formData string false "Native state"
// @Param languages formData string false "Spoken languages"
// @Param youtube_link formData string false "YouTube link"
// @Param portfolio_link formData string false "Portfolio link"
// @Param candidate_photo formData file false "Candidate photo (single image file)"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 502 {object} dto.ErrorResponse "Photo upload failed"
// @Failure 503 {object} dto.ErrorResponse "Storage bucket missing"
// @Router /events/{id}/applications [post]
func (c *ApplicationController) SubmitApplication(ctx *gin.Context) {
	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())))
		return
	}

	// The photo is optional; a missing file field is not an error.
	var photo *multipart.FileHeader
	photo, fileErr := ctx.FormFile("candidate_photo")
	if fileErr != nil {
		if !errors.Is(fileErr, http.ErrMissingFile) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid photo upload").WithDetails(fileErr.Error())))
			return
		}
		photo = nil
	}

	application, err := c.applicationService.SubmitApplication(ctx, eventID, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(application))
}

// GetApplicationsByEvent handles listing the applications of an event
// @Summary List applications for an event
// @Description Retrieves all applications submitted to a casting event, newest first.
// @Tags applications
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/applications [get]
func (c *ApplicationController) GetApplicationsByEvent(ctx *gin.Context) {
	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	applications, err := c.applicationService.GetApplicationsByEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applications))
}

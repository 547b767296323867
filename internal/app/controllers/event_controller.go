package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/app/services"
	"github.com/derya/castlink/internal/middleware"
)

// EventController handles casting event operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// CreateEvent handles creating a new casting event
// @Summary Create a casting event
// @Description Creates a new casting event and returns it together with its shareable application link and owner link. Every field is optional.
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Create event request"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or date value"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())))
		return
	}

	event, err := c.eventService.CreateEvent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetAllEvents handles listing all casting events
// @Summary List casting events
// @Description Retrieves all casting events, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	events, err := c.eventService.GetAllEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEventByID handles retrieving a single casting event
// @Summary Get event by ID
// @Description Retrieves a casting event with its derived links, as shown on the owner's event page.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	event, err := c.eventService.GetEventByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// GetCastingCall handles the applicant-facing event view
// @Summary Get casting call page data
// @Description Retrieves the applicant-facing view of a casting event, as rendered on the shared application form page.
// @Tags casting-calls
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} dto.APIResponse{data=dto.CastingCallResponse} "Casting call retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Casting call not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /casting-calls/{id} [get]
func (c *EventController) GetCastingCall(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	call, err := c.eventService.GetCastingCall(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(call))
}

// parseEventID reads the :id route parameter. A malformed UUID names no
// event, so it gets the same 404 as an unknown one.
func parseEventID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")))
		return uuid.Nil, false
	}
	return id, true
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/derya/castlink/internal/app/controllers"
	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	eventController *controllers.EventController,
	applicationController *controllers.ApplicationController,
	feedHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Event routes (owner side)
	events := v1.Group("/events")
	{
		events.POST("", eventController.CreateEvent)
		events.GET("", eventController.GetAllEvents)
		events.GET("/:id", eventController.GetEventByID)

		// Applications belong to their event
		events.GET("/:id/applications", applicationController.GetApplicationsByEvent)
		events.POST("/:id/applications", applicationController.SubmitApplication)

		// Live application feed for the owner's dashboard
		events.GET("/:id/applications/ws", feedHandler.HandleConnection)
	}

	// Casting call routes (applicant side, reached through the share link)
	castingCalls := v1.Group("/casting-calls")
	{
		castingCalls.GET("/:id", eventController.GetCastingCall)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}

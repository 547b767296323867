package dto

import "time"

// CreateEventRequest carries the owner-supplied fields for a new casting
// call. Every field is optional; an empty payload is a valid event.
type CreateEventRequest struct {
	Title       string `json:"title" example:"Feature Film Lead Role"`
	Description string `json:"description" example:"Looking for a lead actor for an indie feature"`
	StartDate   string `json:"startDate" example:"2025-01-01"`
	EndDate     string `json:"endDate" example:"2025-02-01"`
}

// EventResponse is the owner-facing view of an event, including both derived
// links.
type EventResponse struct {
	ID          string    `json:"id" example:"6f1d2c3b-4a5e-46f7-8899-aabbccddeeff"`
	Title       string    `json:"title" example:"Feature Film Lead Role"`
	Description string    `json:"description,omitempty"`
	StartDate   *string   `json:"startDate,omitempty" example:"2025-01-01"`
	EndDate     *string   `json:"endDate,omitempty" example:"2025-02-01"`
	CreatedAt   time.Time `json:"createdAt"`

	// ShareLink routes anonymous applicants to the submission form
	ShareLink string `json:"shareLink" example:"https://castlink.app/casting-call/6f1d2c3b-4a5e-46f7-8899-aabbccddeeff"`
	// OwnerLink routes the creator to the event detail view
	OwnerLink string `json:"ownerLink" example:"https://castlink.app/event/6f1d2c3b-4a5e-46f7-8899-aabbccddeeff"`
}

// CastingCallResponse is the applicant-facing view of an event, as shown on
// the submission form page. It omits the owner link.
type CastingCallResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

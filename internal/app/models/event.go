package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a casting call campaign that applications are submitted
// against. Events are created once and never mutated or deleted.
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   *string   `json:"startDate,omitempty" db:"start_date"`
	EndDate     *string   `json:"endDate,omitempty" db:"end_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

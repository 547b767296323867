package models

import (
	"time"

	"github.com/google/uuid"
)

// Application represents one applicant's submitted profile, scoped to exactly
// one event. Every profile field is optional free text; the record is
// immutable after insert.
type Application struct {
	ID      int64     `json:"id" db:"id"`
	EventID uuid.UUID `json:"eventId" db:"event_id"`

	Name        string `json:"name" db:"name"`
	Age         string `json:"age" db:"age"`
	Phone       string `json:"phone" db:"phone"`
	Email       string `json:"email" db:"email"`
	Location    string `json:"location" db:"location"`
	Gender      string `json:"gender" db:"gender"`
	NativeState string `json:"nativeState" db:"native_state"`
	Languages   string `json:"languages" db:"languages"`

	YouTubeLink   string `json:"youtubeLink" db:"youtube_link"`
	PortfolioLink string `json:"portfolioLink" db:"portfolio_link"`

	// CandidatePhotoURL, when non-nil, points at a photo object that existed
	// before this record was inserted.
	CandidatePhotoURL *string `json:"candidatePhotoUrl" db:"candidate_photo_url"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

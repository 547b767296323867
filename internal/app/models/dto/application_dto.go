package dto

import "time"

// SubmitApplicationRequest carries the applicant-entered profile fields of a
// submission. All fields are optional free text; nothing is validated or
// rejected by the service itself. The event reference is taken from the
// route, never from the form, and the photo file is bound separately.
type SubmitApplicationRequest struct {
	Name          string `form:"name" json:"name" example:"Ada Lovelace"`
	Age           string `form:"age" json:"age" example:"28"`
	Phone         string `form:"phone" json:"phone" example:"+1 234 567 8900"`
	Email         string `form:"email" json:"email" example:"ada@example.com"`
	Location      string `form:"location" json:"location" example:"London, UK"`
	Gender        string `form:"gender" json:"gender" example:"Female"`
	NativeState   string `form:"native_state" json:"nativeState"`
	Languages     string `form:"languages" json:"languages" example:"English, French"`
	YouTubeLink   string `form:"youtube_link" json:"youtubeLink" example:"https://www.youtube.com/watch?v=..."`
	PortfolioLink string `form:"portfolio_link" json:"portfolioLink" example:"https://ada.example.com"`
}

// ApplicationResponse is one stored application record. The same shape is
// returned by the list endpoint, by the submission confirmation, and inside
// live feed frames.
type ApplicationResponse struct {
	ID      int64  `json:"id" example:"42"`
	EventID string `json:"eventId" example:"6f1d2c3b-4a5e-46f7-8899-aabbccddeeff"`

	Name          string `json:"name,omitempty"`
	Age           string `json:"age,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Location      string `json:"location,omitempty"`
	Gender        string `json:"gender,omitempty"`
	NativeState   string `json:"nativeState,omitempty"`
	Languages     string `json:"languages,omitempty"`
	YouTubeLink   string `json:"youtubeLink,omitempty"`
	PortfolioLink string `json:"portfolioLink,omitempty"`

	CandidatePhotoURL *string `json:"candidatePhotoUrl"`

	CreatedAt time.Time `json:"createdAt"`
}

package models

// PublishingForm is the operator's working copy of the publishing settings.
type PublishingForm struct {
	PublishStartDate string   `json:"publishStartDate"` // YYYY-MM-DDThh:mm
	PublishEndDate   string   `json:"publishEndDate"`
	PublishTitle     string   `json:"publishTitle"`
	SEOTitle         string   `json:"seoTitle"`
	Tags             []string `json:"tags"`
	Category         string   `json:"category"`
	Destinations     []string `json:"destinations"`
	InPoint          string   `json:"inPoint"`
	OutPoint         string   `json:"outPoint"`
	ShowLogo         bool     `json:"showLogo"`
	Ingress          string   `json:"ingress"`
}

// FormPatch carries partial operator edits. Nil fields are left untouched.
type FormPatch struct {
	PublishStartDate *string  `json:"publishStartDate,omitempty"`
	PublishEndDate   *string  `json:"publishEndDate,omitempty"`
	PublishTitle     *string  `json:"publishTitle,omitempty"`
	SEOTitle         *string  `json:"seoTitle,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Category         *string  `json:"category,omitempty"`
	ShowLogo         *bool    `json:"showLogo,omitempty"`
	Ingress          *string  `json:"ingress,omitempty"`
}

// ReceivedMessage is a debug record of an inbound message.
type ReceivedMessage struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	ReceivedAt string `json:"receivedAt"`
	Size       int    `json:"size"`
}

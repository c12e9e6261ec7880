package ports

import "github.com/Vovarama1992/mimirpublish/internal/models"

type EditorState struct {
	Asset    *models.CanonicalAsset `json:"asset"`
	InPoint  string                 `json:"inPoint"`
	OutPoint string                 `json:"outPoint"`
	Form     models.PublishingForm  `json:"form"`
}

// Editor is what the operator API drives.
type Editor interface {
	Snapshot() EditorState
	SetInPoint(input string) (string, error)
	SetOutPoint(input string) (string, error)
	ToggleDestination(dest string) ([]string, error)
	UpdateForm(patch models.FormPatch) models.PublishingForm
	Submit() error
	Messages() []models.ReceivedMessage
}

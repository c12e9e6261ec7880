package ports

import "github.com/Vovarama1992/mimirpublish/internal/models"

// ParentFrame delivers serialized messages to the host frame, addressed to targetOrigin only.
type ParentFrame interface {
	PostMessage(data []byte, targetOrigin string) error
}

// Messenger is the outbound side of the host channel.
type Messenger interface {
	SendLoaded()
	SendSave()
	SendMetadataUpdate(formID string, formData map[string]any)
}

// Inbox is the inbound side of the host channel.
type Inbox interface {
	Listen(h func(models.Message))
}

package models

import "encoding/json"

// inbound message types
const (
	TypeMimirReady = "mimir_ready"
	TypeItemLoaded = "item_loaded"
	TypeItem       = "item"
)

// outbound actions
const (
	ActionPluginLoaded   = "plugin_loaded"
	ActionSaveMetadata   = "save_metadata"
	ActionUpdateMetadata = "update_metadata"
)

// Message is one channel event. Inbound messages carry Type, outbound carry Action.
type Message struct {
	Type    string          `json:"type,omitempty"`
	Action  string          `json:"action,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type UpdateMetadataPayload struct {
	FormID   string         `json:"formId"`
	FormData map[string]any `json:"formData"`
}

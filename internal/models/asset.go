package models

import "encoding/json"

// RawAssetPayload is the item the host sends on load. Untrusted; any field may be
// missing or of the wrong type.
type RawAssetPayload json.RawMessage

// CanonicalAsset is the resolved view of a payload. Kind is video, audio or image.
// Empty InPoint/OutPoint mean the payload did not specify them.
type CanonicalAsset struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Title        string   `json:"title"`
	Framerate    int      `json:"framerate"`
	Poster       string   `json:"poster,omitempty"`
	InPoint      string   `json:"inPoint,omitempty"`
	OutPoint     string   `json:"outPoint,omitempty"`
	Destinations []string `json:"destinations"`
	Description  string   `json:"description,omitempty"`
	FormID       string   `json:"formId,omitempty"`
}

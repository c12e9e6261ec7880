// Package channel implements the origin-gated message exchange with the host frame.
package channel

import (
	"encoding/json"
	"net/url"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/models"
	"github.com/Vovarama1992/mimirpublish/internal/ports"
)

// InboundEvent is one message as it arrives from the transport. Data is either
// already structured (models.Message, map[string]any) or a JSON string/bytes.
type InboundEvent struct {
	Origin string
	Data   any
}

type Handler = func(models.Message)

// Channel is safe for concurrent use. The trusted origin never changes after New.
type Channel struct {
	origin string
	parent ports.ParentFrame
	log    *logger.ZapLogger

	mu      sync.RWMutex
	handler Handler
}

// OriginFromLaunchURL returns the "origin" query parameter of the widget's launch URL.
func OriginFromLaunchURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("origin")
}

// New returns a channel bound to trustedOrigin. An empty origin puts the channel in
// degraded mode: inbound messages are not gated and sends are dropped.
func New(trustedOrigin string, parent ports.ParentFrame, log *logger.ZapLogger) *Channel {
	if trustedOrigin == "" {
		log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "no trusted origin configured; outbound messages disabled",
		})
	}
	return &Channel{
		origin: trustedOrigin,
		parent: parent,
		log:    log,
	}
}

func (c *Channel) Origin() string { return c.origin }

// Listen installs the inbound handler, replacing any previous one.
func (c *Channel) Listen(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

// Receive runs the handler for ev unless it fails the origin check or cannot be decoded.
func (c *Channel) Receive(ev InboundEvent) {
	if c.origin != "" && ev.Origin != c.origin {
		c.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "message from unauthorized origin dropped",
			Fields:  map[string]any{"origin": ev.Origin},
		})
		return
	}

	msg, ok := c.decode(ev.Data)
	if !ok {
		return
	}

	c.mu.RLock()
	h := c.handler
	c.mu.RUnlock()

	if h == nil {
		return
	}
	h(msg)
}

func (c *Channel) decode(data any) (models.Message, bool) {
	var raw []byte

	switch v := data.(type) {
	case models.Message:
		return v, true
	case *models.Message:
		if v == nil {
			return models.Message{}, false
		}
		return *v, true
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		return models.Message{}, false
	default:
		// structured object from an in-process transport
		b, err := json.Marshal(v)
		if err != nil {
			return models.Message{}, false
		}
		raw = b
	}

	var msg models.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "failed to parse message data",
			Error:   err,
		})
		return models.Message{}, false
	}
	return msg, true
}

// Send posts msg to the parent frame at the trusted origin. Failures are logged only.
func (c *Channel) Send(msg models.Message) {
	if c.origin == "" {
		c.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "cannot send message: origin not set",
			Fields:  map[string]any{"action": msg.Action},
		})
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "marshal outbound message",
			Error:   err,
			Fields:  map[string]any{"action": msg.Action},
		})
		return
	}

	if err := c.parent.PostMessage(data, c.origin); err != nil {
		c.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "post message to host",
			Error:   err,
			Fields:  map[string]any{"action": msg.Action},
		})
	}
}

func (c *Channel) SendLoaded() {
	c.Send(models.Message{Action: models.ActionPluginLoaded})
}

func (c *Channel) SendSave() {
	c.Send(models.Message{Action: models.ActionSaveMetadata})
}

func (c *Channel) SendMetadataUpdate(formID string, formData map[string]any) {
	if formData == nil {
		formData = map[string]any{}
	}
	payload, err := json.Marshal(models.UpdateMetadataPayload{FormID: formID, FormData: formData})
	if err != nil {
		c.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "marshal metadata update",
			Error:   err,
			Fields:  map[string]any{"formId": formID},
		})
		return
	}
	c.Send(models.Message{Action: models.ActionUpdateMetadata, Payload: payload})
}

var (
	_ ports.Messenger = (*Channel)(nil)
	_ ports.Inbox     = (*Channel)(nil)
)

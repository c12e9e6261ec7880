package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/destinations"
	"github.com/Vovarama1992/mimirpublish/internal/models"
	"github.com/Vovarama1992/mimirpublish/internal/ports"
	"github.com/Vovarama1992/mimirpublish/internal/timecode"
	"github.com/google/uuid"
)

// host form identifiers
const (
	FormMetadata   = "metadata"
	FormCommon     = "Common"
	FormPublishing = "publishing"
)

const (
	dateLayout    = "2006-01-02T15:04"
	maxMessageLog = 50
	publishWindow = 365 * 24 * time.Hour
)

var (
	ErrInvalidTimecode    = errors.New("invalid timecode")
	ErrUnknownDestination = errors.New("unknown destination")
	ErrNoAsset            = errors.New("no asset loaded")
)

// Editor holds the operator's working state for the asset the host loaded last.
type Editor struct {
	norm  *Normalizer
	table *destinations.Table
	out   ports.Messenger
	log   *logger.ZapLogger
	now   func() time.Time

	mu       sync.Mutex
	asset    *models.CanonicalAsset
	form     models.PublishingForm
	received []models.ReceivedMessage
}

func NewEditor(
	norm *Normalizer,
	table *destinations.Table,
	out ports.Messenger,
	log *logger.ZapLogger,
) *Editor {
	e := &Editor{
		norm:  norm,
		table: table,
		out:   out,
		log:   log,
		now:   time.Now,
	}
	e.form = e.blankForm()
	return e
}

func (e *Editor) blankForm() models.PublishingForm {
	now := e.now().UTC()
	return models.PublishingForm{
		PublishStartDate: now.Format(dateLayout),
		PublishEndDate:   now.Add(publishWindow).Format(dateLayout),
		Tags:             []string{},
		Destinations:     []string{},
		InPoint:          timecode.Zero,
		OutPoint:         timecode.Zero,
		ShowLogo:         true,
	}
}

// Start subscribes to host messages and announces the widget.
func (e *Editor) Start(in ports.Inbox) {
	in.Listen(e.HandleMessage)
	e.out.SendLoaded()
}

// HandleMessage dispatches one inbound host message.
func (e *Editor) HandleMessage(msg models.Message) {
	e.record(msg)

	switch msg.Type {
	case models.TypeMimirReady:
		e.out.SendLoaded()
	case models.TypeItemLoaded, models.TypeItem:
		e.load(models.RawAssetPayload(msg.Payload))
	default:
		e.log.Log(logger.LogEntry{
			Level:   "debug",
			Message: "unhandled host message",
			Fields:  map[string]any{"type": msg.Type, "action": msg.Action},
		})
	}
}

func (e *Editor) load(raw models.RawAssetPayload) {
	asset := e.norm.Normalize(raw)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.asset = &asset
	if asset.InPoint != "" {
		e.form.InPoint = asset.InPoint
	}
	if asset.OutPoint != "" {
		e.form.OutPoint = asset.OutPoint
	}
	e.form.PublishTitle = asset.Title
	// an empty mapping carries no information; keep the operator's selection
	if len(asset.Destinations) > 0 {
		e.form.Destinations = append([]string(nil), asset.Destinations...)
	}

	e.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "asset loaded",
		Fields: map[string]any{
			"id":           asset.ID,
			"title":        asset.Title,
			"destinations": e.form.Destinations,
		},
	})
}

func (e *Editor) record(msg models.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.received = append(e.received, models.ReceivedMessage{
		ID:         uuid.NewString(),
		Type:       msg.Type,
		ReceivedAt: e.now().UTC().Format(time.RFC3339Nano),
		Size:       len(msg.Payload),
	})
	if over := len(e.received) - maxMessageLog; over > 0 {
		e.received = append([]models.ReceivedMessage(nil), e.received[over:]...)
	}
}

func (e *Editor) Snapshot() ports.EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := ports.EditorState{
		InPoint:  e.form.InPoint,
		OutPoint: e.form.OutPoint,
		Form:     copyForm(e.form),
	}
	if e.asset != nil {
		a := *e.asset
		a.Destinations = append([]string(nil), a.Destinations...)
		st.Asset = &a
	}
	return st
}

func (e *Editor) Messages() []models.ReceivedMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.ReceivedMessage(nil), e.received...)
}

func (e *Editor) SetInPoint(input string) (string, error) {
	return e.setPoint(input, "inPoint", func(f *models.PublishingForm, tc string) { f.InPoint = tc })
}

func (e *Editor) SetOutPoint(input string) (string, error) {
	return e.setPoint(input, "outPoint", func(f *models.PublishingForm, tc string) { f.OutPoint = tc })
}

// setPoint accepts partial input, stores it and forwards the frame number to the
// host once an asset is loaded.
func (e *Editor) setPoint(input, field string, apply func(*models.PublishingForm, string)) (string, error) {
	e.mu.Lock()
	framerate := timecode.DefaultFramerate
	loaded := e.asset != nil
	if loaded {
		framerate = e.asset.Framerate
	}

	tc, ok := timecode.Complete(input, framerate)
	if !ok {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: %q at %d fps", ErrInvalidTimecode, input, framerate)
	}
	apply(&e.form, tc)
	e.mu.Unlock()

	if loaded {
		frame := timecode.ToFrame(tc, framerate)
		e.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "sending point update",
			Fields:  map[string]any{field: frame},
		})
		e.out.SendMetadataUpdate(FormMetadata, map[string]any{field: frame})
	}
	return tc, nil
}

// ToggleDestination flips dest in the selection and pushes the new list to the host.
func (e *Editor) ToggleDestination(dest string) ([]string, error) {
	if !e.table.Has(dest) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDestination, dest)
	}

	e.mu.Lock()
	next := make([]string, 0, len(e.form.Destinations)+1)
	found := false
	for _, d := range e.form.Destinations {
		if d == dest {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		next = append(next, dest)
	}
	e.form.Destinations = next
	selected := append([]string(nil), next...)
	e.mu.Unlock()

	e.out.SendMetadataUpdate(FormCommon, map[string]any{
		"publishedLoc": e.table.ToHostCodes(selected),
	})
	return selected, nil
}

func (e *Editor) UpdateForm(p models.FormPatch) models.PublishingForm {
	e.mu.Lock()
	defer e.mu.Unlock()

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&e.form.PublishStartDate, p.PublishStartDate)
	set(&e.form.PublishEndDate, p.PublishEndDate)
	set(&e.form.PublishTitle, p.PublishTitle)
	set(&e.form.SEOTitle, p.SEOTitle)
	set(&e.form.Category, p.Category)
	set(&e.form.Ingress, p.Ingress)
	if p.ShowLogo != nil {
		e.form.ShowLogo = *p.ShowLogo
	}
	if p.Tags != nil {
		e.form.Tags = cleanTags(p.Tags)
	}
	return copyForm(e.form)
}

// Submit pushes the publishing metadata to the host and asks it to save.
func (e *Editor) Submit() error {
	e.mu.Lock()
	if e.asset == nil {
		e.mu.Unlock()
		return ErrNoAsset
	}
	form := copyForm(e.form)
	e.mu.Unlock()

	e.out.SendMetadataUpdate(FormCommon, map[string]any{
		"title":            form.PublishTitle,
		"publishStartDate": form.PublishStartDate,
		"publishEndDate":   form.PublishEndDate,
		"seoTitle":         form.SEOTitle,
		"tags":             form.Tags,
		"category":         form.Category,
		"publishedLoc":     e.table.ToHostCodes(form.Destinations),
		"showLogo":         form.ShowLogo,
		"ingress":          form.Ingress,
	})
	e.out.SendMetadataUpdate(FormPublishing, map[string]any{
		"publishingData": form,
	})
	e.out.SendSave()

	e.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "save requested",
		Fields:  map[string]any{"title": form.PublishTitle},
	})
	return nil
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func copyForm(f models.PublishingForm) models.PublishingForm {
	f.Tags = append([]string{}, f.Tags...)
	f.Destinations = append([]string{}, f.Destinations...)
	return f
}

var _ ports.Editor = (*Editor)(nil)

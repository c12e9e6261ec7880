package domain

import (
	"math"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/destinations"
	"github.com/Vovarama1992/mimirpublish/internal/models"
	"github.com/Vovarama1992/mimirpublish/internal/timecode"
	"github.com/tidwall/gjson"
)

const (
	DefaultTitle = "Untitled"
	DefaultKind  = "video"
)

// extractor pulls one candidate value out of the payload; ok=false means "absent, try the next one".
type extractor[T any] func(doc gjson.Result) (T, bool)

func firstOf[T any](doc gjson.Result, fallback T, chain ...extractor[T]) T {
	for _, ex := range chain {
		if v, ok := ex(doc); ok {
			return v
		}
	}
	return fallback
}

// Normalizer turns host payloads into CanonicalAsset values. It never fails:
// missing or mistyped fields resolve to the next source or a literal default.
type Normalizer struct {
	table *destinations.Table
	log   *logger.ZapLogger
}

func NewNormalizer(table *destinations.Table, log *logger.ZapLogger) *Normalizer {
	return &Normalizer{table: table, log: log}
}

func (n *Normalizer) Normalize(raw models.RawAssetPayload) models.CanonicalAsset {
	var doc gjson.Result
	if gjson.ValidBytes(raw) {
		doc = gjson.ParseBytes(raw)
	}
	if !doc.IsObject() {
		doc = gjson.Result{}
	}

	framerate := firstOf(doc, timecode.DefaultFramerate,
		positiveIntAt("technicalMetadata.formData.technical_video_frame_rate"),
		positiveIntAt("mediaFrameRate"),
	)

	asset := models.CanonicalAsset{
		ID: firstOf(doc, "", scalarAt("id")),
		Kind: firstOf(doc, DefaultKind,
			stringAt("itemType"),
		),
		Title: firstOf(doc, DefaultTitle,
			stringAt("metadata.formData.title"),
			stringAt("title"),
		),
		Framerate: framerate,
		Poster:    firstOf(doc, "", posterThumbnail),
		InPoint: firstOf(doc, "",
			frameTimecodeAt("metadata.inPoint", framerate),
			stringAt("timecode"),
		),
		OutPoint: firstOf(doc, "",
			frameTimecodeAt("metadata.outPoint", framerate),
			durationTimecode(framerate),
		),
		Description: firstOf(doc, "",
			stringAt("metadata.formData.description"),
			stringAt("metadata.description"),
		),
		FormID:       firstOf(doc, "", stringAt("metadata.formId")),
		Destinations: dedup(n.table.ToCanonical(stringsAt(doc, "metadata.formData.publishedLoc"))),
	}

	n.log.Log(logger.LogEntry{
		Level:   "debug",
		Message: "asset normalized",
		Fields: map[string]any{
			"id":           asset.ID,
			"title":        asset.Title,
			"framerate":    asset.Framerate,
			"poster":       asset.Poster != "",
			"inPoint":      asset.InPoint,
			"outPoint":     asset.OutPoint,
			"destinations": asset.Destinations,
		},
	})

	return asset
}

func stringAt(path string) extractor[string] {
	return func(doc gjson.Result) (string, bool) {
		r := doc.Get(path)
		if r.Type != gjson.String || r.Str == "" {
			return "", false
		}
		return r.Str, true
	}
}

// scalarAt accepts strings and numbers; hosts are inconsistent about identifier types.
func scalarAt(path string) extractor[string] {
	return func(doc gjson.Result) (string, bool) {
		r := doc.Get(path)
		switch r.Type {
		case gjson.String:
			return r.Str, r.Str != ""
		case gjson.Number:
			return r.Raw, true
		}
		return "", false
	}
}

// positiveIntAt truncates fractional rates; anything below 1 counts as absent.
func positiveIntAt(path string) extractor[int] {
	return func(doc gjson.Result) (int, bool) {
		r := doc.Get(path)
		if r.Type != gjson.Number {
			return 0, false
		}
		v := int(r.Num)
		if v < 1 {
			return 0, false
		}
		return v, true
	}
}

// frameTimecodeAt reads a frame number (zero included) and renders it at framerate.
func frameTimecodeAt(path string, framerate int) extractor[string] {
	return func(doc gjson.Result) (string, bool) {
		r := doc.Get(path)
		if r.Type != gjson.Number {
			return "", false
		}
		return timecode.FromFrame(int(math.Floor(r.Num)), framerate), true
	}
}

// durationTimecode derives the out point from mediaDuration, read as milliseconds.
func durationTimecode(framerate int) extractor[string] {
	return func(doc gjson.Result) (string, bool) {
		r := doc.Get("mediaDuration")
		if r.Type != gjson.Number || r.Num == 0 {
			return "", false
		}
		frames := math.Floor(r.Num / (1000 / float64(framerate)))
		return timecode.FromFrame(int(frames), framerate), true
	}
}

// posterThumbnail only trusts the thumbnail URL when the host marked a poster attachment.
func posterThumbnail(doc gjson.Result) (string, bool) {
	attachments := doc.Get("attachments")
	if !attachments.IsArray() {
		return "", false
	}
	marked := false
	attachments.ForEach(func(_, a gjson.Result) bool {
		if a.Get("type").String() == "poster" && a.Get("role").String() == "thumbnail" {
			marked = true
			return false
		}
		return true
	})
	if !marked {
		return "", false
	}
	return stringAt("thumbnail")(doc)
}

func stringsAt(doc gjson.Result, path string) []string {
	r := doc.Get(path)
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, v := range r.Array() {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
	}
	return out
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

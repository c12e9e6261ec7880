package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/destinations"
	"github.com/Vovarama1992/mimirpublish/internal/domain"
	"github.com/Vovarama1992/mimirpublish/internal/models"
	"github.com/Vovarama1992/mimirpublish/internal/ports"
	"github.com/Vovarama1992/mimirpublish/internal/timecode"
	"github.com/go-chi/chi/v5"
)

type AssetHandler struct {
	editor ports.Editor
	table  *destinations.Table
	log    *logger.ZapLogger
}

func NewAssetHandler(editor ports.Editor, table *destinations.Table, log *logger.ZapLogger) *AssetHandler {
	return &AssetHandler{
		editor: editor,
		table:  table,
		log:    log,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *AssetHandler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidTimecode):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownDestination):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoAsset):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "operator request failed",
			Error:   err,
		})
	}
	http.Error(w, err.Error(), status)
}

// GET /api/asset
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Snapshot())
}

type pointRequest struct {
	Timecode string `json:"timecode"`
}

// PUT /api/asset/in-point
func (h *AssetHandler) SetInPoint(w http.ResponseWriter, r *http.Request) {
	h.setPoint(w, r, h.editor.SetInPoint)
}

// PUT /api/asset/out-point
func (h *AssetHandler) SetOutPoint(w http.ResponseWriter, r *http.Request) {
	h.setPoint(w, r, h.editor.SetOutPoint)
}

func (h *AssetHandler) setPoint(w http.ResponseWriter, r *http.Request, set func(string) (string, error)) {
	var req pointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	tc, err := set(req.Timecode)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"timecode": tc})
}

// POST /api/asset/destinations/{dest}/toggle
func (h *AssetHandler) ToggleDestination(w http.ResponseWriter, r *http.Request) {
	dest := chi.URLParam(r, "dest")
	if dest == "" {
		http.Error(w, "missing destination", http.StatusBadRequest)
		return
	}

	selected, err := h.editor.ToggleDestination(dest)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": selected})
}

// PATCH /api/form
func (h *AssetHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var patch models.FormPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.editor.UpdateForm(patch))
}

// POST /api/submit
func (h *AssetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Submit(); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GET /api/destinations
func (h *AssetHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.table.Entries())
}

// GET /api/messages
func (h *AssetHandler) Messages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Messages())
}

type convertRequest struct {
	Timecode  string `json:"timecode,omitempty"`
	Frame     *int   `json:"frame,omitempty"`
	Framerate int    `json:"framerate"`
}

type convertResponse struct {
	Timecode  string `json:"timecode"`
	Frame     int    `json:"frame"`
	Framerate int    `json:"framerate"`
	Valid     bool   `json:"valid"`
}

// POST /api/timecode/convert converts a frame or a timecode at the given rate.
func (h *AssetHandler) ConvertTimecode(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Framerate <= 0 {
		req.Framerate = timecode.DefaultFramerate
	}

	resp := convertResponse{Framerate: req.Framerate}
	if req.Frame != nil {
		resp.Frame = *req.Frame
		resp.Timecode = timecode.FromFrame(*req.Frame, req.Framerate)
	} else {
		resp.Timecode = req.Timecode
		resp.Frame = timecode.ToFrame(req.Timecode, req.Framerate)
	}
	resp.Valid = timecode.Valid(resp.Timecode, req.Framerate)

	writeJSON(w, http.StatusOK, resp)
}

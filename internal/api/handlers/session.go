package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vishalsx/tubstudio-sub001/internal/auth"
	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/session"
)

const maxImageBytes = 20 << 20

type SessionHandler struct {
	Sessions *session.Manager
	Log      *zap.Logger
}

func NewSessionHandler(sessions *session.Manager, log *zap.Logger) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the sentinel errors of the session engine onto HTTP
// statuses. Content-policy rejections carry a redirect hint for the frontend.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrContentPolicy):
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error":    err.Error(),
			"redirect": "content-policy",
		})
	case errors.Is(err, domain.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNoImage),
		errors.Is(err, domain.ErrNoLanguages),
		errors.Is(err, domain.ErrFileRequired),
		errors.Is(err, domain.ErrNotIdentified):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (h *SessionHandler) controller(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	id := chi.URLParam(r, "id")
	ctrl, ok := h.Sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return ctrl, true
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	id, ctrl := h.Sessions.Create(domain.CommonDataMode(req.Mode))
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": id,
		"state":      ctrl.Snapshot(),
	})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) SelectLanguage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Language == "" {
		writeError(w, http.StatusBadRequest, "language is required")
		return
	}
	if err := ctrl.SelectLanguage(auth.UserFromContext(r.Context()), req.Language); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) DeselectLanguage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	ctrl.DeselectLanguage(chi.URLParam(r, "lang"))
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) SetActiveTab(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Language == "" {
		writeError(w, http.StatusBadRequest, "language is required")
		return
	}
	ctrl.SetActiveTab(req.Language)
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	switch domain.CommonDataMode(req.Mode) {
	case domain.ModeShared, domain.ModePerTab:
		ctrl.SetMode(domain.CommonDataMode(req.Mode))
	default:
		writeError(w, http.StatusBadRequest, "mode must be shared or per-tab")
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// AttachImage accepts a multipart upload, or a bare content_hash field when
// the image is already known to the backend.
func (h *SessionHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	if hash := r.FormValue("content_hash"); hash != "" {
		ctrl.SetContentHash(hash)
		writeJSON(w, http.StatusOK, ctrl.Snapshot())
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file or content_hash is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read image: "+err.Error())
		return
	}
	ctrl.AttachImage(data, header.Filename)
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) Identify(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	failures, err := ctrl.Identify(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"failures": failures,
		"state":    ctrl.Snapshot(),
	})
}

func (h *SessionHandler) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var patch domain.TranslationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := ctrl.UpdateTranslation(auth.UserFromContext(r.Context()), chi.URLParam(r, "lang"), patch); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) UpdateCommon(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var patch domain.CommonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := ctrl.UpdateCommon(auth.UserFromContext(r.Context()), patch); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) ToggleEdit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.ToggleEdit(auth.UserFromContext(r.Context()), chi.URLParam(r, "lang")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" {
		writeError(w, http.StatusBadRequest, "action is required")
		return
	}
	if err := ctrl.QuickSave(r.Context(), auth.UserFromContext(r.Context()), req.Action); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.Skip(r.Context(), auth.UserFromContext(r.Context())); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) RefreshWorklist(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req struct {
		Language string `json:"language"`
		Full     bool   `json:"full"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !req.Full && req.Language == "" {
		writeError(w, http.StatusBadRequest, "language is required for a partial refresh")
		return
	}
	if err := ctrl.RefreshWorklist(r.Context(), auth.UserFromContext(r.Context()), req.Language, req.Full); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

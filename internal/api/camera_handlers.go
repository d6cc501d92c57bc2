package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/cameras"
)

type CameraHandler struct {
	Service *cameras.Service
	Log     *zap.Logger
}

func NewCameraHandler(svc *cameras.Service, logger *zap.Logger) *CameraHandler {
	return &CameraHandler{Service: svc, Log: orNop(logger)}
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondSuccess(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// respondInternal hides storage details from the client but keeps them in the log.
func respondInternal(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody treats an empty body as an empty object.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// GET /api/cameras
func (h *CameraHandler) List(w http.ResponseWriter, r *http.Request) {
	cams, err := h.Service.List(r.Context())
	if err != nil {
		respondInternal(w, r, h.Log, err)
		return
	}
	respondJSON(w, http.StatusOK, cams)
}

// POST /api/cameras
func (h *CameraHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cameras.CreateInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cam, err := h.Service.Create(r.Context(), req)
	if err != nil {
		respondInternal(w, r, h.Log, err)
		return
	}
	respondJSON(w, http.StatusOK, cam)
}

// PUT /api/cameras/{id}
func (h *CameraHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := cameraID(w, r)
	if !ok {
		return
	}

	var req cameras.UpdateInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.Service.Update(r.Context(), id, req); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondSuccess(w)
}

// DELETE /api/cameras/{id}
func (h *CameraHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := cameraID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondSuccess(w)
}

func (h *CameraHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, cameras.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Camera not found")
		return
	}
	respondInternal(w, r, h.Log, err)
}

func cameraID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid camera ID")
		return 0, false
	}
	return id, true
}

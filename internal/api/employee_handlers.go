package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/employees"
)

type EmployeeHandler struct {
	Service *employees.Service
	Log     *zap.Logger
}

func NewEmployeeHandler(svc *employees.Service, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{Service: svc, Log: orNop(logger)}
}

// GET /api/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	emps, err := h.Service.List(r.Context())
	if err != nil {
		respondInternal(w, r, h.Log, err)
		return
	}
	respondJSON(w, http.StatusOK, emps)
}

// POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employees.CreateInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	emp, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

// PUT /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req employees.UpdateInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondSuccess(w)
}

// DELETE /api/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondSuccess(w)
}

func (h *EmployeeHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, employees.ErrAlreadyExists):
		respondError(w, http.StatusBadRequest, "Employee ID already exists")
	case errors.Is(err, employees.ErrInvalidEmployee):
		respondError(w, http.StatusBadRequest, "Employee ID and name are required")
	case errors.Is(err, employees.ErrNotFound):
		respondError(w, http.StatusNotFound, "Employee not found")
	default:
		respondInternal(w, r, h.Log, err)
	}
}

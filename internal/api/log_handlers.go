package api

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/logs"
)

type LogHandler struct {
	Store *logs.Store
	Log   *zap.Logger
}

func NewLogHandler(store *logs.Store, logger *zap.Logger) *LogHandler {
	return &LogHandler{Store: store, Log: orNop(logger)}
}

// GET /logs?page=&limit=
func (h *LogHandler) Query(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", logs.DefaultPage)
	if err != nil {
		respondError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	limit, err := queryInt(r, "limit", logs.DefaultLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	result, err := h.Store.Query(r.Context(), page, limit)
	if err != nil {
		if errors.Is(err, logs.ErrInvalidArgument) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondInternal(w, r, h.Log, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

package handlers

import (
	"log"
	"net/http"
	"ride-schedule-service/internal/api/dto"
	"ride-schedule-service/internal/ports"
	"strconv"
)

type RunHandler struct {
	Store ports.RunStore
}

// List returns recent runs, newest first. ?limit=N caps the result.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	if h.Store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run history is not configured")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunResponse(run))
	}
	writeJSON(w, r, http.StatusOK, res)
}

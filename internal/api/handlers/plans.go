package handlers

import (
	"net/http"
	"ride-schedule-service/internal/api/dto"
	"ride-schedule-service/internal/services"
	"strings"
)

type PlanHandler struct {
	Runner *services.Runner
}

// Plan solves a stored problem (or reuses its cached plan), replays the
// result through the simulator and records the run.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Problem)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "problem is required")
		return
	}

	res, err := h.Runner.RunOne(r.Context(), name)
	if err != nil {
		writeLoadError(w, r, "plan problem", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponse{
		RunResponse: toRunResponse(res.Run),
		Cached:      res.Cached,
		Assignment:  res.Assignment,
	})
}

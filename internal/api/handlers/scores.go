package handlers

import (
	"log"
	"net/http"
	"ride-schedule-service/internal/api/dto"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/obs"
	"ride-schedule-service/internal/ports"
	"ride-schedule-service/internal/services"
	"strings"
)

// ScoreHandler validates externally produced plans.
type ScoreHandler struct {
	Repo  ports.ProblemRepository
	Store ports.RunStore // optional
}

func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Problem)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "problem is required")
		return
	}
	if req.Assignment == nil {
		writeError(w, r, http.StatusBadRequest, "assignment is required")
		return
	}

	inst, err := h.Repo.LoadProblem(r.Context(), name)
	if err != nil {
		writeLoadError(w, r, "score plan", err)
		return
	}

	// Unknown vehicles and rides come back as violations, not request errors.
	run := services.ScorePlan(r.Context(), inst, domain.Assignment(req.Assignment))

	if h.Store != nil {
		if err := h.Store.SaveRun(r.Context(), run); err != nil {
			log.Printf("save run failed: req_id=%s run_id=%s err=%v", obs.RequestID(r.Context()), run.RunID, err)
		}
	}

	writeJSON(w, r, http.StatusOK, toRunResponse(run))
}

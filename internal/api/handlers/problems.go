package handlers

import (
	"log"
	"net/http"
	"ride-schedule-service/internal/api/dto"
	"ride-schedule-service/internal/ports"
)

// ProblemHandler exposes read-only problem listing.
type ProblemHandler struct {
	Repo ports.ProblemRepository
}

func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	names, err := h.Repo.ListProblems(r.Context())
	if err != nil {
		log.Printf("list problems failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if names == nil {
		names = []string{}
	}
	writeJSON(w, r, http.StatusOK, dto.ListProblemsResponse{Problems: names})
}

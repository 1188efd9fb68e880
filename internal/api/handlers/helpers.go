package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"ride-schedule-service/internal/api/dto"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/obs"
	"ride-schedule-service/internal/ports"
)

// maxBodyBytes bounds request bodies; large plans are a few MB of ids.
const maxBodyBytes = 32 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeBody reads exactly one JSON object with no unknown fields.
// On failure it writes the 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeLoadError maps repository errors onto responses.
func writeLoadError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ports.ErrProblemNotFound) {
		writeError(w, r, http.StatusNotFound, "problem not found")
		return
	}
	log.Printf("%s failed: req_id=%s err=%v", op, obs.RequestID(r.Context()), err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toRunResponse(run domain.RunResult) dto.RunResponse {
	errs := run.Errors
	if errs == nil {
		errs = []string{}
	}
	return dto.RunResponse{
		RunID:         run.RunID,
		Problem:       run.ProblemName,
		Score:         run.Score,
		Valid:         run.Valid(),
		Errors:        errs,
		AssignedRides: run.AssignedRides,
		CreatedAt:     run.CreatedAt,
	}
}

package dto

import "time"

type PlanRequest struct {
	Problem string `json:"problem"`
}

type ScoreRequest struct {
	Problem    string  `json:"problem"`
	Assignment [][]int `json:"assignment"`
}

type RunResponse struct {
	RunID         string    `json:"run_id"`
	Problem       string    `json:"problem"`
	Score         int       `json:"score"`
	Valid         bool      `json:"valid"`
	Errors        []string  `json:"errors"`
	AssignedRides int       `json:"assigned_rides"`
	CreatedAt     time.Time `json:"created_at"`
}

type PlanResponse struct {
	RunResponse
	Cached     bool    `json:"cached"`
	Assignment [][]int `json:"assignment"`
}

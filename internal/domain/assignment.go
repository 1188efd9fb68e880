package domain

import "time"

// Assignment is the per-vehicle ordered plan of ride ids, indexed by vehicle id.
// A ride id appears at most once across the whole assignment.
type Assignment [][]int

// NewAssignment returns an assignment with an empty list for each of n vehicles.
func NewAssignment(n int) Assignment {
	a := make(Assignment, n)
	for i := range a {
		a[i] = []int{}
	}
	return a
}

// RideCount returns the number of ride ids across all vehicles.
func (a Assignment) RideCount() int {
	n := 0
	for _, rides := range a {
		n += len(rides)
	}
	return n
}

// Represents one solve-and-score (or score-only) pass over a problem.
type RunResult struct {
	RunID         string
	ProblemName   string
	Score         int
	Errors        []string
	AssignedRides int
	CreatedAt     time.Time
}

// Valid reports whether the replay recorded no violations.
func (r RunResult) Valid() bool {
	return len(r.Errors) == 0
}

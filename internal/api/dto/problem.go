package dto

type ListProblemsResponse struct {
	Problems []string `json:"problems"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

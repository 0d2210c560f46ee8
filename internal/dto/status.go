package dto

import "time"

// Harvest states reported by the status endpoint.
const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
)

// RunReportResponse describes one harvest run.
type RunReportResponse struct {
	RunID           string     `json:"run_id"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	DurationSeconds float64    `json:"duration_seconds"`
	Expected        int        `json:"expected"`
	Collected       int        `json:"collected"`
	Persisted       int        `json:"persisted"`
	Attempts        int        `json:"attempts"`
	FailedAttempts  int        `json:"failed_attempts"`
	Error           string     `json:"error,omitempty"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	State         string             `json:"state"`
	LastRun       *RunReportResponse `json:"last_run,omitempty"`
	LastSuccessAt *time.Time         `json:"last_success_at,omitempty"`
}

type QuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionsResponse is returned by GET /api/questions.
type QuestionsResponse struct {
	Total     int                `json:"total"`
	Offset    int                `json:"offset"`
	Questions []QuestionResponse `json:"questions"`
}

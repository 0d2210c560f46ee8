package handler

import (
	"strconv"

	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// StatusHandler serves the outcome of the latest harvest run.
type StatusHandler struct {
	status domain.HarvestStatus
}

func NewStatusHandler(status domain.HarvestStatus) *StatusHandler {
	return &StatusHandler{status: status}
}

// GetStatus returns the state of the harvester and the report of the latest run.
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	response := dto.StatusResponse{State: dto.StateIdle}

	if report, ok := h.status.LastReport(); ok {
		response.LastRun = toRunReportResponse(report)
		switch {
		case report.FinishedAt == nil:
			response.State = dto.StateRunning
		case report.Succeeded():
			response.State = dto.StateSucceeded
		default:
			response.State = dto.StateFailed
		}
	}
	if at, ok := h.status.LastSuccessAt(); ok {
		response.LastSuccessAt = &at
	}

	return c.JSON(response)
}

// GetQuestions returns the questions persisted by the latest successful run.
// Optional offset and limit query parameters page through the list.
func (h *StatusHandler) GetQuestions(c *fiber.Ctx) error {
	offset, err := nonNegativeQueryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	questions := h.status.LatestQuestions()
	limit, err := nonNegativeQueryInt(c, "limit", len(questions))
	if err != nil {
		return err
	}

	start := min(offset, len(questions))
	end := min(start+limit, len(questions))

	page := make([]dto.QuestionResponse, 0, end-start)
	for _, q := range questions[start:end] {
		page = append(page, dto.QuestionResponse{Question: q.Question, Answer: q.Answer})
	}

	return c.JSON(dto.QuestionsResponse{
		Total:     len(questions),
		Offset:    start,
		Questions: page,
	})
}

func nonNegativeQueryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, domain.NewInvalidInputError(key+" must be a non-negative integer", err).
			WithContext(key, raw)
	}
	return value, nil
}

func toRunReportResponse(r *domain.RunReport) *dto.RunReportResponse {
	resp := &dto.RunReportResponse{
		RunID:          r.RunID,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
		Expected:       r.Expected,
		Collected:      r.Collected,
		Persisted:      r.Persisted,
		Attempts:       r.Attempts,
		FailedAttempts: r.FailedAttempts,
		Error:          r.Error,
	}
	if r.FinishedAt != nil {
		resp.DurationSeconds = r.FinishedAt.Sub(r.StartedAt).Seconds()
	}
	return resp
}

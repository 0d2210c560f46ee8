package service

import (
	"trivia-harvester/internal/domain"

	"golang.org/x/net/html"
)

// Normalize keeps multiple-choice items, decodes HTML entities in the question and
// correct answer, and preserves order. The result is never nil.
func Normalize(items []domain.RawItem) []domain.NormalizedItem {
	out := make([]domain.NormalizedItem, 0, len(items))
	for _, item := range items {
		if item.Type != domain.QuestionTypeMultiple {
			continue
		}
		out = append(out, domain.NormalizedItem{
			Question: html.UnescapeString(item.Question),
			Answer:   html.UnescapeString(item.CorrectAnswer),
		})
	}
	return out
}

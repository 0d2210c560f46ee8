package opentdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia-harvester/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchPayload = `{
  "response_code": 0,
  "results": [
    {
      "type": "multiple",
      "difficulty": "easy",
      "category": "General Knowledge",
      "question": "What does &quot;HTTP&quot; stand for?",
      "correct_answer": "Hypertext Transfer Protocol",
      "incorrect_answers": ["A", "B", "C"]
    },
    {
      "type": "boolean",
      "difficulty": "medium",
      "category": "Science",
      "question": "The sun is a star.",
      "correct_answer": "True",
      "incorrect_answers": ["False"]
    }
  ]
}`

func serveJSON(t *testing.T, status int, body string, gotAmount *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotAmount != nil {
			*gotAmount = r.URL.Query().Get("amount")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIBatchFetcher_FetchBatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var amount string
		srv := serveJSON(t, http.StatusOK, batchPayload, &amount)
		logger, cfg := testDeps()
		fetcher := NewAPIBatchFetcher(NewHTTPClient(cfg, logger), srv.URL, 50, logger)

		items, err := fetcher.FetchBatch(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "50", amount)
		require.Len(t, items, 2)
		assert.Equal(t, domain.RawItem{
			Type:             domain.QuestionTypeMultiple,
			Difficulty:       "easy",
			Category:         "General Knowledge",
			Question:         "What does &quot;HTTP&quot; stand for?",
			CorrectAnswer:    "Hypertext Transfer Protocol",
			IncorrectAnswers: []string{"A", "B", "C"},
		}, items[0])
		assert.Equal(t, domain.QuestionTypeBoolean, items[1].Type)
	})

	t.Run("non-zero response code discards batch", func(t *testing.T) {
		srv := serveJSON(t, http.StatusOK, `{"response_code": 5, "results": [{"question": "Q"}]}`, nil)
		logger, cfg := testDeps()
		fetcher := NewAPIBatchFetcher(NewHTTPClient(cfg, logger), srv.URL, 50, logger)

		items, err := fetcher.FetchBatch(context.Background())

		assert.Nil(t, items)
		assert.ErrorIs(t, err, domain.ErrAPIStatus)
		assert.Contains(t, err.Error(), "rate limit")
		assert.NotErrorIs(t, err, domain.ErrTransport)
	})

	t.Run("http error", func(t *testing.T) {
		srv := serveJSON(t, http.StatusInternalServerError, `oops`, nil)
		logger, cfg := testDeps()
		fetcher := NewAPIBatchFetcher(NewHTTPClient(cfg, logger), srv.URL, 10, logger)

		_, err := fetcher.FetchBatch(context.Background())
		assert.ErrorIs(t, err, domain.ErrTransport)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := serveJSON(t, http.StatusOK, `{"response_code":`, nil)
		logger, cfg := testDeps()
		fetcher := NewAPIBatchFetcher(NewHTTPClient(cfg, logger), srv.URL, 10, logger)

		_, err := fetcher.FetchBatch(context.Background())
		assert.ErrorIs(t, err, domain.ErrTransport)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := serveJSON(t, http.StatusOK, batchPayload, nil)
		logger, cfg := testDeps()
		fetcher := NewAPIBatchFetcher(NewHTTPClient(cfg, logger), srv.URL, 10, logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fetcher.FetchBatch(ctx)
		assert.ErrorIs(t, err, domain.ErrTransport)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

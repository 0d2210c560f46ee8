package domain

import "time"

// Question types reported by the trivia API.
const (
	QuestionTypeMultiple = "multiple"
	QuestionTypeBoolean  = "boolean"
)

// RawItem is one question as returned by the trivia API. Text fields are HTML-entity encoded.
type RawItem struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// NormalizedItem is the decoded question/answer pair written to the output file.
type NormalizedItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ItemCollection is an insertion-ordered set of RawItem keyed by question text.
type ItemCollection struct {
	items []RawItem
	seen  map[string]struct{}
}

func NewItemCollection() *ItemCollection {
	return &ItemCollection{seen: make(map[string]struct{})}
}

// Add appends item unless an item with the same question text is already present.
// It reports whether the item was added.
func (c *ItemCollection) Add(item RawItem) bool {
	if _, ok := c.seen[item.Question]; ok {
		return false
	}
	c.seen[item.Question] = struct{}{}
	c.items = append(c.items, item)
	return true
}

// AddAll adds every item of batch and returns how many were new.
func (c *ItemCollection) AddAll(batch []RawItem) int {
	added := 0
	for _, item := range batch {
		if c.Add(item) {
			added++
		}
	}
	return added
}

func (c *ItemCollection) Len() int {
	return len(c.items)
}

// Items returns the collected items in insertion order. The slice must not be modified.
func (c *ItemCollection) Items() []RawItem {
	return c.items
}

// Truncate drops every item past the first n.
func (c *ItemCollection) Truncate(n int) {
	if n < 0 || n >= len(c.items) {
		return
	}
	for _, item := range c.items[n:] {
		delete(c.seen, item.Question)
	}
	c.items = c.items[:n:n]
}

// Snapshot is the result of one successful harvest run, handed to publishers.
type Snapshot struct {
	RunID      string
	OutputPath string
	Items      []NormalizedItem
	CreatedAt  time.Time
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	RunID          string     `json:"run_id"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	Expected       int        `json:"expected"`
	Collected      int        `json:"collected"`
	Persisted      int        `json:"persisted"`
	Attempts       int        `json:"attempts"`
	FailedAttempts int        `json:"failed_attempts"`
	Error          string     `json:"error,omitempty"`
}

// Succeeded reports whether the run finished without error.
func (r *RunReport) Succeeded() bool {
	return r.FinishedAt != nil && r.Error == ""
}

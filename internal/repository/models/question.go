package models

import "time"

// TriviaQuestion is a row of the trivia_questions table.
type TriviaQuestion struct {
	ID        string    `db:"ID"`
	RunID     string    `db:"RUN_ID"`
	Position  int       `db:"POSITION"`
	Question  string    `db:"QUESTION"`
	Answer    string    `db:"ANSWER"`
	CreatedAt time.Time `db:"CREATED_AT"`
}

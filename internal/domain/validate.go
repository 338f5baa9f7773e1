package domain

import (
	"encoding/json"
	"fmt"
)

// ValidateQuiz is the single schema check every quiz document passes
// through on its way into the system, whether it arrives from the
// authoring API, the AI generator, or a database row. Invalid documents
// fail here instead of leaking zero values into the scoring path.
func ValidateQuiz(q *Quiz) error {
	if q.ID == "" {
		return fmt.Errorf("quiz: missing id")
	}
	if q.Title == "" {
		return fmt.Errorf("quiz %s: missing title", q.ID)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz %s: no questions", q.ID)
	}
	if q.HasNegativeMarking && (q.NegativeMarkingValue <= 0 || q.NegativeMarkingValue > 100) {
		return fmt.Errorf("quiz %s: negative marking value %d out of range", q.ID, q.NegativeMarkingValue)
	}
	for i := range q.Questions {
		if err := ValidateQuestion(&q.Questions[i]); err != nil {
			return fmt.Errorf("quiz %s: question %d: %w", q.ID, i, err)
		}
	}
	return nil
}

// ValidateQuestion checks one question in isolation.
func ValidateQuestion(q *Question) error {
	if q.ID == "" {
		return fmt.Errorf("missing id")
	}
	if q.Text == "" {
		return fmt.Errorf("question %s: missing text", q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: needs at least 2 options", q.ID)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return fmt.Errorf("question %s: option with empty id", q.ID)
		}
		if seen[opt.ID] {
			return fmt.Errorf("question %s: duplicate option id %s", q.ID, opt.ID)
		}
		seen[opt.ID] = true
	}
	if !seen[q.CorrectOption] {
		return fmt.Errorf("question %s: correct option %q does not reference an option", q.ID, q.CorrectOption)
	}
	if q.Marks <= 0 {
		return fmt.Errorf("question %s: marks must be positive", q.ID)
	}
	if q.TimeLimitSec <= 0 {
		return fmt.Errorf("question %s: time limit must be positive", q.ID)
	}
	return nil
}

// ParseQuiz decodes and validates a quiz document in one step.
func ParseQuiz(raw []byte) (Quiz, error) {
	var q Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	if err := ValidateQuiz(&q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// Question returns the question with the given id, if present.
func (q *Quiz) Question(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// Option returns the option with the given id, if present.
func (q *Question) Option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

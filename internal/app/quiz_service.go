package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quizroom/internal/domain"
)

// QuizStore persists quiz documents for authoring.
type QuizStore interface {
	Save(ctx context.Context, quiz domain.Quiz) error
	Update(ctx context.Context, quiz domain.Quiz) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Quiz, error)
	ListByOwner(ctx context.Context, hostID string) ([]domain.Quiz, error)
}

// QuestionGenerator produces multiple-choice questions for a topic.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, topic, subject, grade string, count int) ([]domain.Question, error)
}

// OptionDraft, QuestionDraft and QuizDraft mirror the authoring form:
// ids are assigned server-side and the correct option arrives as an
// index into the drafted options.
type OptionDraft struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type QuestionDraft struct {
	Text         string        `json:"text"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	Options      []OptionDraft `json:"options"`
	CorrectIndex int           `json:"correctIndex"`
	Marks        int           `json:"marks"`
	TimeLimitSec int           `json:"timeLimit"`
	Explanation  string        `json:"explanation,omitempty"`
}

type QuizDraft struct {
	Title                string          `json:"title"`
	Description          string          `json:"description,omitempty"`
	Subject              string          `json:"subject,omitempty"`
	Grade                string          `json:"grade,omitempty"`
	Topic                string          `json:"topic,omitempty"`
	HasNegativeMarking   bool            `json:"hasNegativeMarking"`
	NegativeMarkingValue int             `json:"negativeMarkingValue,omitempty"`
	Questions            []QuestionDraft `json:"questions"`
}

// QuizService owns quiz authoring: CRUD over stored quiz documents plus
// the AI-assisted generation shortcut.
type QuizService struct {
	store     QuizStore
	generator QuestionGenerator
	now       func() time.Time
	log       *slog.Logger
}

type QuizServiceOption func(*QuizService)

func WithQuizClock(now func() time.Time) QuizServiceOption {
	return func(s *QuizService) { s.now = now }
}

func WithGenerator(g QuestionGenerator) QuizServiceOption {
	return func(s *QuizService) { s.generator = g }
}

func NewQuizService(store QuizStore, opts ...QuizServiceOption) *QuizService {
	s := &QuizService{store: store, now: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create materializes a draft into a stored quiz. The document passes the
// schema boundary before anything is written.
func (s *QuizService) Create(ctx context.Context, hostID string, draft QuizDraft) (domain.Quiz, error) {
	quiz, err := s.fromDraft(hostID, uuid.NewString(), draft)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := s.store.Save(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("save quiz: %w", err)
	}
	s.log.Info("quiz created", "quizId", quiz.ID, "hostId", hostID, "questions", len(quiz.Questions))
	return quiz, nil
}

// Update rewrites a quiz in place. Only the owning host may edit, and
// running sessions are unaffected since they hold their own snapshot.
func (s *QuizService) Update(ctx context.Context, id, hostID string, draft QuizDraft) (domain.Quiz, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	if existing.CreatedBy != hostID {
		return domain.Quiz{}, domain.ErrNotOwner
	}
	quiz, err := s.fromDraft(hostID, id, draft)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.CreatedAt = existing.CreatedAt
	if err := s.store.Update(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("update quiz: %w", err)
	}
	return quiz, nil
}

// Delete removes a quiz owned by the host.
func (s *QuizService) Delete(ctx context.Context, id, hostID string) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != hostID {
		return domain.ErrNotOwner
	}
	return s.store.Delete(ctx, id)
}

// Get fetches one quiz document.
func (s *QuizService) Get(ctx context.Context, id string) (domain.Quiz, error) {
	return s.store.Get(ctx, id)
}

// ListByHost returns every quiz a host has authored.
func (s *QuizService) ListByHost(ctx context.Context, hostID string) ([]domain.Quiz, error) {
	return s.store.ListByOwner(ctx, hostID)
}

// Generate asks the question generator for a topic's worth of questions
// and stores them as a new quiz owned by the host.
func (s *QuizService) Generate(ctx context.Context, hostID, topic, subject, grade string, count int) (domain.Quiz, error) {
	if s.generator == nil {
		return domain.Quiz{}, fmt.Errorf("question generation is not configured")
	}
	if count <= 0 {
		count = 5
	}
	questions, err := s.generator.GenerateQuestions(ctx, topic, subject, grade, count)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("generate questions: %w", err)
	}
	now := s.now()
	quiz := domain.Quiz{
		ID:        uuid.NewString(),
		Title:     topic,
		Subject:   subject,
		Grade:     grade,
		Topic:     topic,
		CreatedBy: hostID,
		CreatedAt: now,
		UpdatedAt: now,
		Questions: questions,
	}
	if err := domain.ValidateQuiz(&quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("generated quiz rejected: %w", err)
	}
	if err := s.store.Save(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("save generated quiz: %w", err)
	}
	s.log.Info("quiz generated", "quizId", quiz.ID, "topic", topic, "questions", len(questions))
	return quiz, nil
}

func (s *QuizService) fromDraft(hostID, id string, draft QuizDraft) (domain.Quiz, error) {
	now := s.now()
	quiz := domain.Quiz{
		ID:                   id,
		Title:                draft.Title,
		Description:          draft.Description,
		Subject:              draft.Subject,
		Grade:                draft.Grade,
		Topic:                draft.Topic,
		CreatedBy:            hostID,
		CreatedAt:            now,
		UpdatedAt:            now,
		HasNegativeMarking:   draft.HasNegativeMarking,
		NegativeMarkingValue: draft.NegativeMarkingValue,
	}
	for i, qd := range draft.Questions {
		q := domain.Question{
			ID:           uuid.NewString(),
			Text:         qd.Text,
			ImageURL:     qd.ImageURL,
			Marks:        qd.Marks,
			TimeLimitSec: qd.TimeLimitSec,
			Explanation:  qd.Explanation,
		}
		for _, od := range qd.Options {
			q.Options = append(q.Options, domain.Option{
				ID:       uuid.NewString(),
				Text:     od.Text,
				ImageURL: od.ImageURL,
			})
		}
		if qd.CorrectIndex < 0 || qd.CorrectIndex >= len(q.Options) {
			return domain.Quiz{}, fmt.Errorf("question %d: correct index %d out of range", i, qd.CorrectIndex)
		}
		q.CorrectOption = q.Options[qd.CorrectIndex].ID
		quiz.Questions = append(quiz.Questions, q)
	}
	if err := domain.ValidateQuiz(&quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

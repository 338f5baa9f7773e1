package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quizroom/internal/domain"
)

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes,alias:q"`

	ID        string    `bun:"id,pk"`
	HostID    string    `bun:"host_id,notnull"`
	Title     string    `bun:"title,notnull"`
	Data      []byte    `bun:"data,type:jsonb,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// QuizStore is the authoring store: quiz documents as JSONB rows with a
// few promoted columns for listing and ownership checks.
type QuizStore struct {
	db *bun.DB
}

func NewQuizStore(db *bun.DB) *QuizStore {
	return &QuizStore{db: db}
}

func (s *QuizStore) Save(ctx context.Context, quiz domain.Quiz) error {
	row, err := toRow(quiz)
	if err != nil {
		return err
	}
	_, err = s.db.NewInsert().Model(row).Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (s *QuizStore) Update(ctx context.Context, quiz domain.Quiz) error {
	row, err := toRow(quiz)
	if err != nil {
		return err
	}
	res, err := s.db.NewUpdate().Model(row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (s *QuizStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*quizRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (s *QuizStore) Get(ctx context.Context, id string) (domain.Quiz, error) {
	row := new(quizRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("select quiz: %w", err)
	}
	return domain.ParseQuiz(row.Data)
}

func (s *QuizStore) ListByOwner(ctx context.Context, hostID string) ([]domain.Quiz, error) {
	var rows []quizRow
	err := s.db.NewSelect().Model(&rows).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, row := range rows {
		quiz, err := domain.ParseQuiz(row.Data)
		if err != nil {
			return nil, fmt.Errorf("quiz %s: %w", row.ID, err)
		}
		out = append(out, quiz)
	}
	return out, nil
}

func toRow(quiz domain.Quiz) (*quizRow, error) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	return &quizRow{
		ID:        quiz.ID,
		HostID:    quiz.CreatedBy,
		Title:     quiz.Title,
		Data:      data,
		CreatedAt: quiz.CreatedAt,
		UpdatedAt: quiz.UpdatedAt,
	}, nil
}

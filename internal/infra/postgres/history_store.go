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

type gameRecordRow struct {
	bun.BaseModel `bun:"table:game_history,alias:gh"`

	ID             string    `bun:"id,pk"`
	GameID         string    `bun:"game_id,notnull"`
	QuizID         string    `bun:"quiz_id,notnull"`
	QuizTitle      string    `bun:"quiz_title,notnull"`
	HostID         string    `bun:"host_id,notnull"`
	TotalQuestions int       `bun:"total_questions,notnull"`
	StartedAt      time.Time `bun:"started_at"`
	EndedAt        time.Time `bun:"ended_at"`
	Players        []byte    `bun:"players,type:jsonb"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

// HistoryStore archives finished games for the host's dashboard.
type HistoryStore struct {
	db *bun.DB
}

func NewHistoryStore(db *bun.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) Save(ctx context.Context, rec domain.GameRecord) error {
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return fmt.Errorf("encode player stats: %w", err)
	}
	row := &gameRecordRow{
		ID:             rec.ID,
		GameID:         rec.GameID,
		QuizID:         rec.QuizID,
		QuizTitle:      rec.QuizTitle,
		HostID:         rec.HostID,
		TotalQuestions: rec.TotalQuestions,
		StartedAt:      rec.StartedAt,
		EndedAt:        rec.EndedAt,
		Players:        players,
		CreatedAt:      rec.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert game record: %w", err)
	}
	return nil
}

func (s *HistoryStore) ListByHost(ctx context.Context, hostID string, limit, offset int) ([]domain.GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []gameRecordRow
	err := s.db.NewSelect().Model(&rows).
		Where("host_id = ?", hostID).
		Order("ended_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	out := make([]domain.GameRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *HistoryStore) Get(ctx context.Context, id string) (domain.GameRecord, error) {
	row := new(gameRecordRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameRecord{}, domain.ErrGameNotFound
	}
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("select game record: %w", err)
	}
	return fromRow(*row)
}

func fromRow(row gameRecordRow) (domain.GameRecord, error) {
	rec := domain.GameRecord{
		ID:             row.ID,
		GameID:         row.GameID,
		QuizID:         row.QuizID,
		QuizTitle:      row.QuizTitle,
		HostID:         row.HostID,
		TotalQuestions: row.TotalQuestions,
		StartedAt:      row.StartedAt,
		EndedAt:        row.EndedAt,
		CreatedAt:      row.CreatedAt,
	}
	if len(row.Players) > 0 {
		if err := json.Unmarshal(row.Players, &rec.Players); err != nil {
			return domain.GameRecord{}, fmt.Errorf("decode player stats for record %s: %w", row.ID, err)
		}
	}
	return rec, nil
}

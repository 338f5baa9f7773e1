package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizroom/internal/domain"
)

// SessionRepository abstracts how live sessions are tracked (in-memory,
// Redis-indexed, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	GetByCode(code string) (*Session, bool)
	Delete(id string)
	List() []*Session
}

// QuizSource loads quiz content for game creation (cache-backed).
type QuizSource interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// HistoryStore persists finished-game records for the host's dashboard.
type HistoryStore interface {
	Save(ctx context.Context, rec domain.GameRecord) error
	ListByHost(ctx context.Context, hostID string, limit, offset int) ([]domain.GameRecord, error)
	Get(ctx context.Context, id string) (domain.GameRecord, error)
}

// ExplanationSource produces freeform explanation text for a question and
// the option a player picked.
type ExplanationSource interface {
	Explain(ctx context.Context, q domain.Question, selectedOption string) (string, error)
}

// Join-code alphabet: uppercase alphanumerics without lookalikes.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GameService owns the session lifecycle: creating games from quizzes,
// admitting players, driving the question cursor, scoring, and archiving
// finished games.
type GameService struct {
	sessions  SessionRepository
	quizzes   QuizSource
	history   HistoryStore
	explainer ExplanationSource
	now       func() time.Time
	rnd       *rand.Rand
	log       *slog.Logger
}

// GameOption configures a GameService.
type GameOption func(*GameService)

// WithClock makes timestamps deterministic in tests.
func WithClock(now func() time.Time) GameOption {
	return func(s *GameService) { s.now = now }
}

// WithExplainer wires the generative explanation source.
func WithExplainer(e ExplanationSource) GameOption {
	return func(s *GameService) { s.explainer = e }
}

// WithCodeSeed fixes the join-code sequence in tests.
func WithCodeSeed(seed int64) GameOption {
	return func(s *GameService) { s.rnd = rand.New(rand.NewSource(seed)) }
}

func NewGameService(sessions SessionRepository, quizzes QuizSource, history HistoryStore, opts ...GameOption) *GameService {
	s := &GameService{
		sessions: sessions,
		quizzes:  quizzes,
		history:  history,
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGame snapshots the quiz into a fresh waiting session with a
// unique join code. When the host plays along, they are registered as a
// player immediately.
func (s *GameService) CreateGame(ctx context.Context, quizID, hostID, hostNickname string, hostPlaysAlong bool) (domain.GameView, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.GameView{}, err
	}
	if err := domain.ValidateQuiz(&quiz); err != nil {
		return domain.GameView{}, fmt.Errorf("quiz %s failed validation: %w", quizID, err)
	}

	code, err := s.newCode()
	if err != nil {
		return domain.GameView{}, err
	}
	session := NewSessionWithClock(uuid.NewString(), code, hostID, quiz, s.now)
	if hostPlaysAlong {
		if hostNickname == "" {
			hostNickname = "Host"
		}
		if _, err := session.join(uuid.NewString(), hostNickname, "", true); err != nil {
			return domain.GameView{}, err
		}
	}
	s.sessions.Put(session)
	s.log.Info("game created", "gameId", session.ID(), "code", code, "quizId", quizID)
	return session.Snapshot(), nil
}

// newCode draws codes until one is unused among live sessions.
func (s *GameService) newCode() (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		b := make([]byte, domain.CodeLength)
		for i := range b {
			b[i] = codeAlphabet[s.rnd.Intn(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := s.sessions.GetByCode(code); !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique game code")
}

// ValidateCode checks a join code without admitting anyone. Codes that
// are not exactly six characters are rejected before any lookup.
func (s *GameService) ValidateCode(code string) domain.CodeValidation {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != domain.CodeLength {
		return domain.CodeValidation{Message: "enter a 6-character game code"}
	}
	session, ok := s.sessions.GetByCode(code)
	if !ok {
		return domain.CodeValidation{Message: "game not found, check the code and try again"}
	}
	switch session.Status() {
	case domain.GameActive:
		return domain.CodeValidation{Message: "this game is already in progress"}
	case domain.GameEnded:
		return domain.CodeValidation{Message: "this game has already finished"}
	}
	return domain.CodeValidation{Valid: true, GameID: session.ID()}
}

// Join admits a player into a waiting game. Nicknames are not required
// to be unique and there is no cap on player count.
func (s *GameService) Join(code, nickname, avatar string) (domain.JoinTicket, error) {
	check := s.ValidateCode(code)
	if !check.Valid {
		return domain.JoinTicket{}, fmt.Errorf("%s: %w", check.Message, domain.ErrGameNotFound)
	}
	session, ok := s.sessions.Get(check.GameID)
	if !ok {
		return domain.JoinTicket{}, domain.ErrGameNotFound
	}
	playerID := uuid.NewString()
	if _, err := session.join(playerID, nickname, avatar, false); err != nil {
		return domain.JoinTicket{}, err
	}
	s.log.Info("player joined", "gameId", session.ID(), "playerId", playerID, "nickname", nickname)
	return domain.JoinTicket{GameID: session.ID(), PlayerID: playerID, Code: session.Code()}, nil
}

// Start begins the game: cursor to 0, clocks stamped, sheets cleared.
func (s *GameService) Start(ctx context.Context, gameID, hostID string) error {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ErrGameNotFound
	}
	return session.start(hostID)
}

// Next advances the cursor; past the last question it ends and archives
// the game.
func (s *GameService) Next(ctx context.Context, gameID, hostID string) error {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ErrGameNotFound
	}
	finished, err := session.next(hostID)
	if err != nil {
		return err
	}
	if finished {
		s.archive(ctx, session)
	}
	return nil
}

// End forces the game into its terminal state and archives it. Ending an
// already-ended game is a no-op.
func (s *GameService) End(ctx context.Context, gameID, hostID string) error {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ErrGameNotFound
	}
	changed, err := session.end(hostID)
	if err != nil {
		return err
	}
	if changed {
		s.archive(ctx, session)
	}
	return nil
}

// SubmitAnswer records one answer and applies the flat scoring rule.
func (s *GameService) SubmitAnswer(ctx context.Context, gameID, playerID, questionID, optionID string) (domain.AnswerResult, error) {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrGameNotFound
	}
	return session.submitAnswer(playerID, questionID, optionID)
}

// SetCorrectAnswer applies the host's live override of the current
// question's correct option.
func (s *GameService) SetCorrectAnswer(ctx context.Context, gameID, hostID, optionID string) error {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ErrGameNotFound
	}
	return session.setCorrectAnswer(hostID, optionID)
}

// RemovePlayer ejects a player at the host's request.
func (s *GameService) RemovePlayer(ctx context.Context, gameID, hostID, playerID string) error {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ErrGameNotFound
	}
	return session.removePlayer(hostID, playerID)
}

// Heartbeat records that a player's connection is alive.
func (s *GameService) Heartbeat(gameID, playerID string) {
	if session, ok := s.sessions.Get(gameID); ok {
		session.heartbeat(playerID)
	}
}

// Authorize reports whether the given id may attach to the game's socket:
// either the host or a joined player.
func (s *GameService) Authorize(gameID, id string) error {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ErrGameNotFound
	}
	if id == session.HostID() {
		return nil
	}
	view := session.Snapshot()
	for _, p := range view.Players {
		if p.ID == id {
			return nil
		}
	}
	return domain.ErrPlayerNotFound
}

// Subscribe attaches to a session's snapshot stream.
func (s *GameService) Subscribe(gameID string) (<-chan domain.GameView, func(), error) {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return nil, nil, domain.ErrGameNotFound
	}
	ch, cancel := session.Subscribe()
	return ch, cancel, nil
}

// Snapshot returns the current view of a session.
func (s *GameService) Snapshot(gameID string) (domain.GameView, error) {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.GameView{}, domain.ErrGameNotFound
	}
	return session.Snapshot(), nil
}

// Explain returns the authored explanation for a question when present,
// otherwise asks the generative source for one.
func (s *GameService) Explain(ctx context.Context, gameID, questionID, selectedOption string) (string, error) {
	session, ok := s.sessions.Get(gameID)
	if !ok {
		return "", domain.ErrGameNotFound
	}
	q, ok := session.question(questionID)
	if !ok {
		return "", domain.ErrQuestionNotFound
	}
	if q.Explanation != "" {
		return q.Explanation, nil
	}
	if s.explainer == nil {
		return "", fmt.Errorf("no explanation available for question %s", questionID)
	}
	return s.explainer.Explain(ctx, q, selectedOption)
}

// History lists a host's finished games.
func (s *GameService) History(ctx context.Context, hostID string, limit, offset int) ([]domain.GameRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListByHost(ctx, hostID, limit, offset)
}

// HistoryRecord fetches one archived game.
func (s *GameService) HistoryRecord(ctx context.Context, id string) (domain.GameRecord, error) {
	if s.history == nil {
		return domain.GameRecord{}, domain.ErrGameNotFound
	}
	return s.history.Get(ctx, id)
}

func (s *GameService) archive(ctx context.Context, session *Session) {
	if s.history == nil {
		return
	}
	rec := session.record(uuid.NewString())
	if err := s.history.Save(ctx, rec); err != nil {
		s.log.Error("archive game", "gameId", session.ID(), "err", err)
		return
	}
	s.log.Info("game archived", "gameId", session.ID(), "players", len(rec.Players))
}

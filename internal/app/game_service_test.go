package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"quizroom/internal/app"
	"quizroom/internal/domain"
	"quizroom/internal/infra/memory"
)

// fakeClock lets tests advance session time deterministically.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func negMarkQuiz() domain.Quiz {
	return domain.Quiz{
		ID:                   "quiz-neg",
		Title:                "Fractions",
		CreatedBy:            "host-1",
		HasNegativeMarking:   true,
		NegativeMarkingValue: 25,
		Questions: []domain.Question{
			{
				ID:   "q1",
				Text: "What is 1/2 + 1/4?",
				Options: []domain.Option{
					{ID: "o1", Text: "2/6"},
					{ID: "o2", Text: "3/4"},
				},
				CorrectOption: "o2",
				Marks:         10,
				TimeLimitSec:  20,
				Explanation:   "Convert to quarters: 2/4 + 1/4 = 3/4.",
			},
			{
				ID:   "q2",
				Text: "What is 1/3 of 9?",
				Options: []domain.Option{
					{ID: "o3", Text: "6"},
					{ID: "o4", Text: "3"},
				},
				CorrectOption: "o4",
				Marks:         4,
				TimeLimitSec:  20,
			},
		},
	}
}

type gameEnv struct {
	service *app.GameService
	clock   *fakeClock
	history *memory.HistoryStore
}

func newGameEnv(t *testing.T) *gameEnv {
	t.Helper()
	clock := newFakeClock()
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-neg": negMarkQuiz(),
	}), 5*time.Minute)
	history := memory.NewHistoryStore()
	service := app.NewGameService(memory.NewSessionStore(), quizzes, history,
		app.WithClock(clock.Now), app.WithCodeSeed(42))
	return &gameEnv{service: service, clock: clock, history: history}
}

func TestCreateGameAndJoin(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, err := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if view.Status != domain.GameWaiting {
		t.Fatalf("expected waiting status, got %s", view.Status)
	}
	if len(view.Code) != domain.CodeLength {
		t.Fatalf("expected %d-char code, got %q", domain.CodeLength, view.Code)
	}
	if view.CurrentQuestion != -1 {
		t.Fatalf("expected cursor at -1 before start, got %d", view.CurrentQuestion)
	}

	ticket, err := env.service.Join(view.Code, "Alice", "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if ticket.GameID != view.GameID || ticket.PlayerID == "" {
		t.Fatalf("bad ticket %+v", ticket)
	}

	// Lowercase input with surrounding whitespace still matches.
	if _, err := env.service.Join("  "+strings.ToLower(view.Code)+" ", "Bob", ""); err != nil {
		t.Fatalf("join with unnormalized code: %v", err)
	}

	snap, err := env.service.Snapshot(view.GameID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(snap.Players))
	}
}

func TestJoinRejectedOnceStarted(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	if _, err := env.service.Join(view.Code, "Alice", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := env.service.Start(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.service.Join(view.Code, "Late", ""); err == nil {
		t.Fatalf("expected join to fail after start")
	}
}

func TestValidateCode(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)

	cases := []struct {
		name    string
		code    string
		valid   bool
		message string
	}{
		{"too short", "AB1", false, "enter a 6-character game code"},
		{"too long", "ABCDEFG", false, "enter a 6-character game code"},
		{"unknown", "ZZZZZZ", false, "game not found, check the code and try again"},
		{"waiting", view.Code, true, ""},
		{"lowercase ok", strings.ToLower(view.Code), true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := env.service.ValidateCode(tc.code)
			if got.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (%+v)", got.Valid, tc.valid, got)
			}
			if got.Message != tc.message {
				t.Fatalf("message = %q, want %q", got.Message, tc.message)
			}
		})
	}

	if err := env.service.Start(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	got := env.service.ValidateCode(view.Code)
	if got.Valid || got.Message != "this game is already in progress" {
		t.Fatalf("expected in-progress rejection, got %+v", got)
	}

	if err := env.service.End(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("end: %v", err)
	}
	got = env.service.ValidateCode(view.Code)
	if got.Valid || got.Message != "this game has already finished" {
		t.Fatalf("expected finished rejection, got %+v", got)
	}
}

func TestNegativeMarkingScoring(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ticket, _ := env.service.Join(view.Code, "Alice", "")
	if err := env.service.Start(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Wrong answer on a 10-mark question with 25% negative marking costs 2.
	res, err := env.service.SubmitAnswer(ctx, view.GameID, ticket.PlayerID, "q1", "o1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Correct || res.Awarded != -2 || res.TotalScore != -2 {
		t.Fatalf("expected -2 for the wrong answer, got %+v", res)
	}
	if res.Streak != 0 {
		t.Fatalf("expected streak reset, got %d", res.Streak)
	}

	if err := env.service.Next(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("next: %v", err)
	}

	// Correct answer on the 4-mark question brings the total to 2.
	res, err = env.service.SubmitAnswer(ctx, view.GameID, ticket.PlayerID, "q2", "o4")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Correct || res.Awarded != 4 || res.TotalScore != 2 {
		t.Fatalf("expected total 2 after the correct answer, got %+v", res)
	}
	if res.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", res.Streak)
	}
}

func TestDuplicateSubmitRejected(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ticket, _ := env.service.Join(view.Code, "Alice", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	first, err := env.service.SubmitAnswer(ctx, view.GameID, ticket.PlayerID, "q1", "o2")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.service.SubmitAnswer(ctx, view.GameID, ticket.PlayerID, "q1", "o1"); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}

	snap, _ := env.service.Snapshot(view.GameID)
	if snap.Players[0].Score != first.TotalScore {
		t.Fatalf("duplicate submit changed the score: %d != %d", snap.Players[0].Score, first.TotalScore)
	}
}

func TestSubmitBoundToCurrentQuestion(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	alice, _ := env.service.Join(view.Code, "Alice", "")
	bob, _ := env.service.Join(view.Code, "Bob", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	// Answering ahead of the cursor is rejected outright.
	if _, err := env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q2", "o4"); !errors.Is(err, domain.ErrQuestionClosed) {
		t.Fatalf("expected ErrQuestionClosed for a future question, got %v", err)
	}
	snap, _ := env.service.Snapshot(view.GameID)
	if snap.AnsweredCount != 0 {
		t.Fatalf("rejected submission marked a player answered: %+v", snap)
	}

	_, _ = env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q1", "o2")
	_, _ = env.service.SubmitAnswer(ctx, view.GameID, bob.PlayerID, "q1", "o2")
	if err := env.service.Next(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("next: %v", err)
	}

	// A stale submission for the finished question is also closed.
	if _, err := env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q1", "o1"); !errors.Is(err, domain.ErrQuestionClosed) {
		t.Fatalf("expected ErrQuestionClosed for a past question, got %v", err)
	}

	// The current question still accepts everyone, and the reveal for its
	// own cycle fires once all players have answered it.
	if _, err := env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q2", "o4"); err != nil {
		t.Fatalf("submit q2 alice: %v", err)
	}
	if _, err := env.service.SubmitAnswer(ctx, view.GameID, bob.PlayerID, "q2", "o3"); err != nil {
		t.Fatalf("submit q2 bob: %v", err)
	}
	snap, _ = env.service.Snapshot(view.GameID)
	if !snap.ShowScores || snap.AnsweredCount != 2 {
		t.Fatalf("expected reveal after everyone answered the open question, got %+v", snap)
	}
}

func TestStartIsIdempotentWhileActive(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ticket, _ := env.service.Join(view.Code, "Alice", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	if _, err := env.service.SubmitAnswer(ctx, view.GameID, ticket.PlayerID, "q1", "o2"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	env.clock.Advance(3 * time.Second)
	if err := env.service.Start(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("second start: %v", err)
	}

	snap, _ := env.service.Snapshot(view.GameID)
	if snap.Status != domain.GameActive {
		t.Fatalf("expected still active, got %s", snap.Status)
	}
	if snap.Players[0].Score != 10 {
		t.Fatalf("second start wiped scores: %d", snap.Players[0].Score)
	}
	if !snap.QuestionStartTime.Equal(env.clock.Now()) {
		t.Fatalf("expected question clock restamped to %v, got %v", env.clock.Now(), snap.QuestionStartTime)
	}
}

func TestNextPastLastQuestionEndsGame(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	_, _ = env.service.Join(view.Code, "Alice", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	if err := env.service.Next(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("next: %v", err)
	}
	endTime := env.clock.Now().Add(5 * time.Second)
	env.clock.Advance(5 * time.Second)
	if err := env.service.Next(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("final next: %v", err)
	}

	snap, _ := env.service.Snapshot(view.GameID)
	if snap.Status != domain.GameEnded {
		t.Fatalf("expected ended, got %s", snap.Status)
	}
	if snap.Question != nil {
		t.Fatalf("expected no live question after end")
	}

	// The ended game was archived exactly once.
	records, err := env.history.ListByHost(ctx, "host-1", 0, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 archived game, got %d", len(records))
	}
	if !records[0].EndedAt.Equal(endTime) {
		t.Fatalf("expected EndedAt %v, got %v", endTime, records[0].EndedAt)
	}

	// Advancing or submitting after the end is rejected.
	if err := env.service.Next(ctx, view.GameID, "host-1"); !errors.Is(err, domain.ErrGameEnded) {
		t.Fatalf("expected ErrGameEnded, got %v", err)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ticket, _ := env.service.Join(view.Code, "Alice", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")
	_, _ = env.service.SubmitAnswer(ctx, view.GameID, ticket.PlayerID, "q1", "o2")

	if err := env.service.End(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := env.service.End(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("second end: %v", err)
	}

	records, _ := env.history.ListByHost(ctx, "host-1", 0, 0)
	if len(records) != 1 {
		t.Fatalf("expected exactly one archive row, got %d", len(records))
	}
	rec := records[0]
	if rec.QuizTitle != "Fractions" || rec.TotalQuestions != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(rec.Players) != 1 || rec.Players[0].CorrectCount != 1 || rec.Players[0].BestStreak != 1 {
		t.Fatalf("unexpected player stats %+v", rec.Players)
	}
}

func TestHostOnlyControls(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ticket, _ := env.service.Join(view.Code, "Alice", "")

	if err := env.service.Start(ctx, view.GameID, ticket.PlayerID); !errors.Is(err, domain.ErrNotHost) {
		t.Fatalf("expected ErrNotHost from start, got %v", err)
	}
	_ = env.service.Start(ctx, view.GameID, "host-1")
	if err := env.service.Next(ctx, view.GameID, ticket.PlayerID); !errors.Is(err, domain.ErrNotHost) {
		t.Fatalf("expected ErrNotHost from next, got %v", err)
	}
	if err := env.service.End(ctx, view.GameID, ticket.PlayerID); !errors.Is(err, domain.ErrNotHost) {
		t.Fatalf("expected ErrNotHost from end, got %v", err)
	}
	if err := env.service.RemovePlayer(ctx, view.GameID, ticket.PlayerID, ticket.PlayerID); !errors.Is(err, domain.ErrNotHost) {
		t.Fatalf("expected ErrNotHost from remove, got %v", err)
	}
}

func TestAllAnsweredRevealsScores(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	alice, _ := env.service.Join(view.Code, "Alice", "")
	bob, _ := env.service.Join(view.Code, "Bob", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	_, _ = env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q1", "o2")
	snap, _ := env.service.Snapshot(view.GameID)
	if snap.ShowScores {
		t.Fatalf("scores revealed before everyone answered")
	}
	if snap.CorrectOption != "" {
		t.Fatalf("correct option leaked before the reveal")
	}
	if snap.AnsweredCount != 1 {
		t.Fatalf("expected answeredCount 1, got %d", snap.AnsweredCount)
	}

	_, _ = env.service.SubmitAnswer(ctx, view.GameID, bob.PlayerID, "q1", "o1")
	snap, _ = env.service.Snapshot(view.GameID)
	if !snap.ShowScores {
		t.Fatalf("expected reveal once all players answered")
	}
	if snap.CorrectOption != "o2" {
		t.Fatalf("expected correct option exposed on reveal, got %q", snap.CorrectOption)
	}
	// Leaderboard order: Alice 10 over Bob -2.
	if snap.Players[0].Nickname != "Alice" || snap.Players[1].Nickname != "Bob" {
		t.Fatalf("unexpected leaderboard order %+v", snap.Players)
	}
}

func TestSetCorrectAnswerRescores(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, err := env.service.CreateGame(ctx, "quiz-neg", "host-1", "Teach", true)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if len(view.Players) != 1 {
		t.Fatalf("expected the host registered as a player, got %d", len(view.Players))
	}
	hostPlayerID := view.Players[0].ID
	alice, _ := env.service.Join(view.Code, "Alice", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	// Host answers o1 five seconds in (wrong under the authored key, -2).
	env.clock.Advance(5 * time.Second)
	hostRes, err := env.service.SubmitAnswer(ctx, view.GameID, hostPlayerID, "q1", "o1")
	if err != nil {
		t.Fatalf("host submit: %v", err)
	}
	if hostRes.Awarded != -2 {
		t.Fatalf("expected host at -2 before the override, got %+v", hostRes)
	}
	snap, _ := env.service.Snapshot(view.GameID)
	if !snap.HostSubmitted {
		t.Fatalf("expected hostSubmitted flag after the host's own answer")
	}

	aliceRes, _ := env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q1", "o2")
	if aliceRes.Awarded != 10 {
		t.Fatalf("expected Alice at +10 before the override, got %+v", aliceRes)
	}

	// The host declares o1 correct. The host's answer is rescored with the
	// time bonus (10 marks, 15 of 20 seconds left: 10 + 7 = 17); Alice's
	// flips to wrong under the flat rule (-2).
	if err := env.service.SetCorrectAnswer(ctx, view.GameID, "host-1", "o1"); err != nil {
		t.Fatalf("set correct answer: %v", err)
	}

	snap, _ = env.service.Snapshot(view.GameID)
	if !snap.ShowScores || snap.CorrectOption != "o1" {
		t.Fatalf("expected reveal with overridden option, got %+v", snap)
	}
	scores := map[string]int{}
	for _, p := range snap.Players {
		scores[p.ID] = p.Score
	}
	if scores[hostPlayerID] != 17 {
		t.Fatalf("expected host score 17, got %d", scores[hostPlayerID])
	}
	if scores[alice.PlayerID] != -2 {
		t.Fatalf("expected Alice score -2, got %d", scores[alice.PlayerID])
	}

	if err := env.service.SetCorrectAnswer(ctx, view.GameID, alice.PlayerID, "o2"); !errors.Is(err, domain.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ticket, _ := env.service.Join(view.Code, "Alice", "")

	if err := env.service.Authorize(view.GameID, "host-1"); err != nil {
		t.Fatalf("host should attach: %v", err)
	}
	if err := env.service.Authorize(view.GameID, ticket.PlayerID); err != nil {
		t.Fatalf("player should attach: %v", err)
	}
	if err := env.service.Authorize(view.GameID, "stranger"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if err := env.service.Authorize("missing", "host-1"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	ch, cancel, err := env.service.Subscribe(view.GameID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	initial := <-ch
	if initial.Status != domain.GameWaiting || len(initial.Players) != 0 {
		t.Fatalf("unexpected initial snapshot %+v", initial)
	}

	if _, err := env.service.Join(view.Code, "Alice", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	update := <-ch
	if len(update.Players) != 1 || update.Players[0].Nickname != "Alice" {
		t.Fatalf("expected join broadcast, got %+v", update.Players)
	}

	if err := env.service.Start(ctx, view.GameID, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	update = <-ch
	if update.Status != domain.GameActive || update.Question == nil || update.Question.ID != "q1" {
		t.Fatalf("expected start broadcast with the first question, got %+v", update)
	}
}

type staticExplainer struct{ text string }

func (e staticExplainer) Explain(context.Context, domain.Question, string) (string, error) {
	return e.text, nil
}

func TestExplainPrefersAuthoredText(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-neg": negMarkQuiz(),
	}), 5*time.Minute)
	service := app.NewGameService(memory.NewSessionStore(), quizzes, memory.NewHistoryStore(),
		app.WithClock(clock.Now), app.WithCodeSeed(7),
		app.WithExplainer(staticExplainer{text: "generated"}))

	view, _ := service.CreateGame(ctx, "quiz-neg", "host-1", "", false)

	// q1 has an authored explanation, q2 does not.
	text, err := service.Explain(ctx, view.GameID, "q1", "o1")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if text != "Convert to quarters: 2/4 + 1/4 = 3/4." {
		t.Fatalf("expected the authored explanation, got %q", text)
	}

	text, err = service.Explain(ctx, view.GameID, "q2", "o3")
	if err != nil {
		t.Fatalf("explain fallback: %v", err)
	}
	if text != "generated" {
		t.Fatalf("expected the generated explanation, got %q", text)
	}
}

func TestRemovePlayer(t *testing.T) {
	ctx := context.Background()
	env := newGameEnv(t)

	view, _ := env.service.CreateGame(ctx, "quiz-neg", "host-1", "", false)
	alice, _ := env.service.Join(view.Code, "Alice", "")
	bob, _ := env.service.Join(view.Code, "Bob", "")
	_ = env.service.Start(ctx, view.GameID, "host-1")

	_, _ = env.service.SubmitAnswer(ctx, view.GameID, alice.PlayerID, "q1", "o2")
	if err := env.service.RemovePlayer(ctx, view.GameID, "host-1", bob.PlayerID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	snap, _ := env.service.Snapshot(view.GameID)
	if len(snap.Players) != 1 {
		t.Fatalf("expected 1 player left, got %d", len(snap.Players))
	}
	// With the holdout gone, everyone remaining has answered.
	if !snap.ShowScores {
		t.Fatalf("expected reveal after removing the unanswered player")
	}
}

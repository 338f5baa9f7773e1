package domain

import "time"

// Game session statuses. Transitions only ever move forward:
// waiting -> active -> ended, waiting -> ended, active -> ended.
const (
	GameWaiting = "waiting"
	GameActive  = "active"
	GameEnded   = "ended"
)

// Per-question player statuses.
const (
	PlayerWaiting  = "waiting"
	PlayerAnswered = "answered"
)

// CodeLength is the fixed length of a join code.
const CodeLength = 6

// Option represents a possible answer for a question.
type Option struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Options       []Option `json:"options"`
	CorrectOption string   `json:"correctOption"`
	Marks         int      `json:"marks"`
	TimeLimitSec  int      `json:"timeLimit"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Quiz is an ordered collection of questions plus marking rules.
// A running game holds its own snapshot, so edits to a stored quiz
// never affect sessions already created from it.
type Quiz struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Subject              string     `json:"subject,omitempty"`
	Grade                string     `json:"grade,omitempty"`
	Topic                string     `json:"topic,omitempty"`
	CreatedBy            string     `json:"createdBy"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	Questions            []Question `json:"questions"`
	HasNegativeMarking   bool       `json:"hasNegativeMarking"`
	NegativeMarkingValue int        `json:"negativeMarkingValue,omitempty"` // percent of marks deducted on a wrong answer
}

// PlayerAnswer is the record of one submission. At most one exists per
// (player, question) pair; duplicates are rejected at the write boundary.
type PlayerAnswer struct {
	QuestionID     string  `json:"questionId"`
	SelectedOption string  `json:"selectedOption"`
	Correct        bool    `json:"correct"`
	TimeToAnswer   float64 `json:"timeToAnswer"` // seconds since the question opened
	Awarded        int     `json:"awarded"`      // score delta applied, kept so a host override can replace it
}

// Player is a participant in one game session. Score is signed: negative
// marking can push it below zero.
type Player struct {
	ID       string         `json:"id"`
	Nickname string         `json:"nickname"`
	Avatar   string         `json:"avatar,omitempty"`
	Score    int            `json:"score"`
	Streak   int            `json:"streak"`
	Status   string         `json:"status"`
	Answers  []PlayerAnswer `json:"answers,omitempty"`
	LastSeen time.Time      `json:"-"`
	Strikes  int            `json:"-"`
}

// AnswerResult summarizes the outcome of one submission for the
// submitting player.
type AnswerResult struct {
	QuestionID   string  `json:"questionId"`
	Selected     string  `json:"selected"`
	Correct      bool    `json:"correct"`
	Awarded      int     `json:"awarded"`
	TotalScore   int     `json:"totalScore"`
	Streak       int     `json:"streak"`
	TimeToAnswer float64 `json:"timeToAnswer"`
}

// CodeValidation is the outcome of checking a join code. Message carries
// the player-facing reason when Valid is false.
type CodeValidation struct {
	Valid   bool   `json:"valid"`
	GameID  string `json:"gameId,omitempty"`
	Message string `json:"message,omitempty"`
}

// JoinTicket is the handle a player keeps after joining a game.
type JoinTicket struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Code     string `json:"code"`
}

// PlayerView is the leaderboard-facing slice of a player.
type PlayerView struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Score    int    `json:"score"`
	Streak   int    `json:"streak"`
	Status   string `json:"status"`
}

// QuestionView is a question as shown to players: the correct option is
// withheld until the reveal.
type QuestionView struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Options      []Option `json:"options"`
	Marks        int      `json:"marks"`
	TimeLimitSec int      `json:"timeLimit"`
}

// GameView is the snapshot pushed to every subscriber after a mutation.
// It is the single live source of session state; clients never poll.
type GameView struct {
	GameID            string        `json:"gameId"`
	Code              string        `json:"code"`
	QuizID            string        `json:"quizId"`
	QuizTitle         string        `json:"quizTitle"`
	HostID            string        `json:"hostId"`
	Status            string        `json:"status"`
	CurrentQuestion   int           `json:"currentQuestionIndex"`
	TotalQuestions    int           `json:"totalQuestions"`
	Question          *QuestionView `json:"question,omitempty"`
	CorrectOption     string        `json:"correctOption,omitempty"` // set only once scores are revealed
	QuestionStartTime time.Time     `json:"questionStartTime,omitempty"`
	ShowScores        bool          `json:"showScores"`
	HostSubmitted     bool          `json:"hostSubmitted"`
	AnsweredCount     int           `json:"answeredCount"`
	Players           []PlayerView  `json:"players"` // leaderboard order
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// GameRecord is the archived outcome of a finished session, kept for the
// host's dashboard.
type GameRecord struct {
	ID             string              `json:"id"`
	GameID         string              `json:"gameId"`
	QuizID         string              `json:"quizId"`
	QuizTitle      string              `json:"quizTitle"`
	HostID         string              `json:"hostId"`
	TotalQuestions int                 `json:"totalQuestions"`
	StartedAt      time.Time           `json:"startedAt"`
	EndedAt        time.Time           `json:"endedAt"`
	Players        []PlayerRecordStats `json:"players"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// PlayerRecordStats is one player's final line in a game record.
type PlayerRecordStats struct {
	PlayerID     string `json:"playerId"`
	Nickname     string `json:"nickname"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correctCount"`
	WrongCount   int    `json:"wrongCount"`
	BestStreak   int    `json:"bestStreak"`
}

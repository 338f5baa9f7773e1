package domain

import "errors"

var (
	// ErrGameNotFound is returned when no session exists for an id or code.
	ErrGameNotFound = errors.New("game not found")
	// ErrPlayerNotFound is returned when a player acts before joining.
	ErrPlayerNotFound = errors.New("player not found in game")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrNotHost is returned when a host-only action comes from anyone else.
	ErrNotHost = errors.New("only the host can perform this action")
	// ErrGameNotActive is returned for question-cycle actions outside the active state.
	ErrGameNotActive = errors.New("game is not active")
	// ErrGameEnded is returned for mutations against a finished game.
	ErrGameEnded = errors.New("game has already ended")
	// ErrGameInProgress is returned when joining a game that already started.
	ErrGameInProgress = errors.New("game is already in progress")
	// ErrAlreadyAnswered rejects a duplicate submission for the same question.
	ErrAlreadyAnswered = errors.New("answer already recorded for this question")
	// ErrQuestionClosed rejects a submission for any question other than the
	// one currently open.
	ErrQuestionClosed = errors.New("question is not open for answers")
	// ErrNotOwner is returned when a host touches a quiz they did not create.
	ErrNotOwner = errors.New("quiz belongs to another host")
)

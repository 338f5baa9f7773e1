package app

import (
	"sort"
	"sync"
	"time"

	"quizroom/internal/domain"
)

// Session is the live, in-process state of one game: the quiz snapshot,
// the question cursor, every player's score sheet, and the subscriber
// set that receives a fresh snapshot after each mutation. All writes to
// cursor and status come through host-checked methods; players only ever
// touch their own record. The mutex makes the read-modify-write cycles
// that raced in loosely-coordinated stores atomic here.
type Session struct {
	mu sync.RWMutex

	id           string
	code         string
	hostID       string
	hostPlayerID string
	quiz         domain.Quiz

	status        string
	current       int // -1 until the game starts
	questionStart time.Time
	showScores    bool
	hostSubmitted bool

	players map[string]*domain.Player

	createdAt time.Time
	startedAt time.Time
	endedAt   time.Time

	now         func() time.Time
	subscribers map[chan domain.GameView]struct{}
}

// NewSession builds a waiting session holding its own copy of the quiz.
func NewSession(id, code, hostID string, quiz domain.Quiz) *Session {
	return NewSessionWithClock(id, code, hostID, quiz, time.Now)
}

// NewSessionWithClock is used by tests that need deterministic time.
func NewSessionWithClock(id, code, hostID string, quiz domain.Quiz, now func() time.Time) *Session {
	return &Session{
		id:          id,
		code:        code,
		hostID:      hostID,
		quiz:        quiz,
		status:      domain.GameWaiting,
		current:     -1,
		players:     make(map[string]*domain.Player),
		createdAt:   now(),
		now:         now,
		subscribers: make(map[chan domain.GameView]struct{}),
	}
}

func (s *Session) ID() string   { return s.id }
func (s *Session) Code() string { return s.code }
func (s *Session) HostID() string { return s.hostID }

// Status returns the current lifecycle state.
func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// IsEmpty reports whether no players have joined.
func (s *Session) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players) == 0
}

func (s *Session) join(playerID, nickname, avatar string, isHost bool) (domain.PlayerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case domain.GameActive:
		return domain.PlayerView{}, domain.ErrGameInProgress
	case domain.GameEnded:
		return domain.PlayerView{}, domain.ErrGameEnded
	}

	p := &domain.Player{
		ID:       playerID,
		Nickname: nickname,
		Avatar:   avatar,
		Status:   domain.PlayerWaiting,
		LastSeen: s.now(),
	}
	s.players[playerID] = p
	if isHost {
		s.hostPlayerID = playerID
	}
	s.broadcastLocked()
	return playerView(p), nil
}

// start moves waiting -> active, points the cursor at the first question
// and wipes every player's sheet. Calling it again while active only
// restamps the question clock; the observable status does not change.
func (s *Session) start(hostID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hostID != s.hostID {
		return domain.ErrNotHost
	}
	switch s.status {
	case domain.GameEnded:
		return domain.ErrGameEnded
	case domain.GameActive:
		s.questionStart = s.now()
		s.broadcastLocked()
		return nil
	}

	s.status = domain.GameActive
	s.current = 0
	s.startedAt = s.now()
	s.questionStart = s.startedAt
	s.showScores = false
	s.hostSubmitted = false
	for _, p := range s.players {
		p.Answers = nil
		p.Score = 0
		p.Streak = 0
		p.Status = domain.PlayerWaiting
	}
	s.broadcastLocked()
	return nil
}

// next advances the cursor or, past the last question, ends the game.
// Ending via next does not restamp the question clock.
func (s *Session) next(hostID string) (finished bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hostID != s.hostID {
		return false, domain.ErrNotHost
	}
	switch s.status {
	case domain.GameEnded:
		return false, domain.ErrGameEnded
	case domain.GameWaiting:
		return false, domain.ErrGameNotActive
	}

	if s.current+1 >= len(s.quiz.Questions) {
		s.endLocked()
		return true, nil
	}

	s.current++
	s.questionStart = s.now()
	s.showScores = false
	s.hostSubmitted = false
	for _, p := range s.players {
		p.Status = domain.PlayerWaiting
	}
	s.broadcastLocked()
	return false, nil
}

// end forces the terminal state from anywhere. Repeated calls are no-ops
// so the finished game is archived exactly once.
func (s *Session) end(hostID string) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hostID != s.hostID {
		return false, domain.ErrNotHost
	}
	if s.status == domain.GameEnded {
		return false, nil
	}
	s.endLocked()
	return true, nil
}

func (s *Session) endLocked() {
	s.status = domain.GameEnded
	s.endedAt = s.now()
	s.showScores = true
	s.broadcastLocked()
}

func (s *Session) submitAnswer(playerID, questionID, optionID string) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case domain.GameEnded:
		return domain.AnswerResult{}, domain.ErrGameEnded
	case domain.GameWaiting:
		return domain.AnswerResult{}, domain.ErrGameNotActive
	}

	p, ok := s.players[playerID]
	if !ok {
		return domain.AnswerResult{}, domain.ErrPlayerNotFound
	}
	if s.current < 0 || s.current >= len(s.quiz.Questions) {
		return domain.AnswerResult{}, domain.ErrQuestionNotFound
	}
	// Only the question the cursor points at accepts answers. Anything
	// else would be timed against the wrong clock and mark the player
	// answered for a cycle they never played.
	q := &s.quiz.Questions[s.current]
	if q.ID != questionID {
		return domain.AnswerResult{}, domain.ErrQuestionClosed
	}
	if _, ok := q.Option(optionID); !ok {
		return domain.AnswerResult{}, domain.ErrOptionNotFound
	}
	for _, prev := range p.Answers {
		if prev.QuestionID == questionID {
			return domain.AnswerResult{}, domain.ErrAlreadyAnswered
		}
	}

	// Elapsed time is measured against the session's own question clock,
	// never against anything a client reported.
	elapsed := s.now().Sub(s.questionStart).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	correct := optionID == q.CorrectOption
	delta := answerDelta(&s.quiz, q, correct)

	p.Answers = append(p.Answers, domain.PlayerAnswer{
		QuestionID:     questionID,
		SelectedOption: optionID,
		Correct:        correct,
		TimeToAnswer:   elapsed,
		Awarded:        delta,
	})
	p.Score += delta
	if correct {
		p.Streak++
	} else {
		p.Streak = 0
	}
	p.Status = domain.PlayerAnswered
	p.LastSeen = s.now()

	if playerID == s.hostPlayerID {
		s.hostSubmitted = true
	}
	if s.allAnsweredLocked() {
		s.showScores = true
	}

	s.broadcastLocked()
	return domain.AnswerResult{
		QuestionID:   questionID,
		Selected:     optionID,
		Correct:      correct,
		Awarded:      delta,
		TotalScore:   p.Score,
		Streak:       p.Streak,
		TimeToAnswer: elapsed,
	}, nil
}

// setCorrectAnswer lets the host pick or override the correct option for
// the current question mid-game. The host's own answer is rescored with
// the time-bonus rule, everyone else's with the flat rule, each replacing
// whatever was applied before.
func (s *Session) setCorrectAnswer(hostID, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hostID != s.hostID {
		return domain.ErrNotHost
	}
	if s.status != domain.GameActive {
		return domain.ErrGameNotActive
	}
	if s.current < 0 || s.current >= len(s.quiz.Questions) {
		return domain.ErrQuestionNotFound
	}
	q := &s.quiz.Questions[s.current]
	if _, ok := q.Option(optionID); !ok {
		return domain.ErrOptionNotFound
	}

	q.CorrectOption = optionID
	for id, p := range s.players {
		for i := range p.Answers {
			ans := &p.Answers[i]
			if ans.QuestionID != q.ID {
				continue
			}
			ans.Correct = ans.SelectedOption == optionID
			var delta int
			if id == s.hostPlayerID && ans.Correct {
				delta = hostOverrideDelta(q, ans.TimeToAnswer)
			} else {
				delta = answerDelta(&s.quiz, q, ans.Correct)
			}
			p.Score += delta - ans.Awarded
			ans.Awarded = delta
		}
	}

	s.showScores = true
	s.broadcastLocked()
	return nil
}

func (s *Session) removePlayer(hostID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hostID != s.hostID {
		return domain.ErrNotHost
	}
	if s.status == domain.GameEnded {
		return domain.ErrGameEnded
	}
	if _, ok := s.players[playerID]; !ok {
		return domain.ErrPlayerNotFound
	}
	delete(s.players, playerID)
	if s.status == domain.GameActive && s.allAnsweredLocked() {
		s.showScores = true
	}
	s.broadcastLocked()
	return nil
}

func (s *Session) heartbeat(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[playerID]; ok {
		p.LastSeen = s.now()
		p.Strikes = 0
	}
}

// sweepAbsent is called by the presence monitor. Players silent for
// longer than threshold collect a strike; at maxStrikes they are removed
// from an active game. The host's own player record is exempt since the
// host device drives the session. Returns the removed players.
func (s *Session) sweepAbsent(threshold time.Duration, maxStrikes int) []domain.PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.GameActive {
		return nil
	}
	now := s.now()
	var removed []domain.PlayerView
	for id, p := range s.players {
		if id == s.hostPlayerID {
			continue
		}
		if now.Sub(p.LastSeen) <= threshold {
			continue
		}
		p.Strikes++
		p.LastSeen = now
		if p.Strikes >= maxStrikes {
			removed = append(removed, playerView(p))
			delete(s.players, id)
		}
	}
	if len(removed) > 0 {
		if s.allAnsweredLocked() {
			s.showScores = true
		}
		s.broadcastLocked()
	}
	return removed
}

// retired reports whether the session ended longer than retention ago
// and can be dropped from the store. Within the grace period the join
// code still resolves, so late validators get the "already finished"
// answer instead of a miss.
func (s *Session) retired(retention time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status == domain.GameEnded && s.now().Sub(s.endedAt) > retention
}

// Subscribe returns a channel fed with snapshots, starting with the
// current one. The caller must invoke cancel to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.GameView, func()) {
	ch := make(chan domain.GameView, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Snapshot returns the current view without subscribing.
func (s *Session) Snapshot() domain.GameView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) broadcastLocked() {
	view := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			// Drop the stale update so a slow client never blocks the game.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

func (s *Session) allAnsweredLocked() bool {
	if len(s.players) == 0 {
		return false
	}
	for _, p := range s.players {
		if p.Status != domain.PlayerAnswered {
			return false
		}
	}
	return true
}

func (s *Session) snapshotLocked() domain.GameView {
	view := domain.GameView{
		GameID:          s.id,
		Code:            s.code,
		QuizID:          s.quiz.ID,
		QuizTitle:       s.quiz.Title,
		HostID:          s.hostID,
		Status:          s.status,
		CurrentQuestion: s.current,
		TotalQuestions:  len(s.quiz.Questions),
		ShowScores:      s.showScores,
		HostSubmitted:   s.hostSubmitted,
		UpdatedAt:       s.now(),
	}

	if s.status == domain.GameActive && s.current >= 0 && s.current < len(s.quiz.Questions) {
		q := s.quiz.Questions[s.current]
		view.Question = &domain.QuestionView{
			ID:           q.ID,
			Text:         q.Text,
			ImageURL:     q.ImageURL,
			Options:      q.Options,
			Marks:        q.Marks,
			TimeLimitSec: q.TimeLimitSec,
		}
		view.QuestionStartTime = s.questionStart
		if s.showScores {
			view.CorrectOption = q.CorrectOption
		}
	}

	for _, p := range s.players {
		view.Players = append(view.Players, playerView(p))
		if p.Status == domain.PlayerAnswered {
			view.AnsweredCount++
		}
	}
	sort.Slice(view.Players, func(i, j int) bool {
		if view.Players[i].Score != view.Players[j].Score {
			return view.Players[i].Score > view.Players[j].Score
		}
		if view.Players[i].Streak != view.Players[j].Streak {
			return view.Players[i].Streak > view.Players[j].Streak
		}
		return view.Players[i].Nickname < view.Players[j].Nickname
	})
	return view
}

// question looks up a question in this session's quiz snapshot.
func (s *Session) question(id string) (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quiz.Question(id)
	if !ok {
		return domain.Question{}, false
	}
	return *q, true
}

// record builds the archive row for a finished session.
func (s *Session) record(recordID string) domain.GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := domain.GameRecord{
		ID:             recordID,
		GameID:         s.id,
		QuizID:         s.quiz.ID,
		QuizTitle:      s.quiz.Title,
		HostID:         s.hostID,
		TotalQuestions: len(s.quiz.Questions),
		StartedAt:      s.startedAt,
		EndedAt:        s.endedAt,
		CreatedAt:      s.now(),
	}
	for _, p := range s.players {
		stats := domain.PlayerRecordStats{
			PlayerID: p.ID,
			Nickname: p.Nickname,
			Score:    p.Score,
		}
		streak := 0
		for _, ans := range p.Answers {
			if ans.Correct {
				stats.CorrectCount++
				streak++
				if streak > stats.BestStreak {
					stats.BestStreak = streak
				}
			} else {
				stats.WrongCount++
				streak = 0
			}
		}
		rec.Players = append(rec.Players, stats)
	}
	sort.Slice(rec.Players, func(i, j int) bool {
		if rec.Players[i].Score != rec.Players[j].Score {
			return rec.Players[i].Score > rec.Players[j].Score
		}
		return rec.Players[i].Nickname < rec.Players[j].Nickname
	})
	return rec
}

func playerView(p *domain.Player) domain.PlayerView {
	return domain.PlayerView{
		ID:       p.ID,
		Nickname: p.Nickname,
		Avatar:   p.Avatar,
		Score:    p.Score,
		Streak:   p.Streak,
		Status:   p.Status,
	}
}

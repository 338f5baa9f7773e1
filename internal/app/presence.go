package app

import (
	"context"
	"log/slog"
	"time"
)

// PresenceMonitor is the trusted side of the anti-cheat signal: players
// heartbeat over their socket, and a player who goes silent during an
// active game collects strikes until they are removed. The client never
// self-reports a violation; absence is measured here. The same sweep
// retires ended sessions once their retention grace period runs out, so
// finished games and their join codes do not pile up in the store.
type PresenceMonitor struct {
	sessions   SessionRepository
	threshold  time.Duration
	maxStrikes int
	interval   time.Duration
	retention  time.Duration
	log        *slog.Logger
}

type PresenceOption func(*PresenceMonitor)

// WithRetention sets how long an ended session stays resolvable by id
// and code before the sweep drops it.
func WithRetention(d time.Duration) PresenceOption {
	return func(m *PresenceMonitor) {
		if d > 0 {
			m.retention = d
		}
	}
}

func NewPresenceMonitor(sessions SessionRepository, threshold, interval time.Duration, maxStrikes int, opts ...PresenceOption) *PresenceMonitor {
	if threshold <= 0 {
		threshold = 15 * time.Second
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if maxStrikes <= 0 {
		maxStrikes = 3
	}
	m := &PresenceMonitor{
		sessions:   sessions,
		threshold:  threshold,
		maxStrikes: maxStrikes,
		interval:   interval,
		retention:  5 * time.Minute,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run sweeps all live sessions until the context is cancelled.
func (m *PresenceMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep checks every session once; exposed separately so tests can drive
// it without the ticker.
func (m *PresenceMonitor) Sweep() {
	for _, session := range m.sessions.List() {
		if session.retired(m.retention) {
			m.sessions.Delete(session.ID())
			m.log.Info("ended game retired", "gameId", session.ID(), "code", session.Code())
			continue
		}
		removed := session.sweepAbsent(m.threshold, m.maxStrikes)
		for _, p := range removed {
			m.log.Info("player removed for absence", "gameId", session.ID(), "playerId", p.ID, "nickname", p.Nickname)
		}
	}
}

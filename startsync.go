package main

import (
	"strconv"
	"time"
)

// Start begins a round. Host-only. Allowed from the lobby phases and from
// Concluded (a rematch keeps the running score tally); a start while a
// handshake or round is underway is ignored.
func (r *Room) Start(requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	if requesterID != r.creator {
		return ErrNotAuthorized
	}
	switch r.phase {
	case PhaseStarting, PhaseActive:
		return nil
	}
	stopTimer(r.lobbyTimer)
	r.round++
	r.seed = NewRoundSeed()
	r.epoch = time.Time{}
	r.reveal = -1
	r.ready = make(map[string]bool)
	r.alive = make(map[string]bool)
	for _, p := range r.players {
		r.alive[p.ID] = true
	}
	r.phase = PhaseStarting
	GetRoomLogger(r.code).StartedRound(r.round)
	r.broadcastLocked(GameStartMessage{
		Type:    "gameStart",
		Players: r.snapshotLocked(),
		Config:  r.config,
		Seed:    strconv.FormatUint(r.seed, 10),
		Round:   r.round,
	})
	round := r.round
	r.readyTimer = r.scheduleLocked(readyTimeout, func() { r.readyTimedOut(round) })
	return nil
}

// MarkReady records a client's ready signal during the handshake window.
// The last missing signal triggers the epoch broadcast.
func (r *Room) MarkReady(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseStarting || r.findLocked(id) == nil {
		return
	}
	r.ready[id] = true
	for _, p := range r.players {
		if !r.ready[p.ID] {
			return
		}
	}
	r.issueEpochLocked(false)
}

// A stalled client must not block the others indefinitely: when the ready
// window expires the epoch is issued anyway and non-responders proceed
// without full setup.
func (r *Room) readyTimedOut(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round != round || r.phase != PhaseStarting {
		return
	}
	r.issueEpochLocked(true)
}

// issueEpochLocked stamps the shared time origin. Every client anchors its
// countdown and simulation clock to epoch + countdown rather than to local
// message receipt, so arrival jitter does not desync frame zero.
func (r *Room) issueEpochLocked(forced bool) {
	stopTimer(r.readyTimer)
	r.ready = make(map[string]bool)
	r.epoch = r.clock.Now()
	r.phase = PhaseActive
	GetRoomLogger(r.code).EpochIssued(r.round, forced)
	r.broadcastLocked(AllReadyMessage{
		Type:            "allReady",
		Epoch:           r.epoch.UnixMilli(),
		CountdownMillis: countdownDuration.Milliseconds(),
		Round:           r.round,
	})
	if r.config.Mode == ModeElapsed {
		round := r.round
		limit := countdownDuration + time.Duration(r.config.TimeLimit)*time.Second
		r.roundTimer = r.scheduleLocked(limit, func() { r.roundExpired(round) })
	}
}

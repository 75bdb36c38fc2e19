package main

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Phase int

const (
	PhaseForming Phase = iota
	PhaseReadyToStart
	PhaseStarting
	PhaseActive
	PhaseConcluded
)

func (p Phase) String() string {
	switch p {
	case PhaseForming:
		return "forming"
	case PhaseReadyToStart:
		return "readyToStart"
	case PhaseStarting:
		return "starting"
	case PhaseActive:
		return "active"
	case PhaseConcluded:
		return "concluded"
	}
	return "unknown"
}

const (
	readyTimeout      = 10 * time.Second
	countdownDuration = 3 * time.Second
	lobbyReturnDelay  = 2 * time.Second
	sendBuffer        = 64
)

// Room is the unit of broadcast partitioning. Every mutation and the
// broadcasts it produces happen under the same lock, so members observe a
// single total order of events per room.
type Room struct {
	code   string
	config RoomConfig
	clock  clockwork.Clock

	mu      sync.Mutex
	players []*Player // join order, never re-sorted: index is slot identity
	creator string
	phase   Phase
	ready   map[string]bool
	alive   map[string]bool
	round   int
	seed    uint64
	epoch   time.Time
	reveal  int
	closed  bool
	done    chan struct{}

	readyTimer clockwork.Timer
	roundTimer clockwork.Timer
	lobbyTimer clockwork.Timer
}

func NewRoom(code string, creator *Player, config RoomConfig, clock clockwork.Clock) *Room {
	return &Room{
		code:    code,
		config:  config,
		clock:   clock,
		players: []*Player{creator},
		creator: creator.ID,
		phase:   PhaseForming,
		ready:   make(map[string]bool),
		alive:   make(map[string]bool),
		reveal:  -1,
		done:    make(chan struct{}),
	}
}

func (r *Room) Code() string {
	return r.code
}

func (r *Room) Config() RoomConfig {
	return r.config
}

func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) Players() []PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() []PlayerInfo {
	snapshot := make([]PlayerInfo, len(r.players))
	for i, p := range r.players {
		snapshot[i] = p.info()
	}
	return snapshot
}

func (r *Room) findLocked(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) sendTo(p *Player, msg any) {
	encoded, _ := json.Marshal(msg)
	select {
	case p.out <- encoded:
	default:
		// receiver is not draining, dropping beats stalling the room
	}
}

func (r *Room) broadcastLocked(msg any) {
	for _, p := range r.players {
		r.sendTo(p, msg)
	}
}

func (r *Room) broadcastExceptLocked(senderID string, msg any) {
	for _, p := range r.players {
		if p.ID != senderID {
			r.sendTo(p, msg)
		}
	}
}

func (r *Room) unicastLocked(id string, msg any) bool {
	p := r.findLocked(id)
	if p == nil {
		return false
	}
	r.sendTo(p, msg)
	return true
}

// Join appends the player in slot order and announces the new roster to the
// whole room, joiner included, so every client can recompute host and slot
// identity from the same message.
func (r *Room) Join(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	if len(r.players) >= r.config.Capacity {
		return ErrRoomFull
	}
	r.players = append(r.players, p)
	if r.phase == PhaseForming && len(r.players) == r.config.Capacity {
		r.phase = PhaseReadyToStart
	}
	r.broadcastLocked(PlayerJoinedMessage{Type: "playerJoined", Code: r.code, Creator: r.creator, Players: r.snapshotLocked()})
	return nil
}

// Leave removes the player from the room and every derived set. The last
// player leaving closes the room; the caller must then drop it from the
// registry. Departure is normal lifecycle, remaining players get a
// membership broadcast rather than an error.
func (r *Room) Leave(id string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, p := range r.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.players = slices.Delete(r.players, idx, idx+1)
	delete(r.ready, id)
	wasAlive := r.alive[id]
	delete(r.alive, id)

	if len(r.players) == 0 {
		r.closeLocked()
		return true
	}
	if r.creator == id {
		// host privilege transfers to the earliest joiner left
		r.creator = r.players[0].ID
	}
	if r.phase == PhaseReadyToStart && len(r.players) < r.config.Capacity {
		r.phase = PhaseForming
	}
	r.broadcastLocked(PlayerLeftMessage{Type: "playerLeft", Code: r.code, Creator: r.creator, Players: r.snapshotLocked()})

	switch r.phase {
	case PhaseStarting:
		// a partial epoch must never be honored for a changed roster
		r.cancelStartLocked()
	case PhaseActive:
		if wasAlive && r.config.Mode == ModeSurvival {
			r.resolveSurvivorsLocked()
		}
	}
	return false
}

func (r *Room) cancelStartLocked() {
	stopTimer(r.readyTimer)
	r.ready = make(map[string]bool)
	r.alive = make(map[string]bool)
	if len(r.players) == r.config.Capacity {
		r.phase = PhaseReadyToStart
	} else {
		r.phase = PhaseForming
	}
	r.broadcastLocked(StartCancelledMessage{Type: "startCancelled"})
}

func (r *Room) closeLocked() {
	r.closed = true
	stopTimer(r.readyTimer)
	stopTimer(r.roundTimer)
	stopTimer(r.lobbyTimer)
	close(r.done)
}

func stopTimer(t clockwork.Timer) {
	if t != nil {
		t.Stop()
	}
}

// scheduleLocked arms a one-shot timer against the room's clock. A fired
// callback re-enters through a locked method that checks the round counter
// it captured, so a stale fire is a no-op.
func (r *Room) scheduleLocked(d time.Duration, fn func()) clockwork.Timer {
	timer := r.clock.NewTimer(d)
	go func() {
		select {
		case <-timer.Chan():
			fn()
		case <-r.done:
		}
	}()
	return timer
}

// SetScore stores the client-reported score and opaque state verbatim and
// broadcasts the full roster snapshot. Ignored once the outcome is decided.
func (r *Room) SetScore(id string, score int, state json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseConcluded {
		return
	}
	p := r.findLocked(id)
	if p == nil {
		return
	}
	p.Score = score
	if len(state) > 0 {
		p.State = state
	}
	r.broadcastLocked(ScoreUpdateMessage{Type: "scoreUpdate", Players: r.snapshotLocked()})
}

// Reveal relays the host's reveal index to everyone else. The index only
// moves forward; a re-delivered or out-of-date index is dropped, a skipped
// one is covered by the next (clients apply up through the received index).
func (r *Room) Reveal(requesterID string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	if requesterID != r.creator {
		return ErrNotAuthorized
	}
	if r.phase != PhaseActive || index <= r.reveal {
		return nil
	}
	r.reveal = index
	r.broadcastExceptLocked(requesterID, RevealObstacleBroadcast{Type: "revealObstacle", Index: index})
	return nil
}

// Relay forwards an opaque negotiation payload, targeted when to is set,
// room-wide minus the sender otherwise. Contents are never inspected.
func (r *Room) Relay(fromID string, to string, payload json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := SignalBroadcast{Type: "signal", From: fromID, Payload: payload}
	if to != "" {
		r.unicastLocked(to, msg)
		return
	}
	r.broadcastExceptLocked(fromID, msg)
}

type RoomInfo struct {
	Code           string       `json:"code"`
	Phase          string       `json:"phase"`
	Round          int          `json:"round"`
	Reveal         int          `json:"reveal"`
	ExpectedReveal int          `json:"expectedReveal"`
	Config         RoomConfig   `json:"config"`
	Players        []PlayerInfo `json:"players"`
}

func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := RoomInfo{
		Code:           r.code,
		Phase:          r.phase.String(),
		Round:          r.round,
		Reveal:         r.reveal,
		ExpectedReveal: -1,
		Config:         r.config,
		Players:        r.snapshotLocked(),
	}
	if r.phase == PhaseActive {
		info.ExpectedReveal = RevealIndexAt(r.epoch, r.clock.Now())
	}
	return info
}

package main

// Kill takes the player out of the alive set and tells the room. In
// survival mode a death can decide the round on the spot.
func (r *Room) Kill(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseActive || !r.alive[id] {
		return
	}
	delete(r.alive, id)
	r.broadcastLocked(PlayerDiedBroadcast{Type: "playerDied", ID: id, Alive: r.aliveIDsLocked()})
	if r.config.Mode == ModeSurvival {
		r.resolveSurvivorsLocked()
	}
}

func (r *Room) aliveIDsLocked() []string {
	ids := make([]string, 0, len(r.alive))
	for _, p := range r.players {
		if r.alive[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// resolveSurvivorsLocked fires at most once per round: concluding flips the
// phase before anything is broadcast, so a second death arriving on its
// heels finds the round already decided.
func (r *Room) resolveSurvivorsLocked() {
	switch len(r.alive) {
	case 1:
		var winner *Player
		for _, p := range r.players {
			if r.alive[p.ID] {
				winner = p
				break
			}
		}
		winner.Score++ // survival bonus
		r.concludeLocked(winner)
	case 0:
		// near-simultaneous final deaths: a no-winner tie
		r.concludeLocked(nil)
	}
}

func (r *Room) roundExpired(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round != round || r.phase != PhaseActive {
		return
	}
	r.resolveElapsedLocked()
}

// ForceResolve handles a client-sent gameOver: the sender's local countdown
// is trusted to have expired and the round resolves by score.
func (r *Room) ForceResolve(requesterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseActive || r.findLocked(requesterID) == nil {
		return
	}
	r.resolveElapsedLocked()
}

func (r *Room) resolveElapsedLocked() {
	var winner *Player
	for _, p := range r.players {
		// strict greater-than keeps the earliest joiner on a tie
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	r.concludeLocked(winner)
}

// concludeLocked emits the single terminal broadcast of a round and, after
// a short delay for death animations, sends everyone back to the lobby.
func (r *Room) concludeLocked(winner *Player) {
	r.phase = PhaseConcluded
	stopTimer(r.readyTimer)
	stopTimer(r.roundTimer)
	winnerID := ""
	var info *PlayerInfo
	if winner != nil {
		w := winner.info()
		info = &w
		winnerID = winner.ID
	}
	GetRoomLogger(r.code).RoundConcluded(winnerID)
	r.broadcastLocked(GameOverBroadcast{Type: "gameOver", Winner: info, Players: r.snapshotLocked()})
	round := r.round
	r.lobbyTimer = r.scheduleLocked(lobbyReturnDelay, func() { r.lobbyReturn(round) })
}

func (r *Room) lobbyReturn(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round != round || r.phase != PhaseConcluded {
		return
	}
	r.alive = make(map[string]bool)
	if len(r.players) == r.config.Capacity {
		r.phase = PhaseReadyToStart
	} else {
		r.phase = PhaseForming
	}
	r.broadcastLocked(ReturnToLobbyMessage{Type: "returnToLobby", Players: r.snapshotLocked()})
}

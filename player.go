package main

import "encoding/json"

// Player is one connection's presence in a room. Score and State are
// client-asserted: the server stores whatever the client last reported and
// rebroadcasts it verbatim.
type Player struct {
	ID    string
	Name  string
	Score int
	State json.RawMessage

	out chan []byte
}

type PlayerInfo struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Score int             `json:"score"`
	State json.RawMessage `json:"state,omitempty"`
}

func (p *Player) info() PlayerInfo {
	return PlayerInfo{ID: p.ID, Name: p.Name, Score: p.Score, State: p.State}
}

package main

import (
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
)

// Registry owns the canonical code → room mapping. It is plain process
// memory: rooms are session-lifetime objects, an empty registry after a
// restart is correct.
type Registry struct {
	rooms map[string]*Room
	lock  sync.RWMutex
	clock clockwork.Clock
}

func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{rooms: make(map[string]*Room), clock: clock}
}

// Create generates a code that is unique among live rooms, re-rolling on
// collision, and registers a room holding only the creator.
func (g *Registry) Create(creator *Player, config RoomConfig) (string, *Room) {
	config = config.withDefaults()
	g.lock.Lock()
	defer g.lock.Unlock()
	var code string
	for {
		code = GenerateRandomCode()
		if _, exists := g.rooms[code]; !exists {
			break
		}
	}
	room := NewRoom(code, creator, config, g.clock)
	g.rooms[code] = room
	return code, room
}

func (g *Registry) Get(code string) (*Room, bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()
	room, exists := g.rooms[code]
	return room, exists
}

func (g *Registry) Remove(code string) {
	g.lock.Lock()
	defer g.lock.Unlock()
	delete(g.rooms, code)
}

func (g *Registry) Len() int {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return len(g.rooms)
}

// Snapshot enumerates live rooms for the diagnostics endpoint.
func (g *Registry) Snapshot() []RoomInfo {
	g.lock.RLock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		rooms = append(rooms, room)
	}
	g.lock.RUnlock()
	infos := make([]RoomInfo, len(rooms))
	for i, room := range rooms {
		infos[i] = room.Info()
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

package main

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomWithPlayers(clock clockwork.Clock, config RoomConfig, clients ...*Client) *Room {
	config = config.withDefaults()
	room := NewRoom("TEST42", clients[0].player(), config, clock)
	for _, c := range clients[1:] {
		room.Join(c.player())
	}
	return room
}

func countType(types []string, want string) int {
	n := 0
	for _, typ := range types {
		if typ == want {
			n++
		}
	}
	return n
}

func TestEpochIssuedOnceWhenAllReady(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := newTestClient("A")
	b := newTestClient("B")
	room := newRoomWithPlayers(clock, RoomConfig{Capacity: 2}, a, b)

	require.NoError(t, room.Start(a.ID))
	room.MarkReady(a.ID)
	room.MarkReady(b.ID)
	require.Equal(t, PhaseActive, room.Phase())

	// the abandoned ready timeout must stay silent
	clock.Advance(readyTimeout)
	assert.Equal(t, 1, countType(pendingTypes(a), "allReady"))
	assert.Equal(t, 1, countType(pendingTypes(b), "allReady"))
}

func TestEpochForcedAtTimeout(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := newTestClient("A")
	b := newTestClient("B")
	room := newRoomWithPlayers(clock, RoomConfig{Capacity: 2}, a, b)

	require.NoError(t, room.Start(a.ID))
	room.MarkReady(a.ID)
	require.Equal(t, PhaseStarting, room.Phase())

	clock.Advance(readyTimeout)
	require.Equal(t, PhaseActive, waitForPhase(t, room, PhaseActive))
	expectMessage(t, a, "gameStart")
	assert.Equal(t, 1, countType(pendingTypes(a), "allReady"))
	assert.Equal(t, 1, countType(pendingTypes(b), "allReady"))
}

func waitForPhase(t *testing.T, room *Room, want Phase) Phase {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if phase := room.Phase(); phase == want {
			return phase
		}
		time.Sleep(time.Millisecond)
	}
	return room.Phase()
}

func TestRepeatedReadyFromOnePlayerDoesNotIssueEpoch(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := newTestClient("A")
	b := newTestClient("B")
	room := newRoomWithPlayers(clock, RoomConfig{Capacity: 2}, a, b)

	require.NoError(t, room.Start(a.ID))
	room.MarkReady(a.ID)
	room.MarkReady(a.ID)
	room.MarkReady(a.ID)
	assert.Equal(t, PhaseStarting, room.Phase())
	assert.Zero(t, countType(pendingTypes(a), "allReady"))
}

func TestLeaveDuringHandshakeCancelsStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := newTestClient("A")
	b := newTestClient("B")
	room := newRoomWithPlayers(clock, RoomConfig{Capacity: 2}, a, b)

	require.NoError(t, room.Start(a.ID))
	room.MarkReady(a.ID)
	room.Leave(b.ID)
	assert.Equal(t, PhaseForming, room.Phase())

	types := pendingTypes(a)
	assert.Contains(t, types, "startCancelled")

	// a partial epoch must never surface after the roster changed
	clock.Advance(readyTimeout)
	assert.Zero(t, countType(pendingTypes(a), "allReady"))
}

func TestStartIsIgnoredWhileRoundUnderway(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := newTestClient("A")
	b := newTestClient("B")
	room := newRoomWithPlayers(clock, RoomConfig{Capacity: 2}, a, b)

	require.NoError(t, room.Start(a.ID))
	drainPlayerEvents(t, a)
	require.NoError(t, room.Start(a.ID))
	assert.Empty(t, pendingTypes(a), "a second start mid-handshake must not restart the round")
}

func TestRematchKeepsScores(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := newTestClient("A")
	b := newTestClient("B")
	room := newRoomWithPlayers(clock, RoomConfig{Mode: ModeSurvival, Capacity: 2}, a, b)

	require.NoError(t, room.Start(a.ID))
	room.MarkReady(a.ID)
	room.MarkReady(b.ID)
	room.Kill(a.ID) // b survives, takes the bonus point
	require.Equal(t, PhaseConcluded, room.Phase())
	clock.Advance(lobbyReturnDelay)
	require.Equal(t, PhaseReadyToStart, waitForPhase(t, room, PhaseReadyToStart))

	require.NoError(t, room.Start(a.ID))
	for _, p := range room.Players() {
		if p.ID == b.ID {
			assert.Equal(t, 1, p.Score, "a rematch continues the running tally")
		}
	}
}

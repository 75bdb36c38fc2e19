package main

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
)

// The obstacle stream is never sent over the wire: geometry for obstacle i
// is a pure function of (round seed, i), so every client regenerates the
// identical sequence locally. Only the reveal instant is synchronized, by
// the host relaying its reveal index through the room.

const (
	revealInterval = 1500 * time.Millisecond
	gapMin         = 0.2
	gapMax         = 0.8
)

func NewRoundSeed() uint64 {
	return rand.Uint64()
}

// GapPosition maps an obstacle index to its gap center as a fraction of the
// playfield height. This is the determinism contract clients implement:
// xxhash of the little-endian (seed, index) pair, top 53 bits taken as a
// fraction, scaled into [gapMin, gapMax).
func GapPosition(seed uint64, index int) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	h := xxhash.Sum64(buf[:])
	frac := float64(h>>11) / float64(uint64(1)<<53)
	return gapMin + frac*(gapMax-gapMin)
}

// RevealIndexAt is the index the host should have revealed by now: obstacles
// unveil every revealInterval once the countdown anchored at the epoch has
// run out. -1 while the countdown is still running.
func RevealIndexAt(epoch time.Time, now time.Time) int {
	elapsed := now.Sub(epoch) - countdownDuration
	if elapsed < 0 {
		return -1
	}
	return int(elapsed / revealInterval)
}

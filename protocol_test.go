package main

import (
	"errors"
	"testing"
)

func TestDecodeMessageDispatchesOnType(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"joinRoom","code":"ABC234","name":"pat"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	join, ok := msg.(JoinRoomMessage)
	if !ok {
		t.Fatalf("expected JoinRoomMessage got %T", msg)
	}
	if join.Code != "ABC234" || join.Name != "pat" {
		t.Errorf("wrong fields: %+v", join)
	}

	msg, err = DecodeMessage([]byte(`{"type":"revealObstacle","code":"ABC234","index":7}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reveal := msg.(RevealObstacleMessage); reveal.Index != 7 {
		t.Errorf("wrong index: %+v", reveal)
	}
}

func TestDecodeMessageRejectsUnknownType(t *testing.T) {
	if _, err := DecodeMessage([]byte(`{"type":"mystery"}`)); !errors.Is(err, ErrUndefinedType) {
		t.Errorf("expected ErrUndefinedType got %v", err)
	}
}

func TestMessageAuthorityTagsTrustBoundary(t *testing.T) {
	clientAsserted := []any{
		UpdateScoreMessage{},
		RevealObstacleMessage{},
		GameOverMessage{},
		SignalMessage{},
	}
	for _, msg := range clientAsserted {
		if MessageAuthority(msg) != ClientAsserted {
			t.Errorf("%T should be client-asserted", msg)
		}
	}
	serverSide := []any{
		CreateRoomMessage{},
		JoinRoomMessage{},
		StartGameMessage{},
		PlayerReadyMessage{},
		PlayerDiedMessage{},
	}
	for _, msg := range serverSide {
		if MessageAuthority(msg) != ServerAuthoritative {
			t.Errorf("%T should be server-authoritative", msg)
		}
	}
}

func TestRoomConfigDefaults(t *testing.T) {
	cfg := RoomConfig{}.withDefaults()
	if cfg.Mode != ModeElapsed || cfg.Capacity != 2 || cfg.TimeLimit != 60 || cfg.Difficulty != "normal" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	cfg = RoomConfig{Mode: ModeSurvival, Capacity: 3}.withDefaults()
	if cfg.Capacity != 2 {
		t.Errorf("odd capacity should normalize to 2 got %d", cfg.Capacity)
	}
	if cfg.TimeLimit != 0 {
		t.Errorf("survival mode has no time limit, got %d", cfg.TimeLimit)
	}
}

package main

import (
	"testing"

	"github.com/jonboulle/clockwork"
)

func TestRegistryCreateLookupRemove(t *testing.T) {
	registry := NewRegistry(clockwork.NewFakeClock())
	creator := newTestClient("A")
	code, room := registry.Create(creator.player(), RoomConfig{})

	got, exists := registry.Get(code)
	if !exists {
		t.Fatalf("room %v not found after create", code)
	}
	if got != room {
		t.Errorf("lookup returned a different room")
	}
	if room.Config().Capacity != 2 {
		t.Errorf("defaulted capacity expected 2 got %d", room.Config().Capacity)
	}

	registry.Remove(code)
	if _, exists := registry.Get(code); exists {
		t.Errorf("room %v still found after remove", code)
	}
}

func TestRegistryCodesAreUniqueAmongLiveRooms(t *testing.T) {
	registry := NewRegistry(clockwork.NewFakeClock())
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, _ := registry.Create(newTestClient("A").player(), RoomConfig{})
		if seen[code] {
			t.Fatalf("duplicate live room code %v", code)
		}
		seen[code] = true
	}
	if registry.Len() != 50 {
		t.Errorf("expected 50 live rooms got %d", registry.Len())
	}
}

func TestRegistrySnapshotEnumeratesRooms(t *testing.T) {
	registry := NewRegistry(clockwork.NewFakeClock())
	registry.Create(newTestClient("A").player(), RoomConfig{})
	registry.Create(newTestClient("B").player(), RoomConfig{Mode: ModeSurvival, Capacity: 4})

	infos := registry.Snapshot()
	if len(infos) != 2 {
		t.Fatalf("expected 2 rooms got %d", len(infos))
	}
	for _, info := range infos {
		if info.Phase != "forming" {
			t.Errorf("fresh room phase expected forming got %v", info.Phase)
		}
		if len(info.Players) != 1 {
			t.Errorf("fresh room expected 1 player got %d", len(info.Players))
		}
	}
}

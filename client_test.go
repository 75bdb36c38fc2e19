package main

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/gobwas/ws/wsutil"
)

func TestClientWritesFramesFromSendChannel(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	c := NewClient(serverSide)
	go func() {
		c.Send(ErrorMessage{Type: "error", Code: "roomNotFound", Message: "room not found"})
		close(c.send)
		c.WritePump()
		serverSide.Close()
	}()
	data, _ := wsutil.ReadServerText(clientSide)
	var parsed ErrorMessage
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("incorrect json sent: %v", err)
	}
	if parsed.Type != "error" {
		t.Errorf("wrong type expected: %v got: %v", "error", parsed.Type)
	}
	if parsed.Code != "roomNotFound" {
		t.Errorf("wrong code expected: %v got: %v", "roomNotFound", parsed.Code)
	}
	clientSide.Close()
}

func TestSendNeverBlocksWhenReceiverStalls(t *testing.T) {
	c := &Client{ID: "x", send: make(chan []byte, 2)}
	for i := 0; i < 10; i++ {
		c.Send(ErrorMessage{Type: "error"})
	}
	if len(c.send) != 2 {
		t.Errorf("expected the buffer to cap at 2 got %d", len(c.send))
	}
}

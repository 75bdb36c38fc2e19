package main

import (
	"encoding/json"
	"net"

	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
)

// Client is one websocket connection. Its id doubles as the player identity
// for as long as the connection lives; there are no accounts and no
// reconnect, a dropped connection is a departed player.
type Client struct {
	ID   string
	Name string
	conn net.Conn
	send chan []byte

	// roomCode is only touched by the connection's read loop.
	roomCode string
}

func NewClient(conn net.Conn) *Client {
	return &Client{ID: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
}

func (c *Client) Send(msg any) {
	encoded, _ := json.Marshal(msg)
	select {
	case c.send <- encoded:
	default:
	}
}

// WritePump drains the send channel onto the wire. It exits when the
// channel closes or the connection breaks.
func (c *Client) WritePump() {
	for msg := range c.send {
		if err := wsutil.WriteServerText(c.conn, msg); err != nil {
			return
		}
	}
}

func (c *Client) player() *Player {
	return &Player{ID: c.ID, Name: c.Name, out: c.send}
}

package main

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrNotAuthorized = errors.New("not authorized")
)

// Router is the single inbound gateway: it resolves the room, applies the
// operation, and lets the room fan the results out. Failed preconditions
// become a unicast error to the requester and nothing else.
type Router struct {
	registry *Registry
}

func NewRouter(registry *Registry) *Router {
	return &Router{registry}
}

func (rt *Router) HandleMessage(c *Client, msg any) {
	if MessageAuthority(msg) == ClientAsserted {
		LogClientAssertedMessage(c.ID, MessageKind(msg))
	}
	switch m := msg.(type) {
	case CreateRoomMessage:
		rt.handleCreate(c, m)
	case JoinRoomMessage:
		rt.handleJoin(c, m)
	case StartGameMessage:
		if room, ok := rt.room(c, m.Code); ok {
			if err := room.Start(c.ID); err != nil {
				rt.sendError(c, err)
			}
		}
	case PlayerReadyMessage:
		if room, ok := rt.room(c, m.Code); ok {
			room.MarkReady(c.ID)
		}
	case UpdateScoreMessage:
		if room, ok := rt.room(c, m.Code); ok {
			room.SetScore(c.ID, m.Score, m.State)
		}
	case PlayerDiedMessage:
		if room, ok := rt.room(c, m.Code); ok {
			room.Kill(c.ID)
		}
	case RevealObstacleMessage:
		if room, ok := rt.room(c, m.Code); ok {
			if err := room.Reveal(c.ID, m.Index); err != nil {
				rt.sendError(c, err)
			}
		}
	case GameOverMessage:
		if room, ok := rt.room(c, m.Code); ok {
			room.ForceResolve(c.ID)
		}
	case SignalMessage:
		if room, ok := rt.room(c, m.Code); ok {
			room.Relay(c.ID, m.To, m.Payload)
		}
	}
}

// HandleDisconnect applies leave semantics for the room the connection was
// in; the last member leaving takes the room with it.
func (rt *Router) HandleDisconnect(c *Client) {
	rt.leaveCurrent(c)
}

func (rt *Router) handleCreate(c *Client, m CreateRoomMessage) {
	rt.leaveCurrent(c)
	c.Name = m.Name
	code, room := rt.registry.Create(c.player(), m.Config)
	c.roomCode = code
	GetRoomLogger(code).CreatedRoom()
	c.Send(RoomCreatedMessage{
		Type:     "roomCreated",
		Code:     code,
		PlayerID: c.ID,
		Creator:  c.ID,
		Players:  room.Players(),
		Config:   room.Config(),
	})
}

func (rt *Router) handleJoin(c *Client, m JoinRoomMessage) {
	rt.leaveCurrent(c)
	room, ok := rt.registry.Get(m.Code)
	if !ok {
		rt.sendError(c, ErrRoomNotFound)
		return
	}
	c.Name = m.Name
	if err := room.Join(c.player()); err != nil {
		rt.sendError(c, err)
		return
	}
	c.roomCode = m.Code
	GetRoomLogger(m.Code).JoinedRoom(c.Name)
}

func (rt *Router) room(c *Client, code string) (*Room, bool) {
	room, ok := rt.registry.Get(code)
	if !ok {
		rt.sendError(c, ErrRoomNotFound)
		return nil, false
	}
	return room, true
}

func (rt *Router) leaveCurrent(c *Client) {
	if c.roomCode == "" {
		return
	}
	code := c.roomCode
	c.roomCode = ""
	room, ok := rt.registry.Get(code)
	if !ok {
		return
	}
	if room.Leave(c.ID) {
		rt.registry.Remove(code)
		GetRoomLogger(code).RemovingRoom()
	} else {
		GetRoomLogger(code).LeftRoom(c.Name)
	}
}

func (rt *Router) sendError(c *Client, err error) {
	code := "error"
	switch {
	case errors.Is(err, ErrRoomNotFound):
		code = "roomNotFound"
	case errors.Is(err, ErrRoomFull):
		code = "roomFull"
	case errors.Is(err, ErrNotAuthorized):
		code = "notAuthorized"
	}
	c.Send(ErrorMessage{Type: "error", Code: code, Message: err.Error()})
}

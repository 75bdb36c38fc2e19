package main

import (
	"encoding/json"
	"errors"
)

const (
	ModeElapsed  = "elapsed"
	ModeSurvival = "survival"
)

// RoomConfig is captured at room creation and immutable afterwards.
type RoomConfig struct {
	Mode       string `json:"mode"`
	TimeLimit  int    `json:"timeLimit"` // seconds, elapsed mode only
	Difficulty string `json:"difficulty"`
	Capacity   int    `json:"capacity"` // 2 or 4
}

func (c RoomConfig) withDefaults() RoomConfig {
	if c.Mode != ModeSurvival {
		c.Mode = ModeElapsed
	}
	if c.Capacity != 2 && c.Capacity != 4 {
		c.Capacity = 2
	}
	if c.Mode == ModeElapsed && c.TimeLimit <= 0 {
		c.TimeLimit = 60
	}
	if c.Difficulty == "" {
		c.Difficulty = "normal"
	}
	return c
}

type CreateRoomMessage struct {
	Name   string     `json:"name"`
	Config RoomConfig `json:"config"`
}

type JoinRoomMessage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type StartGameMessage struct {
	Code string `json:"code"`
}

type PlayerReadyMessage struct {
	Code string `json:"code"`
}

type UpdateScoreMessage struct {
	Code  string          `json:"code"`
	Score int             `json:"score"`
	State json.RawMessage `json:"state"`
}

type PlayerDiedMessage struct {
	Code string `json:"code"`
}

type RevealObstacleMessage struct {
	Code  string `json:"code"`
	Index int    `json:"index"`
}

type GameOverMessage struct {
	Code string `json:"code"`
}

type SignalMessage struct {
	Code    string          `json:"code"`
	To      string          `json:"to"`
	Payload json.RawMessage `json:"payload"`
}

type InboundMessage interface {
	CreateRoomMessage | JoinRoomMessage | StartGameMessage | PlayerReadyMessage |
		UpdateScoreMessage | PlayerDiedMessage | RevealObstacleMessage |
		GameOverMessage | SignalMessage
}

var ErrUndefinedType = errors.New("incorrect type")

// DecodeMessage returns one of the structs from the InboundMessage interface.
func DecodeMessage(data []byte) (any, error) {
	message := UnmarshalJSON[struct {
		Type string `json:"type"`
	}](data)
	var parsedMessage any
	switch message.Type {
	case "createRoom":
		parsedMessage = UnmarshalJSON[CreateRoomMessage](data)
	case "joinRoom":
		parsedMessage = UnmarshalJSON[JoinRoomMessage](data)
	case "startGame":
		parsedMessage = UnmarshalJSON[StartGameMessage](data)
	case "playerReady":
		parsedMessage = UnmarshalJSON[PlayerReadyMessage](data)
	case "updateScore":
		parsedMessage = UnmarshalJSON[UpdateScoreMessage](data)
	case "playerDied":
		parsedMessage = UnmarshalJSON[PlayerDiedMessage](data)
	case "revealObstacle":
		parsedMessage = UnmarshalJSON[RevealObstacleMessage](data)
	case "gameOver":
		parsedMessage = UnmarshalJSON[GameOverMessage](data)
	case "signal":
		parsedMessage = UnmarshalJSON[SignalMessage](data)
	default:
		return nil, ErrUndefinedType
	}
	return parsedMessage, nil
}

// Authority marks who owns the truth a message carries. The server stores
// and relays ClientAsserted payloads verbatim; it never validates them
// against its own simulation.
type Authority int

const (
	ServerAuthoritative Authority = iota
	ClientAsserted
)

func MessageAuthority(msg any) Authority {
	switch msg.(type) {
	case UpdateScoreMessage, RevealObstacleMessage, GameOverMessage, SignalMessage:
		return ClientAsserted
	default:
		return ServerAuthoritative
	}
}

func MessageKind(msg any) string {
	switch msg.(type) {
	case CreateRoomMessage:
		return "createRoom"
	case JoinRoomMessage:
		return "joinRoom"
	case StartGameMessage:
		return "startGame"
	case PlayerReadyMessage:
		return "playerReady"
	case UpdateScoreMessage:
		return "updateScore"
	case PlayerDiedMessage:
		return "playerDied"
	case RevealObstacleMessage:
		return "revealObstacle"
	case GameOverMessage:
		return "gameOver"
	case SignalMessage:
		return "signal"
	}
	return "unknown"
}

// Outbound messages. Every frame carries a type discriminator so clients can
// dispatch the same way the server does.

type RoomCreatedMessage struct {
	Type     string       `json:"type"`
	Code     string       `json:"code"`
	PlayerID string       `json:"playerId"`
	Creator  string       `json:"creator"`
	Players  []PlayerInfo `json:"players"`
	Config   RoomConfig   `json:"config"`
}

type PlayerJoinedMessage struct {
	Type    string       `json:"type"`
	Code    string       `json:"code"`
	Creator string       `json:"creator"`
	Players []PlayerInfo `json:"players"`
}

type PlayerLeftMessage struct {
	Type    string       `json:"type"`
	Code    string       `json:"code"`
	Creator string       `json:"creator"`
	Players []PlayerInfo `json:"players"`
}

type StartCancelledMessage struct {
	Type string `json:"type"`
}

type GameStartMessage struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
	Config  RoomConfig   `json:"config"`
	Seed    string       `json:"seed"` // uint64 as decimal string, JS numbers top out at 2^53
	Round   int          `json:"round"`
}

type AllReadyMessage struct {
	Type            string `json:"type"`
	Epoch           int64  `json:"epoch"` // server clock, unix millis
	CountdownMillis int64  `json:"countdownMillis"`
	Round           int    `json:"round"`
}

type ScoreUpdateMessage struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
}

type PlayerDiedBroadcast struct {
	Type  string   `json:"type"`
	ID    string   `json:"id"`
	Alive []string `json:"alive"`
}

type RevealObstacleBroadcast struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type GameOverBroadcast struct {
	Type    string       `json:"type"`
	Winner  *PlayerInfo  `json:"winner"`
	Players []PlayerInfo `json:"players"`
}

type ReturnToLobbyMessage struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
}

type SignalBroadcast struct {
	Type    string          `json:"type"`
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

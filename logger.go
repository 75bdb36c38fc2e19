package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

type RoomLogger struct {
	zerolog zerolog.Logger
}

func GetRoomLogger(roomCode string) RoomLogger {
	return RoomLogger{log.With().Str("room-code", roomCode).Logger()}
}

func (l RoomLogger) CreatedRoom() {
	l.zerolog.Info().Msg("Created room")
}

func (l RoomLogger) JoinedRoom(playerName string) {
	l.zerolog.Info().Str("player", playerName).Msg("Joined room")
}

func (l RoomLogger) LeftRoom(playerName string) {
	l.zerolog.Info().Str("player", playerName).Msg("Left room")
}

func (l RoomLogger) RemovingRoom() {
	l.zerolog.Info().Msg("Removing room")
}

func (l RoomLogger) StartedRound(round int) {
	l.zerolog.Info().Int("round", round).Msg("Round starting")
}

func (l RoomLogger) EpochIssued(round int, forced bool) {
	l.zerolog.Info().Int("round", round).Bool("forced", forced).Msg("Epoch issued")
}

func (l RoomLogger) RoundConcluded(winnerID string) {
	l.zerolog.Info().Str("winner", winnerID).Msg("Round concluded")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogClientConnected(ip string, connID string) {
	log.Info().Str("ip", ip).Str("conn", connID).Msg("Client connected")
}

func LogClientDisconnected(ip string, connID string) {
	log.Info().Str("ip", ip).Str("conn", connID).Msg("Client disconnected")
}

func LogDiagnosticsToken(token string) {
	log.Info().Str("token", token).Msg("Diagnostics token for this run")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}

func LogClientAssertedMessage(connID string, kind string) {
	log.Debug().Str("conn", connID).Str("kind", kind).Msg("Relaying client-asserted message")
}

package app

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solacehq/solace/internal/core"
	"github.com/solacehq/solace/internal/domain"
)

// Outbound event names, as seen on the wire.
const (
	EventRoomList         = "room-list"
	EventJoined           = "joined"
	EventParticipants     = "participants"
	EventUserConnected    = "user-connected"
	EventUserDisconnected = "user-disconnected"
	EventNewMessage       = "new-message"
)

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type JoinedPayload struct {
	RoomID       domain.RoomID `json:"roomId"`
	AnonName     string        `json:"anonName"`
	Participants []string      `json:"participants"`
	SocketID     string        `json:"socketId"`
}

type ParticipantsPayload struct {
	Participants []string `json:"participants"`
}

// PresencePayload announces one member arriving or leaving.
type PresencePayload struct {
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

type MessagePayload struct {
	FromSocketID string `json:"fromSocketId"`
	Username     string `json:"username"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp"`
}

func messagePayload(m domain.Message) MessagePayload {
	return MessagePayload{
		FromSocketID: m.FromConn,
		Username:     m.Username,
		Text:         m.Text,
		Timestamp:    m.Timestamp.UTC().Format(time.RFC3339),
	}
}

func encodeEvent(event string, data any) core.Frame {
	b, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("module", "app.events").Str("event", event).Msg("encode event")
		return nil
	}
	return b
}

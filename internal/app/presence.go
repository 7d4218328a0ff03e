package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solacehq/solace/internal/core"
	"github.com/solacehq/solace/internal/domain"
)

// Presence is the membership event sequencer. Joins, disconnects, messages
// and directory publishes go through it one at a time, which keeps the
// per-room name counter and the notification order race-free.
type Presence struct {
	rooms   core.RoomRegistry
	clients *ClientRegistry

	mu  sync.Mutex
	now func() time.Time
}

func NewPresence(rooms core.RoomRegistry, clients *ClientRegistry) *Presence {
	return &Presence{
		rooms:   rooms,
		clients: clients,
		now:     time.Now,
	}
}

func (p *Presence) timestamp() string {
	return p.now().UTC().Format(time.RFC3339)
}

// HandleJoin admits the connection into the room under a freshly minted
// anonymous name. An empty room id is ignored outright.
func (p *Presence) HandleJoin(id core.ConnID, roomID domain.RoomID) {
	if roomID == "" {
		log.Debug().Str("module", "app.presence").Str("conn", string(id)).Msg("join with empty room id dropped")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	conn, ok := p.clients.Get(id)
	if !ok {
		return
	}

	room := p.rooms.GetOrCreate(roomID)
	name := room.Join(id, conn)
	ts := p.timestamp()

	room.Broadcast(id, encodeEvent(EventUserConnected, PresencePayload{
		Username:  name,
		Timestamp: ts,
	}))

	participants := room.Participants()
	room.BroadcastAll(encodeEvent(EventParticipants, ParticipantsPayload{
		Participants: participants,
	}))

	if err := conn.TrySend(encodeEvent(EventJoined, JoinedPayload{
		RoomID:       roomID,
		AnonName:     name,
		Participants: participants,
		SocketID:     string(id),
	})); err != nil {
		log.Warn().Err(err).Str("module", "app.presence").Str("conn", string(id)).Msg("joined ack dropped")
	}

	log.Info().Str("module", "app.presence").Str("conn", string(id)).Str("room", string(roomID)).Str("name", name).Msg("joined room")
	p.publishDirectoryLocked()
}

// HandleDisconnect sweeps the connection out of every room it occupies and
// publishes the directory once. Safe to call more than once per connection.
func (p *Presence) HandleDisconnect(id core.ConnID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, room := range p.rooms.RoomsWith(id) {
		name, ok := room.Remove(id)
		if !ok {
			continue
		}
		ts := p.timestamp()
		room.BroadcastAll(encodeEvent(EventUserDisconnected, PresencePayload{
			Username:  name,
			Timestamp: ts,
		}))
		room.BroadcastAll(encodeEvent(EventParticipants, ParticipantsPayload{
			Participants: room.Participants(),
		}))
		if room.MemberCount() == 0 {
			p.rooms.Remove(room.ID())
		}
		log.Info().Str("module", "app.presence").Str("conn", string(id)).Str("room", string(room.ID())).Str("name", name).Msg("left room")
	}

	p.clients.Unbind(id)
	p.publishDirectoryLocked()
}

// SendMessage relays text to every other member of the room. Unknown rooms,
// non-members and empty fields are dropped without a response.
func (p *Presence) SendMessage(id core.ConnID, roomID domain.RoomID, text string) {
	if roomID == "" || text == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	room, ok := p.rooms.Get(roomID)
	if !ok {
		return
	}
	name, ok := room.NameOf(id)
	if !ok {
		return
	}

	msg := domain.Message{
		FromConn:  string(id),
		Username:  name,
		Text:      text,
		Timestamp: p.now(),
	}
	res := room.Broadcast(id, encodeEvent(EventNewMessage, messagePayload(msg)))
	if len(res.Dropped) > 0 {
		log.Warn().Str("module", "app.presence").Str("room", string(roomID)).Int("dropped", len(res.Dropped)).Msg("message delivery dropped")
	}
}

// PublishDirectory pushes the full room list to every connected client.
func (p *Presence) PublishDirectory() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishDirectoryLocked()
}

func (p *Presence) publishDirectoryLocked() {
	snap := p.rooms.Snapshot()
	p.clients.Broadcast(encodeEvent(EventRoomList, snap))
	log.Debug().Str("module", "app.presence").Int("rooms", len(snap)).Int("clients", p.clients.Count()).Msg("directory published")
}

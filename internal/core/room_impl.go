package core

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/solacehq/solace/internal/domain"
)

type member struct {
	name string
	conn SignalConnection
}

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned connections.
type roomImpl struct {
	room *domain.Room

	mu      sync.RWMutex
	members map[ConnID]*member
	order   []ConnID
	nextSeq int
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:    room,
		members: make(map[ConnID]*member),
		nextSeq: 1,
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.room.ID }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) Join(id ConnID, conn SignalConnection) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := fmt.Sprintf("Peer %d", r.nextSeq)
	r.nextSeq++
	if _, ok := r.members[id]; !ok {
		r.order = append(r.order, id)
	}
	r.members[id] = &member{name: name, conn: conn}
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("conn", string(id)).Str("name", name).Msg("member joined")
	return name
}

func (r *roomImpl) Remove(id ConnID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return "", false
	}
	delete(r.members, id)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("conn", string(id)).Msg("member removed")
	return m.name, true
}

func (r *roomImpl) NameOf(id ConnID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return "", false
	}
	return m.name, true
}

func (r *roomImpl) Participants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.members[id].name)
	}
	return out
}

func (r *roomImpl) Broadcast(from ConnID, data Frame) PublishResult {
	return r.fanOut(&from, data)
}

func (r *roomImpl) BroadcastAll(data Frame) PublishResult {
	return r.fanOut(nil, data)
}

func (r *roomImpl) fanOut(except *ConnID, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for _, id := range r.order {
		if except != nil && id == *except {
			continue
		}
		if err := r.members[id].conn.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, id)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.room.ID)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

package core

import (
	"sync"

	"github.com/solacehq/solace/internal/domain"
)

type registryImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]RoomService
	order []domain.RoomID
}

func NewRoomRegistry() RoomRegistry {
	return &registryImpl{rooms: make(map[domain.RoomID]RoomService)}
}

func (f *registryImpl) GetOrCreate(id domain.RoomID) RoomService {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room
	}
	room = NewRoomService(&domain.Room{ID: id})
	f.rooms[id] = room
	f.order = append(f.order, id)
	return room
}

func (f *registryImpl) Get(id domain.RoomID) (RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *registryImpl) Remove(id domain.RoomID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok || room.MemberCount() > 0 {
		return
	}
	delete(f.rooms, id)
	for i, rid := range f.order {
		if rid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

func (f *registryImpl) Snapshot() []domain.DirectoryEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.DirectoryEntry, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, domain.DirectoryEntry{
			RoomID:    id,
			UserCount: f.rooms[id].MemberCount(),
		})
	}
	return out
}

func (f *registryImpl) RoomsWith(id ConnID) []RoomService {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []RoomService
	for _, rid := range f.order {
		if _, ok := f.rooms[rid].NameOf(id); ok {
			out = append(out, f.rooms[rid])
		}
	}
	return out
}

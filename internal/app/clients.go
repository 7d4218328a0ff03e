package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/solacehq/solace/internal/core"
)

type clientEntry struct {
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// ClientRegistry tracks every live connection in the process, member of a
// room or not. The directory publisher fans out through it.
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[core.ConnID]*clientEntry
}

func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{clients: make(map[core.ConnID]*clientEntry)}
}

func (r *ClientRegistry) Bind(id core.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = &clientEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.clients").Str("conn", string(id)).Msg("bound client")
}

func (r *ClientRegistry) Get(id core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.clients[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (r *ClientRegistry) Unbind(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	log.Info().Str("module", "app.clients").Str("conn", string(id)).Msg("unbound client")
}

func (r *ClientRegistry) Cancel(id core.ConnID) bool {
	r.mu.RLock()
	e, ok := r.clients[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}

func (r *ClientRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast delivers a frame to every connected client, fire-and-forget.
func (r *ClientRegistry) Broadcast(data core.Frame) core.PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := core.PublishResult{}
	for id, e := range r.clients {
		if err := e.Conn.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, id)
			continue
		}
		res.SentTo++
	}
	return res
}

package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []Frame
	fail   bool
}

func (f *fakeConn) TrySend(fr Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("down")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestRoomJoinMintsSequentialNames(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})

	assert.Equal(t, "Peer 1", room.Join("a", &fakeConn{}))
	assert.Equal(t, "Peer 2", room.Join("b", &fakeConn{}))
	assert.Equal(t, "Peer 3", room.Join("c", &fakeConn{}))
	assert.Equal(t, 3, room.MemberCount())
}

func TestRoomNamesNeverReusedAfterLeave(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})

	room.Join("a", &fakeConn{})
	name, ok := room.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "Peer 1", name)

	// The counter keeps going even though the room is empty again.
	assert.Equal(t, "Peer 2", room.Join("b", &fakeConn{}))
}

func TestRoomCountersAreIndependent(t *testing.T) {
	r1 := NewRoomService(&domain.Room{ID: "r1"})
	r2 := NewRoomService(&domain.Room{ID: "r2"})

	assert.Equal(t, "Peer 1", r1.Join("a", &fakeConn{}))
	assert.Equal(t, "Peer 1", r2.Join("a", &fakeConn{}))
	assert.Equal(t, "Peer 2", r1.Join("b", &fakeConn{}))
}

func TestRoomParticipantsInJoinOrder(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.Join("a", &fakeConn{})
	room.Join("b", &fakeConn{})
	room.Join("c", &fakeConn{})

	assert.Equal(t, []string{"Peer 1", "Peer 2", "Peer 3"}, room.Participants())

	_, ok := room.Remove("b")
	require.True(t, ok)
	assert.Equal(t, []string{"Peer 1", "Peer 3"}, room.Participants())
}

func TestRoomBroadcastExcludesSender(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	room.Join("a", a)
	room.Join("b", b)
	room.Join("c", c)

	res := room.Broadcast("a", Frame("hello"))

	assert.Equal(t, 2, res.SentTo)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, 0, a.count())
	assert.Equal(t, 1, b.count())
	assert.Equal(t, 1, c.count())
}

func TestRoomBroadcastAllIncludesEveryone(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	a, b := &fakeConn{}, &fakeConn{}
	room.Join("a", a)
	room.Join("b", b)

	res := room.BroadcastAll(Frame("hi"))

	assert.Equal(t, 2, res.SentTo)
	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
}

func TestRoomBroadcastReportsDropped(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.Join("a", &fakeConn{})
	room.Join("b", &fakeConn{fail: true})

	res := room.Broadcast("a", Frame("x"))

	assert.Equal(t, 0, res.SentTo)
	assert.Equal(t, []ConnID{"b"}, res.Dropped)
}

func TestRoomRemoveUnknownMember(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})

	_, ok := room.Remove("ghost")
	assert.False(t, ok)

	_, ok = room.NameOf("ghost")
	assert.False(t, ok)
}

func TestRoomConcurrentJoinsMintUniqueNames(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})

	const n = 50
	var wg sync.WaitGroup
	names := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names <- room.Join(ConnID(fmt.Sprintf("c%d", i)), &fakeConn{})
		}(i)
	}
	wg.Wait()
	close(names)

	seen := make(map[string]bool)
	for name := range names {
		require.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, room.MemberCount())
}

package core

import "github.com/solacehq/solace/internal/domain"

// Frame is an encoded outbound event payload.
type Frame []byte

// ConnID identifies one live transport session. Minted at accept time,
// never reused; a reconnect is always a brand-new ConnID.
type ConnID string

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats to the caller. Delivery is
// fire-and-forget; dropped receivers get no retry.
type PublishResult struct {
	SentTo  int
	Dropped []ConnID
}

// RoomService is the core-facing API of a room. It owns the membership set
// and the display-name counter but never touches transport resources.
type RoomService interface {
	ID() domain.RoomID
	MemberCount() int

	// Join mints the next anonymous display name and inserts the member.
	// Minting and insertion happen under one lock, so names are unique for
	// the room's lifetime.
	Join(id ConnID, conn SignalConnection) (displayName string)
	// Remove drops the member and reports the display name it held.
	Remove(id ConnID) (displayName string, ok bool)

	NameOf(id ConnID) (string, bool)
	Participants() []string

	// Broadcast fans data out to every member except from.
	Broadcast(from ConnID, data Frame) PublishResult
	// BroadcastAll fans data out to every member.
	BroadcastAll(data Frame) PublishResult
}

// RoomRegistry owns the process-wide room map. Rooms are created lazily on
// first join and must be removed the moment they are empty.
type RoomRegistry interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	// Remove deletes the room only if it has no members; otherwise no-op.
	Remove(id domain.RoomID)
	// Snapshot lists all rooms with member counts, in creation order.
	Snapshot() []domain.DirectoryEntry
	// RoomsWith lists every room the connection is currently a member of.
	RoomsWith(id ConnID) []RoomService
}

package domain

type RoomID string

// Room carries room meta only; membership lives in core.
type Room struct {
	ID RoomID
}

// DirectoryEntry is one line of the global room directory, derived from
// live membership on every publish and never stored.
type DirectoryEntry struct {
	RoomID    RoomID `json:"roomId"`
	UserCount int    `json:"userCount"`
}

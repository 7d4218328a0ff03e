package domain

import "time"

// Message is a transient chat payload. It exists only for the duration of
// one broadcast; nothing in the system persists it.
type Message struct {
	FromConn  string
	Username  string
	Text      string
	Timestamp time.Time
}

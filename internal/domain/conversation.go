package domain

import "time"

// Conversation groups the messages of one chat thread. It is created on the
// first turn of a session and only ever grows by appended messages.
type Conversation struct {
	ID        string
	UserID    string
	StartTime time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind distinguishes questions from answers in the transcript
type MessageKind string

const (
	MessageQuestion MessageKind = "question"
	MessageAnswer   MessageKind = "answer"
)

// Message is one entry in a game's append-only transcript. The transcript
// doubles as the turn-protocol record: the most recent question addressed
// to a player is the question they owe an answer to.
type Message struct {
	ID        string
	Kind      MessageKind
	From      string
	To        string // Recipient: question target, or the asker being answered
	Content   string
	Timestamp time.Time
}

// NewMessage creates a transcript entry with a fresh id
func NewMessage(kind MessageKind, from, to, content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Kind:      kind,
		From:      from,
		To:        to,
		Content:   content,
		Timestamp: time.Now(),
	}
}

package model

import "time"

// Message is a direct message between two users.  Conversations
// are not stored; they are derived by grouping messages on the
// counterpart user at read time.
//
// Fields:
//  ID          – primary key identifier.
//  SenderID    – user who wrote the message.
//  RecipientID – user who receives it.
//  Body        – message text.
//  ReadAt      – when the recipient read it (null while unread).
//  CreatedAt   – send timestamp.
type Message struct {
	ID          uint64     // messages.id
	SenderID    uint64     // messages.sender_id
	RecipientID uint64     // messages.recipient_id
	Body        string     // messages.body
	ReadAt      *time.Time // messages.read_at (nullable)
	CreatedAt   time.Time  // messages.created_at
}

package model

import "time"

// Ticket status values.
const (
	TicketStatusOpen     = "OPEN"
	TicketStatusResolved = "RESOLVED"
	TicketStatusClosed   = "CLOSED"
)

// SupportTicket mirrors the `support_tickets` table.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who opened the ticket.
//  Subject   – short description of the issue.
//  Status    – OPEN, RESOLVED or CLOSED.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type SupportTicket struct {
	ID        uint64    // support_tickets.id
	UserID    uint64    // support_tickets.user_id
	Subject   string    // support_tickets.subject
	Status    string    // support_tickets.status
	CreatedAt time.Time // support_tickets.created_at
	UpdatedAt time.Time // support_tickets.updated_at
}

// TicketMessage is one entry in a ticket's thread.  Both the
// ticket owner and support staff append messages.
//
// Fields:
//  ID        – primary key identifier.
//  TicketID  – ticket the message belongs to.
//  AuthorID  – user who wrote the message.
//  Body      – message text.
//  CreatedAt – creation timestamp.
type TicketMessage struct {
	ID        uint64    // ticket_messages.id
	TicketID  uint64    // ticket_messages.ticket_id
	AuthorID  uint64    // ticket_messages.author_id
	Body      string    // ticket_messages.body
	CreatedAt time.Time // ticket_messages.created_at
}

package repository

import (
	"context"
	"database/sql"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// TicketRepo stores support tickets and their message threads.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// Create opens a ticket together with its first message in one transaction
// and returns the ticket id.
func (r *TicketRepo) Create(ctx context.Context, userID uint64, subject, body string) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		"INSERT INTO support_tickets (user_id, subject, status) VALUES (?,?,?)",
		userID, subject, model.TicketStatusOpen)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO ticket_messages (ticket_id, author_id, body) VALUES (?,?,?)",
		id, userID, body); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListForUser returns the user's tickets, newest first.
func (r *TicketRepo) ListForUser(ctx context.Context, userID uint64) ([]model.SupportTicket, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, subject, status, created_at, updated_at FROM support_tickets WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SupportTicket
	for rows.Next() {
		var t model.SupportTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetForUser fetches a ticket scoped to its owner plus the full thread.
// Tickets owned by someone else surface as ErrNotFound.
func (r *TicketRepo) GetForUser(ctx context.Context, userID, ticketID uint64) (model.SupportTicket, []model.TicketMessage, error) {
	var t model.SupportTicket
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, subject, status, created_at, updated_at FROM support_tickets WHERE id=? AND user_id=? LIMIT 1",
		ticketID, userID).Scan(&t.ID, &t.UserID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.SupportTicket{}, nil, ErrNotFound
	}
	if err != nil {
		return model.SupportTicket{}, nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, ticket_id, author_id, body, created_at FROM ticket_messages WHERE ticket_id=? ORDER BY created_at ASC",
		ticketID)
	if err != nil {
		return model.SupportTicket{}, nil, err
	}
	defer rows.Close()

	var msgs []model.TicketMessage
	for rows.Next() {
		var m model.TicketMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return model.SupportTicket{}, nil, err
		}
		msgs = append(msgs, m)
	}
	return t, msgs, rows.Err()
}

// AddMessage appends to the thread of a ticket the user owns and bumps the
// ticket's updated_at. A closed ticket no longer accepts messages.
func (r *TicketRepo) AddMessage(ctx context.Context, userID, ticketID uint64, body string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM support_tickets WHERE id=? AND user_id=? LIMIT 1",
		ticketID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		err = ErrNotFound
		return err
	}
	if err != nil {
		return err
	}
	if status == model.TicketStatusClosed {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO ticket_messages (ticket_id, author_id, body) VALUES (?,?,?)",
		ticketID, userID, body); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE support_tickets SET updated_at=NOW() WHERE id=?", ticketID); err != nil {
		return err
	}
	return nil
}

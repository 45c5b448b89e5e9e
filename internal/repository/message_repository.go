package repository

import (
	"context"
	"database/sql"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// MessageRepo stores direct messages between users. There is no conversation
// table; handlers derive conversations by grouping on the counterpart.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Create inserts a message and returns its id.
func (r *MessageRepo) Create(ctx context.Context, senderID, recipientID uint64, body string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (sender_id, recipient_id, body) VALUES (?,?,?)",
		senderID, recipientID, body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListInvolving returns every message the user sent or received, newest
// first. The conversation listing groups these rows in memory.
func (r *MessageRepo) ListInvolving(ctx context.Context, userID uint64) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, sender_id, recipient_id, body, read_at, created_at
		 FROM messages WHERE sender_id=? OR recipient_id=?
		 ORDER BY created_at DESC`,
		userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// Thread returns the two-party conversation in chronological order.
func (r *MessageRepo) Thread(ctx context.Context, userID, otherID uint64) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, sender_id, recipient_id, body, read_at, created_at
		 FROM messages
		 WHERE (sender_id=? AND recipient_id=?) OR (sender_id=? AND recipient_id=?)
		 ORDER BY created_at ASC`,
		userID, otherID, otherID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// MarkRead stamps every unread message the counterpart sent to the user.
func (r *MessageRepo) MarkRead(ctx context.Context, userID, otherID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET read_at=NOW() WHERE recipient_id=? AND sender_id=? AND read_at IS NULL",
		userID, otherID)
	return err
}

func scanMessages(rows *sql.Rows) ([]model.Message, error) {
	var out []model.Message
	for rows.Next() {
		var (
			m      model.Message
			readAt sql.NullTime
		)
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &readAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			t := readAt.Time
			m.ReadAt = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"time"
)

// NotificationPrefs mirrors the notification_preferences table. One row per
// user; absent rows mean the defaults below.
type NotificationPrefs struct {
	UserID           uint64    // notification_preferences.user_id (unique)
	EmailUpdates     bool      // charity news and campaign updates
	DonationReceipts bool      // per-donation receipt mail
	Marketing        bool      // platform marketing mail
	UpdatedAt        time.Time // notification_preferences.updated_at
}

// DefaultNotificationPrefs are applied until a user saves their own.
func DefaultNotificationPrefs(userID uint64) NotificationPrefs {
	return NotificationPrefs{UserID: userID, EmailUpdates: true, DonationReceipts: true, Marketing: false}
}

type NotificationPrefRepo struct{ DB *sql.DB }

func NewNotificationPrefRepo(db *sql.DB) *NotificationPrefRepo { return &NotificationPrefRepo{DB: db} }

// Get returns the stored preferences or the defaults when none exist.
func (r *NotificationPrefRepo) Get(ctx context.Context, userID uint64) (NotificationPrefs, error) {
	var p NotificationPrefs
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, email_updates, donation_receipts, marketing, updated_at FROM notification_preferences WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.EmailUpdates, &p.DonationReceipts, &p.Marketing, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return DefaultNotificationPrefs(userID), nil
	}
	return p, err
}

// Upsert writes the user's preferences.
func (r *NotificationPrefRepo) Upsert(ctx context.Context, p NotificationPrefs) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO notification_preferences (user_id, email_updates, donation_receipts, marketing)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE email_updates=VALUES(email_updates),
		   donation_receipts=VALUES(donation_receipts), marketing=VALUES(marketing), updated_at=NOW()`,
		p.UserID, p.EmailUpdates, p.DonationReceipts, p.Marketing)
	return err
}

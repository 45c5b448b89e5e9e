package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// SavedItemRepo stores donor bookmarks on charities and campaigns.
type SavedItemRepo struct{ DB *sql.DB }

func NewSavedItemRepo(db *sql.DB) *SavedItemRepo { return &SavedItemRepo{DB: db} }

// Save inserts a bookmark. Saving the same item twice is ErrConflict.
func (r *SavedItemRepo) Save(ctx context.Context, userID uint64, itemType string, itemID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO saved_items (user_id, item_type, item_id) VALUES (?,?,?)",
		userID, itemType, itemID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Delete removes a bookmark, ErrNotFound when it does not exist.
func (r *SavedItemRepo) Delete(ctx context.Context, userID uint64, itemType string, itemID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM saved_items WHERE user_id=? AND item_type=? AND item_id=?",
		userID, itemType, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all of a user's bookmarks, newest first.
func (r *SavedItemRepo) List(ctx context.Context, userID uint64) ([]model.SavedItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, item_type, item_id, created_at FROM saved_items WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SavedItem
	for rows.Next() {
		var s model.SavedItem
		if err := rows.Scan(&s.ID, &s.UserID, &s.ItemType, &s.ItemID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// CharityRepo provides read access to charities, campaigns and officer
// rosters, plus the follow/unfollow state machine. Charities themselves are
// onboarded through an admin pipeline outside this service.
type CharityRepo struct{ DB *sql.DB }

func NewCharityRepo(db *sql.DB) *CharityRepo { return &CharityRepo{DB: db} }

// List returns charities, optionally filtered by category.
func (r *CharityRepo) List(ctx context.Context, category string) ([]model.Charity, error) {
	q := "SELECT id, name, mission, category, is_verified, created_at, updated_at FROM charities"
	var args []interface{}
	if c := strings.TrimSpace(category); c != "" {
		q += " WHERE category=?"
		args = append(args, strings.ToUpper(c))
	}
	q += " ORDER BY name ASC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Charity
	for rows.Next() {
		var c model.Charity
		if err := rows.Scan(&c.ID, &c.Name, &c.Mission, &c.Category, &c.IsVerified, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches one charity or ErrNotFound.
func (r *CharityRepo) GetByID(ctx context.Context, id uint64) (model.Charity, error) {
	var c model.Charity
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, mission, category, is_verified, created_at, updated_at FROM charities WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Mission, &c.Category, &c.IsVerified, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Charity{}, ErrNotFound
	}
	return c, err
}

// Exists reports whether a charity row exists.
func (r *CharityRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM charities WHERE id=?)", id).Scan(&exists)
	return exists, err
}

// CampaignExists reports whether an active or past campaign row exists.
func (r *CharityRepo) CampaignExists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM campaigns WHERE id=?)", id).Scan(&exists)
	return exists, err
}

// ListOfficers returns the officer roster of a charity.
func (r *CharityRepo) ListOfficers(ctx context.Context, charityID uint64) ([]model.CharityOfficer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, charity_id, name, title, email, photo_key, created_at FROM charity_officers WHERE charity_id=? ORDER BY name ASC",
		charityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CharityOfficer
	for rows.Next() {
		var o model.CharityOfficer
		if err := rows.Scan(&o.ID, &o.CharityID, &o.Name, &o.Title, &o.Email, &o.PhotoKey, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Follow transitions the user's follow state for a charity to ACTIVE. The
// (user_id, charity_id) pair is unique, so re-following after an unfollow
// updates the existing row instead of inserting a duplicate.
func (r *CharityRepo) Follow(ctx context.Context, userID, charityID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO charity_follows (user_id, charity_id, state)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE state=VALUES(state), updated_at=NOW()`,
		userID, charityID, model.FollowStateActive)
	return err
}

// Unfollow transitions an ACTIVE follow to UNFOLLOWED. ErrNotFound when the
// user never followed the charity or already unfollowed it.
func (r *CharityRepo) Unfollow(ctx context.Context, userID, charityID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE charity_follows SET state=?, updated_at=NOW() WHERE user_id=? AND charity_id=? AND state=?",
		model.FollowStateUnfollowed, userID, charityID, model.FollowStateActive)
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

// ListFollowed returns the charities a user actively follows.
func (r *CharityRepo) ListFollowed(ctx context.Context, userID uint64) ([]model.Charity, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.name, c.mission, c.category, c.is_verified, c.created_at, c.updated_at
		 FROM charities c
		 JOIN charity_follows f ON f.charity_id = c.id
		 WHERE f.user_id=? AND f.state=?
		 ORDER BY f.updated_at DESC`,
		userID, model.FollowStateActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Charity
	for rows.Next() {
		var c model.Charity
		if err := rows.Scan(&c.ID, &c.Name, &c.Mission, &c.Category, &c.IsVerified, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

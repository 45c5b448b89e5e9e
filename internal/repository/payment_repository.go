package repository

import (
	"context"
	"database/sql"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// PaymentMethodRepo stores donation instruments. Only display metadata lives
// here; the payment gateway holds the real account details.
type PaymentMethodRepo struct{ DB *sql.DB }

func NewPaymentMethodRepo(db *sql.DB) *PaymentMethodRepo { return &PaymentMethodRepo{DB: db} }

// Create inserts a payment method and returns its id. When the new method is
// marked default, the user's previous default is cleared in the same
// transaction.
func (r *PaymentMethodRepo) Create(ctx context.Context, m model.PaymentMethod) (uint64, error) {
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

	if m.IsDefault {
		if _, err = tx.ExecContext(ctx,
			"UPDATE payment_methods SET is_default=0 WHERE user_id=?", m.UserID); err != nil {
			return 0, err
		}
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx,
		"INSERT INTO payment_methods (user_id, kind, label, last_four, is_default) VALUES (?,?,?,?,?)",
		m.UserID, m.Kind, m.Label, m.LastFour, m.IsDefault)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns the user's payment methods, default first.
func (r *PaymentMethodRepo) List(ctx context.Context, userID uint64) ([]model.PaymentMethod, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, kind, label, last_four, is_default, created_at, updated_at
		 FROM payment_methods WHERE user_id=? ORDER BY is_default DESC, created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PaymentMethod
	for rows.Next() {
		var m model.PaymentMethod
		if err := rows.Scan(&m.ID, &m.UserID, &m.Kind, &m.Label, &m.LastFour, &m.IsDefault, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateLabel renames a payment method. ErrNotFound protects ownership.
func (r *PaymentMethodRepo) UpdateLabel(ctx context.Context, userID, id uint64, label string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payment_methods SET label=?, updated_at=NOW() WHERE id=? AND user_id=?",
		label, id, userID)
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

// SetDefault makes one method the default, clearing the others in a
// transaction.
func (r *PaymentMethodRepo) SetDefault(ctx context.Context, userID, id uint64) error {
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

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		"UPDATE payment_methods SET is_default=1, updated_at=NOW() WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	var n int64
	if n, err = res.RowsAffected(); err != nil {
		return err
	}
	if n == 0 {
		err = ErrNotFound
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE payment_methods SET is_default=0, updated_at=NOW() WHERE user_id=? AND id<>?", userID, id); err != nil {
		return err
	}
	return nil
}

// Delete removes a payment method owned by the user.
func (r *PaymentMethodRepo) Delete(ctx context.Context, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM payment_methods WHERE id=? AND user_id=?", id, userID)
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

// TaxInfoRepo stores the single tax record a user keeps for receipts.
type TaxInfoRepo struct{ DB *sql.DB }

func NewTaxInfoRepo(db *sql.DB) *TaxInfoRepo { return &TaxInfoRepo{DB: db} }

// Get returns the user's tax info or ErrNotFound.
func (r *TaxInfoRepo) Get(ctx context.Context, userID uint64) (model.TaxInfo, error) {
	var t model.TaxInfo
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, legal_name, tax_id, country, updated_at FROM tax_infos WHERE user_id=? LIMIT 1",
		userID).Scan(&t.UserID, &t.LegalName, &t.TaxID, &t.Country, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.TaxInfo{}, ErrNotFound
	}
	return t, err
}

// Upsert writes the user's tax info.
func (r *TaxInfoRepo) Upsert(ctx context.Context, t model.TaxInfo) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO tax_infos (user_id, legal_name, tax_id, country)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE legal_name=VALUES(legal_name), tax_id=VALUES(tax_id),
		   country=VALUES(country), updated_at=NOW()`,
		t.UserID, t.LegalName, t.TaxID, t.Country)
	return err
}

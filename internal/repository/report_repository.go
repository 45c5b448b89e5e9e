package repository

import (
	"context"
	"database/sql"
	"time"
)

// CharityTotal is one row of the per-charity donation report.
type CharityTotal struct {
	CharityID     uint64
	CharityName   string
	DonationCount uint64
	TotalCents    uint64
}

// PlatformSummary aggregates completed donations across the platform.
type PlatformSummary struct {
	DonationCount uint64
	TotalCents    uint64
	DonorCount    uint64
	Charities     []CharityTotal
}

// ReportRepo runs the reporting aggregations. All arithmetic is delegated to
// MySQL; this layer only scans the grouped results.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// Summary returns platform totals and the per-charity breakdown for
// completed donations created at or after since. A zero since means all
// time.
func (r *ReportRepo) Summary(ctx context.Context, since time.Time) (PlatformSummary, error) {
	var s PlatformSummary

	totalQ := `SELECT COUNT(*), COALESCE(SUM(amount_cents),0), COUNT(DISTINCT user_id)
	           FROM donations WHERE status='COMPLETED'`
	breakdownQ := `SELECT c.id, c.name, COUNT(d.id), COALESCE(SUM(d.amount_cents),0)
	               FROM donations d JOIN charities c ON c.id = d.charity_id
	               WHERE d.status='COMPLETED'`
	var args, bArgs []interface{}
	if !since.IsZero() {
		totalQ += " AND created_at >= ?"
		breakdownQ += " AND d.created_at >= ?"
		args = append(args, since)
		bArgs = append(bArgs, since)
	}
	breakdownQ += " GROUP BY c.id, c.name ORDER BY SUM(d.amount_cents) DESC"

	if err := r.DB.QueryRowContext(ctx, totalQ, args...).
		Scan(&s.DonationCount, &s.TotalCents, &s.DonorCount); err != nil {
		return PlatformSummary{}, err
	}

	rows, err := r.DB.QueryContext(ctx, breakdownQ, bArgs...)
	if err != nil {
		return PlatformSummary{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var t CharityTotal
		if err := rows.Scan(&t.CharityID, &t.CharityName, &t.DonationCount, &t.TotalCents); err != nil {
			return PlatformSummary{}, err
		}
		s.Charities = append(s.Charities, t)
	}
	return s, rows.Err()
}

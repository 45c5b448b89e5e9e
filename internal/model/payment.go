package model

import "time"

// PaymentMethod is a stored donation instrument.  Only display
// metadata is kept here; the platform never stores full card or
// account numbers (the payment gateway holds those).
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the payment method.
//  Kind      – CARD, BANK or EWALLET.
//  Label     – user-chosen display label.
//  LastFour  – last four digits for display.
//  IsDefault – whether this is the default instrument.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type PaymentMethod struct {
	ID        uint64    // payment_methods.id
	UserID    uint64    // payment_methods.user_id
	Kind      string    // payment_methods.kind
	Label     string    // payment_methods.label
	LastFour  string    // payment_methods.last_four
	IsDefault bool      // payment_methods.is_default
	CreatedAt time.Time // payment_methods.created_at
	UpdatedAt time.Time // payment_methods.updated_at
}

// TaxInfo is the single tax record a user keeps for donation
// receipts.  One row per user, written with an upsert.
type TaxInfo struct {
	UserID    uint64    // tax_infos.user_id (unique)
	LegalName string    // tax_infos.legal_name
	TaxID     string    // tax_infos.tax_id
	Country   string    // tax_infos.country
	UpdatedAt time.Time // tax_infos.updated_at
}

package model

import "time"

// Document is a file a charity publishes for donors to view, such
// as registration papers or annual reports.  The file itself lives
// in the storage directory under FileKey; downloads go through a
// signed, expiring link.
//
// Fields:
//  ID         – primary key identifier.
//  CharityID  – owning charity.
//  Title      – display title.
//  FileKey    – storage key (uuid-prefixed file name).
//  MimeType   – content type served on download.
//  SizeBytes  – file size.
//  UploadedAt – upload timestamp.
type Document struct {
	ID         uint64    // documents.id
	CharityID  uint64    // documents.charity_id
	Title      string    // documents.title
	FileKey    string    // documents.file_key
	MimeType   string    // documents.mime_type
	SizeBytes  uint64    // documents.size_bytes
	UploadedAt time.Time // documents.uploaded_at
}

// Donation mirrors the `donations` table.  Reporting aggregates
// over this table; the rows themselves are written by the payment
// flow which is outside this service.
type Donation struct {
	ID          uint64    // donations.id
	UserID      uint64    // donations.user_id
	CharityID   uint64    // donations.charity_id
	AmountCents uint64    // donations.amount_cents
	Status      string    // donations.status (PENDING, COMPLETED, REFUNDED)
	CreatedAt   time.Time // donations.created_at
}

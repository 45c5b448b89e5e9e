package repository

import (
	"context"
	"database/sql"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// DocumentRepo reads charity document metadata. Uploads happen through the
// charity onboarding pipeline; this service lists documents and hands out
// signed download links.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

// ListByCharity returns a charity's documents, newest first.
func (r *DocumentRepo) ListByCharity(ctx context.Context, charityID uint64) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, charity_id, title, file_key, mime_type, size_bytes, uploaded_at
		 FROM documents WHERE charity_id=? ORDER BY uploaded_at DESC`,
		charityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.CharityID, &d.Title, &d.FileKey, &d.MimeType, &d.SizeBytes, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches one document or ErrNotFound.
func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (model.Document, error) {
	var d model.Document
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, charity_id, title, file_key, mime_type, size_bytes, uploaded_at FROM documents WHERE id=? LIMIT 1",
		id).Scan(&d.ID, &d.CharityID, &d.Title, &d.FileKey, &d.MimeType, &d.SizeBytes, &d.UploadedAt)
	if err == sql.ErrNoRows {
		return model.Document{}, ErrNotFound
	}
	return d, err
}

// GetByKey fetches a document by storage key or ErrNotFound. The storage
// endpoint resolves signed links through this lookup.
func (r *DocumentRepo) GetByKey(ctx context.Context, fileKey string) (model.Document, error) {
	var d model.Document
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, charity_id, title, file_key, mime_type, size_bytes, uploaded_at FROM documents WHERE file_key=? LIMIT 1",
		fileKey).Scan(&d.ID, &d.CharityID, &d.Title, &d.FileKey, &d.MimeType, &d.SizeBytes, &d.UploadedAt)
	if err == sql.ErrNoRows {
		return model.Document{}, ErrNotFound
	}
	return d, err
}

package handler

import (
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/utils"
)

// downloadTTL bounds how long a signed download link stays valid.
const downloadTTL = 15 * time.Minute

// DocumentHandler lists charity documents and serves their files. Download
// URLs are signed; the storage route verifies the signature before reading
// anything from disk.
type DocumentHandler struct {
	Documents *repository.DocumentRepo
	Charities *repository.CharityRepo
	Signer    *utils.LinkSigner
	DataDir   string
}

func NewDocumentHandler(d *repository.DocumentRepo, c *repository.CharityRepo, signer *utils.LinkSigner, dataDir string) *DocumentHandler {
	return &DocumentHandler{Documents: d, Charities: c, Signer: signer, DataDir: dataDir}
}

type documentPart struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   uint64    `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url"`
}

// ListByCharity returns a charity's published documents with short-lived
// signed download links.
func (h *DocumentHandler) ListByCharity(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Charities.Exists(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "charity not found"})
	}

	docs, err := h.Documents.ListByCharity(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	expiry := time.Now().UTC().Add(downloadTTL)
	out := make([]documentPart, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentPart{
			ID:          d.ID,
			Title:       d.Title,
			MimeType:    d.MimeType,
			SizeBytes:   d.SizeBytes,
			UploadedAt:  d.UploadedAt,
			DownloadURL: h.Signer.Sign("/v1/storage/"+url.PathEscape(d.FileKey), expiry, nil),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Download serves a document file from local storage. The signed link
// middleware has already checked the query signature and expiry; the file
// key still has to match a known document.
func (h *DocumentHandler) Download(c echo.Context) error {
	key := filepath.Base(c.Param("key")) // no directory components
	if key == "" || key == "." || key == ".." {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid key"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Documents.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	c.Response().Header().Set(echo.HeaderContentType, doc.MimeType)
	return c.File(filepath.Join(h.DataDir, key))
}

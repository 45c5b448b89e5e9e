package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// TaxInfoHandler reads and writes the single tax record a user keeps for
// donation receipts.
type TaxInfoHandler struct {
	Tax *repository.TaxInfoRepo
}

func NewTaxInfoHandler(t *repository.TaxInfoRepo) *TaxInfoHandler {
	return &TaxInfoHandler{Tax: t}
}

type taxInfoBody struct {
	LegalName string `json:"legal_name"`
	TaxID     string `json:"tax_id"`
	Country   string `json:"country"`
}

// Get returns the caller's tax record if one was saved.
func (h *TaxInfoHandler) Get(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Tax.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no tax info on file"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, taxInfoBody{LegalName: t.LegalName, TaxID: t.TaxID, Country: t.Country})
}

// Put saves or replaces the caller's tax record.
func (h *TaxInfoHandler) Put(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req taxInfoBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.LegalName = strings.TrimSpace(req.LegalName)
	req.TaxID = strings.TrimSpace(req.TaxID)
	req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	if req.LegalName == "" || req.TaxID == "" || len(req.Country) != 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "legal_name, tax_id and 2-letter country required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Tax.Upsert(ctx, model.TaxInfo{UserID: uid, LegalName: req.LegalName, TaxID: req.TaxID, Country: req.Country})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, req)
}

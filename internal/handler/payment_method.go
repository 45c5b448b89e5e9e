package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// PaymentMethodHandler manages a user's stored payment methods. Only a label
// and the last four digits are kept; the processor holds the rest.
type PaymentMethodHandler struct {
	Methods *repository.PaymentMethodRepo
}

func NewPaymentMethodHandler(m *repository.PaymentMethodRepo) *PaymentMethodHandler {
	return &PaymentMethodHandler{Methods: m}
}

type methodReq struct {
	Kind      string `json:"kind"` // CARD | BANK
	Label     string `json:"label"`
	LastFour  string `json:"last_four"`
	IsDefault bool   `json:"is_default"`
}

type methodPart struct {
	ID        uint64    `json:"id"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	LastFour  string    `json:"last_four"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Create stores a new payment method. Marking it default clears any previous
// default in the same transaction.
func (h *PaymentMethodHandler) Create(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req methodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	kind := strings.ToUpper(strings.TrimSpace(req.Kind))
	if kind != "CARD" && kind != "BANK" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be CARD or BANK"})
	}
	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label required"})
	}
	if len(req.LastFour) != 4 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "last_four must be 4 digits"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Methods.Create(ctx, model.PaymentMethod{
		UserID:    uid,
		Kind:      kind,
		Label:     req.Label,
		LastFour:  req.LastFour,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// List returns the caller's payment methods.
func (h *PaymentMethodHandler) List(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	methods, err := h.Methods.List(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]methodPart, 0, len(methods))
	for _, m := range methods {
		out = append(out, methodPart{ID: m.ID, Kind: m.Kind, Label: m.Label, LastFour: m.LastFour, IsDefault: m.IsDefault, CreatedAt: m.CreatedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateLabel renames a payment method.
func (h *PaymentMethodHandler) UpdateLabel(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Label string `json:"label"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Label) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Methods.UpdateLabel(ctx, uid, id, strings.TrimSpace(req.Label)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment method not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

// SetDefault makes one method the default and clears the flag on the rest.
func (h *PaymentMethodHandler) SetDefault(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Methods.SetDefault(ctx, uid, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment method not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "default updated"})
}

// Delete removes a payment method.
func (h *PaymentMethodHandler) Delete(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Methods.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment method not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

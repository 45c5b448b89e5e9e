package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// NotificationPrefHandler reads and writes a user's notification settings.
type NotificationPrefHandler struct {
	Prefs *repository.NotificationPrefRepo
}

func NewNotificationPrefHandler(p *repository.NotificationPrefRepo) *NotificationPrefHandler {
	return &NotificationPrefHandler{Prefs: p}
}

type prefsBody struct {
	EmailUpdates     bool `json:"email_updates"`
	DonationReceipts bool `json:"donation_receipts"`
	Marketing        bool `json:"marketing"`
}

// Get returns the caller's preferences; defaults apply until saved.
func (h *NotificationPrefHandler) Get(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Prefs.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, prefsBody{EmailUpdates: p.EmailUpdates, DonationReceipts: p.DonationReceipts, Marketing: p.Marketing})
}

// Update replaces the caller's preferences with the submitted set.
func (h *NotificationPrefHandler) Update(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req prefsBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := repository.NotificationPrefs{
		UserID:           uid,
		EmailUpdates:     req.EmailUpdates,
		DonationReceipts: req.DonationReceipts,
		Marketing:        req.Marketing,
	}
	if err := h.Prefs.Upsert(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, req)
}

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

// SavedItemHandler manages a user's bookmarks. Items are polymorphic:
// a bookmark points at either a charity or a campaign.
type SavedItemHandler struct {
	Saved     *repository.SavedItemRepo
	Charities *repository.CharityRepo
}

func NewSavedItemHandler(s *repository.SavedItemRepo, c *repository.CharityRepo) *SavedItemHandler {
	return &SavedItemHandler{Saved: s, Charities: c}
}

type saveItemReq struct {
	ItemType string `json:"item_type"` // CHARITY | CAMPAIGN
	ItemID   uint64 `json:"item_id"`
}

type savedItemPart struct {
	ID       uint64    `json:"id"`
	ItemType string    `json:"item_type"`
	ItemID   uint64    `json:"item_id"`
	SavedAt  time.Time `json:"saved_at"`
}

// Save bookmarks a charity or campaign for the caller. The target is checked
// for existence against the table its type names.
func (h *SavedItemHandler) Save(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req saveItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	itemType := strings.ToUpper(strings.TrimSpace(req.ItemType))
	if req.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	var exists bool
	var err error
	switch itemType {
	case model.SavedItemCharity:
		exists, err = h.Charities.Exists(ctx, req.ItemID)
	case model.SavedItemCampaign:
		exists, err = h.Charities.CampaignExists(ctx, req.ItemID)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_type must be CHARITY or CAMPAIGN"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
	}

	if err := h.Saved.Save(ctx, uid, itemType, req.ItemID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already saved"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"saved": true})
}

// Delete removes a bookmark by type and id.
func (h *SavedItemHandler) Delete(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemType := strings.ToUpper(c.Param("type"))
	if itemType != model.SavedItemCharity && itemType != model.SavedItemCampaign {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_type must be CHARITY or CAMPAIGN"})
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Saved.Delete(ctx, uid, itemType, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not saved"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": false})
}

// List returns the caller's bookmarks, newest first.
func (h *SavedItemHandler) List(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Saved.List(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]savedItemPart, 0, len(items))
	for _, it := range items {
		out = append(out, savedItemPart{ID: it.ID, ItemType: it.ItemType, ItemID: it.ItemID, SavedAt: it.CreatedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

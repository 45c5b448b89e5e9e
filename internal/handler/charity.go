// This file defines handlers for the public charity directory. These routes
// allow unauthenticated users to browse charities and their officers.
// Sensitive fields are filtered from responses.

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// CharityHandler aggregates repositories needed for the charity directory
// and follow relationships.
type CharityHandler struct {
	Charities *repository.CharityRepo
}

func NewCharityHandler(r *repository.CharityRepo) *CharityHandler {
	return &CharityHandler{Charities: r}
}

// PublicCharity represents a charity exposed via the public API. It contains
// only safe fields.
type PublicCharity struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Mission    string `json:"mission"`
	Category   string `json:"category"`
	IsVerified bool   `json:"is_verified"`
}

// PublicOfficer is a roster entry on a charity's public page.
type PublicOfficer struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// List returns the charity directory, optionally filtered by ?category=.
// Response JSON contains an "items" array of PublicCharity.
func (h *CharityHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	charities, err := h.Charities.List(ctx, c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicCharity, 0, len(charities))
	for _, ch := range charities {
		out = append(out, PublicCharity{ID: ch.ID, Name: ch.Name, Mission: ch.Mission, Category: ch.Category, IsVerified: ch.IsVerified})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get returns a single charity by id.
func (h *CharityHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ch, err := h.Charities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "charity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, PublicCharity{ID: ch.ID, Name: ch.Name, Mission: ch.Mission, Category: ch.Category, IsVerified: ch.IsVerified})
}

// Officers lists the officer roster of a charity. It validates the charity
// exists, then returns only non-sensitive fields.
func (h *CharityHandler) Officers(c echo.Context) error {
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

	officers, err := h.Charities.ListOfficers(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicOfficer, 0, len(officers))
	for _, o := range officers {
		out = append(out, PublicOfficer{ID: o.ID, Name: o.Name, Title: o.Title})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Follow subscribes the caller to a charity. Following twice is a no-op;
// a previous unfollow is reactivated.
func (h *CharityHandler) Follow(c echo.Context) error {
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

	exists, err := h.Charities.Exists(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "charity not found"})
	}
	if err := h.Charities.Follow(ctx, uid, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "follow failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// Unfollow removes an active follow. Unfollowing a charity the caller does
// not follow is reported as not found.
func (h *CharityHandler) Unfollow(c echo.Context) error {
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

	if err := h.Charities.Unfollow(ctx, uid, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not following this charity"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unfollow failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// Followed lists the charities the caller actively follows.
func (h *CharityHandler) Followed(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	charities, err := h.Charities.ListFollowed(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicCharity, 0, len(charities))
	for _, ch := range charities {
		out = append(out, PublicCharity{ID: ch.ID, Name: ch.Name, Mission: ch.Mission, Category: ch.Category, IsVerified: ch.IsVerified})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

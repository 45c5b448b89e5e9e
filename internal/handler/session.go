package handler

import (
	"errors"   // unwrapping service errors
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository" // sentinel errors
	"github.com/jarthurreyes30-tech/charityhub-api/internal/service"    // session registry
)

// SessionHandler exposes the per-user session registry.
type SessionHandler struct {
	Registry *service.SessionRegistry
}

func NewSessionHandler(reg *service.SessionRegistry) *SessionHandler {
	return &SessionHandler{Registry: reg}
}

// List returns the caller's active sessions, newest first, with the current
// one flagged.
func (h *SessionHandler) List(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tokenID, _ := getTokenID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	sessions, err := h.Registry.List(ctx, uid, tokenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": sessions})
}

// Revoke ends one of the caller's sessions by id. A session belonging to a
// different user looks exactly like a missing one.
func (h *SessionHandler) Revoke(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID := c.Param("id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Registry.Revoke(ctx, uid, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"revoked": true})
}

// RevokeOthers ends every session except the one making the call.
func (h *SessionHandler) RevokeOthers(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tokenID, ok := getTokenID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := h.Registry.RevokeOthers(ctx, uid, tokenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"revoked_count": n})
}

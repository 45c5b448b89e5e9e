package handler

import (
	"errors"   // unwrapping service errors
	"net/http" // HTTP status codes
	"strconv"  // query param parsing

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository" // sentinel errors
	"github.com/jarthurreyes30-tech/charityhub-api/internal/service"    // email change workflow
)

// EmailChangeHandler exposes the email change workflow over HTTP.
type EmailChangeHandler struct {
	Svc *service.EmailChange
}

func NewEmailChangeHandler(svc *service.EmailChange) *EmailChangeHandler {
	return &EmailChangeHandler{Svc: svc}
}

type emailChangeReq struct {
	CurrentPassword      string `json:"current_password"`
	NewEmail             string `json:"new_email"`
	NewEmailConfirmation string `json:"new_email_confirmation"`
}

// Request starts an email change for the authenticated user. On success the
// verification link travels out of band; the response only acknowledges the
// request.
func (h *EmailChangeHandler) Request(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req emailChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Svc.Request(ctx, uid, req.CurrentPassword, req.NewEmail, req.NewEmailConfirmation); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": verr.Fields})
		}
		if errors.Is(err, service.ErrWrongPassword) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password is incorrect"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "request failed"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"message": "verification link sent to the new address"})
}

// Verify consumes a verification link. The route sits behind the signed link
// middleware, so by the time we are here the query signature already checked
// out; the stored pending record still decides the outcome.
func (h *EmailChangeHandler) Verify(c echo.Context) error {
	uid, err := strconv.ParseUint(c.QueryParam("user"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusGone, echo.Map{"error": "this link is invalid or has expired"})
	}
	token := c.QueryParam("token")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Svc.Verify(ctx, uid, token); err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredLink) {
			return c.JSON(http.StatusGone, echo.Map{"error": "this link is invalid or has expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "email address updated"})
}

// Pending reports the user's outstanding email change, if any. The token
// digest never leaves the server.
func (h *EmailChangeHandler) Pending(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Svc.PendingFor(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"pending": nil})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pending": echo.Map{
		"new_email":    p.NewEmail,
		"requested_at": p.CreatedAt,
		"expires_at":   p.ExpiresAt,
	}})
}

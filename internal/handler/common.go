package handler

import (
	"context" // request-scoped contexts for DB calls
	"time"    // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing
)

// dbTimeout bounds every DB call made from a handler.
const dbTimeout = 5 * time.Second

// reqCtx derives a context with the standard DB timeout from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID reads the user id placed into the context by the JWT middleware.
// The value may arrive as uint64 or float64 depending on how claims were decoded.
func getUserID(c echo.Context) (uint64, bool) {
	switch id := c.Get("user_id").(type) {
	case uint64:
		return id, true
	case float64:
		return uint64(id), true
	case int64:
		return uint64(id), true
	default:
		return 0, false
	}
}

// getTokenID reads the credential id ("tid" claim) of the current session.
func getTokenID(c echo.Context) (uint64, bool) {
	switch id := c.Get("token_id").(type) {
	case uint64:
		return id, true
	case float64:
		return uint64(id), true
	case int64:
		return uint64(id), true
	default:
		return 0, false
	}
}

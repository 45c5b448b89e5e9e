package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/jarthurreyes30-tech/charityhub-api/internal/utils"
)

// VerifySignedLink rejects any request whose query parameters do not carry a
// valid, unexpired signature for the request path.  It guards the
// email-change verification route and the storage download route, so
// tampered or stale links never reach a handler.  The handler behind it
// still performs its own record-level expiry check; the two expiries are
// deliberately independent.
func VerifySignedLink(signer *utils.LinkSigner) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            r := c.Request()
            // Links are signed over the escaped path, so keys containing
            // reserved characters survive the round trip.
            if !signer.Verify(r.URL.EscapedPath(), r.URL.Query()) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid or expired link"})
            }
            return next(c)
        }
    }
}

package middleware

// identity.go defines helper functions shared across middleware files. It
// provides a user identifier extraction used by the rate limiter's bucket
// keys. When no user is authenticated, "anon" is returned so unauthenticated
// traffic shares per-IP buckets.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user's id from
// the context, or "anon". JWTAuth stores the raw claim value, which decodes
// as float64 for numeric subjects, so the value is formatted rather than
// type-asserted.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}

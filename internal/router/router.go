package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/jarthurreyes30-tech/charityhub-api/internal/handler"    // handlers implementing endpoint logic
	"github.com/jarthurreyes30-tech/charityhub-api/internal/middleware" // JWT, role, rate limit, cache and signed-link middleware
	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"      // role names
	"github.com/jarthurreyes30-tech/charityhub-api/internal/utils"      // link signer
)

// Handlers collects every handler the router wires up. main builds one of
// these so route registration stays in a single place.
type Handlers struct {
	Auth        *handler.AuthHandler
	EmailChange *handler.EmailChangeHandler
	Sessions    *handler.SessionHandler
	Charities   *handler.CharityHandler
	SavedItems  *handler.SavedItemHandler
	Prefs       *handler.NotificationPrefHandler
	Payments    *handler.PaymentMethodHandler
	Tax         *handler.TaxInfoHandler
	Tickets     *handler.TicketHandler
	Messages    *handler.MessageHandler
	Reports     *handler.ReportHandler
	Documents   *handler.DocumentHandler
}

// Middleware collects cross-cutting middleware built in main. Any nil entry
// is simply skipped, so the service still runs without Redis.
type Middleware struct {
	RateLimit echo.MiddlewareFunc // Redis token bucket, applied to auth and email-change entry points
	Cache     echo.MiddlewareFunc // Redis response cache, applied to public read endpoints
}

// RegisterRoutes registers every route on the provided Echo instance.
func RegisterRoutes(e *echo.Echo, h Handlers, mw Middleware, jwtSecret string, signer *utils.LinkSigner) {
	// Health check used by load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// ----- unauthenticated -----

	// Auth entry points. The rate limiter sits in front of everything that
	// accepts credentials.
	auth := e.Group("/v1/auth")
	if mw.RateLimit != nil {
		auth.Use(mw.RateLimit)
	}
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Public charity directory. Read-only, so responses may be served from
	// the cache.
	pub := e.Group("/v1/charities")
	if mw.Cache != nil {
		pub.Use(mw.Cache)
	}
	pub.GET("", h.Charities.List)
	pub.GET("/:id", h.Charities.Get)
	pub.GET("/:id/officers", h.Charities.Officers)
	pub.GET("/:id/documents", h.Documents.ListByCharity)

	// Signed-link routes. The middleware checks the query signature and
	// expiry before the handler runs; no JWT is involved because these
	// links are opened from email clients and shared documents.
	signed := e.Group("", middleware.VerifySignedLink(signer))
	signed.GET("/v1/account/email/verify", h.EmailChange.Verify)
	signed.GET("/v1/storage/:key", h.Documents.Download)

	// ----- authenticated -----

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole(model.RoleDonor, model.RoleCharityAdmin, model.RoleAdmin))

	v1.GET("/me", h.Auth.Me)
	v1.POST("/auth/logout", h.Auth.Logout)

	// Email change. The request endpoint shares the credential rate limit
	// because it verifies the current password.
	if mw.RateLimit != nil {
		v1.POST("/account/email/change-request", h.EmailChange.Request, mw.RateLimit)
	} else {
		v1.POST("/account/email/change-request", h.EmailChange.Request)
	}
	v1.GET("/account/email/pending", h.EmailChange.Pending)

	// Session registry.
	v1.GET("/account/sessions", h.Sessions.List)
	v1.DELETE("/account/sessions/:id", h.Sessions.Revoke)
	v1.POST("/account/sessions/revoke-others", h.Sessions.RevokeOthers)

	// Follows.
	v1.POST("/charities/:id/follow", h.Charities.Follow)
	v1.DELETE("/charities/:id/follow", h.Charities.Unfollow)
	v1.GET("/me/follows", h.Charities.Followed)

	// Saved items.
	v1.POST("/me/saved-items", h.SavedItems.Save)
	v1.DELETE("/me/saved-items/:type/:id", h.SavedItems.Delete)
	v1.GET("/me/saved-items", h.SavedItems.List)

	// Notification preferences.
	v1.GET("/me/notification-preferences", h.Prefs.Get)
	v1.PUT("/me/notification-preferences", h.Prefs.Update)

	// Payment methods and tax info.
	v1.POST("/me/payment-methods", h.Payments.Create)
	v1.GET("/me/payment-methods", h.Payments.List)
	v1.PATCH("/me/payment-methods/:id", h.Payments.UpdateLabel)
	v1.POST("/me/payment-methods/:id/default", h.Payments.SetDefault)
	v1.DELETE("/me/payment-methods/:id", h.Payments.Delete)
	v1.GET("/me/tax-info", h.Tax.Get)
	v1.PUT("/me/tax-info", h.Tax.Put)

	// Support tickets.
	v1.POST("/support/tickets", h.Tickets.Create)
	v1.GET("/support/tickets", h.Tickets.List)
	v1.GET("/support/tickets/:id", h.Tickets.Get)
	v1.POST("/support/tickets/:id/messages", h.Tickets.AddMessage)

	// Direct messages.
	v1.POST("/messages", h.Messages.Send)
	v1.GET("/conversations", h.Messages.Conversations)
	v1.GET("/conversations/:userId", h.Messages.Thread)

	// Reporting, admins only. The cache sits behind the auth middleware so
	// unauthenticated requests never see a cached report.
	admin := e.Group("/v1/reports", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	if mw.Cache != nil {
		admin.Use(mw.Cache)
	}
	admin.GET("/platform", h.Reports.Platform)
}

package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/jarthurreyes30-tech/charityhub-api/internal/config"     // environment config loader
	"github.com/jarthurreyes30-tech/charityhub-api/internal/database"   // MySQL connection pool
	"github.com/jarthurreyes30-tech/charityhub-api/internal/handler"    // HTTP handlers
	"github.com/jarthurreyes30-tech/charityhub-api/internal/middleware" // rate limit and cache middleware
	"github.com/jarthurreyes30-tech/charityhub-api/internal/queue"      // outbound mail consumer
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository" // DB repositories
	"github.com/jarthurreyes30-tech/charityhub-api/internal/router"     // route registration
	"github.com/jarthurreyes30-tech/charityhub-api/internal/service"    // domain workflows
	"github.com/jarthurreyes30-tech/charityhub-api/internal/utils"      // link signer
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the response cache. Both degrade to
	// no-ops when it is unreachable.
	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	sessions := repository.NewSessionRepo(db)
	pending := repository.NewEmailChangeRepo(db)
	charities := repository.NewCharityRepo(db)
	saved := repository.NewSavedItemRepo(db)
	prefs := repository.NewNotificationPrefRepo(db)
	payments := repository.NewPaymentMethodRepo(db)
	tax := repository.NewTaxInfoRepo(db)
	tickets := repository.NewTicketRepo(db)
	messages := repository.NewMessageRepo(db)
	reports := repository.NewReportRepo(db)
	documents := repository.NewDocumentRepo(db)

	// Services.
	signer := utils.NewLinkSigner(cfg.AppURL, cfg.LinkSecret)
	mailer := service.NewQueueMailer()
	emailChange := service.NewEmailChange(users, pending, signer, mailer)
	registry := service.NewSessionRegistry(sessions, tokens)

	// Handlers.
	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users, tokens, sessions, registry),
		EmailChange: handler.NewEmailChangeHandler(emailChange),
		Sessions:    handler.NewSessionHandler(registry),
		Charities:   handler.NewCharityHandler(charities),
		SavedItems:  handler.NewSavedItemHandler(saved, charities),
		Prefs:       handler.NewNotificationPrefHandler(prefs),
		Payments:    handler.NewPaymentMethodHandler(payments),
		Tax:         handler.NewTaxInfoHandler(tax),
		Tickets:     handler.NewTicketHandler(tickets),
		Messages:    handler.NewMessageHandler(messages, users),
		Reports:     handler.NewReportHandler(reports),
		Documents:   handler.NewDocumentHandler(documents, charities, signer, cfg.DataDir),
	}

	var mw router.Middleware
	if rdb != nil {
		mw.RateLimit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		mw.Cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	e := echo.New()
	router.RegisterRoutes(e, h, mw, cfg.JWTSecret, signer)

	// The mail consumer drains the outbound queue in the background. A dead
	// broker only disables mail delivery, never the API.
	go func() {
		if err := queue.StartMailConsumer(); err != nil {
			log.Printf("mail consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

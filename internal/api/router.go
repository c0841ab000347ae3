package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sharebite/donation-system/internal/api/handler"
	"github.com/sharebite/donation-system/internal/core/ports"
	"github.com/sharebite/donation-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The db and rdb handles are only used by the readiness probe; business
// dependencies arrive pre-wired as services.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	donations ports.DonationService,
	claims ports.ClaimService,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// The web client is served from a separate static host.
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("sharebite"))

	// --- Donation lifecycle routes ---
	donationHandler := handler.NewDonationHandler(donations, claims)

	e.POST("/donation", donationHandler.Create)
	e.POST("/claim_donation", donationHandler.Claim)
	e.GET("/donations", donationHandler.List)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

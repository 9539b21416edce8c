package main

import (
	"context"
	"os"
	"time"

	"careerhub-api/config"
	"careerhub-api/database"
	routes "careerhub-api/internal/app/http"
	"careerhub-api/internal/app/http/middleware"
	"careerhub-api/internal/domain/billing"
	"careerhub-api/internal/infra/counter"
	stripeinfra "careerhub-api/internal/infra/stripe"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	config.LoadEnv()
	database.InitDB()
	stripeinfra.LoadPrices()
	stripe.Key = config.STRIPE_SECRET_KEY
	middleware.InitOIDC(context.Background())

	ctr := counter.NewRedisCounter(config.REDIS_ADDR, config.REDIS_PASSWORD)

	retention := time.Duration(config.PAYMENT_RETENTION_DAYS) * 24 * time.Hour
	billing.StartRetentionSweep(database.DB, 24*time.Hour, retention)

	r := gin.Default()

	// CORS before routes: every response is restricted to the one
	// configured origin, pre-flight included.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())

	routes.RegisterRoutes(r, ctr)

	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

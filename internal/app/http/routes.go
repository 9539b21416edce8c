package routes

import (
	"careerhub-api/config"
	"careerhub-api/internal/api/billing"
	stripewebhooks "careerhub-api/internal/api/stripewebhook"
	"careerhub-api/internal/app/http/middleware"
	"careerhub-api/internal/infra/counter"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, ctr counter.Counter) {
	// Registered before the rate limiter on purpose: the webhook's caller
	// is the payment processor, not a browser, and its raw body must reach
	// the signature check untouched.
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.Use(middleware.RateLimit(ctr, "api", config.RATE_LIMIT_API))

	// Authenticated billing surface; tighter rate budget than general API
	// traffic since every route here can reach the payment processor.
	auth := r.Group("/billing")
	auth.Use(middleware.RateLimit(ctr, "billing", config.RATE_LIMIT_BILLING))
	auth.Use(middleware.AuthMiddleware())
	auth.Use(middleware.SanitizeInputMiddleware())

	auth.GET("/plan", billing.GetPlan)
	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/checkout", billing.CreateCheckoutSession)
	auth.POST("/portal", billing.CreateBillingPortal)
	auth.POST("/cancel", billing.CancelSubscription)
}

package middleware

import (
	"net/http"
	"time"

	"careerhub-api/internal/infra/counter"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimit enforces a fixed per-minute budget keyed by tier, client IP and
// route. Billing routes get a tighter budget than general traffic; wire the
// tier and limit at registration time. The tier keeps stacked limiters on
// separate counters so a request passing through both only spends one unit
// of each budget. When the counter backend is unreachable the request is
// let through rather than turning an infra outage into a user-facing one.
func RateLimit(ctr counter.Counter, tier string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + tier + ":" + c.ClientIP() + ":" + c.FullPath()

		n, err := ctr.Increment(c.Request.Context(), key, time.Minute)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limit counter unavailable")
			c.Next()
			return
		}

		if n > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}

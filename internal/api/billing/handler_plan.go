package billing

import (
	"net/http"

	"careerhub-api/database"
	"careerhub-api/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
)

// GetPlan serves the current entitlement. Reads through the local store
// only, never the payment processor: this runs on every authenticated
// request in the product, so it must stay a single key lookup.
func GetPlan(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "User not identified"})
		return
	}

	rec, err := entitlement.NewStore(database.DB).Get(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to read entitlement"})
		return
	}

	// Absence is the free tier, not an error.
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"plan": entitlement.PlanFree, "trialEndsAt": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": rec.Plan, "trialEndsAt": rec.TrialEndsAt})
}

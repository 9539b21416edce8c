package billing

import (
	"net/http"

	"careerhub-api/database"
	"careerhub-api/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

func GetPaymentHistory(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "User not identified"})
		return
	}

	payments, err := billing.PaymentsForUID(database.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

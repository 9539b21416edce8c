package billing

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StartRetentionSweep prunes payment rows older than maxAge once per
// interval. Runs until the process exits.
func StartRetentionSweep(db *gorm.DB, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-maxAge)
			res := db.Where("created_at < ?", cutoff).Delete(&Payment{})
			if res.Error != nil {
				log.Error().Err(res.Error).Msg("payment retention sweep failed")
				continue
			}
			if res.RowsAffected > 0 {
				log.Info().Int64("pruned", res.RowsAffected).Msg("payment retention sweep")
			}
		}
	}()
}

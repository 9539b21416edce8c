package billing

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payment is one completed checkout, recorded from the webhook pipeline.
// The session id is unique so webhook redelivery cannot duplicate rows.
type Payment struct {
	ID                   uint   `gorm:"primaryKey"`
	UID                  string `gorm:"column:uid;not null;index"`
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	Plan                 string
	AmountCents          int64
	Currency             string
	CreatedAt            time.Time
}

func (Payment) TableName() string {
	return "payments"
}

// RecordPayment inserts a payment row, ignoring duplicates of the same
// checkout session.
func RecordPayment(db *gorm.DB, p *Payment) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(p).Error
}

// PaymentsForUID returns the caller's payment history, newest first.
func PaymentsForUID(db *gorm.DB, uid string) ([]Payment, error) {
	var payments []Payment
	err := db.Where("uid = ?", uid).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

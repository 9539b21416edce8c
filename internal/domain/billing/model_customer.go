package billing

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerMapping relates a user id to its Stripe customer. Created once on
// the first checkout or portal request and never reassigned: at most one
// customer per uid.
type CustomerMapping struct {
	ID               uint   `gorm:"primaryKey"`
	UID              string `gorm:"column:uid;not null;uniqueIndex:idx_customer_mappings_uid"`
	StripeCustomerID string `gorm:"column:stripe_customer_id;not null;uniqueIndex:idx_customer_mappings_stripe_customer_id"`
	CreatedAt        time.Time
}

func (CustomerMapping) TableName() string {
	return "customer_mappings"
}

// CustomerIDForUID returns the mapped Stripe customer id for uid, with
// ok=false when no mapping exists yet.
func CustomerIDForUID(db *gorm.DB, uid string) (string, bool, error) {
	var m CustomerMapping
	if err := db.Where("uid = ?", uid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return m.StripeCustomerID, true, nil
}

// SaveCustomerMapping persists the uid→customer relation. Insert-or-ignore:
// a concurrent first checkout must not overwrite an existing mapping.
func SaveCustomerMapping(db *gorm.DB, uid, customerID string) error {
	m := CustomerMapping{UID: uid, StripeCustomerID: customerID}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoNothing: true,
	}).Create(&m).Error
}

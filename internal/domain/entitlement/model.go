package entitlement

import "time"

// Record is the stored entitlement for one user. Absence of a row is
// semantically the free tier; the default is constructed by readers, not
// persisted.
type Record struct {
	UID         string `gorm:"primaryKey;column:uid"`
	Plan        Plan   `gorm:"type:varchar(20);not null"`
	TrialEndsAt *time.Time
	UpdatedAt   time.Time
}

func (Record) TableName() string {
	return "entitlements"
}

package entitlement

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the only write path to the entitlements table. Writes are single
// key upserts, last write wins; there is no version check (see DESIGN.md).
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the record for uid, or nil when none exists. A miss is not an
// error; the free-tier default belongs to the caller.
func (s *Store) Get(uid string) (*Record, error) {
	var rec Record
	if err := s.db.Where("uid = ?", uid).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Put writes the entitlement for uid, creating or replacing the row.
func (s *Store) Put(uid string, plan Plan, trialEndsAt *time.Time) error {
	if !plan.Valid() {
		return fmt.Errorf("invalid plan %q", plan)
	}
	rec := Record{
		UID:         uid,
		Plan:        plan,
		TrialEndsAt: trialEndsAt,
		UpdatedAt:   time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "trial_ends_at", "updated_at"}),
	}).Create(&rec).Error
}

// Clear removes the record for uid. A subsequent Get misses, which readers
// interpret as the free tier.
func (s *Store) Clear(uid string) error {
	return s.db.Where("uid = ?", uid).Delete(&Record{}).Error
}

package billing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CustomerMapping{}, &Payment{}))
	return db
}

func TestCustomerMappingIsImmutable(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, SaveCustomerMapping(db, "u1", "cus_first"))
	// A second save for the same uid must not reassign the customer.
	require.NoError(t, SaveCustomerMapping(db, "u1", "cus_second"))

	id, ok, err := CustomerIDForUID(db, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "cus_first", id)
}

func TestCustomerIDForUIDMiss(t *testing.T) {
	db := newTestDB(t)

	_, ok, err := CustomerIDForUID(db, "nobody")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecordPaymentIgnoresRedelivery(t *testing.T) {
	db := newTestDB(t)

	p := &Payment{UID: "u1", StripeSessionID: "cs_1", Plan: "pro", AmountCents: 2900, Currency: "eur"}
	require.NoError(t, RecordPayment(db, p))
	require.NoError(t, RecordPayment(db, &Payment{UID: "u1", StripeSessionID: "cs_1", Plan: "pro", AmountCents: 2900, Currency: "eur"}))

	payments, err := PaymentsForUID(db, "u1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
}

func TestPaymentsForUIDNewestFirst(t *testing.T) {
	db := newTestDB(t)

	older := &Payment{UID: "u1", StripeSessionID: "cs_old", Plan: "essential", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Payment{UID: "u1", StripeSessionID: "cs_new", Plan: "pro", CreatedAt: time.Now()}
	require.NoError(t, RecordPayment(db, older))
	require.NoError(t, RecordPayment(db, newer))
	require.NoError(t, RecordPayment(db, &Payment{UID: "u2", StripeSessionID: "cs_other", Plan: "pro"}))

	payments, err := PaymentsForUID(db, "u1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, "cs_new", payments[0].StripeSessionID)
	require.Equal(t, "cs_old", payments[1].StripeSessionID)
}

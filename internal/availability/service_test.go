package availability

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

func setupAvailabilityTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:availability_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  user_email TEXT NOT NULL DEFAULT '',
  user_name TEXT NOT NULL DEFAULT '',
  phone_number TEXT NOT NULL DEFAULT '',
  subtotal INTEGER NOT NULL DEFAULT 0,
  tax INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_method TEXT NOT NULL DEFAULT 'razorpay',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  gateway_order_id TEXT,
  gateway_payment_id TEXT,
  payment_verified_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	blockedDates := `
CREATE TABLE IF NOT EXISTS blocked_dates (
  id TEXT PRIMARY KEY,
  camera_id TEXT NOT NULL,
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  reason TEXT,
  is_full_day INTEGER NOT NULL DEFAULT 1,
  time_slot TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	reservedDates := `
CREATE TABLE IF NOT EXISTS reserved_dates (
  id TEXT PRIMARY KEY,
  camera_id TEXT NOT NULL,
  order_id TEXT NOT NULL,
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  is_full_day INTEGER NOT NULL DEFAULT 1,
  time_slot TEXT,
  full_day_type TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, stmt := range []string{orders, blockedDates, reservedDates} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func insertOrder(t *testing.T, db *gorm.DB, status enums.OrderStatus) uuid.UUID {
	t.Helper()
	order := models.Order{
		ID:            uuid.New(),
		Status:        status,
		PaymentMethod: enums.PaymentMethodRazorpay,
		PaymentStatus: enums.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func TestCheckNoBlocksIsAvailable(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	cameraID := uuid.New()
	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 1)))

	res, err := svc.Check(context.Background(), cameraID, date(2024, 6, 10), date(2024, 6, 12), fullDayReq(enums.FullDayType9Hrs))
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Empty(t, res.Reason)
}

func TestCheckAdminBlockMakesUnavailable(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	cameraID := uuid.New()
	block := models.BlockedDate{
		ID:        uuid.New(),
		CameraID:  cameraID,
		StartDate: date(2024, 6, 11),
		EndDate:   date(2024, 6, 11),
		IsFullDay: true,
	}
	require.NoError(t, db.Create(&block).Error)

	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 1)))

	res, err := svc.Check(context.Background(), cameraID, date(2024, 6, 10), date(2024, 6, 12), fullDayReq(enums.FullDayType9Hrs))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "Fully reserved", res.Reason)

	// A different camera is unaffected.
	other, err := svc.Check(context.Background(), uuid.New(), date(2024, 6, 10), date(2024, 6, 12), fullDayReq(enums.FullDayType9Hrs))
	require.NoError(t, err)
	assert.True(t, other.Available)
}

func TestCheckSlotConflictReportsSlots(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	cameraID := uuid.New()
	orderID := insertOrder(t, db, enums.OrderStatusConfirmed)
	reservation := models.ReservedDate{
		ID:        uuid.New(),
		CameraID:  cameraID,
		OrderID:   orderID,
		StartDate: date(2024, 6, 10),
		EndDate:   date(2024, 6, 10),
		TimeSlot:  slot(enums.TimeSlotMorning),
	}
	require.NoError(t, db.Create(&reservation).Error)

	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 1)))

	taken, err := svc.Check(context.Background(), cameraID, date(2024, 6, 10), date(2024, 6, 10), halfDayReq(enums.TimeSlotMorning))
	require.NoError(t, err)
	assert.False(t, taken.Available)
	assert.Equal(t, "Reserved for: morning", taken.Reason)

	free, err := svc.Check(context.Background(), cameraID, date(2024, 6, 10), date(2024, 6, 10), halfDayReq(enums.TimeSlotAfternoon))
	require.NoError(t, err)
	assert.True(t, free.Available)
}

func TestCancelledOrderReservationsDoNotBlock(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	cameraID := uuid.New()
	orderID := insertOrder(t, db, enums.OrderStatusCancelled)
	reservation := models.ReservedDate{
		ID:        uuid.New(),
		CameraID:  cameraID,
		OrderID:   orderID,
		StartDate: date(2024, 6, 10),
		EndDate:   date(2024, 6, 10),
		IsFullDay: true,
	}
	require.NoError(t, db.Create(&reservation).Error)

	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 1)))

	res, err := svc.Check(context.Background(), cameraID, date(2024, 6, 10), date(2024, 6, 10), fullDayReq(enums.FullDayType24Hrs))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckSameDayWithTimeOfDayStillConflicts(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	cameraID := uuid.New()
	orderID := insertOrder(t, db, enums.OrderStatusConfirmed)
	reservation := models.ReservedDate{
		ID:        uuid.New(),
		CameraID:  cameraID,
		OrderID:   orderID,
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 1),
		IsFullDay: true,
	}
	require.NoError(t, db.Create(&reservation).Error)

	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 5, 1)))

	// A request carrying a time-of-day is the same calendar day as the
	// midnight-stored reservation and must conflict.
	evening := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	res, err := svc.Check(context.Background(), cameraID, evening, evening, fullDayReq(enums.FullDayType9Hrs))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "Fully reserved", res.Reason)

	midnight, err := svc.Check(context.Background(), cameraID, date(2024, 6, 1), date(2024, 6, 1), fullDayReq(enums.FullDayType9Hrs))
	require.NoError(t, err)
	assert.False(t, midnight.Available)
}

func TestCheckPastWindowUnavailable(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 15)))

	res, err := svc.Check(context.Background(), uuid.New(), date(2024, 6, 10), date(2024, 6, 12), halfDayReq(enums.TimeSlotMorning))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "Fully reserved", res.Reason)
}

func TestCheckValidatesRange(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 1)))

	_, err := svc.Check(context.Background(), uuid.New(), date(2024, 6, 12), date(2024, 6, 10), halfDayReq(enums.TimeSlotMorning))
	require.Error(t, err)

	_, err = svc.Check(context.Background(), uuid.New(), time.Time{}, date(2024, 6, 10), halfDayReq(enums.TimeSlotMorning))
	require.Error(t, err)
}

func TestCalendarMarksBlockedDays(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	cameraID := uuid.New()
	block := models.BlockedDate{
		ID:        uuid.New(),
		CameraID:  cameraID,
		StartDate: date(2024, 6, 11),
		EndDate:   date(2024, 6, 12),
		IsFullDay: true,
	}
	require.NoError(t, db.Create(&block).Error)

	svc := NewServiceWithClock(NewRepository(db), testLogger(), fixedClock(date(2024, 6, 1)))

	days, err := svc.Calendar(context.Background(), cameraID, date(2024, 6, 10), date(2024, 6, 13), fullDayReq(enums.FullDayType9Hrs))
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.True(t, days[0].Available)
	assert.False(t, days[1].Available)
	assert.False(t, days[2].Available)
	assert.True(t, days[3].Available)
	assert.Equal(t, "Fully reserved", days[1].Reason)
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// ReservedDate is a customer-booking-imposed unavailability window. It is
// created in the same transaction as its order's confirmation and mirrors
// exactly the date range and slot/sub-tier that was priced.
type ReservedDate struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CameraID    uuid.UUID          `gorm:"column:camera_id;type:uuid;not null;index:idx_reserved_dates_range,priority:1"`
	OrderID     uuid.UUID          `gorm:"column:order_id;type:uuid;not null;index"`
	StartDate   time.Time          `gorm:"column:start_date;type:date;not null;index:idx_reserved_dates_range,priority:2"`
	EndDate     time.Time          `gorm:"column:end_date;type:date;not null;index:idx_reserved_dates_range,priority:3"`
	IsFullDay   bool               `gorm:"column:is_full_day;not null;default:true"`
	TimeSlot    *enums.TimeSlot    `gorm:"column:time_slot"`
	FullDayType *enums.FullDayType `gorm:"column:full_day_type"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

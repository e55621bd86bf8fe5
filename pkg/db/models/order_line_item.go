package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// OrderLineItem captures the snapshot of a single rental within an order:
// the camera, the booked window, and the price as charged.
type OrderLineItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	CameraID   uuid.UUID `gorm:"column:camera_id;type:uuid;not null"`
	CameraSlug string    `gorm:"column:camera_slug;not null"`
	Name       string    `gorm:"column:name;not null"`

	RentalType  enums.RentalType   `gorm:"column:rental_type;not null"`
	TimeSlot    *enums.TimeSlot    `gorm:"column:time_slot"`
	FullDayType *enums.FullDayType `gorm:"column:full_day_type"`
	StartDate   time.Time          `gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time          `gorm:"column:end_date;type:date;not null"`

	UnitPrice      int64 `gorm:"column:unit_price;not null"`
	Quantity       int   `gorm:"column:quantity;not null"`
	Days           int   `gorm:"column:days;not null;default:1"`
	AccessoryTotal int64 `gorm:"column:accessory_total;not null;default:0"`
	Total          int64 `gorm:"column:total;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

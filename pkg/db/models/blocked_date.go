package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// BlockedDate is an admin-imposed unavailability window for a camera.
// Rows are never mutated in place; edits are delete + recreate.
type BlockedDate struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CameraID  uuid.UUID       `gorm:"column:camera_id;type:uuid;not null;index:idx_blocked_dates_range,priority:1"`
	StartDate time.Time       `gorm:"column:start_date;type:date;not null;index:idx_blocked_dates_range,priority:2"`
	EndDate   time.Time       `gorm:"column:end_date;type:date;not null;index:idx_blocked_dates_range,priority:3"`
	Reason    *string         `gorm:"column:reason"`
	IsFullDay bool            `gorm:"column:is_full_day;not null;default:true"`
	TimeSlot  *enums.TimeSlot `gorm:"column:time_slot"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

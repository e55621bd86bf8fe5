package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// Repository loads the merged block view for a camera: admin blocked
// dates plus reserved dates from live orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BlocksForCamera(ctx context.Context, cameraID uuid.UUID) ([]DateBlock, error)
	BlocksForCameraRange(ctx context.Context, cameraID uuid.UUID, start, end time.Time) ([]DateBlock, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an availability repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) BlocksForCamera(ctx context.Context, cameraID uuid.UUID) ([]DateBlock, error) {
	return r.load(ctx, cameraID, time.Time{}, time.Time{})
}

// BlocksForCameraRange narrows the load to blocks overlapping [start, end].
func (r *repository) BlocksForCameraRange(ctx context.Context, cameraID uuid.UUID, start, end time.Time) ([]DateBlock, error) {
	return r.load(ctx, cameraID, start, end)
}

func (r *repository) load(ctx context.Context, cameraID uuid.UUID, start, end time.Time) ([]DateBlock, error) {
	ranged := !start.IsZero() && !end.IsZero()

	var blocked []models.BlockedDate
	q := r.db.WithContext(ctx).Where("camera_id = ?", cameraID)
	if ranged {
		q = q.Where("start_date <= ? AND end_date >= ?", end, start)
	}
	if err := q.Find(&blocked).Error; err != nil {
		return nil, err
	}

	// Reservations belonging to cancelled orders no longer block dates.
	var reserved []models.ReservedDate
	q = r.db.WithContext(ctx).
		Where("camera_id = ?", cameraID).
		Where("order_id IN (?)", r.db.WithContext(ctx).
			Model(&models.Order{}).
			Select("id").
			Where("status <> ?", enums.OrderStatusCancelled))
	if ranged {
		q = q.Where("start_date <= ? AND end_date >= ?", end, start)
	}
	if err := q.Find(&reserved).Error; err != nil {
		return nil, err
	}

	blocks := make([]DateBlock, 0, len(blocked)+len(reserved))
	for _, b := range blocked {
		blocks = append(blocks, DateBlock{
			Start:     b.StartDate,
			End:       b.EndDate,
			IsFullDay: b.IsFullDay,
			TimeSlot:  b.TimeSlot,
		})
	}
	for _, res := range reserved {
		blocks = append(blocks, DateBlock{
			Start:       res.StartDate,
			End:         res.EndDate,
			IsFullDay:   res.IsFullDay,
			TimeSlot:    res.TimeSlot,
			FullDayType: res.FullDayType,
		})
	}
	return blocks, nil
}

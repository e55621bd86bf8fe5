package analytics

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
)

// DashboardStats is the admin dashboard headline row.
type DashboardStats struct {
	TotalOrders     int64 `json:"totalOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	ConfirmedOrders int64 `json:"confirmedOrders"`
	CompletedOrders int64 `json:"completedOrders"`
	CancelledOrders int64 `json:"cancelledOrders"`
	TotalRevenue    int64 `json:"totalRevenue"`
}

// MonthlyIncome is revenue for one calendar month.
type MonthlyIncome struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
}

// CameraBookings counts bookings per camera.
type CameraBookings struct {
	CameraSlug string `json:"cameraSlug"`
	Name       string `json:"name"`
	Bookings   int64  `json:"bookings"`
	Revenue    int64  `json:"revenue"`
}

// Service answers admin reporting queries.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	MonthlyIncomes(ctx context.Context, months int) ([]MonthlyIncome, error)
	PopularCameras(ctx context.Context, limit int) ([]CameraBookings, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the analytics service.
func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	type statusCount struct {
		Status enums.OrderStatus
		Count  int64
	}
	var counts []statusCount
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "counting orders")
	}
	for _, c := range counts {
		stats.TotalOrders += c.Count
		switch c.Status {
		case enums.OrderStatusPending:
			stats.PendingOrders = c.Count
		case enums.OrderStatusConfirmed:
			stats.ConfirmedOrders = c.Count
		case enums.OrderStatusCompleted:
			stats.CompletedOrders = c.Count
		case enums.OrderStatusCancelled:
			stats.CancelledOrders = c.Count
		}
	}

	err = s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Where("status <> ?", enums.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "summing revenue")
	}
	return stats, nil
}

// MonthlyIncomes aggregates paid revenue per calendar month. Grouping
// happens in Go so the query stays dialect independent.
func (s *service) MonthlyIncomes(ctx context.Context, months int) ([]MonthlyIncome, error) {
	if months <= 0 {
		months = 12
	}

	type paidOrder struct {
		Total     int64
		CreatedAt time.Time
	}
	var paid []paidOrder
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Where("status <> ?", enums.OrderStatusCancelled).
		Select("total, created_at").
		Scan(&paid).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading paid orders")
	}

	byMonth := map[string]*MonthlyIncome{}
	for _, order := range paid {
		month := order.CreatedAt.UTC().Format("2006-01")
		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlyIncome{Month: month}
			byMonth[month] = entry
		}
		entry.Revenue += order.Total
		entry.Orders++
	}

	out := make([]MonthlyIncome, 0, len(byMonth))
	for _, entry := range byMonth {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	if len(out) > months {
		out = out[:months]
	}
	return out, nil
}

func (s *service) PopularCameras(ctx context.Context, limit int) ([]CameraBookings, error) {
	if limit <= 0 {
		limit = 10
	}

	var out []CameraBookings
	err := s.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Select("order_line_items.camera_slug, order_line_items.name, COUNT(*) AS bookings, COALESCE(SUM(order_line_items.total), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_line_items.order_id").
		Where("orders.payment_status = ?", enums.PaymentStatusPaid).
		Where("orders.status <> ?", enums.OrderStatusCancelled).
		Group("order_line_items.camera_slug, order_line_items.name").
		Order("bookings DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "ranking cameras")
	}
	return out, nil
}

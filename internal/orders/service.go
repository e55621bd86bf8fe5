package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/internal/availability"
	"github.com/sreedhargoud/camrental-backend/internal/cameras"
	"github.com/sreedhargoud/camrental-backend/internal/pricing"
	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cameraCatalog interface {
	GetBySlug(ctx context.Context, slug string) (*models.Camera, error)
}

// Service owns the order lifecycle up to payment: creation with
// server-side pricing, reads, cancellation and completion. Payment
// confirmation and date reservation live in the booking finalizer.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetForUser(ctx context.Context, id uuid.UUID, userID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Cancel(ctx context.Context, id uuid.UUID, actorUserID string, isAdmin bool) (*models.Order, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo    Repository
	catalog cameraCatalog
	avail   availability.Service
	tx      txRunner
	logg    *logger.Logger
}

// NewService builds the orders service.
func NewService(repo Repository, catalog cameraCatalog, avail availability.Service, tx txRunner, logg *logger.Logger) Service {
	return &service{repo: repo, catalog: catalog, avail: avail, tx: tx, logg: logg}
}

// Create prices and persists a pending order. Every line item is priced
// from the catalog and pre-checked for availability; the authoritative
// re-check happens again at finalization.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	orderID := uuid.New()
	items := make([]models.OrderLineItem, 0, len(input.Items))
	lines := make([]pricing.Line, 0, len(input.Items))

	for i, item := range input.Items {
		// JSON dates may carry a time-of-day; everything downstream
		// (pricing, availability, reservations) is day-granular.
		item.StartDate = dateOnly(item.StartDate)
		if !item.EndDate.IsZero() {
			item.EndDate = dateOnly(item.EndDate)
		}

		camera, err := s.catalog.GetBySlug(ctx, item.CameraSlug)
		if err != nil {
			return nil, err
		}
		if !camera.Available {
			return nil, apperrors.New(apperrors.CodeValidation,
				fmt.Sprintf("camera %q is not rentable", item.CameraSlug))
		}

		accessories := make([]int64, 0, len(item.Accessories))
		for _, acc := range item.Accessories {
			accessories = append(accessories, acc.Price)
		}

		line, err := pricing.PriceLine(cameras.PricingTable(camera), pricing.LineRequest{
			RentalType:  item.RentalType,
			FullDayType: item.FullDayType,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Quantity:    item.Quantity,
			Accessories: accessories,
		})
		if err != nil {
			return nil, err
		}

		end := item.EndDate
		if item.RentalType == enums.RentalTypeHalfDay {
			end = item.StartDate
		}
		result, err := s.avail.Check(ctx, camera.ID, item.StartDate, end, availability.Request{
			RentalType:  item.RentalType,
			TimeSlot:    item.TimeSlot,
			FullDayType: item.FullDayType,
		})
		if err != nil {
			return nil, err
		}
		if !result.Available {
			return nil, apperrors.New(apperrors.CodeConflict,
				fmt.Sprintf("item %d: camera %q is unavailable for the requested dates", i+1, item.CameraSlug)).
				WithDetails(map[string]string{"reason": result.Reason})
		}

		lines = append(lines, line)
		items = append(items, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			CameraID:       camera.ID,
			CameraSlug:     camera.Slug,
			Name:           camera.Name,
			RentalType:     item.RentalType,
			TimeSlot:       item.TimeSlot,
			FullDayType:    item.FullDayType,
			StartDate:      item.StartDate,
			EndDate:        end,
			UnitPrice:      line.UnitPrice,
			Quantity:       item.Quantity,
			Days:           line.Days,
			AccessoryTotal: line.AccessoryTotal,
			Total:          line.Total,
		})
	}

	subtotal, tax, total := pricing.Totals(lines)
	order := &models.Order{
		ID:            orderID,
		UserID:        input.UserID,
		UserEmail:     input.UserEmail,
		UserName:      input.UserName,
		PhoneNumber:   input.PhoneNumber,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        enums.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enums.PaymentStatusPending,
		Items:         items,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating order")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(ctx, "order created")
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

func (s *service) GetForUser(ctx context.Context, id uuid.UUID, userID string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		// Hide the order's existence from non-owners.
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing orders")
	}
	return orders, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing orders")
	}
	return orders, nil
}

// Cancel transitions an order to cancelled and releases its reserved
// dates in the same transaction, returning them to availability.
func (s *service) Cancel(ctx context.Context, id uuid.UUID, actorUserID string, isAdmin bool) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != actorUserID {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	if !order.Status.CanTransitionTo(enums.OrderStatusCancelled) {
		return nil, apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be cancelled", order.Status))
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateStatus(ctx, id, enums.OrderStatusCancelled); err != nil {
			return err
		}
		return repo.DeleteReservedDates(ctx, id)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "cancelling order")
	}

	ctx = s.logg.WithOrderID(ctx, id.String())
	s.logg.Info(ctx, "order cancelled, reserved dates released")
	order.Status = enums.OrderStatusCancelled
	return order, nil
}

// Complete marks a confirmed order as fulfilled.
func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enums.OrderStatusCompleted) {
		return nil, apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be completed", order.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, enums.OrderStatusCompleted); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "completing order")
	}
	order.Status = enums.OrderStatusCompleted
	return order, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateCreateInput(input CreateInput) error {
	if strings.TrimSpace(input.UserID) == "" {
		return apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if !input.PaymentMethod.IsValid() {
		return apperrors.New(apperrors.CodeValidation, "unknown payment method")
	}
	if len(input.Items) == 0 {
		return apperrors.New(apperrors.CodeValidation, "order needs at least one item")
	}
	for i, item := range input.Items {
		switch item.RentalType {
		case enums.RentalTypeHalfDay:
			if item.TimeSlot == nil || !item.TimeSlot.IsValid() {
				return apperrors.New(apperrors.CodeValidation,
					fmt.Sprintf("item %d: half-day rentals require a valid time slot", i+1))
			}
		case enums.RentalTypeFullDay:
			if item.FullDayType == nil || !item.FullDayType.IsValid() {
				return apperrors.New(apperrors.CodeValidation,
					fmt.Sprintf("item %d: full-day rentals require a valid full-day type", i+1))
			}
		default:
			return apperrors.New(apperrors.CodeValidation,
				fmt.Sprintf("item %d: unknown rental type %q", i+1, item.RentalType))
		}
	}
	return nil
}

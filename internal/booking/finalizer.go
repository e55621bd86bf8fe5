package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/internal/availability"
	"github.com/sreedhargoud/camrental-backend/internal/orders"
	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
	"github.com/sreedhargoud/camrental-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier delivers the confirmation message. Failures are logged and
// counted, never propagated: notification is best-effort.
type Notifier interface {
	OrderConfirmed(ctx context.Context, order *models.Order) error
}

// Finalizer turns a paid-for pending order into a confirmed one,
// atomically with its date reservations.
type Finalizer interface {
	Finalize(ctx context.Context, orderID uuid.UUID, gatewayPaymentID string) (*models.Order, error)
}

type finalizer struct {
	repo     orders.Repository
	avail    availability.Service
	tx       txRunner
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewFinalizer builds the booking finalizer.
func NewFinalizer(repo orders.Repository, avail availability.Service, tx txRunner, notifier Notifier, m *metrics.BookingMetrics, logg *logger.Logger) Finalizer {
	return &finalizer{repo: repo, avail: avail, tx: tx, notifier: notifier, metrics: m, logg: logg, now: time.Now}
}

// NewFinalizerWithClock builds the finalizer with a fixed clock for tests.
func NewFinalizerWithClock(repo orders.Repository, avail availability.Service, tx txRunner, notifier Notifier, m *metrics.BookingMetrics, logg *logger.Logger, now func() time.Time) Finalizer {
	return &finalizer{repo: repo, avail: avail, tx: tx, notifier: notifier, metrics: m, logg: logg, now: now}
}

// Finalize is invoked only after the payment gateway has confirmed the
// charge. Inside one transaction it serializes writers per camera,
// re-checks every line item's window, flips the order to
// confirmed/paid and writes one reservation per line item. Any conflict
// aborts the whole booking; no partial reservations survive.
//
// Replays are tolerated: an order already confirmed with the same
// payment id returns successfully without writing anything, which is
// what retried gateway callbacks need.
func (f *finalizer) Finalize(ctx context.Context, orderID uuid.UUID, gatewayPaymentID string) (*models.Order, error) {
	started := f.now()
	ctx = f.logg.WithOrderID(ctx, orderID.String())

	var confirmed *models.Order
	err := f.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := f.repo.WithTx(tx)
		avail := f.avail.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "order not found")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "loading order")
		}

		if order.Status == enums.OrderStatusConfirmed && order.PaymentStatus == enums.PaymentStatusPaid {
			if order.GatewayPaymentID != nil && *order.GatewayPaymentID == gatewayPaymentID {
				confirmed = order
				return nil
			}
			return apperrors.New(apperrors.CodeStateConflict, "order already confirmed with a different payment")
		}
		if order.Status != enums.OrderStatusPending {
			return apperrors.New(apperrors.CodeStateConflict,
				fmt.Sprintf("order in status %q cannot be finalized", order.Status))
		}

		// Locks must be acquired in one global order, or two multi-camera
		// orders could deadlock each other.
		for _, cameraID := range distinctCameraIDs(order.Items) {
			if err := lockCamera(tx, cameraID); err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "locking camera")
			}
		}

		for _, item := range order.Items {
			result, err := avail.Check(ctx, item.CameraID, item.StartDate, item.EndDate, availability.Request{
				RentalType:  item.RentalType,
				TimeSlot:    item.TimeSlot,
				FullDayType: item.FullDayType,
			})
			if err != nil {
				return err
			}
			if !result.Available {
				return apperrors.New(apperrors.CodeConflict,
					fmt.Sprintf("camera %q is no longer available for the booked dates", item.CameraSlug)).
					WithDetails(map[string]string{"reason": result.Reason})
			}
		}

		if err := repo.MarkPaid(ctx, order.ID, gatewayPaymentID, f.now()); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "marking order paid")
		}
		for _, item := range order.Items {
			reservation := &models.ReservedDate{
				ID:          uuid.New(),
				CameraID:    item.CameraID,
				OrderID:     order.ID,
				StartDate:   item.StartDate,
				EndDate:     item.EndDate,
				IsFullDay:   item.RentalType == enums.RentalTypeFullDay,
				TimeSlot:    item.TimeSlot,
				FullDayType: item.FullDayType,
			}
			if err := tx.WithContext(ctx).Create(reservation).Error; err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "creating reservation")
			}
		}

		order.Status = enums.OrderStatusConfirmed
		order.PaymentStatus = enums.PaymentStatusPaid
		order.GatewayPaymentID = &gatewayPaymentID
		confirmed = order
		return nil
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeConflict) {
			f.metrics.IncConflict()
		}
		return nil, err
	}

	f.metrics.IncFinalized(confirmed.PaymentMethod.String())
	f.metrics.ObserveFinalizeDuration(f.now().Sub(started))
	f.logg.Info(ctx, "booking finalized")

	f.notify(ctx, confirmed)
	return confirmed, nil
}

// lockCamera serializes finalization per camera for the rest of the
// transaction. Only postgres supports advisory locks; sqlite already
// serializes writers.
func lockCamera(tx *gorm.DB, cameraID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", cameraID.String()).Error
}

// distinctCameraIDs returns each camera once, in a stable order.
func distinctCameraIDs(items []models.OrderLineItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.CameraID]; ok {
			continue
		}
		seen[item.CameraID] = struct{}{}
		ids = append(ids, item.CameraID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func (f *finalizer) notify(ctx context.Context, order *models.Order) {
	if f.notifier == nil {
		return
	}
	if err := f.notifier.OrderConfirmed(ctx, order); err != nil {
		f.metrics.IncNotificationFailure()
		f.logg.Error(ctx, "confirmation notification failed", err)
	}
}

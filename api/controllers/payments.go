package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sreedhargoud/camrental-backend/api/middleware"
	"github.com/sreedhargoud/camrental-backend/api/responses"
	"github.com/sreedhargoud/camrental-backend/api/validators"
	bookingsvc "github.com/sreedhargoud/camrental-backend/internal/booking"
	ordersvc "github.com/sreedhargoud/camrental-backend/internal/orders"
	paymentsvc "github.com/sreedhargoud/camrental-backend/internal/payments"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

type createGatewayOrderRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type createGatewayOrderResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// CreateGatewayOrder registers a pending order with Razorpay so the
// client can open the checkout widget.
func CreateGatewayOrder(orders ordersvc.Service, repo ordersvc.Repository, gateway paymentsvc.Gateway, keyID string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload createGatewayOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := orders.GetForUser(r.Context(), payload.OrderID, identity.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order.Status != enums.OrderStatusPending || order.PaymentStatus != enums.PaymentStatusPending {
			responses.WriteError(r.Context(), logg, w,
				apperrors.New(apperrors.CodeStateConflict, "order is not awaiting payment"))
			return
		}

		gatewayOrder, err := gateway.CreateOrder(r.Context(), order.Total, order.ID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := repo.AttachGatewayOrder(r.Context(), order.ID, gatewayOrder.ID); err != nil {
			responses.WriteError(r.Context(), logg, w,
				apperrors.Wrap(apperrors.CodeInternal, err, "linking gateway order"))
			return
		}

		responses.WriteSuccess(w, createGatewayOrderResponse{
			GatewayOrderID: gatewayOrder.ID,
			Amount:         gatewayOrder.Amount,
			Currency:       gatewayOrder.Currency,
			KeyID:          keyID,
		})
	}
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// VerifyPayment checks the gateway signature and finalizes the booking.
// Duplicate callbacks for the same payment are deduplicated via the
// idempotency guard, with the finalizer's status guard as backstop.
func VerifyPayment(repo ordersvc.Repository, gateway paymentsvc.Gateway, guard *paymentsvc.IdempotencyGuard, finalizer bookingsvc.Finalizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := gateway.VerifySignature(payload.RazorpayOrderID, payload.RazorpayPaymentID, payload.RazorpaySignature); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := repo.FindByGatewayOrderID(r.Context(), payload.RazorpayOrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				apperrors.New(apperrors.CodeNotFound, "no order for this payment"))
			return
		}

		if guard != nil {
			seen, err := guard.CheckAndMark(r.Context(), payload.RazorpayPaymentID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					apperrors.Wrap(apperrors.CodeDependency, err, "idempotency check"))
				return
			}
			if seen {
				// Replay of an already processed callback. The snapshot
				// above may predate finalization; serve the current state.
				current, err := repo.FindByID(r.Context(), order.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w,
						apperrors.Wrap(apperrors.CodeInternal, err, "loading order"))
					return
				}
				responses.WriteSuccess(w, current)
				return
			}
		}

		confirmed, err := finalizer.Finalize(r.Context(), order.ID, payload.RazorpayPaymentID)
		if err != nil {
			if guard != nil {
				if relErr := guard.Release(r.Context(), payload.RazorpayPaymentID); relErr != nil {
					logg.Error(r.Context(), "releasing idempotency mark failed", relErr)
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, confirmed)
	}
}

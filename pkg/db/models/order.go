package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// Order is a committed (paid or payment-pending) booking. Monetary fields are
// frozen at creation time; later price-table changes never touch them.
type Order struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      string    `gorm:"column:user_id;not null;index"`
	UserEmail   string    `gorm:"column:user_email;not null"`
	UserName    string    `gorm:"column:user_name;not null"`
	PhoneNumber string    `gorm:"column:phone_number;not null"`

	Subtotal int64 `gorm:"column:subtotal;not null"`
	Tax      int64 `gorm:"column:tax;not null"`
	Total    int64 `gorm:"column:total;not null"`

	Status        enums.OrderStatus   `gorm:"column:status;not null;default:'pending'"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'"`

	GatewayOrderID    *string    `gorm:"column:gateway_order_id"`
	GatewayPaymentID  *string    `gorm:"column:gateway_payment_id"`
	PaymentVerifiedAt *time.Time `gorm:"column:payment_verified_at"`

	Items []OrderLineItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

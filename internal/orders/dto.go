package orders

import (
	"time"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// AccessoryInput is one add-on selected for a line item. Accessories are
// not catalogued server-side; the chosen price is frozen into the line
// item at order creation.
type AccessoryInput struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}

// LineItemInput is one rental request inside a checkout.
type LineItemInput struct {
	CameraSlug  string             `json:"cameraSlug" validate:"required"`
	RentalType  enums.RentalType   `json:"rentalType" validate:"required"`
	TimeSlot    *enums.TimeSlot    `json:"timeSlot,omitempty"`
	FullDayType *enums.FullDayType `json:"fullDayType,omitempty"`
	StartDate   time.Time          `json:"startDate" validate:"required"`
	EndDate     time.Time          `json:"endDate"`
	Quantity    int                `json:"quantity" validate:"gt=0"`
	Accessories []AccessoryInput   `json:"accessories,omitempty" validate:"dive"`
}

// CreateInput is a checkout request. Prices are never taken from the
// client; every amount is recomputed server-side from the catalog.
type CreateInput struct {
	UserID        string              `json:"-"`
	UserEmail     string              `json:"-"`
	UserName      string              `json:"userName" validate:"required"`
	PhoneNumber   string              `json:"phoneNumber" validate:"required"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"required"`
	Items         []LineItemInput     `json:"items" validate:"required,min=1,dive"`
}

package model

import (
	"time"

	"pawbook/pkg/lifecycle"
)

// LineItem is one (pet, service, price) entry on a booking. Price is a
// decimal string; arithmetic happens in the service layer, never on floats.
type LineItem struct {
	PetName     string `json:"pet_name" bson:"pet_name" validate:"required,min=1,max=100"`
	ServiceName string `json:"service_name" bson:"service_name" validate:"required,min=2,max=100"`
	Price       string `json:"price" bson:"price" validate:"required,decimal_amount"`
}

// Booking is one customer appointment at a shop. Status is mutated only by
// the transition service; PaymentStatus is set when the booking completes.
type Booking struct {
	ID                   string                  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ShopID               string                  `json:"shop_id" bson:"shop_id" validate:"required,min=1,max=64"`
	CustomerID           string                  `json:"customer_id" bson:"customer_id" validate:"required,min=1,max=64"`
	AssignedTechnicianID string                  `json:"assigned_technician_id,omitempty" bson:"assigned_technician_id,omitempty" validate:"omitempty,mongodb"`
	Status               lifecycle.Status        `json:"status" bson:"status" validate:"required,booking_status"`
	PaymentStatus        lifecycle.PaymentStatus `json:"payment_status,omitempty" bson:"payment_status,omitempty" validate:"omitempty,payment_status"`
	LineItems            []LineItem              `json:"line_items" bson:"line_items" validate:"required,min=1,max=50,dive"`
	TotalAmount          string                  `json:"total_amount" bson:"total_amount" validate:"required,decimal_amount"`
	CreatedAt            time.Time               `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// TransitionRequest is the body of POST .../transition.
type TransitionRequest struct {
	TargetStatus string `json:"target_status" validate:"required"`
}

// AssignRequest is the body of POST .../assign.
type AssignRequest struct {
	TechnicianID string `json:"technician_id" validate:"required,mongodb"`
}

// LineItemsUpdate is the body of the privileged line-item edit. Only valid
// while the booking is still awaiting confirmation.
type LineItemsUpdate struct {
	LineItems []LineItem `json:"line_items" validate:"required,min=1,max=50,dive"`
}

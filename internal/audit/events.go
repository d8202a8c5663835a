package audit

import (
	"time"

	"pawbook/pkg/lifecycle"
)

// Event types carried on the audit topic.
const (
	EventTransition       = "booking.transition"
	EventTechnicianChange = "booking.technician_assigned"
	EventPaymentConfirmed = "booking.payment_confirmed"
	EventCreated          = "booking.created"
	EventLineItemsEdited  = "booking.line_items_edited"
)

// Event is one append-only audit record. Exactly one is emitted per
// successful mutation; failed requests emit nothing.
type Event struct {
	Type         string                  `json:"type"`
	BookingID    string                  `json:"booking_id"`
	ShopID       string                  `json:"shop_id"`
	FromStatus   lifecycle.Status        `json:"from_status,omitempty"`
	ToStatus     lifecycle.Status        `json:"to_status,omitempty"`
	TechnicianID string                  `json:"technician_id,omitempty"`
	Payment      lifecycle.PaymentStatus `json:"payment_status,omitempty"`
	ActorID      string                  `json:"actor_id"`
	ActorRole    lifecycle.Role          `json:"actor_role"`
	OccurredAt   time.Time               `json:"occurred_at"`
}

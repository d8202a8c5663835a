package notifier

import (
	"fmt"

	"pawbook/internal/audit"
	"pawbook/pkg/lifecycle"
)

// Audience of a rendered notification.
const (
	AudienceCustomer = "customer"
	AudienceShop     = "shop"
)

// Notification is a rendered, human-readable message derived from one audit
// event. Delivery (SMS, push) is owned by downstream channels; this service
// only decides who hears about what, and in which words.
type Notification struct {
	Audience  string `json:"audience"`
	ShopID    string `json:"shop_id"`
	BookingID string `json:"booking_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// Render maps an audit event to zero or more notifications. Unknown event
// types render nothing; the consumer commits them without complaint so a
// newer producer never wedges an older notifier.
func Render(event audit.Event) []Notification {
	switch event.Type {
	case audit.EventCreated:
		return []Notification{{
			Audience:  AudienceShop,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "New booking request",
			Body:      fmt.Sprintf("A new booking %s is awaiting confirmation.", event.BookingID),
		}}

	case audit.EventTransition:
		return renderTransition(event)

	case audit.EventTechnicianChange:
		return []Notification{{
			Audience:  AudienceShop,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "Technician assigned",
			Body:      fmt.Sprintf("Technician %s was assigned to booking %s.", event.TechnicianID, event.BookingID),
		}}

	case audit.EventPaymentConfirmed:
		return []Notification{{
			Audience:  AudienceCustomer,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "Payment received",
			Body:      fmt.Sprintf("Payment for booking %s has been confirmed. Thank you!", event.BookingID),
		}}

	case audit.EventLineItemsEdited:
		return []Notification{{
			Audience:  AudienceCustomer,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "Booking updated",
			Body:      fmt.Sprintf("The services on booking %s were updated by the shop.", event.BookingID),
		}}

	default:
		return nil
	}
}

func renderTransition(event audit.Event) []Notification {
	switch event.ToStatus {
	case lifecycle.StatusConfirmed:
		return []Notification{{
			Audience:  AudienceCustomer,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "Booking confirmed",
			Body:      fmt.Sprintf("Your booking %s has been confirmed.", event.BookingID),
		}}
	case lifecycle.StatusInProgress:
		return []Notification{{
			Audience:  AudienceCustomer,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "Grooming started",
			Body:      fmt.Sprintf("Work on booking %s is under way.", event.BookingID),
		}}
	case lifecycle.StatusCompleted:
		return []Notification{{
			Audience:  AudienceCustomer,
			ShopID:    event.ShopID,
			BookingID: event.BookingID,
			Title:     "Ready for pickup",
			Body:      fmt.Sprintf("Booking %s is complete. Your pet is ready!", event.BookingID),
		}}
	case lifecycle.StatusCancelled:
		return []Notification{
			{
				Audience:  AudienceCustomer,
				ShopID:    event.ShopID,
				BookingID: event.BookingID,
				Title:     "Booking cancelled",
				Body:      fmt.Sprintf("Booking %s has been cancelled.", event.BookingID),
			},
			{
				Audience:  AudienceShop,
				ShopID:    event.ShopID,
				BookingID: event.BookingID,
				Title:     "Booking cancelled",
				Body:      fmt.Sprintf("Booking %s was cancelled by %s.", event.BookingID, event.ActorRole),
			},
		}
	default:
		return nil
	}
}

package notifier

import (
	"testing"

	"pawbook/internal/audit"
	"pawbook/pkg/lifecycle"
)

func TestRender_ConfirmationNotifiesCustomer(t *testing.T) {
	notifications := Render(audit.Event{
		Type:       audit.EventTransition,
		BookingID:  "b-1",
		ShopID:     "shop-1",
		FromStatus: lifecycle.StatusAwaitingConfirmation,
		ToStatus:   lifecycle.StatusConfirmed,
	})

	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].Audience != AudienceCustomer {
		t.Errorf("expected customer audience, got %s", notifications[0].Audience)
	}
	if notifications[0].Title != "Booking confirmed" {
		t.Errorf("unexpected title %q", notifications[0].Title)
	}
}

func TestRender_CancellationNotifiesBothSides(t *testing.T) {
	notifications := Render(audit.Event{
		Type:       audit.EventTransition,
		BookingID:  "b-1",
		ShopID:     "shop-1",
		FromStatus: lifecycle.StatusAwaitingConfirmation,
		ToStatus:   lifecycle.StatusCancelled,
		ActorRole:  lifecycle.RoleCustomer,
	})

	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	audiences := map[string]bool{}
	for _, n := range notifications {
		audiences[n.Audience] = true
	}
	if !audiences[AudienceCustomer] || !audiences[AudienceShop] {
		t.Errorf("cancellation must reach both sides, got %v", audiences)
	}
}

func TestRender_UnknownEventRendersNothing(t *testing.T) {
	notifications := Render(audit.Event{Type: "booking.relabeled", BookingID: "b-1"})
	if len(notifications) != 0 {
		t.Errorf("unknown event types must render nothing, got %d", len(notifications))
	}
}

func TestRender_PaymentConfirmed(t *testing.T) {
	notifications := Render(audit.Event{
		Type:      audit.EventPaymentConfirmed,
		BookingID: "b-1",
		ShopID:    "shop-1",
		Payment:   lifecycle.PaymentPaid,
	})

	if len(notifications) != 1 || notifications[0].Audience != AudienceCustomer {
		t.Fatalf("expected one customer notification, got %+v", notifications)
	}
}

package validator

import (
	"testing"

	"pawbook/pkg/lifecycle"
	"pawbook/pkg/logger"
	"pawbook/pkg/model"
)

func newValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		ShopID:     "shop-1",
		CustomerID: "cust-1",
		Status:     lifecycle.StatusAwaitingConfirmation,
		LineItems: []model.LineItem{
			{PetName: "Mochi", ServiceName: "Full groom", Price: "45.00"},
			{PetName: "Mochi", ServiceName: "Nail trim", Price: "12.50"},
		},
		TotalAmount: "57.5",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := newValidator()
	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PriceMustBeDecimalString(t *testing.T) {
	v := newValidator()

	for _, price := range []string{"abc", "12,50", "", "1.2.3", "-5.00"} {
		booking := validBooking()
		booking.LineItems[0].Price = price
		if err := v.Validate(booking); err == nil {
			t.Errorf("price %q should fail validation", price)
		}
	}
}

func TestValidate_TotalMustMatchLineItemSum(t *testing.T) {
	v := newValidator()

	booking := validBooking()
	booking.TotalAmount = "57.49"
	if err := v.Validate(booking); err == nil {
		t.Fatal("mismatched total must fail validation")
	}

	// Equal decimal values in different notation still match.
	booking.TotalAmount = "57.50"
	if err := v.Validate(booking); err != nil {
		t.Fatalf("57.50 equals 45.00+12.50, got error: %v", err)
	}
}

func TestValidate_UnknownStatusRejected(t *testing.T) {
	v := newValidator()

	booking := validBooking()
	booking.Status = "PENDING"
	if err := v.Validate(booking); err == nil {
		t.Fatal("unknown status must fail validation")
	}
}

func TestValidate_EmptyLineItemsRejected(t *testing.T) {
	v := newValidator()

	booking := validBooking()
	booking.LineItems = nil
	if err := v.Validate(booking); err == nil {
		t.Fatal("bookings without line items must fail validation")
	}
}

func TestValidateLineItemsUpdate(t *testing.T) {
	v := newValidator()

	update := &model.LineItemsUpdate{
		LineItems: []model.LineItem{
			{PetName: "Rex", ServiceName: "Bath", Price: "30.00"},
		},
	}
	if err := v.ValidateLineItemsUpdate(update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update.LineItems = []model.LineItem{}
	if err := v.ValidateLineItemsUpdate(update); err == nil {
		t.Fatal("empty line item update must fail validation")
	}
}

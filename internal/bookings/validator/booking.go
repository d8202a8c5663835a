package validator

import (
	"errors"
	"fmt"
	"strings"

	"pawbook/pkg/lifecycle"
	"pawbook/pkg/logger"
	"pawbook/pkg/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	registrations := map[string]validator.Func{
		"decimal_amount": validateDecimalAmount,
		"booking_status": validateBookingStatus,
		"payment_status": validatePaymentStatus,
	}
	for tag, fn := range registrations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register booking validator", "tag", tag, "error", err)
		}
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validateDecimalAmount accepts non-negative decimal strings. Amounts are
// never parsed as floats anywhere in the service.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	_, err := lifecycle.ParseStatus(fl.Field().String())
	return err == nil
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	_, err := lifecycle.ParsePaymentStatus(fl.Field().String())
	return err == nil
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := v.checkTotal(booking.LineItems, booking.TotalAmount); err != nil {
		return err
	}

	return nil
}

func (v *BookingValidator) ValidateLineItemsUpdate(update *model.LineItemsUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) ValidateAssignRequest(req *model.AssignRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// checkTotal verifies that total_amount equals the exact decimal sum of the
// line item prices.
func (v *BookingValidator) checkTotal(items []model.LineItem, total string) error {
	sum := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return ValidationErrors{
				ValidationError{Field: "Price", Message: fmt.Sprintf("price %q is not a valid decimal", item.Price)},
			}
		}
		sum = sum.Add(price)
	}

	want, err := decimal.NewFromString(total)
	if err != nil || !want.Equal(sum) {
		return ValidationErrors{
			ValidationError{
				Field:   "TotalAmount",
				Message: fmt.Sprintf("total_amount must equal the sum of line item prices (%s)", sum.String()),
			},
		}
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "decimal_amount":
			message = fmt.Sprintf("%s must be a non-negative decimal string", err.Field())
		case "booking_status":
			message = fmt.Sprintf("%s must be a known booking status", err.Field())
		case "payment_status":
			message = fmt.Sprintf("%s must be a known payment status", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

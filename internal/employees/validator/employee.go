package validator

import (
	"errors"
	"fmt"
	"strings"

	"pawbook/pkg/logger"
	"pawbook/pkg/model"

	"github.com/go-playground/validator/v10"
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

type EmployeeValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewEmployeeValidator(log *logger.Logger) *EmployeeValidator {
	v := validator.New()

	if err := v.RegisterValidation("capability_tag", validateCapabilityTag); err != nil {
		log.Fatal("Failed to register 'capability_tag' validator", "error", err)
	}

	log.Info("Employee validator initialized successfully")

	return &EmployeeValidator{
		validate: v,
		logger:   log,
	}
}

func validateCapabilityTag(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.CapabilityReceptionist, model.CapabilityTechnician:
		return true
	default:
		return false
	}
}

func (v *EmployeeValidator) Validate(employee *model.Employee) error {
	if err := v.validate.Struct(employee); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *EmployeeValidator) ValidateUpdate(update *model.EmployeeUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *EmployeeValidator) ValidateShift(shift *model.ShiftAssignment) error {
	if err := v.validate.Struct(shift); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *EmployeeValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +972501234567)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "capability_tag":
			message = fmt.Sprintf("%s must be %s or %s", err.Field(), model.CapabilityReceptionist, model.CapabilityTechnician)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

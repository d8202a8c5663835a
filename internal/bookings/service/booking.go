package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pawbook/internal/audit"
	bookingserrors "pawbook/internal/bookings/errors"
	"pawbook/internal/bookings/repository"
	"pawbook/internal/bookings/validator"
	employeeserrors "pawbook/internal/employees/errors"
	"pawbook/pkg/config"
	apperrors "pawbook/pkg/errors"
	"pawbook/pkg/lifecycle"
	"pawbook/pkg/model"

	"github.com/shopspring/decimal"
)

// EmployeeDirectory is the slice of the employee service the assignment
// resolver needs. Satisfied by the employees repository.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Employee, error)
}

type BookingService interface {
	Create(ctx context.Context, actor model.Actor, booking *model.Booking) error
	GetByID(ctx context.Context, actor model.Actor, id string) (*model.Booking, error)
	List(ctx context.Context, actor model.Actor, filter repository.Filter, limit int, offset int64) ([]*model.Booking, int64, error)
	RequestTransition(ctx context.Context, actor model.Actor, id, targetStatus string) (*model.Booking, error)
	AssignTechnician(ctx context.Context, actor model.Actor, id, technicianID string) (*model.Booking, error)
	ConfirmPayment(ctx context.Context, actor model.Actor, id string) (*model.Booking, error)
	UpdateLineItems(ctx context.Context, actor model.Actor, id string, items []model.LineItem) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	employees EmployeeDirectory
	validator *validator.BookingValidator
	auditLog  audit.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	employees EmployeeDirectory,
	validator *validator.BookingValidator,
	auditLog audit.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		employees: employees,
		validator: validator,
		auditLog:  auditLog,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, actor model.Actor, booking *model.Booking) error {
	switch actor.Role {
	case lifecycle.RoleCustomer:
		booking.CustomerID = actor.UserID
	case lifecycle.RoleOwner, lifecycle.RoleReceptionist:
		// Walk-in bookings created at the desk on behalf of a customer.
		if !actor.IsStaffOf(booking.ShopID) {
			return apperrors.Forbidden("Cannot create bookings for another shop")
		}
		if booking.CustomerID == "" {
			return apperrors.InvalidInput("customer_id is required for staff-created bookings")
		}
	default:
		return apperrors.Forbidden("Role is not allowed to create bookings")
	}

	s.applyDefaults(booking)

	total, err := sumLineItems(booking.LineItems)
	if err != nil {
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	booking.TotalAmount = total

	if err := s.validate(booking); err != nil {
		return err
	}

	// Advisory lock dampens duplicate submissions from the same customer at
	// the same shop. The TTL index reaps the row after BookingLockTTL.
	lockID := fmt.Sprintf("booking_create_%s_%s", booking.CustomerID, booking.ShopID)
	if err := s.lockRepo.Acquire(ctx, lockID, s.cfg.BookingLockTTL); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return apperrors.Conflict("A booking for this customer is already being created. Please try again.")
		}
		return apperrors.Internal("Failed to acquire booking lock", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if releaseErr := s.lockRepo.Release(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"shop_id", booking.ShopID,
		"customer_id", booking.CustomerID,
		"total_amount", booking.TotalAmount,
	)

	s.record(ctx, audit.Event{
		Type:      audit.EventCreated,
		BookingID: booking.ID,
		ShopID:    booking.ShopID,
		ToStatus:  booking.Status,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
	})
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(actor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, actor model.Actor, filter repository.Filter, limit int, offset int64) ([]*model.Booking, int64, error) {
	// Listings are scoped to what the actor may see regardless of the
	// requested filter: customers to their own bookings, staff to their shop.
	if actor.Role == lifecycle.RoleCustomer {
		filter.CustomerID = actor.UserID
	} else {
		filter.ShopID = actor.ShopID
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Find(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// RequestTransition moves a booking along one lifecycle edge. The graph check
// runs before the authorization check, so an unknown edge is always reported
// as an illegal transition no matter who asks.
func (s *bookingService) RequestTransition(ctx context.Context, actor model.Actor, id, targetStatus string) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	target, parseErr := lifecycle.ParseStatus(targetStatus)
	if parseErr != nil || !lifecycle.IsLegalTransition(from, target) {
		s.cfg.Log.Error("Illegal booking transition requested",
			"id", id,
			"from", from,
			"target", targetStatus,
			"actor_id", actor.UserID,
			"actor_role", actor.Role,
		)
		return nil, apperrors.IllegalTransition(string(from), targetStatus)
	}

	if err := s.authorizeTransition(actor, booking, target); err != nil {
		return nil, err
	}

	payment := lifecycle.PaymentStatus("")
	if target == lifecycle.StatusCompleted {
		payment = lifecycle.PaymentUnpaid
	}

	if err := s.repo.UpdateStatus(ctx, id, from, target, payment); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	booking.Status = target
	if payment != "" {
		booking.PaymentStatus = payment
	}

	s.cfg.Log.Info("Booking transitioned",
		"id", id,
		"from", from,
		"to", target,
		"actor_id", actor.UserID,
		"actor_role", actor.Role,
	)

	s.record(ctx, audit.Event{
		Type:       audit.EventTransition,
		BookingID:  id,
		ShopID:     booking.ShopID,
		FromStatus: from,
		ToStatus:   target,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
	})
	return booking, nil
}

// AssignTechnician binds a technician to a booking without changing its
// status. The assignee must be a technician-capable employee of the same
// shop; re-assignment is allowed while the work has not completed.
func (s *bookingService) AssignTechnician(ctx context.Context, actor model.Actor, id, technicianID string) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanAssignTechnician(actor.Role) || !actor.IsStaffOf(booking.ShopID) {
		return nil, apperrors.Forbidden("Only the shop's owner or receptionist can assign technicians")
	}
	if !lifecycle.AssignableIn(booking.Status) {
		return nil, apperrors.InvalidState(fmt.Sprintf(
			"Technicians can only be assigned while the booking is %s or %s, current status is %s",
			lifecycle.StatusConfirmed, lifecycle.StatusInProgress, booking.Status,
		))
	}

	technician, err := s.employees.FindByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, employeeserrors.ErrNotFound) || errors.Is(err, employeeserrors.ErrInvalidID) {
			return nil, apperrors.InvalidAssignee("Assignee does not exist")
		}
		return nil, apperrors.Internal("Failed to look up assignee", err)
	}
	if !technician.HasCapability(model.CapabilityTechnician) {
		return nil, apperrors.InvalidAssignee("Assignee does not have the technician capability")
	}
	if technician.ShopID != booking.ShopID {
		return nil, apperrors.InvalidAssignee("Assignee belongs to a different shop")
	}

	if err := s.repo.AssignTechnician(ctx, id, technicianID, booking.Status); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	booking.AssignedTechnicianID = technicianID

	s.cfg.Log.Info("Technician assigned",
		"id", id,
		"technician_id", technicianID,
		"actor_id", actor.UserID,
	)

	s.record(ctx, audit.Event{
		Type:         audit.EventTechnicianChange,
		BookingID:    id,
		ShopID:       booking.ShopID,
		TechnicianID: technicianID,
		ActorID:      actor.UserID,
		ActorRole:    actor.Role,
	})
	return booking, nil
}

// ConfirmPayment settles a completed booking. The write is compare-and-set
// on (COMPLETED, UNPAID); a racing confirm loses the CAS and is reported as
// already paid.
func (s *bookingService) ConfirmPayment(ctx context.Context, actor model.Actor, id string) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanConfirmPayment(actor.Role) || !actor.IsStaffOf(booking.ShopID) {
		return nil, apperrors.Forbidden("Only the shop's owner or receptionist can confirm payment")
	}
	if booking.Status != lifecycle.StatusCompleted {
		return nil, apperrors.InvalidState(fmt.Sprintf(
			"Payment can only be confirmed for %s bookings, current status is %s",
			lifecycle.StatusCompleted, booking.Status,
		))
	}
	if booking.PaymentStatus == lifecycle.PaymentPaid {
		return nil, apperrors.AlreadyPaid(id)
	}

	if err := s.repo.ConfirmPayment(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrStateChanged) {
			// Re-read to tell a racing confirm apart from a racing transition.
			current, findErr := s.repo.FindByID(ctx, id)
			if findErr == nil && current.PaymentStatus == lifecycle.PaymentPaid {
				return nil, apperrors.AlreadyPaid(id)
			}
		}
		return nil, s.mapRepoError(err, id)
	}

	booking.PaymentStatus = lifecycle.PaymentPaid

	s.cfg.Log.Info("Booking payment confirmed",
		"id", id,
		"actor_id", actor.UserID,
	)

	s.record(ctx, audit.Event{
		Type:      audit.EventPaymentConfirmed,
		BookingID: id,
		ShopID:    booking.ShopID,
		Payment:   lifecycle.PaymentPaid,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
	})
	return booking, nil
}

// UpdateLineItems replaces the line items of a booking that still awaits
// confirmation and recomputes the total.
func (s *bookingService) UpdateLineItems(ctx context.Context, actor model.Actor, id string, items []model.LineItem) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanEditLineItems(actor.Role) || !actor.IsStaffOf(booking.ShopID) {
		return nil, apperrors.Forbidden("Only the shop's owner or receptionist can edit line items")
	}
	if booking.Status != lifecycle.StatusAwaitingConfirmation {
		return nil, apperrors.InvalidState(fmt.Sprintf(
			"Line items can only be edited while the booking is %s, current status is %s",
			lifecycle.StatusAwaitingConfirmation, booking.Status,
		))
	}

	update := &model.LineItemsUpdate{LineItems: items}
	if err := s.validator.ValidateLineItemsUpdate(update); err != nil {
		s.cfg.Log.Warn("Line items validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Line items validation failed", map[string]any{"error": err.Error()})
	}

	total, err := sumLineItems(items)
	if err != nil {
		return nil, apperrors.Validation("Line items validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpdateLineItems(ctx, id, items, total); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	booking.LineItems = items
	booking.TotalAmount = total

	s.cfg.Log.Info("Booking line items updated",
		"id", id,
		"item_count", len(items),
		"total_amount", total,
		"actor_id", actor.UserID,
	)

	s.record(ctx, audit.Event{
		Type:      audit.EventLineItemsEdited,
		BookingID: id,
		ShopID:    booking.ShopID,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
	})
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) find(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return booking, nil
}

func (s *bookingService) authorizeRead(actor model.Actor, booking *model.Booking) error {
	if actor.Role == lifecycle.RoleCustomer {
		if booking.CustomerID != actor.UserID {
			return apperrors.Forbidden("Customers can only view their own bookings")
		}
		return nil
	}
	if !actor.IsStaffOf(booking.ShopID) {
		return apperrors.Forbidden("Staff can only view bookings of their own shop")
	}
	return nil
}

func (s *bookingService) authorizeTransition(actor model.Actor, booking *model.Booking, target lifecycle.Status) error {
	if actor.Role != lifecycle.RoleCustomer && !actor.IsStaffOf(booking.ShopID) {
		return apperrors.Forbidden("Staff can only act on bookings of their own shop")
	}

	ownBooking := actor.Role == lifecycle.RoleCustomer && booking.CustomerID == actor.UserID
	assignedTech := actor.Role == lifecycle.RoleTechnician &&
		booking.AssignedTechnicianID != "" &&
		booking.AssignedTechnicianID == actor.UserID

	if !lifecycle.Allowed(booking.Status, target, actor.Role, ownBooking, assignedTech) {
		s.cfg.Log.Warn("Booking transition denied",
			"id", booking.ID,
			"from", booking.Status,
			"to", target,
			"actor_id", actor.UserID,
			"actor_role", actor.Role,
		)
		return apperrors.Forbidden(fmt.Sprintf(
			"Role %s is not allowed to move this booking from %s to %s",
			actor.Role, booking.Status, target,
		))
	}
	return nil
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	b.ID = ""
	b.Status = lifecycle.StatusAwaitingConfirmation
	b.PaymentStatus = ""
	b.AssignedTechnicianID = ""
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case errors.Is(err, bookingserrors.ErrStateChanged):
		return apperrors.Conflict("Booking changed concurrently. Refresh and retry.")
	default:
		return apperrors.Internal("Booking storage failure", err)
	}
}

// record appends one audit event. A publish failure is logged but never
// fails the mutation the event describes.
func (s *bookingService) record(ctx context.Context, event audit.Event) {
	if err := s.auditLog.Record(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to record audit event",
			"type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}

func sumLineItems(items []model.LineItem) (string, error) {
	total := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return "", fmt.Errorf("price %q is not a valid decimal", item.Price)
		}
		if price.IsNegative() {
			return "", fmt.Errorf("price %q must not be negative", item.Price)
		}
		total = total.Add(price)
	}
	return total.String(), nil
}

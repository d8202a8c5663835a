package service

import (
	"context"
	"errors"
	"sync"

	employeeserrors "pawbook/internal/employees/errors"
	"pawbook/internal/employees/repository"
	"pawbook/internal/employees/validator"
	"pawbook/pkg/config"
	dbmongo "pawbook/pkg/db/mongo"
	apperrors "pawbook/pkg/errors"
	"pawbook/pkg/lifecycle"
	"pawbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type EmployeeService interface {
	Create(ctx context.Context, actor model.Actor, employee *model.Employee) error
	GetByID(ctx context.Context, actor model.Actor, id string) (*model.Employee, error)
	ListByShop(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Employee, int64, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.EmployeeUpdate) (*model.Employee, error)
	Delete(ctx context.Context, actor model.Actor, id string) error

	AssignShift(ctx context.Context, actor model.Actor, shift *model.ShiftAssignment) error
	ListShifts(ctx context.Context, actor model.Actor, date string) ([]*model.ShiftAssignment, error)
	RemoveShift(ctx context.Context, actor model.Actor, id string) error
}

type employeeService struct {
	repo      repository.EmployeeRepository
	shiftRepo repository.ShiftRepository
	tx        dbmongo.TransactionManager
	validator *validator.EmployeeValidator
	cfg       *config.Config
}

func NewEmployeeService(
	repo repository.EmployeeRepository,
	shiftRepo repository.ShiftRepository,
	tx dbmongo.TransactionManager,
	validator *validator.EmployeeValidator,
	cfg *config.Config,
) EmployeeService {
	return &employeeService{
		repo:      repo,
		shiftRepo: shiftRepo,
		tx:        tx,
		validator: validator,
		cfg:       cfg,
	}
}

// Staff records are owner-managed; receptionists may read the roster but
// not change it.
func (s *employeeService) Create(ctx context.Context, actor model.Actor, employee *model.Employee) error {
	if actor.Role != lifecycle.RoleOwner {
		return apperrors.Forbidden("Only the shop owner can manage employees")
	}
	employee.ShopID = actor.ShopID

	if err := s.validator.Validate(employee); err != nil {
		s.cfg.Log.Warn("Employee validation failed", "error", err)
		return apperrors.Validation("Employee validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		s.cfg.Log.Error("Failed to create employee", "error", err)
		return apperrors.Internal("Failed to create employee", err)
	}

	s.cfg.Log.Info("Employee created successfully",
		"id", employee.ID,
		"shop_id", employee.ShopID,
		"capabilities", employee.Capabilities,
	)
	return nil
}

func (s *employeeService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Employee, error) {
	employee, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOf(employee.ShopID) {
		return nil, apperrors.Forbidden("Staff can only view employees of their own shop")
	}
	return employee, nil
}

func (s *employeeService) ListByShop(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Employee, int64, error) {
	if actor.Role == lifecycle.RoleCustomer {
		return nil, 0, apperrors.Forbidden("Customers cannot list employees")
	}
	shopID := actor.ShopID

	var count int64
	var employees []*model.Employee
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByShop(ctx, shopID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count employees", "error", errCount)
			errCount = apperrors.Internal("Failed to count employees", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		employees, errFind = s.repo.FindByShop(ctx, shopID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list employees", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve employees", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return employees, count, nil
}

func (s *employeeService) Update(ctx context.Context, actor model.Actor, id string, updates *model.EmployeeUpdate) (*model.Employee, error) {
	if actor.Role != lifecycle.RoleOwner {
		return nil, apperrors.Forbidden("Only the shop owner can manage employees")
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ShopID != actor.ShopID {
		return nil, apperrors.Forbidden("Cannot manage employees of another shop")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Employee update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Employee validation failed", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Employee validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, employeeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Employee", id)
		}
		return nil, apperrors.Internal("Failed to update employee", err)
	}

	s.cfg.Log.Info("Employee updated successfully", "id", id)
	return merged, nil
}

func (s *employeeService) Delete(ctx context.Context, actor model.Actor, id string) error {
	if actor.Role != lifecycle.RoleOwner {
		return apperrors.Forbidden("Only the shop owner can manage employees")
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if existing.ShopID != actor.ShopID {
		return apperrors.Forbidden("Cannot manage employees of another shop")
	}

	// The employee's shift assignments go with the record; both writes
	// commit or neither does.
	err = s.tx.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.shiftRepo.DeleteByEmployee(sessCtx, id); err != nil {
			return apperrors.Internal("Failed to delete shift assignments", err)
		}
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, employeeserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Employee", id)
			}
			return apperrors.Internal("Failed to delete employee", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Employee deleted successfully", "id", id)
	return nil
}

func (s *employeeService) AssignShift(ctx context.Context, actor model.Actor, shift *model.ShiftAssignment) error {
	if actor.Role != lifecycle.RoleOwner && actor.Role != lifecycle.RoleReceptionist {
		return apperrors.Forbidden("Only the shop's owner or receptionist can manage shifts")
	}
	shift.ShopID = actor.ShopID

	if err := s.validator.ValidateShift(shift); err != nil {
		s.cfg.Log.Warn("Shift validation failed", "error", err)
		return apperrors.Validation("Shift validation failed", map[string]any{"error": err.Error()})
	}

	employee, err := s.find(ctx, shift.EmployeeID)
	if err != nil {
		return err
	}
	if employee.ShopID != shift.ShopID {
		return apperrors.InvalidInput("Employee belongs to a different shop")
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		s.cfg.Log.Error("Failed to create shift assignment", "error", err)
		return apperrors.Internal("Failed to create shift assignment", err)
	}

	s.cfg.Log.Info("Shift assigned successfully",
		"id", shift.ID,
		"employee_id", shift.EmployeeID,
		"slot", shift.Slot,
		"date", shift.Date,
	)
	return nil
}

func (s *employeeService) ListShifts(ctx context.Context, actor model.Actor, date string) ([]*model.ShiftAssignment, error) {
	if actor.Role == lifecycle.RoleCustomer {
		return nil, apperrors.Forbidden("Customers cannot list shifts")
	}

	shifts, err := s.shiftRepo.FindByShopAndDate(ctx, actor.ShopID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list shifts", "error", err)
		return nil, apperrors.Internal("Failed to retrieve shifts", err)
	}
	return shifts, nil
}

func (s *employeeService) RemoveShift(ctx context.Context, actor model.Actor, id string) error {
	if actor.Role != lifecycle.RoleOwner && actor.Role != lifecycle.RoleReceptionist {
		return apperrors.Forbidden("Only the shop's owner or receptionist can manage shifts")
	}

	shift, err := s.shiftRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeserrors.ErrShiftNotFound) {
			return apperrors.NotFoundWithID("Shift assignment", id)
		}
		if errors.Is(err, employeeserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid shift assignment ID format")
		}
		return apperrors.Internal("Failed to retrieve shift assignment", err)
	}
	if shift.ShopID != actor.ShopID {
		return apperrors.Forbidden("Cannot manage shifts of another shop")
	}

	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employeeserrors.ErrShiftNotFound) {
			return apperrors.NotFoundWithID("Shift assignment", id)
		}
		return apperrors.Internal("Failed to delete shift assignment", err)
	}

	s.cfg.Log.Info("Shift removed successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *employeeService) find(ctx context.Context, id string) (*model.Employee, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Employee ID cannot be empty")
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Employee", id)
		}
		if errors.Is(err, employeeserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid employee ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve employee", err)
	}
	return employee, nil
}

func (s *employeeService) mergeUpdates(existing *model.Employee, updates *model.EmployeeUpdate) *model.Employee {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Capabilities != nil {
		merged.Capabilities = updates.Capabilities
	}

	return &merged
}

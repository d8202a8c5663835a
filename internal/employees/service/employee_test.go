package service

import (
	"context"
	"testing"
	"time"

	employeeserrors "pawbook/internal/employees/errors"
	"pawbook/internal/employees/validator"
	"pawbook/pkg/config"
	dbmongo "pawbook/pkg/db/mongo"
	apperrors "pawbook/pkg/errors"
	"pawbook/pkg/lifecycle"
	"pawbook/pkg/logger"
	"pawbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockEmployeeRepository struct {
	createFunc      func(ctx context.Context, employee *model.Employee) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Employee, error)
	findByShopFunc  func(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Employee, error)
	countByShopFunc func(ctx context.Context, shopID string) (int64, error)
	updateFunc      func(ctx context.Context, id string, employee *model.Employee) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, employee)
	}
	employee.ID = "68a000000000000000000030"
	return nil
}

func (m *mockEmployeeRepository) FindByID(ctx context.Context, id string) (*model.Employee, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, employeeserrors.ErrNotFound
}

func (m *mockEmployeeRepository) FindByShop(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Employee, error) {
	if m.findByShopFunc != nil {
		return m.findByShopFunc(ctx, shopID, limit, offset)
	}
	return []*model.Employee{}, nil
}

func (m *mockEmployeeRepository) CountByShop(ctx context.Context, shopID string) (int64, error) {
	if m.countByShopFunc != nil {
		return m.countByShopFunc(ctx, shopID)
	}
	return 0, nil
}

func (m *mockEmployeeRepository) Update(ctx context.Context, id string, employee *model.Employee) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, employee)
	}
	return nil
}

func (m *mockEmployeeRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockShiftRepository struct {
	createFunc func(ctx context.Context, shift *model.ShiftAssignment) error
	findFunc   func(ctx context.Context, shopID, date string) ([]*model.ShiftAssignment, error)
	findByID   func(ctx context.Context, id string) (*model.ShiftAssignment, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockShiftRepository) Create(ctx context.Context, shift *model.ShiftAssignment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, shift)
	}
	shift.ID = "68a000000000000000000040"
	return nil
}

func (m *mockShiftRepository) FindByShopAndDate(ctx context.Context, shopID, date string) ([]*model.ShiftAssignment, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, shopID, date)
	}
	return []*model.ShiftAssignment{}, nil
}

func (m *mockShiftRepository) FindByID(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, employeeserrors.ErrShiftNotFound
}

func (m *mockShiftRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockShiftRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	return nil
}

// mockTxManager runs the callback without a real session.
type mockTxManager struct{}

func (mockTxManager) ExecuteTransaction(ctx context.Context, fn dbmongo.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestService(repo *mockEmployeeRepository, shiftRepo *mockShiftRepository) *employeeService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &employeeService{
		repo:      repo,
		shiftRepo: shiftRepo,
		tx:        mockTxManager{},
		validator: validator.NewEmployeeValidator(log),
		cfg:       cfg,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

const testEmployeeID = "68a000000000000000000030"

func shopOwner() model.Actor {
	return model.Actor{UserID: "emp-own-1", Role: lifecycle.RoleOwner, ShopID: "shop-1"}
}

func testEmployee() *model.Employee {
	return &model.Employee{
		ID:           testEmployeeID,
		ShopID:       "shop-1",
		Name:         "Dana Levi",
		Phone:        "+972501234567",
		Capabilities: []string{model.CapabilityTechnician},
	}
}

func TestCreate_OwnerOnly(t *testing.T) {
	svc := newTestService(&mockEmployeeRepository{}, &mockShiftRepository{})

	employee := &model.Employee{
		Name:         "Dana Levi",
		Phone:        "+972501234567",
		Capabilities: []string{model.CapabilityTechnician},
	}
	receptionist := model.Actor{UserID: "emp-rec-1", Role: lifecycle.RoleReceptionist, ShopID: "shop-1"}
	assertCode(t, svc.Create(context.Background(), receptionist, employee), apperrors.CodeForbidden)

	if err := svc.Create(context.Background(), shopOwner(), employee); err != nil {
		t.Fatalf("owner create failed: %v", err)
	}
	if employee.ShopID != "shop-1" {
		t.Errorf("shop_id must come from the actor, got %s", employee.ShopID)
	}
}

func TestCreate_InvalidCapabilityRejected(t *testing.T) {
	svc := newTestService(&mockEmployeeRepository{}, &mockShiftRepository{})

	employee := &model.Employee{
		Name:         "Dana Levi",
		Phone:        "+972501234567",
		Capabilities: []string{"GROOMER"},
	}
	assertCode(t, svc.Create(context.Background(), shopOwner(), employee), apperrors.CodeValidation)
}

func TestUpdate_OtherShopDenied(t *testing.T) {
	repo := &mockEmployeeRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Employee, error) {
			employee := testEmployee()
			employee.ShopID = "shop-2"
			return employee, nil
		},
	}
	svc := newTestService(repo, &mockShiftRepository{})

	_, err := svc.Update(context.Background(), shopOwner(), testEmployeeID, &model.EmployeeUpdate{Name: "New Name"})
	assertCode(t, err, apperrors.CodeForbidden)
}

func TestUpdate_MergesPartialFields(t *testing.T) {
	var saved *model.Employee
	repo := &mockEmployeeRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Employee, error) {
			return testEmployee(), nil
		},
		updateFunc: func(_ context.Context, _ string, employee *model.Employee) error {
			saved = employee
			return nil
		},
	}
	svc := newTestService(repo, &mockShiftRepository{})

	updated, err := svc.Update(context.Background(), shopOwner(), testEmployeeID, &model.EmployeeUpdate{
		Capabilities: []string{model.CapabilityReceptionist, model.CapabilityTechnician},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Dana Levi" {
		t.Errorf("untouched fields must survive the merge, got name %q", saved.Name)
	}
	if len(updated.Capabilities) != 2 {
		t.Errorf("expected merged capabilities, got %v", updated.Capabilities)
	}
}

func TestAssignShift_EmployeeOfOtherShopRejected(t *testing.T) {
	repo := &mockEmployeeRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Employee, error) {
			employee := testEmployee()
			employee.ShopID = "shop-2"
			return employee, nil
		},
	}
	svc := newTestService(repo, &mockShiftRepository{})

	shift := &model.ShiftAssignment{
		EmployeeID: testEmployeeID,
		Slot:       "MORNING",
		Date:       "2026-09-15",
	}
	assertCode(t, svc.AssignShift(context.Background(), shopOwner(), shift), apperrors.CodeInvalidInput)
}

func TestAssignShift_InvalidSlotRejected(t *testing.T) {
	repo := &mockEmployeeRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Employee, error) {
			return testEmployee(), nil
		},
	}
	svc := newTestService(repo, &mockShiftRepository{})

	shift := &model.ShiftAssignment{
		EmployeeID: testEmployeeID,
		Slot:       "NIGHT",
		Date:       "2026-09-15",
	}
	assertCode(t, svc.AssignShift(context.Background(), shopOwner(), shift), apperrors.CodeValidation)
}

func TestAssignShift_HappyPath(t *testing.T) {
	repo := &mockEmployeeRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Employee, error) {
			return testEmployee(), nil
		},
	}
	svc := newTestService(repo, &mockShiftRepository{})

	shift := &model.ShiftAssignment{
		EmployeeID: testEmployeeID,
		Slot:       "AFTERNOON",
		Date:       "2026-09-15",
	}
	if err := svc.AssignShift(context.Background(), shopOwner(), shift); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift.ShopID != "shop-1" {
		t.Errorf("shift shop_id must come from the actor, got %s", shift.ShopID)
	}
	if shift.ID == "" {
		t.Error("expected shift ID to be set after create")
	}
}

func TestRemoveShift_OtherShopDenied(t *testing.T) {
	shiftRepo := &mockShiftRepository{
		findByID: func(_ context.Context, _ string) (*model.ShiftAssignment, error) {
			return &model.ShiftAssignment{ID: "68a000000000000000000040", ShopID: "shop-2"}, nil
		},
	}
	svc := newTestService(&mockEmployeeRepository{}, shiftRepo)

	assertCode(t, svc.RemoveShift(context.Background(), shopOwner(), "68a000000000000000000040"), apperrors.CodeForbidden)
}

func TestDelete_RemovesEmployee(t *testing.T) {
	deleted := false
	repo := &mockEmployeeRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Employee, error) {
			return testEmployee(), nil
		},
		deleteFunc: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo, &mockShiftRepository{})

	if err := svc.Delete(context.Background(), shopOwner(), testEmployeeID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected the employee record to be deleted")
	}
}

func TestListByShop_CustomerDenied(t *testing.T) {
	svc := newTestService(&mockEmployeeRepository{}, &mockShiftRepository{})

	customer := model.Actor{UserID: "cust-1", Role: lifecycle.RoleCustomer}
	_, _, err := svc.ListByShop(context.Background(), customer, 10, 0)
	assertCode(t, err, apperrors.CodeForbidden)
}

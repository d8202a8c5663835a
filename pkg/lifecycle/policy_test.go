package lifecycle

import "testing"

func TestAllowed_PolicyTable(t *testing.T) {
	tests := []struct {
		name         string
		from         Status
		to           Status
		role         Role
		ownBooking   bool
		assignedTech bool
		want         bool
	}{
		{"receptionist confirms", StatusAwaitingConfirmation, StatusConfirmed, RoleReceptionist, false, false, true},
		{"owner confirms", StatusAwaitingConfirmation, StatusConfirmed, RoleOwner, false, false, true},
		{"customer cannot confirm", StatusAwaitingConfirmation, StatusConfirmed, RoleCustomer, true, false, false},
		{"technician cannot confirm", StatusAwaitingConfirmation, StatusConfirmed, RoleTechnician, false, true, false},

		{"customer cancels own booking", StatusAwaitingConfirmation, StatusCancelled, RoleCustomer, true, false, true},
		{"customer cannot cancel another booking", StatusAwaitingConfirmation, StatusCancelled, RoleCustomer, false, false, false},
		{"owner cancels", StatusAwaitingConfirmation, StatusCancelled, RoleOwner, false, false, true},
		{"receptionist cancels confirmed", StatusConfirmed, StatusCancelled, RoleReceptionist, false, false, true},
		{"customer cannot cancel confirmed booking", StatusConfirmed, StatusCancelled, RoleCustomer, true, false, false},

		{"assigned technician starts", StatusConfirmed, StatusInProgress, RoleTechnician, false, true, true},
		{"unassigned technician cannot start", StatusConfirmed, StatusInProgress, RoleTechnician, false, false, false},
		{"owner cannot start work", StatusConfirmed, StatusInProgress, RoleOwner, false, false, false},

		{"assigned technician completes", StatusInProgress, StatusCompleted, RoleTechnician, false, true, true},
		{"unassigned technician cannot complete", StatusInProgress, StatusCompleted, RoleTechnician, false, false, false},
		{"receptionist cannot complete", StatusInProgress, StatusCompleted, RoleReceptionist, false, false, false},

		{"no role may leave completed", StatusCompleted, StatusCancelled, RoleOwner, false, false, false},
		{"no role may re-enter awaiting", StatusConfirmed, StatusAwaitingConfirmation, RoleOwner, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allowed(tt.from, tt.to, tt.role, tt.ownBooking, tt.assignedTech)
			if got != tt.want {
				t.Errorf("Allowed(%s, %s, %s, own=%v, assigned=%v) = %v, want %v",
					tt.from, tt.to, tt.role, tt.ownBooking, tt.assignedTech, got, tt.want)
			}
		})
	}
}

func TestEveryRegistryEdgeHasAGrant(t *testing.T) {
	for _, from := range Statuses() {
		for _, to := range Statuses() {
			if !IsLegalTransition(from, to) {
				continue
			}
			g, ok := GrantFor(from, to)
			if !ok {
				t.Errorf("edge %s -> %s has no policy entry", from, to)
				continue
			}
			if len(g.Roles) == 0 {
				t.Errorf("edge %s -> %s allows no role", from, to)
			}
		}
	}
}

func TestNoGrantForUnlistedEdges(t *testing.T) {
	if _, ok := GrantFor(StatusCompleted, StatusCancelled); ok {
		t.Error("policy table must not grant edges absent from the registry")
	}
}

func TestAssignmentAndPaymentRules(t *testing.T) {
	if !CanAssignTechnician(RoleOwner) || !CanAssignTechnician(RoleReceptionist) {
		t.Error("owner and receptionist may assign technicians")
	}
	if CanAssignTechnician(RoleTechnician) || CanAssignTechnician(RoleCustomer) {
		t.Error("technicians and customers may not assign")
	}

	if !AssignableIn(StatusConfirmed) || !AssignableIn(StatusInProgress) {
		t.Error("assignment must be allowed in CONFIRMED and IN_PROGRESS")
	}
	for _, s := range []Status{StatusAwaitingConfirmation, StatusCompleted, StatusCancelled} {
		if AssignableIn(s) {
			t.Errorf("assignment must be forbidden in %s", s)
		}
	}

	if !CanConfirmPayment(RoleOwner) || !CanConfirmPayment(RoleReceptionist) {
		t.Error("owner and receptionist may confirm payment")
	}
	if CanConfirmPayment(RoleTechnician) || CanConfirmPayment(RoleCustomer) {
		t.Error("technicians and customers may not confirm payment")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleReceptionist, RoleTechnician, RoleCustomer} {
		parsed, err := ParseRole(string(r))
		if err != nil || parsed != r {
			t.Errorf("ParseRole(%s) = %s, %v", r, parsed, err)
		}
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Error("admin holds no lifecycle edge and is not a lifecycle role")
	}
}

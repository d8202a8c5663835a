package lifecycle

import "fmt"

// Role is a capability tag carried by an actor. Employees may hold several
// (stored on the employee record); a request token carries exactly one.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleReceptionist Role = "receptionist"
	RoleTechnician   Role = "technician"
	RoleCustomer     Role = "customer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleReceptionist, RoleTechnician, RoleCustomer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

type edge struct {
	from Status
	to   Status
}

// Grant describes who may walk a transition edge. OwnBookingOnly restricts
// customers to their own bookings; AssignedOnly restricts technicians to the
// booking they are bound to.
type Grant struct {
	Roles          map[Role]bool
	OwnBookingOnly bool
	AssignedOnly   bool
}

var edgePolicy = map[edge]Grant{
	{StatusAwaitingConfirmation, StatusConfirmed}: {
		Roles: map[Role]bool{RoleOwner: true, RoleReceptionist: true},
	},
	{StatusAwaitingConfirmation, StatusCancelled}: {
		Roles:          map[Role]bool{RoleOwner: true, RoleReceptionist: true, RoleCustomer: true},
		OwnBookingOnly: true,
	},
	{StatusConfirmed, StatusCancelled}: {
		Roles: map[Role]bool{RoleOwner: true, RoleReceptionist: true},
	},
	{StatusConfirmed, StatusInProgress}: {
		Roles:        map[Role]bool{RoleTechnician: true},
		AssignedOnly: true,
	},
	{StatusInProgress, StatusCompleted}: {
		Roles:        map[Role]bool{RoleTechnician: true},
		AssignedOnly: true,
	},
}

// GrantFor returns the authorization rule for an edge. The second result is
// false when the edge is not in the registry at all.
func GrantFor(from, to Status) (Grant, bool) {
	g, ok := edgePolicy[edge{from, to}]
	return g, ok
}

// Allowed evaluates the policy table for one actor against one edge.
// ownBooking must be true when the actor is the customer who created the
// booking; assignedTech must be true when the actor is the technician
// currently bound to it. Unknown edges are never allowed.
func Allowed(from, to Status, role Role, ownBooking, assignedTech bool) bool {
	g, ok := GrantFor(from, to)
	if !ok || !g.Roles[role] {
		return false
	}
	if role == RoleCustomer && g.OwnBookingOnly && !ownBooking {
		return false
	}
	if role == RoleTechnician && g.AssignedOnly && !assignedTech {
		return false
	}
	return true
}

// CanAssignTechnician reports whether the role may bind a technician to a
// booking. Assignment never changes status, so it has its own rule instead
// of an edge entry.
func CanAssignTechnician(role Role) bool {
	return role == RoleOwner || role == RoleReceptionist
}

// AssignableIn reports whether technicians may be bound or re-bound while
// the booking is in the given status.
func AssignableIn(s Status) bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// CanConfirmPayment reports whether the role may settle a completed booking.
func CanConfirmPayment(role Role) bool {
	return role == RoleOwner || role == RoleReceptionist
}

// CanEditLineItems reports whether the role may replace the line items of a
// booking that still awaits confirmation.
func CanEditLineItems(role Role) bool {
	return role == RoleOwner || role == RoleReceptionist
}

package model

import "pawbook/pkg/lifecycle"

// Actor is the authenticated caller of an operation. It is extracted from
// the session token by middleware and passed explicitly into every service
// method; nothing reads identity from ambient state.
type Actor struct {
	UserID string         `json:"user_id"`
	Role   lifecycle.Role `json:"role"`
	ShopID string         `json:"shop_id,omitempty"` // empty for customers
}

// IsStaffOf reports whether the actor is staff scoped to the given shop.
func (a Actor) IsStaffOf(shopID string) bool {
	if a.Role == lifecycle.RoleCustomer {
		return false
	}
	return a.ShopID == shopID
}

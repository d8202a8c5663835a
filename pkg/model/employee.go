package model

import "time"

const (
	CapabilityReceptionist = "RECEPTIONIST"
	CapabilityTechnician   = "TECHNICIAN"
)

// Employee is a staff member scoped to exactly one shop. Capabilities gate
// what bookings work the employee may be given, not what API calls they may
// make; the request role comes from the identity token.
type Employee struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ShopID       string    `json:"shop_id" bson:"shop_id" validate:"required,min=1,max=64"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,e164"`
	Capabilities []string  `json:"capabilities" bson:"capabilities" validate:"required,min=1,max=5,dive,capability_tag"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

func (e *Employee) HasCapability(tag string) bool {
	for _, c := range e.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// EmployeeUpdate carries a partial employee edit.
type EmployeeUpdate struct {
	Name         string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone        string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Capabilities []string `json:"capabilities,omitempty" validate:"omitempty,min=1,max=5,dive,capability_tag"`
}

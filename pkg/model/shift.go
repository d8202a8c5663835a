package model

import "time"

// ShiftAssignment binds an employee to a shift slot on a date. Shifts feed
// the shop's roster views only; booking transitions never consult them.
type ShiftAssignment struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EmployeeID string    `json:"employee_id" bson:"employee_id" validate:"required,mongodb"`
	ShopID     string    `json:"shop_id" bson:"shop_id" validate:"required,min=1,max=64"`
	Slot       string    `json:"slot" bson:"slot" validate:"required,oneof=MORNING AFTERNOON EVENING"`
	Date       string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

package lifecycle

import "fmt"

// Status is the booking lifecycle state. The edge set below is the single
// source of truth for legal transitions; every component consults it instead
// of comparing status strings ad hoc.
type Status string

const (
	StatusAwaitingConfirmation Status = "AWAITING_CONFIRMATION"
	StatusConfirmed            Status = "CONFIRMED"
	StatusInProgress           Status = "IN_PROGRESS"
	StatusCompleted            Status = "COMPLETED"
	StatusCancelled            Status = "CANCELLED"
)

// PaymentStatus is the payment sub-state. It is meaningful only once the
// booking has reached COMPLETED.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAwaitingConfirmation, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPaid:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown payment status: %q", s)
	}
}

var transitions = map[Status]map[Status]bool{
	StatusAwaitingConfirmation: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusInProgress: true,
		StatusCancelled:  true,
	},
	StatusInProgress: {
		StatusCompleted: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsLegalTransition reports whether the edge (from, to) exists in the
// registry. Pure and total: any pair not listed, including self-loops and
// unknown states, returns false.
func IsLegalTransition(from, to Status) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// IsTerminal reports whether a status has no outgoing edges.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0 && s != ""
}

// IsLegalPaymentTransition covers the payment sub-graph: UNPAID -> PAID.
func IsLegalPaymentTransition(from, to PaymentStatus) bool {
	return from == PaymentUnpaid && to == PaymentPaid
}

// Statuses returns all known statuses, initial state first.
func Statuses() []Status {
	return []Status{
		StatusAwaitingConfirmation,
		StatusConfirmed,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
	}
}

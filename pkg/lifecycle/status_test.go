package lifecycle

import "testing"

func TestIsLegalTransition_ListedEdges(t *testing.T) {
	legal := []struct {
		from Status
		to   Status
	}{
		{StatusAwaitingConfirmation, StatusConfirmed},
		{StatusAwaitingConfirmation, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
	}

	for _, e := range legal {
		if !IsLegalTransition(e.from, e.to) {
			t.Errorf("expected %s -> %s to be legal", e.from, e.to)
		}
	}
}

func TestIsLegalTransition_TotalOverAllPairs(t *testing.T) {
	legal := map[[2]Status]bool{
		{StatusAwaitingConfirmation, StatusConfirmed}: true,
		{StatusAwaitingConfirmation, StatusCancelled}: true,
		{StatusConfirmed, StatusInProgress}:           true,
		{StatusConfirmed, StatusCancelled}:            true,
		{StatusInProgress, StatusCompleted}:           true,
	}

	for _, from := range Statuses() {
		for _, to := range Statuses() {
			got := IsLegalTransition(from, to)
			want := legal[[2]Status{from, to}]
			if got != want {
				t.Errorf("IsLegalTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsLegalTransition_SelfLoopsRejected(t *testing.T) {
	for _, s := range Statuses() {
		if IsLegalTransition(s, s) {
			t.Errorf("self-loop on %s must not be legal", s)
		}
	}
}

func TestIsLegalTransition_UnknownStates(t *testing.T) {
	if IsLegalTransition("SHIPPED", StatusConfirmed) {
		t.Error("unknown source state must be rejected")
	}
	if IsLegalTransition(StatusConfirmed, "SHIPPED") {
		t.Error("unknown target state must be rejected")
	}
	if IsLegalTransition("", "") {
		t.Error("empty states must be rejected")
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
		if !IsTerminal(terminal) {
			t.Errorf("expected %s to be terminal", terminal)
		}
		for _, to := range Statuses() {
			if IsLegalTransition(terminal, to) {
				t.Errorf("terminal state %s must not transition to %s", terminal, to)
			}
		}
	}
}

func TestIsLegalPaymentTransition(t *testing.T) {
	if !IsLegalPaymentTransition(PaymentUnpaid, PaymentPaid) {
		t.Error("UNPAID -> PAID must be legal")
	}
	if IsLegalPaymentTransition(PaymentPaid, PaymentUnpaid) {
		t.Error("PAID -> UNPAID must not be legal")
	}
	if IsLegalPaymentTransition(PaymentPaid, PaymentPaid) {
		t.Error("PAID self-loop must not be legal")
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		parsed, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%s): unexpected error: %v", s, err)
		}
		if parsed != s {
			t.Errorf("ParseStatus(%s) = %s", s, parsed)
		}
	}

	if _, err := ParseStatus("pending"); err == nil {
		t.Error("expected error for lowercase legacy status")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("expected error for empty status")
	}
}

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawbook/pkg/lifecycle"
	"pawbook/pkg/model"
)

func TestBookingClient_Transition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/bookings/id/b-1/transition" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}

		var req model.TransitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.TargetStatus != "CONFIRMED" {
			t.Errorf("expected target CONFIRMED, got %s", req.TargetStatus)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": model.Booking{ID: "b-1", Status: lifecycle.StatusConfirmed},
		})
	}))
	defer server.Close()

	c := NewBookingClient(server.URL, "tok")
	booking, err := c.Transition("b-1", lifecycle.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != lifecycle.StatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", booking.Status)
	}
}

func TestBookingClient_ErrorMessageSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "no transition from AWAITING_CONFIRMATION to COMPLETED",
			"code":  "ILLEGAL_TRANSITION",
		})
	}))
	defer server.Close()

	c := NewBookingClient(server.URL, "tok")
	_, err := c.Transition("b-1", lifecycle.StatusCompleted)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestBookingClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("shop_id") != "shop-1" || q.Get("status") != "CONFIRMED" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":        []model.Booking{{ID: "b-1"}, {ID: "b-2"}},
			"total_count": 7,
		})
	}))
	defer server.Close()

	c := NewBookingClient(server.URL, "tok")
	bookings, total, err := c.List("shop-1", "", lifecycle.StatusConfirmed, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 || total != 7 {
		t.Errorf("expected 2 bookings / total 7, got %d / %d", len(bookings), total)
	}
}

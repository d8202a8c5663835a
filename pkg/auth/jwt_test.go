package auth

import (
	"errors"
	"testing"
	"time"

	"pawbook/pkg/lifecycle"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken(testSecret, "emp-1", lifecycle.RoleReceptionist, "shop-1", time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	actor, err := Parse(testSecret, token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if actor.UserID != "emp-1" {
		t.Errorf("expected user id emp-1, got %s", actor.UserID)
	}
	if actor.Role != lifecycle.RoleReceptionist {
		t.Errorf("expected role receptionist, got %s", actor.Role)
	}
	if actor.ShopID != "shop-1" {
		t.Errorf("expected shop shop-1, got %s", actor.ShopID)
	}
}

func TestParse_CustomerWithoutShop(t *testing.T) {
	token, err := NewToken(testSecret, "cust-1", lifecycle.RoleCustomer, "", time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	actor, err := Parse(testSecret, token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if actor.ShopID != "" {
		t.Errorf("customer actor must have no shop, got %s", actor.ShopID)
	}
	if actor.IsStaffOf("shop-1") {
		t.Error("customer must not be staff of any shop")
	}
}

func TestParse_StaffWithoutShopRejected(t *testing.T) {
	token, err := NewToken(testSecret, "emp-1", lifecycle.RoleOwner, "", time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := Parse(testSecret, token); !errors.Is(err, ErrMissingShop) {
		t.Errorf("expected ErrMissingShop, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewToken(testSecret, "emp-1", lifecycle.RoleOwner, "shop-1", time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := Parse("other-secret", token); err == nil {
		t.Error("expected signature verification to fail")
	}
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := NewToken(testSecret, "emp-1", lifecycle.RoleOwner, "shop-1", -time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := Parse(testSecret, token); err == nil {
		t.Error("expected expired token to fail")
	}
}

func TestParse_UnknownRole(t *testing.T) {
	token, err := NewToken(testSecret, "emp-1", lifecycle.Role("superuser"), "shop-1", time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := Parse(testSecret, token); err == nil {
		t.Error("expected unknown role to fail")
	}
}

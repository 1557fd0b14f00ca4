package validation

import (
	"testing"
)

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		OrderNumber: "ORD-1001",
		Customer: CheckoutCustomer{
			Name:    "Maya Ortiz",
			Email:   "maya@example.com",
			Address: "1 Linen Way",
		},
		Items: []CheckoutItem{
			{ProductID: "p1", Name: "Wool Coat", Price: 120.50, Quantity: 2},
			{ProductID: "p2", Name: "Silk Scarf", Price: 35.00, Quantity: 1},
		},
		Subtotal:      276.00, // 2*120.50 + 1*35.00
		Shipping:      10.00,
		Tax:           22.08,
		Total:         308.08,
		PaymentMethod: "card",
	}
}

func TestCheckoutRequest_Valid(t *testing.T) {
	v := New()
	if err := v.Struct(validCheckout()); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCheckoutRequest_SubtotalMismatch(t *testing.T) {
	v := New()
	req := validCheckout()
	req.Subtotal = 999.00 // tampered
	req.Total = 999.00 + req.Shipping + req.Tax

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for subtotal mismatch, got nil")
	}
}

func TestCheckoutRequest_TotalMismatch(t *testing.T) {
	v := New()
	req := validCheckout()
	req.Total = 1.00 // tampered total with correct subtotal

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for total mismatch, got nil")
	}
}

func TestCheckoutRequest_BadEmail(t *testing.T) {
	v := New()
	req := validCheckout()
	req.Customer.Email = "not-an-email"

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for bad email, got nil")
	}
}

func TestCheckoutRequest_MissingFields(t *testing.T) {
	v := New()
	req := CheckoutRequest{
		// order number, customer, payment method missing
		Items: []CheckoutItem{},
	}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
}

func TestCheckoutRequest_ZeroQuantityItem(t *testing.T) {
	v := New()
	req := validCheckout()
	req.Items[0].Quantity = 0

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for zero quantity, got nil")
	}
}

func TestStatusUpdateRequest_RequiresStatusOrPaymentStatus(t *testing.T) {
	v := New()

	if err := v.Struct(StatusUpdateRequest{PaymentID: "pay_1"}); err == nil {
		t.Fatal("expected validation error for empty update, got nil")
	}
	if err := v.Struct(StatusUpdateRequest{Status: "shipped"}); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
	if err := v.Struct(StatusUpdateRequest{PaymentStatus: "captured"}); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestStatusUpdateRequest_RejectsUnknownStatus(t *testing.T) {
	v := New()
	if err := v.Struct(StatusUpdateRequest{Status: "cancelled"}); err == nil {
		t.Fatal("expected validation error: cancelled is not a settable lifecycle status")
	}
}

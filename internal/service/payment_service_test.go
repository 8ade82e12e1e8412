package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/eventbudget/pkg/api"
)

func TestPaymentLifecycle(t *testing.T) {
	c := setupTestServer(t)
	token := c.register(t, "alice")
	event := c.createEvent(t, token, "100", "50", "")
	a := c.addParticipant(t, token, event.ID, "Ann", "ADULT", "")
	c.addParticipant(t, token, event.ID, "Ben", "ADULT", a.ID)
	ctx := context.Background()

	created, err := c.payments.CreatePayment(ctx, authed(token, &api.CreatePaymentRequest{
		EventID:       event.ID,
		Amount:        "42.5",
		ParticipantID: a.ID,
		Note:          "groceries",
	}))
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	p := created.Msg.Payment
	if p.Amount != "42.50" {
		t.Errorf("Amount = %s, want 42.50", p.Amount)
	}
	if p.PayerName != "Ann" || p.ParticipantName != "Ann" || p.PartnerName != "Ben" {
		t.Errorf("unexpected names: payer=%s participant=%s partner=%s", p.PayerName, p.ParticipantName, p.PartnerName)
	}

	updated, err := c.payments.UpdatePayment(ctx, authed(token, &api.UpdatePaymentRequest{
		PaymentID: p.ID,
		Amount:    "10",
		PayerName: "Uncle Joe",
	}))
	if err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	if updated.Msg.Payment.PayerName != "Uncle Joe" || updated.Msg.Payment.ParticipantID != "" {
		t.Errorf("unexpected payment after update: %+v", updated.Msg.Payment)
	}
	if updated.Msg.Payment.CreatedAt != p.CreatedAt {
		t.Errorf("CreatedAt changed on update: %d -> %d", p.CreatedAt, updated.Msg.Payment.CreatedAt)
	}

	list, err := c.payments.ListPayments(ctx, authed(token, &api.ListPaymentsRequest{EventID: event.ID}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(list.Msg.Payments) != 1 || list.Msg.Payments[0].Amount != "10.00" {
		t.Errorf("unexpected payments: %+v", list.Msg.Payments)
	}

	ev := c.getEvent(t, token, event.ID)
	if len(ev.Payments) != 1 {
		t.Errorf("event should embed 1 payment, got %d", len(ev.Payments))
	}

	if _, err := c.payments.DeletePayment(ctx, authed(token, &api.DeletePaymentRequest{PaymentID: p.ID})); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	_, err = c.payments.DeletePayment(ctx, authed(token, &api.DeletePaymentRequest{PaymentID: p.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestPaymentValidation(t *testing.T) {
	c := setupTestServer(t)
	token := c.register(t, "alice")
	event := c.createEvent(t, token, "100", "50", "")
	other := c.createEvent(t, token, "100", "50", "")
	outsider := c.addParticipant(t, token, other.ID, "Outsider", "ADULT", "")

	tests := []struct {
		name string
		req  *api.CreatePaymentRequest
	}{
		{"missing amount", &api.CreatePaymentRequest{EventID: event.ID, PayerName: "X"}},
		{"zero amount", &api.CreatePaymentRequest{EventID: event.ID, Amount: "0", PayerName: "X"}},
		{"below one cent", &api.CreatePaymentRequest{EventID: event.ID, Amount: "0.009", PayerName: "X"}},
		{"negative amount", &api.CreatePaymentRequest{EventID: event.ID, Amount: "-3", PayerName: "X"}},
		{"no payer", &api.CreatePaymentRequest{EventID: event.ID, Amount: "3"}},
		{"participant from another event", &api.CreatePaymentRequest{EventID: event.ID, Amount: "3", ParticipantID: outsider.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.payments.CreatePayment(context.Background(), authed(token, tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	resp, err := c.payments.CreatePayment(context.Background(), authed(token, &api.CreatePaymentRequest{
		EventID: event.ID, Amount: "0.01", PayerName: "Penny",
	}))
	if err != nil {
		t.Fatalf("minimum amount should be accepted: %v", err)
	}
	if resp.Msg.Payment.Amount != "0.01" {
		t.Errorf("Amount = %s, want 0.01", resp.Msg.Payment.Amount)
	}
}

func TestPaymentAccessControl(t *testing.T) {
	c := setupTestServer(t)
	alice := c.register(t, "alice")
	bob := c.register(t, "bob")
	event := c.createEvent(t, alice, "100", "50", "")

	resp, err := c.payments.CreatePayment(context.Background(), authed(alice, &api.CreatePaymentRequest{
		EventID: event.ID, Amount: "5", PayerName: "Alice",
	}))
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	_, err = c.payments.DeletePayment(context.Background(), authed(bob, &api.DeletePaymentRequest{PaymentID: resp.Msg.Payment.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.payments.ListPayments(context.Background(), authed(bob, &api.ListPaymentsRequest{EventID: event.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

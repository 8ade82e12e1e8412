package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/eventbudget/internal/budget"
	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/internal/storage"
	"github.com/mmynk/eventbudget/internal/storage/sqlstore"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "eventbudget-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()
	user := models.NewUser(username, username+"@example.com", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func mustEvent(t *testing.T, store storage.Store, creatorID string) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:         "Lake house",
		AdultBudget:  decimal.RequireFromString("100.00"),
		ChildBudget:  decimal.RequireFromString("50.00"),
		GeneralCosts: decimal.RequireFromString("20.00"),
		CreatorID:    creatorID,
	}
	if err := store.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return event
}

func mustParticipant(t *testing.T, store storage.Store, eventID, name, partnerID string) *models.Participant {
	t.Helper()
	p := &models.Participant{EventID: eventID, Name: name, Type: budget.Adult, PartnerID: partnerID}
	if err := store.CreateParticipant(context.Background(), p); err != nil {
		t.Fatalf("CreateParticipant(%s) failed: %v", name, err)
	}
	return p
}

func getParticipant(t *testing.T, store storage.Store, id string) *models.Participant {
	t.Helper()
	p, err := store.GetParticipant(context.Background(), id)
	if err != nil {
		t.Fatalf("GetParticipant(%s) failed: %v", id, err)
	}
	return p
}

func assertPartners(t *testing.T, store storage.Store, aID, bID string) {
	t.Helper()
	a := getParticipant(t, store, aID)
	b := getParticipant(t, store, bID)
	if a.PartnerID != bID || !a.IsCouple {
		t.Errorf("%s: partner=%q couple=%v, want partner=%q couple=true", a.Name, a.PartnerID, a.IsCouple, bID)
	}
	if b.PartnerID != aID || !b.IsCouple {
		t.Errorf("%s: partner=%q couple=%v, want partner=%q couple=true", b.Name, b.PartnerID, b.IsCouple, aID)
	}
}

func assertSingle(t *testing.T, store storage.Store, id string) {
	t.Helper()
	p := getParticipant(t, store, id)
	if p.PartnerID != "" || p.IsCouple {
		t.Errorf("%s: partner=%q couple=%v, want unpaired", p.Name, p.PartnerID, p.IsCouple)
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")

	byName, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != user.ID || byName.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", byName)
	}

	if _, err := store.GetUserByEmail(ctx, "alice@example.com"); err != nil {
		t.Errorf("GetUserByEmail failed: %v", err)
	}
	if _, err := store.GetUserByID(ctx, user.ID); err != nil {
		t.Errorf("GetUserByID failed: %v", err)
	}

	_, err = store.GetUserByUsername(ctx, "nobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	dup := models.NewUser("alice", "other@example.com", "hash")
	if err := store.CreateUser(ctx, dup); err == nil {
		t.Error("expected duplicate username to fail")
	}
}

func TestEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")

	t.Run("CreateEvent generates ID and timestamp", func(t *testing.T) {
		event := mustEvent(t, store, user.ID)
		if event.ID == "" {
			t.Error("Expected event ID to be generated")
		}
		if event.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetEvent keeps decimal budgets", func(t *testing.T) {
		original := mustEvent(t, store, user.ID)
		retrieved, err := store.GetEvent(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if !retrieved.AdultBudget.Equal(original.AdultBudget) {
			t.Errorf("AdultBudget mismatch: got %s, want %s", retrieved.AdultBudget, original.AdultBudget)
		}
		if !retrieved.ChildBudget.Equal(original.ChildBudget) {
			t.Errorf("ChildBudget mismatch: got %s, want %s", retrieved.ChildBudget, original.ChildBudget)
		}
		if !retrieved.GeneralCosts.Equal(original.GeneralCosts) {
			t.Errorf("GeneralCosts mismatch: got %s, want %s", retrieved.GeneralCosts, original.GeneralCosts)
		}
		if retrieved.CreatorID != user.ID {
			t.Errorf("CreatorID mismatch: got %s, want %s", retrieved.CreatorID, user.ID)
		}
	})

	t.Run("GetEvent returns ErrNotFound for nonexistent event", func(t *testing.T) {
		_, err := store.GetEvent(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateEvent changes budgets", func(t *testing.T) {
		event := mustEvent(t, store, user.ID)
		event.Name = "Renamed"
		event.AdultBudget = decimal.RequireFromString("120.50")
		if err := store.UpdateEvent(ctx, event); err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}
		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if got.Name != "Renamed" || got.AdultBudget.String() != "120.5" {
			t.Errorf("unexpected event after update: %+v", got)
		}

		missing := &models.Event{ID: "missing"}
		if err := store.UpdateEvent(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListEventsByCreator only returns own events", func(t *testing.T) {
		other := mustUser(t, store, "bob")
		mustEvent(t, store, other.ID)

		events, err := store.ListEventsByCreator(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListEventsByCreator failed: %v", err)
		}
		if len(events) != 1 {
			t.Errorf("Expected 1 event, got %d", len(events))
		}
	})
}

func TestParticipantPairing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")
	event := mustEvent(t, store, user.ID)

	t.Run("creating with a partner links both sides", func(t *testing.T) {
		b := mustParticipant(t, store, event.ID, "B", "")
		c := mustParticipant(t, store, event.ID, "C", b.ID)
		if !c.IsCouple {
			t.Error("expected created participant to be marked as couple")
		}
		assertPartners(t, store, b.ID, c.ID)
	})

	t.Run("re-pairing releases the previous partner", func(t *testing.T) {
		a := mustParticipant(t, store, event.ID, "A1", "")
		b := mustParticipant(t, store, event.ID, "B1", a.ID)
		c := mustParticipant(t, store, event.ID, "C1", a.ID)

		assertPartners(t, store, a.ID, c.ID)
		assertSingle(t, store, b.ID)
	})

	t.Run("update without partner breaks pairing on both sides", func(t *testing.T) {
		a := mustParticipant(t, store, event.ID, "A2", "")
		b := mustParticipant(t, store, event.ID, "B2", a.ID)

		b.PartnerID = ""
		if err := store.UpdateParticipant(ctx, b); err != nil {
			t.Fatalf("UpdateParticipant failed: %v", err)
		}
		if b.IsCouple {
			t.Error("expected IsCouple to be cleared")
		}
		assertSingle(t, store, a.ID)
		assertSingle(t, store, b.ID)
	})

	t.Run("update switches partner atomically", func(t *testing.T) {
		a := mustParticipant(t, store, event.ID, "A3", "")
		b := mustParticipant(t, store, event.ID, "B3", a.ID)
		c := mustParticipant(t, store, event.ID, "C3", "")

		b.PartnerID = c.ID
		b.CustomBudget = decimal.NewNullDecimal(decimal.RequireFromString("75.00"))
		if err := store.UpdateParticipant(ctx, b); err != nil {
			t.Fatalf("UpdateParticipant failed: %v", err)
		}
		assertPartners(t, store, b.ID, c.ID)
		assertSingle(t, store, a.ID)

		got := getParticipant(t, store, b.ID)
		if !got.CustomBudget.Valid || got.CustomBudget.Decimal.String() != "75" {
			t.Errorf("CustomBudget = %+v, want 75", got.CustomBudget)
		}
	})

	t.Run("partner from another event is rejected", func(t *testing.T) {
		otherEvent := mustEvent(t, store, user.ID)
		outsider := mustParticipant(t, store, otherEvent.ID, "Outsider", "")

		p := &models.Participant{EventID: event.ID, Name: "D", Type: budget.Adult, PartnerID: outsider.ID}
		err := store.CreateParticipant(ctx, p)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetParticipant(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("participant should not exist after failed pairing, got %v", err)
		}
		assertSingle(t, store, outsider.ID)
	})

	t.Run("delete releases partner", func(t *testing.T) {
		a := mustParticipant(t, store, event.ID, "A4", "")
		b := mustParticipant(t, store, event.ID, "B4", a.ID)

		if err := store.DeleteParticipant(ctx, b.ID); err != nil {
			t.Fatalf("DeleteParticipant failed: %v", err)
		}
		assertSingle(t, store, a.ID)

		if err := store.DeleteParticipant(ctx, b.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestListParticipantsByEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")
	event := mustEvent(t, store, user.ID)

	child := &models.Participant{
		EventID:      event.ID,
		Name:         "Kid",
		Type:         budget.Child,
		CustomBudget: decimal.NewNullDecimal(decimal.RequireFromString("12.34")),
		UserID:       user.ID,
	}
	if err := store.CreateParticipant(ctx, child); err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}
	mustParticipant(t, store, event.ID, "Adult", "")

	participants, err := store.ListParticipantsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListParticipantsByEvent failed: %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(participants))
	}

	idx := models.IndexParticipants(participants)
	got := idx[child.ID]
	if got == nil {
		t.Fatal("child missing from list")
	}
	if got.Type != budget.Child || got.UserID != user.ID || got.CustomBudget.Decimal.String() != "12.34" {
		t.Errorf("unexpected child: %+v", got)
	}
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")
	event := mustEvent(t, store, user.ID)
	payer := mustParticipant(t, store, event.ID, "Payer", "")

	payment := &models.Payment{
		EventID:       event.ID,
		Amount:        decimal.RequireFromString("45.10"),
		PayerName:     "Payer",
		ParticipantID: payer.ID,
		Note:          "groceries",
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	if payment.ID == "" || payment.CreatedAt == 0 {
		t.Error("Expected ID and CreatedAt to be generated")
	}

	got, err := store.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if got.ParticipantID != payer.ID || !got.Amount.Equal(payment.Amount) || got.Note != "groceries" {
		t.Errorf("unexpected payment: %+v", got)
	}

	got.Amount = decimal.RequireFromString("50")
	got.ParticipantID = ""
	if err := store.UpdatePayment(ctx, got); err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}

	payments, err := store.ListPaymentsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByEvent failed: %v", err)
	}
	if len(payments) != 1 || payments[0].ParticipantID != "" || payments[0].Amount.String() != "50" {
		t.Errorf("unexpected payments after update: %+v", payments)
	}

	if err := store.DeletePayment(ctx, payment.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	if _, err := store.GetPayment(ctx, payment.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteParticipantDetachesPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")
	event := mustEvent(t, store, user.ID)
	payer := mustParticipant(t, store, event.ID, "Payer", "")

	payment := &models.Payment{EventID: event.ID, Amount: decimal.NewFromInt(10), PayerName: "Payer", ParticipantID: payer.ID}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	if err := store.DeleteParticipant(ctx, payer.ID); err != nil {
		t.Fatalf("DeleteParticipant failed: %v", err)
	}

	got, err := store.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("payment should survive participant deletion: %v", err)
	}
	if got.ParticipantID != "" {
		t.Errorf("ParticipantID = %q, want empty", got.ParticipantID)
	}
	if got.PayerName != "Payer" {
		t.Errorf("PayerName = %q, want Payer", got.PayerName)
	}
}

func TestDeleteEventCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustUser(t, store, "alice")
	event := mustEvent(t, store, user.ID)

	a := mustParticipant(t, store, event.ID, "A", "")
	mustParticipant(t, store, event.ID, "B", a.ID)
	payment := &models.Payment{EventID: event.ID, Amount: decimal.NewFromInt(5), PayerName: "A", ParticipantID: a.ID}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	if err := store.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	participants, err := store.ListParticipantsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListParticipantsByEvent failed: %v", err)
	}
	if len(participants) != 0 {
		t.Errorf("Expected participants to cascade, got %d", len(participants))
	}
	if _, err := store.GetPayment(ctx, payment.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected payment to cascade, got %v", err)
	}
	if err := store.DeleteEvent(ctx, event.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

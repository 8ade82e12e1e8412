package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/eventbudget/internal/auth"
	"github.com/mmynk/eventbudget/internal/middleware"
	"github.com/mmynk/eventbudget/internal/storage/sqlite"
	"github.com/mmynk/eventbudget/pkg/api"
)

// testClients bundles a client per service against one test server.
type testClients struct {
	auth         api.AuthServiceClient
	events       api.EventServiceClient
	participants api.ParticipantServiceClient
	payments     api.PaymentServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database
// with real JWT authentication.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(authenticator, store, jwtManager, nil), interceptors))
	mux.Handle(api.NewEventServiceHandler(NewEventService(store, nil), interceptors))
	mux.Handle(api.NewParticipantServiceHandler(NewParticipantService(store, nil), interceptors))
	mux.Handle(api.NewPaymentServiceHandler(NewPaymentService(store, nil), interceptors))

	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testClients{
		auth:         api.NewAuthServiceClient(http.DefaultClient, server.URL),
		events:       api.NewEventServiceClient(http.DefaultClient, server.URL),
		participants: api.NewParticipantServiceClient(http.DefaultClient, server.URL),
		payments:     api.NewPaymentServiceClient(http.DefaultClient, server.URL),
	}
}

// register creates an account and returns its bearer token.
func (c *testClients) register(t *testing.T, username string) string {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return resp.Msg.Token
}

// authed wraps msg in a request carrying token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func (c *testClients) createEvent(t *testing.T, token string, adult, child, general string) *api.Event {
	t.Helper()
	resp, err := c.events.CreateEvent(context.Background(), authed(token, &api.CreateEventRequest{
		Name:         "Lake house",
		AdultBudget:  adult,
		ChildBudget:  child,
		GeneralCosts: general,
	}))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return resp.Msg.Event
}

func (c *testClients) addParticipant(t *testing.T, token, eventID, name, typ, partnerID string) *api.Participant {
	t.Helper()
	resp, err := c.participants.CreateParticipant(context.Background(), authed(token, &api.CreateParticipantRequest{
		EventID:   eventID,
		Name:      name,
		Type:      typ,
		PartnerID: partnerID,
	}))
	if err != nil {
		t.Fatalf("CreateParticipant(%s) failed: %v", name, err)
	}
	return resp.Msg.Participant
}

func (c *testClients) getEvent(t *testing.T, token, eventID string) *api.Event {
	t.Helper()
	resp, err := c.events.GetEvent(context.Background(), authed(token, &api.GetEventRequest{EventID: eventID}))
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	return resp.Msg.Event
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

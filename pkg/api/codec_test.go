package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	if codec.Name() != "json" {
		t.Fatalf("Name() = %q, want json", codec.Name())
	}

	data, err := codec.Marshal(&GetEventBudgetRequest{EventID: "e1", PayerIDs: []string{"p1"}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"event_id":"e1","payer_ids":["p1"]}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var req GetEventBudgetRequest
	if err := codec.Unmarshal(data, &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if req.EventID != "e1" || len(req.PayerIDs) != 1 {
		t.Errorf("unexpected request: %+v", req)
	}

	var empty ListEventsRequest
	if err := codec.Unmarshal(nil, &empty); err != nil {
		t.Errorf("empty body should decode, got %v", err)
	}

	if err := codec.Unmarshal([]byte("{"), &req); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

type stubAuthService struct{}

func (stubAuthService) Register(_ context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return connect.NewResponse(&RegisterResponse{User: &User{Username: req.Msg.Username}, Token: "t"}), nil
}

func (stubAuthService) Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("nope"))
}

func (stubAuthService) GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return connect.NewResponse(&GetCurrentUserResponse{}), nil
}

func TestAuthServiceRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	path, handler := NewAuthServiceHandler(stubAuthService{})
	if path != "/eventbudget.v1.AuthService/" {
		t.Fatalf("unexpected path %q", path)
	}
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewAuthServiceClient(http.DefaultClient, server.URL+"/")

	resp, err := client.Register(context.Background(), connect.NewRequest(&RegisterRequest{Username: "alice"}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.User.Username != "alice" || resp.Msg.Token != "t" {
		t.Errorf("unexpected response: %+v", resp.Msg)
	}

	_, err = client.Login(context.Background(), connect.NewRequest(&LoginRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}

	httpResp, err := http.Post(server.URL+"/eventbudget.v1.AuthService/Unknown", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown procedure status = %d, want 404", httpResp.StatusCode)
	}
}

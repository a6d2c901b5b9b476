package repository

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/ticket-dashboard/internal/config"
)

// backendCall records one transport invocation.
type backendCall struct {
	Endpoint string
	Method   string
	Body     any
}

// fakeBackend scripts transport responses per call.
type fakeBackend struct {
	calls   []backendCall
	handler func(call backendCall) (json.RawMessage, error)
}

func (f *fakeBackend) Request(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	call := backendCall{Endpoint: endpoint, Method: method, Body: body}
	f.calls = append(f.calls, call)
	return f.handler(call)
}

func testBackendConfig() config.BackendConfig {
	return config.BackendConfig{
		BaseURL:       "http://backend.test",
		APIKey:        "test-key",
		DBService:     "db",
		TicketsTable:  "tickets",
		CommentsTable: "ticket_comments",
		UsersTable:    "users",
	}
}

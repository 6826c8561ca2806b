package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"i3split/pkg/layout"
)

// The tree endpoint needs a live manager socket; a dead path must turn
// into a gateway error, not a panic.
func TestHandleTree_ManagerUnavailable(t *testing.T) {
	server := New(Options{SocketPath: "/nonexistent/i3split-test.sock"})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://example.com/tree", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestHandler_CredentialGuardsAllRoutes(t *testing.T) {
	server := New(Options{
		SocketPath: "/nonexistent/i3split-test.sock",
		Credential: "user:pass",
	})
	handler := server.Handler()

	for _, path := range []string{"/tree", "/events"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "http://example.com"+path, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without credentials, got %d", path, rec.Code)
		}
	}
}

func TestPublishReachesSubscribers(t *testing.T) {
	server := New(Options{})
	records := server.hub.subscribe()
	defer server.hub.unsubscribe(records)

	server.Publish(layout.Decision{Node: 100, Action: layout.SetVertical})

	select {
	case record := <-records:
		if record.Node != 100 || record.Action != "vertical" {
			t.Errorf("unexpected record: %+v", record)
		}
		if record.Command != "[con_id=100] layout splitv" {
			t.Errorf("unexpected command: %q", record.Command)
		}
	default:
		t.Fatal("no record published")
	}
}

package notifiers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/gorilla/websocket"
)

func TestNewWebSocketNotifier(t *testing.T) {
	notifier := NewWebSocketNotifier("test-ws")
	defer notifier.Close()

	if notifier.ID() != "test-ws" {
		t.Errorf("Expected ID 'test-ws', got '%s'", notifier.ID())
	}
	if notifier.Type() != "websocket" {
		t.Errorf("Expected type 'websocket', got '%s'", notifier.Type())
	}

	upgrader := notifier.GetUpgrader()
	if upgrader.ReadBufferSize == 0 || upgrader.WriteBufferSize == 0 {
		t.Error("Expected non-zero buffer sizes")
	}
}

func TestWebSocketNotifier_NotifyWithoutClients(t *testing.T) {
	notifier := NewWebSocketNotifier("test")
	defer notifier.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := notifier.Notify(ctx, testEvent("c1", "notice")); err != nil {
		t.Errorf("Expected no error with no clients, got %v", err)
	}
}

func TestWebSocketNotifier_Close(t *testing.T) {
	notifier := NewWebSocketNotifier("test")

	if err := notifier.Close(); err != nil {
		t.Errorf("Expected no error on close, got %v", err)
	}
	if err := notifier.Close(); err != nil {
		t.Errorf("Expected no error on double close, got %v", err)
	}
	if err := notifier.Notify(context.Background(), testEvent("c1", "notice")); err == nil {
		t.Error("Expected error when notifying a closed notifier")
	}
}

func TestWebSocketNotifier_FiltersByCompile(t *testing.T) {
	notifier := NewWebSocketNotifier("test")
	defer notifier.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := notifier.GetUpgrader()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		notifier.RegisterClient(conn, r.URL.Query().Get("compile"))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				notifier.UnregisterClient(conn)
				return
			}
		}
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?compile=c1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for notifier.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for client registration")
		}
		time.Sleep(10 * time.Millisecond)
	}

	ctx := context.Background()
	if err := notifier.Notify(ctx, testEvent("c2", "notice")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := notifier.Notify(ctx, testEvent("c1", "warning")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	var event rxn.NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("Invalid message: %v", err)
	}
	if event.CompileID != "c1" || event.Level != "warning" {
		t.Errorf("Expected only the c1 event, got %+v", event)
	}
}

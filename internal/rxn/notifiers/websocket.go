package notifiers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/gorilla/websocket"
)

type subscription struct {
	conn      *websocket.Conn
	compileID string
}

// WebSocketNotifier streams probability notices to connected clients. A
// client may subscribe to a single compile or, with an empty compile ID, to
// all of them.
type WebSocketNotifier struct {
	id         string
	mu         sync.RWMutex
	clients    map[*websocket.Conn]string
	upgrader   websocket.Upgrader
	broadcast  chan rxn.NotificationEvent
	register   chan subscription
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewWebSocketNotifier creates a new WebSocket notifier
func NewWebSocketNotifier(id string) *WebSocketNotifier {
	notifier := &WebSocketNotifier{
		id:         id,
		clients:    make(map[*websocket.Conn]string),
		broadcast:  make(chan rxn.NotificationEvent, 256),
		register:   make(chan subscription),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	notifier.wg.Add(1)
	go notifier.run()

	return notifier
}

func (wsn *WebSocketNotifier) ID() string   { return wsn.id }
func (wsn *WebSocketNotifier) Type() string { return "websocket" }

// RegisterClient subscribes conn to the events of compileID, or to every
// event when compileID is empty.
func (wsn *WebSocketNotifier) RegisterClient(conn *websocket.Conn, compileID string) {
	select {
	case wsn.register <- subscription{conn: conn, compileID: compileID}:
	case <-wsn.done:
	}
}

// UnregisterClient drops and closes conn.
func (wsn *WebSocketNotifier) UnregisterClient(conn *websocket.Conn) {
	select {
	case wsn.unregister <- conn:
	case <-wsn.done:
	}
}

// ClientCount returns the number of connected clients.
func (wsn *WebSocketNotifier) ClientCount() int {
	wsn.mu.RLock()
	defer wsn.mu.RUnlock()
	return len(wsn.clients)
}

// Notify queues the event for broadcast.
func (wsn *WebSocketNotifier) Notify(ctx context.Context, event rxn.NotificationEvent) error {
	select {
	case wsn.broadcast <- event:
		return nil
	case <-wsn.done:
		return fmt.Errorf("notifier %s is closed", wsn.id)
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(1 * time.Second):
		return fmt.Errorf("notification queue full")
	}
}

func (wsn *WebSocketNotifier) run() {
	defer wsn.wg.Done()
	for {
		select {
		case <-wsn.done:
			return

		case sub := <-wsn.register:
			if sub.conn == nil {
				continue
			}
			wsn.mu.Lock()
			wsn.clients[sub.conn] = sub.compileID
			wsn.mu.Unlock()

		case conn := <-wsn.unregister:
			if conn == nil {
				continue
			}
			wsn.mu.Lock()
			if _, ok := wsn.clients[conn]; ok {
				delete(wsn.clients, conn)
				conn.Close()
			}
			wsn.mu.Unlock()

		case event := <-wsn.broadcast:
			wsn.deliver(event)
		}
	}
}

func (wsn *WebSocketNotifier) deliver(event rxn.NotificationEvent) {
	jsonData, err := event.JSON()
	if err != nil {
		return
	}

	// Collect targets first so no write happens under the lock.
	wsn.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(wsn.clients))
	for conn, compileID := range wsn.clients {
		if compileID == "" || compileID == event.CompileID {
			conns = append(conns, conn)
		}
	}
	wsn.mu.RUnlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
			failed = append(failed, conn)
			conn.Close()
		}
	}

	if len(failed) > 0 {
		wsn.mu.Lock()
		for _, conn := range failed {
			delete(wsn.clients, conn)
		}
		wsn.mu.Unlock()
	}
}

// Close disconnects every client and stops the broadcaster.
func (wsn *WebSocketNotifier) Close() error {
	wsn.closeOnce.Do(func() {
		close(wsn.done)
		wsn.wg.Wait()

		wsn.mu.Lock()
		for conn := range wsn.clients {
			conn.Close()
			delete(wsn.clients, conn)
		}
		wsn.mu.Unlock()
	})
	return nil
}

// GetUpgrader returns the WebSocket upgrader for HTTP handlers
func (wsn *WebSocketNotifier) GetUpgrader() websocket.Upgrader {
	return wsn.upgrader
}

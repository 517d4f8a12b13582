package rxn

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// NotificationEvent is published for every probability notice or warning
// raised while compiling.
type NotificationEvent struct {
	CompileID   string  `json:"compile_id"`
	Reaction    string  `json:"reaction"`
	Pathway     string  `json:"pathway"`
	Probability float64 `json:"probability"`
	Level       string  `json:"level"`
	Timestamp   int64   `json:"timestamp"`
}

// NewNotificationEvent wraps a probability notice of the given compile.
func NewNotificationEvent(compileID string, n ProbabilityNotice) NotificationEvent {
	level := "notice"
	if n.Warning {
		level = "warning"
	}
	return NotificationEvent{
		CompileID:   compileID,
		Reaction:    n.Reaction,
		Pathway:     n.Pathway,
		Probability: n.Probability,
		Level:       level,
		Timestamp:   time.Now().Unix(),
	}
}

// JSON returns the notification event as JSON bytes
func (ne NotificationEvent) JSON() ([]byte, error) {
	return json.Marshal(ne)
}

// Notifier is the interface that all notification channels must implement
type Notifier interface {
	// ID returns a unique identifier for this notifier
	ID() string

	// Type returns the type of notifier (e.g., "webhook", "websocket")
	Type() string

	// Notify sends a notification event. The context can be used for
	// cancellation and timeout.
	Notify(ctx context.Context, event NotificationEvent) error

	// Close closes the notifier and releases any resources
	Close() error
}

type notificationJob struct {
	Event       NotificationEvent
	NotifierIDs []string
}

// NotificationManager manages all notifiers and routes notifications
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	jobs      chan notificationJob
	closed    bool
	wg        sync.WaitGroup
	logger    Logger
}

// NewNotificationManager creates a new notification manager
func NewNotificationManager() *NotificationManager {
	return NewNotificationManagerWithLogger(NewNoOpLogger())
}

// NewNotificationManagerWithLogger creates a notification manager that logs
// delivery failures to logger.
func NewNotificationManagerWithLogger(logger Logger) *NotificationManager {
	mgr := &NotificationManager{
		notifiers: make(map[string]Notifier),
		jobs:      make(chan notificationJob, 1024),
		logger:    logger,
	}
	mgr.startWorkers(1)
	return mgr
}

// RegisterNotifier registers a notifier with the manager
func (nm *NotificationManager) RegisterNotifier(notifier Notifier) error {
	if notifier == nil {
		return fmt.Errorf("notifier cannot be nil")
	}

	id := notifier.ID()
	if id == "" {
		return fmt.Errorf("notifier ID cannot be empty")
	}

	nm.mu.Lock()
	defer nm.mu.Unlock()

	if _, exists := nm.notifiers[id]; exists {
		return fmt.Errorf("notifier with ID %s already exists", id)
	}

	nm.notifiers[id] = notifier
	return nil
}

// UnregisterNotifier removes a notifier from the manager
func (nm *NotificationManager) UnregisterNotifier(id string) error {
	nm.mu.Lock()
	notifier, exists := nm.notifiers[id]
	nm.mu.Unlock()

	if !exists {
		return fmt.Errorf("notifier with ID %s not found", id)
	}

	if err := notifier.Close(); err != nil {
		return fmt.Errorf("error closing notifier %s: %w", id, err)
	}

	nm.mu.Lock()
	delete(nm.notifiers, id)
	nm.mu.Unlock()

	return nil
}

// GetNotifier retrieves a notifier by ID
func (nm *NotificationManager) GetNotifier(id string) (Notifier, bool) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	notifier, exists := nm.notifiers[id]
	return notifier, exists
}

// ListNotifiers returns a list of all registered notifier IDs
func (nm *NotificationManager) ListNotifiers() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	ids := make([]string, 0, len(nm.notifiers))
	for id := range nm.notifiers {
		ids = append(ids, id)
	}
	return ids
}

// Enqueue enqueues a notification event to be processed asynchronously by
// the worker. It never blocks: events are dropped when the queue is full.
func (nm *NotificationManager) Enqueue(event NotificationEvent, notifierIDs []string) {
	if len(notifierIDs) == 0 {
		return
	}

	nm.mu.RLock()
	defer nm.mu.RUnlock()
	if nm.closed {
		return
	}

	select {
	case nm.jobs <- notificationJob{Event: event, NotifierIDs: notifierIDs}:
	default:
		nm.logger.Warnf("notification queue full, dropping notification: compile_id=%s reaction=%s", event.CompileID, event.Reaction)
	}
}

func (nm *NotificationManager) startWorkers(n int) {
	for i := 0; i < n; i++ {
		nm.wg.Add(1)
		go nm.worker()
	}
}

func (nm *NotificationManager) worker() {
	defer nm.wg.Done()
	for job := range nm.jobs {
		nm.dispatchJob(job)
	}
}

func (nm *NotificationManager) dispatchJob(job notificationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, id := range job.NotifierIDs {
		nm.notifyWithRetry(ctx, id, job.Event)
	}
}

// notifyWithRetry attempts to send a notification with exponential backoff retry
func (nm *NotificationManager) notifyWithRetry(ctx context.Context, notifierID string, event NotificationEvent) {
	nm.mu.RLock()
	notifier, ok := nm.notifiers[notifierID]
	nm.mu.RUnlock()

	if !ok {
		nm.logger.Warnf("notification failed: notifier=%s error=notifier not found", notifierID)
		return
	}

	const maxRetries = 3
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := notifier.Notify(ctx, event)
		if err == nil {
			return
		}

		nm.logger.Warnf("notification failed: notifier=%s attempt=%d error=%v", notifierID, attempt+1, err)

		if attempt == maxRetries {
			nm.logger.Errorf("notification failed after %d attempts: notifier=%s", maxRetries+1, notifierID)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

// Notify sends a notification event to the specified notifiers synchronously.
func (nm *NotificationManager) Notify(ctx context.Context, event NotificationEvent, notifierIDs []string) error {
	if len(notifierIDs) == 0 {
		return nil
	}

	var errs []error
	for _, id := range notifierIDs {
		nm.mu.RLock()
		notifier, exists := nm.notifiers[id]
		nm.mu.RUnlock()

		if !exists {
			errs = append(errs, fmt.Errorf("notifier %s not found", id))
			continue
		}

		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("notifier %s failed: %w", id, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %v", errs)
	}
	return nil
}

// Close closes all registered notifiers and shuts down worker goroutines
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	close(nm.jobs)
	nm.mu.Unlock()

	nm.wg.Wait()

	nm.mu.Lock()
	var errs []error
	for id, notifier := range nm.notifiers {
		if err := notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing notifier %s: %w", id, err))
		}
	}
	nm.notifiers = make(map[string]Notifier)
	nm.mu.Unlock()

	if len(errs) > 0 {
		return fmt.Errorf("errors closing notifiers: %v", errs)
	}
	return nil
}

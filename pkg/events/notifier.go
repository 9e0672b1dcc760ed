package events

import (
	"sync"
	"time"
)

type RecordType string

const (
	RecordContainer RecordType = "container"
	RecordProduct   RecordType = "product"
	RecordLot       RecordType = "lot"
)

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change describes a single committed write against one record.
type Change struct {
	Type     RecordType  `json:"type"`
	Op       Op          `json:"op"`
	RecordID string      `json:"record_id"`
	Record   interface{} `json:"record,omitempty"`
	At       time.Time   `json:"at"`
}

type Handler func(change Change)

// Notifier fans committed changes out to per-record-type subscribers so
// live-refresh consumers can re-run their queries. Services publish after a
// successful write; nothing in the write path depends on the handlers.
type Notifier struct {
	mutex       sync.RWMutex
	subscribers map[RecordType][]Handler
}

func NewNotifier() *Notifier {
	return &Notifier{
		subscribers: make(map[RecordType][]Handler),
	}
}

func (n *Notifier) Subscribe(recordType RecordType, handler Handler) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.subscribers[recordType] = append(n.subscribers[recordType], handler)
}

func (n *Notifier) Publish(change Change) {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	n.mutex.RLock()
	handlers := make([]Handler, len(n.subscribers[change.Type]))
	copy(handlers, n.subscribers[change.Type])
	n.mutex.RUnlock()

	for _, handler := range handlers {
		handler(change)
	}
}

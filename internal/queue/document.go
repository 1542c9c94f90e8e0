package queue

import (
	"context"
	"sync"

	"github.com/composersite/catalog/internal/model"
)

// DefaultTopic receives exported documents when no topic is configured.
var DefaultTopic = "catalog.documents"

// DocumentPublisher streams documents to downstream consumers.
type DocumentPublisher interface {
	// Publish sends every document, waiting until each one is acknowledged.
	Publish(ctx context.Context, docs []model.Document) error
	// Close flushes pending messages and releases the connection.
	Close()
}

var (
	_ DocumentPublisher = (*KafkaPublisher)(nil)
	_ DocumentPublisher = (*MemoryQueue)(nil)
)

// MemoryQueue keeps published documents in memory.
type MemoryQueue struct {
	mu     sync.Mutex
	docs   []model.Document
	closed bool
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Publish(ctx context.Context, docs []model.Document) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.docs = append(q.docs, docs...)
	return nil
}

func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Documents returns what has been published so far.
func (q *MemoryQueue) Documents() []model.Document {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.Document{}, q.docs...)
}

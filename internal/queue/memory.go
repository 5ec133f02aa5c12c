package queue

import (
	"slices"
	"sync"

	"github.com/shorturlproject/shorturl/internal/clock"
)

// MemoryQueue keeps items in process memory. It does not survive restarts
// and is meant for tests and one-shot runs.
type MemoryQueue struct {
	mu    sync.Mutex
	items []Item
	clock clock.Clock
}

func NewMemoryQueue(clk clock.Clock) *MemoryQueue {
	return &MemoryQueue{clock: clk}
}

func (q *MemoryQueue) Enqueue(longURL string) (Item, int, error) {
	it, err := newItem(q.clock, longURL)
	if err != nil {
		return Item{}, 0, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, it)
	return it, len(q.items), nil
}

func (q *MemoryQueue) List() ([]Item, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := slices.Clone(q.items)
	sortItems(out)
	return out, nil
}

func (q *MemoryQueue) Remove(id string) error {
	return q.RemoveMany([]string{id})
}

func (q *MemoryQueue) RemoveMany(ids []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = without(q.items, ids)
	return nil
}

func (q *MemoryQueue) Count() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items), nil
}

func (q *MemoryQueue) MarkFailed(id, reason string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return markFailed(q.items, id, reason)
}

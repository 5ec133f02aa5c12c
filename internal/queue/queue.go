// Package queue keeps shorten requests that could not reach the server until
// the sync orchestrator replays them. Items are listed in creation order.
package queue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shorturlproject/shorturl/internal/clock"
)

// StatusPending is the only status a queued item has; synced or permanently
// rejected items are removed rather than relabelled.
const StatusPending = "pending"

// ErrNotFound is returned by MarkFailed for an unknown id.
var ErrNotFound = errors.New("queue item not found")

// Item is one pending submission.
type Item struct {
	ID        string    `json:"id"`
	LongURL   string    `json:"longUrl"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"lastError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Queue is a durable list of pending submissions.
type Queue interface {
	// Enqueue appends longURL and returns the new item and queue length.
	Enqueue(longURL string) (Item, int, error)
	// List returns every item, oldest first.
	List() ([]Item, error)
	// Remove deletes one item. Unknown ids are ignored.
	Remove(id string) error
	// RemoveMany deletes several items. Unknown ids are ignored.
	RemoveMany(ids []string) error
	Count() (int, error)
	// MarkFailed records a failed replay attempt without removing the item.
	MarkFailed(id, reason string) error
}

func newItem(clk clock.Clock, longURL string) (Item, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Item{}, fmt.Errorf("generate queue id: %w", err)
	}
	return Item{
		ID:        id.String(),
		LongURL:   longURL,
		Status:    StatusPending,
		CreatedAt: clk.Now(),
	}, nil
}

// sortItems orders by creation time, then id. UUIDv7 ids sort by time too,
// so items created within the same clock tick keep their enqueue order.
func sortItems(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func without(items []Item, ids []string) []Item {
	if len(ids) == 0 {
		return items
	}
	return slices.DeleteFunc(items, func(it Item) bool {
		return slices.Contains(ids, it.ID)
	})
}

func markFailed(items []Item, id, reason string) error {
	for i := range items {
		if items[i].ID == id {
			items[i].Attempts++
			items[i].LastError = reason
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

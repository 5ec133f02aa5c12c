package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/shorturlproject/shorturl/internal/clock"
)

// document is the on-disk shape of a FileQueue.
type document struct {
	Items []Item `json:"items"`
}

// FileQueue persists items as a single JSON document. Every mutation
// rewrites the document through a temporary file and a rename, so a crash
// leaves either the old or the new content behind.
//
// Several processes may share one queue file: reads hold a shared and
// mutations an exclusive advisory lock on p+".lock".
type FileQueue struct {
	mu    sync.Mutex
	path  string
	lock  *flock.Flock
	clock clock.Clock
}

// CreateFileQueue opens the queue stored at p, creating its directory when
// needed. A missing file is an empty queue.
func CreateFileQueue(p string, clk clock.Clock) (*FileQueue, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0770); err != nil {
		return nil, fmt.Errorf("create queue dir: %w", err)
	}

	q := &FileQueue{path: p, lock: flock.New(p + ".lock"), clock: clk}
	err := q.locked(false, func() error {
		_, err := q.load()
		return err
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// locked runs fn under the in-process mutex and the file lock, exclusive
// when the caller writes.
func (q *FileQueue) locked(exclusive bool, fn func() error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	acquire := q.lock.RLock
	if exclusive {
		acquire = q.lock.Lock
	}
	if err := acquire(); err != nil {
		return fmt.Errorf("lock queue %s: %w", q.path, err)
	}
	defer q.lock.Unlock()

	return fn()
}

func (q *FileQueue) Path() string {
	return q.path
}

func (q *FileQueue) load() ([]Item, error) {
	b, err := os.ReadFile(q.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read queue: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode queue %s: %w", q.path, err)
	}
	return doc.Items, nil
}

func (q *FileQueue) save(items []Item) error {
	b, err := json.MarshalIndent(document{Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(q.path), filepath.Base(q.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp queue file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write queue: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync queue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close queue: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0660); err != nil {
		return fmt.Errorf("chmod queue: %w", err)
	}
	if err := os.Rename(tmp.Name(), q.path); err != nil {
		return fmt.Errorf("replace queue: %w", err)
	}
	return nil
}

// update loads the items, applies fn and saves the result.
func (q *FileQueue) update(fn func([]Item) ([]Item, error)) error {
	return q.locked(true, func() error {
		items, err := q.load()
		if err != nil {
			return err
		}
		items, err = fn(items)
		if err != nil {
			return err
		}
		return q.save(items)
	})
}

func (q *FileQueue) Enqueue(longURL string) (Item, int, error) {
	it, err := newItem(q.clock, longURL)
	if err != nil {
		return Item{}, 0, err
	}

	var n int
	err = q.update(func(items []Item) ([]Item, error) {
		items = append(items, it)
		n = len(items)
		return items, nil
	})
	if err != nil {
		return Item{}, 0, err
	}
	return it, n, nil
}

func (q *FileQueue) List() ([]Item, error) {
	var items []Item
	err := q.locked(false, func() error {
		var err error
		items, err = q.load()
		return err
	})
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

func (q *FileQueue) Remove(id string) error {
	return q.RemoveMany([]string{id})
}

func (q *FileQueue) RemoveMany(ids []string) error {
	return q.update(func(items []Item) ([]Item, error) {
		return without(items, ids), nil
	})
}

func (q *FileQueue) Count() (int, error) {
	var n int
	err := q.locked(false, func() error {
		items, err := q.load()
		n = len(items)
		return err
	})
	return n, err
}

func (q *FileQueue) MarkFailed(id, reason string) error {
	return q.update(func(items []Item) ([]Item, error) {
		return items, markFailed(items, id, reason)
	})
}

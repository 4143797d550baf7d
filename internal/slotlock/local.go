package slotlock

import (
	"context"
	"fmt"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Local блокировка по ключу внутри одного процесса.
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewLocal создаёт пустой набор блокировок.
func NewLocal() *Local {
	return &Local{entries: make(map[string]*entry)}
}

// Lock ждёт освобождения ключа или отмены контекста.
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	const op = "slotlock.Local.Lock"

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

// release убирает запись о ключе, когда на него больше никто не ссылается.
func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

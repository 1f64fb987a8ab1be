package version

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	v         uint64
	updatedAt time.Time
}

// Local keeps group versions in-process.
// Init is set-if-absent under the mutex, so concurrent first writers agree.
//
// The optional retention sweep forgets groups untouched for longer than
// retention. A forgotten group restarts at 1, which can revive entries still
// tagged 1; only enable it when entry TTLs are shorter than retention.
type Local struct {
	mu     sync.RWMutex
	groups map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ Counter = (*Local)(nil)

func NewLocal(cleanupInterval, retention time.Duration) *Local {
	l := &Local{groups: make(map[string]localEntry)}
	if cleanupInterval > 0 && retention > 0 {
		l.ticker = time.NewTicker(cleanupInterval)
		l.stopCh = make(chan struct{})
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			for {
				select {
				case <-l.ticker.C:
					l.Cleanup(retention)
				case <-l.stopCh:
					return
				}
			}
		}()
	}
	return l
}

func (l *Local) Current(_ context.Context, group string, _ bool) (uint64, error) {
	l.mu.RLock()
	e := l.groups[group]
	l.mu.RUnlock()
	return e.v, nil
}

func (l *Local) Init(_ context.Context, group string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.groups[group]; ok && e.v > 0 {
		return e.v, nil
	}
	l.groups[group] = localEntry{v: 1, updatedAt: time.Now()}
	return 1, nil
}

func (l *Local) Bump(_ context.Context, group string) (uint64, error) {
	now := time.Now()
	l.mu.Lock()
	e := l.groups[group]
	e.v++
	e.updatedAt = now
	l.groups[group] = e
	l.mu.Unlock()
	return e.v, nil
}

// Cleanup forgets groups whose counter has not moved within retention.
func (l *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	l.mu.Lock()
	for g, e := range l.groups {
		if e.updatedAt.Before(cutoff) {
			delete(l.groups, g)
		}
	}
	l.mu.Unlock()
}

// Close stops the sweep. Safe to call more than once.
func (l *Local) Close(context.Context) error {
	l.once.Do(func() {
		if l.stopCh != nil {
			close(l.stopCh)
			l.ticker.Stop()
			l.wg.Wait()
		}
	})
	return nil
}

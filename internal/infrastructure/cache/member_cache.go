package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jpashop/backend/internal/domain/member"
)

type entry struct {
	member    member.Member
	expiresAt time.Time
}

// InMemoryMemberCache caches members of a single process with a TTL.
// Entries are copies, so callers may modify what they get back.
type InMemoryMemberCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[int64]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryMemberCache creates the cache and starts its cleanup loop
func NewInMemoryMemberCache(ttl time.Duration) *InMemoryMemberCache {
	c := &InMemoryMemberCache{
		ttl:      ttl,
		entries:  make(map[int64]entry),
		stopChan: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.cleanupLoop()
	return c
}

// Get returns a cached member that has not expired
func (c *InMemoryMemberCache) Get(_ context.Context, id int64) (*member.Member, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	m := e.member
	return &m, true
}

// Set stores a copy of the member
func (c *InMemoryMemberCache) Set(_ context.Context, m *member.Member) {
	if m == nil || m.ID == 0 {
		return
	}
	snapshot := *m
	snapshot.ClearDomainEvents()

	c.mu.Lock()
	c.entries[m.ID] = entry{member: snapshot, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops the member
func (c *InMemoryMemberCache) Invalidate(_ context.Context, id int64) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Size returns the number of stored entries, expired ones included
func (c *InMemoryMemberCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup loop. Safe to call more than once.
func (c *InMemoryMemberCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryMemberCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryMemberCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

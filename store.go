// Read-modify-write storage for MCP records. Every update to a record
// happens strictly after the previous one, and by the time Update returns
// the change has been flushed to disk.
//
// '|_' - Start,  U- Update Logic   '_|' - End,  '_' - waiting,  '^' - data is flushed
// Request #1 ------|U_____________________|-------
// Request #1 --------------|U_____________|-------
// Request #2 --------------|_U____________|-------
// Request #3 --------------|__U___________|-------
// Flush Loop -----------------------------^-------
//
// A sharded in-RAM mutex keyed by record key serializes updates. Multiple
// concurrent updates each modify the value in RAM and then wait for the
// next group flush; when the flush lands, all of them report success at
// once. One WAL write covers the whole group.
package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
)

const shardCount = 100

type Store struct {
	db      *pebble.DB
	kmu     []*kmutex
	mu      sync.Mutex
	done    chan struct{}
	count   int  // number of requests processed from last WAL write
	stopped bool // graceful shutdown
	pending int  // number of requests inflight (track for graceful shutdown)
}

func NewStore(db *pebble.DB) *Store {
	s := &Store{
		db:   db,
		done: make(chan struct{}),
	}
	for i := 0; i < shardCount; i++ {
		s.kmu = append(s.kmu, newLocker())
	}
	return s
}

func (p *Store) Flush() int {
	p.mu.Lock()
	count := p.count
	p.count = 0
	done := p.done // all previous updates are waiting on this chan
	pending := p.pending
	p.done = make(chan struct{}) // create new chan for future updates to wait on
	p.mu.Unlock()

	if count > 0 {
		// one WAL write and a wait is enough: there is a single WAL and
		// writes are sequential, so once this lands everything before it
		// has landed too
		err := p.db.LogData([]byte("f"), pebble.Sync)
		if err != nil {
			panic(err)
		}
	}
	close(done)
	return pending
}

func (p *Store) FlushLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.stopped = true // make sure all new requests are failing
			p.mu.Unlock()
			for {
				pending := p.Flush() // flush all pending requests
				if pending == 0 {
					return nil
				}
			}
		default:
			n := p.Flush()
			if n == 0 {
				// avoid infinite loops if no data needs to be flushed
				time.Sleep(time.Millisecond * 5)
			}
		}
	}
}

// UpdateFunc should update only data relevant to the key
type UpdateFunc func() error

func (p *Store) singletonUpdate(key []byte, f UpdateFunc) error {
	// serialize updates per key. Shard collisions between unrelated keys
	// only mean two updates occasionally wait for each other
	h := fnv.New64a()
	h.Write(key)
	kid := h.Sum64()
	p.kmu[kid%shardCount].Lock(kid)
	defer p.kmu[kid%shardCount].Unlock(kid)

	return f()
}

func (p *Store) Update(key []byte, f UpdateFunc) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return fmt.Errorf("DB stopped")
	}
	p.pending++
	p.count++
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.pending--
		p.mu.Unlock()
	}()

	err := p.singletonUpdate(key, f)
	if err != nil {
		return err
	}

	// wait till our update is flushed to disk
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	<-done
	return nil
}

type kmutex struct {
	c *sync.Cond
	l sync.Locker
	s map[uint64]struct{}
}

func newLocker() *kmutex {
	l := sync.Mutex{}
	return &kmutex{c: sync.NewCond(&l), l: &l, s: make(map[uint64]struct{})}
}

func (km *kmutex) locked(key uint64) (ok bool) {
	_, ok = km.s[key]
	return
}

func (km *kmutex) Unlock(key uint64) {
	km.l.Lock()
	defer km.l.Unlock()
	delete(km.s, key)
	km.c.Broadcast()
}

func (km *kmutex) Lock(key uint64) {
	km.l.Lock()
	defer km.l.Unlock()
	for km.locked(key) {
		km.c.Wait()
	}
	km.s[key] = struct{}{}
}

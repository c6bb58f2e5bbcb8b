package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/avelune/storefront/internal/storage"
)

// persister mirrors serialized collections to the backend from its own
// goroutine. Writes are fire-and-forget for the enqueuing operation: only the
// latest snapshot per key is kept, and write errors are logged and swallowed.
type persister struct {
	backend storage.Backend
	log     *slog.Logger

	mu      sync.Mutex
	pending map[string][]byte

	writeMu sync.Mutex
	kick    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func newPersister(backend storage.Backend, log *slog.Logger) *persister {
	p := &persister{
		backend: backend,
		log:     log,
		pending: make(map[string][]byte),
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) enqueue(key string, data []byte) {
	p.mu.Lock()
	p.pending[key] = data
	p.mu.Unlock()
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	for {
		select {
		case <-p.kick:
			p.drain()
		case <-p.done:
			p.drain()
			close(p.stopped)
			return
		}
	}
}

// drain writes every queued snapshot. Callable from any goroutine; writeMu
// keeps backend writes serialized.
func (p *persister) drain() {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	for {
		p.mu.Lock()
		if len(p.pending) == 0 {
			p.mu.Unlock()
			return
		}
		batch := p.pending
		p.pending = make(map[string][]byte)
		p.mu.Unlock()

		for key, data := range batch {
			if err := p.backend.Set(context.Background(), key, data); err != nil {
				p.log.Error("persist collection", "key", key, "error", err)
			}
		}
	}
}

// flush blocks until everything enqueued so far has been written.
func (p *persister) flush() { p.drain() }

func (p *persister) stop() {
	close(p.done)
	<-p.stopped
}

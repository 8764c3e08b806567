package visitor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"evodex/pkg/logger"
	"evodex/pkg/models"
)

const DefaultPersistInterval = 5 * time.Second

var ErrClosed = errors.New("persister closed")

// Persister throttles writes of the current record to Storage. The first
// change after a quiet interval is written immediately; changes arriving
// within the interval collapse into a single trailing write of the latest
// record. A record identical to the last one written (or loaded) is never
// written.
type Persister struct {
	storage  Storage
	key      string
	interval time.Duration
	log      *logger.Logger

	mu        sync.Mutex
	last      []byte
	pending   []byte
	lastWrite time.Time
	timer     *time.Timer
	closed    bool
}

func NewPersister(storage Storage, key string, interval time.Duration, log *logger.Logger) *Persister {
	if interval <= 0 {
		interval = DefaultPersistInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Persister{storage: storage, key: key, interval: interval, log: log}
}

// Prime records b as already persisted, so an unchanged record is not
// written back.
func (p *Persister) Prime(b []byte) {
	p.mu.Lock()
	p.last = append([]byte(nil), b...)
	p.mu.Unlock()
}

func (p *Persister) Save(u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if bytes.Equal(b, p.last) {
		p.pending = nil
		return nil
	}

	elapsed := time.Since(p.lastWrite)
	if p.timer == nil && elapsed >= p.interval {
		return p.writeLocked(b)
	}

	p.pending = b
	if p.timer == nil {
		p.timer = time.AfterFunc(p.interval-elapsed, p.fire)
	}
	return nil
}

func (p *Persister) fire() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.timer = nil
	if p.pending == nil || p.closed {
		return
	}
	if err := p.writeLocked(p.pending); err != nil {
		p.log.Warn("persist record failed", "key", p.key, "error", err)
	}
}

// Flush writes any pending record now.
func (p *Persister) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushLocked()
}

// Close flushes and stops the persister. Later saves return ErrClosed.
func (p *Persister) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	err := p.flushLocked()
	p.closed = true
	return err
}

func (p *Persister) flushLocked() error {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.pending == nil {
		return nil
	}
	return p.writeLocked(p.pending)
}

func (p *Persister) writeLocked(b []byte) error {
	if err := p.storage.SetItem(p.key, string(b)); err != nil {
		return err
	}
	p.last = b
	p.pending = nil
	p.lastWrite = time.Now()
	p.log.Debug("persisted record", "key", p.key)
	return nil
}

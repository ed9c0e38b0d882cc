package assistant

import (
	"context"
	"log"
	"sync"
	"time"
)

// Source fetches a PC info snapshot
type Source interface {
	PCInfo(ctx context.Context) (PCInfo, error)
}

// Sink receives every fresh snapshot
type Sink func(info PCInfo)

// Poller periodically refreshes PC info and pushes it to a sink
type Poller struct {
	source Source
	sink   Sink

	mu                sync.RWMutex
	latest            PCInfo
	stopChan          chan struct{}
	isPolling         bool
	baseInterval      time.Duration
	currentInterval   time.Duration
	backoffFactor     float64
	maxInterval       time.Duration
	consecutiveErrors int
}

// NewPoller creates a poller with the given base interval
func NewPoller(source Source, sink Sink, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		source:          source,
		sink:            sink,
		baseInterval:    interval,
		currentInterval: interval,
		backoffFactor:   1.5,
		maxInterval:     60 * time.Second,
	}
}

// Start begins polling
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isPolling {
		return
	}

	p.isPolling = true
	p.stopChan = make(chan struct{})
	go p.pollLoop(p.stopChan)
	log.Println("PC info polling started")
}

// Stop stops polling
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isPolling {
		return
	}

	p.isPolling = false
	close(p.stopChan)
	log.Println("PC info polling stopped")
}

// IsPolling returns whether the poller is running
func (p *Poller) IsPolling() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isPolling
}

// Latest returns the last snapshot, or nil before the first success
func (p *Poller) Latest() PCInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// Interval returns the current polling interval
func (p *Poller) Interval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentInterval
}

// SetInterval changes the base interval. A running loop picks it up after
// the next poll.
func (p *Poller) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.baseInterval = interval
	if p.consecutiveErrors < 3 {
		p.currentInterval = interval
	}
}

func (p *Poller) pollLoop(stop <-chan struct{}) {
	p.Poll()

	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Poll()
			ticker.Reset(p.Interval())
		}
	}
}

// Poll fetches one snapshot and adjusts the interval
func (p *Poller) Poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := p.source.PCInfo(ctx)
	if err != nil {
		p.handleError(err)
		return
	}

	p.mu.Lock()
	p.latest = info
	p.consecutiveErrors = 0
	p.currentInterval = p.baseInterval
	p.mu.Unlock()

	if p.sink != nil {
		p.sink(info)
	}
}

// handleError backs off exponentially after repeated failures
func (p *Poller) handleError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.consecutiveErrors++
	log.Printf("PC info poll failed (attempt %d): %v", p.consecutiveErrors, err)

	if p.consecutiveErrors >= 3 {
		p.currentInterval = time.Duration(float64(p.currentInterval) * p.backoffFactor)
		if p.currentInterval > p.maxInterval {
			p.currentInterval = p.maxInterval
		}
	}
}

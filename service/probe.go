package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/AnTengye/tenantdesk/model"
)

// Pinger is the part of the backend client the probe needs
type Pinger interface {
	Ping(ctx context.Context) (*PingResponse, error)
}

// Probe checks backend connectivity once and remembers the outcome as a display string
type Probe struct {
	pinger Pinger
	once   sync.Once
	done   chan struct{}

	mu     sync.RWMutex
	status string
}

func NewProbe(pinger Pinger) *Probe {
	return &Probe{
		pinger: pinger,
		done:   make(chan struct{}),
		status: model.ProbeChecking,
	}
}

// Start runs the check on its own goroutine. Only the first call does anything.
func (p *Probe) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.run(ctx)
	})
}

func (p *Probe) run(ctx context.Context) {
	defer close(p.done)

	status := model.ProbeUnreachable
	resp, err := p.pinger.Ping(ctx)
	if err != nil {
		slog.Warn("backend probe failed", "error", err)
	} else {
		status = model.ProbeConnected + resp.Message
		slog.Info("backend probe succeeded", "message", resp.Message)
	}

	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
}

// Status returns the current connectivity line
func (p *Probe) Status() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Done is closed once the check has finished
func (p *Probe) Done() <-chan struct{} {
	return p.done
}

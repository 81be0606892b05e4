package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"rentmate-client-core/internal/logger"
)

// Poller periodically re-checks an externally settled payment. At most one
// schedule is active per poller; Start is idempotent and Stop waits for a
// running tick to finish. Callers inside the tick itself must stop the
// poller from a separate goroutine.
type Poller struct {
	interval time.Duration
	tick     func()

	mu   sync.Mutex
	cron *cron.Cron
}

func NewPoller(interval time.Duration, tick func()) *Poller {
	return &Poller{interval: interval, tick: tick}
}

// Start begins the periodic schedule. Calling Start on a running poller is
// a no-op.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), p.tick); err != nil {
		return fmt.Errorf("failed to schedule payment poll: %w", err)
	}
	c.Start()
	p.cron = c
	logger.Debug("Payment poller started", "interval", p.interval.String())
	return nil
}

// Stop cancels the schedule and waits for any in-flight tick.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()
	if c == nil {
		return
	}

	ctx := c.Stop()
	<-ctx.Done()
	logger.Debug("Payment poller stopped")
}

// Running reports whether the schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}

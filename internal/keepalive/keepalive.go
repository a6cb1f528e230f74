// Package keepalive pings the service's own /health endpoint so that
// free-tier hosting platforms do not idle the process.
package keepalive

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is the periodic self-ping task. It is resolved once at startup;
// an empty target URL leaves it disabled. Pings are strictly sequential:
// each GET completes (or times out) before the next interval starts.
type Pinger struct {
	target     string
	interval   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a Pinger hitting <target>/health every interval. target
// may be empty, in which case Start is a no-op.
func New(target string, interval, timeout time.Duration, logger *zap.Logger) *Pinger {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pinger{
		target:   strings.TrimRight(target, "/"),
		interval: interval,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Enabled reports whether a target URL was resolved at startup.
func (p *Pinger) Enabled() bool {
	return p.target != ""
}

// Start launches the ping loop in the background. Disabled pingers
// return immediately.
func (p *Pinger) Start() {
	if !p.Enabled() {
		p.logger.Info("Keepalive disabled: no target URL configured")
		return
	}

	p.logger.Info("Keepalive started",
		zap.String("target", p.target),
		zap.Duration("interval", p.interval))

	p.wg.Add(1)
	go p.run()
}

// Stop cancels the loop and blocks until the goroutine has exited, so
// shutdown never leaves a ping in flight.
func (p *Pinger) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *Pinger) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// First ping right away, then on every tick
	p.ping()

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Info("Keepalive stopped")
			return

		case <-ticker.C:
			p.ping()
		}
	}
}

// ping issues a single GET against the health endpoint. Failures are
// logged and swallowed; they never affect the serving process.
func (p *Pinger) ping() {
	url := p.target + "/health"

	req, err := http.NewRequestWithContext(p.ctx, http.MethodGet, url, nil)
	if err != nil {
		p.logger.Warn("Keepalive request build failed", zap.Error(err))
		return
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// Cancellation during shutdown lands here and is expected
		if p.ctx.Err() != nil {
			return
		}
		p.logger.Warn("Keepalive ping failed",
			zap.String("url", url),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	p.logger.Info("Keepalive ping",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode))
}

package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Func is invoked on every tick. Errors are logged, not fatal; the next tick
// still runs.
type Func func(context.Context) error

// Config tunes poller behaviour.
type Config struct {
	Interval  time.Duration
	Immediate bool
	Logger    *zap.Logger
}

// Poller runs a function on a fixed interval until stopped. Backend state
// (capabilities, analysis progress) is refreshed on these loops, and all of
// them are torn down together on shutdown.
type Poller struct {
	name      string
	fn        Func
	interval  time.Duration
	immediate bool
	logger    *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// New builds a poller with the provided tick function.
func New(name string, fn Func, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Poller{
		name:      name,
		fn:        fn,
		interval:  cfg.Interval,
		immediate: cfg.Immediate,
		logger:    cfg.Logger,
	}
}

// Start begins ticking. Safe to call once.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.run()
	p.started = true
	p.logger.Sugar().Infow("poller started", "poller", p.name, "interval", p.interval)
}

// Stop cancels the loop and waits for the in-flight tick to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.mu.Unlock()
	p.wg.Wait()
	p.logger.Sugar().Infow("poller stopped", "poller", p.name)
}

func (p *Poller) run() {
	defer p.wg.Done()

	if p.immediate {
		p.tick()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Poller) tick() {
	if err := p.fn(p.ctx); err != nil && p.ctx.Err() == nil {
		p.logger.Warn("poll tick failed", zap.String("poller", p.name), zap.Error(err))
	}
}

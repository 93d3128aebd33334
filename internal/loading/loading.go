package loading

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Options controls the load sequence timing.
type Options struct {
	// Delay is how long until the scene counts as loaded.
	Delay time.Duration `yaml:"delay" toml:"delay" validate:"gte=0"`
	// Interval is the progress indicator tick.
	Interval time.Duration `yaml:"interval" toml:"interval" validate:"gt=0"`
	// MaxStep is the largest random progress increment per tick, in percent.
	MaxStep float64 `yaml:"max_step" toml:"max_step" validate:"gt=0,lte=100"`
}

// DefaultOptions returns a 3 s load with a 200 ms progress tick advancing up to 10% each.
func DefaultOptions() Options {
	return Options{Delay: 3 * time.Second, Interval: 200 * time.Millisecond, MaxStep: 10}
}

// Sequence runs the one-shot load timer and the cosmetic progress ticker on one goroutine.
// The frame loop polls Done and Percent; nothing else is shared.
type Sequence struct {
	done    chan struct{}
	percent atomic.Uint64
	ticks   atomic.Int64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *zap.Logger
}

// Start begins the sequence. A nil rng uses a randomly seeded one. Cancelling ctx or
// calling Stop ends it; if that happens before Delay, Done never closes.
func Start(ctx context.Context, opts Options, rng *rand.Rand, log *zap.Logger) *Sequence {
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultOptions().Interval
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Sequence{done: make(chan struct{}), cancel: cancel, log: log}
	s.wg.Add(1)
	go s.run(ctx, opts, rng)
	return s
}

func (s *Sequence) run(ctx context.Context, opts Options, rng *rand.Rand) {
	defer s.wg.Done()
	timer := time.NewTimer(opts.Delay)
	defer timer.Stop()
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	tick := ticker.C
	var pct float64
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.setPercent(100)
			close(s.done)
			s.log.Debug("load timer fired", zap.Duration("delay", opts.Delay))
			return
		case <-tick:
			pct = math.Min(100, pct+rng.Float64()*opts.MaxStep)
			s.ticks.Add(1)
			s.setPercent(pct)
			if pct >= 100 {
				ticker.Stop()
				tick = nil
			}
		}
	}
}

func (s *Sequence) setPercent(p float64) {
	s.percent.Store(math.Float64bits(p))
}

// Done is closed once when the load delay elapses.
func (s *Sequence) Done() <-chan struct{} { return s.done }

// Loaded reports whether Done has closed, without blocking.
func (s *Sequence) Loaded() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Percent returns the progress indicator value in [0, 100].
func (s *Sequence) Percent() float64 {
	return math.Float64frombits(s.percent.Load())
}

// Ticks returns how many progress ticks have been applied.
func (s *Sequence) Ticks() int64 { return s.ticks.Load() }

// Stop cancels the timer and ticker and waits for the goroutine to exit. Safe to call
// more than once.
func (s *Sequence) Stop() {
	s.cancel()
	s.wg.Wait()
}

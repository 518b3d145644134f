// Package palette holds the shared accent color: a fixed palette stepped
// on a timer, or a custom color pinned by the user.
package palette

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
)

// Engine owns the cycle index and at most one live ticker. It is safe for
// concurrent use: the ticker goroutine writes, the frame loop reads.
type Engine struct {
	palette []string
	period  time.Duration
	clock   Clock
	log     *zap.Logger

	mu      sync.RWMutex
	index   int
	current Color
	custom  bool
	closed  bool

	// gen identifies the live ticker; ticks from a stopped one are dropped.
	gen    uint64
	ticker Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

type Option func(*Engine)

func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

func WithPeriod(d time.Duration) Option { return func(e *Engine) { e.period = d } }

// WithPalette replaces the default palette. An empty slice is ignored.
func WithPalette(colors []string) Option {
	return func(e *Engine) {
		if len(colors) > 0 {
			e.palette = append([]string(nil), colors...)
		}
	}
}

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.log = l } }

// NewEngine starts at the first palette entry with auto-cycling running.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		palette: config.Palette,
		period:  config.CyclePeriod,
		clock:   SystemClock,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.OrNop(e.log)
	e.current = ParseHex(e.palette[0])

	e.mu.Lock()
	e.startLocked()
	e.mu.Unlock()
	return e
}

// Current returns the active color.
func (e *Engine) Current() Color {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Index is the palette position of the last auto-cycle step.
func (e *Engine) Index() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// Custom reports whether a custom color is pinned.
func (e *Engine) Custom() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.custom
}

// Palette returns a copy of the cycle order.
func (e *Engine) Palette() []string {
	return append([]string(nil), e.palette...)
}

// SetCustomColor pins s and stops cycling. s is not validated.
func (e *Engine) SetCustomColor(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopLocked()
	e.custom = true
	e.current = ParseHex(s)
	e.log.Debug("custom color pinned", zap.String("color", s), zap.String("rgb", e.current.RGB()))
}

// ResetToCycle clears the custom flag and restarts the ticker. The pinned
// color stays on screen until the next step, which advances from the index
// the cycle had reached.
func (e *Engine) ResetToCycle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.custom = false
	e.startLocked()
	e.log.Debug("color cycle resumed", zap.Int("index", e.index))
}

// Close stops the ticker and waits for its goroutine. The engine keeps
// answering Current but never changes again.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stopLocked()
	e.mu.Unlock()
	e.wg.Wait()
}

// startLocked replaces any live ticker with a fresh one.
func (e *Engine) startLocked() {
	e.stopLocked()

	e.gen++
	gen := e.gen
	t := e.clock.NewTicker(e.period)
	stop := make(chan struct{})
	e.ticker = t
	e.stop = stop

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for {
			select {
			case <-stop:
				return
			case <-t.C():
				e.step(gen)
			}
		}
	}()
}

func (e *Engine) stopLocked() {
	if e.ticker == nil {
		return
	}
	e.ticker.Stop()
	close(e.stop)
	e.ticker = nil
	e.stop = nil
}

func (e *Engine) step(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.custom || gen != e.gen {
		return
	}
	e.index = (e.index + 1) % len(e.palette)
	e.current = ParseHex(e.palette[e.index])
}

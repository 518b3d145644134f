package palette

import "time"

// Ticker is the part of *time.Ticker the engine needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests swap in a clock they can fire by hand.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

type realTicker struct{ t *time.Ticker }

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// SystemClock is backed by time.NewTicker.
var SystemClock Clock = realClock{}

// Package audio plays the optional ambient loop and interaction click.
// Sound is decoration: a missing asset or a missing output device turns it
// off quietly and never reaches the frame loop.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/assets"
	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	resampleQuality   = 4
	levelWindow       = 2048
)

// errOutput means the output device could not be opened.
var errOutput = errors.New("audio output unavailable")

// Output is where streamers are played. Speaker is the real device.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear()
}

// Speaker plays through the system audio device.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (Speaker) Lock() { speaker.Lock() }
func (Speaker) Unlock() { speaker.Unlock() }
func (Speaker) Clear() { speaker.Clear() }

// Decoder turns an encoded asset into a seekable stream.
type Decoder func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// Availability says which sounds were found.
type Availability struct {
	Ambient     bool
	Interaction bool
}

type Option func(*Player)

func WithOutput(o Output) Option { return func(p *Player) { p.out = o } }
func WithDecoder(d Decoder) Option { return func(p *Player) { p.decode = d } }
func WithLogger(l *zap.Logger) Option { return func(p *Player) { p.log = l } }

func WithSampleRate(sr beep.SampleRate) Option { return func(p *Player) { p.sampleRate = sr } }

// WithVolumes sets the ambient and interaction volumes in [0,1].
func WithVolumes(ambient, interaction float64) Option {
	return func(p *Player) {
		p.ambientVol = ambient
		p.interactionVol = interaction
	}
}

// Player owns the decoded sounds and the on/off switch.
type Player struct {
	out            Output
	decode         Decoder
	log            *zap.Logger
	sampleRate     beep.SampleRate
	ambientVol     float64
	interactionVol float64

	mu      sync.Mutex
	inited  bool
	failed  bool
	enabled bool
	playing bool
	closed  bool

	ambient     beep.StreamSeekCloser
	ambientCtrl *beep.Ctrl
	tap         *Tap
	click       *beep.Buffer

	meter Meter
}

func NewPlayer(opts ...Option) *Player {
	p := &Player{
		out:            Speaker{},
		decode:         mp3.Decode,
		sampleRate:     DefaultSampleRate,
		ambientVol:     config.AmbientVolume,
		interactionVol: config.InteractionVolume,
		meter:          Meter{Smoothing: config.SmoothingFactor},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = logging.OrNop(p.log)
	return p
}

// Prepare probes both assets in parallel and loads the ones present.
// Load failures are logged and leave that sound unavailable.
func (p *Player) Prepare(ctx context.Context, src assets.Source, ambient, interaction string) Availability {
	found := assets.ProbeAll(ctx, src, ambient, interaction)
	var av Availability
	if found[ambient] {
		if err := p.LoadAmbient(ctx, src, ambient); err != nil {
			p.log.Warn("ambient sound unavailable", zap.String("asset", ambient), zap.Error(err))
		} else {
			av.Ambient = true
		}
	}
	if found[interaction] {
		if err := p.LoadInteraction(ctx, src, interaction); err != nil {
			p.log.Warn("interaction sound unavailable", zap.String("asset", interaction), zap.Error(err))
		} else {
			av.Interaction = true
		}
	}
	p.log.Info("sound assets probed",
		zap.Bool("ambient", av.Ambient),
		zap.Bool("interaction", av.Interaction))
	return av
}

func (p *Player) open(ctx context.Context, src assets.Source, name string) (beep.StreamSeekCloser, beep.Format, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := p.decode(rc)
	if err != nil {
		_ = rc.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return s, format, nil
}

func (p *Player) resampled(s beep.Streamer, from beep.SampleRate) beep.Streamer {
	if from == p.sampleRate {
		return s
	}
	return beep.Resample(resampleQuality, from, p.sampleRate, s)
}

func volume(s beep.Streamer, v float64) *effects.Volume {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v), Silent: v <= 0}
}

// LoadAmbient decodes the looping track. It starts paused.
func (p *Player) LoadAmbient(ctx context.Context, src assets.Source, name string) error {
	s, format, err := p.open(ctx, src, name)
	if err != nil {
		return err
	}
	tap := NewTap(p.resampled(beep.Loop(-1, s), format.SampleRate), config.LevelRingSize)
	ctrl := &beep.Ctrl{Streamer: volume(tap, p.ambientVol), Paused: true}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = s.Close()
		return errors.New("player closed")
	}
	if p.ambient != nil {
		_ = p.ambient.Close()
	}
	p.ambient, p.ambientCtrl, p.tap = s, ctrl, tap
	return nil
}

// LoadInteraction decodes the click fully into memory so it can overlap
// itself.
func (p *Player) LoadInteraction(ctx context.Context, src assets.Source, name string) error {
	s, format, err := p.open(ctx, src, name)
	if err != nil {
		return err
	}
	defer s.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: p.sampleRate, NumChannels: 2, Precision: format.Precision})
	buf.Append(p.resampled(s, format.SampleRate))
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	p.mu.Lock()
	p.click = buf
	p.mu.Unlock()
	return nil
}

func (p *Player) HasAmbient() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ambient != nil
}

func (p *Player) HasInteraction() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.click != nil
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// initLocked opens the output once. After a failure it stays silent.
func (p *Player) initLocked() error {
	if p.inited {
		return nil
	}
	if p.failed {
		return errOutput
	}
	if err := p.out.Init(p.sampleRate, p.sampleRate.N(time.Second/20)); err != nil {
		p.failed = true
		return fmt.Errorf("%w: %w", errOutput, err)
	}
	p.inited = true
	return nil
}

// SetEnabled starts or pauses the ambient loop. The switch flips even when
// playback is prevented, like a muted page toggle.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.enabled = on
	if p.ambientCtrl == nil {
		return
	}
	if on {
		if err := p.initLocked(); err != nil {
			p.log.Warn("audio play prevented", zap.Error(err))
			return
		}
		if !p.playing {
			p.out.Play(p.ambientCtrl)
			p.playing = true
		}
	}
	if !p.inited {
		return
	}
	p.out.Lock()
	p.ambientCtrl.Paused = !on
	p.out.Unlock()
}

// Toggle flips the switch and returns the new state.
func (p *Player) Toggle() bool {
	on := !p.Enabled()
	p.SetEnabled(on)
	return on
}

// PlayInteraction plays the click when sound is on and the asset exists.
func (p *Player) PlayInteraction() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || !p.enabled || p.click == nil {
		return
	}
	if err := p.initLocked(); err != nil {
		p.log.Warn("audio play prevented", zap.Error(err))
		return
	}
	p.out.Play(volume(p.click.Streamer(0, p.click.Len()), p.interactionVol))
}

// Level is the smoothed loudness of the ambient loop, 0 while silent.
// Call it once per frame.
func (p *Player) Level() float64 {
	p.mu.Lock()
	tap, on := p.tap, p.enabled && p.playing
	p.mu.Unlock()
	v := 0.0
	if tap != nil && on {
		v = Loudness(tap.Snapshot(levelWindow))
	}
	return p.meter.Update(v)
}

// Close stops everything and releases the ambient stream.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.enabled = false
	if p.inited {
		p.out.Clear()
	}
	if p.ambient != nil {
		_ = p.ambient.Close()
		p.ambient = nil
	}
	p.ambientCtrl = nil
	p.click = nil
}

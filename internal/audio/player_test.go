package audio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Jay-Lokhande/lazmy/internal/assets"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// constStream yields n stereo samples of value v.
type constStream struct {
	n, pos int
	v      float64
	rc     io.ReadCloser
	closed bool
}

func (s *constStream) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	k := min(len(samples), s.n-s.pos)
	for i := range k {
		samples[i] = [2]float64{s.v, s.v}
	}
	s.pos += k
	return k, true
}

func (s *constStream) Err() error    { return nil }
func (s *constStream) Len() int      { return s.n }
func (s *constStream) Position() int { return s.pos }

func (s *constStream) Seek(p int) error {
	s.pos = p
	return nil
}

func (s *constStream) Close() error {
	s.closed = true
	return s.rc.Close()
}

// fakeDecoder treats the file body "bad" as undecodable and hands out a
// constant stream otherwise.
type fakeDecoder struct {
	mu      sync.Mutex
	streams []*constStream
}

func (d *fakeDecoder) decode(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if string(body) == "bad" {
		return nil, beep.Format{}, errors.New("not an mp3")
	}
	s := &constStream{n: 4410, v: 0.5, rc: rc}
	d.mu.Lock()
	d.streams = append(d.streams, s)
	d.mu.Unlock()
	return s, beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}, nil
}

type fakeOutput struct {
	initErr error
	inits   int
	clears  int
	locks   int
	played  []beep.Streamer
}

func (o *fakeOutput) Init(beep.SampleRate, int) error {
	o.inits++
	return o.initErr
}

func (o *fakeOutput) Play(s ...beep.Streamer) { o.played = append(o.played, s...) }
func (o *fakeOutput) Lock()                   { o.locks++ }
func (o *fakeOutput) Unlock()                 {}
func (o *fakeOutput) Clear()                  { o.clears++ }

func assetDir(t *testing.T, files map[string]string) assets.DirSource {
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return assets.DirSource{Dir: dir}
}

func newTestPlayer(t *testing.T, out *fakeOutput, dec *fakeDecoder, log *zap.Logger) *Player {
	t.Helper()
	p := NewPlayer(WithOutput(out), WithDecoder(dec.decode), WithLogger(log))
	t.Cleanup(p.Close)
	return p
}

func TestPrepareAvailability(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  Availability
	}{
		{"none", nil, Availability{}},
		{"ambient only", map[string]string{"ambient.mp3": "ok"}, Availability{Ambient: true}},
		{"both", map[string]string{"ambient.mp3": "ok", "click.mp3": "ok"}, Availability{Ambient: true, Interaction: true}},
		{"undecodable", map[string]string{"ambient.mp3": "bad", "click.mp3": "ok"}, Availability{Interaction: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(t, &fakeOutput{}, &fakeDecoder{}, nil)
			got := p.Prepare(context.Background(), assetDir(t, tt.files), "ambient.mp3", "click.mp3")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Ambient, p.HasAmbient())
			assert.Equal(t, tt.want.Interaction, p.HasInteraction())
		})
	}
}

func TestSetEnabledPlaysOnceAndPauses(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out, &fakeDecoder{}, nil)
	require.True(t, p.Prepare(context.Background(), assetDir(t, map[string]string{"ambient.mp3": "ok"}), "ambient.mp3", "click.mp3").Ambient)

	assert.False(t, p.Enabled())
	assert.Equal(t, 0, out.inits)

	assert.True(t, p.Toggle())
	require.Len(t, out.played, 1)
	ctrl, ok := out.played[0].(*beep.Ctrl)
	require.True(t, ok)
	assert.False(t, ctrl.Paused)

	assert.False(t, p.Toggle())
	assert.True(t, ctrl.Paused)

	p.SetEnabled(true)
	assert.Len(t, out.played, 1)
	assert.Equal(t, 1, out.inits)
	assert.False(t, ctrl.Paused)
}

func TestSetEnabledWithoutAmbient(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out, &fakeDecoder{}, nil)

	p.SetEnabled(true)
	assert.True(t, p.Enabled())
	assert.Equal(t, 0, out.inits)
	assert.Empty(t, out.played)
}

func TestPlayInteractionRequiresSoundOn(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out, &fakeDecoder{}, nil)
	p.Prepare(context.Background(), assetDir(t, map[string]string{"click.mp3": "ok"}), "ambient.mp3", "click.mp3")

	p.PlayInteraction()
	assert.Empty(t, out.played)

	p.SetEnabled(true)
	p.PlayInteraction()
	p.PlayInteraction()
	require.Len(t, out.played, 2)

	vol, ok := out.played[0].(*effects.Volume)
	require.True(t, ok)
	buf := make([][2]float64, 16)
	n, ok := vol.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 16, n)
	assert.InDelta(t, 0.5*0.2, buf[0][0], 1e-3)
}

func TestOutputFailureIsLoggedAndSticky(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	out := &fakeOutput{initErr: errors.New("no device")}
	p := newTestPlayer(t, out, &fakeDecoder{}, zap.New(core))
	p.Prepare(context.Background(), assetDir(t, map[string]string{"ambient.mp3": "ok", "click.mp3": "ok"}), "ambient.mp3", "click.mp3")

	p.SetEnabled(true)
	p.PlayInteraction()
	p.SetEnabled(true)

	assert.True(t, p.Enabled())
	assert.Equal(t, 1, out.inits)
	assert.Empty(t, out.played)
	assert.Equal(t, 3, logs.FilterMessage("audio play prevented").Len())
	assert.Zero(t, p.Level())
}

func TestLevelFollowsAmbientStream(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out, &fakeDecoder{}, nil)
	p.Prepare(context.Background(), assetDir(t, map[string]string{"ambient.mp3": "ok"}), "ambient.mp3", "click.mp3")

	assert.Zero(t, p.Level())

	p.SetEnabled(true)
	require.Len(t, out.played, 1)
	buf := make([][2]float64, 512)
	_, ok := out.played[0].Stream(buf)
	require.True(t, ok)
	assert.InDelta(t, 0.5*0.3, buf[0][0], 1e-9)

	// 0.4 of the first reading, then converging.
	first := p.Level()
	assert.InDelta(t, 0.4*Loudness([][2]float64{{0.5, 0.5}}), first, 1e-9)
	assert.Greater(t, p.Level(), first)

	p.SetEnabled(false)
	assert.Less(t, p.Level(), first*2)
}

func TestClose(t *testing.T) {
	out := &fakeOutput{}
	dec := &fakeDecoder{}
	p := NewPlayer(WithOutput(out), WithDecoder(dec.decode))
	p.Prepare(context.Background(), assetDir(t, map[string]string{"ambient.mp3": "ok", "click.mp3": "ok"}), "ambient.mp3", "click.mp3")
	p.SetEnabled(true)

	p.Close()
	p.Close()
	assert.Equal(t, 1, out.clears)
	assert.False(t, p.Enabled())
	assert.False(t, p.HasAmbient())
	assert.False(t, p.HasInteraction())
	for _, s := range dec.streams {
		assert.True(t, s.closed)
	}

	p.SetEnabled(true)
	p.PlayInteraction()
	assert.False(t, p.Enabled())
	assert.Len(t, out.played, 1)

	err := p.LoadAmbient(context.Background(), assetDir(t, map[string]string{"ambient.mp3": "ok"}), "ambient.mp3")
	assert.Error(t, err)
}

func TestCloseBeforeOutputOpened(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(WithOutput(out))
	p.Close()
	assert.Zero(t, out.clears)
}

func TestTapSnapshot(t *testing.T) {
	src := &constStream{n: 10, v: 0.25, rc: io.NopCloser(nil)}
	tap := NewTap(src, 4)

	assert.Empty(t, tap.Snapshot(8))

	buf := make([][2]float64, 3)
	n, ok := tap.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 3, n)
	assert.Len(t, tap.Snapshot(8), 3)
	assert.Len(t, tap.Snapshot(2), 2)

	tap.Stream(buf)
	snap := tap.Snapshot(8)
	assert.Len(t, snap, 4)
	for _, s := range snap {
		assert.Equal(t, [2]float64{0.25, 0.25}, s)
	}
	assert.NoError(t, tap.Err())
}

func TestLoudness(t *testing.T) {
	assert.Zero(t, Loudness(nil))
	assert.Zero(t, Loudness([][2]float64{{0.5, -0.5}}))
	assert.InDelta(t, 1.0, Loudness([][2]float64{{1, 1}, {-1, -1}}), 1e-9)
	assert.Equal(t, 1.0, Loudness([][2]float64{{4, 4}}))
	quiet := Loudness([][2]float64{{0.01, 0.01}})
	assert.Greater(t, quiet, 0.01)
}

func TestMeter(t *testing.T) {
	m := Meter{Smoothing: 0.6}
	assert.InDelta(t, 0.4, m.Update(1), 1e-9)
	assert.InDelta(t, 0.64, m.Update(1), 1e-9)
	assert.InDelta(t, 0.384, m.Update(0), 1e-9)
	assert.InDelta(t, 0.384, m.Level(), 1e-9)
}

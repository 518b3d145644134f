package particles

import (
	"math"
	"math/rand/v2"

	"github.com/Jay-Lokhande/lazmy/internal/config"
)

// Particle is one decorative dot. Distance, Angle and Force are scratch
// values from the last update.
type Particle struct {
	X, Y                 float64
	OriginalX, OriginalY float64

	Size, MinSize, MaxSize float64
	SpeedX, SpeedY         float64

	PulseDirection float64
	PulseSpeed     float64

	Distance float64
	Angle    float64
	Force    float64
}

func newParticle(rng *rand.Rand, w, h float64) Particle {
	p := Particle{
		X:          rng.Float64() * w,
		Y:          rng.Float64() * h,
		Size:       rng.Float64()*3 + 1,
		SpeedX:     rng.Float64() - 0.5,
		SpeedY:     rng.Float64() - 0.5,
		PulseSpeed: rng.Float64() * 0.1,
	}
	p.OriginalX, p.OriginalY = p.X, p.Y
	p.MaxSize = p.Size + rng.Float64()*2
	p.MinSize = math.Max(0.5, p.Size-rng.Float64()*2)
	p.PulseDirection = -1
	if rng.Float64() > 0.5 {
		p.PulseDirection = 1
	}
	return p
}

// Repulsion is the displacement applied at distance d from the pointer.
func Repulsion(d float64) float64 {
	if d >= config.RepelRadius {
		return 0
	}
	return (config.RepelRadius - d) / config.RepelDivisor
}

// update advances the particle by one frame inside a w×h viewport.
func (p *Particle) update(mx, my, w, h float64) {
	dx := mx - p.X
	dy := my - p.Y
	p.Distance = math.Hypot(dx, dy)
	p.Angle = math.Atan2(dy, dx)

	p.Force = 0
	if p.Distance < config.RepelRadius {
		p.Force = Repulsion(p.Distance)
		p.X -= math.Cos(p.Angle) * p.Force
		p.Y -= math.Sin(p.Angle) * p.Force
	}

	p.X += p.SpeedX
	p.Y += p.SpeedY

	p.X += (p.OriginalX - p.X) * config.ReturnRate
	p.Y += (p.OriginalY - p.Y) * config.ReturnRate

	p.X = wrap(p.X, w)
	p.Y = wrap(p.Y, h)

	p.Size += p.PulseSpeed * p.PulseDirection
	switch {
	case p.Size > p.MaxSize:
		p.Size = p.MaxSize
		p.PulseDirection = -1
	case p.Size < p.MinSize:
		p.Size = p.MinSize
		p.PulseDirection = 1
	}
}

// wrap maps v into [0, size).
func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}

package config

import "time"

const (
	WindowWidth  = 1280
	WindowHeight = 800
	WindowTitle  = "lazmy.art - coming soon"

	// Particle field
	MaxParticles    = 70
	AreaPerParticle = 15000
	LayerOpacity    = 0.4

	RepelRadius  = 100.0
	RepelDivisor = 500.0
	ReturnRate   = 0.01

	LinkDistance = 150.0
	LinkAlpha    = 0.1
	LinkWidth    = 2.0

	// Color cycle
	CyclePeriod = 5000 * time.Millisecond

	// Mouse trail
	TrailMaxDots = 15
	TrailLife    = time.Second

	// Floating shapes
	ShapeCount = 15

	// Audio
	AmbientVolume     = 0.3
	InteractionVolume = 0.2
	LevelRingSize     = 8192
	SmoothingFactor   = 0.6

	// Buttons
	ButtonSize   = 40
	ButtonGap    = 12
	ButtonMargin = 16
)

// Palette is the auto-cycle order. Order matters, the values don't.
var Palette = []string{
	"#00FF7F", // neon green
	"#FF1493", // deep pink
	"#00BFFF", // deep sky blue
	"#FFD700", // gold
	"#FF4500", // orange red
	"#9400D3", // dark violet
	"#1E90FF", // dodger blue
	"#32CD32", // lime green
	"#FF00FF", // magenta
	"#00FFFF", // cyan
}

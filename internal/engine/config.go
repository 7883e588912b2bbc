package engine

import "github.com/vovakirdan/beatdodge/internal/core"

// SessionConfig tunes the player and camera of a session.
type SessionConfig struct {
	World core.Vec2 // Playfield size in world units

	PlayerRadius        float64
	PlayerSpeed         float64 // World units per second
	DashSpeed           float64 // World units per second while dashing
	DashSeconds         float64
	InvulnerableSeconds float64
	HitPoints           int

	// PlayerStart is the spawn point as a fraction of World.
	PlayerStart core.Vec2

	JerkDecay  float64 // Per-frame jerk multiplier
	ShakeDecay float64 // Per-frame shake multiplier

	// ConsumeHits disables hit point loss when false. Hits still grant
	// invulnerability.
	ConsumeHits bool

	// ClampPlayer keeps the player inside the playfield.
	ClampPlayer bool

	Seed int64
}

// DefaultSessionConfig returns the standard tuning.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		World:               core.V(1600, 900),
		PlayerRadius:        5,
		PlayerSpeed:         300,
		DashSpeed:           800,
		DashSeconds:         0.3,
		InvulnerableSeconds: 2.0,
		HitPoints:           3,
		PlayerStart:         core.V(0.5, 0.5),
		JerkDecay:           0.8,
		ShakeDecay:          0.95,
		ConsumeHits:         true,
		ClampPlayer:         true,
		Seed:                1,
	}
}

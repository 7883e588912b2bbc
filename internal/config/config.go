// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"time"

	"github.com/vovakirdan/beatdodge/internal/audio"
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// GameConfig contains all tunable game settings.
type GameConfig struct {
	World  WorldConfig  `yaml:"world"`
	Player PlayerConfig `yaml:"player"`
	Camera CameraConfig `yaml:"camera"`
	Audio  AudioConfig  `yaml:"audio"`
	Debug  DebugConfig  `yaml:"debug"`
}

// WorldConfig defines the playfield in world units. The terminal renderer
// scales it to whatever size the terminal has.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines movement and damage parameters.
type PlayerConfig struct {
	Radius              float64 `yaml:"radius"`
	Speed               float64 `yaml:"speed"`      // World units per second
	DashSpeed           float64 `yaml:"dash_speed"` // World units per second
	DashSeconds         float64 `yaml:"dash_seconds"`
	InvulnerableSeconds float64 `yaml:"invulnerable_seconds"`
	HitPoints           int     `yaml:"hit_points"`
	StartX              float64 `yaml:"start_x"` // Fraction of world width
	StartY              float64 `yaml:"start_y"` // Fraction of world height
	ConsumeHits         bool    `yaml:"consume_hits"`
}

// CameraConfig defines per-frame decay of camera effects.
type CameraConfig struct {
	JerkDecay  float64 `yaml:"jerk_decay"`
	ShakeDecay float64 `yaml:"shake_decay"`
}

// AudioConfig defines speaker output.
type AudioConfig struct {
	SampleRate          int  `yaml:"sample_rate"`
	BufferMS            int  `yaml:"buffer_ms"`
	Quality             int  `yaml:"quality"`
	LatencyCompensation bool `yaml:"latency_compensation"`
}

// DebugConfig toggles developer aids.
type DebugConfig struct {
	CollisionOverlay bool `yaml:"collision_overlay"`
	OverlayStep      int  `yaml:"overlay_step"` // Sample every Nth cell
}

// Session converts the config into session tuning.
func (c GameConfig) Session() engine.SessionConfig {
	cfg := engine.DefaultSessionConfig()
	cfg.World = core.V(c.World.Width, c.World.Height)
	cfg.PlayerRadius = c.Player.Radius
	cfg.PlayerSpeed = c.Player.Speed
	cfg.DashSpeed = c.Player.DashSpeed
	cfg.DashSeconds = c.Player.DashSeconds
	cfg.InvulnerableSeconds = c.Player.InvulnerableSeconds
	cfg.HitPoints = c.Player.HitPoints
	cfg.PlayerStart = core.V(c.Player.StartX, c.Player.StartY)
	cfg.ConsumeHits = c.Player.ConsumeHits
	cfg.JerkDecay = c.Camera.JerkDecay
	cfg.ShakeDecay = c.Camera.ShakeDecay
	return cfg
}

// AudioOptions converts the audio section into speaker options.
func (c GameConfig) AudioOptions() audio.Options {
	return audio.Options{
		SampleRate:        c.Audio.SampleRate,
		Buffer:            time.Duration(c.Audio.BufferMS) * time.Millisecond,
		Quality:           c.Audio.Quality,
		CompensateLatency: c.Audio.LatencyCompensation,
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:  1600,
			Height: 900,
		},
		Player: PlayerConfig{
			Radius:              5,
			Speed:               300,
			DashSpeed:           800,
			DashSeconds:         0.3,
			InvulnerableSeconds: 2.0,
			HitPoints:           3,
			StartX:              0.5,
			StartY:              0.5,
			ConsumeHits:         true,
		},
		Camera: CameraConfig{
			JerkDecay:  0.8,
			ShakeDecay: 0.95,
		},
		Audio: AudioConfig{
			SampleRate:          44100,
			BufferMS:            100,
			Quality:             4,
			LatencyCompensation: true,
		},
		Debug: DebugConfig{
			CollisionOverlay: false,
			OverlayStep:      1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultGameYAML
}

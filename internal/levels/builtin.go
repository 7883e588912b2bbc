package levels

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/hazard"
	"github.com/vovakirdan/beatdodge/internal/registry"
)

// Builtin is the Source of levels compiled into the binary.
const Builtin = "builtin"

func init() {
	registry.Register(registry.Level{ID: "pulse", Title: "Pulse", Finished: true, Source: Builtin, Loader: loadPulse})
	registry.Register(registry.Level{ID: "drift", Title: "Drift", Finished: true, Source: Builtin, Loader: loadDrift})
	registry.Register(registry.Level{ID: "lattice", Title: "Lattice", Finished: false, Source: Builtin, Loader: loadLattice})
}

// TrackPath returns the conventional track location of a built-in level.
func TrackPath(id string) string {
	return "music/" + id + ".mp3"
}

func colors(fg, bg core.Color) engine.Action {
	return engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		acc.Foreground(fg)
		acc.Background(bg)
	})
}

func spawn(o engine.Obstacle) engine.Action {
	return hazard.ObstacleSpawner(o)
}

// scatter is a cheap deterministic spread in [0, 1) for positioners.
func scatter(step int) float64 {
	x := float64(step)*0.6180339887 + 0.31
	return x - float64(int(x))
}

// Package registry provides a global registry of playable levels.
// Built-in levels register themselves in init() functions and level files
// are registered when loaded, so the platform can discover and start levels
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Level is a registered level: metadata plus the loader that fills a fresh
// session's schedule.
type Level struct {
	// ID is a unique identifier (e.g., "pulse", "drift").
	// Used for CLI commands and result storage.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Finished marks levels whose choreography covers the whole track.
	// Unfinished levels are listed but flagged as work in progress.
	Finished bool

	// Source describes where the level came from ("builtin" or a file path).
	Source string

	Loader engine.Loader
}

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID       string
	Title    string
	Finished bool
	Source   string
}

var (
	levels = make(map[string]Level)
	mu     sync.RWMutex
)

// Register adds a level to the registry.
// Typically called from an init() function.
// Panics if a level with the same ID is already registered.
func Register(l Level) {
	if err := TryRegister(l); err != nil {
		panic(err.Error())
	}
}

// TryRegister adds a level, reporting a duplicate or incomplete level as an
// error instead of panicking. Used for level files.
func TryRegister(l Level) error {
	if l.ID == "" {
		return fmt.Errorf("registry: level without id")
	}
	if l.Loader == nil {
		return fmt.Errorf("registry: level %q has no loader", l.ID)
	}
	if l.Title == "" {
		l.Title = l.ID
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := levels[l.ID]; exists {
		return fmt.Errorf("registry: level %q already registered", l.ID)
	}
	levels[l.ID] = l
	return nil
}

// Unregister removes a level. Unknown IDs are ignored.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(levels, id)
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(levels))
	for _, l := range levels {
		result = append(result, LevelInfo{
			ID:       l.ID,
			Title:    l.Title,
			Finished: l.Finished,
			Source:   l.Source,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a level by its ID.
// Returns an error if the level ID is not registered.
func Get(id string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	l, ok := levels[id]
	if !ok {
		return Level{}, fmt.Errorf("registry: unknown level %q", id)
	}
	return l, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := levels[id]
	return ok
}

// Package levels provides the built-in levels and level-file loading.
// Built-in levels register themselves with the registry in init(); level
// files are registered explicitly with RegisterDir.
// This package depends on engine and hazard but neither depends on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/levels/formats"
	"github.com/vovakirdan/beatdodge/internal/registry"
)

// Level represents a level loaded from a file.
type Level struct {
	ID       string
	Name     string
	BPM      float64
	Offset   float64
	Track    string // Resolved against the file's directory
	Length   float64
	Finished bool
	Events   []engine.Event
	Metadata map[string]string
	FilePath string
}

// Loader returns an engine loader that schedules fresh copies of the
// level's events.
func (l *Level) Loader() engine.Loader {
	return func(s *engine.Session) engine.LevelInfo {
		s.ScheduleEvents(engine.CloneOffset(l.Events, 0)...)
		return engine.LevelInfo{
			Offset: l.Offset,
			BPM:    l.BPM,
			Track:  l.Track,
			Length: l.Length,
		}
	}
}

// FileError reports a level file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic
// ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// Validate loads every level file and reports each one that fails.
func (l *Loader) Validate() ([]FileError, error) {
	_, problems, err := l.scan()
	return problems, err
}

func (l *Loader) scan() ([]Level, []FileError, error) {
	var (
		levels   []Level
		problems []FileError
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			problems = append(problems, FileError{Path: path, Err: err})
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, problems, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	track := parsed.Track
	if !filepath.IsAbs(track) {
		track = filepath.Join(filepath.Dir(path), track)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		BPM:      parsed.BPM,
		Offset:   parsed.Offset,
		Track:    track,
		Length:   parsed.Length,
		Finished: parsed.Finished,
		Events:   parsed.Events,
		Metadata: parsed.Metadata,
		FilePath: path,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// RegisterDir loads every level file under root and adds it to the
// registry. A missing directory registers nothing. Files that fail to load
// or clash with a registered ID are returned as problems.
func RegisterDir(root string) (int, []FileError, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return 0, nil, nil
	}

	loader := NewLoader(root)
	levels, problems, err := loader.scan()
	if err != nil {
		return 0, nil, err
	}

	n := 0
	for i := range levels {
		lvl := levels[i]
		err := registry.TryRegister(registry.Level{
			ID:       lvl.ID,
			Title:    lvl.Name,
			Finished: lvl.Finished,
			Source:   lvl.FilePath,
			Loader:   lvl.Loader(),
		})
		if err != nil {
			problems = append(problems, FileError{Path: lvl.FilePath, Err: err})
			continue
		}
		n++
	}
	return n, problems, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// DefaultHoldDuration is how long a direction counts as held after its last
// press or auto-repeat. Terminals report presses and repeats but no releases.
const DefaultHoldDuration = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// It remembers when each action was last pressed so a play frame can treat
// recently pressed keys as held.
type KeyMapper struct {
	hold time.Duration
	last map[core.Action]time.Time
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		hold: DefaultHoldDuration,
		last: make(map[core.Action]time.Time),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "k", "up":
		return core.ActionUp, false
	case "s", "j", "down":
		return core.ActionDown, false
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "shift+up", "shift+down", "shift+left", "shift+right":
		return core.ActionDash, false
	case "enter":
		return core.ActionConfirm, false
	case "esc", "b":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// Press records a key message at now.
// Returns the mapped action and whether it was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) (core.Action, bool) {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		km.last[action] = now
	}
	// Shifted arrows move and dash at once.
	switch msg.String() {
	case "shift+up":
		km.last[core.ActionUp] = now
	case "shift+down":
		km.last[core.ActionDown] = now
	case "shift+left":
		km.last[core.ActionLeft] = now
	case "shift+right":
		km.last[core.ActionRight] = now
	}
	return action, isQuit
}

// Frame fills frame with every action pressed within the hold duration
// before now.
func (km *KeyMapper) Frame(now time.Time, frame *core.InputFrame) {
	frame.Clear()
	for a, t := range km.last {
		if now.Sub(t) <= km.hold {
			frame.Set(a)
		} else {
			delete(km.last, a)
		}
	}
}

// Release forgets every held action.
func (km *KeyMapper) Release() {
	clear(km.last)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionStartBack
	MenuActionStartForward
	MenuActionDifficulty
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "[":
		return MenuActionStartBack
	case "]":
		return MenuActionStartForward
	case "tab":
		return MenuActionScoreboard
	case "f":
		return MenuActionDifficulty
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

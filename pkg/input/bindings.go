package input

import (
	"fmt"
	"strings"
)

// Action is a set of movement intents resolved from held keys
type Action uint8

const (
	Forward Action = 1 << iota
	Backward
	Left
	Right
	Jump
)

// Has reports whether every bit of a is set
func (a Action) Has(flag Action) bool {
	return a&flag == flag
}

func (a Action) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, n := range actionNames {
		if a.Has(n.action) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

var actionNames = []struct {
	action Action
	name   string
}{
	{Forward, "forward"},
	{Backward, "backward"},
	{Left, "left"},
	{Right, "right"},
	{Jump, "jump"},
}

// Bindings maps each action to the key codes that trigger it
type Bindings map[Action][]string

// DefaultBindings returns WASD plus arrow keys for movement and Space for jump
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  {CodeKeyW, CodeArrowUp},
		Backward: {CodeKeyS, CodeArrowDown},
		Left:     {CodeKeyA, CodeArrowLeft},
		Right:    {CodeKeyD, CodeArrowRight},
		Jump:     {CodeSpace},
	}
}

// ParseAction converts an action name ("forward", "jump", ...) to its flag
func ParseAction(name string) (Action, error) {
	for _, n := range actionNames {
		if strings.EqualFold(n.name, name) {
			return n.action, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Resolve returns the set of actions whose keys are held
func (b Bindings) Resolve(keys Keys) Action {
	var actions Action
	for action, codes := range b {
		for _, code := range codes {
			if keys.IsHeld(code) {
				actions |= action
				break
			}
		}
	}
	return actions
}

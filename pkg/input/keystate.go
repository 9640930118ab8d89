// Package input tracks keyboard state and maps raw key codes to movement actions.
package input

// Keys is the read side of a key state, queried once per frame by locomotion.
type Keys interface {
	IsHeld(code string) bool
}

// KeyState records which keys are currently held, keyed by DOM-style key code
// ("KeyW", "ArrowUp", "Space", ...).
type KeyState struct {
	held map[string]bool
}

// NewKeyState creates an empty key state
func NewKeyState() *KeyState {
	return &KeyState{held: make(map[string]bool)}
}

// KeyDown marks code as held
func (k *KeyState) KeyDown(code string) {
	k.held[code] = true
}

// KeyUp marks code as released
func (k *KeyState) KeyUp(code string) {
	k.held[code] = false
}

// IsHeld reports whether code is held. Codes never pressed are not held.
func (k *KeyState) IsHeld(code string) bool {
	return k.held[code]
}

// Held returns the codes currently held, in no particular order.
func (k *KeyState) Held() []string {
	codes := make([]string, 0, len(k.held))
	for code, down := range k.held {
		if down {
			codes = append(codes, code)
		}
	}
	return codes
}

// ReleaseAll marks every known key as released. Used when the window loses
// focus, since the matching key-up events are never delivered.
func (k *KeyState) ReleaseAll() {
	for code := range k.held {
		k.held[code] = false
	}
}

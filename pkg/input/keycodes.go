package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Key codes used by the default bindings
const (
	CodeKeyW       = "KeyW"
	CodeKeyA       = "KeyA"
	CodeKeyS       = "KeyS"
	CodeKeyD       = "KeyD"
	CodeArrowUp    = "ArrowUp"
	CodeArrowDown  = "ArrowDown"
	CodeArrowLeft  = "ArrowLeft"
	CodeArrowRight = "ArrowRight"
	CodeSpace      = "Space"
	CodeEscape     = "Escape"

	// CodeUnidentified is reported for keys without a named code
	CodeUnidentified = "Unidentified"
)

var namedCodes = map[glfw.Key]string{
	glfw.KeySpace:        CodeSpace,
	glfw.KeyEscape:       CodeEscape,
	glfw.KeyEnter:        "Enter",
	glfw.KeyTab:          "Tab",
	glfw.KeyBackspace:    "Backspace",
	glfw.KeyUp:           CodeArrowUp,
	glfw.KeyDown:         CodeArrowDown,
	glfw.KeyLeft:         CodeArrowLeft,
	glfw.KeyRight:        CodeArrowRight,
	glfw.KeyLeftShift:    "ShiftLeft",
	glfw.KeyRightShift:   "ShiftRight",
	glfw.KeyLeftControl:  "ControlLeft",
	glfw.KeyRightControl: "ControlRight",
	glfw.KeyLeftAlt:      "AltLeft",
	glfw.KeyRightAlt:     "AltRight",
	glfw.KeyMinus:        "Minus",
	glfw.KeyEqual:        "Equal",
	glfw.KeyComma:        "Comma",
	glfw.KeyPeriod:       "Period",
	glfw.KeySlash:        "Slash",
	glfw.KeySemicolon:    "Semicolon",
}

// CodeForKey converts a GLFW key to its DOM-style code ("KeyW", "ArrowUp", "Digit1").
// Keys without a known name map to CodeUnidentified.
func CodeForKey(key glfw.Key) string {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return "Key" + string(rune('A'+(key-glfw.KeyA)))
	case key >= glfw.Key0 && key <= glfw.Key9:
		return "Digit" + string(rune('0'+(key-glfw.Key0)))
	}

	if code, ok := namedCodes[key]; ok {
		return code
	}
	return CodeUnidentified
}

// Package debug provides a small tweak panel for live values, driven from the terminal.
package debug

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Control is a bounded numeric value with a step, like a slider
type Control struct {
	Name string
	Min  float32
	Max  float32
	Step float32
	Get  func() float32
	Set  func(float32)
}

// Normalize snaps v to the control's step and clamps it into [Min, Max]
func (c *Control) Normalize(v float32) float32 {
	if c.Step > 0 {
		// snap in float64 using the step's shortest decimal form so 0.001 stays 0.001
		step, _ := strconv.ParseFloat(strconv.FormatFloat(float64(c.Step), 'g', -1, 32), 64)
		v = float32(math.Round(float64(v)/step) * step)
	}
	return mgl32.Clamp(v, c.Min, c.Max)
}

// Folder groups controls under a name
type Folder struct {
	Name     string
	controls map[string]*Control
	order    []string
}

// Add registers a control; a later control with the same name replaces it
func (f *Folder) Add(c *Control) *Control {
	if _, ok := f.controls[c.Name]; !ok {
		f.order = append(f.order, c.Name)
	}
	f.controls[c.Name] = c
	return c
}

// Control returns the named control
func (f *Folder) Control(name string) (*Control, bool) {
	c, ok := f.controls[name]
	return c, ok
}

// Panel is a set of folders addressed by "folder.control" or, when unambiguous, "control"
type Panel struct {
	folders map[string]*Folder
	order   []string
}

// NewPanel creates an empty panel
func NewPanel() *Panel {
	return &Panel{folders: make(map[string]*Folder)}
}

// AddFolder returns the named folder, creating it on first use
func (p *Panel) AddFolder(name string) *Folder {
	if f, ok := p.folders[name]; ok {
		return f
	}
	f := &Folder{Name: name, controls: make(map[string]*Control)}
	p.folders[name] = f
	p.order = append(p.order, name)
	return f
}

// Positioner is anything with a mutable position, such as the camera
type Positioner interface {
	Position() mgl32.Vec3
	SetPosition(pos mgl32.Vec3)
}

// AddPositionFolder adds x, y and z controls bound to target's position
func (p *Panel) AddPositionFolder(name string, target Positioner, min, max, step float32) *Folder {
	f := p.AddFolder(name)
	for i, axis := range []string{"x", "y", "z"} {
		i := i
		f.Add(&Control{
			Name: axis,
			Min:  min,
			Max:  max,
			Step: step,
			Get:  func() float32 { return target.Position()[i] },
			Set: func(v float32) {
				pos := target.Position()
				pos[i] = v
				target.SetPosition(pos)
			},
		})
	}
	return f
}

// Lookup finds a control by "folder.control" or by a control name unique across folders
func (p *Panel) Lookup(path string) (*Control, error) {
	if folder, name, ok := strings.Cut(path, "."); ok {
		f, found := p.folders[folder]
		if !found {
			return nil, fmt.Errorf("no folder %q", folder)
		}
		c, found := f.Control(name)
		if !found {
			return nil, fmt.Errorf("no control %q in %s", name, folder)
		}
		return c, nil
	}

	var match *Control
	for _, folder := range p.order {
		if c, ok := p.folders[folder].Control(path); ok {
			if match != nil {
				return nil, fmt.Errorf("control %q is ambiguous, use folder.%s", path, path)
			}
			match = c
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no control %q", path)
	}
	return match, nil
}

// Set normalizes v for the control at path and applies it, returning the stored value
func (p *Panel) Set(path string, v float32) (float32, error) {
	c, err := p.Lookup(path)
	if err != nil {
		return 0, err
	}
	v = c.Normalize(v)
	c.Set(v)
	return v, nil
}

// Values renders every control as "folder.name=value", sorted by path
func (p *Panel) Values() []string {
	var out []string
	for _, folder := range p.order {
		f := p.folders[folder]
		for _, name := range f.order {
			c := f.controls[name]
			out = append(out, fmt.Sprintf("%s.%s=%.3f", folder, name, c.Get()))
		}
	}
	sort.Strings(out)
	return out
}

const helpText = "commands: set <control> <value> | get | help"

// Exec runs one command line and returns the reply to show the user
func (p *Panel) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	switch fields[0] {
	case "set":
		if len(fields) != 3 {
			return "", fmt.Errorf("usage: set <control> <value>")
		}
		v, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return "", fmt.Errorf("bad value %q: %w", fields[2], err)
		}
		stored, err := p.Set(fields[1], float32(v))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s=%.3f", fields[1], stored), nil
	case "get":
		return strings.Join(p.Values(), " "), nil
	case "help":
		return helpText, nil
	default:
		return "", fmt.Errorf("unknown command %q (%s)", fields[0], helpText)
	}
}

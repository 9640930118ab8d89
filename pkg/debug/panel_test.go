package debug

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ pos mgl32.Vec3 }

func (p *point) Position() mgl32.Vec3       { return p.pos }
func (p *point) SetPosition(pos mgl32.Vec3) { p.pos = pos }

func cameraPanel(target *point) *Panel {
	p := NewPanel()
	p.AddPositionFolder("camera", target, -15, 15, 0.001)
	return p
}

func TestControlNormalize(t *testing.T) {
	c := &Control{Min: -15, Max: 15, Step: 0.001}

	assert.Equal(t, float32(15), c.Normalize(40))
	assert.Equal(t, float32(-15), c.Normalize(-15.5))
	assert.InDelta(t, 1.235, c.Normalize(1.23456), 1e-6)
}

func TestSetMovesTarget(t *testing.T) {
	target := &point{pos: mgl32.Vec3{0, 1, 0}}
	p := cameraPanel(target)

	v, err := p.Set("x", 3.5)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), v)

	_, err = p.Set("camera.z", -99)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{3.5, 1, -15}, target.pos)
}

func TestLookupErrors(t *testing.T) {
	target := &point{}
	p := cameraPanel(target)
	p.AddPositionFolder("light", &point{}, -1, 1, 0.1)

	_, err := p.Lookup("x")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = p.Lookup("camera.w")
	assert.ErrorContains(t, err, "no control")

	_, err = p.Lookup("sun.x")
	assert.ErrorContains(t, err, "no folder")

	c, err := p.Lookup("light.y")
	require.NoError(t, err)
	assert.Equal(t, float32(1), c.Max)
}

func TestExec(t *testing.T) {
	target := &point{pos: mgl32.Vec3{1, 2, 3}}
	p := cameraPanel(target)

	reply, err := p.Exec("get")
	require.NoError(t, err)
	assert.Equal(t, "camera.x=1.000 camera.y=2.000 camera.z=3.000", reply)

	reply, err = p.Exec("  set   y  4.25 ")
	require.NoError(t, err)
	assert.Equal(t, "y=4.250", reply)
	assert.Equal(t, float32(4.25), target.pos.Y())

	reply, err = p.Exec("")
	require.NoError(t, err)
	assert.Empty(t, reply)

	reply, err = p.Exec("help")
	require.NoError(t, err)
	assert.Contains(t, reply, "set <control> <value>")

	_, err = p.Exec("set y")
	assert.ErrorContains(t, err, "usage")

	_, err = p.Exec("set y high")
	assert.ErrorContains(t, err, "bad value")

	_, err = p.Exec("jump")
	assert.ErrorContains(t, err, "unknown command")
}

func TestConsolePoll(t *testing.T) {
	target := &point{}
	p := cameraPanel(target)

	var out bytes.Buffer
	c := NewConsole(p, strings.NewReader(""), &out)

	c.Submit("set x 2")
	c.Submit("set q 1")
	assert.Equal(t, 2, c.Poll())
	assert.Equal(t, 0, c.Poll())

	assert.Equal(t, float32(2), target.pos.X())
	assert.Contains(t, out.String(), "x=2.000")
	assert.Contains(t, out.String(), `error: no control "q"`)
}

func TestConsoleStartReadsLines(t *testing.T) {
	target := &point{}
	p := cameraPanel(target)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewConsole(p, strings.NewReader("set z 7\nset x -1\n"), &bytes.Buffer{})
	c.Start(ctx)

	ran := 0
	assert.Eventually(t, func() bool {
		ran += c.Poll()
		return ran == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, mgl32.Vec3{-1, 0, 7}, target.pos)
}

func TestRefreshSkipsNonTerminal(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(NewPanel(), strings.NewReader(""), &out)

	c.Refresh(Status{State: "grounded"}, time.Now())
	c.Close()
	assert.Empty(t, out.String())
}

func TestFormatStatus(t *testing.T) {
	line := FormatStatus(Status{
		Position:  mgl32.Vec3{1, 1, -2.5},
		VelocityY: 4.8,
		State:     "airborne",
		FPS:       59.6,
		Locked:    true,
	})
	assert.Equal(t, "pos=(1.000, 1.000, -2.500) vy=4.80 airborne locked 60fps", line)
}

package game

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-roam/internal/config"
	"github.com/leterax/go-roam/pkg/debug"
	"github.com/leterax/go-roam/pkg/input"
	"github.com/leterax/go-roam/pkg/locomotion"
	"github.com/leterax/go-roam/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	g, err := New(config.Default(), render.NewCamera(mgl32.Vec3{}), opts...)
	require.NoError(t, err)
	return g
}

func TestNewStartsGrounded(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Camera().Position())
	assert.Equal(t, locomotion.Grounded, g.Player().State())
	assert.Empty(t, g.Keys().Held())
}

func TestNewRejectsUnboundAction(t *testing.T) {
	cfg := config.Default()
	cfg.Controls.Jump = nil

	_, err := New(cfg, render.NewCamera(mgl32.Vec3{}))
	assert.ErrorContains(t, err, "jump")
}

func TestStepWalksForward(t *testing.T) {
	g := newTestGame(t)

	g.KeyEvent(input.CodeKeyW, true)
	g.Step(frame)
	g.Step(frame)

	pos := g.Camera().Position()
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.InDelta(t, 1, pos.Y(), 1e-6)
	assert.InDelta(t, -0.04, pos.Z(), 1e-5)

	g.KeyEvent(input.CodeKeyW, false)
	g.Step(frame)
	assert.InDelta(t, -0.04, g.Camera().Position().Z(), 1e-5)
}

func TestStepZeroDeltaStandsStill(t *testing.T) {
	g := newTestGame(t)

	g.KeyEvent(input.CodeKeyD, true)
	g.KeyEvent(input.CodeArrowUp, true)
	g.Step(0)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Camera().Position())
}

func TestJumpAndLand(t *testing.T) {
	g := newTestGame(t)

	g.KeyEvent(input.CodeSpace, true)
	g.Step(frame)
	g.KeyEvent(input.CodeSpace, false)

	assert.Equal(t, locomotion.Airborne, g.Player().State())
	assert.Greater(t, g.Camera().Position().Y(), float32(1))

	peak := float32(0)
	for i := 0; i < 120 && g.Player().State() == locomotion.Airborne; i++ {
		g.Step(frame)
		if y := g.Camera().Position().Y(); y > peak {
			peak = y
		}
	}

	assert.Equal(t, locomotion.Grounded, g.Player().State())
	assert.Equal(t, float32(1), g.Camera().Position().Y())
	assert.Zero(t, g.Player().VelocityY)
	assert.InDelta(t, 2.27, peak, 0.1)
}

func TestFocusLostReleasesKeys(t *testing.T) {
	g := newTestGame(t)

	g.KeyEvent(input.CodeKeyW, true)
	g.KeyEvent(input.CodeKeyA, true)
	g.FocusLost()
	g.Step(frame)

	assert.Empty(t, g.Keys().Held())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Camera().Position())
}

func TestPointerLockChangedShowsInStatus(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGame(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	g.PointerLockChanged(true)
	assert.True(t, g.Status().Locked)
	g.PointerLockChanged(false)
	assert.False(t, g.Status().Locked)

	assert.Contains(t, buf.String(), "pointer locked")
	assert.Contains(t, buf.String(), "pointer unlocked")
}

func TestStatusTracksFPS(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < 10; i++ {
		g.Frame(frame)
	}

	s := g.Status()
	assert.InDelta(t, 60, s.FPS, 0.01)
	assert.Equal(t, "grounded", s.State)
}

func TestApplyConfig(t *testing.T) {
	g := newTestGame(t)

	cfg := config.Default()
	cfg.World.Boundary = config.BoundaryConfig{MinX: -0.01, MaxX: 0.01, MinZ: -0.01, MaxZ: 0.01}
	cfg.Controls.Forward = []string{"KeyI"}
	cfg.Logging.Level = "info"
	require.NoError(t, g.ApplyConfig(cfg))

	g.KeyEvent(input.CodeKeyW, true)
	g.Step(frame)
	assert.Equal(t, float32(0), g.Camera().Position().Z())

	g.KeyEvent("KeyI", true)
	g.Step(frame)
	assert.Equal(t, float32(-0.01), g.Camera().Position().Z())
	assert.Same(t, cfg, g.Config())

	bad := config.Default()
	bad.Controls.Left = []string{" "}
	assert.Error(t, g.ApplyConfig(bad))
	assert.Same(t, cfg, g.Config())
}

func TestStepAppliesReloads(t *testing.T) {
	var buf bytes.Buffer
	updates := make(chan *config.Config, 1)
	errs := make(chan error, 1)
	g := newTestGame(t,
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithReloads(updates, errs))

	cfg := config.Default()
	cfg.Physics.Step = 0.5
	updates <- cfg
	errs <- io.ErrUnexpectedEOF

	g.KeyEvent(input.CodeKeyW, true)
	g.Step(frame)

	assert.InDelta(t, -0.5, g.Camera().Position().Z(), 1e-5)
	assert.Contains(t, buf.String(), "config reloaded")
	assert.Contains(t, buf.String(), "config reload failed")

	close(updates)
	close(errs)
	assert.NotPanics(t, func() { g.Step(frame) })
}

func TestConsoleMovesCamera(t *testing.T) {
	var out bytes.Buffer
	g := newTestGame(t)
	console := debug.NewConsole(g.Panel(), strings.NewReader(""), &out)
	g.AttachConsole(console)

	console.Submit("set camera.x 3.25")
	console.Submit("set z 40")
	g.Step(frame)

	pos := g.Camera().Position()
	assert.Equal(t, float32(3.25), pos.X())
	assert.Equal(t, float32(15), pos.Z())
	assert.Contains(t, out.String(), "camera.x=3.250")
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Script
		wantErr string
	}{
		{name: "empty", in: ""},
		{
			name: "sorted by tick",
			in:   "30:-KeyW, 0:+KeyW,10:+Space",
			want: Script{
				{Tick: 0, Code: "KeyW", Down: true},
				{Tick: 10, Code: "Space", Down: true},
				{Tick: 30, Code: "KeyW", Down: false},
			},
		},
		{name: "missing sign", in: "0:KeyW", wantErr: "must start with"},
		{name: "missing code", in: "0:+", wantErr: "want tick"},
		{name: "bad tick", in: "x:+KeyW", wantErr: "bad tick"},
		{name: "negative tick", in: "-1:+KeyW", wantErr: "bad tick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScript(tt.in)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunHeadlessReplaysScript(t *testing.T) {
	g := newTestGame(t)
	script, err := ParseScript("0:+KeyW,10:-KeyW")
	require.NoError(t, err)

	err = RunHeadless(context.Background(), g, HeadlessConfig{Hz: 1000, Ticks: 20, Script: script})
	require.NoError(t, err)

	assert.InDelta(t, -0.2, g.Camera().Position().Z(), 1e-4)
	assert.Empty(t, g.Keys().Held())
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	g := newTestGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := RunHeadless(ctx, g, HeadlessConfig{Hz: 200})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunHeadlessRejectsNegativeHz(t *testing.T) {
	g := newTestGame(t)

	err := RunHeadless(context.Background(), g, HeadlessConfig{Hz: -1, Ticks: 1})
	assert.Error(t, err)
}

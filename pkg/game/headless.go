package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultHz is the headless tick rate
const DefaultHz = 60

// KeyEvent presses or releases a key at a given tick of a headless run
type KeyEvent struct {
	Tick int
	Code string
	Down bool
}

// Script is a list of key events, ordered by tick
type Script []KeyEvent

// ParseScript reads a comma separated list of "tick:+Code" (press) and
// "tick:-Code" (release) entries, e.g. "0:+KeyW,120:-KeyW,130:+Space".
func ParseScript(s string) (Script, error) {
	var script Script
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		tickStr, key, ok := strings.Cut(entry, ":")
		if !ok || len(key) < 2 {
			return nil, fmt.Errorf("script entry %q: want tick:+Code or tick:-Code", entry)
		}
		tick, err := strconv.Atoi(tickStr)
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("script entry %q: bad tick %q", entry, tickStr)
		}

		var down bool
		switch key[0] {
		case '+':
			down = true
		case '-':
		default:
			return nil, fmt.Errorf("script entry %q: key must start with + or -", entry)
		}
		script = append(script, KeyEvent{Tick: tick, Code: key[1:], Down: down})
	}

	sort.SliceStable(script, func(i, j int) bool { return script[i].Tick < script[j].Tick })
	return script, nil
}

// HeadlessConfig drives a run without a window
type HeadlessConfig struct {
	Hz     int    // ticks per second, DefaultHz when 0
	Ticks  int    // stop after this many ticks, 0 runs until ctx is done
	Script Script // key events replayed by tick
}

// RunHeadless steps g on a ticker with a fixed delta of 1/Hz seconds. It
// returns nil after cfg.Ticks ticks, or ctx's error when cancelled first.
func RunHeadless(ctx context.Context, g *Game, cfg HeadlessConfig) error {
	hz := cfg.Hz
	if hz == 0 {
		hz = DefaultHz
	}
	if hz < 0 {
		return errors.New("headless: hz must be positive")
	}
	delta := 1 / float32(hz)

	g.log.Info("running headless", "hz", hz, "ticks", cfg.Ticks, "script_events", len(cfg.Script))

	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	next := 0
	for tick := 0; cfg.Ticks == 0 || tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for next < len(cfg.Script) && cfg.Script[next].Tick <= tick {
			ev := cfg.Script[next]
			g.KeyEvent(ev.Code, ev.Down)
			next++
		}
		g.Step(delta)
	}

	pos := g.Camera().Position()
	g.log.Info("headless run finished",
		"ticks", cfg.Ticks,
		"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
		"state", g.Player().State())
	return nil
}

package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultRefreshInterval = 250 * time.Millisecond

// Status is the per-frame snapshot shown on the status line
type Status struct {
	Position  mgl32.Vec3
	VelocityY float32
	State     string
	FPS       float32
	Locked    bool
}

// Console reads panel commands from a line-based input and keeps a status
// line up to date on a terminal. Commands are queued by a reader goroutine
// and executed by Poll on the frame thread.
type Console struct {
	panel    *Panel
	in       io.Reader
	out      *termenv.Output
	fd       int
	terminal bool

	commands chan string
	interval time.Duration
	last     time.Time
}

// NewConsole creates a console for the panel. out is usually os.Stdout; the
// status line is only drawn when out is a terminal.
func NewConsole(panel *Panel, in io.Reader, out io.Writer) *Console {
	c := &Console{
		panel:    panel,
		in:       in,
		out:      termenv.NewOutput(out),
		fd:       -1,
		commands: make(chan string, 16),
		interval: defaultRefreshInterval,
	}
	if f, ok := out.(*os.File); ok {
		c.fd = int(f.Fd())
		c.terminal = term.IsTerminal(c.fd)
	}
	return c
}

// Start reads commands until ctx is done or the input ends
func (c *Console) Start(ctx context.Context) {
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case c.commands <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Submit queues a command as if it had been typed
func (c *Console) Submit(line string) {
	select {
	case c.commands <- line:
	default:
	}
}

// Poll executes the queued commands and prints their replies.
// It returns how many commands ran.
func (c *Console) Poll() int {
	n := 0
	for {
		select {
		case line := <-c.commands:
			n++
			reply, err := c.panel.Exec(line)
			switch {
			case err != nil:
				c.println(c.out.String("error: " + err.Error()).Foreground(c.out.Color("9")).String())
			case reply != "":
				c.println(reply)
			}
		default:
			return n
		}
	}
}

// Refresh redraws the status line if the refresh interval has passed
func (c *Console) Refresh(s Status, now time.Time) {
	if !c.terminal || now.Sub(c.last) < c.interval {
		return
	}
	c.last = now

	line := FormatStatus(s)
	if width, _, err := term.GetSize(c.fd); err == nil && width > 1 && len(line) >= width {
		line = line[:width-1]
	}
	c.out.ClearLine()
	fmt.Fprint(c.out, "\r"+c.styleState(line, s))
}

// Close ends the status line so later output starts on a fresh row
func (c *Console) Close() {
	if c.terminal {
		fmt.Fprint(c.out, "\r\n")
	}
}

func (c *Console) println(s string) {
	if c.terminal {
		c.out.ClearLine()
		fmt.Fprint(c.out, "\r")
	}
	fmt.Fprintln(c.out, s)
}

func (c *Console) styleState(line string, s Status) string {
	color := "10"
	if s.State != "grounded" {
		color = "11"
	}
	return strings.Replace(line, s.State, c.out.String(s.State).Foreground(c.out.Color(color)).String(), 1)
}

// FormatStatus renders s as a single plain-text line
func FormatStatus(s Status) string {
	lock := "unlocked"
	if s.Locked {
		lock = "locked"
	}
	return fmt.Sprintf("pos=(%.3f, %.3f, %.3f) vy=%.2f %s %s %.0ffps",
		s.Position.X(), s.Position.Y(), s.Position.Z(), s.VelocityY, s.State, lock, s.FPS)
}

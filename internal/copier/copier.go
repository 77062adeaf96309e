// Package copier writes text to the system clipboard, falling back to an
// OSC52 terminal escape sequence when no clipboard utility is available.
package copier

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrEmpty is returned when asked to copy an empty string.
var ErrEmpty = errors.New("nothing to copy")

// Method reports how text reached the clipboard.
type Method int

const (
	System Method = iota
	OSC52
)

func (m Method) String() string {
	if m == OSC52 {
		return "osc52"
	}
	return "system"
}

// Copier copies text to the clipboard.
type Copier struct {
	write    func(string) error
	terminal io.Writer
	env      func(string) string
}

// Params holds parameters for creating a Copier.
type Params struct {
	Write    func(string) error  // optional, uses the system clipboard if nil
	Terminal io.Writer           // optional, receives the OSC52 fallback; os.Stderr if nil
	Getenv   func(string) string // optional, os.Getenv if nil
}

// New creates a Copier.
func New(p Params) *Copier {
	c := &Copier{
		write:    p.Write,
		terminal: p.Terminal,
		env:      p.Getenv,
	}
	if c.write == nil {
		c.write = systemWrite
	}
	if c.terminal == nil {
		c.terminal = os.Stderr
	}
	if c.env == nil {
		c.env = os.Getenv
	}
	return c
}

func systemWrite(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Copy writes text to the clipboard and reports which method succeeded.
func (c *Copier) Copy(text string) (Method, error) {
	if text == "" {
		return System, ErrEmpty
	}

	sysErr := c.write(text)
	if sysErr == nil {
		return System, nil
	}

	seq := osc52.New(text)
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case c.env("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.terminal); err != nil {
		return OSC52, fmt.Errorf("clipboard: %v; osc52: %w", sysErr, err)
	}
	return OSC52, nil
}

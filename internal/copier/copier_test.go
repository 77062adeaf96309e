package copier

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func noEnv(string) string { return "" }

func TestCopy_System(t *testing.T) {
	var got string
	var term bytes.Buffer
	c := New(Params{
		Write:    func(s string) error { got = s; return nil },
		Terminal: &term,
		Getenv:   noEnv,
	})

	method, err := c.Copy("jack@example.com")
	assert.NilError(t, err)
	assert.Equal(t, method, System)
	assert.Equal(t, got, "jack@example.com")
	assert.Equal(t, term.Len(), 0)
}

func TestCopy_OSC52Fallback(t *testing.T) {
	var term bytes.Buffer
	c := New(Params{
		Write:    func(string) error { return errors.New("no xclip") },
		Terminal: &term,
		Getenv:   noEnv,
	})

	method, err := c.Copy("hi")
	assert.NilError(t, err)
	assert.Equal(t, method, OSC52)
	// base64("hi") == "aGk="
	assert.Assert(t, strings.HasPrefix(term.String(), "\x1b]52;c;aGk="))
}

func TestCopy_OSC52Tmux(t *testing.T) {
	var term bytes.Buffer
	c := New(Params{
		Write:    func(string) error { return errors.New("no xclip") },
		Terminal: &term,
		Getenv: func(k string) string {
			if k == "TMUX" {
				return "/tmp/tmux-1000/default,1,0"
			}
			return ""
		},
	})

	_, err := c.Copy("hi")
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(term.String(), "\x1bPtmux;"))
}

func TestCopy_BothFail(t *testing.T) {
	c := New(Params{
		Write:    func(string) error { return errors.New("no xclip") },
		Terminal: failingWriter{},
		Getenv:   noEnv,
	})

	_, err := c.Copy("hi")
	assert.ErrorContains(t, err, "no xclip")
}

func TestCopy_Empty(t *testing.T) {
	c := New(Params{Write: func(string) error { return nil }})

	_, err := c.Copy("")
	assert.Assert(t, errors.Is(err, ErrEmpty))
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, System.String(), "system")
	assert.Equal(t, OSC52.String(), "osc52")
}

// SPDX-License-Identifier: GPL-2.0-or-later

// Package console holds the scrollback text console: a fixed ring of
// wrapped lines, the transparent notify lines at the top of the screen and
// the input line.
package console

import (
	"fmt"
	"strings"

	"goq2/cmd"
	"goq2/conlog"
	"goq2/cvars"
)

const (
	totalLines  = 1024
	notifyLines = 4
	minWidth    = 38
)

type line struct {
	text []rune
	// end marks a hard line break; wrapped continuations have it unset so
	// a resize can re-flow them.
	end bool
}

// Console is the scrollback buffer. It is not safe for concurrent use; all
// printing happens on the main loop.
type Console struct {
	lines     [totalLines]line
	current   int // line being appended to
	display   int // bottom line shown when scrolled back
	lineWidth int

	// creation time of the most recent lines, for the notify overlay
	times [notifyLines]float64
	now   float64

	input inputLine
}

func New(width int) *Console {
	c := &Console{}
	c.lineWidth = clampWidth(width)
	c.input.reset()
	return c
}

func clampWidth(w int) int {
	if w < minWidth {
		return minWidth
	}
	return w
}

// SetTime advances the console clock used for notify expiry.
func (c *Console) SetTime(now float64) { c.now = now }

// Print appends text, wrapping at the console width. A trailing newline
// ends the current line.
func (c *Console) Print(s string) {
	for _, r := range s {
		switch r {
		case '\n':
			c.lineFeed(true)
		case '\r':
			c.lines[c.idx(c.current)].text = c.lines[c.idx(c.current)].text[:0]
		default:
			l := &c.lines[c.idx(c.current)]
			if len(l.text) >= c.lineWidth {
				c.lineFeed(false)
				l = &c.lines[c.idx(c.current)]
			}
			l.text = append(l.text, r)
			c.times[c.current%notifyLines] = c.now
		}
	}
}

func (c *Console) idx(n int) int {
	return ((n % totalLines) + totalLines) % totalLines
}

func (c *Console) lineFeed(hard bool) {
	c.lines[c.idx(c.current)].end = hard
	if c.display == c.current {
		c.display++
	}
	c.current++
	next := &c.lines[c.idx(c.current)]
	next.text = next.text[:0]
	next.end = false
}

// Line returns the text n lines back from the current one.
func (c *Console) Line(back int) string {
	return string(c.lines[c.idx(c.current-back)].text)
}

// Clear wipes the scrollback.
func (c *Console) Clear() {
	for i := range c.lines {
		c.lines[i].text = c.lines[i].text[:0]
		c.lines[i].end = false
	}
	c.current = 0
	c.display = 0
}

// ClearNotify expires the notify overlay immediately.
func (c *Console) ClearNotify() {
	for i := range c.times {
		c.times[i] = 0
	}
}

// Notify returns the recent lines still young enough for the top-of-screen
// overlay, oldest first.
func (c *Console) Notify() []string {
	ttl := float64(cvars.ConsoleNotifyTime.Value())
	var out []string
	start := c.current - notifyLines + 1
	if start < 0 {
		start = 0
	}
	for n := start; n <= c.current; n++ {
		t := c.times[n%notifyLines]
		if t == 0 || c.now-t > ttl {
			continue
		}
		s := string(c.lines[c.idx(n)].text)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Resize re-wraps the scrollback to a new width.
func (c *Console) Resize(width int) {
	width = clampWidth(width)
	if width == c.lineWidth {
		return
	}

	// rebuild the logical lines, then reprint them at the new width
	var paras []string
	var b strings.Builder
	start := c.current - totalLines + 1
	if start < 0 {
		start = 0
	}
	for n := start; n <= c.current; n++ {
		l := &c.lines[c.idx(n)]
		b.WriteString(string(l.text))
		if l.end || n == c.current {
			paras = append(paras, b.String())
			b.Reset()
		}
	}

	c.Clear()
	c.lineWidth = width
	for i, p := range paras {
		c.Print(p)
		if i < len(paras)-1 {
			c.Print("\n")
		}
	}
}

// ScrollUp moves the displayed window back through the scrollback.
func (c *Console) ScrollUp(n int) {
	c.display -= n
	low := c.current - totalLines + 1
	if c.display < low {
		c.display = low
	}
	if c.display < 0 {
		c.display = 0
	}
}

// ScrollDown moves the displayed window toward the live end.
func (c *Console) ScrollDown(n int) {
	c.display += n
	if c.display > c.current {
		c.display = c.current
	}
}

func (c *Console) ScrollEnd() { c.display = c.current }

func (c *Console) Input() *inputLine { return &c.input }

// Attach routes conlog output into this console and registers the console
// commands.
func (c *Console) Attach() {
	print := func(format string, v ...interface{}) {
		c.Print(fmt.Sprintf(format, v...))
	}
	conlog.SetPrintf(print)
	conlog.SetSavePrintf(print)

	cmd.Must(cmd.AddCommand("clear", func(args cmd.Arguments) error {
		c.Clear()
		return nil
	}))
	cmd.Must(cmd.AddCommand("messagemode", func(args cmd.Arguments) error {
		c.input.reset()
		return nil
	}))
}

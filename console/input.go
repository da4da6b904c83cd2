// SPDX-License-Identifier: GPL-2.0-or-later

package console

import (
	"goq2/cmd"
	"goq2/conlog"
	"goq2/cvar"
)

const historyLines = 32

// inputLine is the editable command line at the bottom of the console.
type inputLine struct {
	buf    []rune
	cursor int

	history [historyLines][]rune
	histPos int // next history slot to write
	histNav int // lines back while browsing, 0 when live
	pending []rune
}

func (l *inputLine) reset() {
	l.buf = l.buf[:0]
	l.cursor = 0
	l.histNav = 0
}

func (l *inputLine) String() string { return string(l.buf) }

func (l *inputLine) AddChar(r rune) {
	if r < ' ' {
		return
	}
	l.buf = append(l.buf, 0)
	copy(l.buf[l.cursor+1:], l.buf[l.cursor:])
	l.buf[l.cursor] = r
	l.cursor++
}

func (l *inputLine) Backspace() {
	if l.cursor == 0 {
		return
	}
	l.buf = append(l.buf[:l.cursor-1], l.buf[l.cursor:]...)
	l.cursor--
}

func (l *inputLine) CursorLeft() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *inputLine) CursorRight() {
	if l.cursor < len(l.buf) {
		l.cursor++
	}
}

// HistoryUp replaces the line with the previous submitted one. The live
// line is stashed so HistoryDown can bring it back.
func (l *inputLine) HistoryUp() {
	if l.histNav == 0 {
		l.pending = append([]rune(nil), l.buf...)
	}
	if l.histNav >= historyLines || l.histNav >= l.histPos {
		return
	}
	l.histNav++
	prev := l.history[(l.histPos-l.histNav)%historyLines]
	l.buf = append(l.buf[:0], prev...)
	l.cursor = len(l.buf)
}

func (l *inputLine) HistoryDown() {
	if l.histNav == 0 {
		return
	}
	l.histNav--
	if l.histNav == 0 {
		l.buf = append(l.buf[:0], l.pending...)
	} else {
		prev := l.history[(l.histPos-l.histNav)%historyLines]
		l.buf = append(l.buf[:0], prev...)
	}
	l.cursor = len(l.buf)
}

// Submit echoes and executes the line: commands first, then cvar get/set,
// then an unknown-command complaint.
func (l *inputLine) Submit() {
	text := string(l.buf)
	l.history[l.histPos%historyLines] = append([]rune(nil), l.buf...)
	l.histPos++
	l.reset()

	conlog.Printf("]%s\n", text)
	execute(text)
}

func execute(text string) {
	args := cmd.Parse(text)
	if len(args.Args()) == 0 {
		return
	}
	if ok, err := cmd.Execute(args); ok {
		return
	} else if err != nil {
		conlog.Printf("%v\n", err)
		return
	}
	if ok, err := cvar.Execute(args); ok {
		return
	} else if err != nil {
		conlog.Printf("%v\n", err)
		return
	}
	conlog.Printf("Unknown command \"%s\"\n", args.Argv(0).String())
}

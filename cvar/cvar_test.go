// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import "testing"

func TestSetByString(t *testing.T) {
	cv := MustRegister("test_set", "0.5", NONE)
	if cv.Value() != 0.5 {
		t.Errorf("default value = %v", cv.Value())
	}
	cv.SetByString("2")
	if cv.Value() != 2 || cv.String() != "2" {
		t.Errorf("after SetByString: %v %q", cv.Value(), cv.String())
	}
	if !cv.Modified() {
		t.Errorf("SetByString did not mark modified")
	}
}

func TestSetValueFormatting(t *testing.T) {
	cv := MustRegister("test_fmt", "0", NONE)
	cv.SetValue(3)
	if cv.String() != "3" {
		t.Errorf("integral value formatted as %q", cv.String())
	}
	cv.SetValue(3.25)
	if cv.String() != "3.25" {
		t.Errorf("fractional value formatted as %q", cv.String())
	}
}

func TestNoSet(t *testing.T) {
	cv := MustRegister("test_noset", "7", NOSET)
	cv.SetByString("9")
	if cv.Value() != 7 {
		t.Errorf("NOSET cvar changed to %v", cv.Value())
	}
}

func TestCallback(t *testing.T) {
	cv := MustRegister("test_cb", "1", NONE)
	called := false
	cv.SetCallback(func(*Cvar) { called = true })
	cv.SetValue(4)
	if !called {
		t.Errorf("callback not invoked")
	}
}

func TestDuplicateRegister(t *testing.T) {
	MustRegister("test_dup", "1", NONE)
	if _, err := Register("test_dup", "2", NONE); err == nil {
		t.Errorf("duplicate register did not fail")
	}
}

func TestToggleAndReset(t *testing.T) {
	cv := MustRegister("test_toggle", "0", NONE)
	cv.Toggle()
	if !cv.Bool() {
		t.Errorf("Toggle did not flip to 1")
	}
	cv.Reset()
	if cv.Bool() {
		t.Errorf("Reset did not restore default")
	}
}

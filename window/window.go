// SPDX-License-Identifier: GPL-2.0-or-later

// Package window owns the SDL window and its 2.1 compatibility GL context.
package window

import (
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"goq2/cvars"
)

var (
	window      *sdl.Window
	context     sdl.GLContext
	skipUpdates bool
)

func Get() *sdl.Window {
	return window
}

func Size() (int32, int32) {
	w, h := window.GetSize()
	return w, h
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
	sdl.Quit()
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func VSync() bool {
	i, _ := sdl.GLGetSwapInterval()
	return i == 1
}

func InputFocus() bool {
	return window.GetFlags()&(sdl.WINDOW_MOUSE_FOCUS|sdl.WINDOW_INPUT_FOCUS) != 0
}

// SetMode creates the window and GL context on first call, resizes on
// later ones. The fixed-function pipeline needs a compatibility profile.
func SetMode(width, height int32, fullscreen bool) error {
	if window == nil {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			return errors.Wrap(err, "initializing SDL video")
		}
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	if window == nil {
		flags := uint32(sdl.WINDOW_OPENGL)
		w, err := sdl.CreateWindow("goq2", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
		if err != nil {
			sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
			sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 0)
			w, err = sdl.CreateWindow("goq2", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
		}
		if err != nil {
			return errors.Wrap(err, "creating window")
		}
		window = w
	}

	window.SetSize(width, height)
	window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN); err != nil {
			return errors.Wrap(err, "entering fullscreen")
		}
	} else if Fullscreen() {
		if err := window.SetFullscreen(0); err != nil {
			return errors.Wrap(err, "leaving fullscreen")
		}
	}

	window.Show()

	if context == nil {
		c, err := window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "creating GL context")
		}
		context = c
		sdl.GLSetSwapInterval(1)
	}

	cvars.VideoWidth.SetValue(float32(width))
	cvars.VideoHeight.SetValue(float32(height))
	return nil
}

func SetSkipUpdates(skip bool) {
	skipUpdates = skip
}

func EndRendering() {
	if skipUpdates {
		return
	}
	window.GLSwap()
}

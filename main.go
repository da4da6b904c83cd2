// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gopxl/mainthread/v2"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"goq2/cmd"
	"goq2/config"
	"goq2/conlog"
	"goq2/console"
	"goq2/cvars"
	"goq2/logging"
	"goq2/refgl"
	"goq2/snd"
	"goq2/window"
)

var configPath = flag.String("config", "goq2.yaml", "path to the config file")

func main() {
	flag.Parse()
	mainthread.Run(run)
}

type host struct {
	cfg      *config.Config
	renderer *refgl.Renderer
	sound    *snd.System
	console  *console.Console
	quit     bool
}

func run() {
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Init("info", "")
		logging.Fatal("loading config", zap.Error(err))
	}
	if err := logging.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Println("logger init:", err)
		return
	}
	defer logging.Sync()

	// typed config sections seed the cvars, archived cvars override
	cvars.VideoWidth.SetValue(float32(cfg.Video.Width))
	cvars.VideoHeight.SetValue(float32(cfg.Video.Height))
	if cfg.Video.Fullscreen {
		cvars.VideoFullscreen.SetByString("1")
	}
	cvars.VideoGamma.SetValue(cfg.Video.Gamma)
	cvars.SoundVolume.SetValue(cfg.Sound.Volume)
	cfg.ApplyCvars()
	conlog.SetDeveloper(cvars.Developer.Bool())

	h := &host{cfg: cfg}

	width := int32(cvars.VideoWidth.Value())
	height := int32(cvars.VideoHeight.Value())

	mainthread.Call(func() {
		if err := window.SetMode(width, height, cvars.VideoFullscreen.Bool()); err != nil {
			logging.Fatal("video init", zap.Error(err))
		}
		backend, err := refgl.NewGLBackend()
		if err != nil {
			logging.Fatal("gl init", zap.Error(err))
		}
		h.renderer = refgl.NewRenderer(backend, width, height)
	})
	defer mainthread.Call(window.Shutdown)

	h.console = console.New(int(width) / 8)
	h.console.Attach()

	h.sound = snd.New(cfg.Sound.SampleRate)
	if err := h.sound.Start(); err != nil {
		// keep running silent
		logging.Error("sound init", zap.Error(err))
	}
	defer h.sound.Shutdown()

	cmd.Must(cmd.AddCommand("quit", func(args cmd.Arguments) error {
		h.quit = true
		return nil
	}))

	conlog.Printf("======== goq2 initialized ========\n")

	start := time.Now()
	for !h.quit {
		now := time.Since(start).Seconds()
		h.console.SetTime(now)

		mainthread.Call(func() {
			h.pollEvents()
			h.renderFrame(float32(now))
			window.EndRendering()
		})
	}

	cfg.CollectCvars()
	if err := cfg.SaveTo(*configPath); err != nil {
		logging.Error("saving config", zap.Error(err))
	}
}

func (h *host) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			h.quit = true
		case *sdl.KeyboardEvent:
			h.handleKey(t)
		case *sdl.TextInputEvent:
			for _, r := range t.GetText() {
				h.console.Input().AddChar(r)
			}
		}
	}
}

func (h *host) handleKey(ev *sdl.KeyboardEvent) {
	if ev.Type != sdl.KEYDOWN {
		return
	}
	in := h.console.Input()
	switch ev.Keysym.Sym {
	case sdl.K_ESCAPE:
		h.quit = true
	case sdl.K_RETURN:
		in.Submit()
	case sdl.K_BACKSPACE:
		in.Backspace()
	case sdl.K_LEFT:
		in.CursorLeft()
	case sdl.K_RIGHT:
		in.CursorRight()
	case sdl.K_UP:
		in.HistoryUp()
	case sdl.K_DOWN:
		in.HistoryDown()
	case sdl.K_PAGEUP:
		h.console.ScrollUp(2)
	case sdl.K_PAGEDOWN:
		h.console.ScrollDown(2)
	}
}

// renderFrame draws whatever scene the game logic provides. Without a
// loaded map the frame is the flat no-world clear.
func (h *host) renderFrame(now float32) {
	if cvars.GlTextureMode.Modified() {
		cvars.GlTextureMode.ClearModified()
		h.renderer.Images().ApplyTextureMode(cvars.GlTextureMode.String())
	}
	w, ht := window.Size()
	rd := &refgl.RefDef{
		Width:  w,
		Height: ht,
		FovX:   90,
		FovY:   73.7,
		Time:   now,
	}
	if !h.haveWorld() {
		rd.RdFlags |= refgl.RdfNoWorldModel
	}
	if err := h.renderer.RenderFrame(rd); err != nil {
		logging.Error("render frame", zap.Error(err))
		h.quit = true
	}
}

func (h *host) haveWorld() bool {
	// map loading comes in through SetWorld; nothing provides one yet
	return false
}

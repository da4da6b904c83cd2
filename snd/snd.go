// SPDX-License-Identifier: GPL-2.0-or-later

// Package snd is the sound effect mixer: a precache table of decoded
// buffers and distance-attenuated playback through the speaker.
package snd

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"goq2/cvars"
	"goq2/math/vec"
)

// hearingRange is the distance at which a sound fades to silence.
const hearingRange = 1200

// Sound is one precached effect. The ID is stable for the lifetime of the
// process so game code can refer to sounds without holding the buffer.
type Sound struct {
	ID   uuid.UUID
	Name string
	buf  *beep.Buffer
}

type System struct {
	mu       sync.Mutex
	sounds   map[string]*Sound
	byID     map[uuid.UUID]*Sound
	format   beep.Format
	listener vec.Vec3
	started  bool
}

func New(sampleRate int) *System {
	return &System{
		sounds: make(map[string]*Sound),
		byID:   make(map[uuid.UUID]*Sound),
		format: beep.Format{
			SampleRate:  beep.SampleRate(sampleRate),
			NumChannels: 2,
			Precision:   2,
		},
	}
}

// Start opens the audio device. Precaching works without it; playback
// needs it.
func (s *System) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	err := speaker.Init(s.format.SampleRate, s.format.SampleRate.N(time.Second/10))
	if err != nil {
		return errors.Wrap(err, "opening audio device")
	}
	s.started = true
	return nil
}

func (s *System) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		speaker.Close()
		s.started = false
	}
}

// Precache decodes and stores a sound under its name. Caching the same
// name again returns the already decoded sound.
func (s *System) Precache(name string, stream beep.Streamer, format beep.Format) *Sound {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snd, ok := s.sounds[name]; ok {
		return snd
	}

	buf := beep.NewBuffer(s.format)
	if format.SampleRate != s.format.SampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, s.format.SampleRate, stream))
	} else {
		buf.Append(stream)
	}

	snd := &Sound{
		ID:   uuid.New(),
		Name: name,
		buf:  buf,
	}
	s.sounds[name] = snd
	s.byID[snd.ID] = snd
	return snd
}

// Lookup resolves a precached sound by id.
func (s *System) Lookup(id uuid.UUID) (*Sound, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.byID[id]
	return snd, ok
}

// SetListener moves the ear used for spatialization.
func (s *System) SetListener(origin vec.Vec3) {
	s.mu.Lock()
	s.listener = origin
	s.mu.Unlock()
}

// gainFor attenuates linearly with distance out to the hearing range and
// folds in the master volume.
func (s *System) gainFor(origin vec.Vec3) float64 {
	d := vec.Sub(origin, s.listener)
	att := 1 - float64(d.Length())/hearingRange
	if att < 0 {
		att = 0
	}
	vol := float64(cvars.SoundVolume.Value())
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	return att * vol
}

// Play starts a precached sound at a world position.
func (s *System) Play(id uuid.UUID, origin vec.Vec3) error {
	s.mu.Lock()
	snd, ok := s.byID[id]
	started := s.started
	gain := s.gainFor(origin)
	s.mu.Unlock()

	if !ok {
		return errors.Errorf("playing sound %v: not precached", id)
	}
	if !started {
		return errors.New("sound system not started")
	}
	if gain <= 0 {
		return nil // out of earshot
	}

	streamer := snd.buf.Streamer(0, snd.buf.Len())
	speaker.Play(&effects.Volume{
		Streamer: streamer,
		Base:     10,
		// Volume is an exponent; unity gain is 0
		Volume: gainToVolume(gain),
		Silent: gain == 0,
	})
	return nil
}

// gainToVolume converts a linear 0..1 gain into the exponent the volume
// effect expects; unity gain is 0.
func gainToVolume(gain float64) float64 {
	if gain >= 1 {
		return 0
	}
	if gain <= 0.001 {
		return -3
	}
	return math.Log10(gain)
}

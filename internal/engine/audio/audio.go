// Package audio plays the gallery's background track and the chime that
// marks each arrival at a stop.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Player mixes the looping background track with one-shot chimes.
type Player struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0..1
	paused      bool

	music       *beep.Ctrl
	musicSource beep.StreamSeekCloser

	chime *beep.Buffer
	mixer *beep.Mixer
}

// New creates a player at the given volume (clamped to 0..1).
func New(volume float64) *Player {
	return &Player{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	if p.musicSource != nil {
		p.musicSource.Close()
		p.musicSource = nil
	}
	p.music = nil
	speaker.Close()
	p.initialized = false
}

// PlayMusic decodes a WAV stream and loops it forever, replacing any
// track already playing. The player owns r afterwards.
func (p *Player) PlayMusic(r io.Reader) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}

	source, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	loop := beep.Loop(-1, source)
	ctrl := &beep.Ctrl{Streamer: p.resample(format.SampleRate, loop), Paused: p.paused}
	gain := &effects.Volume{Streamer: ctrl, Base: 2}
	applyGain(gain, p.volume)

	speaker.Lock()
	if p.music != nil {
		p.music.Streamer = nil
	}
	p.mixer.Add(gain)
	speaker.Unlock()

	if p.musicSource != nil {
		p.musicSource.Close()
	}
	p.music, p.musicSource = ctrl, source
	return nil
}

// LoadChime decodes a short WAV clip into memory for Chime.
func (p *Player) LoadChime(r io.Reader) error {
	source, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer source.Close()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  p.sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buf.Append(p.resample(format.SampleRate, source))

	p.mu.Lock()
	p.chime = buf
	p.mu.Unlock()
	return nil
}

// ChimeLength returns the loaded chime's duration.
func (p *Player) ChimeLength() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chime == nil {
		return 0
	}
	return p.sampleRate.D(p.chime.Len())
}

// Chime plays the arrival clip once. It does nothing without a device or
// a loaded clip. Pausing the music does not silence it.
func (p *Player) Chime() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.chime == nil {
		return
	}
	gain := &effects.Volume{Streamer: p.chime.Streamer(0, p.chime.Len()), Base: 2}
	applyGain(gain, p.volume)

	speaker.Lock()
	p.mixer.Add(gain)
	speaker.Unlock()
}

// SetPaused pauses or resumes the background track.
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paused = paused
	if p.music == nil {
		return
	}
	speaker.Lock()
	p.music.Paused = paused
	speaker.Unlock()
}

// Volume returns the output level.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *Player) resample(from beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == p.sampleRate {
		return s
	}
	return beep.Resample(4, from, p.sampleRate, s)
}

// applyGain maps a linear 0..1 level onto a base-2 volume effect.
func applyGain(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

package platform

import (
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// initSpeaker opens the output device once, at the rate of the first
// stream played.
func initSpeaker(rate beep.SampleRate) bool {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Millisecond*100))
	})
	return speakerErr == nil
}

// AudioStream is a decoded wav file that can be played, looped and
// attenuated.
type AudioStream struct {
	file    *os.File
	source  beep.StreamSeekCloser
	format  beep.Format
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	looped  bool
	playing bool
}

// OpenStream opens and decodes a wav file. It reports false when the file
// is missing or not a wav.
func OpenStream(path string) (*AudioStream, bool) {
	full, err := GetFullPath(path)
	if err != nil {
		return nil, false
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, false
	}
	source, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, false
	}

	s := &AudioStream{file: f, source: source, format: format}
	s.ctrl = &beep.Ctrl{Streamer: source, Paused: true}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2, Volume: 0}
	return s, true
}

// Len returns the stream length in samples.
func (s *AudioStream) Len() int {
	return s.source.Len()
}

// Looped reports whether the stream restarts at its end.
func (s *AudioStream) Looped() bool {
	return s.looped
}

// SetLooped switches between playing once and looping forever.
func (s *AudioStream) SetLooped(looped bool) {
	s.locked(func() {
		s.looped = looped
		if looped {
			s.ctrl.Streamer = beep.Loop(-1, s.source)
		} else {
			s.ctrl.Streamer = s.source
		}
	})
}

// SetVolume sets a linear volume in [0, 1]. Zero silences the stream.
func (s *AudioStream) SetVolume(v float64) {
	s.locked(func() {
		if v <= 0 {
			s.volume.Silent = true
			s.volume.Volume = 0
			return
		}
		s.volume.Silent = false
		s.volume.Volume = math.Log2(math.Min(v, 1))
	})
}

// Volume returns the current volume in [0, 1].
func (s *AudioStream) Volume() float64 {
	if s.volume.Silent {
		return 0
	}
	return math.Pow(2, s.volume.Volume)
}

// Play starts the stream from its current position. It reports false when
// no output device is available.
func (s *AudioStream) Play() bool {
	if !initSpeaker(s.format.SampleRate) {
		return false
	}
	var out beep.Streamer = s.volume
	if s.format.SampleRate != speakerRate {
		out = beep.Resample(4, s.format.SampleRate, speakerRate, s.volume)
	}
	s.locked(func() { s.ctrl.Paused = false })
	if !s.playing {
		s.playing = true
		speaker.Play(out)
	}
	return true
}

// Pause halts playback without losing the position.
func (s *AudioStream) Pause() {
	s.locked(func() { s.ctrl.Paused = true })
}

// Close stops playback and releases the file.
func (s *AudioStream) Close() error {
	s.locked(func() {
		s.ctrl.Streamer = nil
		s.ctrl.Paused = true
	})
	err := s.source.Close()
	s.file.Close()
	return err
}

// locked runs fn under the speaker lock once the stream is playing.
func (s *AudioStream) locked(fn func()) {
	if !s.playing {
		fn()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

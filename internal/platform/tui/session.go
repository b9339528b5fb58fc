package tui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/platform"
)

// Session drives one World on its own goroutine. Viewers never touch the
// world: they send actions in and receive committed frames out.
type Session struct {
	world  *engine.World
	clock  *core.Clock
	pub    *platform.FramePublisher
	logger *log.Logger
	rate   int

	// pending collects actions pressed since the last tick; held keeps
	// them alive for a few ticks since terminals report presses, not holds.
	pending atomic.Uint32
	held    uint32
	hold    int
	paused  atomic.Bool

	snapshot MapSnapshot

	mu   sync.Mutex
	last engine.Frame
	done chan struct{}

	// music follows the pause state while Run is running.
	audio   sync.Mutex
	music   *platform.AudioStream
	running bool
}

// holdTicks is how long one key press stays held.
const holdTicks = 4

// NewSession wraps a freshly created world. The map snapshot is taken here,
// before the world starts ticking.
func NewSession(w *engine.World, logger *log.Logger) *Session {
	opts := w.Options()
	rate := opts.Runtime.RenderRate
	if rate <= 0 {
		rate = 60
	}
	if logger == nil {
		logger = w.Logger()
	}
	s := &Session{
		world:    w,
		clock:    core.NewClock(opts.Runtime.TickRate),
		pub:      platform.NewFramePublisher(4),
		logger:   logger,
		rate:     rate,
		snapshot: NewMapSnapshot(w.Level()),
		done:     make(chan struct{}),
	}
	s.last = w.Frame()
	return s
}

// Map returns the static map captured when the session was created.
func (s *Session) Map() MapSnapshot {
	return s.snapshot
}

// Subscribe registers a viewer.
func (s *Session) Subscribe() *platform.Subscription {
	return s.pub.Subscribe()
}

// Viewers returns the number of subscribed viewers.
func (s *Session) Viewers() int {
	return s.pub.Count()
}

// Last returns the most recent committed frame.
func (s *Session) Last() engine.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Send queues an action for the next tick. Pause toggles immediately.
func (s *Session) Send(a core.Action) {
	if a == core.ActionPause {
		paused := !s.paused.Load()
		s.paused.Store(paused)
		s.logger.Debug("pause toggled", "paused", paused)
		s.followPause(paused)
		return
	}
	if a <= core.ActionNone || a >= 32 {
		return
	}
	for {
		old := s.pending.Load()
		if s.pending.CompareAndSwap(old, old|1<<uint(a)) {
			return
		}
	}
}

// SetMusic hands the session a track to loop while it runs. The session
// owns the stream from here on and closes it when Run returns.
func (s *Session) SetMusic(m *platform.AudioStream) {
	if m != nil {
		m.SetLooped(true)
	}
	s.audio.Lock()
	defer s.audio.Unlock()
	s.music = m
}

// Music returns the session's track, or nil.
func (s *Session) Music() *platform.AudioStream {
	s.audio.Lock()
	defer s.audio.Unlock()
	return s.music
}

func (s *Session) startMusic() {
	s.audio.Lock()
	s.running = true
	s.audio.Unlock()
	s.followPause(s.paused.Load())
}

func (s *Session) followPause(paused bool) {
	s.audio.Lock()
	defer s.audio.Unlock()
	if s.music == nil || !s.running {
		return
	}
	if paused {
		s.music.Pause()
		return
	}
	if !s.music.Play() {
		s.logger.Warn("no audio output, music disabled")
		s.music.Close()
		s.music = nil
	}
}

func (s *Session) stopMusic() {
	s.audio.Lock()
	defer s.audio.Unlock()
	if s.music == nil {
		return
	}
	if err := s.music.Close(); err != nil {
		s.logger.Debug("music close failed", "err", err)
	}
	s.music = nil
	s.running = false
}

// Paused reports whether ticking is suspended.
func (s *Session) Paused() bool {
	return s.paused.Load()
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run ticks the world at the presentation rate until ctx is cancelled or
// the level completes. Frames are published after every presentation step.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	defer s.pub.Close()
	defer s.stopMusic()

	ticker := time.NewTicker(time.Second / time.Duration(s.rate))
	defer ticker.Stop()

	s.logger.Info("session started", "level", s.world.Level().Name)
	s.startMusic()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session stopped", "ticks", s.world.Ticks(), "hash", s.world.Hash())
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if s.paused.Load() {
				continue
			}
			s.Step(elapsed)
			if s.world.LevelComplete() {
				s.logger.Info("level complete", "ticks", s.world.Ticks())
				return
			}
		}
	}
}

// Step advances the clock by elapsed, runs the ticks that are due, commits
// the blend and publishes the frame.
func (s *Session) Step(elapsed time.Duration) {
	ticks, ratio := s.clock.Advance(elapsed)
	for range ticks {
		s.world.Tick(s.input())
	}
	s.world.Commit(ratio)

	f := s.world.Frame()
	s.mu.Lock()
	s.last = f
	s.mu.Unlock()
	s.pub.Publish(f)
}

func (s *Session) input() core.InputFrame {
	if fresh := s.pending.Swap(0); fresh != 0 {
		s.held = fresh
		s.hold = holdTicks
	}
	if s.hold == 0 {
		return core.NewInputFrame()
	}
	s.hold--
	bits := s.held
	if s.hold == 0 {
		s.held = 0
	}
	return core.InputFromBits(bits)
}

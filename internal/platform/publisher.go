package platform

import (
	"sync"

	"github.com/vovakirdan/tomb-engine/internal/engine"
)

// FramePublisher hands committed frames to subscribers. Each subscriber
// has a bounded buffer; when it is full the oldest frame is dropped so the
// tick loop never blocks on presentation.
type FramePublisher struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
	closed bool
}

// Subscription is one consumer of published frames.
type Subscription struct {
	frames   chan engine.Frame
	done     chan struct{}
	doneOnce sync.Once
	pub      *FramePublisher
}

// NewFramePublisher creates a publisher whose subscribers buffer up to
// bufferSize frames.
func NewFramePublisher(bufferSize int) *FramePublisher {
	if bufferSize < 1 {
		bufferSize = 4
	}
	return &FramePublisher{
		subs:   make(map[*Subscription]struct{}),
		buffer: bufferSize,
	}
}

// Subscribe registers a new consumer.
func (p *FramePublisher) Subscribe() *Subscription {
	s := &Subscription{
		frames: make(chan engine.Frame, p.buffer),
		done:   make(chan struct{}),
		pub:    p,
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		s.close()
		return s
	}
	p.subs[s] = struct{}{}
	return s
}

// Publish sends a frame to every subscriber without blocking.
func (p *FramePublisher) Publish(f engine.Frame) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for s := range p.subs {
		s.send(f)
	}
}

// Count returns the number of live subscriptions.
func (p *FramePublisher) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

// Close ends every subscription. Publish after Close is a no-op.
func (p *FramePublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for s := range p.subs {
		s.close()
		delete(p.subs, s)
	}
}

func (s *Subscription) send(f engine.Frame) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.frames <- f:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.frames:
		default:
		}
		select {
		case s.frames <- f:
		default:
		}
	}
}

// Frames returns the channel frames arrive on.
func (s *Subscription) Frames() <-chan engine.Frame {
	return s.frames
}

// Done returns a channel closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Cancel unregisters the subscription. Safe to call multiple times.
func (s *Subscription) Cancel() {
	s.pub.mu.Lock()
	delete(s.pub.subs, s)
	s.pub.mu.Unlock()
	s.close()
}

func (s *Subscription) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Package engine runs the client game loop. Every mutation of game state
// happens on the loop goroutine: frame ticks, inbound frames, key events and
// timer callbacks are all posted to it as tasks, so game state needs no
// locks.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	DefaultFPS       = 60
	DefaultQueueSize = 256
)

var ErrStopped = errors.New("loop stopped")

// FrameFunc is called once per tick with the tick time.
type FrameFunc func(now time.Time)

type Loop struct {
	tasks    chan func()
	stopChan chan struct{}
	tickRate time.Duration
	frame    FrameFunc

	mu      sync.Mutex
	running bool
	stopped bool
}

func NewLoop(fps int, queueSize int) *Loop {
	if fps <= 0 {
		panic("fps must be greater zero")
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		tasks:    make(chan func(), queueSize),
		stopChan: make(chan struct{}),
		tickRate: time.Second / time.Duration(fps),
	}
}

// SetFrame sets the per tick callback. It must be called before Run.
func (l *Loop) SetFrame(fn FrameFunc) {
	l.frame = fn
}

// Run processes tasks and ticks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running || l.stopped {
		l.mu.Unlock()
		return errors.New("loop already started")
	}
	l.running = true
	l.mu.Unlock()

	ticker := time.NewTicker(l.tickRate)
	defer ticker.Stop()

	log.Debugf("Starting loop at %v per frame", l.tickRate)
	defer log.Debugf("Loop stopped")

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case fn := <-l.tasks:
			fn()
		case now := <-ticker.C:
			// tasks queued before the tick are applied first
			l.drain()
			if l.frame != nil {
				l.frame(now)
			}
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		default:
			return
		}
	}
}

// Stop halts the loop. Pending tasks are discarded.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.stopped {
		l.stopped = true
		close(l.stopChan)
	}
}

func (l *Loop) Done() <-chan struct{} { return l.stopChan }

// Post queues fn to run on the loop. It blocks while the queue is full and
// returns false once the loop is stopped. Post must not be called from the
// loop itself; use After for deferred work.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// After runs fn on the loop once d has elapsed. The returned cancel func must
// be called from the loop; after it returns fn will not run.
func (l *Loop) After(d time.Duration, fn func()) (cancel func()) {
	cancelled := false
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled {
				fn()
			}
		})
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}

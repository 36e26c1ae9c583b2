package game

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/mo-shahab/go-pong-client/protocol"
)

type timer struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// fakeScheduler runs deferred tasks when the test advances its clock.
type fakeScheduler struct {
	now    time.Duration
	seq    int
	timers []*timer
}

func (s *fakeScheduler) After(d time.Duration, fn func()) func() {
	s.seq++
	t := &timer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		sort.Slice(s.timers, func(i, j int) bool {
			if s.timers[i].at != s.timers[j].at {
				return s.timers[i].at < s.timers[j].at
			}
			return s.timers[i].seq < s.timers[j].seq
		})
		if len(s.timers) == 0 || s.timers[0].at > end {
			break
		}
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.at
		if !t.cancelled {
			t.fn()
		}
	}
	s.now = end
}

type sentFrame struct {
	Type uint32          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type fakeTransport struct {
	t      *testing.T
	frames []sentFrame
	err    error
}

func (f *fakeTransport) Send(b []byte) error {
	if f.err != nil {
		return f.err
	}
	var fr sentFrame
	if err := json.Unmarshal(b, &fr); err != nil {
		f.t.Fatalf("sent invalid frame %s: %v", b, err)
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeTransport) count(k protocol.Kind) int {
	wire, _ := protocol.Pong.Wire(k)
	n := 0
	for _, fr := range f.frames {
		if fr.Type == wire {
			n++
		}
	}
	return n
}

func (f *fakeTransport) last(k protocol.Kind) (sentFrame, bool) {
	wire, _ := protocol.Pong.Wire(k)
	for i := len(f.frames) - 1; i >= 0; i-- {
		if f.frames[i].Type == wire {
			return f.frames[i], true
		}
	}
	return sentFrame{}, false
}

type harness struct {
	t     *testing.T
	sched *fakeScheduler
	out   *fakeTransport
	s     *Session
	d     *protocol.Dispatcher
	now   time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	opts := DefaultOptions()
	opts.LocalName = "alice"
	h := &harness{
		t:     t,
		sched: &fakeScheduler{},
		out:   &fakeTransport{t: t},
		now:   time.Unix(1_700_000_000, 0),
	}
	h.s = NewSession(opts, h.sched, h.out)
	h.d = protocol.NewDispatcher(protocol.NewCodec(protocol.Pong))
	h.s.Register(h.d)
	h.s.Frame(h.now)
	return h
}

func (h *harness) recv(frame string) {
	h.t.Helper()
	if err := h.d.HandleFrame([]byte(frame)); err != nil {
		h.t.Fatalf("frame %s: %v", frame, err)
	}
}

// step runs one 16ms frame and the deferred work due in it.
func (h *harness) step() {
	h.now = h.now.Add(16 * time.Millisecond)
	h.s.Frame(h.now)
	h.sched.Advance(16 * time.Millisecond)
}

func (h *harness) join() {
	h.t.Helper()
	if err := h.s.JoinRoom("AB12"); err != nil {
		h.t.Fatal(err)
	}
	h.recv(`{"type":24,"data":{"code":"AB12njd","player":"bob"}}`)
}

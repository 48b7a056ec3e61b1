package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
	"github.com/rs/zerolog"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Outgoing
	fail     bool
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Outgoing))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) last(t *testing.T) ws.Outgoing {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatalf("no messages received")
	}
	return c.messages[len(c.messages)-1]
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(clock *fakeClock) *SessionManager {
	return NewSessionManager(zerolog.Nop(),
		WithTTL(time.Hour),
		WithSweepInterval(0),
		WithClock(clock.Now),
	)
}

var (
	e2 = model.Square{Row: 6, Col: 4}
	e4 = model.Square{Row: 4, Col: 4}
	e7 = model.Square{Row: 1, Col: 4}
)

func TestRegisterSendsState(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()

	conn := &fakeConn{}
	if err := s.Register("a", conn); err != nil {
		t.Fatalf("supposed nil error, got: %v", err)
	}
	msg := conn.last(t)
	if msg.Type != ws.MessageTypeState {
		t.Fatalf("expected %q message but got %q", ws.MessageTypeState, msg.Type)
	}
	if state := msg.Payload.(model.GameState); state.Turn != model.White {
		t.Fatalf("expected white to move but got %s", state.Turn)
	}

	if s.ClientCount() != 1 {
		t.Fatalf("expected 1 client but got %d", s.ClientCount())
	}
}

func TestRegisterReplacesConnection(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()

	old, current := &fakeConn{}, &fakeConn{}
	s.Register("a", old)
	if err := s.Register("a", current); err != nil {
		t.Fatalf("supposed nil error, got: %v", err)
	}
	if !old.closed {
		t.Fatalf("expected the replaced connection to be closed")
	}
	if s.ClientCount() != 1 {
		t.Fatalf("expected 1 client but got %d", s.ClientCount())
	}

	// The replaced connection's read loop unregisters it on the way out.
	s.Unregister("a", old)
	s.Reset()
	if current.count() != 2 || old.count() != 1 {
		t.Fatalf("expected 2 and 1 messages but got %d and %d", current.count(), old.count())
	}
}

type deadlineConn struct {
	fakeConn
	deadlines []time.Time
}

func (c *deadlineConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadlines = append(c.deadlines, t)
	return nil
}

func TestWritesSetDeadline(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()
	conn := &deadlineConn{}

	before := time.Now()
	s.Register("a", conn)
	s.Reset()
	s.SendError("a", errors.New("nope"))

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.deadlines) != 3 {
		t.Fatalf("expected 3 deadlines but got %d", len(conn.deadlines))
	}
	for _, d := range conn.deadlines {
		if d.Before(before.Add(writeWait)) {
			t.Fatalf("expected deadline at least %v ahead but got %v", writeWait, d.Sub(before))
		}
	}
}

func TestBroadcastOnChange(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()
	a, b := &fakeConn{}, &fakeConn{}
	s.Register("a", a)
	s.Register("b", b)

	if result, _ := s.Click(e4); result != model.ClickIgnored {
		t.Fatalf("expected ignored click, got %q", result)
	}
	if a.count() != 1 || b.count() != 1 {
		t.Fatalf("ignored click should not broadcast")
	}

	s.Click(e2)
	state, err := s.Move(e2, e4)
	if err != nil {
		t.Fatalf("supposed nil error, got: %v", err)
	}
	if state.Turn != model.Black {
		t.Fatalf("expected black to move but got %s", state.Turn)
	}
	for name, c := range map[string]*fakeConn{"a": a, "b": b} {
		if c.count() != 3 {
			t.Errorf("%s: expected 3 messages but got %d", name, c.count())
		}
		got := c.last(t).Payload.(model.GameState)
		if got.LastMove == nil || got.LastMove.To != e4 {
			t.Errorf("%s: expected last move to e4 but got %v", name, got.LastMove)
		}
	}
}

func TestRejectedMoveDoesNotBroadcast(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()
	conn := &fakeConn{}
	s.Register("a", conn)

	if _, err := s.Move(e7, model.Square{Row: 3, Col: 4}); !errors.Is(err, model.ErrNotYourTurn) {
		t.Fatalf("supposed %v error, got: %v", model.ErrNotYourTurn, err)
	}
	if conn.count() != 1 {
		t.Fatalf("expected only the initial state, got %d messages", conn.count())
	}
}

func TestFailingClientIsDropped(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()
	good, bad := &fakeConn{}, &fakeConn{}
	s.Register("good", good)
	s.Register("bad", bad)
	bad.mu.Lock()
	bad.fail = true
	bad.mu.Unlock()

	s.Reset()
	if s.ClientCount() != 1 {
		t.Fatalf("expected 1 client but got %d", s.ClientCount())
	}
	if !bad.closed {
		t.Fatalf("expected failing connection to be closed")
	}
	if good.count() != 2 {
		t.Fatalf("expected 2 messages but got %d", good.count())
	}
}

func TestUnregisterIgnoresStaleConnection(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()
	current := &fakeConn{}
	s.Register("a", current)

	s.Unregister("a", &fakeConn{})
	if s.ClientCount() != 1 {
		t.Fatalf("stale unregister removed the client")
	}
	s.Unregister("a", current)
	if s.ClientCount() != 0 {
		t.Fatalf("expected no clients but got %d", s.ClientCount())
	}
}

func TestSendError(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()
	conn := &fakeConn{}
	s.Register("a", conn)

	s.SendError("a", errors.New("nope"))
	msg := conn.last(t)
	if msg.Type != ws.MessageTypeError || msg.Payload.(ws.ErrorPayload).Error != "nope" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestLoadFEN(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Unix(0, 0)})
	s := m.Create()

	if _, err := s.LoadFEN("not a fen"); !errors.Is(err, model.ErrInvalidFEN) {
		t.Fatalf("supposed %v error, got: %v", model.ErrInvalidFEN, err)
	}
	state, err := s.LoadFEN("4k3/8/8/8/8/8/8/4K3 b")
	if err != nil {
		t.Fatalf("supposed nil error, got: %v", err)
	}
	if state.Turn != model.Black || s.FEN() != "4k3/8/8/8/8/8/8/4K3 b - - 0 1" {
		t.Fatalf("unexpected position %s", s.FEN())
	}
}

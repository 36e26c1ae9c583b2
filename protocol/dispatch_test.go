package protocol

import (
	"errors"
	"testing"
)

func TestErrorsAreKeyedByRequest(t *testing.T) {
	d := NewDispatcher(NewCodec(Pong))
	var joined, joinFailed int
	d.On(KindRoomJoined, func(Event) { joined++ })
	d.OnError(KindJoinRoom, func(Event) { joinFailed++ })

	if err := d.HandleFrame([]byte(`{"type":23,"isError":true,"data":{"message":"Invalid code"}}`)); err != nil {
		t.Fatal(err)
	}
	if joinFailed != 1 || joined != 0 {
		t.Fatalf("joinFailed=%d joined=%d", joinFailed, joined)
	}

	if err := d.HandleFrame([]byte(`{"type":24,"data":{"code":"AB12","player":"bob"}}`)); err != nil {
		t.Fatal(err)
	}
	if joined != 1 {
		t.Fatalf("joined=%d", joined)
	}
}

func TestUnhandledFramesAreDropped(t *testing.T) {
	d := NewDispatcher(NewCodec(Pong))
	frames := []string{
		`{"type":99}`,
		`not json`,
		`{}`,
		`{"type":37,"data":{"x":1,"y":1}}`,
		`{"type":37,"isError":true}`,
	}
	for _, f := range frames {
		if err := d.HandleFrame([]byte(f)); err == nil {
			t.Errorf("frame %s: expected drop", f)
		}
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	d := NewDispatcher(NewCodec(Pong))
	err := d.Dispatch(Event{Kind: KindBallUpdate})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v", err)
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	d := NewDispatcher(NewCodec(Pong))
	d.On(KindGoal, func(Event) {})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	d.On(KindGoal, func(Event) {})
}

func TestForeignKindPanics(t *testing.T) {
	d := NewDispatcher(NewCodec(Pong))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	d.On(KindVictory, func(Event) {})
}

func TestMissing(t *testing.T) {
	d := NewDispatcher(NewCodec(Pong))
	d.On(KindGoal, func(Event) {})
	d.OnError(KindJoinRoom, func(Event) {})

	missing := d.Missing(KindGoal, KindBallUpdate)
	if len(missing) != 1 || missing[0] != KindBallUpdate {
		t.Fatalf("missing = %v", missing)
	}
	if m := d.MissingErrors(KindJoinRoom); len(m) != 0 {
		t.Fatalf("missing errors = %v", m)
	}
	if h := d.Handled(); len(h) != 1 || h[0] != KindGoal {
		t.Fatalf("handled = %v", h)
	}
}

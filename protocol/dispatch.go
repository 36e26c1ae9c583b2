package protocol

import (
	"errors"
	"fmt"
)

// HandlerFunc applies one event. Handlers run on the game loop and must
// either apply the event completely or not at all.
type HandlerFunc func(Event)

// Dispatcher routes decoded events to handlers. Successful events are keyed
// by the response kind. Events flagged isError are keyed by the kind of the
// request that failed, so a rejected JoinRoom reaches the JoinRoom error
// handler and never the RoomJoined one.
type Dispatcher struct {
	codec    *Codec
	handlers map[Kind]HandlerFunc
	onError  map[Kind]HandlerFunc
}

func NewDispatcher(codec *Codec) *Dispatcher {
	return &Dispatcher{
		codec:    codec,
		handlers: make(map[Kind]HandlerFunc),
		onError:  make(map[Kind]HandlerFunc),
	}
}

// On registers the handler for successful events of kind k. Registering a
// kind twice panics.
func (d *Dispatcher) On(k Kind, h HandlerFunc) {
	d.register(d.handlers, "handler", k, h)
}

// OnError registers the handler for failed requests of kind k.
func (d *Dispatcher) OnError(k Kind, h HandlerFunc) {
	d.register(d.onError, "error handler", k, h)
}

func (d *Dispatcher) register(table map[Kind]HandlerFunc, what string, k Kind, h HandlerFunc) {
	if h == nil {
		panic(fmt.Sprintf("protocol: nil %s for %v", what, k))
	}
	if _, ok := d.codec.Catalog().Wire(k); !ok {
		panic(fmt.Sprintf("protocol: %v is not part of %s", k, d.codec.Catalog().Name()))
	}
	if _, dup := table[k]; dup {
		panic(fmt.Sprintf("protocol: multiple registrations of %s for %v", what, k))
	}
	table[k] = h
}

// HandleFrame decodes a raw frame and dispatches it. Frames that fail to
// decode or have no handler are logged and dropped; the returned error is
// for callers that count drops.
func (d *Dispatcher) HandleFrame(b []byte) error {
	ev, err := d.codec.Decode(b)
	if err != nil {
		if errors.Is(err, ErrUnknownType) {
			log.Warnf("Dropping frame: %v", err)
			if s, oerr := Opaque(ev); oerr == nil {
				log.Debugf("Dropped data: %v", s)
			}
		} else {
			log.Errorf("Dropping frame: %v", err)
		}
		return err
	}
	return d.Dispatch(ev)
}

func (d *Dispatcher) Dispatch(ev Event) error {
	table, what := d.handlers, "handler"
	if ev.IsError {
		table, what = d.onError, "error handler"
	}
	h, ok := table[ev.Kind]
	if !ok {
		log.Warnf("No %s for %v (type %d), dropping", what, ev.Kind, ev.Wire)
		return fmt.Errorf("%w: no %s for %v", ErrUnknownType, what, ev.Kind)
	}
	log.Tracef("Dispatching %v isError=%v", ev.Kind, ev.IsError)
	h(ev)
	return nil
}

// Missing returns the kinds among ks that have no success handler.
func (d *Dispatcher) Missing(ks ...Kind) []Kind {
	return missing(d.handlers, ks)
}

// MissingErrors returns the kinds among ks that have no error handler.
func (d *Dispatcher) MissingErrors(ks ...Kind) []Kind {
	return missing(d.onError, ks)
}

func missing(table map[Kind]HandlerFunc, ks []Kind) []Kind {
	var out []Kind
	for _, k := range ks {
		if _, ok := table[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Handled returns the registered success kinds.
func (d *Dispatcher) Handled() []Kind {
	out := make([]Kind, 0, len(d.handlers))
	for _, k := range d.codec.Catalog().Kinds() {
		if _, ok := d.handlers[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

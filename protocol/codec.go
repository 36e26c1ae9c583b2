package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidFrame   = errors.New("invalid frame")
	ErrMissingType    = errors.New("frame has no type")
	ErrInvalidType    = errors.New("frame type is not an unsigned integer")
	ErrUnknownType    = errors.New("unknown frame type")
	ErrInvalidPayload = errors.New("invalid payload")
)

// wireFrame is the JSON text frame exchanged with the server.
type wireFrame struct {
	Type    json.RawMessage `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	IsError bool            `json:"isError,omitempty"`
	To      string          `json:"to,omitempty"`
}

type outFrame struct {
	Type uint32          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is a decoded inbound frame.
type Event struct {
	Kind    Kind
	Wire    uint32
	Data    json.RawMessage
	IsError bool
	To      string
}

// Codec converts frames of one game.
type Codec struct {
	catalog *Catalog
}

func NewCodec(c *Catalog) *Codec {
	return &Codec{catalog: c}
}

func (c *Codec) Catalog() *Catalog { return c.catalog }

// Decode parses an inbound frame. A frame whose type is valid but unknown to
// the catalog is returned together with ErrUnknownType so the caller can log
// its wire number.
func (c *Codec) Decode(b []byte) (Event, error) {
	var f wireFrame
	if err := json.Unmarshal(b, &f); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	raw := bytes.TrimSpace(f.Type)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Event{}, ErrMissingType
	}
	wire, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %s", ErrInvalidType, raw)
	}

	ev := Event{
		Wire:    uint32(wire),
		Data:    f.Data,
		IsError: f.IsError,
		To:      f.To,
	}
	kind, ok := c.catalog.Kind(ev.Wire)
	if !ok {
		return ev, fmt.Errorf("%w %d for %s", ErrUnknownType, wire, c.catalog.Name())
	}
	ev.Kind = kind
	return ev, nil
}

// Encode builds an outbound frame. payload may be nil for events without data.
func (c *Codec) Encode(k Kind, payload any) ([]byte, error) {
	wire, ok := c.catalog.Wire(k)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not part of %s", ErrUnknownType, k, c.catalog.Name())
	}

	out := outFrame{Type: wire}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %v: %w", k, err)
		}
		out.Data = data
	}
	return json.Marshal(out)
}

// Decode unmarshals the event data into p and validates it. Any mismatch
// is reported as ErrInvalidPayload.
func (e Event) Decode(p Payload) error {
	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: %v has no data", ErrInvalidPayload, e.Kind)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("%w: %v: %v", ErrInvalidPayload, e.Kind, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v: %v", ErrInvalidPayload, e.Kind, err)
	}
	return nil
}

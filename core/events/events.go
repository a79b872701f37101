// Package events defines the event interface shared by the client,
// connection and channel submodules.
package events

import (
	abci "github.com/cometbft/cometbft/abci/types"
)

// Event is a domain event emitted by a handler through the execution context.
type Event interface {
	// EventType is the ABCI event type, e.g. "send_packet".
	EventType() string
	// Attributes returns the key/value pairs describing the transition.
	Attributes() []Attribute
}

// Attribute is a single event key/value pair.
type Attribute struct {
	Key   string
	Value string
}

// NewAttribute creates a new Attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

const (
	EventTypeMessage     = "message"
	AttributeKeyModule   = "module"
	AttributeValueClient = "ibc_client"
	AttributeValueConn   = "ibc_connection"
	AttributeValueChan   = "ibc_channel"
)

// MessageEvent is the generic marker emitted before a submodule's own event.
type MessageEvent string

const (
	MessageClient     MessageEvent = AttributeValueClient
	MessageConnection MessageEvent = AttributeValueConn
	MessageChannel    MessageEvent = AttributeValueChan
)

func (m MessageEvent) EventType() string { return EventTypeMessage }

func (m MessageEvent) Attributes() []Attribute {
	return []Attribute{NewAttribute(AttributeKeyModule, string(m))}
}

// ToABCI converts an event to its ABCI representation. All attributes are
// indexed.
func ToABCI(e Event) abci.Event {
	attrs := e.Attributes()
	out := abci.Event{
		Type:       e.EventType(),
		Attributes: make([]abci.EventAttribute, 0, len(attrs)),
	}
	for _, attr := range attrs {
		out.Attributes = append(out.Attributes, abci.EventAttribute{
			Key:   attr.Key,
			Value: attr.Value,
			Index: true,
		})
	}
	return out
}

package client

import (
	"strings"

	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// IBC client events
const (
	AttributeKeyClientID         = "client_id"
	AttributeKeyClientType       = "client_type"
	AttributeKeyConsensusHeight  = "consensus_height"
	AttributeKeyConsensusHeights = "consensus_heights"

	EventTypeCreateClient       = "create_client"
	EventTypeUpdateClient       = "update_client"
	EventTypeClientMisbehaviour = "client_misbehaviour"
)

var (
	_ events.Event = CreateClientEvent{}
	_ events.Event = UpdateClientEvent{}
	_ events.Event = ClientMisbehaviourEvent{}
)

// CreateClientEvent is emitted when a client is created.
type CreateClientEvent struct {
	ClientID        host.ClientID
	ClientType      host.ClientType
	ConsensusHeight Height
}

func (CreateClientEvent) EventType() string { return EventTypeCreateClient }

func (e CreateClientEvent) Attributes() []events.Attribute {
	return []events.Attribute{
		events.NewAttribute(AttributeKeyClientID, e.ClientID.String()),
		events.NewAttribute(AttributeKeyClientType, e.ClientType.String()),
		events.NewAttribute(AttributeKeyConsensusHeight, e.ConsensusHeight.String()),
	}
}

// UpdateClientEvent is emitted when a client stores new consensus states.
type UpdateClientEvent struct {
	ClientID         host.ClientID
	ClientType       host.ClientType
	ConsensusHeights []Height
}

func (UpdateClientEvent) EventType() string { return EventTypeUpdateClient }

func (e UpdateClientEvent) Attributes() []events.Attribute {
	heights := make([]string, len(e.ConsensusHeights))
	for i, h := range e.ConsensusHeights {
		heights[i] = h.String()
	}

	attrs := []events.Attribute{
		events.NewAttribute(AttributeKeyClientID, e.ClientID.String()),
		events.NewAttribute(AttributeKeyClientType, e.ClientType.String()),
	}
	if len(heights) > 0 {
		attrs = append(attrs, events.NewAttribute(AttributeKeyConsensusHeight, heights[0]))
	}
	return append(attrs, events.NewAttribute(AttributeKeyConsensusHeights, strings.Join(heights, ",")))
}

// ClientMisbehaviourEvent is emitted when a client is frozen.
type ClientMisbehaviourEvent struct {
	ClientID   host.ClientID
	ClientType host.ClientType
}

func (ClientMisbehaviourEvent) EventType() string { return EventTypeClientMisbehaviour }

func (e ClientMisbehaviourEvent) Attributes() []events.Attribute {
	return []events.Attribute{
		events.NewAttribute(AttributeKeyClientID, e.ClientID.String()),
		events.NewAttribute(AttributeKeyClientType, e.ClientType.String()),
	}
}

package connection

import (
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// IBC connection events
const (
	AttributeKeyConnectionID             = "connection_id"
	AttributeKeyClientID                 = "client_id"
	AttributeKeyCounterpartyClientID     = "counterparty_client_id"
	AttributeKeyCounterpartyConnectionID = "counterparty_connection_id"

	EventTypeConnectionOpenInit    = "connection_open_init"
	EventTypeConnectionOpenTry     = "connection_open_try"
	EventTypeConnectionOpenAck     = "connection_open_ack"
	EventTypeConnectionOpenConfirm = "connection_open_confirm"
)

var _ events.Event = OpenEvent{}

// OpenEvent is emitted by every step of the connection handshake. Kind is
// one of the EventTypeConnectionOpen* values.
type OpenEvent struct {
	Kind                     string
	ConnectionID             host.ConnectionID
	ClientID                 host.ClientID
	CounterpartyConnectionID host.ConnectionID
	CounterpartyClientID     host.ClientID
}

func (e OpenEvent) EventType() string { return e.Kind }

func (e OpenEvent) Attributes() []events.Attribute {
	return []events.Attribute{
		events.NewAttribute(AttributeKeyConnectionID, e.ConnectionID.String()),
		events.NewAttribute(AttributeKeyClientID, e.ClientID.String()),
		events.NewAttribute(AttributeKeyCounterpartyConnectionID, e.CounterpartyConnectionID.String()),
		events.NewAttribute(AttributeKeyCounterpartyClientID, e.CounterpartyClientID.String()),
	}
}

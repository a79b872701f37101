package channel

import (
	"encoding/hex"
	"strconv"

	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// IBC channel events
const (
	AttributeKeyPortID                = "port_id"
	AttributeKeyChannelID             = "channel_id"
	AttributeKeyCounterpartyPortID    = "counterparty_port_id"
	AttributeKeyCounterpartyChannelID = "counterparty_channel_id"
	AttributeKeyConnectionID          = "connection_id"
	AttributeKeyVersion               = "version"

	AttributeKeyDataHex          = "packet_data_hex"
	AttributeKeyAckHex           = "packet_ack_hex"
	AttributeKeyTimeoutHeight    = "packet_timeout_height"
	AttributeKeyTimeoutTimestamp = "packet_timeout_timestamp"
	AttributeKeySequence         = "packet_sequence"
	AttributeKeySrcPort          = "packet_src_port"
	AttributeKeySrcChannel       = "packet_src_channel"
	AttributeKeyDstPort          = "packet_dst_port"
	AttributeKeyDstChannel       = "packet_dst_channel"
	AttributeKeyChannelOrdering  = "packet_channel_ordering"
	AttributeKeyConnection       = "packet_connection"

	EventTypeChannelOpenInit     = "channel_open_init"
	EventTypeChannelOpenTry      = "channel_open_try"
	EventTypeChannelOpenAck      = "channel_open_ack"
	EventTypeChannelOpenConfirm  = "channel_open_confirm"
	EventTypeChannelCloseInit    = "channel_close_init"
	EventTypeChannelCloseConfirm = "channel_close_confirm"
	EventTypeChannelClosed       = "channel_close"

	EventTypeSendPacket           = "send_packet"
	EventTypeRecvPacket           = "recv_packet"
	EventTypeWriteAck             = "write_acknowledgement"
	EventTypeAcknowledgePacket    = "acknowledge_packet"
	EventTypeTimeoutPacket        = "timeout_packet"
	EventTypeTimeoutPacketOnClose = "timeout_on_close_packet"
)

var (
	_ events.Event = HandshakeEvent{}
	_ events.Event = SendPacketEvent{}
	_ events.Event = ReceivePacketEvent{}
	_ events.Event = WriteAcknowledgementEvent{}
	_ events.Event = AcknowledgePacketEvent{}
	_ events.Event = TimeoutPacketEvent{}
)

// HandshakeEvent is emitted by the channel handshake and close messages.
// Kind is one of the EventTypeChannel* values.
type HandshakeEvent struct {
	Kind                  string
	PortID                host.PortID
	ChannelID             host.ChannelID
	CounterpartyPortID    host.PortID
	CounterpartyChannelID host.ChannelID
	ConnectionID          host.ConnectionID
	Version               Version
}

func (e HandshakeEvent) EventType() string { return e.Kind }

func (e HandshakeEvent) Attributes() []events.Attribute {
	attrs := []events.Attribute{
		events.NewAttribute(AttributeKeyPortID, e.PortID.String()),
		events.NewAttribute(AttributeKeyChannelID, e.ChannelID.String()),
		events.NewAttribute(AttributeKeyCounterpartyPortID, e.CounterpartyPortID.String()),
		events.NewAttribute(AttributeKeyCounterpartyChannelID, e.CounterpartyChannelID.String()),
		events.NewAttribute(AttributeKeyConnectionID, e.ConnectionID.String()),
	}
	if e.Kind == EventTypeChannelOpenInit || e.Kind == EventTypeChannelOpenTry {
		attrs = append(attrs, events.NewAttribute(AttributeKeyVersion, e.Version.String()))
	}
	return attrs
}

func packetAttributes(p Packet) []events.Attribute {
	return []events.Attribute{
		events.NewAttribute(AttributeKeyTimeoutHeight, p.TimeoutHeight.Height().String()),
		events.NewAttribute(AttributeKeyTimeoutTimestamp, strconv.FormatUint(p.TimeoutTimestamp.Nanoseconds(), 10)),
		events.NewAttribute(AttributeKeySequence, strconv.FormatUint(p.Sequence.Uint64(), 10)),
		events.NewAttribute(AttributeKeySrcPort, p.SourcePort.String()),
		events.NewAttribute(AttributeKeySrcChannel, p.SourceChannel.String()),
		events.NewAttribute(AttributeKeyDstPort, p.DestinationPort.String()),
		events.NewAttribute(AttributeKeyDstChannel, p.DestinationChannel.String()),
	}
}

// SendPacketEvent is emitted when a packet is committed for sending.
type SendPacketEvent struct {
	Packet       Packet
	Ordering     Order
	ConnectionID host.ConnectionID
}

func (SendPacketEvent) EventType() string { return EventTypeSendPacket }

func (e SendPacketEvent) Attributes() []events.Attribute {
	attrs := append([]events.Attribute{
		events.NewAttribute(AttributeKeyDataHex, hex.EncodeToString(e.Packet.Data)),
	}, packetAttributes(e.Packet)...)
	return append(attrs,
		events.NewAttribute(AttributeKeyChannelOrdering, e.Ordering.String()),
		events.NewAttribute(AttributeKeyConnection, e.ConnectionID.String()),
	)
}

// ReceivePacketEvent is emitted when a packet is received.
type ReceivePacketEvent struct {
	Packet       Packet
	Ordering     Order
	ConnectionID host.ConnectionID
}

func (ReceivePacketEvent) EventType() string { return EventTypeRecvPacket }

func (e ReceivePacketEvent) Attributes() []events.Attribute {
	return SendPacketEvent(e).Attributes()
}

// WriteAcknowledgementEvent is emitted when an acknowledgement is written
// for a received packet.
type WriteAcknowledgementEvent struct {
	Packet       Packet
	Ack          Acknowledgement
	ConnectionID host.ConnectionID
}

func (WriteAcknowledgementEvent) EventType() string { return EventTypeWriteAck }

func (e WriteAcknowledgementEvent) Attributes() []events.Attribute {
	attrs := append([]events.Attribute{
		events.NewAttribute(AttributeKeyDataHex, hex.EncodeToString(e.Packet.Data)),
	}, packetAttributes(e.Packet)...)
	return append(attrs,
		events.NewAttribute(AttributeKeyAckHex, hex.EncodeToString(e.Ack)),
		events.NewAttribute(AttributeKeyConnection, e.ConnectionID.String()),
	)
}

// AcknowledgePacketEvent is emitted when the sender processes an
// acknowledgement.
type AcknowledgePacketEvent struct {
	Packet       Packet
	Ordering     Order
	ConnectionID host.ConnectionID
}

func (AcknowledgePacketEvent) EventType() string { return EventTypeAcknowledgePacket }

func (e AcknowledgePacketEvent) Attributes() []events.Attribute {
	return append(packetAttributes(e.Packet),
		events.NewAttribute(AttributeKeyChannelOrdering, e.Ordering.String()),
		events.NewAttribute(AttributeKeyConnection, e.ConnectionID.String()),
	)
}

// TimeoutPacketEvent is emitted when a packet times out. OnClose is set when
// the timeout was proven by the counterparty closing its channel.
type TimeoutPacketEvent struct {
	Packet   Packet
	Ordering Order
	OnClose  bool
}

func (e TimeoutPacketEvent) EventType() string {
	if e.OnClose {
		return EventTypeTimeoutPacketOnClose
	}
	return EventTypeTimeoutPacket
}

func (e TimeoutPacketEvent) Attributes() []events.Attribute {
	return append(packetAttributes(e.Packet),
		events.NewAttribute(AttributeKeyChannelOrdering, e.Ordering.String()),
	)
}

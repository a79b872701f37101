// Package channel implements ICS-04 channel ends, packets and the messages
// of the channel handshake and packet lifecycle.
package channel

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"

	"github.com/tendermint/ibc/core/host"
	channelproto "github.com/tendermint/ibc/proto/ibc/core/channel"
)

// State of a channel end.
type State int32

const (
	StateUninitialized State = State(channelproto.StateUninitialized)
	StateInit          State = State(channelproto.StateInit)
	StateTryOpen       State = State(channelproto.StateTryOpen)
	StateOpen          State = State(channelproto.StateOpen)
	StateClosed        State = State(channelproto.StateClosed)
)

// StateFromProto returns an error for any value outside of the five states.
func StateFromProto(s int32) (State, error) {
	if s < channelproto.StateUninitialized || s > channelproto.StateClosed {
		return 0, errorsmod.Wrapf(ErrInvalidChannelState, "unknown state %d", s)
	}
	return State(s), nil
}

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "STATE_UNINITIALIZED_UNSPECIFIED"
	case StateInit:
		return "STATE_INIT"
	case StateTryOpen:
		return "STATE_TRYOPEN"
	case StateOpen:
		return "STATE_OPEN"
	case StateClosed:
		return "STATE_CLOSED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Order is the delivery ordering of a channel.
type Order int32

const (
	OrderNone      Order = Order(channelproto.OrderNone)
	OrderUnordered Order = Order(channelproto.OrderUnordered)
	OrderOrdered   Order = Order(channelproto.OrderOrdered)
)

// OrderFromProto accepts only Ordered and Unordered.
func OrderFromProto(o int32) (Order, error) {
	switch Order(o) {
	case OrderUnordered, OrderOrdered:
		return Order(o), nil
	default:
		return OrderNone, errorsmod.Wrapf(ErrInvalidChannelOrdering, "unknown ordering %d", o)
	}
}

func (o Order) String() string {
	switch o {
	case OrderNone:
		return "ORDER_NONE_UNSPECIFIED"
	case OrderUnordered:
		return "ORDER_UNORDERED"
	case OrderOrdered:
		return "ORDER_ORDERED"
	default:
		return fmt.Sprintf("Order(%d)", int32(o))
	}
}

// Version is the application version negotiated on a channel. A blank
// version means no explicit proposal.
type Version string

func (v Version) String() string { return string(v) }

// Empty returns true if v is blank.
func (v Version) Empty() bool { return strings.TrimSpace(string(v)) == "" }

// Counterparty is the other end of a channel. ChannelID is zero until the
// counterparty end exists.
type Counterparty struct {
	PortID    host.PortID
	ChannelID host.ChannelID
}

func NewCounterparty(portID host.PortID, channelID host.ChannelID) Counterparty {
	return Counterparty{PortID: portID, ChannelID: channelID}
}

func (c Counterparty) ToProto() *channelproto.Counterparty {
	return &channelproto.Counterparty{PortId: c.PortID.String(), ChannelId: c.ChannelID.String()}
}

// CounterpartyFromProto converts a raw counterparty, leaving an empty
// channel id zero.
func CounterpartyFromProto(raw *channelproto.Counterparty) (Counterparty, error) {
	if raw == nil {
		return Counterparty{}, errorsmod.Wrap(ErrInvalidCounterparty, "nil counterparty")
	}
	portID, err := host.ParsePortID(raw.PortId)
	if err != nil {
		return Counterparty{}, err
	}
	var channelID host.ChannelID
	if raw.ChannelId != "" {
		if channelID, err = host.ParseChannelID(raw.ChannelId); err != nil {
			return Counterparty{}, errorsmod.Wrap(ErrInvalidChannelIdentifier, err.Error())
		}
	}
	return Counterparty{PortID: portID, ChannelID: channelID}, nil
}

// ChannelEnd is the state one chain stores for a channel.
type ChannelEnd struct {
	State          State
	Ordering       Order
	Counterparty   Counterparty
	ConnectionHops []host.ConnectionID
	Version        Version
}

func NewChannelEnd(
	state State,
	ordering Order,
	counterparty Counterparty,
	connectionHops []host.ConnectionID,
	version Version,
) ChannelEnd {
	return ChannelEnd{
		State:          state,
		Ordering:       ordering,
		Counterparty:   counterparty,
		ConnectionHops: connectionHops,
		Version:        version,
	}
}

// IsOpen returns true if the handshake finished on this end.
func (c ChannelEnd) IsOpen() bool { return c.State == StateOpen }

// WithState returns a copy of c in state s.
func (c ChannelEnd) WithState(s State) ChannelEnd {
	c.State = s
	return c
}

// ConnectionID returns the single connection the channel routes over. It
// must only be called on an end that passed VerifyConnectionHopsLength.
func (c ChannelEnd) ConnectionID() host.ConnectionID {
	if len(c.ConnectionHops) == 0 {
		return host.ConnectionID{}
	}
	return c.ConnectionHops[0]
}

// VerifyNotClosed returns ErrInvalidChannelState if the channel is closed.
func (c ChannelEnd) VerifyNotClosed() error {
	if c.State == StateClosed {
		return errorsmod.Wrap(ErrInvalidChannelState, "channel is closed")
	}
	return nil
}

// VerifyStateMatches returns ErrInvalidChannelState unless the end is in
// state expected.
func (c ChannelEnd) VerifyStateMatches(expected State) error {
	if c.State != expected {
		return errorsmod.Wrapf(ErrInvalidChannelState, "expected %s, got %s", expected, c.State)
	}
	return nil
}

// VerifyCounterpartyMatches returns ErrInvalidCounterparty unless the
// counterparty of the end is other.
func (c ChannelEnd) VerifyCounterpartyMatches(other Counterparty) error {
	if c.Counterparty != other {
		return errorsmod.Wrapf(
			ErrInvalidCounterparty,
			"expected counterparty %s/%s, got %s/%s",
			c.Counterparty.PortID, c.Counterparty.ChannelID, other.PortID, other.ChannelID,
		)
	}
	return nil
}

// VerifyConnectionHopsLength fails unless the channel routes over exactly
// one connection.
func (c ChannelEnd) VerifyConnectionHopsLength() error {
	if len(c.ConnectionHops) != 1 {
		return InvalidConnectionHopsLengthError{Expected: 1, Actual: len(c.ConnectionHops)}
	}
	return nil
}

func (c ChannelEnd) ToProto() *channelproto.Channel {
	hops := make([]string, len(c.ConnectionHops))
	for i, h := range c.ConnectionHops {
		hops[i] = h.String()
	}
	return &channelproto.Channel{
		State:          int32(c.State),
		Ordering:       int32(c.Ordering),
		Counterparty:   c.Counterparty.ToProto(),
		ConnectionHops: hops,
		Version:        c.Version.String(),
	}
}

// ChannelEndFromProto converts a raw channel end.
func ChannelEndFromProto(raw *channelproto.Channel) (ChannelEnd, error) {
	if raw == nil {
		return ChannelEnd{}, ErrMissingChannel
	}
	state, err := StateFromProto(raw.State)
	if err != nil {
		return ChannelEnd{}, err
	}
	ordering, err := OrderFromProto(raw.Ordering)
	if err != nil {
		return ChannelEnd{}, err
	}
	counterparty, err := CounterpartyFromProto(raw.Counterparty)
	if err != nil {
		return ChannelEnd{}, err
	}
	hops := make([]host.ConnectionID, len(raw.ConnectionHops))
	for i, h := range raw.ConnectionHops {
		if hops[i], err = host.ParseConnectionID(h); err != nil {
			return ChannelEnd{}, err
		}
	}
	return NewChannelEnd(state, ordering, counterparty, hops, Version(raw.Version)), nil
}

// Marshal encodes the end as the value committed at its channel path.
func (c ChannelEnd) Marshal() ([]byte, error) {
	return proto.Marshal(c.ToProto())
}

// UnmarshalChannelEnd decodes a committed channel end.
func UnmarshalChannelEnd(bz []byte) (ChannelEnd, error) {
	var raw channelproto.Channel
	if err := proto.Unmarshal(bz, &raw); err != nil {
		return ChannelEnd{}, errorsmod.Wrap(ErrInvalidChannel, err.Error())
	}
	return ChannelEndFromProto(&raw)
}

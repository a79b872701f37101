// Package connection implements ICS-03 connection ends and the messages of
// the connection handshake.
package connection

import (
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"

	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	connectionproto "github.com/tendermint/ibc/proto/ibc/core/connection"
)

// State of a connection end in the handshake.
type State int32

const (
	StateUninitialized State = State(connectionproto.StateUninitialized)
	StateInit          State = State(connectionproto.StateInit)
	StateTryOpen       State = State(connectionproto.StateTryOpen)
	StateOpen          State = State(connectionproto.StateOpen)
)

// StateFromProto returns an error for any value outside of the four states.
func StateFromProto(s int32) (State, error) {
	if s < connectionproto.StateUninitialized || s > connectionproto.StateOpen {
		return 0, errorsmod.Wrapf(ErrInvalidConnectionState, "unknown state %d", s)
	}
	return State(s), nil
}

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateInit:
		return "INIT"
	case StateTryOpen:
		return "TRYOPEN"
	case StateOpen:
		return "OPEN"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Counterparty describes the other end of a connection. ConnectionID is zero
// until the counterparty end exists.
type Counterparty struct {
	ClientID     host.ClientID
	ConnectionID host.ConnectionID
	Prefix       commitment.Prefix
}

// NewCounterparty returns a counterparty with a known connection id.
func NewCounterparty(clientID host.ClientID, connectionID host.ConnectionID, prefix commitment.Prefix) Counterparty {
	return Counterparty{ClientID: clientID, ConnectionID: connectionID, Prefix: prefix}
}

func (c Counterparty) ToProto() *connectionproto.Counterparty {
	return &connectionproto.Counterparty{
		ClientId:     c.ClientID.String(),
		ConnectionId: c.ConnectionID.String(),
		Prefix:       c.Prefix.ToProto(),
	}
}

// CounterpartyFromProto converts a raw counterparty. An empty connection id
// is accepted and left zero.
func CounterpartyFromProto(raw *connectionproto.Counterparty) (Counterparty, error) {
	if raw == nil {
		return Counterparty{}, ErrMissingCounterparty
	}
	clientID, err := host.ParseClientID(raw.ClientId)
	if err != nil {
		return Counterparty{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	var connectionID host.ConnectionID
	if raw.ConnectionId != "" {
		connectionID, err = host.ParseConnectionID(raw.ConnectionId)
		if err != nil {
			return Counterparty{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
		}
	}
	prefix, err := commitment.PrefixFromProto(raw.Prefix)
	if err != nil {
		return Counterparty{}, err
	}
	return Counterparty{ClientID: clientID, ConnectionID: connectionID, Prefix: prefix}, nil
}

// ConnectionEnd is the state one chain stores for a connection.
type ConnectionEnd struct {
	State        State
	ClientID     host.ClientID
	Counterparty Counterparty
	Versions     []Version
	DelayPeriod  time.Duration
}

// NewConnectionEnd returns an error when an end past INIT does not carry
// exactly one negotiated version.
func NewConnectionEnd(
	state State,
	clientID host.ClientID,
	counterparty Counterparty,
	versions []Version,
	delayPeriod time.Duration,
) (ConnectionEnd, error) {
	if err := validateVersions(state, versions); err != nil {
		return ConnectionEnd{}, err
	}
	return ConnectionEnd{
		State:        state,
		ClientID:     clientID,
		Counterparty: counterparty,
		Versions:     versions,
		DelayPeriod:  delayPeriod,
	}, nil
}

func validateVersions(state State, versions []Version) error {
	if len(versions) == 0 {
		return ErrEmptyVersions
	}
	for _, v := range versions {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if (state == StateOpen || state == StateTryOpen) && len(versions) != 1 {
		return errorsmod.Wrapf(ErrInvalidVersion, "connection in state %s must have exactly one version, got %d", state, len(versions))
	}
	return nil
}

// IsOpen returns true if the handshake finished on this end.
func (c ConnectionEnd) IsOpen() bool { return c.State == StateOpen }

// VerifyStateMatches returns ErrInvalidConnectionState unless the end is in
// state expected.
func (c ConnectionEnd) VerifyStateMatches(expected State) error {
	if c.State != expected {
		return errorsmod.Wrapf(ErrInvalidConnectionState, "expected %s, got %s", expected, c.State)
	}
	return nil
}

func (c ConnectionEnd) ToProto() *connectionproto.ConnectionEnd {
	return &connectionproto.ConnectionEnd{
		ClientId:     c.ClientID.String(),
		Versions:     versionsToProto(c.Versions),
		State:        int32(c.State),
		Counterparty: c.Counterparty.ToProto(),
		DelayPeriod:  uint64(c.DelayPeriod),
	}
}

// ConnectionEndFromProto converts a raw connection end. The delay period is
// carried in nanoseconds.
func ConnectionEndFromProto(raw *connectionproto.ConnectionEnd) (ConnectionEnd, error) {
	if raw == nil {
		return ConnectionEnd{}, errorsmod.Wrap(ErrConnectionNotFound, "nil connection end")
	}
	state, err := StateFromProto(raw.State)
	if err != nil {
		return ConnectionEnd{}, err
	}
	clientID, err := host.ParseClientID(raw.ClientId)
	if err != nil {
		return ConnectionEnd{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	counterparty, err := CounterpartyFromProto(raw.Counterparty)
	if err != nil {
		return ConnectionEnd{}, err
	}
	versions, err := VersionsFromProto(raw.Versions)
	if err != nil {
		return ConnectionEnd{}, err
	}
	return NewConnectionEnd(state, clientID, counterparty, versions, time.Duration(raw.DelayPeriod))
}

// Marshal encodes the end as the value committed at its connection path.
func (c ConnectionEnd) Marshal() ([]byte, error) {
	return proto.Marshal(c.ToProto())
}

// UnmarshalConnectionEnd decodes a committed connection end.
func UnmarshalConnectionEnd(bz []byte) (ConnectionEnd, error) {
	var raw connectionproto.ConnectionEnd
	if err := proto.Unmarshal(bz, &raw); err != nil {
		return ConnectionEnd{}, errorsmod.Wrap(ErrInvalidConnectionState, err.Error())
	}
	return ConnectionEndFromProto(&raw)
}

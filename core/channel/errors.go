package channel

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core/client"
)

// SubModuleName defines the IBC channels name
const SubModuleName = "channel"

// IBC channel sentinel errors
var (
	ErrChannelExists               = errorsmod.Register(SubModuleName, 2, "channel already exists")
	ErrChannelNotFound             = errorsmod.Register(SubModuleName, 3, "channel not found")
	ErrInvalidChannel              = errorsmod.Register(SubModuleName, 4, "invalid channel")
	ErrInvalidChannelState         = errorsmod.Register(SubModuleName, 5, "invalid channel state")
	ErrInvalidChannelOrdering      = errorsmod.Register(SubModuleName, 6, "invalid channel ordering")
	ErrInvalidCounterparty         = errorsmod.Register(SubModuleName, 7, "invalid counterparty channel")
	ErrSequenceSendNotFound        = errorsmod.Register(SubModuleName, 8, "sequence send not found")
	ErrSequenceReceiveNotFound     = errorsmod.Register(SubModuleName, 9, "sequence receive not found")
	ErrSequenceAckNotFound         = errorsmod.Register(SubModuleName, 10, "sequence acknowledgement not found")
	ErrInvalidPacket               = errorsmod.Register(SubModuleName, 11, "invalid packet")
	ErrPacketTimeout               = errorsmod.Register(SubModuleName, 12, "packet timeout")
	ErrTooManyConnectionHops       = errorsmod.Register(SubModuleName, 13, "too many connection hops")
	ErrInvalidAcknowledgement      = errorsmod.Register(SubModuleName, 14, "invalid acknowledgement")
	ErrAcknowledgementExists       = errorsmod.Register(SubModuleName, 15, "acknowledgement for packet already exists")
	ErrInvalidChannelIdentifier    = errorsmod.Register(SubModuleName, 16, "invalid channel identifier")
	ErrPacketReceived              = errorsmod.Register(SubModuleName, 17, "packet already received")
	ErrPacketCommitmentNotFound    = errorsmod.Register(SubModuleName, 18, "packet commitment not found")
	ErrPacketSequenceOutOfOrder    = errorsmod.Register(SubModuleName, 19, "packet sequence is out of order")
	ErrNoOpMsg                     = errorsmod.Register(SubModuleName, 20, "message is redundant, no-op will be performed")
	ErrInvalidChannelVersion       = errorsmod.Register(SubModuleName, 21, "invalid channel version")
	ErrPacketNotSent               = errorsmod.Register(SubModuleName, 22, "packet has not been sent")
	ErrInvalidTimeout              = errorsmod.Register(SubModuleName, 23, "invalid packet timeout")
	ErrInvalidConnectionHopsLength = errorsmod.Register(SubModuleName, 24, "invalid connection hops length")
	ErrInvalidPacketSequence       = errorsmod.Register(SubModuleName, 25, "invalid packet sequence")
	ErrLowPacketHeight             = errorsmod.Register(SubModuleName, 26, "packet timeout height is not greater than the latest client height")
	ErrLowPacketTimestamp          = errorsmod.Register(SubModuleName, 27, "packet timeout timestamp has expired")
	ErrMissingChannel              = errorsmod.Register(SubModuleName, 28, "missing channel end")
	ErrMissingCounterparty         = errorsmod.Register(SubModuleName, 29, "missing counterparty channel identifier")
	ErrMissingPacket               = errorsmod.Register(SubModuleName, 30, "missing packet")
	ErrMissingTimeout              = errorsmod.Register(SubModuleName, 31, "packet timeout height and timestamp cannot both be unset")
	ErrZeroPacketSequence          = errorsmod.Register(SubModuleName, 32, "packet sequence cannot be 0")
	ErrInvalidProof                = errorsmod.Register(SubModuleName, 33, "invalid channel proof")
	ErrMissingHeight               = errorsmod.Register(SubModuleName, 34, "missing proof height")
	ErrPacketTimeoutNotReached     = errorsmod.Register(SubModuleName, 35, "packet timeout has not been reached")
	ErrPacketCommitmentMismatch    = errorsmod.Register(SubModuleName, 36, "packet commitment does not match the stored commitment")
	ErrConnectionNotOpen           = errorsmod.Register(SubModuleName, 37, "connection is not open")
	ErrChannelFeatureNotSupported  = errorsmod.Register(SubModuleName, 38, "channel ordering not supported by the connection version")
	ErrPacketVerificationFailed    = errorsmod.Register(SubModuleName, 39, "packet proof verification failed")
	ErrChannelVerificationFailed   = errorsmod.Register(SubModuleName, 40, "channel state proof verification failed")
	ErrAcknowledgementNotSupported = errorsmod.Register(SubModuleName, 41, "module did not return an acknowledgement")
)

// InvalidPacketSequenceError is returned when a packet sequence does not
// match the next expected sequence.
type InvalidPacketSequenceError struct {
	Given, Next Sequence
}

func (e InvalidPacketSequenceError) Error() string {
	return fmt.Sprintf("invalid packet sequence %d != next send sequence %d", e.Given, e.Next)
}

func (e InvalidPacketSequenceError) Unwrap() error { return ErrInvalidPacketSequence }
func (e InvalidPacketSequenceError) Cause() error  { return ErrInvalidPacketSequence }

// LowPacketHeightError is returned when a packet timeout height is not
// beyond the latest height the client has seen.
type LowPacketHeightError struct {
	ChainHeight   client.Height
	TimeoutHeight TimeoutHeight
}

func (e LowPacketHeightError) Error() string {
	return fmt.Sprintf("receiving chain block height %s >= packet timeout height %s", e.ChainHeight, e.TimeoutHeight)
}

func (e LowPacketHeightError) Unwrap() error { return ErrLowPacketHeight }
func (e LowPacketHeightError) Cause() error  { return ErrLowPacketHeight }

// InvalidConnectionHopsLengthError is returned when a channel does not
// route over exactly the expected number of connections.
type InvalidConnectionHopsLengthError struct {
	Expected, Actual int
}

func (e InvalidConnectionHopsLengthError) Error() string {
	return fmt.Sprintf("expected %d connection hops, got %d", e.Expected, e.Actual)
}

func (e InvalidConnectionHopsLengthError) Unwrap() error { return ErrInvalidConnectionHopsLength }
func (e InvalidConnectionHopsLengthError) Cause() error  { return ErrInvalidConnectionHopsLength }

// Package core defines the contract between the IBC handlers and the host
// chain they run on: the validation and execution contexts a host
// implements, and the application modules channels are bound to.
package core

import (
	"time"

	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// ValidationContext is the read-only view of the host used by the validate
// phase of every handler. No method may mutate host state, and
// implementations must be safe to call concurrently.
type ValidationContext interface {
	client.ValidationContext

	// ClientCounter returns the number of clients created so far.
	ClientCounter() (uint64, error)
	// HostConsensusState returns the consensus state of the host itself at
	// height, as a counterparty client would store it.
	HostConsensusState(height client.Height) (client.ConsensusState, error)
	// ValidateSelfClient checks the client state a counterparty keeps for
	// this host.
	ValidateSelfClient(counterpartyClientState client.ClientState) error
	// CommitmentPrefix is the prefix the host commits IBC state under.
	CommitmentPrefix() commitment.Prefix

	// ConnectionEnd returns connection.ErrConnectionNotFound if no
	// connection is stored.
	ConnectionEnd(connectionID host.ConnectionID) (connection.ConnectionEnd, error)
	ConnectionCounter() (uint64, error)
	// CompatibleVersions returns the connection versions the host supports.
	CompatibleVersions() []connection.Version
	// MaxExpectedTimePerBlock bounds the block time of the host.
	MaxExpectedTimePerBlock() time.Duration

	// ChannelEnd returns channel.ErrChannelNotFound if no channel is stored.
	ChannelEnd(path host.ChannelEndPath) (channel.ChannelEnd, error)
	ChannelCounter() (uint64, error)
	NextSequenceSend(path host.SeqSendPath) (channel.Sequence, error)
	NextSequenceRecv(path host.SeqRecvPath) (channel.Sequence, error)
	NextSequenceAck(path host.SeqAckPath) (channel.Sequence, error)
	// PacketCommitment returns channel.ErrPacketCommitmentNotFound if the
	// packet was never sent or was already acknowledged.
	PacketCommitment(path host.CommitmentPath) (channel.PacketCommitment, error)
	// PacketReceipt reports whether an unordered packet was received.
	PacketReceipt(path host.ReceiptPath) (channel.Receipt, bool, error)
	// PacketAcknowledgement returns the ack commitment written for a
	// received packet, or channel.ErrPacketCommitmentNotFound.
	PacketAcknowledgement(path host.AckPath) (channel.AcknowledgementCommitment, error)
}

// ExecutionContext extends ValidationContext with the writes the execute
// phase of every handler performs. A host makes a message atomic by
// discarding writes when execution fails.
type ExecutionContext interface {
	ValidationContext
	client.ExecutionContext

	IncreaseClientCounter() error

	StoreConnection(path host.ConnectionPath, end connection.ConnectionEnd) error
	StoreConnectionToClient(path host.ClientConnectionPath, connectionID host.ConnectionID) error
	IncreaseConnectionCounter() error

	StoreChannel(path host.ChannelEndPath, end channel.ChannelEnd) error
	IncreaseChannelCounter() error
	StoreNextSequenceSend(path host.SeqSendPath, seq channel.Sequence) error
	StoreNextSequenceRecv(path host.SeqRecvPath, seq channel.Sequence) error
	StoreNextSequenceAck(path host.SeqAckPath, seq channel.Sequence) error

	StorePacketCommitment(path host.CommitmentPath, commitment channel.PacketCommitment) error
	DeletePacketCommitment(path host.CommitmentPath) error
	StorePacketReceipt(path host.ReceiptPath, receipt channel.Receipt) error
	StorePacketAcknowledgement(path host.AckPath, commitment channel.AcknowledgementCommitment) error

	// EmitIBCEvent records an event for the current message.
	EmitIBCEvent(event events.Event) error
	// LogMessage records a human readable line for the current message.
	LogMessage(msg string) error
}

// Msg is a decoded IBC message.
type Msg interface {
	TypeURL() string
}

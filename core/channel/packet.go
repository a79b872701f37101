package channel

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	channelproto "github.com/tendermint/ibc/proto/ibc/core/channel"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

// Sequence numbers packets sent on a channel, starting at 1.
type Sequence uint64

// Increment saturates at the maximum sequence.
func (s Sequence) Increment() Sequence {
	if s == ^Sequence(0) {
		return s
	}
	return s + 1
}

func (s Sequence) Uint64() uint64 { return uint64(s) }

// Bytes returns the value committed at a next sequence path: the sequence
// as 8 big endian bytes.
func (s Sequence) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(s))
}

// SequenceFromBytes decodes the output of Bytes. bz must be 8 bytes long.
func SequenceFromBytes(bz []byte) Sequence {
	return Sequence(binary.BigEndian.Uint64(bz))
}

// TimeoutHeight is either Never or a height on the destination chain at
// which the packet times out.
type TimeoutHeight struct {
	height client.Height
}

// TimeoutHeightNever returns a timeout height that never expires.
func TimeoutHeightNever() TimeoutHeight { return TimeoutHeight{} }

// TimeoutHeightAt returns a timeout at height h.
func TimeoutHeightAt(h client.Height) TimeoutHeight { return TimeoutHeight{height: h} }

// IsNever returns true if the packet never times out by height.
func (t TimeoutHeight) IsNever() bool { return t.height.IsZero() }

// Height returns the timeout height, or the zero height for Never.
func (t TimeoutHeight) Height() client.Height { return t.height }

// HasExpired returns true if a chain at chainHeight can no longer receive a
// packet with this timeout.
func (t TimeoutHeight) HasExpired(chainHeight client.Height) bool {
	return !t.IsNever() && t.height.LTE(chainHeight)
}

func (t TimeoutHeight) String() string {
	if t.IsNever() {
		return "never"
	}
	return t.height.String()
}

// ToProto encodes Never as the zero height.
func (t TimeoutHeight) ToProto() *clientproto.Height { return t.height.ToProto() }

// TimeoutHeightFromProto decodes nil or the zero height as Never.
func TimeoutHeightFromProto(raw *clientproto.Height) TimeoutHeight {
	return TimeoutHeight{height: client.HeightFromProtoOrZero(raw)}
}

// Packet carries application data from a source channel end to a
// destination channel end.
type Packet struct {
	Sequence           Sequence
	SourcePort         host.PortID
	SourceChannel      host.ChannelID
	DestinationPort    host.PortID
	DestinationChannel host.ChannelID
	Data               []byte
	TimeoutHeight      TimeoutHeight
	TimeoutTimestamp   timestamp.Timestamp
}

// TimedOut returns true if a destination chain at dstHeight and dstTime
// can no longer receive the packet.
func (p Packet) TimedOut(dstTime timestamp.Timestamp, dstHeight client.Height) bool {
	if p.TimeoutHeight.HasExpired(dstHeight) {
		return true
	}
	return p.TimeoutTimestamp.IsSet() && dstTime.CheckExpiry(p.TimeoutTimestamp) == timestamp.Expired
}

func (p Packet) String() string {
	return fmt.Sprintf(
		"seq:%d, path:%s/%s->%s/%s, toh:%s, tos:%s",
		p.Sequence, p.SourceChannel, p.SourcePort, p.DestinationChannel, p.DestinationPort,
		p.TimeoutHeight, p.TimeoutTimestamp,
	)
}

func (p Packet) ToProto() *channelproto.Packet {
	return &channelproto.Packet{
		Sequence:           p.Sequence.Uint64(),
		SourcePort:         p.SourcePort.String(),
		SourceChannel:      p.SourceChannel.String(),
		DestinationPort:    p.DestinationPort.String(),
		DestinationChannel: p.DestinationChannel.String(),
		Data:               p.Data,
		TimeoutHeight:      p.TimeoutHeight.ToProto(),
		TimeoutTimestamp:   p.TimeoutTimestamp.Nanoseconds(),
	}
}

// PacketFromProto converts a raw packet. The sequence must be non-zero and
// at least one of the timeouts must be set.
func PacketFromProto(raw *channelproto.Packet) (Packet, error) {
	if raw == nil {
		return Packet{}, ErrMissingPacket
	}
	if raw.Sequence == 0 {
		return Packet{}, ErrZeroPacketSequence
	}
	srcPort, err := host.ParsePortID(raw.SourcePort)
	if err != nil {
		return Packet{}, errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}
	srcChannel, err := host.ParseChannelID(raw.SourceChannel)
	if err != nil {
		return Packet{}, errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}
	dstPort, err := host.ParsePortID(raw.DestinationPort)
	if err != nil {
		return Packet{}, errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}
	dstChannel, err := host.ParseChannelID(raw.DestinationChannel)
	if err != nil {
		return Packet{}, errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}

	timeoutHeight := TimeoutHeightFromProto(raw.TimeoutHeight)
	timeoutTimestamp := timestamp.FromNanoseconds(raw.TimeoutTimestamp)
	if timeoutHeight.IsNever() && !timeoutTimestamp.IsSet() {
		return Packet{}, ErrMissingTimeout
	}

	return Packet{
		Sequence:           Sequence(raw.Sequence),
		SourcePort:         srcPort,
		SourceChannel:      srcChannel,
		DestinationPort:    dstPort,
		DestinationChannel: dstChannel,
		Data:               raw.Data,
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   timeoutTimestamp,
	}, nil
}

// PacketCommitment is the value stored at a packet's commitment path.
type PacketCommitment []byte

// ComputePacketCommitment returns
// sha256(timeout_timestamp || timeout_revision_number || timeout_revision_height || sha256(data))
// with every integer encoded as 8 big endian bytes.
func ComputePacketCommitment(data []byte, timeoutHeight TimeoutHeight, timeoutTimestamp timestamp.Timestamp) PacketCommitment {
	buf := make([]byte, 0, 24+sha256.Size)
	buf = binary.BigEndian.AppendUint64(buf, timeoutTimestamp.Nanoseconds())
	buf = binary.BigEndian.AppendUint64(buf, timeoutHeight.Height().RevisionNumber())
	buf = binary.BigEndian.AppendUint64(buf, timeoutHeight.Height().RevisionHeight())
	dataHash := sha256.Sum256(data)
	buf = append(buf, dataHash[:]...)

	hash := sha256.Sum256(buf)
	return hash[:]
}

// Acknowledgement is the opaque result an application writes for a
// received packet. It is never empty.
type Acknowledgement []byte

// NewAcknowledgement returns ErrInvalidAcknowledgement if bz is empty.
func NewAcknowledgement(bz []byte) (Acknowledgement, error) {
	if len(bz) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
	}
	return Acknowledgement(bz), nil
}

// AcknowledgementCommitment is the value stored at a packet's ack path.
type AcknowledgementCommitment []byte

// ComputeAckCommitment returns sha256(ack).
func ComputeAckCommitment(ack Acknowledgement) AcknowledgementCommitment {
	hash := sha256.Sum256(ack)
	return hash[:]
}

// Receipt marks an unordered packet as received.
type Receipt byte

// ReceiptOk is the only receipt value.
const ReceiptOk Receipt = 1

// Bytes returns the value committed at a receipt path.
func (r Receipt) Bytes() []byte { return []byte{byte(r)} }

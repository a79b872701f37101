package channel

import (
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	channelproto "github.com/tendermint/ibc/proto/ibc/core/channel"
)

const (
	TypeURLMsgRecvPacket      = "/ibc.core.channel.v1.MsgRecvPacket"
	TypeURLMsgAcknowledgement = "/ibc.core.channel.v1.MsgAcknowledgement"
	TypeURLMsgTimeout         = "/ibc.core.channel.v1.MsgTimeout"
	TypeURLMsgTimeoutOnClose  = "/ibc.core.channel.v1.MsgTimeoutOnClose"
)

// MsgRecvPacket delivers a packet with proof that the source chain
// committed it.
type MsgRecvPacket struct {
	Packet          Packet
	ProofCommitment commitment.ProofBytes
	ProofHeight     client.Height
	Signer          host.Signer
}

func (MsgRecvPacket) TypeURL() string { return TypeURLMsgRecvPacket }

func MsgRecvPacketFromProto(raw *channelproto.MsgRecvPacket) (MsgRecvPacket, error) {
	packet, err := PacketFromProto(raw.Packet)
	if err != nil {
		return MsgRecvPacket{}, err
	}
	proof, err := newProof(raw.ProofCommitment)
	if err != nil {
		return MsgRecvPacket{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgRecvPacket{}, err
	}
	return MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: proof,
		ProofHeight:     proofHeight,
		Signer:          host.Signer(raw.Signer),
	}, nil
}

func (msg MsgRecvPacket) ToProto() *channelproto.MsgRecvPacket {
	return &channelproto.MsgRecvPacket{
		Packet:          msg.Packet.ToProto(),
		ProofCommitment: msg.ProofCommitment,
		ProofHeight:     msg.ProofHeight.ToProto(),
		Signer:          msg.Signer.String(),
	}
}

// MsgAcknowledgement returns the acknowledgement of a packet to its sender
// with proof that the destination chain wrote it.
type MsgAcknowledgement struct {
	Packet          Packet
	Acknowledgement Acknowledgement
	ProofAcked      commitment.ProofBytes
	ProofHeight     client.Height
	Signer          host.Signer
}

func (MsgAcknowledgement) TypeURL() string { return TypeURLMsgAcknowledgement }

func MsgAcknowledgementFromProto(raw *channelproto.MsgAcknowledgement) (MsgAcknowledgement, error) {
	packet, err := PacketFromProto(raw.Packet)
	if err != nil {
		return MsgAcknowledgement{}, err
	}
	ack, err := NewAcknowledgement(raw.Acknowledgement)
	if err != nil {
		return MsgAcknowledgement{}, err
	}
	proof, err := newProof(raw.ProofAcked)
	if err != nil {
		return MsgAcknowledgement{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgAcknowledgement{}, err
	}
	return MsgAcknowledgement{
		Packet:          packet,
		Acknowledgement: ack,
		ProofAcked:      proof,
		ProofHeight:     proofHeight,
		Signer:          host.Signer(raw.Signer),
	}, nil
}

func (msg MsgAcknowledgement) ToProto() *channelproto.MsgAcknowledgement {
	return &channelproto.MsgAcknowledgement{
		Packet:          msg.Packet.ToProto(),
		Acknowledgement: msg.Acknowledgement,
		ProofAcked:      msg.ProofAcked,
		ProofHeight:     msg.ProofHeight.ToProto(),
		Signer:          msg.Signer.String(),
	}
}

// MsgTimeout proves that a packet was not received before its timeout.
type MsgTimeout struct {
	Packet           Packet
	NextSequenceRecv Sequence
	ProofUnreceived  commitment.ProofBytes
	ProofHeight      client.Height
	Signer           host.Signer
}

func (MsgTimeout) TypeURL() string { return TypeURLMsgTimeout }

func MsgTimeoutFromProto(raw *channelproto.MsgTimeout) (MsgTimeout, error) {
	packet, err := PacketFromProto(raw.Packet)
	if err != nil {
		return MsgTimeout{}, err
	}
	proof, err := newProof(raw.ProofUnreceived)
	if err != nil {
		return MsgTimeout{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgTimeout{}, err
	}
	return MsgTimeout{
		Packet:           packet,
		NextSequenceRecv: Sequence(raw.NextSequenceRecv),
		ProofUnreceived:  proof,
		ProofHeight:      proofHeight,
		Signer:           host.Signer(raw.Signer),
	}, nil
}

func (msg MsgTimeout) ToProto() *channelproto.MsgTimeout {
	return &channelproto.MsgTimeout{
		Packet:           msg.Packet.ToProto(),
		ProofUnreceived:  msg.ProofUnreceived,
		ProofHeight:      msg.ProofHeight.ToProto(),
		NextSequenceRecv: msg.NextSequenceRecv.Uint64(),
		Signer:           msg.Signer.String(),
	}
}

// MsgTimeoutOnClose times a packet out because the destination channel was
// closed.
type MsgTimeoutOnClose struct {
	Packet           Packet
	NextSequenceRecv Sequence
	ProofUnreceived  commitment.ProofBytes
	ProofClose       commitment.ProofBytes
	ProofHeight      client.Height
	Signer           host.Signer
}

func (MsgTimeoutOnClose) TypeURL() string { return TypeURLMsgTimeoutOnClose }

func MsgTimeoutOnCloseFromProto(raw *channelproto.MsgTimeoutOnClose) (MsgTimeoutOnClose, error) {
	packet, err := PacketFromProto(raw.Packet)
	if err != nil {
		return MsgTimeoutOnClose{}, err
	}
	proofUnreceived, err := newProof(raw.ProofUnreceived)
	if err != nil {
		return MsgTimeoutOnClose{}, err
	}
	proofClose, err := newProof(raw.ProofClose)
	if err != nil {
		return MsgTimeoutOnClose{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgTimeoutOnClose{}, err
	}
	return MsgTimeoutOnClose{
		Packet:           packet,
		NextSequenceRecv: Sequence(raw.NextSequenceRecv),
		ProofUnreceived:  proofUnreceived,
		ProofClose:       proofClose,
		ProofHeight:      proofHeight,
		Signer:           host.Signer(raw.Signer),
	}, nil
}

func (msg MsgTimeoutOnClose) ToProto() *channelproto.MsgTimeoutOnClose {
	return &channelproto.MsgTimeoutOnClose{
		Packet:           msg.Packet.ToProto(),
		ProofUnreceived:  msg.ProofUnreceived,
		ProofClose:       msg.ProofClose,
		ProofHeight:      msg.ProofHeight.ToProto(),
		NextSequenceRecv: msg.NextSequenceRecv.Uint64(),
		Signer:           msg.Signer.String(),
	}
}

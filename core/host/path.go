package host

import (
	"fmt"
)

// Path is a key in the provable store. Its string form is the ICS-24 path.
type Path interface {
	fmt.Stringer
}

var (
	_ Path = ClientStatePath{}
	_ Path = ClientConsensusStatePath{}
	_ Path = ClientConnectionPath{}
	_ Path = ConnectionPath{}
	_ Path = ChannelEndPath{}
	_ Path = SeqSendPath{}
	_ Path = SeqRecvPath{}
	_ Path = SeqAckPath{}
	_ Path = CommitmentPath{}
	_ Path = AckPath{}
	_ Path = ReceiptPath{}
)

type ClientStatePath struct {
	ClientID ClientID
}

func (p ClientStatePath) String() string {
	return fmt.Sprintf("clients/%s/clientState", p.ClientID)
}

type ClientConsensusStatePath struct {
	ClientID       ClientID
	RevisionNumber uint64
	RevisionHeight uint64
}

func (p ClientConsensusStatePath) String() string {
	return fmt.Sprintf("clients/%s/consensusStates/%d-%d", p.ClientID, p.RevisionNumber, p.RevisionHeight)
}

type ClientConnectionPath struct {
	ClientID ClientID
}

func (p ClientConnectionPath) String() string {
	return fmt.Sprintf("clients/%s/connections", p.ClientID)
}

type ConnectionPath struct {
	ConnectionID ConnectionID
}

func (p ConnectionPath) String() string {
	return fmt.Sprintf("connections/%s", p.ConnectionID)
}

type ChannelEndPath struct {
	PortID    PortID
	ChannelID ChannelID
}

func (p ChannelEndPath) String() string {
	return fmt.Sprintf("channelEnds/%s", portChannel(p.PortID, p.ChannelID))
}

type SeqSendPath struct {
	PortID    PortID
	ChannelID ChannelID
}

func (p SeqSendPath) String() string {
	return fmt.Sprintf("nextSequenceSend/%s", portChannel(p.PortID, p.ChannelID))
}

type SeqRecvPath struct {
	PortID    PortID
	ChannelID ChannelID
}

func (p SeqRecvPath) String() string {
	return fmt.Sprintf("nextSequenceRecv/%s", portChannel(p.PortID, p.ChannelID))
}

type SeqAckPath struct {
	PortID    PortID
	ChannelID ChannelID
}

func (p SeqAckPath) String() string {
	return fmt.Sprintf("nextSequenceAck/%s", portChannel(p.PortID, p.ChannelID))
}

type CommitmentPath struct {
	PortID    PortID
	ChannelID ChannelID
	Sequence  uint64
}

func (p CommitmentPath) String() string {
	return fmt.Sprintf("commitments/%s/sequences/%d", portChannel(p.PortID, p.ChannelID), p.Sequence)
}

type AckPath struct {
	PortID    PortID
	ChannelID ChannelID
	Sequence  uint64
}

func (p AckPath) String() string {
	return fmt.Sprintf("acks/%s/sequences/%d", portChannel(p.PortID, p.ChannelID), p.Sequence)
}

type ReceiptPath struct {
	PortID    PortID
	ChannelID ChannelID
	Sequence  uint64
}

func (p ReceiptPath) String() string {
	return fmt.Sprintf("receipts/%s/sequences/%d", portChannel(p.PortID, p.ChannelID), p.Sequence)
}

func portChannel(port PortID, channel ChannelID) string {
	return fmt.Sprintf("ports/%s/channels/%s", port, channel)
}

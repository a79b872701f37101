// Package relay drives two in-process chains through the IBC handshakes and
// packet flows. Every proof it submits is taken from a committed block of
// the source chain after the destination client was updated to that block.
package relay

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	"github.com/tendermint/ibc/internal/chain"
	"github.com/tendermint/ibc/libs/log"
	"github.com/tendermint/ibc/lightclients/mock"
)

// Codespace is the codespace of relayer errors.
const Codespace = "relay"

var (
	ErrMissingEvent   = errorsmod.Register(Codespace, 2, "expected event was not emitted")
	ErrUnknownChannel = errorsmod.Register(Codespace, 3, "packet does not belong to the relayed channel")
	ErrNotTimedOut    = errorsmod.Register(Codespace, 4, "packet has not timed out on the destination")
)

// Endpoint is one end of the path between the two chains.
type Endpoint struct {
	Chain        *chain.Chain
	ClientID     host.ClientID
	ConnectionID host.ConnectionID
	PortID       host.PortID
	ChannelID    host.ChannelID
}

// Relayer relays between endpoints A and B.
type Relayer struct {
	A, B   *Endpoint
	signer host.Signer
	logger log.Logger
}

func NewRelayer(a, b *chain.Chain, signer host.Signer, logger log.Logger) *Relayer {
	return &Relayer{
		A:      &Endpoint{Chain: a},
		B:      &Endpoint{Chain: b},
		signer: signer,
		logger: logger.With("path", a.ID().String()+"<->"+b.ID().String()),
	}
}

func (r *Relayer) counterparty(e *Endpoint) *Endpoint {
	if e == r.A {
		return r.B
	}
	return r.A
}

// Setup creates the clients and opens a connection and a channel between
// the given ports.
func (r *Relayer) Setup(portA, portB host.PortID, order channel.Order, version channel.Version, delay time.Duration) error {
	if err := r.CreateClients(); err != nil {
		return err
	}
	if err := r.OpenConnection(delay); err != nil {
		return err
	}
	return r.OpenChannel(portA, portB, order, version)
}

// CreateClients creates a mock client of each chain on the other one.
func (r *Relayer) CreateClients() error {
	for _, e := range []*Endpoint{r.A, r.B} {
		cp := r.counterparty(e)
		header, err := cp.Chain.Commit()
		if err != nil {
			return err
		}
		cs, err := mock.NewClientState(header).ToAny()
		if err != nil {
			return err
		}
		cons, err := mock.NewConsensusState(header).ToAny()
		if err != nil {
			return err
		}
		res, err := e.Chain.Deliver(client.MsgCreateClient{ClientState: cs, ConsensusState: cons, Signer: r.signer})
		if err != nil {
			return errorsmod.Wrapf(err, "create client on %s", e.Chain.ID())
		}
		ev, ok := findEvent[client.CreateClientEvent](res)
		if !ok {
			return errorsmod.Wrap(ErrMissingEvent, client.EventTypeCreateClient)
		}
		e.ClientID = ev.ClientID
		r.logger.Info("created client", "chain", e.Chain.ID(), "client", e.ClientID)
	}
	return nil
}

// UpdateClient commits src and updates the client of src on dst to the new
// block. It returns the height of the block.
func (r *Relayer) UpdateClient(src *Endpoint) (client.Height, error) {
	dst := r.counterparty(src)
	header, err := src.Chain.Commit()
	if err != nil {
		return client.Height{}, err
	}
	raw, err := header.ToAny()
	if err != nil {
		return client.Height{}, err
	}
	msg := client.MsgUpdateClient{ClientID: dst.ClientID, ClientMessage: raw, Signer: r.signer}
	if _, err := dst.Chain.Deliver(msg); err != nil {
		return client.Height{}, errorsmod.Wrapf(err, "update client %s on %s", dst.ClientID, dst.Chain.ID())
	}
	return header.Height, nil
}

// OpenConnection runs the four step connection handshake from A.
func (r *Relayer) OpenConnection(delay time.Duration) error {
	a, b := r.A, r.B

	res, err := a.Chain.Deliver(connection.MsgConnectionOpenInit{
		ClientID:     a.ClientID,
		Counterparty: connection.NewCounterparty(b.ClientID, host.ConnectionID{}, b.Chain.Prefix()),
		DelayPeriod:  delay,
		Signer:       r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "conn open init")
	}
	a.ConnectionID, err = connectionID(res)
	if err != nil {
		return err
	}

	try, err := r.connectionProofs(a)
	if err != nil {
		return err
	}
	res, err = b.Chain.Deliver(connection.MsgConnectionOpenTry{
		ClientID:             b.ClientID,
		ClientState:          try.clientState,
		Counterparty:         connection.NewCounterparty(a.ClientID, a.ConnectionID, a.Chain.Prefix()),
		CounterpartyVersions: try.end.Versions,
		ProofInit:            try.proofConnection,
		ProofClient:          try.proofClient,
		ProofConsensus:       try.proofConsensus,
		ProofHeight:          try.proofHeight,
		ConsensusHeight:      try.consensusHeight,
		DelayPeriod:          delay,
		Signer:               r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "conn open try")
	}
	b.ConnectionID, err = connectionID(res)
	if err != nil {
		return err
	}

	ack, err := r.connectionProofs(b)
	if err != nil {
		return err
	}
	_, err = a.Chain.Deliver(connection.MsgConnectionOpenAck{
		ConnectionID:             a.ConnectionID,
		CounterpartyConnectionID: b.ConnectionID,
		ClientState:              ack.clientState,
		ProofTry:                 ack.proofConnection,
		ProofClient:              ack.proofClient,
		ProofConsensus:           ack.proofConsensus,
		ProofHeight:              ack.proofHeight,
		ConsensusHeight:          ack.consensusHeight,
		Version:                  ack.end.Versions[0],
		Signer:                   r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "conn open ack")
	}

	proofHeight, err := r.UpdateClient(a)
	if err != nil {
		return err
	}
	_, proofAck, err := a.Chain.QueryProof(host.ConnectionPath{ConnectionID: a.ConnectionID}, proofHeight)
	if err != nil {
		return err
	}
	_, err = b.Chain.Deliver(connection.MsgConnectionOpenConfirm{
		ConnectionID: b.ConnectionID,
		ProofAck:     proofAck,
		ProofHeight:  proofHeight,
		Signer:       r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "conn open confirm")
	}
	r.logger.Info("opened connection", "a", a.ConnectionID, "b", b.ConnectionID)
	return nil
}

// connectionHandshakeProofs is what src proves about itself in a Try or
// Ack step.
type connectionHandshakeProofs struct {
	end             connection.ConnectionEnd
	clientState     *gogotypes.Any
	proofConnection commitment.ProofBytes
	proofClient     commitment.ProofBytes
	proofConsensus  commitment.ProofBytes
	proofHeight     client.Height
	consensusHeight client.Height
}

// connectionProofs brings the client of the counterparty on src up to date,
// then proves the connection end of src, its client of the counterparty and
// the consensus state that client stores.
func (r *Relayer) connectionProofs(src *Endpoint) (connectionHandshakeProofs, error) {
	dst := r.counterparty(src)
	consensusHeight, err := r.UpdateClient(dst)
	if err != nil {
		return connectionHandshakeProofs{}, err
	}
	proofHeight, err := r.UpdateClient(src)
	if err != nil {
		return connectionHandshakeProofs{}, err
	}

	p := connectionHandshakeProofs{proofHeight: proofHeight, consensusHeight: consensusHeight}
	bz, proof, err := src.Chain.QueryProof(host.ConnectionPath{ConnectionID: src.ConnectionID}, proofHeight)
	if err != nil {
		return p, err
	}
	if p.end, err = connection.UnmarshalConnectionEnd(bz); err != nil {
		return p, err
	}
	p.proofConnection = proof

	bz, p.proofClient, err = src.Chain.QueryProof(host.ClientStatePath{ClientID: src.ClientID}, proofHeight)
	if err != nil {
		return p, err
	}
	p.clientState = &gogotypes.Any{}
	if err := proto.Unmarshal(bz, p.clientState); err != nil {
		return p, err
	}

	_, p.proofConsensus, err = src.Chain.QueryProof(client.ConsensusStatePath(src.ClientID, consensusHeight), proofHeight)
	return p, err
}

// OpenChannel runs the four step channel handshake from A.
func (r *Relayer) OpenChannel(portA, portB host.PortID, order channel.Order, version channel.Version) error {
	a, b := r.A, r.B
	a.PortID, b.PortID = portA, portB

	res, err := a.Chain.Deliver(channel.MsgChannelOpenInit{
		PortID:             a.PortID,
		ConnectionHops:     []host.ConnectionID{a.ConnectionID},
		CounterpartyPortID: b.PortID,
		Ordering:           order,
		VersionProposal:    version,
		Signer:             r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "chan open init")
	}
	if a.ChannelID, err = channelID(res); err != nil {
		return err
	}

	endA, proofInit, proofHeight, err := r.channelProof(a)
	if err != nil {
		return err
	}
	res, err = b.Chain.Deliver(channel.MsgChannelOpenTry{
		PortID:              b.PortID,
		ConnectionHops:      []host.ConnectionID{b.ConnectionID},
		Counterparty:        channel.NewCounterparty(a.PortID, a.ChannelID),
		Ordering:            order,
		CounterpartyVersion: endA.Version,
		ProofInit:           proofInit,
		ProofHeight:         proofHeight,
		Signer:              r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "chan open try")
	}
	if b.ChannelID, err = channelID(res); err != nil {
		return err
	}

	endB, proofTry, proofHeight, err := r.channelProof(b)
	if err != nil {
		return err
	}
	_, err = a.Chain.Deliver(channel.MsgChannelOpenAck{
		PortID:                a.PortID,
		ChannelID:             a.ChannelID,
		CounterpartyChannelID: b.ChannelID,
		CounterpartyVersion:   endB.Version,
		ProofTry:              proofTry,
		ProofHeight:           proofHeight,
		Signer:                r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "chan open ack")
	}

	_, proofAck, proofHeight, err := r.channelProof(a)
	if err != nil {
		return err
	}
	_, err = b.Chain.Deliver(channel.MsgChannelOpenConfirm{
		PortID:      b.PortID,
		ChannelID:   b.ChannelID,
		ProofAck:    proofAck,
		ProofHeight: proofHeight,
		Signer:      r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "chan open confirm")
	}
	r.logger.Info("opened channel", "a", a.ChannelID, "b", b.ChannelID, "order", order, "version", endA.Version)
	return nil
}

// CloseChannel closes the channel from src and confirms the close on the
// counterparty.
func (r *Relayer) CloseChannel(src *Endpoint) error {
	dst := r.counterparty(src)
	if _, err := src.Chain.Deliver(channel.MsgChannelCloseInit{PortID: src.PortID, ChannelID: src.ChannelID, Signer: r.signer}); err != nil {
		return errorsmod.Wrap(err, "chan close init")
	}
	_, proofInit, proofHeight, err := r.channelProof(src)
	if err != nil {
		return err
	}
	_, err = dst.Chain.Deliver(channel.MsgChannelCloseConfirm{
		PortID:      dst.PortID,
		ChannelID:   dst.ChannelID,
		ProofInit:   proofInit,
		ProofHeight: proofHeight,
		Signer:      r.signer,
	})
	if err != nil {
		return errorsmod.Wrap(err, "chan close confirm")
	}
	return nil
}

// channelProof updates the client of src on the counterparty and proves
// the channel end of src at the new height.
func (r *Relayer) channelProof(src *Endpoint) (channel.ChannelEnd, commitment.ProofBytes, client.Height, error) {
	proofHeight, err := r.UpdateClient(src)
	if err != nil {
		return channel.ChannelEnd{}, nil, client.Height{}, err
	}
	bz, proof, err := src.Chain.QueryProof(host.ChannelEndPath{PortID: src.PortID, ChannelID: src.ChannelID}, proofHeight)
	if err != nil {
		return channel.ChannelEnd{}, nil, client.Height{}, err
	}
	end, err := channel.UnmarshalChannelEnd(bz)
	return end, proof, proofHeight, err
}

// Send commits a packet carrying data on the channel of src.
func (r *Relayer) Send(src *Endpoint, data []byte, timeoutHeight channel.TimeoutHeight, timeoutTimestamp time.Time) (channel.Packet, error) {
	dst := r.counterparty(src)
	var seq channel.Sequence
	err := src.Chain.View(func(ctx core.ValidationContext) (err error) {
		seq, err = ctx.NextSequenceSend(host.SeqSendPath{PortID: src.PortID, ChannelID: src.ChannelID})
		return err
	})
	if err != nil {
		return channel.Packet{}, err
	}

	packet := channel.Packet{
		Sequence:           seq,
		SourcePort:         src.PortID,
		SourceChannel:      src.ChannelID,
		DestinationPort:    dst.PortID,
		DestinationChannel: dst.ChannelID,
		Data:               data,
		TimeoutHeight:      timeoutHeight,
	}
	if !timeoutTimestamp.IsZero() {
		packet.TimeoutTimestamp = timestamp.FromTime(timeoutTimestamp)
	}
	if _, err := src.Chain.SendPacket(packet); err != nil {
		return channel.Packet{}, err
	}
	return packet, nil
}

func (r *Relayer) source(packet channel.Packet) (*Endpoint, error) {
	for _, e := range []*Endpoint{r.A, r.B} {
		if e.PortID == packet.SourcePort && e.ChannelID == packet.SourceChannel {
			return e, nil
		}
	}
	return nil, errorsmod.Wrapf(ErrUnknownChannel, "%s/%s", packet.SourcePort, packet.SourceChannel)
}

// RecvPacket proves the commitment of packet to the destination and
// delivers it. It returns the acknowledgement written on receive, or nil if
// the destination module deferred it.
func (r *Relayer) RecvPacket(packet channel.Packet) (channel.Acknowledgement, error) {
	src, err := r.source(packet)
	if err != nil {
		return nil, err
	}
	dst := r.counterparty(src)

	proofHeight, err := r.UpdateClient(src)
	if err != nil {
		return nil, err
	}
	if err := r.waitDelay(dst); err != nil {
		return nil, err
	}
	path := host.CommitmentPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel, Sequence: packet.Sequence.Uint64()}
	_, proof, err := src.Chain.QueryProof(path, proofHeight)
	if err != nil {
		return nil, err
	}
	res, err := dst.Chain.Deliver(channel.MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: proof,
		ProofHeight:     proofHeight,
		Signer:          r.signer,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(err, "recv packet %d", packet.Sequence)
	}
	if ev, ok := findEvent[channel.WriteAcknowledgementEvent](res); ok {
		return ev.Ack, nil
	}
	return nil, nil
}

// AcknowledgePacket proves the acknowledgement written by the destination
// back to the source.
func (r *Relayer) AcknowledgePacket(packet channel.Packet, ack channel.Acknowledgement) error {
	src, err := r.source(packet)
	if err != nil {
		return err
	}
	dst := r.counterparty(src)

	proofHeight, err := r.UpdateClient(dst)
	if err != nil {
		return err
	}
	if err := r.waitDelay(src); err != nil {
		return err
	}
	path := host.AckPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel, Sequence: packet.Sequence.Uint64()}
	_, proof, err := dst.Chain.QueryProof(path, proofHeight)
	if err != nil {
		return err
	}
	_, err = src.Chain.Deliver(channel.MsgAcknowledgement{
		Packet:          packet,
		Acknowledgement: ack,
		ProofAcked:      proof,
		ProofHeight:     proofHeight,
		Signer:          r.signer,
	})
	if err != nil {
		return errorsmod.Wrapf(err, "acknowledge packet %d", packet.Sequence)
	}
	return nil
}

// RelayPacket receives packet on the destination and, if the module
// acknowledged it synchronously, relays the acknowledgement back.
func (r *Relayer) RelayPacket(packet channel.Packet) (channel.Acknowledgement, error) {
	ack, err := r.RecvPacket(packet)
	if err != nil || ack == nil {
		return ack, err
	}
	return ack, r.AcknowledgePacket(packet, ack)
}

// TimeoutPacket proves to the source that the destination did not receive
// packet before it timed out. With onClose the proof relies on the
// destination channel being closed instead.
func (r *Relayer) TimeoutPacket(packet channel.Packet, onClose bool) error {
	src, err := r.source(packet)
	if err != nil {
		return err
	}
	dst := r.counterparty(src)

	proofHeight, err := r.UpdateClient(dst)
	if err != nil {
		return err
	}
	if err := r.waitDelay(src); err != nil {
		return err
	}
	header, err := dst.Chain.HeaderAt(proofHeight)
	if err != nil {
		return err
	}
	if !onClose && !packet.TimedOut(header.Timestamp, header.Height) {
		return errorsmod.Wrapf(ErrNotTimedOut, "packet %d at %s", packet.Sequence, proofHeight)
	}

	var end channel.ChannelEnd
	err = dst.Chain.View(func(ctx core.ValidationContext) (err error) {
		end, err = ctx.ChannelEnd(host.ChannelEndPath{PortID: dst.PortID, ChannelID: dst.ChannelID})
		return err
	})
	if err != nil {
		return err
	}

	var (
		unreceivedPath host.Path
		nextRecv       = packet.Sequence
	)
	if end.Ordering == channel.OrderOrdered {
		unreceivedPath = host.SeqRecvPath{PortID: dst.PortID, ChannelID: dst.ChannelID}
	} else {
		unreceivedPath = host.ReceiptPath{PortID: dst.PortID, ChannelID: dst.ChannelID, Sequence: packet.Sequence.Uint64()}
	}
	bz, proofUnreceived, err := dst.Chain.QueryProof(unreceivedPath, proofHeight)
	if err != nil {
		return err
	}
	if end.Ordering == channel.OrderOrdered {
		nextRecv = channel.SequenceFromBytes(bz)
	}

	if !onClose {
		_, err = src.Chain.Deliver(channel.MsgTimeout{
			Packet:           packet,
			NextSequenceRecv: nextRecv,
			ProofUnreceived:  proofUnreceived,
			ProofHeight:      proofHeight,
			Signer:           r.signer,
		})
		return errorsmod.Wrapf(err, "timeout packet %d", packet.Sequence)
	}

	_, proofClose, err := dst.Chain.QueryProof(host.ChannelEndPath{PortID: dst.PortID, ChannelID: dst.ChannelID}, proofHeight)
	if err != nil {
		return err
	}
	_, err = src.Chain.Deliver(channel.MsgTimeoutOnClose{
		Packet:           packet,
		NextSequenceRecv: nextRecv,
		ProofUnreceived:  proofUnreceived,
		ProofClose:       proofClose,
		ProofHeight:      proofHeight,
		Signer:           r.signer,
	})
	return errorsmod.Wrapf(err, "timeout on close packet %d", packet.Sequence)
}

// waitDelay commits blocks on dst until the delay period of its connection
// has passed for a client update made in the pending block.
func (r *Relayer) waitDelay(dst *Endpoint) error {
	var end connection.ConnectionEnd
	err := dst.Chain.View(func(ctx core.ValidationContext) (err error) {
		end, err = ctx.ConnectionEnd(dst.ConnectionID)
		return err
	})
	if err != nil || end.DelayPeriod == 0 {
		return err
	}

	blocks := connection.CalculateBlockDelay(end.DelayPeriod, dst.Chain.MaxExpectedTimePerBlock())
	if byTime := connection.CalculateBlockDelay(end.DelayPeriod, dst.Chain.BlockTime()); byTime > blocks {
		blocks = byTime
	}
	for i := uint64(0); i < blocks; i++ {
		if _, err := dst.Chain.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func findEvent[E any](res chain.Result) (E, bool) {
	for _, ev := range res.Events {
		if e, ok := ev.(E); ok {
			return e, true
		}
	}
	var zero E
	return zero, false
}

func connectionID(res chain.Result) (host.ConnectionID, error) {
	ev, ok := findEvent[connection.OpenEvent](res)
	if !ok {
		return host.ConnectionID{}, errorsmod.Wrap(ErrMissingEvent, "connection open event")
	}
	return ev.ConnectionID, nil
}

func channelID(res chain.Result) (host.ChannelID, error) {
	ev, ok := findEvent[channel.HandshakeEvent](res)
	if !ok {
		return host.ChannelID{}, errorsmod.Wrap(ErrMissingEvent, "channel handshake event")
	}
	return ev.ChannelID, nil
}

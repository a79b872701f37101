package handler

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	ibcerrors "github.com/tendermint/ibc/core/errors"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
)

// SendPacket validates a packet built by an application and, if it is
// valid, commits it for relaying. Errors are returned as
// *ibcerrors.ContextError.
func SendPacket(ctx core.ExecutionContext, packet channel.Packet) error {
	if err := SendPacketValidate(ctx, packet); err != nil {
		return ibcerrors.FromError(err)
	}
	return ibcerrors.FromError(SendPacketExecute(ctx, packet))
}

// SendPacketValidate checks, in order: the channel is not closed, the packet
// targets the channel counterparty, the client is active, the timeouts have
// not already passed on the counterparty and the sequence is the next send
// sequence.
func SendPacketValidate(ctx core.ValidationContext, packet channel.Packet) error {
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
	if err != nil {
		return err
	}
	if err := end.VerifyNotClosed(); err != nil {
		return err
	}
	if err := end.VerifyCounterpartyMatches(channel.NewCounterparty(packet.DestinationPort, packet.DestinationChannel)); err != nil {
		return err
	}

	conn, err := ctx.ConnectionEnd(end.ConnectionID())
	if err != nil {
		return err
	}
	cs, err := ctx.ClientState(conn.ClientID)
	if err != nil {
		return err
	}
	if err := client.VerifyActive(ctx, cs, conn.ClientID); err != nil {
		return err
	}

	latestHeight := cs.LatestHeight()
	if packet.TimeoutHeight.HasExpired(latestHeight) {
		return channel.LowPacketHeightError{ChainHeight: latestHeight, TimeoutHeight: packet.TimeoutHeight}
	}
	consensus, err := ctx.ConsensusState(client.ConsensusStatePath(conn.ClientID, latestHeight))
	if err != nil {
		return err
	}
	latestTimestamp := consensus.Timestamp()
	if latestTimestamp.CheckExpiry(packet.TimeoutTimestamp) == timestamp.Expired {
		return errorsmod.Wrapf(
			channel.ErrLowPacketTimestamp,
			"latest counterparty time %s > packet timeout %s", latestTimestamp, packet.TimeoutTimestamp,
		)
	}

	next, err := ctx.NextSequenceSend(host.SeqSendPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
	if err != nil {
		return err
	}
	if packet.Sequence != next {
		return channel.InvalidPacketSequenceError{Given: packet.Sequence, Next: next}
	}
	return nil
}

// SendPacketExecute advances the send sequence and stores the packet
// commitment.
func SendPacketExecute(ctx core.ExecutionContext, packet channel.Packet) error {
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
	if err != nil {
		return err
	}

	seqPath := host.SeqSendPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel}
	if err := ctx.StoreNextSequenceSend(seqPath, packet.Sequence.Increment()); err != nil {
		return err
	}
	commitmentPath := host.CommitmentPath{
		PortID:    packet.SourcePort,
		ChannelID: packet.SourceChannel,
		Sequence:  packet.Sequence.Uint64(),
	}
	packetCommitment := channel.ComputePacketCommitment(packet.Data, packet.TimeoutHeight, packet.TimeoutTimestamp)
	if err := ctx.StorePacketCommitment(commitmentPath, packetCommitment); err != nil {
		return err
	}

	if err := ctx.LogMessage("success: packet send"); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(events.MessageChannel); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(channel.SendPacketEvent{
		Packet:       packet,
		Ordering:     end.Ordering,
		ConnectionID: end.ConnectionID(),
	})
}

// RecvPacketValidate verifies that the source chain committed the packet and
// that it can still be received. Receiving a packet twice is a no-op.
func RecvPacketValidate(ctx core.ValidationContext, msg channel.MsgRecvPacket) error {
	packet := msg.Packet
	path := host.ChannelEndPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel}
	end, conn, err := channelAndConnection(ctx, path, channel.StateOpen)
	if err != nil {
		return err
	}
	if err := end.VerifyCounterpartyMatches(channel.NewCounterparty(packet.SourcePort, packet.SourceChannel)); err != nil {
		return err
	}

	hostHeight, err := ctx.HostHeight()
	if err != nil {
		return err
	}
	hostTime, err := ctx.HostTimestamp()
	if err != nil {
		return err
	}
	if packet.TimedOut(hostTime, hostHeight) {
		return errorsmod.Wrapf(channel.ErrPacketTimeout, "packet %s timed out at host height %s", packet, hostHeight)
	}

	proofs, err := loadProofContext(ctx, conn.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	commitmentPath := host.CommitmentPath{
		PortID:    packet.SourcePort,
		ChannelID: packet.SourceChannel,
		Sequence:  packet.Sequence.Uint64(),
	}
	packetCommitment := channel.ComputePacketCommitment(packet.Data, packet.TimeoutHeight, packet.TimeoutTimestamp)
	if err := proofs.verifyMembership(conn.Counterparty.Prefix, msg.ProofCommitment, commitmentPath, packetCommitment); err != nil {
		return errorsmod.Wrapf(channel.ErrPacketVerificationFailed, "%s: %v", commitmentPath, err)
	}
	if err := verifyDelayPassed(ctx, conn.ClientID, msg.ProofHeight, conn.DelayPeriod); err != nil {
		return err
	}

	received, err := packetReceived(ctx, end, packet)
	if err != nil || received {
		return err
	}
	return verifyNoAcknowledgement(ctx, packet)
}

// RecvPacketExecute hands the packet to the module bound to the destination
// port, records its receipt and writes the acknowledgement the module
// returned, if any.
func RecvPacketExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgRecvPacket) error {
	packet := msg.Packet
	path := host.ChannelEndPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel}
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return err
	}
	received, err := packetReceived(ctx, end, packet)
	if err != nil {
		return err
	}
	if received {
		return ctx.LogMessage("success: packet already received, no-op")
	}

	module, err := router.Route(packet.DestinationPort)
	if err != nil {
		return err
	}
	ack, err := module.OnRecvPacket(packet, msg.Signer)
	if err != nil {
		return err
	}

	switch end.Ordering {
	case channel.OrderOrdered:
		seqPath := host.SeqRecvPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel}
		if err := ctx.StoreNextSequenceRecv(seqPath, packet.Sequence.Increment()); err != nil {
			return err
		}
	default:
		receiptPath := host.ReceiptPath{
			PortID:    packet.DestinationPort,
			ChannelID: packet.DestinationChannel,
			Sequence:  packet.Sequence.Uint64(),
		}
		if err := ctx.StorePacketReceipt(receiptPath, channel.ReceiptOk); err != nil {
			return err
		}
	}

	if err := ctx.LogMessage("success: packet receive"); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(events.MessageChannel); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(channel.ReceivePacketEvent{
		Packet:       packet,
		Ordering:     end.Ordering,
		ConnectionID: end.ConnectionID(),
	}); err != nil {
		return err
	}

	if ack == nil {
		return nil
	}
	return writeAcknowledgement(ctx, end, packet, ack)
}

// packetReceived reports whether packet was already received on end. For an
// ordered channel a sequence beyond the next receive sequence is an error.
func packetReceived(ctx core.ValidationContext, end channel.ChannelEnd, packet channel.Packet) (bool, error) {
	if end.Ordering == channel.OrderOrdered {
		next, err := ctx.NextSequenceRecv(host.SeqRecvPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel})
		if err != nil {
			return false, err
		}
		if packet.Sequence > next {
			return false, errorsmod.Wrapf(
				channel.ErrPacketSequenceOutOfOrder,
				"packet sequence %d, next receive sequence %d", packet.Sequence, next,
			)
		}
		return packet.Sequence < next, nil
	}

	_, ok, err := ctx.PacketReceipt(host.ReceiptPath{
		PortID:    packet.DestinationPort,
		ChannelID: packet.DestinationChannel,
		Sequence:  packet.Sequence.Uint64(),
	})
	return ok, err
}

func verifyNoAcknowledgement(ctx core.ValidationContext, packet channel.Packet) error {
	ackPath := host.AckPath{
		PortID:    packet.DestinationPort,
		ChannelID: packet.DestinationChannel,
		Sequence:  packet.Sequence.Uint64(),
	}
	_, err := ctx.PacketAcknowledgement(ackPath)
	switch {
	case err == nil:
		return errorsmod.Wrapf(channel.ErrAcknowledgementExists, "%s", ackPath)
	case errorsmod.IsOf(err, channel.ErrPacketCommitmentNotFound):
		return nil
	default:
		return err
	}
}

// WriteAcknowledgementValidate checks that a packet was received on an open
// channel and has no acknowledgement yet.
func WriteAcknowledgementValidate(ctx core.ValidationContext, packet channel.Packet, ack channel.Acknowledgement) error {
	if len(ack) == 0 {
		return errorsmod.Wrap(channel.ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
	}
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel})
	if err != nil {
		return err
	}
	if err := end.VerifyStateMatches(channel.StateOpen); err != nil {
		return err
	}
	received, err := packetReceived(ctx, end, packet)
	if err != nil {
		return err
	}
	if !received {
		return errorsmod.Wrapf(channel.ErrInvalidPacket, "packet %s was not received", packet)
	}
	return verifyNoAcknowledgement(ctx, packet)
}

// WriteAcknowledgement writes the acknowledgement of a packet whose module
// deferred it on receipt.
func WriteAcknowledgement(ctx core.ExecutionContext, packet channel.Packet, ack channel.Acknowledgement) error {
	if err := WriteAcknowledgementValidate(ctx, packet, ack); err != nil {
		return ibcerrors.FromError(err)
	}
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel})
	if err != nil {
		return ibcerrors.FromError(err)
	}
	return ibcerrors.FromError(writeAcknowledgement(ctx, end, packet, ack))
}

func writeAcknowledgement(ctx core.ExecutionContext, end channel.ChannelEnd, packet channel.Packet, ack channel.Acknowledgement) error {
	ackPath := host.AckPath{
		PortID:    packet.DestinationPort,
		ChannelID: packet.DestinationChannel,
		Sequence:  packet.Sequence.Uint64(),
	}
	if err := ctx.StorePacketAcknowledgement(ackPath, channel.ComputeAckCommitment(ack)); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: packet write acknowledgement"); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(channel.WriteAcknowledgementEvent{
		Packet:       packet,
		Ack:          ack,
		ConnectionID: end.ConnectionID(),
	})
}

// AcknowledgePacketValidate verifies that the destination chain wrote the
// acknowledgement. A packet whose commitment is already gone is a no-op.
func AcknowledgePacketValidate(ctx core.ValidationContext, msg channel.MsgAcknowledgement) error {
	packet := msg.Packet
	path := host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel}
	end, conn, err := channelAndConnection(ctx, path, channel.StateOpen)
	if err != nil {
		return err
	}
	if err := end.VerifyCounterpartyMatches(channel.NewCounterparty(packet.DestinationPort, packet.DestinationChannel)); err != nil {
		return err
	}

	pending, err := verifyPacketCommitment(ctx, packet)
	if err != nil || !pending {
		return err
	}

	if end.Ordering == channel.OrderOrdered {
		next, err := ctx.NextSequenceAck(host.SeqAckPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
		if err != nil {
			return err
		}
		if packet.Sequence != next {
			return errorsmod.Wrapf(
				channel.ErrPacketSequenceOutOfOrder,
				"packet sequence %d, next acknowledgement sequence %d", packet.Sequence, next,
			)
		}
	}

	proofs, err := loadProofContext(ctx, conn.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	ackPath := host.AckPath{
		PortID:    packet.DestinationPort,
		ChannelID: packet.DestinationChannel,
		Sequence:  packet.Sequence.Uint64(),
	}
	if err := proofs.verifyMembership(conn.Counterparty.Prefix, msg.ProofAcked, ackPath, channel.ComputeAckCommitment(msg.Acknowledgement)); err != nil {
		return errorsmod.Wrapf(channel.ErrPacketVerificationFailed, "%s: %v", ackPath, err)
	}
	return verifyDelayPassed(ctx, conn.ClientID, msg.ProofHeight, conn.DelayPeriod)
}

// AcknowledgePacketExecute hands the acknowledgement to the module bound to
// the source port and deletes the packet commitment.
func AcknowledgePacketExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgAcknowledgement) error {
	packet := msg.Packet
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
	if err != nil {
		return err
	}
	pending, err := verifyPacketCommitment(ctx, packet)
	if err != nil {
		return err
	}
	if !pending {
		return ctx.LogMessage("success: packet already acknowledged, no-op")
	}

	module, err := router.Route(packet.SourcePort)
	if err != nil {
		return err
	}
	if err := module.OnAcknowledgementPacket(packet, msg.Acknowledgement, msg.Signer); err != nil {
		return err
	}

	if err := ctx.DeletePacketCommitment(host.CommitmentPath{
		PortID:    packet.SourcePort,
		ChannelID: packet.SourceChannel,
		Sequence:  packet.Sequence.Uint64(),
	}); err != nil {
		return err
	}
	if end.Ordering == channel.OrderOrdered {
		seqPath := host.SeqAckPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel}
		if err := ctx.StoreNextSequenceAck(seqPath, packet.Sequence.Increment()); err != nil {
			return err
		}
	}

	if err := ctx.LogMessage("success: packet acknowledgement"); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(events.MessageChannel); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(channel.AcknowledgePacketEvent{
		Packet:       packet,
		Ordering:     end.Ordering,
		ConnectionID: end.ConnectionID(),
	})
}

// verifyPacketCommitment reports whether the commitment of packet is still
// stored, failing if the stored commitment does not match packet.
func verifyPacketCommitment(ctx core.ValidationContext, packet channel.Packet) (bool, error) {
	stored, err := ctx.PacketCommitment(host.CommitmentPath{
		PortID:    packet.SourcePort,
		ChannelID: packet.SourceChannel,
		Sequence:  packet.Sequence.Uint64(),
	})
	switch {
	case errorsmod.IsOf(err, channel.ErrPacketCommitmentNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	expected := channel.ComputePacketCommitment(packet.Data, packet.TimeoutHeight, packet.TimeoutTimestamp)
	if !bytes.Equal(stored, expected) {
		return false, errorsmod.Wrapf(channel.ErrPacketCommitmentMismatch, "packet %s", packet)
	}
	return true, nil
}

// TimeoutPacketValidate verifies that the destination chain passed the
// packet timeout without receiving it.
func TimeoutPacketValidate(ctx core.ValidationContext, msg channel.MsgTimeout) error {
	packet := msg.Packet
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
	if err != nil {
		return err
	}
	if err := end.VerifyStateMatches(channel.StateOpen); err != nil {
		return err
	}
	if err := end.VerifyCounterpartyMatches(channel.NewCounterparty(packet.DestinationPort, packet.DestinationChannel)); err != nil {
		return err
	}
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return err
	}
	conn, err := ctx.ConnectionEnd(end.ConnectionID())
	if err != nil {
		return err
	}

	pending, err := verifyPacketCommitment(ctx, packet)
	if err != nil || !pending {
		return err
	}

	proofs, err := loadProofContext(ctx, conn.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	if !packet.TimedOut(proofs.consensus.Timestamp(), msg.ProofHeight) {
		return errorsmod.Wrapf(
			channel.ErrPacketTimeoutNotReached,
			"packet %s, counterparty height %s, counterparty time %s", packet, msg.ProofHeight, proofs.consensus.Timestamp(),
		)
	}
	if err := verifyDelayPassed(ctx, conn.ClientID, msg.ProofHeight, conn.DelayPeriod); err != nil {
		return err
	}
	return verifyPacketUnreceived(proofs, conn, end, packet, msg.NextSequenceRecv, msg.ProofUnreceived)
}

// verifyPacketUnreceived proves that the counterparty did not receive
// packet: for an ordered channel through its next receive sequence, for an
// unordered one through the absence of a receipt.
func verifyPacketUnreceived(
	proofs proofContext,
	conn connection.ConnectionEnd,
	end channel.ChannelEnd,
	packet channel.Packet,
	nextSequenceRecv channel.Sequence,
	proof commitment.ProofBytes,
) error {
	if end.Ordering == channel.OrderOrdered {
		if packet.Sequence < nextSequenceRecv {
			return channel.InvalidPacketSequenceError{Given: packet.Sequence, Next: nextSequenceRecv}
		}
		seqPath := host.SeqRecvPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel}
		if err := proofs.verifyMembership(conn.Counterparty.Prefix, proof, seqPath, nextSequenceRecv.Bytes()); err != nil {
			return errorsmod.Wrapf(channel.ErrPacketVerificationFailed, "%s: %v", seqPath, err)
		}
		return nil
	}

	receiptPath := host.ReceiptPath{
		PortID:    packet.DestinationPort,
		ChannelID: packet.DestinationChannel,
		Sequence:  packet.Sequence.Uint64(),
	}
	if err := proofs.verifyNonMembership(conn.Counterparty.Prefix, proof, receiptPath); err != nil {
		return errorsmod.Wrapf(channel.ErrPacketVerificationFailed, "%s: %v", receiptPath, err)
	}
	return nil
}

// TimeoutPacketExecute hands the timeout to the module bound to the source
// port and deletes the packet commitment. A timeout closes an ordered
// channel.
func TimeoutPacketExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgTimeout) error {
	return timeoutExecute(ctx, router, msg.Packet, msg.Signer, false)
}

// TimeoutOnCloseValidate verifies that the counterparty closed its channel
// end without receiving packet.
func TimeoutOnCloseValidate(ctx core.ValidationContext, msg channel.MsgTimeoutOnClose) error {
	packet := msg.Packet
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
	if err != nil {
		return err
	}
	if err := end.VerifyCounterpartyMatches(channel.NewCounterparty(packet.DestinationPort, packet.DestinationChannel)); err != nil {
		return err
	}
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return err
	}
	conn, err := ctx.ConnectionEnd(end.ConnectionID())
	if err != nil {
		return err
	}

	pending, err := verifyPacketCommitment(ctx, packet)
	if err != nil || !pending {
		return err
	}

	proofs, err := loadProofContext(ctx, conn.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	expected := channel.NewChannelEnd(
		channel.StateClosed,
		end.Ordering,
		channel.NewCounterparty(packet.SourcePort, packet.SourceChannel),
		[]host.ConnectionID{conn.Counterparty.ConnectionID},
		end.Version,
	)
	value, err := expected.Marshal()
	if err != nil {
		return err
	}
	closedPath := host.ChannelEndPath{PortID: packet.DestinationPort, ChannelID: packet.DestinationChannel}
	if err := proofs.verifyMembership(conn.Counterparty.Prefix, msg.ProofClose, closedPath, value); err != nil {
		return errorsmod.Wrapf(channel.ErrChannelVerificationFailed, "%s: %v", closedPath, err)
	}
	if err := verifyDelayPassed(ctx, conn.ClientID, msg.ProofHeight, conn.DelayPeriod); err != nil {
		return err
	}
	return verifyPacketUnreceived(proofs, conn, end, packet, msg.NextSequenceRecv, msg.ProofUnreceived)
}

// TimeoutOnCloseExecute behaves as TimeoutPacketExecute.
func TimeoutOnCloseExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgTimeoutOnClose) error {
	return timeoutExecute(ctx, router, msg.Packet, msg.Signer, true)
}

func timeoutExecute(ctx core.ExecutionContext, router core.Router, packet channel.Packet, relayer host.Signer, onClose bool) error {
	path := host.ChannelEndPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel}
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return err
	}
	pending, err := verifyPacketCommitment(ctx, packet)
	if err != nil {
		return err
	}
	if !pending {
		return ctx.LogMessage("success: packet already timed out or acknowledged, no-op")
	}

	module, err := router.Route(packet.SourcePort)
	if err != nil {
		return err
	}
	if err := module.OnTimeoutPacket(packet, relayer); err != nil {
		return err
	}

	if err := ctx.DeletePacketCommitment(host.CommitmentPath{
		PortID:    packet.SourcePort,
		ChannelID: packet.SourceChannel,
		Sequence:  packet.Sequence.Uint64(),
	}); err != nil {
		return err
	}

	if err := ctx.LogMessage("success: packet timeout"); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(events.MessageChannel); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(channel.TimeoutPacketEvent{Packet: packet, Ordering: end.Ordering, OnClose: onClose}); err != nil {
		return err
	}

	if end.Ordering != channel.OrderOrdered || end.State == channel.StateClosed {
		return nil
	}
	end.State = channel.StateClosed
	if err := ctx.StoreChannel(path, end); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(channel.HandshakeEvent{
		Kind:                  channel.EventTypeChannelClosed,
		PortID:                packet.SourcePort,
		ChannelID:             packet.SourceChannel,
		CounterpartyPortID:    end.Counterparty.PortID,
		CounterpartyChannelID: end.Counterparty.ChannelID,
		ConnectionID:          end.ConnectionID(),
		Version:               end.Version,
	})
}

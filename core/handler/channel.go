package handler

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// ChanOpenInitValidate checks the single connection hop of the new channel
// and that its ordering is allowed by the connection version.
func ChanOpenInitValidate(ctx core.ValidationContext, router core.Router, msg channel.MsgChannelOpenInit) error {
	end := msg.ChannelEnd()
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return err
	}
	conn, err := ctx.ConnectionEnd(end.ConnectionID())
	if err != nil {
		return err
	}
	if err := verifyOrderingSupported(conn, end.Ordering); err != nil {
		return err
	}
	_, err = router.Route(msg.PortID)
	return err
}

// ChanOpenInitExecute stores a new channel end in INIT with the version
// chosen by the module bound to the port.
func ChanOpenInitExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgChannelOpenInit) error {
	module, err := router.Route(msg.PortID)
	if err != nil {
		return err
	}
	channelID, err := nextChannelID(ctx)
	if err != nil {
		return err
	}
	end := msg.ChannelEnd()
	version, err := module.OnChanOpenInit(end.Ordering, end.ConnectionHops, msg.PortID, channelID, end.Counterparty, msg.VersionProposal)
	if err != nil {
		return err
	}
	end.Version = version

	if err := storeNewChannel(ctx, msg.PortID, channelID, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: chan_open_init: generated channel id " + channelID.String()); err != nil {
		return err
	}
	return emitChannelEvent(ctx, channel.EventTypeChannelOpenInit, msg.PortID, channelID, end)
}

// ChanOpenTryValidate verifies that the counterparty stored an INIT end
// naming this port.
func ChanOpenTryValidate(ctx core.ValidationContext, router core.Router, msg channel.MsgChannelOpenTry) error {
	end := channel.NewChannelEnd(channel.StateTryOpen, msg.Ordering, msg.Counterparty, msg.ConnectionHops, msg.VersionProposal)
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return err
	}
	conn, err := openConnection(ctx, end.ConnectionID())
	if err != nil {
		return err
	}
	if err := verifyOrderingSupported(conn, end.Ordering); err != nil {
		return err
	}
	if _, err := router.Route(msg.PortID); err != nil {
		return err
	}

	expected := channel.NewChannelEnd(
		channel.StateInit,
		msg.Ordering,
		channel.NewCounterparty(msg.PortID, host.ChannelID{}),
		[]host.ConnectionID{conn.Counterparty.ConnectionID},
		msg.CounterpartyVersion,
	)
	path := host.ChannelEndPath{PortID: msg.Counterparty.PortID, ChannelID: msg.Counterparty.ChannelID}
	return verifyChannelState(ctx, conn, msg.ProofHeight, msg.ProofInit, path, expected)
}

// ChanOpenTryExecute stores a new channel end in TRYOPEN.
func ChanOpenTryExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgChannelOpenTry) error {
	module, err := router.Route(msg.PortID)
	if err != nil {
		return err
	}
	channelID, err := nextChannelID(ctx)
	if err != nil {
		return err
	}
	version, err := module.OnChanOpenTry(msg.Ordering, msg.ConnectionHops, msg.PortID, channelID, msg.Counterparty, msg.CounterpartyVersion)
	if err != nil {
		return err
	}
	end := channel.NewChannelEnd(channel.StateTryOpen, msg.Ordering, msg.Counterparty, msg.ConnectionHops, version)

	if err := storeNewChannel(ctx, msg.PortID, channelID, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: chan_open_try: generated channel id " + channelID.String()); err != nil {
		return err
	}
	return emitChannelEvent(ctx, channel.EventTypeChannelOpenTry, msg.PortID, channelID, end)
}

// ChanOpenAckValidate verifies that the counterparty stored a TRYOPEN end
// matching the local INIT end.
func ChanOpenAckValidate(ctx core.ValidationContext, router core.Router, msg channel.MsgChannelOpenAck) error {
	if _, err := router.Route(msg.PortID); err != nil {
		return err
	}
	path := host.ChannelEndPath{PortID: msg.PortID, ChannelID: msg.ChannelID}
	end, conn, err := channelAndConnection(ctx, path, channel.StateInit)
	if err != nil {
		return err
	}

	expected := channel.NewChannelEnd(
		channel.StateTryOpen,
		end.Ordering,
		channel.NewCounterparty(msg.PortID, msg.ChannelID),
		[]host.ConnectionID{conn.Counterparty.ConnectionID},
		msg.CounterpartyVersion,
	)
	counterpartyPath := host.ChannelEndPath{PortID: end.Counterparty.PortID, ChannelID: msg.CounterpartyChannelID}
	return verifyChannelState(ctx, conn, msg.ProofHeight, msg.ProofTry, counterpartyPath, expected)
}

// ChanOpenAckExecute opens the local end with the counterparty version.
func ChanOpenAckExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgChannelOpenAck) error {
	path := host.ChannelEndPath{PortID: msg.PortID, ChannelID: msg.ChannelID}
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return err
	}
	module, err := router.Route(msg.PortID)
	if err != nil {
		return err
	}
	if err := module.OnChanOpenAck(msg.PortID, msg.ChannelID, msg.CounterpartyVersion); err != nil {
		return err
	}

	end.State = channel.StateOpen
	end.Version = msg.CounterpartyVersion
	end.Counterparty.ChannelID = msg.CounterpartyChannelID
	if err := ctx.StoreChannel(path, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: chan_open_ack verification passed"); err != nil {
		return err
	}
	return emitChannelEvent(ctx, channel.EventTypeChannelOpenAck, msg.PortID, msg.ChannelID, end)
}

// ChanOpenConfirmValidate verifies that the counterparty opened its end.
func ChanOpenConfirmValidate(ctx core.ValidationContext, router core.Router, msg channel.MsgChannelOpenConfirm) error {
	if _, err := router.Route(msg.PortID); err != nil {
		return err
	}
	path := host.ChannelEndPath{PortID: msg.PortID, ChannelID: msg.ChannelID}
	end, conn, err := channelAndConnection(ctx, path, channel.StateTryOpen)
	if err != nil {
		return err
	}

	expected := channel.NewChannelEnd(
		channel.StateOpen,
		end.Ordering,
		channel.NewCounterparty(msg.PortID, msg.ChannelID),
		[]host.ConnectionID{conn.Counterparty.ConnectionID},
		end.Version,
	)
	counterpartyPath := host.ChannelEndPath{PortID: end.Counterparty.PortID, ChannelID: end.Counterparty.ChannelID}
	return verifyChannelState(ctx, conn, msg.ProofHeight, msg.ProofAck, counterpartyPath, expected)
}

// ChanOpenConfirmExecute opens the local end.
func ChanOpenConfirmExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgChannelOpenConfirm) error {
	path := host.ChannelEndPath{PortID: msg.PortID, ChannelID: msg.ChannelID}
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return err
	}
	module, err := router.Route(msg.PortID)
	if err != nil {
		return err
	}
	if err := module.OnChanOpenConfirm(msg.PortID, msg.ChannelID); err != nil {
		return err
	}

	end.State = channel.StateOpen
	if err := ctx.StoreChannel(path, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: chan_open_confirm verification passed"); err != nil {
		return err
	}
	return emitChannelEvent(ctx, channel.EventTypeChannelOpenConfirm, msg.PortID, msg.ChannelID, end)
}

// ChanCloseInitValidate checks that the channel is not already closed and
// that its connection is open.
func ChanCloseInitValidate(ctx core.ValidationContext, router core.Router, msg channel.MsgChannelCloseInit) error {
	if _, err := router.Route(msg.PortID); err != nil {
		return err
	}
	end, err := ctx.ChannelEnd(host.ChannelEndPath{PortID: msg.PortID, ChannelID: msg.ChannelID})
	if err != nil {
		return err
	}
	if err := end.VerifyNotClosed(); err != nil {
		return err
	}
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return err
	}
	_, err = openConnection(ctx, end.ConnectionID())
	return err
}

// ChanCloseInitExecute closes the local end.
func ChanCloseInitExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgChannelCloseInit) error {
	module, err := router.Route(msg.PortID)
	if err != nil {
		return err
	}
	if err := module.OnChanCloseInit(msg.PortID, msg.ChannelID); err != nil {
		return err
	}
	return closeChannel(ctx, msg.PortID, msg.ChannelID, channel.EventTypeChannelCloseInit)
}

// ChanCloseConfirmValidate verifies that the counterparty closed its end.
func ChanCloseConfirmValidate(ctx core.ValidationContext, router core.Router, msg channel.MsgChannelCloseConfirm) error {
	if _, err := router.Route(msg.PortID); err != nil {
		return err
	}
	path := host.ChannelEndPath{PortID: msg.PortID, ChannelID: msg.ChannelID}
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return err
	}
	if err := end.VerifyNotClosed(); err != nil {
		return err
	}
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return err
	}
	conn, err := openConnection(ctx, end.ConnectionID())
	if err != nil {
		return err
	}

	expected := channel.NewChannelEnd(
		channel.StateClosed,
		end.Ordering,
		channel.NewCounterparty(msg.PortID, msg.ChannelID),
		[]host.ConnectionID{conn.Counterparty.ConnectionID},
		end.Version,
	)
	counterpartyPath := host.ChannelEndPath{PortID: end.Counterparty.PortID, ChannelID: end.Counterparty.ChannelID}
	return verifyChannelState(ctx, conn, msg.ProofHeight, msg.ProofInit, counterpartyPath, expected)
}

// ChanCloseConfirmExecute closes the local end.
func ChanCloseConfirmExecute(ctx core.ExecutionContext, router core.Router, msg channel.MsgChannelCloseConfirm) error {
	module, err := router.Route(msg.PortID)
	if err != nil {
		return err
	}
	if err := module.OnChanCloseConfirm(msg.PortID, msg.ChannelID); err != nil {
		return err
	}
	return closeChannel(ctx, msg.PortID, msg.ChannelID, channel.EventTypeChannelCloseConfirm)
}

func closeChannel(ctx core.ExecutionContext, portID host.PortID, channelID host.ChannelID, kind string) error {
	path := host.ChannelEndPath{PortID: portID, ChannelID: channelID}
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return err
	}
	end.State = channel.StateClosed
	if err := ctx.StoreChannel(path, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: " + kind); err != nil {
		return err
	}
	return emitChannelEvent(ctx, kind, portID, channelID, end)
}

// channelAndConnection loads a channel end in state expected together with
// its open connection.
func channelAndConnection(
	ctx core.ValidationContext,
	path host.ChannelEndPath,
	expected channel.State,
) (channel.ChannelEnd, connection.ConnectionEnd, error) {
	end, err := ctx.ChannelEnd(path)
	if err != nil {
		return channel.ChannelEnd{}, connection.ConnectionEnd{}, err
	}
	if err := end.VerifyStateMatches(expected); err != nil {
		return channel.ChannelEnd{}, connection.ConnectionEnd{}, err
	}
	if err := end.VerifyConnectionHopsLength(); err != nil {
		return channel.ChannelEnd{}, connection.ConnectionEnd{}, err
	}
	conn, err := openConnection(ctx, end.ConnectionID())
	if err != nil {
		return channel.ChannelEnd{}, connection.ConnectionEnd{}, err
	}
	return end, conn, nil
}

func openConnection(ctx core.ValidationContext, connectionID host.ConnectionID) (connection.ConnectionEnd, error) {
	conn, err := ctx.ConnectionEnd(connectionID)
	if err != nil {
		return connection.ConnectionEnd{}, err
	}
	if !conn.IsOpen() {
		return connection.ConnectionEnd{}, errorsmod.Wrapf(channel.ErrConnectionNotOpen, "connection %s is %s", connectionID, conn.State)
	}
	return conn, nil
}

// verifyOrderingSupported requires a single negotiated connection version
// that allows ordering.
func verifyOrderingSupported(conn connection.ConnectionEnd, ordering channel.Order) error {
	if len(conn.Versions) != 1 {
		return errorsmod.Wrapf(connection.ErrInvalidVersion, "single version must be negotiated on connection before opening channel, got %d", len(conn.Versions))
	}
	if !conn.Versions[0].HasFeature(ordering.String()) {
		return errorsmod.Wrapf(channel.ErrChannelFeatureNotSupported, "%s", ordering)
	}
	return nil
}

func verifyChannelState(
	ctx core.ValidationContext,
	conn connection.ConnectionEnd,
	proofHeight client.Height,
	proof commitment.ProofBytes,
	path host.ChannelEndPath,
	expected channel.ChannelEnd,
) error {
	proofs, err := loadProofContext(ctx, conn.ClientID, proofHeight)
	if err != nil {
		return err
	}
	value, err := expected.Marshal()
	if err != nil {
		return err
	}
	if err := proofs.verifyMembership(conn.Counterparty.Prefix, proof, path, value); err != nil {
		return errorsmod.Wrapf(channel.ErrChannelVerificationFailed, "%s: %v", path, err)
	}
	return nil
}

func nextChannelID(ctx core.ValidationContext) (host.ChannelID, error) {
	counter, err := ctx.ChannelCounter()
	if err != nil {
		return host.ChannelID{}, err
	}
	return host.NewChannelID(counter), nil
}

// storeNewChannel stores end and initialises its sequences to 1.
func storeNewChannel(ctx core.ExecutionContext, portID host.PortID, channelID host.ChannelID, end channel.ChannelEnd) error {
	if err := ctx.StoreChannel(host.ChannelEndPath{PortID: portID, ChannelID: channelID}, end); err != nil {
		return err
	}
	if err := ctx.IncreaseChannelCounter(); err != nil {
		return err
	}
	if err := ctx.StoreNextSequenceSend(host.SeqSendPath{PortID: portID, ChannelID: channelID}, 1); err != nil {
		return err
	}
	if err := ctx.StoreNextSequenceRecv(host.SeqRecvPath{PortID: portID, ChannelID: channelID}, 1); err != nil {
		return err
	}
	return ctx.StoreNextSequenceAck(host.SeqAckPath{PortID: portID, ChannelID: channelID}, 1)
}

func emitChannelEvent(ctx core.ExecutionContext, kind string, portID host.PortID, channelID host.ChannelID, end channel.ChannelEnd) error {
	if err := ctx.EmitIBCEvent(events.MessageChannel); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(channel.HandshakeEvent{
		Kind:                  kind,
		PortID:                portID,
		ChannelID:             channelID,
		CounterpartyPortID:    end.Counterparty.PortID,
		CounterpartyChannelID: end.Counterparty.ChannelID,
		ConnectionID:          end.ConnectionID(),
		Version:               end.Version,
	})
}

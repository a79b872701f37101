package handler

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// ConnOpenInitValidate checks that the client exists and is active and that
// a proposed version is supported.
func ConnOpenInitValidate(ctx core.ValidationContext, msg connection.MsgConnectionOpenInit) error {
	cs, err := ctx.ClientState(msg.ClientID)
	if err != nil {
		return err
	}
	if err := client.VerifyActive(ctx, cs, msg.ClientID); err != nil {
		return err
	}
	if msg.Version != nil && !connection.IsSupportedVersion(ctx.CompatibleVersions(), *msg.Version) {
		return errorsmod.Wrapf(connection.ErrInvalidVersion, "version %v is not supported", *msg.Version)
	}
	return nil
}

// ConnOpenInitExecute stores a new connection end in INIT.
func ConnOpenInitExecute(ctx core.ExecutionContext, msg connection.MsgConnectionOpenInit) error {
	versions := ctx.CompatibleVersions()
	if msg.Version != nil {
		versions = []connection.Version{*msg.Version}
	}
	end, err := connection.NewConnectionEnd(connection.StateInit, msg.ClientID, msg.Counterparty, versions, msg.DelayPeriod)
	if err != nil {
		return err
	}

	connectionID, err := storeNewConnection(ctx, end)
	if err != nil {
		return err
	}
	if err := ctx.LogMessage("success: conn_open_init: generated connection id " + connectionID.String()); err != nil {
		return err
	}
	return emitConnectionEvent(ctx, connection.EventTypeConnectionOpenInit, connectionID, end)
}

// ConnOpenTryValidate verifies that the counterparty stored an INIT end
// naming this host, and that it tracks this host correctly.
func ConnOpenTryValidate(ctx core.ValidationContext, msg connection.MsgConnectionOpenTry) error {
	selfClient, err := ctx.Codec().DecodeClientState(msg.ClientState)
	if err != nil {
		return err
	}
	if err := ctx.ValidateSelfClient(selfClient); err != nil {
		return err
	}
	selfConsensus, err := verifySelfConsensusHeight(ctx, msg.ConsensusHeight)
	if err != nil {
		return err
	}
	if _, err := connection.PickVersion(ctx.CompatibleVersions(), msg.CounterpartyVersions); err != nil {
		return err
	}

	proofs, err := loadProofContext(ctx, msg.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	expected, err := connection.NewConnectionEnd(
		connection.StateInit,
		msg.Counterparty.ClientID,
		connection.NewCounterparty(msg.ClientID, host.ConnectionID{}, ctx.CommitmentPrefix()),
		msg.CounterpartyVersions,
		msg.DelayPeriod,
	)
	if err != nil {
		return err
	}
	prefix := msg.Counterparty.Prefix
	if err := proofs.verifyConnectionState(prefix, msg.ProofInit, msg.Counterparty.ConnectionID, expected); err != nil {
		return err
	}
	if err := proofs.verifyClientState(prefix, msg.ProofClient, msg.Counterparty.ClientID, selfClient); err != nil {
		return err
	}
	return proofs.verifyConsensusState(prefix, msg.ProofConsensus, msg.Counterparty.ClientID, msg.ConsensusHeight, selfConsensus)
}

// ConnOpenTryExecute stores a new connection end in TRYOPEN with the
// negotiated version.
func ConnOpenTryExecute(ctx core.ExecutionContext, msg connection.MsgConnectionOpenTry) error {
	version, err := connection.PickVersion(ctx.CompatibleVersions(), msg.CounterpartyVersions)
	if err != nil {
		return err
	}
	end, err := connection.NewConnectionEnd(
		connection.StateTryOpen,
		msg.ClientID,
		msg.Counterparty,
		[]connection.Version{version},
		msg.DelayPeriod,
	)
	if err != nil {
		return err
	}

	connectionID, err := storeNewConnection(ctx, end)
	if err != nil {
		return err
	}
	if err := ctx.LogMessage("success: conn_open_try: generated connection id " + connectionID.String()); err != nil {
		return err
	}
	return emitConnectionEvent(ctx, connection.EventTypeConnectionOpenTry, connectionID, end)
}

// ConnOpenAckValidate verifies that the counterparty stored a TRYOPEN end
// matching the local INIT end.
func ConnOpenAckValidate(ctx core.ValidationContext, msg connection.MsgConnectionOpenAck) error {
	end, err := ctx.ConnectionEnd(msg.ConnectionID)
	if err != nil {
		return err
	}
	if err := end.VerifyStateMatches(connection.StateInit); err != nil {
		return err
	}
	if !connection.IsSupportedVersion(end.Versions, msg.Version) {
		return errorsmod.Wrapf(connection.ErrInvalidVersion, "version %v was not proposed", msg.Version)
	}

	selfClient, err := ctx.Codec().DecodeClientState(msg.ClientState)
	if err != nil {
		return err
	}
	if err := ctx.ValidateSelfClient(selfClient); err != nil {
		return err
	}
	selfConsensus, err := verifySelfConsensusHeight(ctx, msg.ConsensusHeight)
	if err != nil {
		return err
	}

	proofs, err := loadProofContext(ctx, end.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	expected, err := connection.NewConnectionEnd(
		connection.StateTryOpen,
		end.Counterparty.ClientID,
		connection.NewCounterparty(end.ClientID, msg.ConnectionID, ctx.CommitmentPrefix()),
		[]connection.Version{msg.Version},
		end.DelayPeriod,
	)
	if err != nil {
		return err
	}
	prefix := end.Counterparty.Prefix
	if err := proofs.verifyConnectionState(prefix, msg.ProofTry, msg.CounterpartyConnectionID, expected); err != nil {
		return err
	}
	if err := proofs.verifyClientState(prefix, msg.ProofClient, end.Counterparty.ClientID, selfClient); err != nil {
		return err
	}
	return proofs.verifyConsensusState(prefix, msg.ProofConsensus, end.Counterparty.ClientID, msg.ConsensusHeight, selfConsensus)
}

// ConnOpenAckExecute opens the local end.
func ConnOpenAckExecute(ctx core.ExecutionContext, msg connection.MsgConnectionOpenAck) error {
	end, err := ctx.ConnectionEnd(msg.ConnectionID)
	if err != nil {
		return err
	}
	end.State = connection.StateOpen
	end.Versions = []connection.Version{msg.Version}
	end.Counterparty.ConnectionID = msg.CounterpartyConnectionID

	if err := ctx.StoreConnection(host.ConnectionPath{ConnectionID: msg.ConnectionID}, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: conn_open_ack verification passed"); err != nil {
		return err
	}
	return emitConnectionEvent(ctx, connection.EventTypeConnectionOpenAck, msg.ConnectionID, end)
}

// ConnOpenConfirmValidate verifies that the counterparty opened its end.
func ConnOpenConfirmValidate(ctx core.ValidationContext, msg connection.MsgConnectionOpenConfirm) error {
	end, err := ctx.ConnectionEnd(msg.ConnectionID)
	if err != nil {
		return err
	}
	if err := end.VerifyStateMatches(connection.StateTryOpen); err != nil {
		return err
	}

	proofs, err := loadProofContext(ctx, end.ClientID, msg.ProofHeight)
	if err != nil {
		return err
	}
	expected, err := connection.NewConnectionEnd(
		connection.StateOpen,
		end.Counterparty.ClientID,
		connection.NewCounterparty(end.ClientID, msg.ConnectionID, ctx.CommitmentPrefix()),
		end.Versions,
		end.DelayPeriod,
	)
	if err != nil {
		return err
	}
	return proofs.verifyConnectionState(end.Counterparty.Prefix, msg.ProofAck, end.Counterparty.ConnectionID, expected)
}

// ConnOpenConfirmExecute opens the local end.
func ConnOpenConfirmExecute(ctx core.ExecutionContext, msg connection.MsgConnectionOpenConfirm) error {
	end, err := ctx.ConnectionEnd(msg.ConnectionID)
	if err != nil {
		return err
	}
	end.State = connection.StateOpen

	if err := ctx.StoreConnection(host.ConnectionPath{ConnectionID: msg.ConnectionID}, end); err != nil {
		return err
	}
	if err := ctx.LogMessage("success: conn_open_confirm verification passed"); err != nil {
		return err
	}
	return emitConnectionEvent(ctx, connection.EventTypeConnectionOpenConfirm, msg.ConnectionID, end)
}

func storeNewConnection(ctx core.ExecutionContext, end connection.ConnectionEnd) (host.ConnectionID, error) {
	counter, err := ctx.ConnectionCounter()
	if err != nil {
		return host.ConnectionID{}, err
	}
	connectionID := host.NewConnectionID(counter)

	if err := ctx.StoreConnection(host.ConnectionPath{ConnectionID: connectionID}, end); err != nil {
		return host.ConnectionID{}, err
	}
	if err := ctx.StoreConnectionToClient(host.ClientConnectionPath{ClientID: end.ClientID}, connectionID); err != nil {
		return host.ConnectionID{}, err
	}
	if err := ctx.IncreaseConnectionCounter(); err != nil {
		return host.ConnectionID{}, err
	}
	return connectionID, nil
}

func emitConnectionEvent(ctx core.ExecutionContext, kind string, connectionID host.ConnectionID, end connection.ConnectionEnd) error {
	if err := ctx.EmitIBCEvent(events.MessageConnection); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(connection.OpenEvent{
		Kind:                     kind,
		ConnectionID:             connectionID,
		ClientID:                 end.ClientID,
		CounterpartyConnectionID: end.Counterparty.ConnectionID,
		CounterpartyClientID:     end.Counterparty.ClientID,
	})
}

package handler

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/host"
)

// proofContext is the counterparty state a proof at some height is checked
// against: the active client tracking the counterparty and the commitment
// root it accepted at the proof height.
type proofContext struct {
	clientID    host.ClientID
	clientState client.ClientState
	root        commitment.Root
	consensus   client.ConsensusState
}

// loadProofContext fails unless the client is Active, has seen proofHeight
// and stores a consensus state at it.
func loadProofContext(ctx core.ValidationContext, clientID host.ClientID, proofHeight client.Height) (proofContext, error) {
	cs, err := ctx.ClientState(clientID)
	if err != nil {
		return proofContext{}, err
	}
	if err := client.VerifyActive(ctx, cs, clientID); err != nil {
		return proofContext{}, err
	}
	if err := client.VerifyProofHeight(cs, proofHeight); err != nil {
		return proofContext{}, err
	}
	consensus, err := ctx.ConsensusState(client.ConsensusStatePath(clientID, proofHeight))
	if err != nil {
		return proofContext{}, err
	}
	return proofContext{
		clientID:    clientID,
		clientState: cs,
		root:        consensus.Root(),
		consensus:   consensus,
	}, nil
}

func (p proofContext) verifyMembership(prefix commitment.Prefix, proof commitment.ProofBytes, path host.Path, value []byte) error {
	return p.clientState.VerifyMembership(prefix, proof, p.root, path, value)
}

func (p proofContext) verifyNonMembership(prefix commitment.Prefix, proof commitment.ProofBytes, path host.Path) error {
	return p.clientState.VerifyNonMembership(prefix, proof, p.root, path)
}

// verifyConnectionState proves that the counterparty stores expected at
// connectionID.
func (p proofContext) verifyConnectionState(
	prefix commitment.Prefix,
	proof commitment.ProofBytes,
	connectionID host.ConnectionID,
	expected connection.ConnectionEnd,
) error {
	value, err := expected.Marshal()
	if err != nil {
		return err
	}
	path := host.ConnectionPath{ConnectionID: connectionID}
	if err := p.verifyMembership(prefix, proof, path, value); err != nil {
		return errorsmod.Wrapf(connection.ErrConnectionVerificationFail, "%s: %v", path, err)
	}
	return nil
}

// verifyClientState proves that the counterparty stores clientState for its
// client of this host.
func (p proofContext) verifyClientState(
	prefix commitment.Prefix,
	proof commitment.ProofBytes,
	counterpartyClientID host.ClientID,
	clientState client.ClientState,
) error {
	value, err := marshalAny(clientState)
	if err != nil {
		return err
	}
	path := host.ClientStatePath{ClientID: counterpartyClientID}
	if err := p.verifyMembership(prefix, proof, path, value); err != nil {
		return errorsmod.Wrapf(client.ErrFailedMembershipVerification, "%s: %v", path, err)
	}
	return nil
}

// verifyConsensusState proves that the counterparty stores the consensus
// state of this host at height.
func (p proofContext) verifyConsensusState(
	prefix commitment.Prefix,
	proof commitment.ProofBytes,
	counterpartyClientID host.ClientID,
	height client.Height,
	consensusState client.ConsensusState,
) error {
	value, err := marshalAny(consensusState)
	if err != nil {
		return err
	}
	path := client.ConsensusStatePath(counterpartyClientID, height)
	if err := p.verifyMembership(prefix, proof, path, value); err != nil {
		return errorsmod.Wrapf(client.ErrFailedMembershipVerification, "%s: %v", path, err)
	}
	return nil
}

func marshalAny(state interface {
	ToAny() (*gogotypes.Any, error)
}) ([]byte, error) {
	raw, err := state.ToAny()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(raw)
}

// verifySelfConsensusHeight fails unless height is strictly below the host
// height, and returns the host consensus state at height.
func verifySelfConsensusHeight(ctx core.ValidationContext, height client.Height) (client.ConsensusState, error) {
	hostHeight, err := ctx.HostHeight()
	if err != nil {
		return nil, err
	}
	if height.GTE(hostHeight) {
		return nil, errorsmod.Wrapf(
			connection.ErrInvalidConsensusHeight,
			"consensus height %s must be lower than host height %s", height, hostHeight,
		)
	}
	return ctx.HostConsensusState(height)
}

// verifyDelayPassed fails unless both the time and block delay of a
// connection elapsed on the host since the client stored the consensus
// state at proofHeight.
func verifyDelayPassed(ctx core.ValidationContext, clientID host.ClientID, proofHeight client.Height, delay time.Duration) error {
	currentTime, err := ctx.HostTimestamp()
	if err != nil {
		return err
	}
	currentHeight, err := ctx.HostHeight()
	if err != nil {
		return err
	}
	processedTime, processedHeight, err := ctx.ClientUpdateMeta(clientID, proofHeight)
	if err != nil {
		return err
	}

	earliestTime := processedTime.Add(delay)
	earliestHeight := processedHeight.Add(connection.CalculateBlockDelay(delay, ctx.MaxExpectedTimePerBlock()))
	if earliestTime.After(currentTime) || currentHeight.LT(earliestHeight) {
		return connection.DelayPeriodNotPassedError{
			CurrentTime:    currentTime.Nanoseconds(),
			EarliestTime:   earliestTime.Nanoseconds(),
			CurrentHeight:  currentHeight,
			EarliestHeight: earliestHeight,
		}
	}
	return nil
}

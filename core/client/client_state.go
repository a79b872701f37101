package client

import (
	errorsmod "cosmossdk.io/errors"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
)

// ClientState is the state of a light client tracking a counterparty chain.
// Every variant verifies counterparty proofs against the commitment roots of
// the consensus states it has accepted.
type ClientState interface {
	ClientType() host.ClientType
	// LatestHeight never decreases over the lifetime of a client.
	LatestHeight() Height
	// Validate performs basic validation of the client state fields.
	Validate() error
	// Status reports whether the client is Active, Frozen or Expired.
	Status(ctx ValidationContext, clientID host.ClientID) (Status, error)

	// VerifyMembership verifies that value is committed at path under the
	// counterparty prefix and root.
	VerifyMembership(prefix commitment.Prefix, proof commitment.ProofBytes, root commitment.Root, path host.Path, value []byte) error
	// VerifyNonMembership verifies that nothing is committed at path.
	VerifyNonMembership(prefix commitment.Prefix, proof commitment.ProofBytes, root commitment.Root, path host.Path) error

	// VerifyClientMessage checks a header (or misbehaviour) against the
	// trusted state. It never mutates state.
	VerifyClientMessage(ctx ValidationContext, clientID host.ClientID, msg ClientMessage) error
	// CheckForMisbehaviour reports whether an already verified message
	// proves misbehaviour.
	CheckForMisbehaviour(ctx ValidationContext, clientID host.ClientID, msg ClientMessage) (bool, error)

	// Initialise stores the client and its first consensus state.
	Initialise(ctx ExecutionContext, clientID host.ClientID, consensusState ConsensusState) error
	// UpdateState applies a verified message and returns the heights of the
	// consensus states it stored.
	UpdateState(ctx ExecutionContext, clientID host.ClientID, msg ClientMessage) ([]Height, error)
	// UpdateStateOnMisbehaviour freezes the client.
	UpdateStateOnMisbehaviour(ctx ExecutionContext, clientID host.ClientID, msg ClientMessage) error

	// ToAny encodes the state for storage and for the wire.
	ToAny() (*gogotypes.Any, error)
}

// ConsensusState is a snapshot of the counterparty chain at some height.
type ConsensusState interface {
	ClientType() host.ClientType
	// Root is the commitment root proofs at this height verify against.
	Root() commitment.Root
	Timestamp() timestamp.Timestamp
	ToAny() (*gogotypes.Any, error)
}

// ClientMessage is a header or misbehaviour submitted to update a client.
type ClientMessage interface {
	ClientType() host.ClientType
	ToAny() (*gogotypes.Any, error)
}

// Codec decodes the client variants a host supports. The set of variants is
// closed: a Codec rejects any type URL it was not built with.
type Codec interface {
	DecodeClientState(raw *gogotypes.Any) (ClientState, error)
	DecodeConsensusState(raw *gogotypes.Any) (ConsensusState, error)
	DecodeClientMessage(raw *gogotypes.Any) (ClientMessage, error)
}

// ConsensusStatePath returns the store path of the consensus state of
// clientID at height.
func ConsensusStatePath(clientID host.ClientID, height Height) host.ClientConsensusStatePath {
	return host.ClientConsensusStatePath{
		ClientID:       clientID,
		RevisionNumber: height.RevisionNumber(),
		RevisionHeight: height.RevisionHeight(),
	}
}

// VerifyProofHeight fails if proofHeight is beyond the latest height the
// client has seen.
func VerifyProofHeight(cs ClientState, proofHeight Height) error {
	if latest := cs.LatestHeight(); latest.LT(proofHeight) {
		return errorsmod.Wrapf(ErrInvalidProofHeight, "latest height %s < proof height %s", latest, proofHeight)
	}
	return nil
}

// VerifyActive fetches the status of the client and fails with
// ClientNotActiveError unless it is Active.
func VerifyActive(ctx ValidationContext, cs ClientState, clientID host.ClientID) error {
	status, err := cs.Status(ctx, clientID)
	if err != nil {
		return err
	}
	if !status.IsActive() {
		return ClientNotActiveError{Status: status}
	}
	return nil
}

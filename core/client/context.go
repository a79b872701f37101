package client

import (
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
)

// ValidationContext is the read-only view of the host needed by light
// clients. Implementations must be safe for concurrent use.
type ValidationContext interface {
	// ClientState returns ErrClientNotFound if no client is stored.
	ClientState(clientID host.ClientID) (ClientState, error)
	// ConsensusState returns ErrConsensusStateNotFound if nothing is stored
	// at path.
	ConsensusState(path host.ClientConsensusStatePath) (ConsensusState, error)
	// ClientUpdateMeta returns the host time and height at which the
	// consensus state of clientID at height was stored.
	ClientUpdateMeta(clientID host.ClientID, height Height) (timestamp.Timestamp, Height, error)

	HostHeight() (Height, error)
	HostTimestamp() (timestamp.Timestamp, error)

	// Codec decodes the client variants supported by the host.
	Codec() Codec
}

// ExecutionContext extends ValidationContext with the writes light clients
// perform.
type ExecutionContext interface {
	ValidationContext

	StoreClientState(path host.ClientStatePath, cs ClientState) error
	StoreConsensusState(path host.ClientConsensusStatePath, cs ConsensusState) error
	StoreUpdateMeta(clientID host.ClientID, height Height, hostTimestamp timestamp.Timestamp, hostHeight Height) error
}

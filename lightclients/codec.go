// Package lightclients holds the closed set of light client variants a host
// can decode.
package lightclients

import (
	errorsmod "cosmossdk.io/errors"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/lightclients/mock"
	"github.com/tendermint/ibc/lightclients/tendermint"
)

// Codec decodes tendermint and mock client states, consensus states and
// headers.
type Codec struct{}

var _ client.Codec = Codec{}

func (Codec) DecodeClientState(raw *gogotypes.Any) (client.ClientState, error) {
	if raw == nil {
		return nil, client.ErrMissingRawClientState
	}
	switch raw.TypeUrl {
	case tendermint.TypeURLClientState:
		cs, err := tendermint.ClientStateFromAny(raw)
		if err != nil {
			return nil, err
		}
		return cs, nil
	case mock.TypeURLClientState:
		cs, err := mock.ClientStateFromAny(raw)
		if err != nil {
			return nil, err
		}
		return cs, nil
	default:
		return nil, errorsmod.Wrapf(client.ErrUnknownClientType, "client state type url %s", raw.TypeUrl)
	}
}

func (Codec) DecodeConsensusState(raw *gogotypes.Any) (client.ConsensusState, error) {
	if raw == nil {
		return nil, client.ErrMissingRawConsensusState
	}
	switch raw.TypeUrl {
	case tendermint.TypeURLConsensusState:
		cs, err := tendermint.ConsensusStateFromAny(raw)
		if err != nil {
			return nil, err
		}
		return cs, nil
	case mock.TypeURLConsensusState:
		cs, err := mock.ConsensusStateFromAny(raw)
		if err != nil {
			return nil, err
		}
		return cs, nil
	default:
		return nil, errorsmod.Wrapf(client.ErrUnknownClientType, "consensus state type url %s", raw.TypeUrl)
	}
}

func (Codec) DecodeClientMessage(raw *gogotypes.Any) (client.ClientMessage, error) {
	if raw == nil {
		return nil, client.ErrMissingRawClientMessage
	}
	switch raw.TypeUrl {
	case tendermint.TypeURLHeader:
		h, err := tendermint.HeaderFromAny(raw)
		if err != nil {
			return nil, err
		}
		return h, nil
	case mock.TypeURLHeader:
		h, err := mock.HeaderFromAny(raw)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, errorsmod.Wrapf(client.ErrUnknownClientType, "client message type url %s", raw.TypeUrl)
	}
}

package tendermint

import (
	"bytes"
	"time"

	errorsmod "cosmossdk.io/errors"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	cmttypes "github.com/cometbft/cometbft/types"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	tmproto "github.com/tendermint/ibc/proto/ibc/lightclients/tendermint"
)

const TypeURLConsensusState = "/ibc.lightclients.tendermint.v1.ConsensusState"

var _ client.ConsensusState = ConsensusState{}

// ConsensusState is the state of the counterparty at a trusted header: the
// block time, the app hash and the validators expected to sign the next block.
type ConsensusState struct {
	Time               time.Time
	AppHash            commitment.Root
	NextValidatorsHash cmtbytes.HexBytes
}

func NewConsensusState(t time.Time, appHash commitment.Root, nextValsHash cmtbytes.HexBytes) ConsensusState {
	return ConsensusState{Time: t.UTC(), AppHash: appHash, NextValidatorsHash: nextValsHash}
}

func (ConsensusState) ClientType() host.ClientType       { return ClientType }
func (cs ConsensusState) Root() commitment.Root          { return cs.AppHash }
func (cs ConsensusState) Timestamp() timestamp.Timestamp { return timestamp.FromTime(cs.Time) }

// Validate checks the fields that every stored consensus state must carry.
func (cs ConsensusState) Validate() error {
	if cs.AppHash.Empty() {
		return errorsmod.Wrap(client.ErrInvalidConsensusState, "root cannot be empty")
	}
	if err := cmttypes.ValidateHash(cs.NextValidatorsHash); err != nil {
		return errorsmod.Wrap(client.ErrInvalidConsensusState, "next validators hash is invalid: "+err.Error())
	}
	if cs.Time.UnixNano() <= 0 {
		return errorsmod.Wrapf(ErrInvalidConsensusStateTS, "timestamp must be a positive Unix time, got %s", cs.Time)
	}
	return nil
}

func (cs ConsensusState) equal(o ConsensusState) bool {
	return cs.Time.Equal(o.Time) &&
		bytes.Equal(cs.AppHash, o.AppHash) &&
		bytes.Equal(cs.NextValidatorsHash, o.NextValidatorsHash)
}

func (cs ConsensusState) ToProto() (*tmproto.ConsensusState, error) {
	ts, err := gogotypes.TimestampProto(cs.Time)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidConsensusStateTS, err.Error())
	}
	return &tmproto.ConsensusState{
		Timestamp:          ts,
		Root:               cs.AppHash,
		NextValidatorsHash: cs.NextValidatorsHash,
	}, nil
}

func ConsensusStateFromProto(raw *tmproto.ConsensusState) (ConsensusState, error) {
	if raw == nil {
		return ConsensusState{}, errorsmod.Wrap(client.ErrInvalidConsensusState, "nil tendermint consensus state")
	}
	if raw.Timestamp == nil {
		return ConsensusState{}, errorsmod.Wrap(ErrInvalidConsensusStateTS, "missing timestamp")
	}
	t, err := gogotypes.TimestampFromProto(raw.Timestamp)
	if err != nil {
		return ConsensusState{}, errorsmod.Wrap(ErrInvalidConsensusStateTS, err.Error())
	}
	cs := NewConsensusState(t, commitment.Root(raw.Root), raw.NextValidatorsHash)
	if err := cs.Validate(); err != nil {
		return ConsensusState{}, err
	}
	return cs, nil
}

func (cs ConsensusState) ToAny() (*gogotypes.Any, error) {
	msg, err := cs.ToProto()
	if err != nil {
		return nil, err
	}
	return toAny(TypeURLConsensusState, msg)
}

// ConsensusStateFromAny decodes a tendermint consensus state.
func ConsensusStateFromAny(raw *gogotypes.Any) (ConsensusState, error) {
	var msg tmproto.ConsensusState
	if err := fromAny(raw, TypeURLConsensusState, &msg); err != nil {
		return ConsensusState{}, err
	}
	return ConsensusStateFromProto(&msg)
}

package tendermint

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	cmttypes "github.com/cometbft/cometbft/types"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	tmproto "github.com/tendermint/ibc/proto/ibc/lightclients/tendermint"
)

const TypeURLHeader = "/ibc.lightclients.tendermint.v1.Header"

var _ client.ClientMessage = Header{}

// Header is a signed header of the counterparty together with the validator
// set that signed it. TrustedHeight and TrustedValidators identify the
// consensus state the header is verified against.
type Header struct {
	SignedHeader      *cmttypes.SignedHeader
	ValidatorSet      *cmttypes.ValidatorSet
	TrustedHeight     client.Height
	TrustedValidators *cmttypes.ValidatorSet
}

func (Header) ClientType() host.ClientType { return ClientType }

// ChainID returns the chain the header was signed for.
func (h Header) ChainID() string {
	if h.SignedHeader == nil || h.SignedHeader.Header == nil {
		return ""
	}
	return h.SignedHeader.Header.ChainID
}

// Height returns the header height, with the revision taken from the chain
// identifier.
func (h Header) Height() client.Height {
	if h.SignedHeader == nil || h.SignedHeader.Header == nil || h.SignedHeader.Header.Height <= 0 {
		return client.ZeroHeight()
	}
	chainID, err := host.ParseChainID(h.ChainID())
	if err != nil {
		return client.ZeroHeight()
	}
	height, err := client.NewHeight(chainID.RevisionNumber(), uint64(h.SignedHeader.Header.Height))
	if err != nil {
		return client.ZeroHeight()
	}
	return height
}

// ConsensusState returns the consensus state the client stores for h.
func (h Header) ConsensusState() ConsensusState {
	hdr := h.SignedHeader.Header
	return NewConsensusState(hdr.Time, commitment.Root(hdr.AppHash), hdr.NextValidatorsHash)
}

// ValidateBasic checks h without any trusted state.
func (h Header) ValidateBasic() error {
	if h.SignedHeader == nil || h.SignedHeader.Header == nil {
		return errorsmod.Wrap(ErrInvalidHeader, "tendermint signed header cannot be nil")
	}
	if err := h.SignedHeader.ValidateBasic(h.ChainID()); err != nil {
		return errorsmod.Wrap(ErrInvalidHeader, err.Error())
	}
	if h.Height().IsZero() {
		return errorsmod.Wrapf(ErrInvalidHeaderHeight, "invalid header height for chain %s", h.ChainID())
	}
	if h.TrustedHeight.RevisionNumber() != h.Height().RevisionNumber() {
		return errorsmod.Wrapf(ErrInvalidHeaderHeight, "trusted height revision %d does not match header revision %d",
			h.TrustedHeight.RevisionNumber(), h.Height().RevisionNumber())
	}
	if h.TrustedHeight.GTE(h.Height()) {
		return errorsmod.Wrapf(ErrInvalidHeaderHeight, "trusted height %s must be less than header height %s",
			h.TrustedHeight, h.Height())
	}
	if h.ValidatorSet == nil {
		return errorsmod.Wrap(ErrInvalidValidatorSet, "validator set is nil")
	}
	if err := h.ValidatorSet.ValidateBasic(); err != nil {
		return errorsmod.Wrap(ErrInvalidValidatorSet, err.Error())
	}
	if !bytes.Equal(h.SignedHeader.Header.ValidatorsHash, h.ValidatorSet.Hash()) {
		return errorsmod.Wrap(ErrInvalidValidatorSet, "validator set does not match hash")
	}
	if h.TrustedValidators == nil {
		return errorsmod.Wrap(ErrInvalidValidatorSet, "trusted validator set is nil")
	}
	return nil
}

func (h Header) ToProto() (*tmproto.Header, error) {
	if h.SignedHeader == nil || h.ValidatorSet == nil || h.TrustedValidators == nil {
		return nil, errorsmod.Wrap(ErrInvalidHeader, "incomplete header")
	}
	sh, err := h.SignedHeader.ToProto().Marshal()
	if err != nil {
		return nil, err
	}
	vals, err := marshalValidatorSet(h.ValidatorSet)
	if err != nil {
		return nil, err
	}
	trusted, err := marshalValidatorSet(h.TrustedValidators)
	if err != nil {
		return nil, err
	}
	return &tmproto.Header{
		SignedHeader:      sh,
		ValidatorSet:      vals,
		TrustedHeight:     h.TrustedHeight.ToProto(),
		TrustedValidators: trusted,
	}, nil
}

func HeaderFromProto(raw *tmproto.Header) (Header, error) {
	if raw == nil {
		return Header{}, errorsmod.Wrap(client.ErrInvalidClientMessage, "nil tendermint header")
	}
	var shp cmtproto.SignedHeader
	if err := shp.Unmarshal(raw.SignedHeader); err != nil {
		return Header{}, errorsmod.Wrap(ErrInvalidHeader, err.Error())
	}
	sh, err := cmttypes.SignedHeaderFromProto(&shp)
	if err != nil {
		return Header{}, errorsmod.Wrap(ErrInvalidHeader, err.Error())
	}
	vals, err := unmarshalValidatorSet(raw.ValidatorSet)
	if err != nil {
		return Header{}, err
	}
	trusted, err := unmarshalValidatorSet(raw.TrustedValidators)
	if err != nil {
		return Header{}, err
	}
	return Header{
		SignedHeader:      sh,
		ValidatorSet:      vals,
		TrustedHeight:     client.HeightFromProtoOrZero(raw.TrustedHeight),
		TrustedValidators: trusted,
	}, nil
}

func (h Header) ToAny() (*gogotypes.Any, error) {
	msg, err := h.ToProto()
	if err != nil {
		return nil, err
	}
	return toAny(TypeURLHeader, msg)
}

// HeaderFromAny decodes a tendermint header.
func HeaderFromAny(raw *gogotypes.Any) (Header, error) {
	var msg tmproto.Header
	if err := fromAny(raw, TypeURLHeader, &msg); err != nil {
		return Header{}, err
	}
	return HeaderFromProto(&msg)
}

func marshalValidatorSet(vals *cmttypes.ValidatorSet) ([]byte, error) {
	pb, err := vals.ToProto()
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidValidatorSet, err.Error())
	}
	return pb.Marshal()
}

func unmarshalValidatorSet(bz []byte) (*cmttypes.ValidatorSet, error) {
	var pb cmtproto.ValidatorSet
	if err := pb.Unmarshal(bz); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidValidatorSet, err.Error())
	}
	vals, err := cmttypes.ValidatorSetFromProto(&pb)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidValidatorSet, err.Error())
	}
	return vals, nil
}

package channel

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	channelproto "github.com/tendermint/ibc/proto/ibc/core/channel"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

const (
	TypeURLMsgChannelOpenInit     = "/ibc.core.channel.v1.MsgChannelOpenInit"
	TypeURLMsgChannelOpenTry      = "/ibc.core.channel.v1.MsgChannelOpenTry"
	TypeURLMsgChannelOpenAck      = "/ibc.core.channel.v1.MsgChannelOpenAck"
	TypeURLMsgChannelOpenConfirm  = "/ibc.core.channel.v1.MsgChannelOpenConfirm"
	TypeURLMsgChannelCloseInit    = "/ibc.core.channel.v1.MsgChannelCloseInit"
	TypeURLMsgChannelCloseConfirm = "/ibc.core.channel.v1.MsgChannelCloseConfirm"
)

// MsgChannelOpenInit starts the channel handshake on chain A.
type MsgChannelOpenInit struct {
	PortID             host.PortID
	ConnectionHops     []host.ConnectionID
	CounterpartyPortID host.PortID
	Ordering           Order
	VersionProposal    Version
	Signer             host.Signer
}

func (MsgChannelOpenInit) TypeURL() string { return TypeURLMsgChannelOpenInit }

// MsgChannelOpenInitFromProto converts a raw message. The channel must be
// in INIT with an empty counterparty channel id.
func MsgChannelOpenInitFromProto(raw *channelproto.MsgChannelOpenInit) (MsgChannelOpenInit, error) {
	portID, err := host.ParsePortID(raw.PortId)
	if err != nil {
		return MsgChannelOpenInit{}, err
	}
	end, err := ChannelEndFromProto(raw.Channel)
	if err != nil {
		return MsgChannelOpenInit{}, err
	}
	if err := end.VerifyStateMatches(StateInit); err != nil {
		return MsgChannelOpenInit{}, err
	}
	if !end.Counterparty.ChannelID.IsZero() {
		return MsgChannelOpenInit{}, errorsmod.Wrap(ErrInvalidCounterparty, "counterparty channel id must be empty")
	}
	return MsgChannelOpenInit{
		PortID:             portID,
		ConnectionHops:     end.ConnectionHops,
		CounterpartyPortID: end.Counterparty.PortID,
		Ordering:           end.Ordering,
		VersionProposal:    end.Version,
		Signer:             host.Signer(raw.Signer),
	}, nil
}

// ChannelEnd returns the end stored by a successful init.
func (msg MsgChannelOpenInit) ChannelEnd() ChannelEnd {
	return NewChannelEnd(
		StateInit,
		msg.Ordering,
		NewCounterparty(msg.CounterpartyPortID, host.ChannelID{}),
		msg.ConnectionHops,
		msg.VersionProposal,
	)
}

func (msg MsgChannelOpenInit) ToProto() *channelproto.MsgChannelOpenInit {
	return &channelproto.MsgChannelOpenInit{
		PortId:  msg.PortID.String(),
		Channel: msg.ChannelEnd().ToProto(),
		Signer:  msg.Signer.String(),
	}
}

// MsgChannelOpenTry is relayed to chain B with proof that chain A stored an
// INIT end.
type MsgChannelOpenTry struct {
	PortID              host.PortID
	ConnectionHops      []host.ConnectionID
	Counterparty        Counterparty
	Ordering            Order
	CounterpartyVersion Version
	VersionProposal     Version
	ProofInit           commitment.ProofBytes
	ProofHeight         client.Height
	Signer              host.Signer
}

func (MsgChannelOpenTry) TypeURL() string { return TypeURLMsgChannelOpenTry }

// MsgChannelOpenTryFromProto converts a raw message. A non-empty previous
// channel id is rejected since crossing hellos are not supported.
func MsgChannelOpenTryFromProto(raw *channelproto.MsgChannelOpenTry) (MsgChannelOpenTry, error) {
	if raw.Channel == nil {
		return MsgChannelOpenTry{}, ErrMissingChannel
	}
	portID, err := host.ParsePortID(raw.PortId)
	if err != nil {
		return MsgChannelOpenTry{}, err
	}
	end, err := ChannelEndFromProto(raw.Channel)
	if err != nil {
		return MsgChannelOpenTry{}, err
	}
	if err := end.VerifyStateMatches(StateTryOpen); err != nil {
		return MsgChannelOpenTry{}, err
	}
	if raw.PreviousChannelId != "" {
		return MsgChannelOpenTry{}, errorsmod.Wrapf(ErrInvalidChannelIdentifier, "previous channel id must be empty, got %q", raw.PreviousChannelId)
	}
	if end.Counterparty.ChannelID.IsZero() {
		return MsgChannelOpenTry{}, ErrMissingCounterparty
	}
	proof, err := newProof(raw.ProofInit)
	if err != nil {
		return MsgChannelOpenTry{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgChannelOpenTry{}, err
	}
	return MsgChannelOpenTry{
		PortID:              portID,
		ConnectionHops:      end.ConnectionHops,
		Counterparty:        end.Counterparty,
		Ordering:            end.Ordering,
		CounterpartyVersion: Version(raw.CounterpartyVersion),
		VersionProposal:     end.Version,
		ProofInit:           proof,
		ProofHeight:         proofHeight,
		Signer:              host.Signer(raw.Signer),
	}, nil
}

func (msg MsgChannelOpenTry) ToProto() *channelproto.MsgChannelOpenTry {
	return &channelproto.MsgChannelOpenTry{
		PortId:              msg.PortID.String(),
		Channel:             NewChannelEnd(StateTryOpen, msg.Ordering, msg.Counterparty, msg.ConnectionHops, msg.VersionProposal).ToProto(),
		CounterpartyVersion: msg.CounterpartyVersion.String(),
		ProofInit:           msg.ProofInit,
		ProofHeight:         msg.ProofHeight.ToProto(),
		Signer:              msg.Signer.String(),
	}
}

// MsgChannelOpenAck is relayed to chain A with proof that chain B stored a
// TRYOPEN end.
type MsgChannelOpenAck struct {
	PortID                host.PortID
	ChannelID             host.ChannelID
	CounterpartyChannelID host.ChannelID
	CounterpartyVersion   Version
	ProofTry              commitment.ProofBytes
	ProofHeight           client.Height
	Signer                host.Signer
}

func (MsgChannelOpenAck) TypeURL() string { return TypeURLMsgChannelOpenAck }

func MsgChannelOpenAckFromProto(raw *channelproto.MsgChannelOpenAck) (MsgChannelOpenAck, error) {
	portID, channelID, err := parsePortChannel(raw.PortId, raw.ChannelId)
	if err != nil {
		return MsgChannelOpenAck{}, err
	}
	counterpartyChannelID, err := host.ParseChannelID(raw.CounterpartyChannelId)
	if err != nil {
		return MsgChannelOpenAck{}, errorsmod.Wrap(ErrInvalidChannelIdentifier, err.Error())
	}
	proof, err := newProof(raw.ProofTry)
	if err != nil {
		return MsgChannelOpenAck{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgChannelOpenAck{}, err
	}
	return MsgChannelOpenAck{
		PortID:                portID,
		ChannelID:             channelID,
		CounterpartyChannelID: counterpartyChannelID,
		CounterpartyVersion:   Version(raw.CounterpartyVersion),
		ProofTry:              proof,
		ProofHeight:           proofHeight,
		Signer:                host.Signer(raw.Signer),
	}, nil
}

func (msg MsgChannelOpenAck) ToProto() *channelproto.MsgChannelOpenAck {
	return &channelproto.MsgChannelOpenAck{
		PortId:                msg.PortID.String(),
		ChannelId:             msg.ChannelID.String(),
		CounterpartyChannelId: msg.CounterpartyChannelID.String(),
		CounterpartyVersion:   msg.CounterpartyVersion.String(),
		ProofTry:              msg.ProofTry,
		ProofHeight:           msg.ProofHeight.ToProto(),
		Signer:                msg.Signer.String(),
	}
}

// MsgChannelOpenConfirm is relayed to chain B with proof that chain A
// opened its end.
type MsgChannelOpenConfirm struct {
	PortID      host.PortID
	ChannelID   host.ChannelID
	ProofAck    commitment.ProofBytes
	ProofHeight client.Height
	Signer      host.Signer
}

func (MsgChannelOpenConfirm) TypeURL() string { return TypeURLMsgChannelOpenConfirm }

func MsgChannelOpenConfirmFromProto(raw *channelproto.MsgChannelOpenConfirm) (MsgChannelOpenConfirm, error) {
	portID, channelID, err := parsePortChannel(raw.PortId, raw.ChannelId)
	if err != nil {
		return MsgChannelOpenConfirm{}, err
	}
	proof, err := newProof(raw.ProofAck)
	if err != nil {
		return MsgChannelOpenConfirm{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgChannelOpenConfirm{}, err
	}
	return MsgChannelOpenConfirm{
		PortID:      portID,
		ChannelID:   channelID,
		ProofAck:    proof,
		ProofHeight: proofHeight,
		Signer:      host.Signer(raw.Signer),
	}, nil
}

func (msg MsgChannelOpenConfirm) ToProto() *channelproto.MsgChannelOpenConfirm {
	return &channelproto.MsgChannelOpenConfirm{
		PortId:      msg.PortID.String(),
		ChannelId:   msg.ChannelID.String(),
		ProofAck:    msg.ProofAck,
		ProofHeight: msg.ProofHeight.ToProto(),
		Signer:      msg.Signer.String(),
	}
}

// MsgChannelCloseInit closes a channel on the chain it is submitted to.
type MsgChannelCloseInit struct {
	PortID    host.PortID
	ChannelID host.ChannelID
	Signer    host.Signer
}

func (MsgChannelCloseInit) TypeURL() string { return TypeURLMsgChannelCloseInit }

func MsgChannelCloseInitFromProto(raw *channelproto.MsgChannelCloseInit) (MsgChannelCloseInit, error) {
	portID, channelID, err := parsePortChannel(raw.PortId, raw.ChannelId)
	if err != nil {
		return MsgChannelCloseInit{}, err
	}
	return MsgChannelCloseInit{PortID: portID, ChannelID: channelID, Signer: host.Signer(raw.Signer)}, nil
}

func (msg MsgChannelCloseInit) ToProto() *channelproto.MsgChannelCloseInit {
	return &channelproto.MsgChannelCloseInit{
		PortId:    msg.PortID.String(),
		ChannelId: msg.ChannelID.String(),
		Signer:    msg.Signer.String(),
	}
}

// MsgChannelCloseConfirm is relayed with proof that the counterparty closed
// its end.
type MsgChannelCloseConfirm struct {
	PortID      host.PortID
	ChannelID   host.ChannelID
	ProofInit   commitment.ProofBytes
	ProofHeight client.Height
	Signer      host.Signer
}

func (MsgChannelCloseConfirm) TypeURL() string { return TypeURLMsgChannelCloseConfirm }

func MsgChannelCloseConfirmFromProto(raw *channelproto.MsgChannelCloseConfirm) (MsgChannelCloseConfirm, error) {
	portID, channelID, err := parsePortChannel(raw.PortId, raw.ChannelId)
	if err != nil {
		return MsgChannelCloseConfirm{}, err
	}
	proof, err := newProof(raw.ProofInit)
	if err != nil {
		return MsgChannelCloseConfirm{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgChannelCloseConfirm{}, err
	}
	return MsgChannelCloseConfirm{
		PortID:      portID,
		ChannelID:   channelID,
		ProofInit:   proof,
		ProofHeight: proofHeight,
		Signer:      host.Signer(raw.Signer),
	}, nil
}

func (msg MsgChannelCloseConfirm) ToProto() *channelproto.MsgChannelCloseConfirm {
	return &channelproto.MsgChannelCloseConfirm{
		PortId:      msg.PortID.String(),
		ChannelId:   msg.ChannelID.String(),
		ProofInit:   msg.ProofInit,
		ProofHeight: msg.ProofHeight.ToProto(),
		Signer:      msg.Signer.String(),
	}
}

func parsePortChannel(port, channel string) (host.PortID, host.ChannelID, error) {
	portID, err := host.ParsePortID(port)
	if err != nil {
		return host.PortID{}, host.ChannelID{}, err
	}
	channelID, err := host.ParseChannelID(channel)
	if err != nil {
		return host.PortID{}, host.ChannelID{}, errorsmod.Wrap(ErrInvalidChannelIdentifier, err.Error())
	}
	return portID, channelID, nil
}

func newProof(bz []byte) (commitment.ProofBytes, error) {
	proof, err := commitment.NewProofBytes(bz)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidProof, err.Error())
	}
	return proof, nil
}

func proofHeightFromProto(raw *clientproto.Height) (client.Height, error) {
	h, err := client.HeightFromProto(raw)
	if err != nil {
		return client.Height{}, errorsmod.Wrap(ErrMissingHeight, err.Error())
	}
	return h, nil
}

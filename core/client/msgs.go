package client

import (
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/host"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

const (
	TypeURLMsgCreateClient = "/ibc.core.client.v1.MsgCreateClient"
	TypeURLMsgUpdateClient = "/ibc.core.client.v1.MsgUpdateClient"
)

// MsgCreateClient creates a light client from an initial client and
// consensus state. The states stay encoded until a handler decodes them with
// the host codec.
type MsgCreateClient struct {
	ClientState    *gogotypes.Any
	ConsensusState *gogotypes.Any
	Signer         host.Signer
}

func (MsgCreateClient) TypeURL() string { return TypeURLMsgCreateClient }

// MsgCreateClientFromProto converts and validates a raw message.
func MsgCreateClientFromProto(raw *clientproto.MsgCreateClient) (MsgCreateClient, error) {
	if raw.ClientState == nil {
		return MsgCreateClient{}, ErrMissingRawClientState
	}
	if raw.ConsensusState == nil {
		return MsgCreateClient{}, ErrMissingRawConsensusState
	}
	return MsgCreateClient{
		ClientState:    raw.ClientState,
		ConsensusState: raw.ConsensusState,
		Signer:         host.Signer(raw.Signer),
	}, nil
}

func (msg MsgCreateClient) ToProto() *clientproto.MsgCreateClient {
	return &clientproto.MsgCreateClient{
		ClientState:    msg.ClientState,
		ConsensusState: msg.ConsensusState,
		Signer:         msg.Signer.String(),
	}
}

// MsgUpdateClient updates a light client with a header or misbehaviour.
type MsgUpdateClient struct {
	ClientID      host.ClientID
	ClientMessage *gogotypes.Any
	Signer        host.Signer
}

func (MsgUpdateClient) TypeURL() string { return TypeURLMsgUpdateClient }

// MsgUpdateClientFromProto converts and validates a raw message.
func MsgUpdateClientFromProto(raw *clientproto.MsgUpdateClient) (MsgUpdateClient, error) {
	clientID, err := host.ParseClientID(raw.ClientId)
	if err != nil {
		return MsgUpdateClient{}, err
	}
	if raw.ClientMessage == nil {
		return MsgUpdateClient{}, ErrMissingRawClientMessage
	}
	return MsgUpdateClient{
		ClientID:      clientID,
		ClientMessage: raw.ClientMessage,
		Signer:        host.Signer(raw.Signer),
	}, nil
}

func (msg MsgUpdateClient) ToProto() *clientproto.MsgUpdateClient {
	return &clientproto.MsgUpdateClient{
		ClientId:      msg.ClientID.String(),
		ClientMessage: msg.ClientMessage,
		Signer:        msg.Signer.String(),
	}
}

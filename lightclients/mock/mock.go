// Package mock implements a light client that trusts every header it is
// given. It verifies commitment proofs like any other client, which makes it
// suitable for hosts that do not produce signed headers.
package mock

import (
	"bytes"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	mockproto "github.com/tendermint/ibc/proto/ibc/lightclients/mock"
)

const (
	TypeURLClientState    = "/ibc.mock.ClientState"
	TypeURLConsensusState = "/ibc.mock.ConsensusState"
	TypeURLHeader         = "/ibc.mock.Header"
)

// ClientType is the type of the mock client.
var ClientType = host.MustClientType("9999-mock")

var (
	_ client.ClientState    = ClientState{}
	_ client.ConsensusState = ConsensusState{}
	_ client.ClientMessage  = Header{}
)

// Header is a trusted view of the counterparty at some height.
type Header struct {
	Height    client.Height
	Timestamp timestamp.Timestamp
	Root      commitment.Root
}

func (Header) ClientType() host.ClientType { return ClientType }

func (h Header) ToProto() *mockproto.Header {
	return &mockproto.Header{
		Height:    h.Height.ToProto(),
		Timestamp: h.Timestamp.Nanoseconds(),
		Root:      h.Root,
	}
}

func HeaderFromProto(raw *mockproto.Header) (Header, error) {
	if raw == nil {
		return Header{}, errorsmod.Wrap(client.ErrInvalidClientMessage, "nil mock header")
	}
	height, err := client.HeightFromProto(raw.Height)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Height:    height,
		Timestamp: timestamp.FromNanoseconds(raw.Timestamp),
		Root:      commitment.Root(raw.Root),
	}, nil
}

func (h Header) ToAny() (*gogotypes.Any, error) {
	return toAny(TypeURLHeader, h.ToProto())
}

func (h Header) equal(o Header) bool {
	return h.Height.EQ(o.Height) && h.Timestamp == o.Timestamp && bytes.Equal(h.Root, o.Root)
}

func (h Header) String() string {
	return fmt.Sprintf("MockHeader{%s, %s}", h.Height, h.Timestamp)
}

// ConsensusState is the header a client stored at its height.
type ConsensusState struct {
	Header Header
}

func NewConsensusState(h Header) ConsensusState { return ConsensusState{Header: h} }

func (ConsensusState) ClientType() host.ClientType       { return ClientType }
func (cs ConsensusState) Root() commitment.Root          { return cs.Header.Root }
func (cs ConsensusState) Timestamp() timestamp.Timestamp { return cs.Header.Timestamp }

func (cs ConsensusState) ToAny() (*gogotypes.Any, error) {
	return toAny(TypeURLConsensusState, &mockproto.ConsensusState{Header: cs.Header.ToProto()})
}

// ClientState tracks the latest header. A frozen client has a non-zero
// FrozenHeight.
type ClientState struct {
	Header       Header
	FrozenHeight client.Height
}

func NewClientState(h Header) ClientState { return ClientState{Header: h} }

func (ClientState) ClientType() host.ClientType    { return ClientType }
func (cs ClientState) LatestHeight() client.Height { return cs.Header.Height }

func (cs ClientState) Validate() error {
	if cs.Header.Height.IsZero() {
		return errorsmod.Wrap(client.ErrInvalidClientState, "latest height cannot be zero")
	}
	return nil
}

// Status is Frozen once misbehaviour was submitted. A mock client never
// expires.
func (cs ClientState) Status(client.ValidationContext, host.ClientID) (client.Status, error) {
	if !cs.FrozenHeight.IsZero() {
		return client.Frozen, nil
	}
	return client.Active, nil
}

func (cs ClientState) VerifyMembership(
	prefix commitment.Prefix,
	proof commitment.ProofBytes,
	root commitment.Root,
	path host.Path,
	value []byte,
) error {
	if err := commitment.VerifyMembership(root, proof, commitment.ApplyPrefix(prefix, path), value); err != nil {
		return errorsmod.Wrap(client.ErrFailedMembershipVerification, err.Error())
	}
	return nil
}

func (cs ClientState) VerifyNonMembership(
	prefix commitment.Prefix,
	proof commitment.ProofBytes,
	root commitment.Root,
	path host.Path,
) error {
	if err := commitment.VerifyNonMembership(root, proof, commitment.ApplyPrefix(prefix, path)); err != nil {
		return errorsmod.Wrap(client.ErrFailedNonMembershipVerification, err.Error())
	}
	return nil
}

// VerifyClientMessage accepts any well formed header.
func (cs ClientState) VerifyClientMessage(_ client.ValidationContext, _ host.ClientID, msg client.ClientMessage) error {
	h, err := asHeader(msg)
	if err != nil {
		return err
	}
	if !h.Timestamp.IsSet() {
		return errorsmod.Wrap(client.ErrInvalidClientMessage, "header timestamp cannot be unset")
	}
	return nil
}

// CheckForMisbehaviour reports a header that conflicts with a consensus
// state already stored at its height.
func (cs ClientState) CheckForMisbehaviour(ctx client.ValidationContext, clientID host.ClientID, msg client.ClientMessage) (bool, error) {
	h, err := asHeader(msg)
	if err != nil {
		return false, err
	}
	stored, err := ctx.ConsensusState(client.ConsensusStatePath(clientID, h.Height))
	switch {
	case errorsmod.IsOf(err, client.ErrConsensusStateNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	existing, ok := stored.(ConsensusState)
	if !ok {
		return false, errorsmod.Wrapf(client.ErrInvalidConsensusState, "unexpected consensus state %T", stored)
	}
	return !existing.Header.equal(h), nil
}

func (cs ClientState) Initialise(ctx client.ExecutionContext, clientID host.ClientID, consensusState client.ConsensusState) error {
	if _, ok := consensusState.(ConsensusState); !ok {
		return errorsmod.Wrapf(client.ErrInvalidConsensusState, "unexpected consensus state %T", consensusState)
	}
	if err := ctx.StoreClientState(host.ClientStatePath{ClientID: clientID}, cs); err != nil {
		return err
	}
	return ctx.StoreConsensusState(client.ConsensusStatePath(clientID, cs.LatestHeight()), consensusState)
}

// UpdateState stores the header as a consensus state and advances the latest
// height if the header is newer.
func (cs ClientState) UpdateState(ctx client.ExecutionContext, clientID host.ClientID, msg client.ClientMessage) ([]client.Height, error) {
	h, err := asHeader(msg)
	if err != nil {
		return nil, err
	}
	if err := ctx.StoreConsensusState(client.ConsensusStatePath(clientID, h.Height), NewConsensusState(h)); err != nil {
		return nil, err
	}
	if h.Height.GT(cs.LatestHeight()) {
		cs.Header = h
	}
	if err := ctx.StoreClientState(host.ClientStatePath{ClientID: clientID}, cs); err != nil {
		return nil, err
	}
	return []client.Height{h.Height}, nil
}

func (cs ClientState) UpdateStateOnMisbehaviour(ctx client.ExecutionContext, clientID host.ClientID, msg client.ClientMessage) error {
	h, err := asHeader(msg)
	if err != nil {
		return err
	}
	cs.FrozenHeight = h.Height
	return ctx.StoreClientState(host.ClientStatePath{ClientID: clientID}, cs)
}

func (cs ClientState) ToProto() *mockproto.ClientState {
	return &mockproto.ClientState{Header: cs.Header.ToProto(), FrozenHeight: cs.FrozenHeight.ToProto()}
}

func (cs ClientState) ToAny() (*gogotypes.Any, error) {
	return toAny(TypeURLClientState, cs.ToProto())
}

func asHeader(msg client.ClientMessage) (Header, error) {
	h, ok := msg.(Header)
	if !ok {
		return Header{}, errorsmod.Wrapf(client.ErrInvalidClientMessage, "expected mock header, got %T", msg)
	}
	return h, nil
}

func toAny(typeURL string, msg proto.Message) (*gogotypes.Any, error) {
	bz, err := proto.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &gogotypes.Any{TypeUrl: typeURL, Value: bz}, nil
}

// ClientStateFromAny decodes a mock client state.
func ClientStateFromAny(raw *gogotypes.Any) (ClientState, error) {
	var msg mockproto.ClientState
	if err := fromAny(raw, TypeURLClientState, &msg); err != nil {
		return ClientState{}, err
	}
	h, err := HeaderFromProto(msg.Header)
	if err != nil {
		return ClientState{}, errorsmod.Wrap(client.ErrInvalidClientState, err.Error())
	}
	return ClientState{Header: h, FrozenHeight: client.HeightFromProtoOrZero(msg.FrozenHeight)}, nil
}

// ConsensusStateFromAny decodes a mock consensus state.
func ConsensusStateFromAny(raw *gogotypes.Any) (ConsensusState, error) {
	var msg mockproto.ConsensusState
	if err := fromAny(raw, TypeURLConsensusState, &msg); err != nil {
		return ConsensusState{}, err
	}
	h, err := HeaderFromProto(msg.Header)
	if err != nil {
		return ConsensusState{}, errorsmod.Wrap(client.ErrInvalidConsensusState, err.Error())
	}
	return NewConsensusState(h), nil
}

// HeaderFromAny decodes a mock header.
func HeaderFromAny(raw *gogotypes.Any) (Header, error) {
	var msg mockproto.Header
	if err := fromAny(raw, TypeURLHeader, &msg); err != nil {
		return Header{}, err
	}
	return HeaderFromProto(&msg)
}

func fromAny(raw *gogotypes.Any, typeURL string, msg proto.Message) error {
	if raw == nil {
		return errorsmod.Wrap(client.ErrUnknownClientType, "nil any")
	}
	if raw.TypeUrl != typeURL {
		return errorsmod.Wrapf(client.ErrUnknownClientType, "expected %s, got %s", typeURL, raw.TypeUrl)
	}
	return proto.Unmarshal(raw.Value, msg)
}

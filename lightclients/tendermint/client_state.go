// Package tendermint implements the light client of chains running
// Tendermint consensus. Headers are verified with the cometbft light client
// verifier; proofs are verified against the app hash of trusted headers.
package tendermint

import (
	"bytes"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/light"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/gogo/protobuf/proto"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	tmproto "github.com/tendermint/ibc/proto/ibc/lightclients/tendermint"
)

const TypeURLClientState = "/ibc.lightclients.tendermint.v1.ClientState"

// ClientType is the type of the tendermint client.
var ClientType = host.MustClientType("07-tendermint")

// FrozenHeight is the height a client is frozen at after misbehaviour.
var FrozenHeight = client.MustNewHeight(0, 1)

var _ client.ClientState = ClientState{}

// AllowUpdate holds the flags that let governance revive a client.
type AllowUpdate struct {
	AfterExpiry       bool
	AfterMisbehaviour bool
}

// ClientState tracks a tendermint chain. A frozen client has a non-zero
// Frozen height.
type ClientState struct {
	ChainID         host.ChainID
	TrustLevel      TrustThreshold
	TrustingPeriod  time.Duration
	UnbondingPeriod time.Duration
	MaxClockDrift   time.Duration
	Latest          client.Height
	Frozen          client.Height
	UpgradePath     []string
	AllowUpdate     AllowUpdate
}

func NewClientState(
	chainID host.ChainID,
	trustLevel TrustThreshold,
	trustingPeriod, unbondingPeriod, maxClockDrift time.Duration,
	latest client.Height,
	upgradePath []string,
) ClientState {
	return ClientState{
		ChainID:         chainID,
		TrustLevel:      trustLevel,
		TrustingPeriod:  trustingPeriod,
		UnbondingPeriod: unbondingPeriod,
		MaxClockDrift:   maxClockDrift,
		Latest:          latest,
		UpgradePath:     upgradePath,
	}
}

func (ClientState) ClientType() host.ClientType    { return ClientType }
func (cs ClientState) LatestHeight() client.Height { return cs.Latest }

// IsFrozen reports whether misbehaviour was submitted for the client.
func (cs ClientState) IsFrozen() bool { return !cs.Frozen.IsZero() }

func (cs ClientState) Validate() error {
	if strings.TrimSpace(cs.ChainID.String()) == "" {
		return errorsmod.Wrap(ErrInvalidChainID, "chain id cannot be empty")
	}
	if _, err := cs.TrustLevel.ToFraction(); err != nil {
		return err
	}
	if cs.TrustingPeriod <= 0 {
		return errorsmod.Wrap(ErrInvalidTrustingPeriod, "trusting period must be greater than zero")
	}
	if cs.UnbondingPeriod <= 0 {
		return errorsmod.Wrap(ErrInvalidUnbondingPeriod, "unbonding period must be greater than zero")
	}
	if cs.TrustingPeriod >= cs.UnbondingPeriod {
		return errorsmod.Wrapf(ErrInvalidTrustingPeriod,
			"trusting period (%s) should be < unbonding period (%s)", cs.TrustingPeriod, cs.UnbondingPeriod)
	}
	if cs.MaxClockDrift <= 0 {
		return errorsmod.Wrap(ErrInvalidMaxClockDrift, "max clock drift must be greater than zero")
	}
	if cs.Latest.RevisionHeight() == 0 {
		return errorsmod.Wrap(client.ErrInvalidHeight, "tendermint client's latest height revision height cannot be zero")
	}
	if cs.Latest.RevisionNumber() != cs.ChainID.RevisionNumber() {
		return errorsmod.Wrapf(client.ErrInvalidHeight,
			"latest height revision number must match chain id revision number (%d != %d)",
			cs.Latest.RevisionNumber(), cs.ChainID.RevisionNumber())
	}
	for i, key := range cs.UpgradePath {
		if strings.TrimSpace(key) == "" {
			return errorsmod.Wrapf(client.ErrInvalidClientState, "key in upgrade path at index %d cannot be empty", i)
		}
	}
	return nil
}

// Status is Frozen after misbehaviour and Expired once the latest consensus
// state is older than the trusting period.
func (cs ClientState) Status(ctx client.ValidationContext, clientID host.ClientID) (client.Status, error) {
	if cs.IsFrozen() {
		return client.Frozen, nil
	}
	latest, err := ctx.ConsensusState(client.ConsensusStatePath(clientID, cs.Latest))
	switch {
	case errorsmod.IsOf(err, client.ErrConsensusStateNotFound):
		return client.Expired, nil
	case err != nil:
		return "", err
	}
	now, err := ctx.HostTimestamp()
	if err != nil {
		return "", err
	}
	if cs.expired(latest.Timestamp(), now) {
		return client.Expired, nil
	}
	return client.Active, nil
}

func (cs ClientState) expired(latest, now timestamp.Timestamp) bool {
	if !latest.IsSet() || !now.IsSet() {
		return false
	}
	return latest.Add(cs.TrustingPeriod).Nanoseconds() <= now.Nanoseconds()
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

// VerifyClientMessage verifies a header against the consensus state at its
// trusted height.
func (cs ClientState) VerifyClientMessage(ctx client.ValidationContext, clientID host.ClientID, msg client.ClientMessage) error {
	h, err := asHeader(msg)
	if err != nil {
		return err
	}
	if err := h.ValidateBasic(); err != nil {
		return err
	}
	if h.ChainID() != cs.ChainID.String() {
		return errorsmod.Wrapf(ErrInvalidChainID, "header chain id %s does not match client chain id %s", h.ChainID(), cs.ChainID)
	}
	if h.Height().RevisionNumber() != cs.Latest.RevisionNumber() {
		return errorsmod.Wrapf(ErrInvalidHeaderHeight, "header revision %d does not match client revision %d",
			h.Height().RevisionNumber(), cs.Latest.RevisionNumber())
	}

	stored, err := ctx.ConsensusState(client.ConsensusStatePath(clientID, h.TrustedHeight))
	if err != nil {
		return errorsmod.Wrapf(err, "could not get trusted consensus state at %s", h.TrustedHeight)
	}
	trusted, ok := stored.(ConsensusState)
	if !ok {
		return errorsmod.Wrapf(client.ErrInvalidConsensusState, "unexpected consensus state %T", stored)
	}
	if !bytes.Equal(h.TrustedValidators.Hash(), trusted.NextValidatorsHash) {
		return errorsmod.Wrapf(ErrInvalidValidatorSet,
			"trusted validators %X do not hash to latest trusted validators, expected %X got %X",
			h.TrustedValidators.Hash(), trusted.NextValidatorsHash, h.TrustedValidators.Hash())
	}

	trustLevel, err := cs.TrustLevel.ToFraction()
	if err != nil {
		return err
	}
	now, err := ctx.HostTimestamp()
	if err != nil {
		return err
	}
	trustedHeader := &cmttypes.SignedHeader{
		Header: &cmttypes.Header{
			ChainID:            cs.ChainID.String(),
			Height:             int64(h.TrustedHeight.RevisionHeight()),
			Time:               trusted.Time,
			NextValidatorsHash: trusted.NextValidatorsHash,
		},
	}
	err = light.Verify(
		trustedHeader, h.TrustedValidators,
		h.SignedHeader, h.ValidatorSet,
		cs.TrustingPeriod, now.Time(), cs.MaxClockDrift, trustLevel,
	)
	if err != nil {
		return errorsmod.Wrap(ErrHeaderVerificationFail, err.Error())
	}
	return nil
}

// CheckForMisbehaviour reports a header whose consensus state conflicts with
// one already stored at the same height.
func (cs ClientState) CheckForMisbehaviour(ctx client.ValidationContext, clientID host.ClientID, msg client.ClientMessage) (bool, error) {
	h, err := asHeader(msg)
	if err != nil {
		return false, err
	}
	stored, err := ctx.ConsensusState(client.ConsensusStatePath(clientID, h.Height()))
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
	return !existing.equal(h.ConsensusState()), nil
}

func (cs ClientState) Initialise(ctx client.ExecutionContext, clientID host.ClientID, consensusState client.ConsensusState) error {
	tmCons, ok := consensusState.(ConsensusState)
	if !ok {
		return errorsmod.Wrapf(client.ErrInvalidConsensusState, "unexpected consensus state %T", consensusState)
	}
	if err := tmCons.Validate(); err != nil {
		return err
	}
	if err := ctx.StoreClientState(host.ClientStatePath{ClientID: clientID}, cs); err != nil {
		return err
	}
	return ctx.StoreConsensusState(client.ConsensusStatePath(clientID, cs.Latest), tmCons)
}

// UpdateState stores the consensus state of a verified header. Resubmitting
// a header that is already stored changes nothing.
func (cs ClientState) UpdateState(ctx client.ExecutionContext, clientID host.ClientID, msg client.ClientMessage) ([]client.Height, error) {
	h, err := asHeader(msg)
	if err != nil {
		return nil, err
	}
	height := h.Height()
	path := client.ConsensusStatePath(clientID, height)
	if _, err := ctx.ConsensusState(path); err == nil {
		return []client.Height{height}, nil
	} else if !errorsmod.IsOf(err, client.ErrConsensusStateNotFound) {
		return nil, err
	}

	if err := ctx.StoreConsensusState(path, h.ConsensusState()); err != nil {
		return nil, err
	}
	if height.GT(cs.Latest) {
		cs.Latest = height
	}
	if err := ctx.StoreClientState(host.ClientStatePath{ClientID: clientID}, cs); err != nil {
		return nil, err
	}
	return []client.Height{height}, nil
}

func (cs ClientState) UpdateStateOnMisbehaviour(ctx client.ExecutionContext, clientID host.ClientID, _ client.ClientMessage) error {
	cs.Frozen = FrozenHeight
	return ctx.StoreClientState(host.ClientStatePath{ClientID: clientID}, cs)
}

func (cs ClientState) ToProto() *tmproto.ClientState {
	return &tmproto.ClientState{
		ChainId:                      cs.ChainID.String(),
		TrustLevel:                   cs.TrustLevel.ToProto(),
		TrustingPeriod:               gogotypes.DurationProto(cs.TrustingPeriod),
		UnbondingPeriod:              gogotypes.DurationProto(cs.UnbondingPeriod),
		MaxClockDrift:                gogotypes.DurationProto(cs.MaxClockDrift),
		FrozenHeight:                 cs.Frozen.ToProto(),
		LatestHeight:                 cs.Latest.ToProto(),
		UpgradePath:                  cs.UpgradePath,
		AllowUpdateAfterExpiry:       cs.AllowUpdate.AfterExpiry,
		AllowUpdateAfterMisbehaviour: cs.AllowUpdate.AfterMisbehaviour,
	}
}

// ClientStateFromProto decodes and validates a tendermint client state.
func ClientStateFromProto(raw *tmproto.ClientState) (ClientState, error) {
	if raw == nil {
		return ClientState{}, errorsmod.Wrap(client.ErrInvalidClientState, "nil tendermint client state")
	}
	chainID, err := host.ParseChainID(raw.ChainId)
	if err != nil {
		return ClientState{}, errorsmod.Wrap(ErrInvalidChainID, err.Error())
	}
	trustLevel, err := TrustThresholdFromProto(raw.TrustLevel)
	if err != nil {
		return ClientState{}, err
	}
	trusting, err := durationFromProto(raw.TrustingPeriod)
	if err != nil {
		return ClientState{}, errorsmod.Wrap(ErrInvalidTrustingPeriod, err.Error())
	}
	unbonding, err := durationFromProto(raw.UnbondingPeriod)
	if err != nil {
		return ClientState{}, errorsmod.Wrap(ErrInvalidUnbondingPeriod, err.Error())
	}
	drift, err := durationFromProto(raw.MaxClockDrift)
	if err != nil {
		return ClientState{}, errorsmod.Wrap(ErrInvalidMaxClockDrift, err.Error())
	}
	latest, err := client.HeightFromProto(raw.LatestHeight)
	if err != nil {
		return ClientState{}, err
	}

	cs := NewClientState(chainID, trustLevel, trusting, unbonding, drift, latest, raw.UpgradePath)
	cs.Frozen = client.HeightFromProtoOrZero(raw.FrozenHeight)
	cs.AllowUpdate = AllowUpdate{
		AfterExpiry:       raw.AllowUpdateAfterExpiry,
		AfterMisbehaviour: raw.AllowUpdateAfterMisbehaviour,
	}
	if err := cs.Validate(); err != nil {
		return ClientState{}, err
	}
	return cs, nil
}

func (cs ClientState) ToAny() (*gogotypes.Any, error) {
	return toAny(TypeURLClientState, cs.ToProto())
}

// ClientStateFromAny decodes a tendermint client state.
func ClientStateFromAny(raw *gogotypes.Any) (ClientState, error) {
	var msg tmproto.ClientState
	if err := fromAny(raw, TypeURLClientState, &msg); err != nil {
		return ClientState{}, err
	}
	return ClientStateFromProto(&msg)
}

func durationFromProto(d *gogotypes.Duration) (time.Duration, error) {
	if d == nil {
		return 0, nil
	}
	return gogotypes.DurationFromProto(d)
}

func asHeader(msg client.ClientMessage) (Header, error) {
	h, ok := msg.(Header)
	if !ok {
		return Header{}, errorsmod.Wrapf(client.ErrInvalidClientMessage, "expected tendermint header, got %T", msg)
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

func fromAny(raw *gogotypes.Any, typeURL string, msg proto.Message) error {
	if raw == nil {
		return errorsmod.Wrap(client.ErrUnknownClientType, "nil any")
	}
	if raw.TypeUrl != typeURL {
		return errorsmod.Wrapf(client.ErrUnknownClientType, "expected %s, got %s", typeURL, raw.TypeUrl)
	}
	return proto.Unmarshal(raw.Value, msg)
}

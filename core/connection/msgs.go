package connection

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
	connectionproto "github.com/tendermint/ibc/proto/ibc/core/connection"
)

const (
	TypeURLMsgConnectionOpenInit    = "/ibc.core.connection.v1.MsgConnectionOpenInit"
	TypeURLMsgConnectionOpenTry     = "/ibc.core.connection.v1.MsgConnectionOpenTry"
	TypeURLMsgConnectionOpenAck     = "/ibc.core.connection.v1.MsgConnectionOpenAck"
	TypeURLMsgConnectionOpenConfirm = "/ibc.core.connection.v1.MsgConnectionOpenConfirm"
)

// MsgConnectionOpenInit starts the handshake on chain A.
type MsgConnectionOpenInit struct {
	ClientID     host.ClientID
	Counterparty Counterparty
	// Version is optional. When nil the host picks from its compatible
	// versions.
	Version     *Version
	DelayPeriod time.Duration
	Signer      host.Signer
}

func (MsgConnectionOpenInit) TypeURL() string { return TypeURLMsgConnectionOpenInit }

// MsgConnectionOpenInitFromProto converts a raw message. The counterparty
// connection id must be empty since the counterparty end does not exist yet.
func MsgConnectionOpenInitFromProto(raw *connectionproto.MsgConnectionOpenInit) (MsgConnectionOpenInit, error) {
	clientID, err := host.ParseClientID(raw.ClientId)
	if err != nil {
		return MsgConnectionOpenInit{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	counterparty, err := CounterpartyFromProto(raw.Counterparty)
	if err != nil {
		return MsgConnectionOpenInit{}, err
	}
	if !counterparty.ConnectionID.IsZero() {
		return MsgConnectionOpenInit{}, errorsmod.Wrap(ErrInvalidCounterparty, "counterparty connection id must be empty")
	}
	var version *Version
	if raw.Version != nil {
		v, err := VersionFromProto(raw.Version)
		if err != nil {
			return MsgConnectionOpenInit{}, err
		}
		version = &v
	}
	return MsgConnectionOpenInit{
		ClientID:     clientID,
		Counterparty: counterparty,
		Version:      version,
		DelayPeriod:  time.Duration(raw.DelayPeriod),
		Signer:       host.Signer(raw.Signer),
	}, nil
}

func (msg MsgConnectionOpenInit) ToProto() *connectionproto.MsgConnectionOpenInit {
	raw := &connectionproto.MsgConnectionOpenInit{
		ClientId:     msg.ClientID.String(),
		Counterparty: msg.Counterparty.ToProto(),
		DelayPeriod:  uint64(msg.DelayPeriod),
		Signer:       msg.Signer.String(),
	}
	if msg.Version != nil {
		raw.Version = msg.Version.ToProto()
	}
	return raw
}

// MsgConnectionOpenTry is relayed to chain B with proofs that chain A stored
// an INIT end and tracks chain B with ClientState.
type MsgConnectionOpenTry struct {
	ClientID             host.ClientID
	ClientState          *gogotypes.Any
	Counterparty         Counterparty
	CounterpartyVersions []Version
	ProofInit            commitment.ProofBytes
	ProofClient          commitment.ProofBytes
	ProofConsensus       commitment.ProofBytes
	ProofHeight          client.Height
	ConsensusHeight      client.Height
	DelayPeriod          time.Duration
	Signer               host.Signer
}

func (MsgConnectionOpenTry) TypeURL() string { return TypeURLMsgConnectionOpenTry }

// MsgConnectionOpenTryFromProto converts a raw message. A non-empty
// previous connection id is rejected since crossing hellos are not
// supported.
func MsgConnectionOpenTryFromProto(raw *connectionproto.MsgConnectionOpenTry) (MsgConnectionOpenTry, error) {
	if raw.PreviousConnectionId != "" {
		return MsgConnectionOpenTry{}, errorsmod.Wrapf(ErrInvalidPreviousConnection, "got %q", raw.PreviousConnectionId)
	}
	clientID, err := host.ParseClientID(raw.ClientId)
	if err != nil {
		return MsgConnectionOpenTry{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	if raw.ClientState == nil {
		return MsgConnectionOpenTry{}, client.ErrMissingRawClientState
	}
	counterparty, err := CounterpartyFromProto(raw.Counterparty)
	if err != nil {
		return MsgConnectionOpenTry{}, err
	}
	if counterparty.ConnectionID.IsZero() {
		return MsgConnectionOpenTry{}, errorsmod.Wrap(ErrInvalidCounterparty, "counterparty connection id cannot be empty")
	}
	if len(raw.CounterpartyVersions) == 0 {
		return MsgConnectionOpenTry{}, ErrEmptyVersions
	}
	versions, err := VersionsFromProto(raw.CounterpartyVersions)
	if err != nil {
		return MsgConnectionOpenTry{}, err
	}
	proofInit, err := newProof(raw.ProofInit)
	if err != nil {
		return MsgConnectionOpenTry{}, err
	}
	proofClient, err := newProof(raw.ProofClient)
	if err != nil {
		return MsgConnectionOpenTry{}, err
	}
	proofConsensus, err := newProof(raw.ProofConsensus)
	if err != nil {
		return MsgConnectionOpenTry{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgConnectionOpenTry{}, err
	}
	consensusHeight, err := client.HeightFromProto(raw.ConsensusHeight)
	if err != nil {
		return MsgConnectionOpenTry{}, errorsmod.Wrap(ErrMissingConsensusHeight, err.Error())
	}
	return MsgConnectionOpenTry{
		ClientID:             clientID,
		ClientState:          raw.ClientState,
		Counterparty:         counterparty,
		CounterpartyVersions: versions,
		ProofInit:            proofInit,
		ProofClient:          proofClient,
		ProofConsensus:       proofConsensus,
		ProofHeight:          proofHeight,
		ConsensusHeight:      consensusHeight,
		DelayPeriod:          time.Duration(raw.DelayPeriod),
		Signer:               host.Signer(raw.Signer),
	}, nil
}

func (msg MsgConnectionOpenTry) ToProto() *connectionproto.MsgConnectionOpenTry {
	return &connectionproto.MsgConnectionOpenTry{
		ClientId:             msg.ClientID.String(),
		ClientState:          msg.ClientState,
		Counterparty:         msg.Counterparty.ToProto(),
		DelayPeriod:          uint64(msg.DelayPeriod),
		CounterpartyVersions: versionsToProto(msg.CounterpartyVersions),
		ProofHeight:          msg.ProofHeight.ToProto(),
		ProofInit:            msg.ProofInit,
		ProofClient:          msg.ProofClient,
		ProofConsensus:       msg.ProofConsensus,
		ConsensusHeight:      msg.ConsensusHeight.ToProto(),
		Signer:               msg.Signer.String(),
	}
}

// MsgConnectionOpenAck is relayed to chain A with proof that chain B stored
// a TRYOPEN end.
type MsgConnectionOpenAck struct {
	ConnectionID             host.ConnectionID
	CounterpartyConnectionID host.ConnectionID
	ClientState              *gogotypes.Any
	ProofTry                 commitment.ProofBytes
	ProofClient              commitment.ProofBytes
	ProofConsensus           commitment.ProofBytes
	ProofHeight              client.Height
	ConsensusHeight          client.Height
	Version                  Version
	Signer                   host.Signer
}

func (MsgConnectionOpenAck) TypeURL() string { return TypeURLMsgConnectionOpenAck }

// MsgConnectionOpenAckFromProto converts a raw message.
func MsgConnectionOpenAckFromProto(raw *connectionproto.MsgConnectionOpenAck) (MsgConnectionOpenAck, error) {
	connectionID, err := host.ParseConnectionID(raw.ConnectionId)
	if err != nil {
		return MsgConnectionOpenAck{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	counterpartyConnectionID, err := host.ParseConnectionID(raw.CounterpartyConnectionId)
	if err != nil {
		return MsgConnectionOpenAck{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	if raw.ClientState == nil {
		return MsgConnectionOpenAck{}, client.ErrMissingRawClientState
	}
	version, err := VersionFromProto(raw.Version)
	if err != nil {
		return MsgConnectionOpenAck{}, err
	}
	proofTry, err := newProof(raw.ProofTry)
	if err != nil {
		return MsgConnectionOpenAck{}, err
	}
	proofClient, err := newProof(raw.ProofClient)
	if err != nil {
		return MsgConnectionOpenAck{}, err
	}
	proofConsensus, err := newProof(raw.ProofConsensus)
	if err != nil {
		return MsgConnectionOpenAck{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgConnectionOpenAck{}, err
	}
	consensusHeight, err := client.HeightFromProto(raw.ConsensusHeight)
	if err != nil {
		return MsgConnectionOpenAck{}, errorsmod.Wrap(ErrMissingConsensusHeight, err.Error())
	}
	return MsgConnectionOpenAck{
		ConnectionID:             connectionID,
		CounterpartyConnectionID: counterpartyConnectionID,
		ClientState:              raw.ClientState,
		ProofTry:                 proofTry,
		ProofClient:              proofClient,
		ProofConsensus:           proofConsensus,
		ProofHeight:              proofHeight,
		ConsensusHeight:          consensusHeight,
		Version:                  version,
		Signer:                   host.Signer(raw.Signer),
	}, nil
}

func (msg MsgConnectionOpenAck) ToProto() *connectionproto.MsgConnectionOpenAck {
	return &connectionproto.MsgConnectionOpenAck{
		ConnectionId:             msg.ConnectionID.String(),
		CounterpartyConnectionId: msg.CounterpartyConnectionID.String(),
		Version:                  msg.Version.ToProto(),
		ClientState:              msg.ClientState,
		ProofHeight:              msg.ProofHeight.ToProto(),
		ProofTry:                 msg.ProofTry,
		ProofClient:              msg.ProofClient,
		ProofConsensus:           msg.ProofConsensus,
		ConsensusHeight:          msg.ConsensusHeight.ToProto(),
		Signer:                   msg.Signer.String(),
	}
}

// MsgConnectionOpenConfirm is relayed to chain B with proof that chain A
// opened its end.
type MsgConnectionOpenConfirm struct {
	ConnectionID host.ConnectionID
	ProofAck     commitment.ProofBytes
	ProofHeight  client.Height
	Signer       host.Signer
}

func (MsgConnectionOpenConfirm) TypeURL() string { return TypeURLMsgConnectionOpenConfirm }

// MsgConnectionOpenConfirmFromProto converts a raw message.
func MsgConnectionOpenConfirmFromProto(raw *connectionproto.MsgConnectionOpenConfirm) (MsgConnectionOpenConfirm, error) {
	connectionID, err := host.ParseConnectionID(raw.ConnectionId)
	if err != nil {
		return MsgConnectionOpenConfirm{}, errorsmod.Wrap(ErrInvalidIdentifier, err.Error())
	}
	proofAck, err := newProof(raw.ProofAck)
	if err != nil {
		return MsgConnectionOpenConfirm{}, err
	}
	proofHeight, err := proofHeightFromProto(raw.ProofHeight)
	if err != nil {
		return MsgConnectionOpenConfirm{}, err
	}
	return MsgConnectionOpenConfirm{
		ConnectionID: connectionID,
		ProofAck:     proofAck,
		ProofHeight:  proofHeight,
		Signer:       host.Signer(raw.Signer),
	}, nil
}

func (msg MsgConnectionOpenConfirm) ToProto() *connectionproto.MsgConnectionOpenConfirm {
	return &connectionproto.MsgConnectionOpenConfirm{
		ConnectionId: msg.ConnectionID.String(),
		ProofAck:     msg.ProofAck,
		ProofHeight:  msg.ProofHeight.ToProto(),
		Signer:       msg.Signer.String(),
	}
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
		return client.Height{}, errorsmod.Wrap(ErrMissingProofHeight, err.Error())
	}
	return h, nil
}

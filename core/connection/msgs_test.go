package connection_test

import (
	"testing"
	"time"

	gogotypes "github.com/gogo/protobuf/types"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/host"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
	commitmentproto "github.com/tendermint/ibc/proto/ibc/core/commitment"
	connectionproto "github.com/tendermint/ibc/proto/ibc/core/connection"
)

func rawCounterparty(connectionID string) *connectionproto.Counterparty {
	return &connectionproto.Counterparty{
		ClientId:     "07-tendermint-0",
		ConnectionId: connectionID,
		Prefix:       &commitmentproto.MerklePrefix{KeyPrefix: []byte("ibc")},
	}
}

func rawConfirm() *connectionproto.MsgConnectionOpenConfirm {
	return &connectionproto.MsgConnectionOpenConfirm{
		ConnectionId: "connection-118",
		ProofAck:     []byte{0x1, 0x2},
		ProofHeight:  &clientproto.Height{RevisionNumber: 0, RevisionHeight: 10},
		Signer:       "cosmos1signer",
	}
}

func TestMsgConnectionOpenConfirmFromProto(t *testing.T) {
	testCases := []struct {
		name     string
		malleate func(raw *connectionproto.MsgConnectionOpenConfirm)
		expErr   error
	}{
		{"good parameters", func(*connectionproto.MsgConnectionOpenConfirm) {}, nil},
		{"bad connection id, non-alpha", func(raw *connectionproto.MsgConnectionOpenConfirm) {
			raw.ConnectionId = "con007"
		}, connection.ErrInvalidIdentifier},
		{"bad proof height, height is 0", func(raw *connectionproto.MsgConnectionOpenConfirm) {
			raw.ProofHeight = &clientproto.Height{RevisionNumber: 1, RevisionHeight: 0}
		}, connection.ErrMissingProofHeight},
		{"missing proof height", func(raw *connectionproto.MsgConnectionOpenConfirm) {
			raw.ProofHeight = nil
		}, connection.ErrMissingProofHeight},
		{"empty proof", func(raw *connectionproto.MsgConnectionOpenConfirm) {
			raw.ProofAck = nil
		}, connection.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			raw := rawConfirm()
			tc.malleate(raw)

			msg, err := connection.MsgConnectionOpenConfirmFromProto(raw)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, raw, msg.ToProto())
		})
	}
}

func TestMsgConnectionOpenInitFromProto(t *testing.T) {
	raw := &connectionproto.MsgConnectionOpenInit{
		ClientId:     "07-tendermint-0",
		Counterparty: rawCounterparty(""),
		DelayPeriod:  uint64(10 * time.Second),
		Signer:       "cosmos1signer",
	}

	msg, err := connection.MsgConnectionOpenInitFromProto(raw)
	require.NoError(t, err)
	require.Nil(t, msg.Version)
	require.Equal(t, 10*time.Second, msg.DelayPeriod)
	require.True(t, msg.Counterparty.ConnectionID.IsZero())
	require.Equal(t, raw, msg.ToProto())

	raw.Counterparty = rawCounterparty("connection-1")
	_, err = connection.MsgConnectionOpenInitFromProto(raw)
	require.ErrorIs(t, err, connection.ErrInvalidCounterparty)

	raw.Counterparty = nil
	_, err = connection.MsgConnectionOpenInitFromProto(raw)
	require.ErrorIs(t, err, connection.ErrMissingCounterparty)
}

func TestMsgConnectionOpenTryFromProto(t *testing.T) {
	newRaw := func() *connectionproto.MsgConnectionOpenTry {
		return &connectionproto.MsgConnectionOpenTry{
			ClientId:             "07-tendermint-0",
			ClientState:          &gogotypes.Any{TypeUrl: "/ibc.lightclients.mock.v1.ClientState"},
			Counterparty:         rawCounterparty("connection-0"),
			CounterpartyVersions: []*connectionproto.Version{connection.DefaultVersion().ToProto()},
			ProofHeight:          &clientproto.Height{RevisionHeight: 10},
			ProofInit:            []byte{0x1},
			ProofClient:          []byte{0x2},
			ProofConsensus:       []byte{0x3},
			ConsensusHeight:      &clientproto.Height{RevisionHeight: 5},
			Signer:               "cosmos1signer",
		}
	}

	testCases := []struct {
		name     string
		malleate func(raw *connectionproto.MsgConnectionOpenTry)
		expErr   error
	}{
		{"good parameters", func(*connectionproto.MsgConnectionOpenTry) {}, nil},
		{"previous connection id set", func(raw *connectionproto.MsgConnectionOpenTry) {
			raw.PreviousConnectionId = "connection-1"
		}, connection.ErrInvalidPreviousConnection},
		{"counterparty connection id missing", func(raw *connectionproto.MsgConnectionOpenTry) {
			raw.Counterparty = rawCounterparty("")
		}, connection.ErrInvalidCounterparty},
		{"no versions", func(raw *connectionproto.MsgConnectionOpenTry) {
			raw.CounterpartyVersions = nil
		}, connection.ErrEmptyVersions},
		{"missing client state", func(raw *connectionproto.MsgConnectionOpenTry) {
			raw.ClientState = nil
		}, client.ErrMissingRawClientState},
		{"empty consensus proof", func(raw *connectionproto.MsgConnectionOpenTry) {
			raw.ProofConsensus = []byte{}
		}, connection.ErrInvalidProof},
		{"missing consensus height", func(raw *connectionproto.MsgConnectionOpenTry) {
			raw.ConsensusHeight = nil
		}, connection.ErrMissingConsensusHeight},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			raw := newRaw()
			tc.malleate(raw)

			msg, err := connection.MsgConnectionOpenTryFromProto(raw)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, host.MustParseConnectionID("connection-0"), msg.Counterparty.ConnectionID)
			require.Equal(t, raw, msg.ToProto())
		})
	}
}

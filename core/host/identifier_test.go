package host_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/host"
)

func TestNewClientID(t *testing.T) {
	clientType := host.MustClientType("07-tendermint")

	id, err := host.NewClientID(clientType, 0)
	require.NoError(t, err)
	require.Equal(t, "07-tendermint-0", id.String())
	require.False(t, id.IsZero())

	_, err = host.NewClientType("a")
	require.ErrorIs(t, err, host.ErrInvalidLength)

	require.True(t, host.ClientID{}.IsZero())
}

func TestGeneratedIdentifiers(t *testing.T) {
	conn := host.NewConnectionID(7)
	require.Equal(t, "connection-7", conn.String())
	parsed, err := host.ParseConnectionID(conn.String())
	require.NoError(t, err)
	require.Equal(t, conn, parsed)

	ch := host.NewChannelID(0)
	require.Equal(t, "channel-0", ch.String())
	_, err = host.ParseChannelID(ch.String())
	require.NoError(t, err)

	_, err = host.ParseConnectionID("con007")
	require.ErrorIs(t, err, host.ErrInvalidLength)
}

func TestParseChainID(t *testing.T) {
	testCases := []struct {
		chainID  string
		revision uint64
		expErr   bool
	}{
		{"ibc-0", 0, false},
		{"ibc-1", 1, false},
		{"gaia-mainnet-42", 42, false},
		{"ibc", 0, false},
		{"ibc-", 0, false},
		{"ibc--1", 0, false},
		{"ibc-01", 0, false},
		{"", 0, true},
		{"ibc/1", 0, true},
	}

	for _, tc := range testCases {
		id, err := host.ParseChainID(tc.chainID)
		if tc.expErr {
			require.ErrorIs(t, err, host.ErrInvalidChainID, tc.chainID)
			continue
		}
		require.NoError(t, err, tc.chainID)
		require.Equal(t, tc.revision, id.RevisionNumber(), tc.chainID)
	}
}

func TestPaths(t *testing.T) {
	port := host.MustParsePortID("transfer")
	ch := host.NewChannelID(0)
	client := host.MustParseClientID("07-tendermint-0")

	require.Equal(t, "clients/07-tendermint-0/clientState", host.ClientStatePath{ClientID: client}.String())
	require.Equal(t, "clients/07-tendermint-0/consensusStates/0-10",
		host.ClientConsensusStatePath{ClientID: client, RevisionNumber: 0, RevisionHeight: 10}.String())
	require.Equal(t, "connections/connection-0", host.ConnectionPath{ConnectionID: host.NewConnectionID(0)}.String())
	require.Equal(t, "channelEnds/ports/transfer/channels/channel-0", host.ChannelEndPath{PortID: port, ChannelID: ch}.String())
	require.Equal(t, "nextSequenceSend/ports/transfer/channels/channel-0", host.SeqSendPath{PortID: port, ChannelID: ch}.String())
	require.Equal(t, "commitments/ports/transfer/channels/channel-0/sequences/1",
		host.CommitmentPath{PortID: port, ChannelID: ch, Sequence: 1}.String())
	require.Equal(t, "acks/ports/transfer/channels/channel-0/sequences/1",
		host.AckPath{PortID: port, ChannelID: ch, Sequence: 1}.String())
	require.Equal(t, "receipts/ports/transfer/channels/channel-0/sequences/1",
		host.ReceiptPath{PortID: port, ChannelID: ch, Sequence: 1}.String())
}

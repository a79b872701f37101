package connection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/host"
)

func TestConnectionEndMarshal(t *testing.T) {
	end, err := connection.NewConnectionEnd(
		connection.StateOpen,
		host.MustParseClientID("07-tendermint-0"),
		connection.NewCounterparty(
			host.MustParseClientID("07-tendermint-1"),
			host.MustParseConnectionID("connection-3"),
			commitment.Prefix("ibc"),
		),
		[]connection.Version{connection.DefaultVersion()},
		30*time.Second,
	)
	require.NoError(t, err)
	require.True(t, end.IsOpen())
	require.NoError(t, end.VerifyStateMatches(connection.StateOpen))
	require.ErrorIs(t, end.VerifyStateMatches(connection.StateInit), connection.ErrInvalidConnectionState)

	bz, err := end.Marshal()
	require.NoError(t, err)
	decoded, err := connection.UnmarshalConnectionEnd(bz)
	require.NoError(t, err)
	require.Equal(t, end, decoded)
}

func TestNewConnectionEndVersions(t *testing.T) {
	counterparty := connection.NewCounterparty(
		host.MustParseClientID("07-tendermint-1"),
		host.ConnectionID{},
		commitment.Prefix("ibc"),
	)
	clientID := host.MustParseClientID("07-tendermint-0")
	two := []connection.Version{connection.DefaultVersion(), {Identifier: "2", Features: []string{"ORDER_ORDERED"}}}

	_, err := connection.NewConnectionEnd(connection.StateInit, clientID, counterparty, nil, 0)
	require.ErrorIs(t, err, connection.ErrEmptyVersions)

	_, err = connection.NewConnectionEnd(connection.StateInit, clientID, counterparty, two, 0)
	require.NoError(t, err)

	_, err = connection.NewConnectionEnd(connection.StateTryOpen, clientID, counterparty, two, 0)
	require.ErrorIs(t, err, connection.ErrInvalidVersion)
}

func TestStateFromProto(t *testing.T) {
	s, err := connection.StateFromProto(2)
	require.NoError(t, err)
	require.Equal(t, connection.StateTryOpen, s)
	require.Equal(t, "TRYOPEN", s.String())

	_, err = connection.StateFromProto(4)
	require.ErrorIs(t, err, connection.ErrInvalidConnectionState)
}

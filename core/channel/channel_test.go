package channel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/host"
)

func openChannel() channel.ChannelEnd {
	return channel.NewChannelEnd(
		channel.StateOpen,
		channel.OrderUnordered,
		channel.NewCounterparty(host.MustParsePortID("transfer"), host.MustParseChannelID("channel-1")),
		[]host.ConnectionID{host.MustParseConnectionID("connection-0")},
		channel.Version("ics20-1"),
	)
}

func TestChannelEndMarshal(t *testing.T) {
	end := openChannel()

	bz, err := end.Marshal()
	require.NoError(t, err)
	decoded, err := channel.UnmarshalChannelEnd(bz)
	require.NoError(t, err)
	require.Equal(t, end, decoded)
	require.Equal(t, host.MustParseConnectionID("connection-0"), decoded.ConnectionID())
}

func TestVerifyConnectionHopsLength(t *testing.T) {
	end := openChannel()
	require.NoError(t, end.VerifyConnectionHopsLength())

	end.ConnectionHops = nil
	err := end.VerifyConnectionHopsLength()
	require.ErrorIs(t, err, channel.ErrInvalidConnectionHopsLength)
	var hopsErr channel.InvalidConnectionHopsLengthError
	require.ErrorAs(t, err, &hopsErr)
	require.Equal(t, 0, hopsErr.Actual)

	end.ConnectionHops = []host.ConnectionID{
		host.MustParseConnectionID("connection-0"),
		host.MustParseConnectionID("connection-1"),
	}
	require.ErrorIs(t, end.VerifyConnectionHopsLength(), channel.ErrInvalidConnectionHopsLength)
}

func TestChannelEndChecks(t *testing.T) {
	end := openChannel()

	require.True(t, end.IsOpen())
	require.NoError(t, end.VerifyNotClosed())
	require.ErrorIs(t, end.WithState(channel.StateClosed).VerifyNotClosed(), channel.ErrInvalidChannelState)
	require.ErrorIs(t, end.VerifyStateMatches(channel.StateInit), channel.ErrInvalidChannelState)

	require.NoError(t, end.VerifyCounterpartyMatches(end.Counterparty))
	other := channel.NewCounterparty(host.MustParsePortID("transfer"), host.MustParseChannelID("channel-2"))
	require.ErrorIs(t, end.VerifyCounterpartyMatches(other), channel.ErrInvalidCounterparty)
}

func TestOrderFromProto(t *testing.T) {
	_, err := channel.OrderFromProto(0)
	require.ErrorIs(t, err, channel.ErrInvalidChannelOrdering)

	o, err := channel.OrderFromProto(2)
	require.NoError(t, err)
	require.Equal(t, channel.OrderOrdered, o)
}

func TestVersionEmpty(t *testing.T) {
	require.True(t, channel.Version("").Empty())
	require.True(t, channel.Version("  ").Empty())
	require.False(t, channel.Version("ics20-1").Empty())
}

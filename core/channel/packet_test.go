package channel_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	channelproto "github.com/tendermint/ibc/proto/ibc/core/channel"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

func rawPacket() *channelproto.Packet {
	return &channelproto.Packet{
		Sequence:           1,
		SourcePort:         "transfer",
		SourceChannel:      "channel-0",
		DestinationPort:    "transfer",
		DestinationChannel: "channel-1",
		Data:               []byte("hello"),
		TimeoutHeight:      &clientproto.Height{RevisionNumber: 0, RevisionHeight: 20},
		TimeoutTimestamp:   0,
	}
}

func TestComputePacketCommitment(t *testing.T) {
	commitment := channel.ComputePacketCommitment(
		[]byte("hello"),
		channel.TimeoutHeightAt(client.MustNewHeight(1, 10)),
		timestamp.FromNanoseconds(1000),
	)
	require.Equal(t, "13daf7617222cc9bc64020a0a719e5e91cabba7663b52e90b3df6a0937ebb32d", hex.EncodeToString(commitment))

	ack := channel.ComputeAckCommitment(channel.Acknowledgement("ack"))
	require.Equal(t, "64a37929fb113e18daa6263a1fb1f90c51d262552efa5a50596f5f653ba955f8", hex.EncodeToString(ack))
}

func TestPacketCommitmentBindsTimeout(t *testing.T) {
	data := []byte("data")
	never := channel.ComputePacketCommitment(data, channel.TimeoutHeightNever(), timestamp.FromNanoseconds(1))
	at := channel.ComputePacketCommitment(data, channel.TimeoutHeightAt(client.MustNewHeight(0, 1)), timestamp.FromNanoseconds(1))
	later := channel.ComputePacketCommitment(data, channel.TimeoutHeightNever(), timestamp.FromNanoseconds(2))

	require.NotEqual(t, never, at)
	require.NotEqual(t, never, later)
	require.Equal(t, never, channel.ComputePacketCommitment(data, channel.TimeoutHeightNever(), timestamp.FromNanoseconds(1)))
}

func TestTimeoutHeightHasExpired(t *testing.T) {
	timeout := channel.TimeoutHeightAt(client.MustNewHeight(0, 10))

	require.False(t, timeout.HasExpired(client.MustNewHeight(0, 9)))
	require.True(t, timeout.HasExpired(client.MustNewHeight(0, 10)))
	require.True(t, timeout.HasExpired(client.MustNewHeight(1, 1)))
	require.False(t, channel.TimeoutHeightNever().HasExpired(client.MustNewHeight(100, 100)))

	require.True(t, channel.TimeoutHeightFromProto(nil).IsNever())
	require.True(t, channel.TimeoutHeightFromProto(&clientproto.Height{}).IsNever())
}

func TestTimeoutHeightExpiryProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		timeout := client.MustNewHeight(
			rapid.Uint64Range(0, 5).Draw(t, "timeout_revision").(uint64),
			rapid.Uint64Range(1, 1000).Draw(t, "timeout_height").(uint64),
		)
		chain := client.MustNewHeight(
			rapid.Uint64Range(0, 5).Draw(t, "chain_revision").(uint64),
			rapid.Uint64Range(1, 1000).Draw(t, "chain_height").(uint64),
		)
		if channel.TimeoutHeightAt(timeout).HasExpired(chain) != timeout.LTE(chain) {
			t.Fatalf("timeout %s at chain height %s", timeout, chain)
		}
	})
}

func TestPacketTimedOut(t *testing.T) {
	packet, err := channel.PacketFromProto(rawPacket())
	require.NoError(t, err)

	require.False(t, packet.TimedOut(timestamp.FromNanoseconds(5), client.MustNewHeight(0, 19)))
	require.True(t, packet.TimedOut(timestamp.FromNanoseconds(5), client.MustNewHeight(0, 20)))

	packet.TimeoutHeight = channel.TimeoutHeightNever()
	packet.TimeoutTimestamp = timestamp.FromNanoseconds(100)
	require.False(t, packet.TimedOut(timestamp.FromNanoseconds(100), client.MustNewHeight(0, 50)))
	require.True(t, packet.TimedOut(timestamp.FromNanoseconds(101), client.MustNewHeight(0, 50)))
	require.False(t, packet.TimedOut(timestamp.None(), client.MustNewHeight(0, 50)))
}

func TestPacketFromProto(t *testing.T) {
	testCases := []struct {
		name     string
		malleate func(raw *channelproto.Packet)
		expErr   error
	}{
		{"valid packet", func(*channelproto.Packet) {}, nil},
		{"zero sequence", func(raw *channelproto.Packet) { raw.Sequence = 0 }, channel.ErrZeroPacketSequence},
		{"invalid source channel", func(raw *channelproto.Packet) { raw.SourceChannel = "chan" }, channel.ErrInvalidPacket},
		{"no timeout", func(raw *channelproto.Packet) { raw.TimeoutHeight = nil }, channel.ErrMissingTimeout},
		{"timestamp only", func(raw *channelproto.Packet) {
			raw.TimeoutHeight = nil
			raw.TimeoutTimestamp = 1
		}, nil},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			raw := rawPacket()
			tc.malleate(raw)

			packet, err := channel.PacketFromProto(raw)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, host.MustParseChannelID("channel-1"), packet.DestinationChannel)
		})
	}

	_, err := channel.PacketFromProto(nil)
	require.ErrorIs(t, err, channel.ErrMissingPacket)
}

func TestSequenceIncrement(t *testing.T) {
	require.Equal(t, channel.Sequence(2), channel.Sequence(1).Increment())
	require.Equal(t, ^channel.Sequence(0), (^channel.Sequence(0)).Increment())
}

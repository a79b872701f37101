package relay_test

import (
	"testing"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ibc/apps/echo"
	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/handler"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/internal/chain"
	"github.com/tendermint/ibc/internal/relay"
	"github.com/tendermint/ibc/libs/log"
)

type testPath struct {
	relayer      *relay.Relayer
	echoA, echoB *echo.Module
}

func newChain(t *testing.T, id string, module *echo.Module) *chain.Chain {
	t.Helper()
	logger := log.TestingLogger()
	router := core.NewPortRouter()
	require.NoError(t, router.AddRoute(echo.PortID, module))
	c, err := chain.NewChain(chain.DefaultConfig(host.MustParseChainID(id)), dbm.NewMemDB(), handler.NewHandler(router, logger), logger)
	require.NoError(t, err)
	return c
}

func setupPath(t *testing.T, order channel.Order, delay time.Duration, opts ...echo.Option) testPath {
	t.Helper()
	logger := log.TestingLogger()
	p := testPath{
		echoA: echo.NewModule(logger, opts...),
		echoB: echo.NewModule(logger, opts...),
	}
	a := newChain(t, "chain-a", p.echoA)
	b := newChain(t, "chain-b", p.echoB)
	p.relayer = relay.NewRelayer(a, b, "relayer", logger)
	require.NoError(t, p.relayer.Setup(echo.PortID, echo.PortID, order, echo.Version, delay))
	return p
}

func channelState(t *testing.T, e *relay.Endpoint) channel.ChannelEnd {
	t.Helper()
	var end channel.ChannelEnd
	err := e.Chain.View(func(ctx core.ValidationContext) (err error) {
		end, err = ctx.ChannelEnd(host.ChannelEndPath{PortID: e.PortID, ChannelID: e.ChannelID})
		return err
	})
	require.NoError(t, err)
	return end
}

func requireNoCommitment(t *testing.T, e *relay.Endpoint, packet channel.Packet) {
	t.Helper()
	err := e.Chain.View(func(ctx core.ValidationContext) error {
		_, err := ctx.PacketCommitment(host.CommitmentPath{
			PortID:    packet.SourcePort,
			ChannelID: packet.SourceChannel,
			Sequence:  packet.Sequence.Uint64(),
		})
		return err
	})
	require.True(t, errorsmod.IsOf(err, channel.ErrPacketCommitmentNotFound), "got %v", err)
}

func TestHandshakeOpensBothEnds(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	for _, e := range []*relay.Endpoint{r.A, r.B} {
		end := channelState(t, e)
		require.Equal(t, channel.StateOpen, end.State)
		require.Equal(t, channel.OrderUnordered, end.Ordering)
		require.Equal(t, echo.Version, end.Version)
		require.Equal(t, []host.ConnectionID{e.ConnectionID}, end.ConnectionHops)
	}
	require.Equal(t, r.B.ChannelID, channelState(t, r.A).Counterparty.ChannelID)
	require.Equal(t, r.A.ChannelID, channelState(t, r.B).Counterparty.ChannelID)
}

func TestRelayUnorderedPackets(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	first, err := r.Send(r.A, []byte("ping"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)
	second, err := r.Send(r.A, []byte("pong"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)
	require.Equal(t, first.Sequence+1, second.Sequence)

	// unordered channels accept packets out of order
	for _, packet := range []channel.Packet{second, first} {
		ack, err := r.RelayPacket(packet)
		require.NoError(t, err)
		require.Equal(t, channel.Acknowledgement(packet.Data), ack)
		requireNoCommitment(t, r.A, packet)

		// the receiver keeps its ack commitment after the acknowledgement
		err = r.B.Chain.View(func(ctx core.ValidationContext) error {
			stored, err := ctx.PacketAcknowledgement(host.AckPath{
				PortID:    packet.DestinationPort,
				ChannelID: packet.DestinationChannel,
				Sequence:  packet.Sequence.Uint64(),
			})
			require.Equal(t, channel.ComputeAckCommitment(ack), stored)
			return err
		})
		require.NoError(t, err)
	}

	require.Equal(t, echo.Stats{Received: 2}, p.echoB.Stats())
	require.Equal(t, echo.Stats{Acknowledged: 2}, p.echoA.Stats())

	// a second receive is a no-op that writes no acknowledgement
	ack, err := r.RecvPacket(first)
	require.NoError(t, err)
	require.Nil(t, ack)
	require.Equal(t, 2, p.echoB.Stats().Received)
}

func TestRelayOrderedPackets(t *testing.T) {
	p := setupPath(t, channel.OrderOrdered, 0)
	r := p.relayer

	first, err := r.Send(r.B, []byte("one"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)
	second, err := r.Send(r.B, []byte("two"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)

	_, err = r.RecvPacket(second)
	require.True(t, errorsmod.IsOf(err, channel.ErrPacketSequenceOutOfOrder), "got %v", err)

	for _, packet := range []channel.Packet{first, second} {
		_, err := r.RelayPacket(packet)
		require.NoError(t, err)
	}
	require.Equal(t, echo.Stats{Received: 2}, p.echoA.Stats())
	require.Equal(t, echo.Stats{Acknowledged: 2}, p.echoB.Stats())
}

func TestTimeoutOnHeight(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	timeout := channel.TimeoutHeightAt(r.B.Chain.LatestHeight().Increment())
	packet, err := r.Send(r.A, []byte("late"), timeout, time.Time{})
	require.NoError(t, err)

	_, err = r.RecvPacket(packet)
	require.True(t, errorsmod.IsOf(err, channel.ErrPacketTimeout), "got %v", err)

	require.NoError(t, r.TimeoutPacket(packet, false))
	requireNoCommitment(t, r.A, packet)
	require.Equal(t, echo.Stats{TimedOut: 1}, p.echoA.Stats())
	require.Equal(t, channel.StateOpen, channelState(t, r.A).State)
}

func TestTimeoutClosesOrderedChannel(t *testing.T) {
	p := setupPath(t, channel.OrderOrdered, 0)
	r := p.relayer

	deadline := r.B.Chain.LatestHeight().Increment()
	packet, err := r.Send(r.A, []byte("late"), channel.TimeoutHeightAt(deadline), time.Time{})
	require.NoError(t, err)

	require.NoError(t, r.TimeoutPacket(packet, false))
	require.Equal(t, channel.StateClosed, channelState(t, r.A).State)
	require.Equal(t, echo.Stats{TimedOut: 1}, p.echoA.Stats())
}

func TestTimeoutBeforeDeadlineIsRejected(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	deadline := r.B.Chain.LatestHeight().Add(100)
	packet, err := r.Send(r.A, []byte("early"), channel.TimeoutHeightAt(deadline), time.Time{})
	require.NoError(t, err)

	err = r.TimeoutPacket(packet, false)
	require.True(t, errorsmod.IsOf(err, relay.ErrNotTimedOut), "got %v", err)
}

func TestTimeoutOnClose(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	packet, err := r.Send(r.A, []byte("stranded"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)

	require.NoError(t, r.CloseChannel(r.B))
	require.Equal(t, channel.StateClosed, channelState(t, r.B).State)
	require.Equal(t, channel.StateClosed, channelState(t, r.A).State)

	require.NoError(t, r.TimeoutPacket(packet, true))
	requireNoCommitment(t, r.A, packet)
	require.Equal(t, echo.Stats{TimedOut: 1}, p.echoA.Stats())
}

func TestAsyncAcknowledgement(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0, echo.WithAsyncAcks())
	r := p.relayer

	packet, err := r.Send(r.A, []byte("later"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)

	ack, err := r.RelayPacket(packet)
	require.NoError(t, err)
	require.Nil(t, ack)

	pending := p.echoB.TakePending()
	require.Len(t, pending, 1)
	ack, err = echo.Acknowledge(pending[0])
	require.NoError(t, err)

	_, err = r.B.Chain.WriteAcknowledgement(pending[0], ack)
	require.NoError(t, err)
	_, err = r.B.Chain.WriteAcknowledgement(pending[0], ack)
	require.True(t, errorsmod.IsOf(err, channel.ErrAcknowledgementExists), "got %v", err)

	require.NoError(t, r.AcknowledgePacket(packet, ack))
	requireNoCommitment(t, r.A, packet)
	require.Equal(t, 1, p.echoA.Stats().Acknowledged)
}

func TestDelayPeriod(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 10*time.Second)
	r := p.relayer

	before := r.B.Chain.LatestHeight()
	packet, err := r.Send(r.A, []byte("slow"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)

	_, err = r.RelayPacket(packet)
	require.NoError(t, err)
	// the client update plus the blocks waited out for the delay period
	require.True(t, r.B.Chain.LatestHeight().GT(before.Add(1)))
	require.Equal(t, 1, p.echoA.Stats().Acknowledged)
}

package handler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	errorsmod "cosmossdk.io/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ibc/apps/echo"
	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	ibcerrors "github.com/tendermint/ibc/core/errors"
	"github.com/tendermint/ibc/core/handler"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/mocks"
	"github.com/tendermint/ibc/core/timestamp"
	"github.com/tendermint/ibc/internal/chain"
	"github.com/tendermint/ibc/internal/relay"
	"github.com/tendermint/ibc/libs/log"
)

var mockPort = host.MustParsePortID("mock")

func newChain(t *testing.T, id string, port host.PortID, module core.Module, opts ...handler.HandlerOption) *chain.Chain {
	t.Helper()
	logger := log.TestingLogger()
	router := core.NewPortRouter()
	require.NoError(t, router.AddRoute(port, module))
	c, err := chain.NewChain(chain.DefaultConfig(host.MustParseChainID(id)), dbm.NewMemDB(), handler.NewHandler(router, logger, opts...), logger)
	require.NoError(t, err)
	return c
}

// setup connects an echo module on chain-a to module on chain-b.
func setup(t *testing.T, module core.Module, opts ...handler.HandlerOption) *relay.Relayer {
	t.Helper()
	a := newChain(t, "chain-a", echo.PortID, echo.NewModule(log.TestingLogger()), opts...)
	b := newChain(t, "chain-b", mockPort, module)
	r := relay.NewRelayer(a, b, "relayer", log.TestingLogger())
	require.NoError(t, r.Setup(echo.PortID, mockPort, channel.OrderUnordered, echo.Version, 0))
	return r
}

func openingModule() *mocks.Module {
	m := &mocks.Module{}
	m.On("OnChanOpenTry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, echo.Version).
		Return(echo.Version, nil)
	m.On("OnChanOpenConfirm", mockPort, mock.Anything).Return(nil)
	return m
}

func nextPacket(t *testing.T, r *relay.Relayer) channel.Packet {
	t.Helper()
	var seq channel.Sequence
	err := r.A.Chain.View(func(ctx core.ValidationContext) (err error) {
		seq, err = ctx.NextSequenceSend(host.SeqSendPath{PortID: r.A.PortID, ChannelID: r.A.ChannelID})
		return err
	})
	require.NoError(t, err)
	return channel.Packet{
		Sequence:           seq,
		SourcePort:         r.A.PortID,
		SourceChannel:      r.A.ChannelID,
		DestinationPort:    r.B.PortID,
		DestinationChannel: r.B.ChannelID,
		Data:               []byte("data"),
		TimeoutHeight:      channel.TimeoutHeightAt(client.MustNewHeight(0, 1000)),
	}
}

func TestSendPacket(t *testing.T) {
	r := setup(t, openingModule())
	packet := nextPacket(t, r)

	res, err := r.A.Chain.SendPacket(packet)
	require.NoError(t, err)
	require.Contains(t, res.Events, channel.SendPacketEvent{
		Packet:       packet,
		Ordering:     channel.OrderUnordered,
		ConnectionID: r.A.ConnectionID,
	})

	err = r.A.Chain.View(func(ctx core.ValidationContext) error {
		stored, err := ctx.PacketCommitment(host.CommitmentPath{
			PortID:    packet.SourcePort,
			ChannelID: packet.SourceChannel,
			Sequence:  packet.Sequence.Uint64(),
		})
		require.NoError(t, err)
		assert.Equal(t, channel.ComputePacketCommitment(packet.Data, packet.TimeoutHeight, packet.TimeoutTimestamp), stored)

		next, err := ctx.NextSequenceSend(host.SeqSendPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel})
		require.NoError(t, err)
		assert.Equal(t, packet.Sequence+1, next)
		return nil
	})
	require.NoError(t, err)

	// the sequence was consumed
	_, err = r.A.Chain.SendPacket(packet)
	var seqErr channel.InvalidPacketSequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, packet.Sequence+1, seqErr.Next)

	var ctxErr *ibcerrors.ContextError
	require.ErrorAs(t, err, &ctxErr)
	assert.Equal(t, channel.SubModuleName, ctxErr.Codespace)
}

func TestSendPacketRejectsExpiredTimeouts(t *testing.T) {
	r := setup(t, openingModule())
	clientHeight := r.B.Chain.LatestHeight()

	testCases := []struct {
		name     string
		malleate func(*channel.Packet)
		expErr   *errorsmod.Error
	}{
		{"timeout height at client height", func(p *channel.Packet) {
			p.TimeoutHeight = channel.TimeoutHeightAt(clientHeight)
		}, channel.ErrLowPacketHeight},
		{"timeout timestamp in the past", func(p *channel.Packet) {
			p.TimeoutHeight = channel.TimeoutHeightNever()
			p.TimeoutTimestamp = timestampAt(t, r, -time.Hour)
		}, channel.ErrLowPacketTimestamp},
		{"wrong destination", func(p *channel.Packet) {
			p.DestinationChannel = host.NewChannelID(9)
		}, channel.ErrInvalidCounterparty},
		{"unknown channel", func(p *channel.Packet) {
			p.SourceChannel = host.NewChannelID(9)
		}, channel.ErrChannelNotFound},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			packet := nextPacket(t, r)
			tc.malleate(&packet)

			_, err := r.A.Chain.SendPacket(packet)
			require.Error(t, err)
			assert.True(t, errorsmod.IsOf(err, tc.expErr), "got %v", err)
			// nothing was written
			assert.Equal(t, packet.Sequence, nextPacket(t, r).Sequence)
		})
	}
}

func timestampAt(t *testing.T, r *relay.Relayer, offset time.Duration) timestamp.Timestamp {
	t.Helper()
	header, err := r.B.Chain.LatestHeader()
	require.NoError(t, err)
	return timestamp.FromTime(header.Timestamp.Time().Add(offset))
}

func TestFailedModuleCallbackLeavesNoReceipt(t *testing.T) {
	module := openingModule()
	r := setup(t, module)

	failure := errors.New("module failure")
	module.On("OnRecvPacket", mock.Anything, host.Signer("relayer")).Return(nil, failure).Once()

	packet := nextPacket(t, r)
	_, err := r.A.Chain.SendPacket(packet)
	require.NoError(t, err)

	_, err = r.RecvPacket(packet)
	require.ErrorIs(t, err, failure)

	err = r.B.Chain.View(func(ctx core.ValidationContext) error {
		_, ok, err := ctx.PacketReceipt(host.ReceiptPath{
			PortID:    packet.DestinationPort,
			ChannelID: packet.DestinationChannel,
			Sequence:  packet.Sequence.Uint64(),
		})
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)

	// the packet can still be received once the module accepts it
	module.On("OnRecvPacket", mock.Anything, host.Signer("relayer")).Return(channel.Acknowledgement("ok"), nil).Once()
	ack, err := r.RecvPacket(packet)
	require.NoError(t, err)
	assert.Equal(t, channel.Acknowledgement("ok"), ack)
	module.AssertExpectations(t)
}

type unknownMsg struct{}

func (unknownMsg) TypeURL() string { return "/unknown" }

func TestUnknownMessage(t *testing.T) {
	r := setup(t, openingModule())

	_, err := r.A.Chain.Deliver(unknownMsg{})
	assert.True(t, errorsmod.IsOf(err, ibcerrors.ErrUnknownMessage))

	err = r.A.Chain.ValidateBatch(context.Background(), []core.Msg{unknownMsg{}})
	assert.True(t, errorsmod.IsOf(err, ibcerrors.ErrUnknownMessage))
}

func TestChannelValidationRequiresRoute(t *testing.T) {
	r := setup(t, openingModule())
	unbound := core.NewPortRouter()
	portID, channelID := r.A.PortID, r.A.ChannelID

	testCases := []struct {
		name     string
		validate func(core.ValidationContext) error
	}{
		{"open ack", func(ctx core.ValidationContext) error {
			return handler.ChanOpenAckValidate(ctx, unbound, channel.MsgChannelOpenAck{
				PortID: portID, ChannelID: channelID, CounterpartyChannelID: r.B.ChannelID, Signer: "relayer",
			})
		}},
		{"open confirm", func(ctx core.ValidationContext) error {
			return handler.ChanOpenConfirmValidate(ctx, unbound, channel.MsgChannelOpenConfirm{PortID: portID, ChannelID: channelID, Signer: "relayer"})
		}},
		{"close init", func(ctx core.ValidationContext) error {
			return handler.ChanCloseInitValidate(ctx, unbound, channel.MsgChannelCloseInit{PortID: portID, ChannelID: channelID, Signer: "relayer"})
		}},
		{"close confirm", func(ctx core.ValidationContext) error {
			return handler.ChanCloseConfirmValidate(ctx, unbound, channel.MsgChannelCloseConfirm{PortID: portID, ChannelID: channelID, Signer: "relayer"})
		}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := r.A.Chain.View(tc.validate)
			require.ErrorIs(t, err, core.ErrRouteNotFound)
		})
	}

	// the channel is untouched and still closable through the bound router
	_, err := r.A.Chain.Deliver(channel.MsgChannelCloseInit{PortID: portID, ChannelID: channelID, Signer: "relayer"})
	require.NoError(t, err)
}

func TestPrometheusMetrics(t *testing.T) {
	r := setup(t, openingModule(), handler.WithMetrics(handler.PrometheusMetrics("handlertest")))

	_, err := r.A.Chain.SendPacket(nextPacket(t, r))
	require.NoError(t, err)

	families, err := stdprometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	counts := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counts[family.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, float64(1), counts["handlertest_ibc_handler_packets_sent"])
	// client and handshake messages delivered on chain-a
	assert.Greater(t, counts["handlertest_ibc_handler_messages"], float64(5))
}

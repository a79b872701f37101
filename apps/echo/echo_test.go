package echo

import (
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/libs/log"
)

var (
	testChannel = host.MustParseChannelID("channel-0")
	testPacket  = channel.Packet{
		Sequence:           1,
		SourcePort:         PortID,
		SourceChannel:      testChannel,
		DestinationPort:    PortID,
		DestinationChannel: testChannel,
		Data:               []byte("hello"),
	}
)

func TestVersionNegotiation(t *testing.T) {
	m := NewModule(log.TestingLogger())
	cp := channel.NewCounterparty(PortID, host.ChannelID{})

	version, err := m.OnChanOpenInit(channel.OrderUnordered, nil, PortID, testChannel, cp, "")
	require.NoError(t, err)
	assert.Equal(t, Version, version)

	version, err = m.OnChanOpenInit(channel.OrderUnordered, nil, PortID, testChannel, cp, Version)
	require.NoError(t, err)
	assert.Equal(t, Version, version)

	_, err = m.OnChanOpenInit(channel.OrderUnordered, nil, PortID, testChannel, cp, "ics20-1")
	assert.True(t, errorsmod.IsOf(err, ErrInvalidVersion))

	_, err = m.OnChanOpenTry(channel.OrderOrdered, nil, PortID, testChannel, cp, "")
	assert.True(t, errorsmod.IsOf(err, ErrInvalidVersion))

	assert.NoError(t, m.OnChanOpenAck(PortID, testChannel, Version))
	assert.True(t, errorsmod.IsOf(m.OnChanOpenAck(PortID, testChannel, "echo-2"), ErrInvalidVersion))
}

func TestEchoAcknowledgement(t *testing.T) {
	m := NewModule(log.TestingLogger())

	ack, err := m.OnRecvPacket(testPacket, "relayer")
	require.NoError(t, err)
	assert.Equal(t, channel.Acknowledgement("hello"), ack)

	empty := testPacket
	empty.Data = nil
	_, err = m.OnRecvPacket(empty, "relayer")
	assert.True(t, errorsmod.IsOf(err, ErrEmptyPacket))

	assert.True(t, errorsmod.IsOf(m.OnAcknowledgementPacket(testPacket, channel.Acknowledgement("bye"), "relayer"), ErrUnexpectedAck))
	require.NoError(t, m.OnAcknowledgementPacket(testPacket, ack, "relayer"))
	require.NoError(t, m.OnTimeoutPacket(testPacket, "relayer"))

	assert.Equal(t, Stats{Received: 1, Acknowledged: 1, TimedOut: 1}, m.Stats())
	assert.Empty(t, m.TakePending())
}

func TestAsyncAcks(t *testing.T) {
	m := NewModule(log.TestingLogger(), WithAsyncAcks())

	ack, err := m.OnRecvPacket(testPacket, "relayer")
	require.NoError(t, err)
	assert.Nil(t, ack)

	pending := m.TakePending()
	require.Equal(t, []channel.Packet{testPacket}, pending)
	assert.Empty(t, m.TakePending())

	ack, err = Acknowledge(pending[0])
	require.NoError(t, err)
	assert.Equal(t, channel.Acknowledgement(testPacket.Data), ack)
}

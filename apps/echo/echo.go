// Package echo is an application module that acknowledges every packet with
// its own data. It can defer acknowledgements to exercise asynchronous
// acknowledgement writes.
package echo

import (
	"sync"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/libs/log"
)

// Version is the only channel version the module speaks.
const Version = channel.Version("echo-1")

// ModuleName is the codespace of echo errors.
const ModuleName = "echo"

var (
	ErrInvalidVersion = errorsmod.Register(ModuleName, 2, "invalid echo version")
	ErrEmptyPacket    = errorsmod.Register(ModuleName, 3, "cannot echo an empty packet")
	ErrUnexpectedAck  = errorsmod.Register(ModuleName, 4, "acknowledgement does not echo the packet data")
)

// PortID is the port the module binds by default.
var PortID = host.MustParsePortID("echo")

var _ core.Module = (*Module)(nil)

// Module echoes packet data back as the acknowledgement.
type Module struct {
	mtx    sync.Mutex
	logger log.Logger
	async  bool

	received     []channel.Packet
	pending      []channel.Packet
	acknowledged []channel.Packet
	timedOut     []channel.Packet
}

// Option configures a Module.
type Option func(*Module)

// WithAsyncAcks makes the module defer every acknowledgement. Deferred
// packets are returned by TakePending.
func WithAsyncAcks() Option {
	return func(m *Module) { m.async = true }
}

func NewModule(logger log.Logger, options ...Option) *Module {
	m := &Module{logger: logger.With("module", ModuleName)}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func negotiate(proposed channel.Version) (channel.Version, error) {
	if proposed.Empty() {
		return Version, nil
	}
	if proposed != Version {
		return "", errorsmod.Wrapf(ErrInvalidVersion, "expected %s, got %s", Version, proposed)
	}
	return Version, nil
}

func (m *Module) OnChanOpenInit(
	_ channel.Order,
	_ []host.ConnectionID,
	portID host.PortID,
	channelID host.ChannelID,
	_ channel.Counterparty,
	version channel.Version,
) (channel.Version, error) {
	m.logger.Debug("channel open init", "port", portID, "channel", channelID)
	return negotiate(version)
}

func (m *Module) OnChanOpenTry(
	_ channel.Order,
	_ []host.ConnectionID,
	portID host.PortID,
	channelID host.ChannelID,
	_ channel.Counterparty,
	counterpartyVersion channel.Version,
) (channel.Version, error) {
	m.logger.Debug("channel open try", "port", portID, "channel", channelID)
	if counterpartyVersion != Version {
		return "", errorsmod.Wrapf(ErrInvalidVersion, "counterparty version %s", counterpartyVersion)
	}
	return Version, nil
}

func (m *Module) OnChanOpenAck(portID host.PortID, channelID host.ChannelID, counterpartyVersion channel.Version) error {
	if counterpartyVersion != Version {
		return errorsmod.Wrapf(ErrInvalidVersion, "counterparty version %s", counterpartyVersion)
	}
	m.logger.Info("channel open", "port", portID, "channel", channelID)
	return nil
}

func (m *Module) OnChanOpenConfirm(portID host.PortID, channelID host.ChannelID) error {
	m.logger.Info("channel open", "port", portID, "channel", channelID)
	return nil
}

func (m *Module) OnChanCloseInit(portID host.PortID, channelID host.ChannelID) error {
	m.logger.Info("channel closing", "port", portID, "channel", channelID)
	return nil
}

func (m *Module) OnChanCloseConfirm(portID host.PortID, channelID host.ChannelID) error {
	m.logger.Info("channel closed", "port", portID, "channel", channelID)
	return nil
}

// OnRecvPacket acknowledges packet with its data, or defers the
// acknowledgement when the module is asynchronous.
func (m *Module) OnRecvPacket(packet channel.Packet, _ host.Signer) (channel.Acknowledgement, error) {
	if len(packet.Data) == 0 {
		return nil, ErrEmptyPacket
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.received = append(m.received, packet)
	if m.async {
		m.pending = append(m.pending, packet)
		return nil, nil
	}
	return Acknowledge(packet)
}

func (m *Module) OnAcknowledgementPacket(packet channel.Packet, ack channel.Acknowledgement, _ host.Signer) error {
	if string(ack) != string(packet.Data) {
		return errorsmod.Wrapf(ErrUnexpectedAck, "packet %d", packet.Sequence)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.acknowledged = append(m.acknowledged, packet)
	return nil
}

func (m *Module) OnTimeoutPacket(packet channel.Packet, _ host.Signer) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.logger.Info("packet timed out", "sequence", packet.Sequence, "channel", packet.SourceChannel)
	m.timedOut = append(m.timedOut, packet)
	return nil
}

// Acknowledge returns the acknowledgement the module writes for packet.
func Acknowledge(packet channel.Packet) (channel.Acknowledgement, error) {
	return channel.NewAcknowledgement(packet.Data)
}

// TakePending returns and forgets the packets whose acknowledgement was
// deferred.
func (m *Module) TakePending() []channel.Packet {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	pending := m.pending
	m.pending = nil
	return pending
}

// Stats counts the packets seen by the module.
type Stats struct {
	Received     int
	Acknowledged int
	TimedOut     int
}

func (m *Module) Stats() Stats {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return Stats{
		Received:     len(m.received),
		Acknowledged: len(m.acknowledged),
		TimedOut:     len(m.timedOut),
	}
}

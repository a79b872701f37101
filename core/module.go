package core

import (
	"sync"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/host"
)

// RouterCodespace is the codespace of port routing errors.
const RouterCodespace = "router"

var (
	ErrRouteNotFound     = errorsmod.Register(RouterCodespace, 2, "no module bound to port")
	ErrRouteAlreadyBound = errorsmod.Register(RouterCodespace, 3, "port is already bound to a module")
)

// Module is an application bound to a port. The handlers call it during the
// execute phase of the channel and packet messages, before any state is
// written.
type Module interface {
	// OnChanOpenInit returns the version to store on the new channel end.
	OnChanOpenInit(
		order channel.Order,
		connectionHops []host.ConnectionID,
		portID host.PortID,
		channelID host.ChannelID,
		counterparty channel.Counterparty,
		version channel.Version,
	) (channel.Version, error)
	// OnChanOpenTry returns the version to store on the new channel end.
	OnChanOpenTry(
		order channel.Order,
		connectionHops []host.ConnectionID,
		portID host.PortID,
		channelID host.ChannelID,
		counterparty channel.Counterparty,
		counterpartyVersion channel.Version,
	) (channel.Version, error)
	OnChanOpenAck(portID host.PortID, channelID host.ChannelID, counterpartyVersion channel.Version) error
	OnChanOpenConfirm(portID host.PortID, channelID host.ChannelID) error
	OnChanCloseInit(portID host.PortID, channelID host.ChannelID) error
	OnChanCloseConfirm(portID host.PortID, channelID host.ChannelID) error

	// OnRecvPacket returns the acknowledgement to write. A nil
	// acknowledgement defers the write to WriteAcknowledgement.
	OnRecvPacket(packet channel.Packet, relayer host.Signer) (channel.Acknowledgement, error)
	OnAcknowledgementPacket(packet channel.Packet, ack channel.Acknowledgement, relayer host.Signer) error
	OnTimeoutPacket(packet channel.Packet, relayer host.Signer) error
}

// Router resolves the module bound to a port.
type Router interface {
	Route(portID host.PortID) (Module, error)
}

var _ Router = (*PortRouter)(nil)

// PortRouter is a Router backed by a map. It is safe for concurrent use.
type PortRouter struct {
	mtx     sync.RWMutex
	modules map[host.PortID]Module
}

func NewPortRouter() *PortRouter {
	return &PortRouter{modules: make(map[host.PortID]Module)}
}

// AddRoute binds module to portID. A port can only be bound once.
func (r *PortRouter) AddRoute(portID host.PortID, module Module) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.modules[portID]; ok {
		return errorsmod.Wrapf(ErrRouteAlreadyBound, "port %s", portID)
	}
	r.modules[portID] = module
	return nil
}

func (r *PortRouter) Route(portID host.PortID) (Module, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	module, ok := r.modules[portID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrRouteNotFound, "port %s", portID)
	}
	return module, nil
}

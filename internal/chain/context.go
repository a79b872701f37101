package chain

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"
	gogotypes "github.com/gogo/protobuf/types"
	"github.com/google/orderedcode"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	"github.com/tendermint/ibc/lightclients/mock"
)

var _ core.ExecutionContext = (*execContext)(nil)

// execContext is the view of the chain one message executes against. Reads
// see the writes of the message itself; the chain flushes them only if the
// message succeeds.
type execContext struct {
	chain  *Chain
	store  *txStore
	events []events.Event
	logs   []string
}

func (c *execContext) Codec() client.Codec { return c.chain.codec }

func (c *execContext) HostHeight() (client.Height, error) { return c.chain.pendingHeight(), nil }

func (c *execContext) HostTimestamp() (timestamp.Timestamp, error) {
	return timestamp.FromTime(c.chain.pendingTime()), nil
}

func (c *execContext) CommitmentPrefix() commitment.Prefix { return c.chain.cfg.Prefix }

func (c *execContext) CompatibleVersions() []connection.Version {
	return connection.CompatibleVersions()
}

func (c *execContext) MaxExpectedTimePerBlock() time.Duration {
	return c.chain.cfg.MaxExpectedTimePerBlock
}

// HostConsensusState returns the mock consensus state of a committed block.
func (c *execContext) HostConsensusState(height client.Height) (client.ConsensusState, error) {
	h, err := c.chain.headerAt(height)
	if err != nil {
		return nil, err
	}
	return mock.NewConsensusState(h), nil
}

// ValidateSelfClient accepts an active mock client that has not seen a
// block the host has not committed yet.
func (c *execContext) ValidateSelfClient(cs client.ClientState) error {
	self, ok := cs.(mock.ClientState)
	if !ok {
		return errorsmod.Wrapf(connection.ErrInvalidSelfClient, "client type %s is not supported", cs.ClientType())
	}
	if !self.FrozenHeight.IsZero() {
		return errorsmod.Wrap(connection.ErrInvalidSelfClient, "client is frozen")
	}
	if rev := c.chain.cfg.ChainID.RevisionNumber(); self.LatestHeight().RevisionNumber() != rev {
		return errorsmod.Wrapf(connection.ErrInvalidSelfClient,
			"client revision %d, host revision %d", self.LatestHeight().RevisionNumber(), rev)
	}
	if pending := c.chain.pendingHeight(); self.LatestHeight().GTE(pending) {
		return errorsmod.Wrapf(connection.ErrInvalidSelfClient,
			"client height %s must be lower than host height %s", self.LatestHeight(), pending)
	}
	return nil
}

// clients

func (c *execContext) ClientState(clientID host.ClientID) (client.ClientState, error) {
	bz, err := c.store.get(provableKey(host.ClientStatePath{ClientID: clientID}))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrapf(client.ErrClientNotFound, "client %s", clientID)
	}
	var raw gogotypes.Any
	if err := proto.Unmarshal(bz, &raw); err != nil {
		return nil, err
	}
	return c.chain.codec.DecodeClientState(&raw)
}

func (c *execContext) ConsensusState(path host.ClientConsensusStatePath) (client.ConsensusState, error) {
	bz, err := c.store.get(provableKey(path))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrap(client.ErrConsensusStateNotFound, path.String())
	}
	var raw gogotypes.Any
	if err := proto.Unmarshal(bz, &raw); err != nil {
		return nil, err
	}
	return c.chain.codec.DecodeConsensusState(&raw)
}

func (c *execContext) ClientUpdateMeta(clientID host.ClientID, height client.Height) (timestamp.Timestamp, client.Height, error) {
	bz, err := c.store.get(updateMetaKey(clientID, height))
	if err != nil {
		return timestamp.None(), client.ZeroHeight(), err
	}
	if bz == nil {
		return timestamp.None(), client.ZeroHeight(),
			errorsmod.Wrapf(client.ErrUpdateMetaNotFound, "client %s at %s", clientID, height)
	}
	var ts, rn, rh uint64
	if _, err := orderedcode.Parse(string(bz), &ts, &rn, &rh); err != nil {
		return timestamp.None(), client.ZeroHeight(), err
	}
	hostHeight, err := client.NewHeight(rn, rh)
	if err != nil {
		return timestamp.None(), client.ZeroHeight(), err
	}
	return timestamp.FromNanoseconds(ts), hostHeight, nil
}

func (c *execContext) ClientCounter() (uint64, error) { return c.counter(counterClients) }

func (c *execContext) StoreClientState(path host.ClientStatePath, cs client.ClientState) error {
	return c.setAny(path, cs)
}

func (c *execContext) StoreConsensusState(path host.ClientConsensusStatePath, cs client.ConsensusState) error {
	return c.setAny(path, cs)
}

func (c *execContext) StoreUpdateMeta(
	clientID host.ClientID,
	height client.Height,
	hostTimestamp timestamp.Timestamp,
	hostHeight client.Height,
) error {
	bz, err := orderedcode.Append(nil, hostTimestamp.Nanoseconds(), hostHeight.RevisionNumber(), hostHeight.RevisionHeight())
	if err != nil {
		return err
	}
	c.store.set(updateMetaKey(clientID, height), bz)
	return nil
}

func (c *execContext) IncreaseClientCounter() error { return c.increment(counterClients) }

// connections

func (c *execContext) ConnectionEnd(connectionID host.ConnectionID) (connection.ConnectionEnd, error) {
	bz, err := c.store.get(provableKey(host.ConnectionPath{ConnectionID: connectionID}))
	if err != nil {
		return connection.ConnectionEnd{}, err
	}
	if bz == nil {
		return connection.ConnectionEnd{}, errorsmod.Wrapf(connection.ErrConnectionNotFound, "connection %s", connectionID)
	}
	return connection.UnmarshalConnectionEnd(bz)
}

func (c *execContext) ConnectionCounter() (uint64, error) { return c.counter(counterConnections) }

func (c *execContext) StoreConnection(path host.ConnectionPath, end connection.ConnectionEnd) error {
	bz, err := end.Marshal()
	if err != nil {
		return err
	}
	c.store.set(provableKey(path), bz)
	return nil
}

func (c *execContext) StoreConnectionToClient(path host.ClientConnectionPath, connectionID host.ConnectionID) error {
	c.store.set(provableKey(path), []byte(connectionID.String()))
	return nil
}

func (c *execContext) IncreaseConnectionCounter() error { return c.increment(counterConnections) }

// channels

func (c *execContext) ChannelEnd(path host.ChannelEndPath) (channel.ChannelEnd, error) {
	bz, err := c.store.get(provableKey(path))
	if err != nil {
		return channel.ChannelEnd{}, err
	}
	if bz == nil {
		return channel.ChannelEnd{}, errorsmod.Wrapf(channel.ErrChannelNotFound, "port %s, channel %s", path.PortID, path.ChannelID)
	}
	return channel.UnmarshalChannelEnd(bz)
}

func (c *execContext) ChannelCounter() (uint64, error) { return c.counter(counterChannels) }

func (c *execContext) StoreChannel(path host.ChannelEndPath, end channel.ChannelEnd) error {
	bz, err := end.Marshal()
	if err != nil {
		return err
	}
	c.store.set(provableKey(path), bz)
	return nil
}

func (c *execContext) IncreaseChannelCounter() error { return c.increment(counterChannels) }

func (c *execContext) NextSequenceSend(path host.SeqSendPath) (channel.Sequence, error) {
	return c.sequence(path, channel.ErrSequenceSendNotFound)
}

func (c *execContext) NextSequenceRecv(path host.SeqRecvPath) (channel.Sequence, error) {
	return c.sequence(path, channel.ErrSequenceReceiveNotFound)
}

func (c *execContext) NextSequenceAck(path host.SeqAckPath) (channel.Sequence, error) {
	return c.sequence(path, channel.ErrSequenceAckNotFound)
}

func (c *execContext) StoreNextSequenceSend(path host.SeqSendPath, seq channel.Sequence) error {
	c.store.set(provableKey(path), seq.Bytes())
	return nil
}

func (c *execContext) StoreNextSequenceRecv(path host.SeqRecvPath, seq channel.Sequence) error {
	c.store.set(provableKey(path), seq.Bytes())
	return nil
}

func (c *execContext) StoreNextSequenceAck(path host.SeqAckPath, seq channel.Sequence) error {
	c.store.set(provableKey(path), seq.Bytes())
	return nil
}

// packets

func (c *execContext) PacketCommitment(path host.CommitmentPath) (channel.PacketCommitment, error) {
	bz, err := c.store.get(provableKey(path))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrap(channel.ErrPacketCommitmentNotFound, path.String())
	}
	return channel.PacketCommitment(bz), nil
}

func (c *execContext) PacketReceipt(path host.ReceiptPath) (channel.Receipt, bool, error) {
	bz, err := c.store.get(provableKey(path))
	if err != nil || len(bz) == 0 {
		return 0, false, err
	}
	return channel.Receipt(bz[0]), true, nil
}

func (c *execContext) PacketAcknowledgement(path host.AckPath) (channel.AcknowledgementCommitment, error) {
	bz, err := c.store.get(provableKey(path))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrap(channel.ErrPacketCommitmentNotFound, path.String())
	}
	return channel.AcknowledgementCommitment(bz), nil
}

func (c *execContext) StorePacketCommitment(path host.CommitmentPath, commitment channel.PacketCommitment) error {
	c.store.set(provableKey(path), commitment)
	return nil
}

func (c *execContext) DeletePacketCommitment(path host.CommitmentPath) error {
	c.store.delete(provableKey(path))
	return nil
}

func (c *execContext) StorePacketReceipt(path host.ReceiptPath, receipt channel.Receipt) error {
	c.store.set(provableKey(path), receipt.Bytes())
	return nil
}

func (c *execContext) StorePacketAcknowledgement(path host.AckPath, commitment channel.AcknowledgementCommitment) error {
	c.store.set(provableKey(path), commitment)
	return nil
}

func (c *execContext) EmitIBCEvent(event events.Event) error {
	c.events = append(c.events, event)
	return nil
}

func (c *execContext) LogMessage(msg string) error {
	c.logs = append(c.logs, msg)
	return nil
}

func (c *execContext) setAny(path host.Path, state interface {
	ToAny() (*gogotypes.Any, error)
}) error {
	raw, err := state.ToAny()
	if err != nil {
		return err
	}
	bz, err := proto.Marshal(raw)
	if err != nil {
		return err
	}
	c.store.set(provableKey(path), bz)
	return nil
}

func (c *execContext) sequence(path host.Path, notFound error) (channel.Sequence, error) {
	bz, err := c.store.get(provableKey(path))
	if err != nil {
		return 0, err
	}
	if len(bz) != 8 {
		return 0, errorsmod.Wrap(notFound, path.String())
	}
	return channel.SequenceFromBytes(bz), nil
}

func (c *execContext) counter(name string) (uint64, error) {
	bz, err := c.store.get(counterKey(name))
	if err != nil || bz == nil {
		return 0, err
	}
	var n uint64
	if _, err := orderedcode.Parse(string(bz), &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *execContext) increment(name string) error {
	n, err := c.counter(name)
	if err != nil {
		return err
	}
	bz, err := orderedcode.Append(nil, n+1)
	if err != nil {
		return err
	}
	c.store.set(counterKey(name), bz)
	return nil
}

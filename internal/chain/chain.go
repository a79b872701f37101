// Package chain implements an in-memory IBC host. A Chain executes IBC
// messages against a tm-db database, commits blocks whose root is the
// Merkle root of the provable store, and serves proofs of any committed
// height. Counterparties track a Chain with the mock light client.
package chain

import (
	"context"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/handler"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	"github.com/tendermint/ibc/libs/log"
	"github.com/tendermint/ibc/lightclients"
	"github.com/tendermint/ibc/lightclients/mock"
	mockproto "github.com/tendermint/ibc/proto/ibc/lightclients/mock"
)

// Config is the static configuration of a chain.
type Config struct {
	ChainID                 host.ChainID
	Prefix                  commitment.Prefix
	BlockTime               time.Duration
	MaxExpectedTimePerBlock time.Duration
	GenesisTime             time.Time
}

// DefaultConfig returns a chain with 5 second blocks committing under the
// "ibc" prefix.
func DefaultConfig(chainID host.ChainID) Config {
	return Config{
		ChainID:                 chainID,
		Prefix:                  commitment.Prefix("ibc"),
		BlockTime:               5 * time.Second,
		MaxExpectedTimePerBlock: 10 * time.Second,
		GenesisTime:             time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Validate checks the config.
func (cfg Config) Validate() error {
	switch {
	case cfg.ChainID.String() == "":
		return errorsmod.Wrap(ErrInvalidConfig, "chain id cannot be empty")
	case cfg.Prefix.Empty():
		return errorsmod.Wrap(ErrInvalidConfig, "commitment prefix cannot be empty")
	case cfg.BlockTime <= 0:
		return errorsmod.Wrap(ErrInvalidConfig, "block time must be positive")
	case cfg.MaxExpectedTimePerBlock < 0:
		return errorsmod.Wrap(ErrInvalidConfig, "max expected time per block cannot be negative")
	case cfg.GenesisTime.UnixNano() <= 0:
		return errorsmod.Wrap(ErrInvalidConfig, "genesis time must be after the Unix epoch")
	}
	return nil
}

// Result is the outcome of a delivered message.
type Result struct {
	Events []events.Event
	Log    []string
}

// snapshot is the provable store as of a committed block.
type snapshot struct {
	tree   *commitment.Tree
	values map[string][]byte
}

// Chain is a single IBC host. It is safe for concurrent use; messages are
// executed one at a time.
type Chain struct {
	mtx sync.RWMutex

	cfg     Config
	db      dbm.DB
	codec   client.Codec
	handler *handler.Handler
	logger  log.Logger

	// last committed block
	height uint64
	time   time.Time

	snapshots map[uint64]snapshot
	events    []events.Event
}

// NewChain returns a chain with no committed blocks. Messages delivered
// before the first Commit execute in block 1. The database must be empty.
func NewChain(cfg Config, db dbm.DB, h *handler.Handler, logger log.Logger) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	it, err := db.Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	if it.Valid() {
		return nil, errorsmod.Wrapf(ErrInvalidConfig, "database of chain %s is not empty", cfg.ChainID)
	}
	return &Chain{
		cfg:       cfg,
		db:        db,
		codec:     lightclients.Codec{},
		handler:   h,
		logger:    logger.With("chain", cfg.ChainID.String()),
		time:      cfg.GenesisTime,
		snapshots: make(map[uint64]snapshot),
	}, nil
}

func (c *Chain) ID() host.ChainID                       { return c.cfg.ChainID }
func (c *Chain) Prefix() commitment.Prefix              { return c.cfg.Prefix }
func (c *Chain) BlockTime() time.Duration               { return c.cfg.BlockTime }
func (c *Chain) MaxExpectedTimePerBlock() time.Duration { return c.cfg.MaxExpectedTimePerBlock }

func (c *Chain) pendingHeight() client.Height {
	return client.MustNewHeight(c.cfg.ChainID.RevisionNumber(), c.height+1)
}

func (c *Chain) pendingTime() time.Time { return c.time.Add(c.cfg.BlockTime) }

func (c *Chain) newContext() *execContext {
	return &execContext{chain: c, store: newTxStore(c.db)}
}

// Deliver validates and executes msg in the pending block. The writes of a
// failed message are discarded.
func (c *Chain) Deliver(msg core.Msg) (Result, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.apply(func(ctx *execContext) error {
		return c.handler.Deliver(ctx, msg)
	})
}

// SendPacket commits a packet on behalf of an application.
func (c *Chain) SendPacket(packet channel.Packet) (Result, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.apply(func(ctx *execContext) error {
		return c.handler.SendPacket(ctx, packet)
	})
}

// WriteAcknowledgement writes the acknowledgement of a packet whose module
// deferred it on receive.
func (c *Chain) WriteAcknowledgement(packet channel.Packet, ack channel.Acknowledgement) (Result, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.apply(func(ctx *execContext) error {
		return handler.WriteAcknowledgement(ctx, packet, ack)
	})
}

func (c *Chain) apply(fn func(*execContext) error) (Result, error) {
	ctx := c.newContext()
	if err := fn(ctx); err != nil {
		return Result{}, err
	}
	if err := ctx.store.flush(); err != nil {
		return Result{}, err
	}
	for _, line := range ctx.logs {
		c.logger.Info(line, "height", c.pendingHeight())
	}
	c.events = append(c.events, ctx.events...)
	return Result{Events: ctx.events, Log: ctx.logs}, nil
}

// ValidateBatch validates msgs concurrently against the current state
// without executing any of them.
func (c *Chain) ValidateBatch(ctx context.Context, msgs []core.Msg) error {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return c.handler.ValidateBatch(ctx, c.newContext(), msgs)
}

// View calls fn with a read-only view of the current state.
func (c *Chain) View(fn func(core.ValidationContext) error) error {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return fn(c.newContext())
}

// Commit closes the pending block: it snapshots the provable store into a
// Merkle tree and records the header of the block.
func (c *Chain) Commit() (mock.Header, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	snap, err := c.snapshot()
	if err != nil {
		return mock.Header{}, err
	}
	header := mock.Header{
		Height:    c.pendingHeight(),
		Timestamp: timestamp.FromTime(c.pendingTime()),
		Root:      snap.tree.Root(),
	}
	bz, err := proto.Marshal(header.ToProto())
	if err != nil {
		return mock.Header{}, err
	}
	if err := c.db.SetSync(blockKey(header.Height.RevisionHeight()), bz); err != nil {
		return mock.Header{}, err
	}

	c.height = header.Height.RevisionHeight()
	c.time = c.pendingTime()
	c.snapshots[c.height] = snap
	c.logger.Debug("committed block", "height", header.Height, "root", snap.tree, "keys", snap.tree.Size())
	return header, nil
}

func (c *Chain) snapshot() (snapshot, error) {
	it, err := dbm.IteratePrefix(c.db, provablePrefix())
	if err != nil {
		return snapshot{}, err
	}
	defer it.Close()

	values := make(map[string][]byte)
	for ; it.Valid(); it.Next() {
		path, err := decodeProvableKey(it.Key())
		if err != nil {
			return snapshot{}, err
		}
		values[string(commitment.ApplyPrefix(c.cfg.Prefix, path))] = append([]byte(nil), it.Value()...)
	}
	if err := it.Error(); err != nil {
		return snapshot{}, err
	}
	return snapshot{tree: commitment.NewTree(values), values: values}, nil
}

// LatestHeight returns the height of the last committed block, or the zero
// height before the first commit.
func (c *Chain) LatestHeight() client.Height {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	if c.height == 0 {
		return client.ZeroHeight()
	}
	return client.MustNewHeight(c.cfg.ChainID.RevisionNumber(), c.height)
}

// LatestHeader returns the header of the last committed block.
func (c *Chain) LatestHeader() (mock.Header, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	if c.height == 0 {
		return mock.Header{}, errorsmod.Wrap(ErrBlockNotFound, "no block committed")
	}
	return c.headerAt(client.MustNewHeight(c.cfg.ChainID.RevisionNumber(), c.height))
}

// HeaderAt returns the header of a committed block.
func (c *Chain) HeaderAt(height client.Height) (mock.Header, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return c.headerAt(height)
}

func (c *Chain) headerAt(height client.Height) (mock.Header, error) {
	if height.RevisionNumber() != c.cfg.ChainID.RevisionNumber() || height.RevisionHeight() > c.height {
		return mock.Header{}, errorsmod.Wrapf(ErrBlockNotFound, "height %s", height)
	}
	bz, err := c.db.Get(blockKey(height.RevisionHeight()))
	if err != nil {
		return mock.Header{}, err
	}
	if bz == nil {
		return mock.Header{}, errorsmod.Wrapf(ErrBlockNotFound, "height %s", height)
	}
	var raw mockproto.Header
	if err := proto.Unmarshal(bz, &raw); err != nil {
		return mock.Header{}, err
	}
	return mock.HeaderFromProto(&raw)
}

// QueryProof returns the value committed at path in the block at height,
// with a proof of membership, or a nil value with a proof of
// non-membership.
func (c *Chain) QueryProof(path host.Path, height client.Height) ([]byte, commitment.ProofBytes, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	snap, ok := c.snapshots[height.RevisionHeight()]
	if !ok || height.RevisionNumber() != c.cfg.ChainID.RevisionNumber() {
		return nil, nil, errorsmod.Wrapf(ErrBlockNotFound, "height %s", height)
	}
	key := commitment.ApplyPrefix(c.cfg.Prefix, path)
	proof, err := snap.tree.Prove(key)
	if err != nil {
		return nil, nil, err
	}
	return snap.values[string(key)], proof, nil
}

// Events returns every event emitted so far.
func (c *Chain) Events() []events.Event {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return append([]events.Event(nil), c.events...)
}

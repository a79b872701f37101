package chain_test

import (
	"context"
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/handler"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/internal/chain"
	"github.com/tendermint/ibc/libs/log"
	"github.com/tendermint/ibc/lightclients/mock"
)

func newChain(t *testing.T, id string) *chain.Chain {
	t.Helper()
	logger := log.TestingLogger()
	h := handler.NewHandler(core.NewPortRouter(), logger)
	c, err := chain.NewChain(chain.DefaultConfig(host.MustParseChainID(id)), dbm.NewMemDB(), h, logger)
	require.NoError(t, err)
	return c
}

func createClientMsg(t *testing.T, header mock.Header) client.MsgCreateClient {
	t.Helper()
	cs, err := mock.NewClientState(header).ToAny()
	require.NoError(t, err)
	cons, err := mock.NewConsensusState(header).ToAny()
	require.NoError(t, err)
	return client.MsgCreateClient{ClientState: cs, ConsensusState: cons, Signer: "relayer"}
}

func TestConfigValidate(t *testing.T) {
	cfg := chain.DefaultConfig(host.MustParseChainID("chain-a"))
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.BlockTime = 0
	require.True(t, errorsmod.IsOf(bad.Validate(), chain.ErrInvalidConfig))

	bad = cfg
	bad.Prefix = nil
	require.True(t, errorsmod.IsOf(bad.Validate(), chain.ErrInvalidConfig))
}

func TestCommitAdvancesHeightAndTime(t *testing.T) {
	c := newChain(t, "chain-a")
	require.True(t, c.LatestHeight().IsZero())
	_, err := c.LatestHeader()
	require.True(t, errorsmod.IsOf(err, chain.ErrBlockNotFound))

	first, err := c.Commit()
	require.NoError(t, err)
	second, err := c.Commit()
	require.NoError(t, err)

	require.Equal(t, client.MustNewHeight(0, 1), first.Height)
	require.Equal(t, client.MustNewHeight(0, 2), second.Height)
	require.Equal(t, first.Timestamp.Add(c.BlockTime()), second.Timestamp)

	latest, err := c.LatestHeader()
	require.NoError(t, err)
	require.Equal(t, second, latest)

	_, err = c.HeaderAt(client.MustNewHeight(0, 3))
	require.True(t, errorsmod.IsOf(err, chain.ErrBlockNotFound))
	_, err = c.HeaderAt(client.MustNewHeight(1, 1))
	require.True(t, errorsmod.IsOf(err, chain.ErrBlockNotFound))
}

func TestDeliverCommitsProvableState(t *testing.T) {
	a, b := newChain(t, "chain-a"), newChain(t, "chain-b")
	header, err := b.Commit()
	require.NoError(t, err)

	res, err := a.Deliver(createClientMsg(t, header))
	require.NoError(t, err)
	require.NotEmpty(t, res.Events)
	require.Equal(t, []string{"success: generated client id 9999-mock-0"}, res.Log)

	clientID := host.MustParseClientID("9999-mock-0")
	committed, err := a.Commit()
	require.NoError(t, err)

	path := host.ClientStatePath{ClientID: clientID}
	value, proof, err := a.QueryProof(path, committed.Height)
	require.NoError(t, err)
	require.NotNil(t, value)
	require.NoError(t, commitment.VerifyMembership(committed.Root, proof, commitment.ApplyPrefix(a.Prefix(), path), value))

	missing := host.ConnectionPath{ConnectionID: host.NewConnectionID(0)}
	value, proof, err = a.QueryProof(missing, committed.Height)
	require.NoError(t, err)
	require.Nil(t, value)
	require.NoError(t, commitment.VerifyNonMembership(committed.Root, proof, commitment.ApplyPrefix(a.Prefix(), missing)))

	err = a.View(func(ctx core.ValidationContext) error {
		cs, err := ctx.ClientState(clientID)
		require.NoError(t, err)
		require.Equal(t, header.Height, cs.LatestHeight())

		meta, metaHeight, err := ctx.ClientUpdateMeta(clientID, header.Height)
		require.NoError(t, err)
		require.True(t, meta.IsSet())
		require.Equal(t, client.MustNewHeight(0, 1), metaHeight)

		counter, err := ctx.ClientCounter()
		require.NoError(t, err)
		require.Equal(t, uint64(1), counter)
		return nil
	})
	require.NoError(t, err)
}

func TestFailedMessageLeavesNoState(t *testing.T) {
	a := newChain(t, "chain-a")

	msg := connection.MsgConnectionOpenInit{
		ClientID:     host.MustParseClientID("9999-mock-0"),
		Counterparty: connection.NewCounterparty(host.MustParseClientID("9999-mock-0"), host.ConnectionID{}, commitment.Prefix("ibc")),
		Signer:       "relayer",
	}
	_, err := a.Deliver(msg)
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, client.ErrClientNotFound))

	err = a.View(func(ctx core.ValidationContext) error {
		counter, err := ctx.ConnectionCounter()
		require.NoError(t, err)
		require.Zero(t, counter)
		return nil
	})
	require.NoError(t, err)
	require.Empty(t, a.Events())
}

func TestValidateBatch(t *testing.T) {
	a, b := newChain(t, "chain-a"), newChain(t, "chain-b")
	header, err := b.Commit()
	require.NoError(t, err)

	good := createClientMsg(t, header)
	require.NoError(t, a.ValidateBatch(context.Background(), []core.Msg{good, good}))

	bad := good
	bad.ConsensusState = nil
	err = a.ValidateBatch(context.Background(), []core.Msg{good, bad})
	require.Error(t, err)

	// validation never writes
	_, err = a.Commit()
	require.NoError(t, err)
	err = a.View(func(ctx core.ValidationContext) error {
		counter, err := ctx.ClientCounter()
		require.NoError(t, err)
		require.Zero(t, counter)
		return nil
	})
	require.NoError(t, err)
}

func TestValidateSelfClient(t *testing.T) {
	a := newChain(t, "chain-a")
	committed, err := a.Commit()
	require.NoError(t, err)

	err = a.View(func(ctx core.ValidationContext) error {
		require.NoError(t, ctx.ValidateSelfClient(mock.NewClientState(committed)))

		future := committed
		future.Height = client.MustNewHeight(0, 5)
		require.True(t, errorsmod.IsOf(ctx.ValidateSelfClient(mock.NewClientState(future)), connection.ErrInvalidSelfClient))

		frozen := mock.NewClientState(committed)
		frozen.FrozenHeight = committed.Height
		require.True(t, errorsmod.IsOf(ctx.ValidateSelfClient(frozen), connection.ErrInvalidSelfClient))

		cons, err := ctx.HostConsensusState(committed.Height)
		require.NoError(t, err)
		require.Equal(t, mock.NewConsensusState(committed), cons)
		return nil
	})
	require.NoError(t, err)
}

func TestNewChainRequiresEmptyDB(t *testing.T) {
	db := dbm.NewMemDB()
	require.NoError(t, db.Set([]byte("stale"), []byte{1}))

	logger := log.TestingLogger()
	_, err := chain.NewChain(chain.DefaultConfig(host.MustParseChainID("chain-a")), db, handler.NewHandler(core.NewPortRouter(), logger), logger)
	require.True(t, errorsmod.IsOf(err, chain.ErrInvalidConfig))
}

package mock_test

import (
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	"github.com/tendermint/ibc/lightclients/mock"
)

var clientID = host.MustParseClientID("9999-mock-0")

type memContext struct {
	clients   map[host.ClientID]client.ClientState
	consensus map[host.ClientConsensusStatePath]client.ConsensusState
}

func newMemContext() *memContext {
	return &memContext{
		clients:   make(map[host.ClientID]client.ClientState),
		consensus: make(map[host.ClientConsensusStatePath]client.ConsensusState),
	}
}

func (c *memContext) ClientState(id host.ClientID) (client.ClientState, error) {
	cs, ok := c.clients[id]
	if !ok {
		return nil, client.ErrClientNotFound
	}
	return cs, nil
}

func (c *memContext) ConsensusState(path host.ClientConsensusStatePath) (client.ConsensusState, error) {
	cs, ok := c.consensus[path]
	if !ok {
		return nil, client.ErrConsensusStateNotFound
	}
	return cs, nil
}

func (c *memContext) ClientUpdateMeta(host.ClientID, client.Height) (timestamp.Timestamp, client.Height, error) {
	return timestamp.None(), client.ZeroHeight(), client.ErrUpdateMetaNotFound
}

func (c *memContext) HostHeight() (client.Height, error)          { return client.MustNewHeight(0, 1), nil }
func (c *memContext) HostTimestamp() (timestamp.Timestamp, error) { return timestamp.FromNanoseconds(1), nil }
func (c *memContext) Codec() client.Codec                         { return nil }

func (c *memContext) StoreClientState(path host.ClientStatePath, cs client.ClientState) error {
	c.clients[path.ClientID] = cs
	return nil
}

func (c *memContext) StoreConsensusState(path host.ClientConsensusStatePath, cs client.ConsensusState) error {
	c.consensus[path] = cs
	return nil
}

func (c *memContext) StoreUpdateMeta(host.ClientID, client.Height, timestamp.Timestamp, client.Height) error {
	return nil
}

func header(h uint64, root string) mock.Header {
	return mock.Header{
		Height:    client.MustNewHeight(0, h),
		Timestamp: timestamp.FromNanoseconds(h * 1000),
		Root:      commitment.Root(root),
	}
}

func TestMockClientLifecycle(t *testing.T) {
	ctx := newMemContext()
	cs := mock.NewClientState(header(1, "r1"))
	require.NoError(t, cs.Validate())
	require.NoError(t, cs.Initialise(ctx, clientID, mock.NewConsensusState(cs.Header)))

	status, err := cs.Status(ctx, clientID)
	require.NoError(t, err)
	require.Equal(t, client.Active, status)

	next := header(3, "r3")
	require.NoError(t, cs.VerifyClientMessage(ctx, clientID, next))
	misbehaving, err := cs.CheckForMisbehaviour(ctx, clientID, next)
	require.NoError(t, err)
	require.False(t, misbehaving)

	heights, err := cs.UpdateState(ctx, clientID, next)
	require.NoError(t, err)
	require.Equal(t, []client.Height{next.Height}, heights)

	stored, err := ctx.ClientState(clientID)
	require.NoError(t, err)
	require.Equal(t, next.Height, stored.LatestHeight())

	// an older header is stored without moving the latest height back
	_, err = stored.UpdateState(ctx, clientID, header(2, "r2"))
	require.NoError(t, err)
	stored, err = ctx.ClientState(clientID)
	require.NoError(t, err)
	require.Equal(t, next.Height, stored.LatestHeight())

	conflict := header(3, "other")
	misbehaving, err = stored.CheckForMisbehaviour(ctx, clientID, conflict)
	require.NoError(t, err)
	require.True(t, misbehaving)

	require.NoError(t, stored.UpdateStateOnMisbehaviour(ctx, clientID, conflict))
	frozen, err := ctx.ClientState(clientID)
	require.NoError(t, err)
	status, err = frozen.Status(ctx, clientID)
	require.NoError(t, err)
	require.Equal(t, client.Frozen, status)
}

func TestMockClientRejects(t *testing.T) {
	ctx := newMemContext()
	require.True(t, errorsmod.IsOf(mock.ClientState{}.Validate(), client.ErrInvalidClientState))

	cs := mock.NewClientState(header(1, "r1"))
	unset := mock.Header{Height: client.MustNewHeight(0, 2), Root: commitment.Root("r")}
	require.True(t, errorsmod.IsOf(cs.VerifyClientMessage(ctx, clientID, unset), client.ErrInvalidClientMessage))

	require.True(t, errorsmod.IsOf(cs.Initialise(ctx, clientID, nil), client.ErrInvalidConsensusState))
}

func TestMockClientVerifyMembership(t *testing.T) {
	prefix := commitment.Prefix("ibc")
	path := host.ChannelEndPath{PortID: host.MustParsePortID("transfer"), ChannelID: host.NewChannelID(0)}
	missing := host.ChannelEndPath{PortID: host.MustParsePortID("transfer"), ChannelID: host.NewChannelID(1)}
	key := commitment.ApplyPrefix(prefix, path)

	tree := commitment.NewTree(map[string][]byte{string(key): []byte("channel")})
	root := tree.Root()
	cs := mock.NewClientState(mock.Header{Height: client.MustNewHeight(0, 1), Timestamp: timestamp.FromNanoseconds(1), Root: root})

	proof, err := tree.Prove(key)
	require.NoError(t, err)
	require.NoError(t, cs.VerifyMembership(prefix, proof, root, path, []byte("channel")))

	err = cs.VerifyMembership(prefix, proof, root, path, []byte("other"))
	require.True(t, errorsmod.IsOf(err, client.ErrFailedMembershipVerification))

	absent, err := tree.Prove(commitment.ApplyPrefix(prefix, missing))
	require.NoError(t, err)
	require.NoError(t, cs.VerifyNonMembership(prefix, absent, root, missing))

	err = cs.VerifyNonMembership(prefix, proof, root, path)
	require.True(t, errorsmod.IsOf(err, client.ErrFailedNonMembershipVerification))
}

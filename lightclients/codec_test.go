package lightclients_test

import (
	"testing"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/tmhash"
	gogotypes "github.com/gogo/protobuf/types"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/core/timestamp"
	"github.com/tendermint/ibc/lightclients"
	"github.com/tendermint/ibc/lightclients/mock"
	"github.com/tendermint/ibc/lightclients/tendermint"
)

func TestCodecDecodesEveryVariant(t *testing.T) {
	codec := lightclients.Codec{}

	header := mock.Header{
		Height:    client.MustNewHeight(0, 5),
		Timestamp: timestamp.FromNanoseconds(1000),
		Root:      commitment.Root("root"),
	}
	tmState := tendermint.NewClientState(host.MustParseChainID("ibc-0"), tendermint.OneThird,
		time.Hour, 2*time.Hour, time.Second, client.MustNewHeight(0, 10), nil)
	tmCons := tendermint.NewConsensusState(time.Unix(100, 0), commitment.Root("app"), tmhash.Sum([]byte("vals")))

	for _, state := range []client.ClientState{mock.NewClientState(header), tmState} {
		raw, err := state.ToAny()
		require.NoError(t, err)
		decoded, err := codec.DecodeClientState(raw)
		require.NoError(t, err)
		require.Equal(t, state.ClientType(), decoded.ClientType())
		require.Equal(t, state.LatestHeight(), decoded.LatestHeight())
	}

	for _, cons := range []client.ConsensusState{mock.NewConsensusState(header), tmCons} {
		raw, err := cons.ToAny()
		require.NoError(t, err)
		decoded, err := codec.DecodeConsensusState(raw)
		require.NoError(t, err)
		require.Equal(t, cons.Root(), decoded.Root())
		require.Equal(t, cons.Timestamp(), decoded.Timestamp())
	}

	raw, err := header.ToAny()
	require.NoError(t, err)
	msg, err := codec.DecodeClientMessage(raw)
	require.NoError(t, err)
	require.Equal(t, header, msg)
}

func TestCodecRejectsUnknownTypes(t *testing.T) {
	codec := lightclients.Codec{}
	unknown := &gogotypes.Any{TypeUrl: "/ibc.lightclients.solomachine.v2.ClientState"}

	_, err := codec.DecodeClientState(unknown)
	require.True(t, errorsmod.IsOf(err, client.ErrUnknownClientType))
	_, err = codec.DecodeConsensusState(unknown)
	require.True(t, errorsmod.IsOf(err, client.ErrUnknownClientType))
	_, err = codec.DecodeClientMessage(unknown)
	require.True(t, errorsmod.IsOf(err, client.ErrUnknownClientType))

	_, err = codec.DecodeClientState(nil)
	require.ErrorIs(t, err, client.ErrMissingRawClientState)
}

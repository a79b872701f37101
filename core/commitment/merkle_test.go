package commitment_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
)

func testTree(n int) (*commitment.Tree, map[string][]byte) {
	kvs := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		kvs[fmt.Sprintf("ibc/key-%03d", 2*i)] = []byte(fmt.Sprintf("value-%d", i))
	}
	return commitment.NewTree(kvs), kvs
}

func TestMembership(t *testing.T) {
	for _, n := range []int{1, 2, 7, 16} {
		tree, kvs := testTree(n)
		root := tree.Root()

		for k, v := range kvs {
			proof, err := tree.Prove([]byte(k))
			require.NoError(t, err)
			require.NoError(t, commitment.VerifyMembership(root, proof, []byte(k), v), "n=%d key=%s", n, k)

			err = commitment.VerifyMembership(root, proof, []byte(k), []byte("tampered"))
			require.ErrorIs(t, err, commitment.ErrInvalidProof)

			err = commitment.VerifyNonMembership(root, proof, []byte(k))
			require.ErrorIs(t, err, commitment.ErrInvalidProof)
		}
	}
}

func TestNonMembership(t *testing.T) {
	tree, _ := testTree(8)
	root := tree.Root()

	for _, key := range []string{"a", "ibc/key-001", "ibc/key-007", "ibc/key-015", "zzz"} {
		proof, err := tree.Prove([]byte(key))
		require.NoError(t, err)
		require.NoError(t, commitment.VerifyNonMembership(root, proof, []byte(key)), key)

		err = commitment.VerifyMembership(root, proof, []byte(key), []byte("x"))
		require.ErrorIs(t, err, commitment.ErrInvalidProof)

		// a proof for one key cannot be replayed for another
		err = commitment.VerifyNonMembership(root, proof, []byte("ibc/key-000"))
		require.ErrorIs(t, err, commitment.ErrInvalidProof)
	}
}

func TestNonMembershipEmptyTree(t *testing.T) {
	tree := commitment.NewTree(nil)
	proof, err := tree.Prove([]byte("ibc/anything"))
	require.NoError(t, err)
	require.NoError(t, commitment.VerifyNonMembership(tree.Root(), proof, []byte("ibc/anything")))
}

func TestProofAgainstOtherRoot(t *testing.T) {
	tree, kvs := testTree(4)
	other, _ := testTree(5)

	for k, v := range kvs {
		proof, err := tree.Prove([]byte(k))
		require.NoError(t, err)
		require.ErrorIs(t, commitment.VerifyMembership(other.Root(), proof, []byte(k), v), commitment.ErrInvalidProof)
	}
}

func TestInvalidInputs(t *testing.T) {
	tree, _ := testTree(2)

	require.ErrorIs(t, commitment.VerifyMembership(tree.Root(), nil, []byte("k"), nil), commitment.ErrEmptyProof)
	require.ErrorIs(t, commitment.VerifyMembership(nil, commitment.ProofBytes{1}, []byte("k"), nil), commitment.ErrInvalidRoot)
	require.ErrorIs(t, commitment.VerifyMembership(tree.Root(), commitment.ProofBytes{0xff, 0xff}, []byte("k"), nil), commitment.ErrInvalidProof)

	_, err := commitment.NewProofBytes(nil)
	require.ErrorIs(t, err, commitment.ErrEmptyProof)

	_, err = commitment.NewPrefix([]byte{})
	require.ErrorIs(t, err, commitment.ErrInvalidPrefix)
}

func TestApplyPrefix(t *testing.T) {
	prefix, err := commitment.NewPrefix([]byte("ibc"))
	require.NoError(t, err)

	path := host.ConnectionPath{ConnectionID: host.NewConnectionID(0)}
	require.Equal(t, "ibc/connections/connection-0", string(commitment.ApplyPrefix(prefix, path)))

	raw := prefix.ToProto()
	back, err := commitment.PrefixFromProto(raw)
	require.NoError(t, err)
	require.Equal(t, prefix, back)
}

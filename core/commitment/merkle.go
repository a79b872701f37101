package commitment

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/merkle"
	"github.com/cometbft/cometbft/crypto/tmhash"
	"github.com/gogo/protobuf/proto"

	commitmentproto "github.com/tendermint/ibc/proto/ibc/core/commitment"
)

type leaf struct {
	key       []byte
	valueHash []byte
}

// Tree is an immutable simple Merkle tree over key/value pairs sorted by key.
// Each leaf commits to a key and the hash of its value.
type Tree struct {
	leaves []leaf
	proofs []*merkle.Proof
	root   []byte
}

// NewTree commits to kvs.
func NewTree(kvs map[string][]byte) *Tree {
	keys := make([]string, 0, len(kvs))
	for k := range kvs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	leaves := make([]leaf, len(keys))
	items := make([][]byte, len(keys))
	for i, k := range keys {
		leaves[i] = leaf{key: []byte(k), valueHash: tmhash.Sum(kvs[k])}
		items[i] = leafBytes(leaves[i].key, leaves[i].valueHash)
	}

	root, proofs := merkle.ProofsFromByteSlices(items)
	return &Tree{leaves: leaves, proofs: proofs, root: root}
}

// Root returns the commitment root of the tree.
func (t *Tree) Root() Root { return bytes.Clone(t.root) }

// Size returns the number of leaves.
func (t *Tree) Size() int { return len(t.leaves) }

// Prove returns an existence proof for key if it is committed, otherwise a
// non-existence proof.
func (t *Tree) Prove(key []byte) (ProofBytes, error) {
	idx := sort.Search(len(t.leaves), func(i int) bool {
		return bytes.Compare(t.leaves[i].key, key) >= 0
	})

	raw := &commitmentproto.CommitmentProof{}
	if idx < len(t.leaves) && bytes.Equal(t.leaves[idx].key, key) {
		raw.Exist = t.existenceProof(idx)
	} else {
		nonexist := &commitmentproto.NonExistenceProof{Key: key}
		if idx > 0 {
			nonexist.Left = t.existenceProof(idx - 1)
		}
		if idx < len(t.leaves) {
			nonexist.Right = t.existenceProof(idx)
		}
		raw.Nonexist = nonexist
	}

	bz, err := proto.Marshal(raw)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidProof, err.Error())
	}
	return ProofBytes(bz), nil
}

func (t *Tree) existenceProof(idx int) *commitmentproto.ExistenceProof {
	p := t.proofs[idx]
	return &commitmentproto.ExistenceProof{
		Key:       t.leaves[idx].key,
		ValueHash: t.leaves[idx].valueHash,
		Proof: &commitmentproto.MerkleProof{
			Total:    p.Total,
			Index:    p.Index,
			LeafHash: p.LeafHash,
			Aunts:    p.Aunts,
		},
	}
}

// VerifyMembership verifies that value is committed at key under root.
func VerifyMembership(root Root, proof ProofBytes, key, value []byte) error {
	raw, err := decodeProof(root, proof)
	if err != nil {
		return err
	}
	if raw.Exist == nil {
		return errorsmod.Wrap(ErrInvalidProof, "expected existence proof")
	}
	if !bytes.Equal(raw.Exist.Key, key) {
		return errorsmod.Wrapf(ErrInvalidProof, "proof is for key %q, expected %q", raw.Exist.Key, key)
	}
	if !bytes.Equal(raw.Exist.ValueHash, tmhash.Sum(value)) {
		return errorsmod.Wrapf(ErrInvalidProof, "committed value at %q does not match", key)
	}
	_, err = verifyExistence(root, raw.Exist)
	return err
}

// VerifyNonMembership verifies that nothing is committed at key under root.
func VerifyNonMembership(root Root, proof ProofBytes, key []byte) error {
	raw, err := decodeProof(root, proof)
	if err != nil {
		return err
	}
	nonexist := raw.Nonexist
	if nonexist == nil {
		return errorsmod.Wrap(ErrInvalidProof, "expected non-existence proof")
	}
	if !bytes.Equal(nonexist.Key, key) {
		return errorsmod.Wrapf(ErrInvalidProof, "proof is for key %q, expected %q", nonexist.Key, key)
	}

	var left, right *merkle.Proof
	if nonexist.Left != nil {
		if bytes.Compare(nonexist.Left.Key, key) >= 0 {
			return errorsmod.Wrap(ErrInvalidProof, "left neighbour must sort before key")
		}
		if left, err = verifyExistence(root, nonexist.Left); err != nil {
			return err
		}
	}
	if nonexist.Right != nil {
		if bytes.Compare(nonexist.Right.Key, key) <= 0 {
			return errorsmod.Wrap(ErrInvalidProof, "right neighbour must sort after key")
		}
		if right, err = verifyExistence(root, nonexist.Right); err != nil {
			return err
		}
	}

	switch {
	case left == nil && right == nil:
		if !bytes.Equal(root, merkle.HashFromByteSlices(nil)) {
			return errorsmod.Wrap(ErrInvalidProof, "missing neighbours for a non-empty tree")
		}
	case left == nil:
		if right.Index != 0 {
			return errorsmod.Wrap(ErrInvalidProof, "right neighbour is not the leftmost leaf")
		}
	case right == nil:
		if left.Index != left.Total-1 {
			return errorsmod.Wrap(ErrInvalidProof, "left neighbour is not the rightmost leaf")
		}
	default:
		if left.Total != right.Total || right.Index != left.Index+1 {
			return errorsmod.Wrap(ErrInvalidProof, "neighbours are not adjacent")
		}
	}
	return nil
}

func decodeProof(root Root, proof ProofBytes) (*commitmentproto.CommitmentProof, error) {
	if root.Empty() {
		return nil, errorsmod.Wrap(ErrInvalidRoot, "root cannot be empty")
	}
	if len(proof) == 0 {
		return nil, ErrEmptyProof
	}

	raw := &commitmentproto.CommitmentProof{}
	if err := proto.Unmarshal(proof, raw); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidProof, "failed to decode proof: %v", err)
	}
	return raw, nil
}

func verifyExistence(root Root, exist *commitmentproto.ExistenceProof) (*merkle.Proof, error) {
	if exist.Proof == nil {
		return nil, errorsmod.Wrap(ErrInvalidProof, "missing merkle proof")
	}

	p := &merkle.Proof{
		Total:    exist.Proof.Total,
		Index:    exist.Proof.Index,
		LeafHash: exist.Proof.LeafHash,
		Aunts:    exist.Proof.Aunts,
	}
	if err := p.Verify(root, leafBytes(exist.Key, exist.ValueHash)); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidProof, err.Error())
	}
	return p, nil
}

// leafBytes is the length-prefixed concatenation of key and value hash.
func leafBytes(key, valueHash []byte) []byte {
	bz := make([]byte, 0, 2*binary.MaxVarintLen64+len(key)+len(valueHash))
	bz = binary.AppendUvarint(bz, uint64(len(key)))
	bz = append(bz, key...)
	bz = binary.AppendUvarint(bz, uint64(len(valueHash)))
	return append(bz, valueHash...)
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree{size: %d, root: %X}", len(t.leaves), t.root)
}

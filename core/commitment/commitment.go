// Package commitment implements ICS-23 vector commitments: store prefixes,
// commitment roots and the Merkle proofs that bind a value (or its absence)
// at a path to a root.
package commitment

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core/host"
	commitmentproto "github.com/tendermint/ibc/proto/ibc/core/commitment"
)

// Prefix is the store prefix a chain commits its IBC state under.
type Prefix []byte

// NewPrefix returns an error if b is empty.
func NewPrefix(b []byte) (Prefix, error) {
	if len(b) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidPrefix, "prefix cannot be empty")
	}
	return Prefix(bytes.Clone(b)), nil
}

func (p Prefix) Bytes() []byte { return p }

// Empty returns true if the prefix is empty
func (p Prefix) Empty() bool { return len(p) == 0 }

func (p Prefix) ToProto() *commitmentproto.MerklePrefix {
	return &commitmentproto.MerklePrefix{KeyPrefix: bytes.Clone(p)}
}

// PrefixFromProto converts a raw prefix, rejecting a missing or empty one.
func PrefixFromProto(raw *commitmentproto.MerklePrefix) (Prefix, error) {
	if raw == nil {
		return nil, errorsmod.Wrap(ErrInvalidPrefix, "prefix cannot be nil")
	}
	return NewPrefix(raw.KeyPrefix)
}

// ApplyPrefix returns the full store key of path under prefix.
func ApplyPrefix(prefix Prefix, path host.Path) []byte {
	key := make([]byte, 0, len(prefix)+1+len(path.String()))
	key = append(key, prefix...)
	key = append(key, host.PathSeparator...)
	return append(key, path.String()...)
}

// Root is the commitment root of a store at some height.
type Root []byte

// Empty returns true if the root is empty
func (r Root) Empty() bool { return len(r) == 0 }

// ProofBytes is an encoded CommitmentProof. It is never empty.
type ProofBytes []byte

// NewProofBytes returns ErrEmptyProof if b is empty.
func NewProofBytes(b []byte) (ProofBytes, error) {
	if len(b) == 0 {
		return nil, errorsmod.Wrap(ErrEmptyProof, "proof bytes cannot be empty")
	}
	return ProofBytes(b), nil
}

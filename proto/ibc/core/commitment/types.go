// Package commitment contains the raw wire types of the ibc.core.commitment.v1
// protobuf package.
package commitment

import (
	proto "github.com/gogo/protobuf/proto"
)

// MerklePrefix is the key prefix applied to every path of a commitment store.
type MerklePrefix struct {
	KeyPrefix []byte `protobuf:"bytes,1,opt,name=key_prefix,json=keyPrefix,proto3" json:"key_prefix,omitempty"`
}

func (m *MerklePrefix) Reset()         { *m = MerklePrefix{} }
func (m *MerklePrefix) String() string { return proto.CompactTextString(m) }
func (*MerklePrefix) ProtoMessage()    {}

// MerkleProof is a simple Merkle tree inclusion proof of a single leaf.
type MerkleProof struct {
	Total    int64    `protobuf:"varint,1,opt,name=total,proto3" json:"total,omitempty"`
	Index    int64    `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	LeafHash []byte   `protobuf:"bytes,3,opt,name=leaf_hash,json=leafHash,proto3" json:"leaf_hash,omitempty"`
	Aunts    [][]byte `protobuf:"bytes,4,rep,name=aunts,proto3" json:"aunts,omitempty"`
}

func (m *MerkleProof) Reset()         { *m = MerkleProof{} }
func (m *MerkleProof) String() string { return proto.CompactTextString(m) }
func (*MerkleProof) ProtoMessage()    {}

// ExistenceProof proves that Key is stored with a value hashing to ValueHash.
type ExistenceProof struct {
	Key       []byte       `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	ValueHash []byte       `protobuf:"bytes,2,opt,name=value_hash,json=valueHash,proto3" json:"value_hash,omitempty"`
	Proof     *MerkleProof `protobuf:"bytes,3,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *ExistenceProof) Reset()         { *m = ExistenceProof{} }
func (m *ExistenceProof) String() string { return proto.CompactTextString(m) }
func (*ExistenceProof) ProtoMessage()    {}

// NonExistenceProof proves that Key is absent by exhibiting its neighbours in
// the sorted leaf order. Left or Right is nil at the edges of the tree.
type NonExistenceProof struct {
	Key   []byte          `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Left  *ExistenceProof `protobuf:"bytes,2,opt,name=left,proto3" json:"left,omitempty"`
	Right *ExistenceProof `protobuf:"bytes,3,opt,name=right,proto3" json:"right,omitempty"`
}

func (m *NonExistenceProof) Reset()         { *m = NonExistenceProof{} }
func (m *NonExistenceProof) String() string { return proto.CompactTextString(m) }
func (*NonExistenceProof) ProtoMessage()    {}

// CommitmentProof carries exactly one of Exist or Nonexist.
type CommitmentProof struct {
	Exist    *ExistenceProof    `protobuf:"bytes,1,opt,name=exist,proto3" json:"exist,omitempty"`
	Nonexist *NonExistenceProof `protobuf:"bytes,2,opt,name=nonexist,proto3" json:"nonexist,omitempty"`
}

func (m *CommitmentProof) Reset()         { *m = CommitmentProof{} }
func (m *CommitmentProof) String() string { return proto.CompactTextString(m) }
func (*CommitmentProof) ProtoMessage()    {}

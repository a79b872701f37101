// Package mock contains the raw wire types of the mock light client.
package mock

import (
	proto "github.com/gogo/protobuf/proto"

	client "github.com/tendermint/ibc/proto/ibc/core/client"
)

// Header is a trusted header of the mock client.
type Header struct {
	Height    *client.Height `protobuf:"bytes,1,opt,name=height,proto3" json:"height,omitempty"`
	Timestamp uint64         `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Root      []byte         `protobuf:"bytes,3,opt,name=root,proto3" json:"root,omitempty"`
}

func (m *Header) Reset()         { *m = Header{} }
func (m *Header) String() string { return proto.CompactTextString(m) }
func (*Header) ProtoMessage()    {}

// ClientState is the mock client state.
type ClientState struct {
	Header       *Header        `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	FrozenHeight *client.Height `protobuf:"bytes,2,opt,name=frozen_height,json=frozenHeight,proto3" json:"frozen_height,omitempty"`
}

func (m *ClientState) Reset()         { *m = ClientState{} }
func (m *ClientState) String() string { return proto.CompactTextString(m) }
func (*ClientState) ProtoMessage()    {}

// ConsensusState is the mock consensus state.
type ConsensusState struct {
	Header *Header `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
}

func (m *ConsensusState) Reset()         { *m = ConsensusState{} }
func (m *ConsensusState) String() string { return proto.CompactTextString(m) }
func (*ConsensusState) ProtoMessage()    {}

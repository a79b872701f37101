package chain

import (
	"fmt"

	"github.com/google/orderedcode"

	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/host"
)

// key prefixes
const (
	// provable entries are committed into the block root
	prefixProvable = int64(1)

	prefixCounter    = int64(2)
	prefixUpdateMeta = int64(3)
	prefixBlock      = int64(4)
)

const (
	counterClients     = "clients"
	counterConnections = "connections"
	counterChannels    = "channels"
)

// storePath is a provable key read back from the database.
type storePath string

func (p storePath) String() string { return string(p) }

func provableKey(path host.Path) []byte {
	key, err := orderedcode.Append(nil, prefixProvable, path.String())
	if err != nil {
		panic(err)
	}
	return key
}

func provablePrefix() []byte {
	key, err := orderedcode.Append(nil, prefixProvable)
	if err != nil {
		panic(err)
	}
	return key
}

func decodeProvableKey(key []byte) (host.Path, error) {
	var (
		prefix int64
		path   string
	)
	remaining, err := orderedcode.Parse(string(key), &prefix, &path)
	if err != nil {
		return nil, err
	}
	if len(remaining) != 0 {
		return nil, fmt.Errorf("expected complete key but got remainder: %s", remaining)
	}
	if prefix != prefixProvable {
		return nil, fmt.Errorf("incorrect prefix. Expected %v, got %v", prefixProvable, prefix)
	}
	return storePath(path), nil
}

func counterKey(name string) []byte {
	key, err := orderedcode.Append(nil, prefixCounter, name)
	if err != nil {
		panic(err)
	}
	return key
}

func updateMetaKey(clientID host.ClientID, height client.Height) []byte {
	key, err := orderedcode.Append(nil, prefixUpdateMeta, clientID.String(),
		height.RevisionNumber(), height.RevisionHeight())
	if err != nil {
		panic(err)
	}
	return key
}

func blockKey(height uint64) []byte {
	key, err := orderedcode.Append(nil, prefixBlock, height)
	if err != nil {
		panic(err)
	}
	return key
}

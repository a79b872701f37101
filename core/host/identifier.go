package host

import (
	"fmt"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

const (
	// ConnectionPrefix is the prefix of generated connection identifiers.
	ConnectionPrefix = "connection"
	// ChannelPrefix is the prefix of generated channel identifiers.
	ChannelPrefix = "channel"
)

// ClientType is the prefix a client identifier is derived from, e.g.
// "07-tendermint".
type ClientType struct {
	name string
}

// NewClientType validates name as a client identifier prefix.
func NewClientType(name string) (ClientType, error) {
	if err := ValidateClientType(name); err != nil {
		return ClientType{}, err
	}
	return ClientType{name: name}, nil
}

// MustClientType is NewClientType that panics on an invalid name. Only for
// compile-time constants and test fixtures.
func MustClientType(name string) ClientType {
	ct, err := NewClientType(name)
	if err != nil {
		panic(err)
	}
	return ct
}

func (ct ClientType) String() string { return ct.name }

// ClientID identifies a light client on the host. Values can only be obtained
// through validation, so a non-zero ClientID is always well formed.
type ClientID struct {
	id string
}

// NewClientID builds the identifier "{clientType}-{counter}".
func NewClientID(clientType ClientType, counter uint64) (ClientID, error) {
	return ParseClientID(fmt.Sprintf("%s-%d", clientType, counter))
}

// ParseClientID validates s as a client identifier.
func ParseClientID(s string) (ClientID, error) {
	if err := ValidateClientIdentifier(s); err != nil {
		return ClientID{}, err
	}
	return ClientID{id: s}, nil
}

// MustParseClientID panics if s is not a valid client identifier. Test only.
func MustParseClientID(s string) ClientID {
	id, err := ParseClientID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ClientID) String() string { return id.id }

// IsZero reports whether id is the unset value.
func (id ClientID) IsZero() bool { return id.id == "" }

// ConnectionID identifies a connection end on the host.
type ConnectionID struct {
	id string
}

// NewConnectionID returns "connection-{counter}".
func NewConnectionID(counter uint64) ConnectionID {
	return ConnectionID{id: fmt.Sprintf("%s-%d", ConnectionPrefix, counter)}
}

// ParseConnectionID validates s as a connection identifier.
func ParseConnectionID(s string) (ConnectionID, error) {
	if err := ValidateConnectionIdentifier(s); err != nil {
		return ConnectionID{}, err
	}
	return ConnectionID{id: s}, nil
}

// MustParseConnectionID panics if s is not a valid connection identifier. Test only.
func MustParseConnectionID(s string) ConnectionID {
	id, err := ParseConnectionID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ConnectionID) String() string { return id.id }

// IsZero reports whether id is the unset value.
func (id ConnectionID) IsZero() bool { return id.id == "" }

// PortID identifies the application module bound to a channel end.
type PortID struct {
	id string
}

// ParsePortID validates s as a port identifier.
func ParsePortID(s string) (PortID, error) {
	if err := ValidatePortIdentifier(s); err != nil {
		return PortID{}, err
	}
	return PortID{id: s}, nil
}

// MustParsePortID panics if s is not a valid port identifier. Test only.
func MustParsePortID(s string) PortID {
	id, err := ParsePortID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id PortID) String() string { return id.id }

// IsZero reports whether id is the unset value.
func (id PortID) IsZero() bool { return id.id == "" }

// ChannelID identifies a channel end under a port.
type ChannelID struct {
	id string
}

// NewChannelID returns "channel-{counter}".
func NewChannelID(counter uint64) ChannelID {
	return ChannelID{id: fmt.Sprintf("%s-%d", ChannelPrefix, counter)}
}

// ParseChannelID validates s as a channel identifier.
func ParseChannelID(s string) (ChannelID, error) {
	if err := ValidateChannelIdentifier(s); err != nil {
		return ChannelID{}, err
	}
	return ChannelID{id: s}, nil
}

// MustParseChannelID panics if s is not a valid channel identifier. Test only.
func MustParseChannelID(s string) ChannelID {
	id, err := ParseChannelID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ChannelID) String() string { return id.id }

// IsZero reports whether id is the unset value.
func (id ChannelID) IsZero() bool { return id.id == "" }

// ChainID is the identifier of a chain. An identifier of the form
// "{name}-{N}" carries revision number N; any other form has revision 0.
type ChainID struct {
	id       string
	revision uint64
}

// ParseChainID validates s and extracts its revision number.
func ParseChainID(s string) (ChainID, error) {
	if err := ValidateIdentifierChars(s); err != nil {
		return ChainID{}, errorsmod.Wrap(ErrInvalidChainID, err.Error())
	}
	if err := ValidateIdentifierLength(s, 1, 64); err != nil {
		return ChainID{}, errorsmod.Wrap(ErrInvalidChainID, err.Error())
	}
	return ChainID{id: s, revision: parseRevision(s)}, nil
}

// MustParseChainID panics if s is not a valid chain identifier. Test only.
func MustParseChainID(s string) ChainID {
	id, err := ParseChainID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ChainID) String() string { return id.id }

// RevisionNumber returns the revision encoded in the identifier.
func (id ChainID) RevisionNumber() uint64 { return id.revision }

func parseRevision(s string) uint64 {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 || s[i-1] == '-' {
		return 0
	}

	suffix := s[i+1:]
	if suffix[0] == '0' {
		return 0
	}
	revision, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0
	}
	return revision
}

// Signer is the opaque identity that submitted a message. The engine threads
// it through to application callbacks and events without interpreting it.
type Signer string

func (s Signer) String() string { return string(s) }

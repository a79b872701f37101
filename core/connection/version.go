package connection

import (
	"strings"

	errorsmod "cosmossdk.io/errors"

	connectionproto "github.com/tendermint/ibc/proto/ibc/core/connection"
)

const (
	// DefaultIBCVersionIdentifier is the IBC v1.0.0 protocol version identifier
	DefaultIBCVersionIdentifier = "1"

	FeatureOrderOrdered   = "ORDER_ORDERED"
	FeatureOrderUnordered = "ORDER_UNORDERED"
)

// Version is a connection version: an identifier and the channel orderings
// (features) it allows.
type Version struct {
	Identifier string
	Features   []string
}

// DefaultVersion is the only version this host proposes.
func DefaultVersion() Version {
	return Version{
		Identifier: DefaultIBCVersionIdentifier,
		Features:   []string{FeatureOrderOrdered, FeatureOrderUnordered},
	}
}

// CompatibleVersions returns the versions supported by this host, in order of
// preference.
func CompatibleVersions() []Version {
	return []Version{DefaultVersion()}
}

// Validate rejects a blank identifier or a blank feature.
func (v Version) Validate() error {
	if strings.TrimSpace(v.Identifier) == "" {
		return errorsmod.Wrap(ErrInvalidVersion, "version identifier cannot be blank")
	}
	for i, f := range v.Features {
		if strings.TrimSpace(f) == "" {
			return errorsmod.Wrapf(ErrInvalidVersion, "feature %d cannot be blank", i)
		}
	}
	return nil
}

// HasFeature returns true if the version allows feature.
func (v Version) HasFeature(feature string) bool {
	for _, f := range v.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// IsSupportedVersion returns true if v matches the identifier of a supported
// version and every feature of v is supported by it.
func IsSupportedVersion(supported []Version, v Version) bool {
	s, ok := findVersion(supported, v.Identifier)
	if !ok {
		return false
	}
	for _, f := range v.Features {
		if !s.HasFeature(f) {
			return false
		}
	}
	return true
}

// PickVersion returns the first supported version also proposed by the
// counterparty, restricted to the features both sides allow.
func PickVersion(supported, counterparty []Version) (Version, error) {
	for _, s := range supported {
		cv, ok := findVersion(counterparty, s.Identifier)
		if !ok {
			continue
		}
		var features []string
		for _, f := range s.Features {
			if cv.HasFeature(f) {
				features = append(features, f)
			}
		}
		if len(features) == 0 {
			continue
		}
		return Version{Identifier: s.Identifier, Features: features}, nil
	}
	return Version{}, errorsmod.Wrapf(ErrVersionNegotiationFailed, "supported %v, counterparty %v", supported, counterparty)
}

func findVersion(versions []Version, identifier string) (Version, bool) {
	for _, v := range versions {
		if v.Identifier == identifier {
			return v, true
		}
	}
	return Version{}, false
}

func (v Version) ToProto() *connectionproto.Version {
	return &connectionproto.Version{
		Identifier: v.Identifier,
		Features:   append([]string(nil), v.Features...),
	}
}

// VersionFromProto converts and validates a raw version.
func VersionFromProto(raw *connectionproto.Version) (Version, error) {
	if raw == nil {
		return Version{}, errorsmod.Wrap(ErrInvalidVersion, "nil version")
	}
	v := Version{Identifier: raw.Identifier, Features: append([]string(nil), raw.Features...)}
	return v, v.Validate()
}

// VersionsFromProto converts a list of raw versions.
func VersionsFromProto(raw []*connectionproto.Version) ([]Version, error) {
	versions := make([]Version, 0, len(raw))
	for _, r := range raw {
		v, err := VersionFromProto(r)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func versionsToProto(versions []Version) []*connectionproto.Version {
	raw := make([]*connectionproto.Version, len(versions))
	for i, v := range versions {
		raw[i] = v.ToProto()
	}
	return raw
}

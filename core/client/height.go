package client

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"

	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

// Height is a (revision number, revision height) pair ordered
// lexicographically. Every height except the zero sentinel has a non-zero
// revision height.
type Height struct {
	revisionNumber uint64
	revisionHeight uint64
}

// NewHeight fails if revisionHeight is zero.
func NewHeight(revisionNumber, revisionHeight uint64) (Height, error) {
	if revisionHeight == 0 {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "revision height cannot be zero (revision %d)", revisionNumber)
	}
	return Height{revisionNumber: revisionNumber, revisionHeight: revisionHeight}, nil
}

// MustNewHeight panics on an invalid height.
func MustNewHeight(revisionNumber, revisionHeight uint64) Height {
	h, err := NewHeight(revisionNumber, revisionHeight)
	if err != nil {
		panic(err)
	}
	return h
}

// ZeroHeight is the "not set" sentinel.
func ZeroHeight() Height { return Height{} }

func (h Height) RevisionNumber() uint64 { return h.revisionNumber }
func (h Height) RevisionHeight() uint64 { return h.revisionHeight }

// IsZero reports whether h is the sentinel.
func (h Height) IsZero() bool { return h.revisionNumber == 0 && h.revisionHeight == 0 }

// Compare returns -1, 0 or 1 if h is lower than, equal to or greater than o.
func (h Height) Compare(o Height) int {
	switch {
	case h.revisionNumber != o.revisionNumber:
		if h.revisionNumber < o.revisionNumber {
			return -1
		}
		return 1
	case h.revisionHeight < o.revisionHeight:
		return -1
	case h.revisionHeight > o.revisionHeight:
		return 1
	default:
		return 0
	}
}

func (h Height) LT(o Height) bool  { return h.Compare(o) < 0 }
func (h Height) LTE(o Height) bool { return h.Compare(o) <= 0 }
func (h Height) GT(o Height) bool  { return h.Compare(o) > 0 }
func (h Height) GTE(o Height) bool { return h.Compare(o) >= 0 }
func (h Height) EQ(o Height) bool  { return h.Compare(o) == 0 }

// Increment returns the next height in the same revision, saturating at
// MaxUint64.
func (h Height) Increment() Height { return h.Add(1) }

// Add returns h advanced by delta blocks, saturating at MaxUint64.
func (h Height) Add(delta uint64) Height {
	if h.revisionHeight > math.MaxUint64-delta {
		return Height{revisionNumber: h.revisionNumber, revisionHeight: math.MaxUint64}
	}
	return Height{revisionNumber: h.revisionNumber, revisionHeight: h.revisionHeight + delta}
}

// Sub returns h lowered by delta blocks. The result must stay a valid height.
func (h Height) Sub(delta uint64) (Height, error) {
	if h.revisionHeight <= delta {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeightResult, "cannot subtract %d from %s", delta, h)
	}
	return Height{revisionNumber: h.revisionNumber, revisionHeight: h.revisionHeight - delta}, nil
}

// Decrement is Sub(1).
func (h Height) Decrement() (Height, error) { return h.Sub(1) }

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.revisionNumber, h.revisionHeight)
}

// ParseHeight parses the "{revision}-{height}" form.
func ParseHeight(s string) (Height, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "expected {revision}-{height}, got %q", s)
	}
	rn, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "invalid revision number %q: %v", parts[0], err)
	}
	rh, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "invalid revision height %q: %v", parts[1], err)
	}
	return NewHeight(rn, rh)
}

// ToProto converts h, including the zero sentinel, to its raw form.
func (h Height) ToProto() *clientproto.Height {
	return &clientproto.Height{RevisionNumber: h.revisionNumber, RevisionHeight: h.revisionHeight}
}

// HeightFromProto converts a required raw height. A nil or zero height is
// reported as ErrMissingHeight.
func HeightFromProto(raw *clientproto.Height) (Height, error) {
	if raw == nil || raw.RevisionHeight == 0 {
		return Height{}, ErrMissingHeight
	}
	return NewHeight(raw.RevisionNumber, raw.RevisionHeight)
}

// HeightFromProtoOrZero converts an optional raw height: nil or a zero
// revision height yields the sentinel.
func HeightFromProtoOrZero(raw *clientproto.Height) Height {
	if raw == nil || raw.RevisionHeight == 0 {
		return ZeroHeight()
	}
	return Height{revisionNumber: raw.RevisionNumber, revisionHeight: raw.RevisionHeight}
}

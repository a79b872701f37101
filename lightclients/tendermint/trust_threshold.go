package tendermint

import (
	"fmt"

	cmtmath "github.com/cometbft/cometbft/libs/math"
	"github.com/cometbft/cometbft/light"

	tmproto "github.com/tendermint/ibc/proto/ibc/lightclients/tendermint"
)

// TrustThreshold is the fraction of validator voting power that must sign a
// header for it to be trusted.
//
// A threshold n/d is valid when n <= d, it is not a full fraction other than
// 0/0, and a zero denominator only appears with a zero numerator. 0/0 is the
// Zero threshold used by client upgrades.
type TrustThreshold struct {
	numerator   uint64
	denominator uint64
}

var (
	// OneThird is the default trust threshold.
	OneThird = TrustThreshold{numerator: 1, denominator: 3}
	// TwoThirds matches the threshold used by consensus.
	TwoThirds = TrustThreshold{numerator: 2, denominator: 3}
	// Zero is only used for client upgrades.
	Zero = TrustThreshold{}
)

// NewTrustThreshold returns InvalidTrustThresholdError for n/d pairs that are
// not valid thresholds.
func NewTrustThreshold(numerator, denominator uint64) (TrustThreshold, error) {
	if numerator > denominator ||
		(numerator == denominator && numerator != 0) ||
		(denominator == 0 && numerator != 0) {
		return TrustThreshold{}, InvalidTrustThresholdError{Numerator: numerator, Denominator: denominator}
	}
	return TrustThreshold{numerator: numerator, denominator: denominator}, nil
}

func (t TrustThreshold) Numerator() uint64   { return t.numerator }
func (t TrustThreshold) Denominator() uint64 { return t.denominator }

func (t TrustThreshold) String() string {
	return fmt.Sprintf("%d/%d", t.numerator, t.denominator)
}

// ToFraction converts t for use by the light client verifier, which accepts
// only thresholds in [1/3, 1].
func (t TrustThreshold) ToFraction() (cmtmath.Fraction, error) {
	f := cmtmath.Fraction{Numerator: t.numerator, Denominator: t.denominator}
	if err := light.ValidateTrustLevel(f); err != nil {
		return cmtmath.Fraction{}, FailedTrustThresholdConversionError{
			Numerator:   t.numerator,
			Denominator: t.denominator,
			Reason:      err,
		}
	}
	return f, nil
}

// TrustThresholdFromFraction validates f as a trust threshold.
func TrustThresholdFromFraction(f cmtmath.Fraction) (TrustThreshold, error) {
	return NewTrustThreshold(f.Numerator, f.Denominator)
}

func (t TrustThreshold) ToProto() *tmproto.Fraction {
	return &tmproto.Fraction{Numerator: t.numerator, Denominator: t.denominator}
}

// TrustThresholdFromProto treats a missing fraction as Zero.
func TrustThresholdFromProto(raw *tmproto.Fraction) (TrustThreshold, error) {
	if raw == nil {
		return Zero, nil
	}
	return NewTrustThreshold(raw.Numerator, raw.Denominator)
}

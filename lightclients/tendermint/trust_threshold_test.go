package tendermint_test

import (
	"testing"

	errorsmod "cosmossdk.io/errors"
	cmtmath "github.com/cometbft/cometbft/libs/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ibc/lightclients/tendermint"
)

func TestNewTrustThreshold(t *testing.T) {
	testCases := []struct {
		name     string
		num, den uint64
		expPass  bool
	}{
		{"one third", 1, 3, true},
		{"two thirds", 2, 3, true},
		{"zero", 0, 0, true},
		{"zero numerator", 0, 5, true},
		{"full fraction", 3, 3, false},
		{"greater than one", 4, 3, false},
		{"zero denominator", 1, 0, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tt, err := tendermint.NewTrustThreshold(tc.num, tc.den)
			if !tc.expPass {
				require.Error(t, err)
				require.True(t, errorsmod.IsOf(err, tendermint.ErrInvalidTrustThreshold))
				require.Equal(t, tendermint.InvalidTrustThresholdError{Numerator: tc.num, Denominator: tc.den}, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.num, tt.Numerator())
			require.Equal(t, tc.den, tt.Denominator())
		})
	}
}

func TestTrustThresholdProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		num := rapid.Uint64Range(0, 10).Draw(t, "num").(uint64)
		den := rapid.Uint64Range(0, 10).Draw(t, "den").(uint64)

		valid := num <= den && !(num == den && num != 0) && !(den == 0 && num != 0)
		_, err := tendermint.NewTrustThreshold(num, den)
		if valid != (err == nil) {
			t.Fatalf("%d/%d: valid=%v err=%v", num, den, valid, err)
		}
	})
}

func TestTrustThresholdToFraction(t *testing.T) {
	f, err := tendermint.OneThird.ToFraction()
	require.NoError(t, err)
	require.Equal(t, cmtmath.Fraction{Numerator: 1, Denominator: 3}, f)

	back, err := tendermint.TrustThresholdFromFraction(f)
	require.NoError(t, err)
	require.Equal(t, tendermint.OneThird, back)
	require.Equal(t, "1/3", back.String())

	// valid thresholds below 1/3 are refused by the verifier
	quarter, err := tendermint.NewTrustThreshold(1, 4)
	require.NoError(t, err)
	_, err = quarter.ToFraction()
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, tendermint.ErrTrustThresholdConvert))
	require.False(t, errorsmod.IsOf(err, tendermint.ErrInvalidTrustThreshold))

	_, err = tendermint.Zero.ToFraction()
	require.Error(t, err)
	var convErr tendermint.FailedTrustThresholdConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, uint64(0), convErr.Denominator)
}

func TestTrustThresholdFromProto(t *testing.T) {
	tt, err := tendermint.TrustThresholdFromProto(tendermint.TwoThirds.ToProto())
	require.NoError(t, err)
	require.Equal(t, tendermint.TwoThirds, tt)

	tt, err = tendermint.TrustThresholdFromProto(nil)
	require.NoError(t, err)
	require.Equal(t, tendermint.Zero, tt)
}

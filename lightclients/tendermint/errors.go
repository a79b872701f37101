package tendermint

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of tendermint client errors.
const ModuleName = "tendermint"

// IBC tendermint client sentinel errors
var (
	ErrInvalidChainID          = errorsmod.Register(ModuleName, 2, "invalid chain-id")
	ErrInvalidTrustingPeriod   = errorsmod.Register(ModuleName, 3, "invalid trusting period")
	ErrInvalidUnbondingPeriod  = errorsmod.Register(ModuleName, 4, "invalid unbonding period")
	ErrInvalidHeaderHeight     = errorsmod.Register(ModuleName, 5, "invalid header height")
	ErrInvalidHeader           = errorsmod.Register(ModuleName, 6, "invalid header")
	ErrInvalidMaxClockDrift    = errorsmod.Register(ModuleName, 7, "invalid max clock drift")
	ErrInvalidTrustThreshold   = errorsmod.Register(ModuleName, 8, "invalid trust threshold")
	ErrTrustThresholdConvert   = errorsmod.Register(ModuleName, 9, "trust threshold cannot be converted")
	ErrInvalidValidatorSet     = errorsmod.Register(ModuleName, 10, "invalid validator set")
	ErrHeaderVerificationFail  = errorsmod.Register(ModuleName, 11, "header verification failed")
	ErrInvalidConsensusStateTS = errorsmod.Register(ModuleName, 12, "invalid consensus state timestamp")
)

// InvalidTrustThresholdError is returned when a numerator/denominator pair
// does not form a valid trust threshold.
type InvalidTrustThresholdError struct {
	Numerator   uint64
	Denominator uint64
}

func (e InvalidTrustThresholdError) Error() string {
	return fmt.Sprintf("invalid trust threshold %d/%d", e.Numerator, e.Denominator)
}

func (e InvalidTrustThresholdError) Unwrap() error { return ErrInvalidTrustThreshold }
func (e InvalidTrustThresholdError) Cause() error  { return ErrInvalidTrustThreshold }

// FailedTrustThresholdConversionError is returned when a valid threshold is
// rejected by the light client verifier.
type FailedTrustThresholdConversionError struct {
	Numerator   uint64
	Denominator uint64
	Reason      error
}

func (e FailedTrustThresholdConversionError) Error() string {
	return fmt.Sprintf("trust threshold %d/%d cannot be used for verification: %v", e.Numerator, e.Denominator, e.Reason)
}

func (e FailedTrustThresholdConversionError) Unwrap() error { return ErrTrustThresholdConvert }
func (e FailedTrustThresholdConversionError) Cause() error  { return ErrTrustThresholdConvert }

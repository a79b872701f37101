package connection

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core/client"
)

// SubModuleName defines the IBC connection name
const SubModuleName = "connection"

// IBC connection sentinel errors
var (
	ErrConnectionExists           = errorsmod.Register(SubModuleName, 2, "connection already exists")
	ErrConnectionNotFound         = errorsmod.Register(SubModuleName, 3, "connection not found")
	ErrClientConnectionPaths      = errorsmod.Register(SubModuleName, 4, "light client connection paths not found")
	ErrInvalidConnectionState     = errorsmod.Register(SubModuleName, 5, "invalid connection state")
	ErrInvalidCounterparty        = errorsmod.Register(SubModuleName, 6, "invalid counterparty connection")
	ErrMissingCounterparty        = errorsmod.Register(SubModuleName, 7, "missing counterparty")
	ErrInvalidVersion             = errorsmod.Register(SubModuleName, 8, "invalid connection version")
	ErrVersionNegotiationFailed   = errorsmod.Register(SubModuleName, 9, "connection version negotiation failed")
	ErrEmptyVersions              = errorsmod.Register(SubModuleName, 10, "empty supported versions")
	ErrInvalidProof               = errorsmod.Register(SubModuleName, 11, "invalid connection proof")
	ErrMissingProofHeight         = errorsmod.Register(SubModuleName, 12, "missing proof height")
	ErrMissingConsensusHeight     = errorsmod.Register(SubModuleName, 13, "missing consensus height")
	ErrInvalidConsensusHeight     = errorsmod.Register(SubModuleName, 14, "invalid consensus height")
	ErrInvalidIdentifier          = errorsmod.Register(SubModuleName, 15, "invalid identifier")
	ErrDelayPeriodNotPassed       = errorsmod.Register(SubModuleName, 16, "delay period has not passed")
	ErrConnectionVerificationFail = errorsmod.Register(SubModuleName, 17, "connection state verification failed")
	ErrInvalidPreviousConnection  = errorsmod.Register(SubModuleName, 18, "previous connection identifier must be empty")
	ErrInvalidSelfClient          = errorsmod.Register(SubModuleName, 19, "invalid client state of the host on the counterparty")
)

// DelayPeriodNotPassedError is returned when a packet proof is submitted
// before the connection delay period elapsed on the host.
type DelayPeriodNotPassedError struct {
	CurrentTime, EarliestTime     uint64
	CurrentHeight, EarliestHeight client.Height
}

func (e DelayPeriodNotPassedError) Error() string {
	return fmt.Sprintf(
		"delay period has not passed: current time %d < earliest valid time %d or current height %s < earliest valid height %s",
		e.CurrentTime, e.EarliestTime, e.CurrentHeight, e.EarliestHeight,
	)
}

func (e DelayPeriodNotPassedError) Unwrap() error { return ErrDelayPeriodNotPassed }
func (e DelayPeriodNotPassedError) Cause() error  { return ErrDelayPeriodNotPassed }

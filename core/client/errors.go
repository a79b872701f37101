package client

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// SubModuleName defines the IBC client name
const SubModuleName string = "client"

// IBC client sentinel errors
var (
	ErrClientNotFound                  = errorsmod.Register(SubModuleName, 2, "light client not found")
	ErrConsensusStateNotFound          = errorsmod.Register(SubModuleName, 3, "consensus state not found")
	ErrClientNotActive                 = errorsmod.Register(SubModuleName, 4, "client state is not active")
	ErrInvalidHeight                   = errorsmod.Register(SubModuleName, 5, "invalid height")
	ErrInvalidHeightResult             = errorsmod.Register(SubModuleName, 6, "height arithmetic underflow")
	ErrMissingHeight                   = errorsmod.Register(SubModuleName, 7, "missing height")
	ErrInvalidProofHeight              = errorsmod.Register(SubModuleName, 8, "proof height is in the future")
	ErrInvalidClientType               = errorsmod.Register(SubModuleName, 9, "invalid client type")
	ErrClientTypeMismatch              = errorsmod.Register(SubModuleName, 10, "client type mismatch")
	ErrMissingRawClientState           = errorsmod.Register(SubModuleName, 11, "missing raw client state")
	ErrMissingRawConsensusState        = errorsmod.Register(SubModuleName, 12, "missing raw consensus state")
	ErrMissingRawClientMessage         = errorsmod.Register(SubModuleName, 13, "missing raw client message")
	ErrInvalidClientState              = errorsmod.Register(SubModuleName, 14, "invalid client state")
	ErrInvalidConsensusState           = errorsmod.Register(SubModuleName, 15, "invalid consensus state")
	ErrInvalidClientMessage            = errorsmod.Register(SubModuleName, 16, "invalid client message")
	ErrFailedMembershipVerification    = errorsmod.Register(SubModuleName, 17, "membership verification failed")
	ErrFailedNonMembershipVerification = errorsmod.Register(SubModuleName, 18, "non-membership verification failed")
	ErrUpdateMetaNotFound              = errorsmod.Register(SubModuleName, 19, "client update metadata not found")
	ErrUnknownClientType               = errorsmod.Register(SubModuleName, 20, "unknown client type")
	ErrClientAlreadyExists             = errorsmod.Register(SubModuleName, 21, "light client already exists")
)

// ClientNotActiveError is returned when a step needs an Active client.
type ClientNotActiveError struct {
	Status Status
}

func (e ClientNotActiveError) Error() string {
	return fmt.Sprintf("client state is not active: status %s", e.Status)
}

func (e ClientNotActiveError) Unwrap() error { return ErrClientNotActive }
func (e ClientNotActiveError) Cause() error  { return ErrClientNotActive }

package host

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName defines the ICS 24 host
const SubModuleName = "host"

// IBC host sentinel errors
var (
	ErrInvalidID        = errorsmod.Register(SubModuleName, 2, "invalid identifier")
	ErrContainSeparator = errorsmod.Register(SubModuleName, 3, "identifier contains path separator")
	ErrInvalidCharacter = errorsmod.Register(SubModuleName, 4, "identifier contains invalid characters")
	ErrInvalidLength    = errorsmod.Register(SubModuleName, 5, "identifier has invalid length")
	ErrInvalidChainID   = errorsmod.Register(SubModuleName, 6, "invalid chain identifier")
	ErrInvalidPath      = errorsmod.Register(SubModuleName, 7, "invalid path")
)

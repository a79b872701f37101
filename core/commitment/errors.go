package commitment

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName is the error codespace
const SubModuleName string = "commitment"

// IBC connection sentinel errors
var (
	ErrInvalidProof  = errorsmod.Register(SubModuleName, 2, "invalid proof")
	ErrInvalidPrefix = errorsmod.Register(SubModuleName, 3, "invalid prefix")
	ErrInvalidRoot   = errorsmod.Register(SubModuleName, 4, "invalid root")
	ErrEmptyProof    = errorsmod.Register(SubModuleName, 5, "empty proof")
)

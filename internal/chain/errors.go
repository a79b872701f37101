package chain

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the codespace of reference host errors.
const Codespace = "chain"

var (
	ErrBlockNotFound = errorsmod.Register(Codespace, 2, "block not found")
	ErrInvalidConfig = errorsmod.Register(Codespace, 3, "invalid chain config")
)

package host

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
)

const (
	// PathSeparator is the separator used between the components of a store path.
	PathSeparator = "/"

	validSpecialChars = "._+-#[]<>"
)

// ValidateIdentifierChars checks that the identifier contains no path separator
// and only ASCII alphanumeric characters or one of "._+-#[]<>". An empty identifier
// passes this check.
func ValidateIdentifierChars(id string) error {
	if strings.Contains(id, PathSeparator) {
		return errorsmod.Wrapf(ErrContainSeparator, "identifier %s cannot contain separator '/'", id)
	}

	for _, c := range id {
		if isASCIIAlphanumeric(c) || strings.ContainsRune(validSpecialChars, c) {
			continue
		}
		return errorsmod.Wrapf(
			ErrInvalidCharacter,
			"identifier %s must contain only alphanumeric or the following characters: '.', '_', '+', '-', '#', '[', ']', '<', '>'",
			id,
		)
	}

	return nil
}

func isASCIIAlphanumeric(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// ValidateIdentifierLength checks that the byte length of id is within
// [max(min,1), max]. Empty identifiers are always rejected.
func ValidateIdentifierLength(id string, min, max uint64) error {
	if min < 1 {
		min = 1
	}

	length := uint64(len(id))
	if length < min || length > max {
		return errorsmod.Wrapf(
			ErrInvalidLength,
			"identifier %s has invalid length: %d, must be between %d-%d characters",
			id, length, min, max,
		)
	}

	return nil
}

// ValidatePrefixLength checks that a prefix forms a valid identifier within
// [minIDLength, maxIDLength] once a "-{counter}" suffix is appended. The
// shortest suffix is "-0" (2 characters) and the longest is "-{MaxUint64}"
// (21 characters).
func ValidatePrefixLength(prefix string, minIDLength, maxIDLength uint64) error {
	return ValidateIdentifierLength(prefix, saturatingSub(minIDLength, 2), saturatingSub(maxIDLength, 21))
}

// ValidateClientType validates a client type used as a client identifier prefix.
func ValidateClientType(id string) error {
	if err := ValidateIdentifierChars(id); err != nil {
		return err
	}
	return ValidatePrefixLength(id, 9, 64)
}

// ValidateClientIdentifier is the default validator function for Client
// identifiers. A valid identifier must be between 9-64 characters.
func ValidateClientIdentifier(id string) error {
	if err := ValidateIdentifierChars(id); err != nil {
		return err
	}
	return ValidateIdentifierLength(id, 9, 64)
}

// ValidateConnectionIdentifier is the default validator function for Connection
// identifiers. A valid identifier must be between 10-64 characters.
func ValidateConnectionIdentifier(id string) error {
	if err := ValidateIdentifierChars(id); err != nil {
		return err
	}
	return ValidateIdentifierLength(id, 10, 64)
}

// ValidatePortIdentifier is the default validator function for Port
// identifiers. A valid identifier must be between 2-128 characters.
func ValidatePortIdentifier(id string) error {
	if err := ValidateIdentifierChars(id); err != nil {
		return err
	}
	return ValidateIdentifierLength(id, 2, 128)
}

// ValidateChannelIdentifier is the default validator function for Channel
// identifiers. A valid identifier must be between 8-64 characters.
func ValidateChannelIdentifier(id string) error {
	if err := ValidateIdentifierChars(id); err != nil {
		return err
	}
	return ValidateIdentifierLength(id, 8, 64)
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

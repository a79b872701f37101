package version

import (
	"github.com/tendermint/ibc/core/connection"
)

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit string

	// Version is the built softwares version.
	Version string = IBCSimSemVer
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}

const (
	// IBCSimSemVer is the current version of ibcsim.
	// It's the Semantic Version of the software.
	IBCSimSemVer = "0.1.0"

	// IBCVersion is the connection version identifier the hosts propose.
	IBCVersion = connection.DefaultIBCVersionIdentifier
)

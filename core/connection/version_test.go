package connection_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/connection"
)

func TestPickVersion(t *testing.T) {
	testCases := []struct {
		name         string
		supported    []connection.Version
		counterparty []connection.Version
		expected     connection.Version
		expPass      bool
	}{
		{
			"default versions",
			connection.CompatibleVersions(),
			connection.CompatibleVersions(),
			connection.DefaultVersion(),
			true,
		},
		{
			"feature intersection",
			connection.CompatibleVersions(),
			[]connection.Version{{Identifier: "1", Features: []string{connection.FeatureOrderUnordered, "ORDER_DAG"}}},
			connection.Version{Identifier: "1", Features: []string{connection.FeatureOrderUnordered}},
			true,
		},
		{
			"no common identifier",
			connection.CompatibleVersions(),
			[]connection.Version{{Identifier: "2", Features: []string{connection.FeatureOrderOrdered}}},
			connection.Version{},
			false,
		},
		{
			"no common feature",
			connection.CompatibleVersions(),
			[]connection.Version{{Identifier: "1", Features: []string{"ORDER_DAG"}}},
			connection.Version{},
			false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v, err := connection.PickVersion(tc.supported, tc.counterparty)
			if !tc.expPass {
				require.ErrorIs(t, err, connection.ErrVersionNegotiationFailed)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}

func TestIsSupportedVersion(t *testing.T) {
	supported := connection.CompatibleVersions()

	require.True(t, connection.IsSupportedVersion(supported, connection.DefaultVersion()))
	require.True(t, connection.IsSupportedVersion(supported, connection.Version{
		Identifier: "1",
		Features:   []string{connection.FeatureOrderOrdered},
	}))
	require.False(t, connection.IsSupportedVersion(supported, connection.Version{
		Identifier: "1",
		Features:   []string{"ORDER_DAG"},
	}))
	require.False(t, connection.IsSupportedVersion(supported, connection.Version{Identifier: "2"}))
}

func TestVersionValidate(t *testing.T) {
	require.NoError(t, connection.DefaultVersion().Validate())
	require.ErrorIs(t, connection.Version{Identifier: " "}.Validate(), connection.ErrInvalidVersion)
	require.ErrorIs(t, connection.Version{Identifier: "1", Features: []string{""}}.Validate(), connection.ErrInvalidVersion)
}

package client_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ibc/core/client"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

func TestNewHeight(t *testing.T) {
	_, err := client.NewHeight(1, 0)
	require.ErrorIs(t, err, client.ErrInvalidHeight)

	h, err := client.NewHeight(1, 10)
	require.NoError(t, err)
	require.Equal(t, "1-10", h.String())
	require.False(t, h.IsZero())
	require.True(t, client.ZeroHeight().IsZero())
}

func TestHeightCompare(t *testing.T) {
	testCases := []struct {
		name string
		a, b client.Height
		cmp  int
	}{
		{"revision number dominates", client.MustNewHeight(1, 1), client.MustNewHeight(0, 100), 1},
		{"same revision lower height", client.MustNewHeight(1, 5), client.MustNewHeight(1, 6), -1},
		{"equal", client.MustNewHeight(2, 5), client.MustNewHeight(2, 5), 0},
		{"zero below everything", client.ZeroHeight(), client.MustNewHeight(0, 1), -1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.cmp, tc.a.Compare(tc.b))
			require.Equal(t, -tc.cmp, tc.b.Compare(tc.a))
			require.Equal(t, tc.cmp < 0, tc.a.LT(tc.b))
			require.Equal(t, tc.cmp >= 0, tc.a.GTE(tc.b))
		})
	}
}

func TestHeightArithmetic(t *testing.T) {
	h := client.MustNewHeight(0, math.MaxUint64)
	require.Equal(t, h, h.Increment())
	require.Equal(t, h, h.Add(10))

	h = client.MustNewHeight(3, 10)
	require.Equal(t, client.MustNewHeight(3, 11), h.Increment())

	sub, err := h.Sub(9)
	require.NoError(t, err)
	require.Equal(t, client.MustNewHeight(3, 1), sub)

	_, err = h.Sub(10)
	require.ErrorIs(t, err, client.ErrInvalidHeightResult)
}

func TestParseHeight(t *testing.T) {
	h, err := client.ParseHeight("4-20")
	require.NoError(t, err)
	require.Equal(t, client.MustNewHeight(4, 20), h)

	for _, s := range []string{"", "4", "4-0", "a-1", "1-b", "1-2-3"} {
		_, err := client.ParseHeight(s)
		require.Error(t, err, s)
	}
}

func TestHeightFromProto(t *testing.T) {
	_, err := client.HeightFromProto(nil)
	require.ErrorIs(t, err, client.ErrMissingHeight)
	_, err = client.HeightFromProto(&clientproto.Height{RevisionNumber: 1})
	require.ErrorIs(t, err, client.ErrMissingHeight)

	require.True(t, client.HeightFromProtoOrZero(nil).IsZero())
}

func TestHeightProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rn := rapid.Uint64().Draw(t, "rn").(uint64)
		rh := rapid.Uint64Min(1).Draw(t, "rh").(uint64)
		h := client.MustNewHeight(rn, rh)

		// raw round trip
		back, err := client.HeightFromProto(h.ToProto())
		if err != nil || back != h {
			t.Fatalf("round trip of %s gave %s (%v)", h, back, err)
		}

		// increment never decreases the height
		if h.Increment().LT(h) {
			t.Fatalf("increment of %s decreased", h)
		}

		// string form parses back
		parsed, err := client.ParseHeight(h.String())
		if err != nil || parsed != h {
			t.Fatalf("parse of %s gave %s (%v)", h, parsed, err)
		}
	})
}

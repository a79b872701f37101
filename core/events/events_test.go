package events_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/events"
)

func TestMessageEventToABCI(t *testing.T) {
	ev := events.ToABCI(events.MessageChannel)

	require.Equal(t, "message", ev.Type)
	require.Len(t, ev.Attributes, 1)
	require.Equal(t, "module", ev.Attributes[0].Key)
	require.Equal(t, "ibc_channel", ev.Attributes[0].Value)
	require.True(t, ev.Attributes[0].Index)
}

package channel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/channel"
	channelproto "github.com/tendermint/ibc/proto/ibc/core/channel"
	clientproto "github.com/tendermint/ibc/proto/ibc/core/client"
)

func rawChannel(state int32, counterpartyChannel string) *channelproto.Channel {
	return &channelproto.Channel{
		State:          state,
		Ordering:       channelproto.OrderOrdered,
		Counterparty:   &channelproto.Counterparty{PortId: "transfer", ChannelId: counterpartyChannel},
		ConnectionHops: []string{"connection-0"},
		Version:        "ics20-1",
	}
}

func TestMsgChannelOpenInitFromProto(t *testing.T) {
	raw := &channelproto.MsgChannelOpenInit{
		PortId:  "transfer",
		Channel: rawChannel(channelproto.StateInit, ""),
		Signer:  "cosmos1signer",
	}

	msg, err := channel.MsgChannelOpenInitFromProto(raw)
	require.NoError(t, err)
	require.Equal(t, channel.Version("ics20-1"), msg.VersionProposal)
	require.Equal(t, raw, msg.ToProto())

	raw.Channel = rawChannel(channelproto.StateTryOpen, "")
	_, err = channel.MsgChannelOpenInitFromProto(raw)
	require.ErrorIs(t, err, channel.ErrInvalidChannelState)

	raw.Channel = rawChannel(channelproto.StateInit, "channel-3")
	_, err = channel.MsgChannelOpenInitFromProto(raw)
	require.ErrorIs(t, err, channel.ErrInvalidCounterparty)
}

func TestMsgChannelOpenTryFromProto(t *testing.T) {
	newRaw := func() *channelproto.MsgChannelOpenTry {
		return &channelproto.MsgChannelOpenTry{
			PortId:              "transfer",
			Channel:             rawChannel(channelproto.StateTryOpen, "channel-0"),
			CounterpartyVersion: "ics20-1",
			ProofInit:           []byte{0x1},
			ProofHeight:         &clientproto.Height{RevisionNumber: 0, RevisionHeight: 10},
			Signer:              "cosmos1signer",
		}
	}

	testCases := []struct {
		name     string
		malleate func(raw *channelproto.MsgChannelOpenTry)
		expErr   error
	}{
		{"good parameters", func(*channelproto.MsgChannelOpenTry) {}, nil},
		{"blank counterparty version is allowed", func(raw *channelproto.MsgChannelOpenTry) {
			raw.CounterpartyVersion = "  "
		}, nil},
		{"missing channel", func(raw *channelproto.MsgChannelOpenTry) {
			raw.Channel = nil
		}, channel.ErrMissingChannel},
		{"previous channel id set", func(raw *channelproto.MsgChannelOpenTry) {
			raw.PreviousChannelId = "channel-2"
		}, channel.ErrInvalidChannelIdentifier},
		{"wrong state", func(raw *channelproto.MsgChannelOpenTry) {
			raw.Channel.State = channelproto.StateInit
		}, channel.ErrInvalidChannelState},
		{"missing counterparty channel", func(raw *channelproto.MsgChannelOpenTry) {
			raw.Channel.Counterparty.ChannelId = ""
		}, channel.ErrMissingCounterparty},
		{"empty proof", func(raw *channelproto.MsgChannelOpenTry) {
			raw.ProofInit = nil
		}, channel.ErrInvalidProof},
		{"zero proof height", func(raw *channelproto.MsgChannelOpenTry) {
			raw.ProofHeight = &clientproto.Height{}
		}, channel.ErrMissingHeight},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			raw := newRaw()
			tc.malleate(raw)

			msg, err := channel.MsgChannelOpenTryFromProto(raw)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, raw, msg.ToProto())
		})
	}
}

func TestMsgAcknowledgementFromProto(t *testing.T) {
	raw := &channelproto.MsgAcknowledgement{
		Packet:          rawPacket(),
		Acknowledgement: []byte(`{"result":"AQ=="}`),
		ProofAcked:      []byte{0x1},
		ProofHeight:     &clientproto.Height{RevisionHeight: 3},
		Signer:          "cosmos1signer",
	}

	msg, err := channel.MsgAcknowledgementFromProto(raw)
	require.NoError(t, err)
	require.Equal(t, raw, msg.ToProto())

	raw.Acknowledgement = nil
	_, err = channel.MsgAcknowledgementFromProto(raw)
	require.ErrorIs(t, err, channel.ErrInvalidAcknowledgement)

	raw.Packet = nil
	_, err = channel.MsgAcknowledgementFromProto(raw)
	require.ErrorIs(t, err, channel.ErrMissingPacket)
}

func TestMsgTimeoutOnCloseFromProto(t *testing.T) {
	raw := &channelproto.MsgTimeoutOnClose{
		Packet:           rawPacket(),
		ProofUnreceived:  []byte{0x1},
		ProofClose:       []byte{0x2},
		ProofHeight:      &clientproto.Height{RevisionHeight: 3},
		NextSequenceRecv: 1,
		Signer:           "cosmos1signer",
	}

	msg, err := channel.MsgTimeoutOnCloseFromProto(raw)
	require.NoError(t, err)
	require.Equal(t, channel.Sequence(1), msg.NextSequenceRecv)
	require.Equal(t, raw, msg.ToProto())

	raw.ProofClose = nil
	_, err = channel.MsgTimeoutOnCloseFromProto(raw)
	require.ErrorIs(t, err, channel.ErrInvalidProof)
}

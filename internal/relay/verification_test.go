package relay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/connection"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/internal/relay"
	"github.com/tendermint/ibc/lightclients/mock"
)

// recvMsg updates the client of A on B and builds a MsgRecvPacket with a
// proof of the commitment of packet on A.
func recvMsg(t *testing.T, r *relay.Relayer, packet channel.Packet) channel.MsgRecvPacket {
	t.Helper()
	proofHeight, err := r.UpdateClient(r.A)
	require.NoError(t, err)
	path := host.CommitmentPath{PortID: packet.SourcePort, ChannelID: packet.SourceChannel, Sequence: packet.Sequence.Uint64()}
	_, proof, err := r.A.Chain.QueryProof(path, proofHeight)
	require.NoError(t, err)
	return channel.MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: proof,
		ProofHeight:     proofHeight,
		Signer:          "relayer",
	}
}

func requireNotReceived(t *testing.T, e *relay.Endpoint, packet channel.Packet) {
	t.Helper()
	err := e.Chain.View(func(ctx core.ValidationContext) error {
		_, ok, err := ctx.PacketReceipt(host.ReceiptPath{
			PortID:    packet.DestinationPort,
			ChannelID: packet.DestinationChannel,
			Sequence:  packet.Sequence.Uint64(),
		})
		require.False(t, ok)
		return err
	})
	require.NoError(t, err)
}

func TestRecvPacketRejectsBadProofs(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	packet, err := r.Send(r.A, []byte("ping"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		malleate func(*channel.MsgRecvPacket)
		expErr   error
	}{
		{"data differs from commitment", func(msg *channel.MsgRecvPacket) {
			msg.Packet.Data = []byte("pong")
		}, channel.ErrPacketVerificationFailed},
		{"proof height above client height", func(msg *channel.MsgRecvPacket) {
			msg.ProofHeight = msg.ProofHeight.Increment()
		}, client.ErrInvalidProofHeight},
		{"proof from another path", func(msg *channel.MsgRecvPacket) {
			_, proof, err := r.A.Chain.QueryProof(host.ChannelEndPath{PortID: r.A.PortID, ChannelID: r.A.ChannelID}, msg.ProofHeight)
			require.NoError(t, err)
			msg.ProofCommitment = proof
		}, channel.ErrPacketVerificationFailed},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			msg := recvMsg(t, r, packet)
			tc.malleate(&msg)

			_, err := r.B.Chain.Deliver(msg)
			require.ErrorIs(t, err, tc.expErr)
			requireNotReceived(t, r.B, packet)
			require.Zero(t, p.echoB.Stats().Received)
		})
	}

	// the untouched message is still accepted
	_, err = r.B.Chain.Deliver(recvMsg(t, r, packet))
	require.NoError(t, err)
	require.Equal(t, 1, p.echoB.Stats().Received)
}

func TestRecvPacketBeforeDelayPeriod(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, time.Minute)
	r := p.relayer

	packet, err := r.Send(r.A, []byte("slow"), channel.TimeoutHeightNever(), time.Time{})
	require.NoError(t, err)

	// delivered in the block that updated the client
	msg := recvMsg(t, r, packet)
	_, err = r.B.Chain.Deliver(msg)
	var delayErr connection.DelayPeriodNotPassedError
	require.ErrorAs(t, err, &delayErr)
	require.ErrorIs(t, err, connection.ErrDelayPeriodNotPassed)
	require.Greater(t, delayErr.EarliestTime, delayErr.CurrentTime)
	requireNotReceived(t, r.B, packet)

	// a minute of blocks later the same proof is accepted
	blocks := int(time.Minute / r.B.Chain.BlockTime())
	for i := 0; i < blocks; i++ {
		_, err := r.B.Chain.Commit()
		require.NoError(t, err)
	}
	_, err = r.B.Chain.Deliver(msg)
	require.NoError(t, err)
	require.Equal(t, 1, p.echoB.Stats().Received)
}

func TestFrozenClientRejectsMessages(t *testing.T) {
	p := setupPath(t, channel.OrderUnordered, 0)
	r := p.relayer

	// a header of chain-a conflicting with the one the client on chain-b
	// already trusts at its latest height
	var latest client.Height
	err := r.B.Chain.View(func(ctx core.ValidationContext) error {
		cs, err := ctx.ClientState(r.B.ClientID)
		if err != nil {
			return err
		}
		latest = cs.LatestHeight()
		return nil
	})
	require.NoError(t, err)
	trusted, err := r.A.Chain.HeaderAt(latest)
	require.NoError(t, err)
	conflicting := trusted
	conflicting.Root = commitment.Root("forged root")
	raw, err := conflicting.ToAny()
	require.NoError(t, err)

	res, err := r.B.Chain.Deliver(client.MsgUpdateClient{ClientID: r.B.ClientID, ClientMessage: raw, Signer: "relayer"})
	require.NoError(t, err)
	require.Contains(t, res.Events, client.ClientMisbehaviourEvent{ClientID: r.B.ClientID, ClientType: mock.ClientType})

	counters := func() (seq channel.Sequence, conns uint64) {
		err := r.B.Chain.View(func(ctx core.ValidationContext) (err error) {
			seq, err = ctx.NextSequenceSend(host.SeqSendPath{PortID: r.B.PortID, ChannelID: r.B.ChannelID})
			if err != nil {
				return err
			}
			conns, err = ctx.ConnectionCounter()
			return err
		})
		require.NoError(t, err)
		return seq, conns
	}
	seqBefore, connsBefore := counters()

	_, err = r.Send(r.B, []byte("ping"), channel.TimeoutHeightNever(), time.Time{})
	var notActive client.ClientNotActiveError
	require.ErrorAs(t, err, &notActive)
	require.Equal(t, client.Frozen, notActive.Status)

	self, err := r.B.Chain.LatestHeader()
	require.NoError(t, err)
	selfClient, err := mock.NewClientState(self).ToAny()
	require.NoError(t, err)
	_, err = r.B.Chain.Deliver(connection.MsgConnectionOpenTry{
		ClientID:             r.B.ClientID,
		ClientState:          selfClient,
		Counterparty:         connection.NewCounterparty(r.A.ClientID, r.A.ConnectionID, r.A.Chain.Prefix()),
		CounterpartyVersions: connection.CompatibleVersions(),
		ProofInit:            commitment.ProofBytes("proof"),
		ProofClient:          commitment.ProofBytes("proof"),
		ProofConsensus:       commitment.ProofBytes("proof"),
		ProofHeight:          latest,
		ConsensusHeight:      self.Height,
		Signer:               "relayer",
	})
	require.ErrorAs(t, err, &notActive)
	require.ErrorIs(t, err, client.ErrClientNotActive)

	seqAfter, connsAfter := counters()
	require.Equal(t, seqBefore, seqAfter)
	require.Equal(t, connsBefore, connsAfter)

	// updates are refused as well
	next, err := r.A.Chain.Commit()
	require.NoError(t, err)
	raw, err = next.ToAny()
	require.NoError(t, err)
	_, err = r.B.Chain.Deliver(client.MsgUpdateClient{ClientID: r.B.ClientID, ClientMessage: raw, Signer: "relayer"})
	require.ErrorIs(t, err, client.ErrClientNotActive)
}

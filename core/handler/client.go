package handler

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/host"
)

// CreateClientValidate decodes the initial states and checks that the
// client they describe can be created.
func CreateClientValidate(ctx core.ValidationContext, msg client.MsgCreateClient) error {
	cs, consensus, err := decodeCreateClient(ctx, msg)
	if err != nil {
		return err
	}
	clientID, err := nextClientID(ctx, cs.ClientType())
	if err != nil {
		return err
	}
	if _, err := ctx.ClientState(clientID); err == nil {
		return errorsmod.Wrapf(client.ErrClientAlreadyExists, "client %s", clientID)
	}
	if consensus.Timestamp().IsSet() {
		return nil
	}
	return errorsmod.Wrap(client.ErrInvalidConsensusState, "consensus state timestamp cannot be unset")
}

// CreateClientExecute stores a new client and its first consensus state.
func CreateClientExecute(ctx core.ExecutionContext, msg client.MsgCreateClient) error {
	cs, consensus, err := decodeCreateClient(ctx, msg)
	if err != nil {
		return err
	}
	clientID, err := nextClientID(ctx, cs.ClientType())
	if err != nil {
		return err
	}

	if err := cs.Initialise(ctx, clientID, consensus); err != nil {
		return err
	}
	if err := storeUpdateMeta(ctx, clientID, cs.LatestHeight()); err != nil {
		return err
	}
	if err := ctx.IncreaseClientCounter(); err != nil {
		return err
	}

	if err := ctx.LogMessage("success: generated client id " + clientID.String()); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(events.MessageClient); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(client.CreateClientEvent{
		ClientID:        clientID,
		ClientType:      cs.ClientType(),
		ConsensusHeight: cs.LatestHeight(),
	})
}

func decodeCreateClient(ctx core.ValidationContext, msg client.MsgCreateClient) (client.ClientState, client.ConsensusState, error) {
	cs, err := ctx.Codec().DecodeClientState(msg.ClientState)
	if err != nil {
		return nil, nil, err
	}
	if err := cs.Validate(); err != nil {
		return nil, nil, err
	}
	consensus, err := ctx.Codec().DecodeConsensusState(msg.ConsensusState)
	if err != nil {
		return nil, nil, err
	}
	if cs.ClientType() != consensus.ClientType() {
		return nil, nil, errorsmod.Wrapf(
			client.ErrClientTypeMismatch,
			"client state type %s, consensus state type %s", cs.ClientType(), consensus.ClientType(),
		)
	}
	return cs, consensus, nil
}

func nextClientID(ctx core.ValidationContext, clientType host.ClientType) (host.ClientID, error) {
	counter, err := ctx.ClientCounter()
	if err != nil {
		return host.ClientID{}, err
	}
	return host.NewClientID(clientType, counter)
}

// storeUpdateMeta records the host time and height at which the consensus
// state of clientID at height was stored.
func storeUpdateMeta(ctx core.ExecutionContext, clientID host.ClientID, height client.Height) error {
	hostTime, err := ctx.HostTimestamp()
	if err != nil {
		return err
	}
	hostHeight, err := ctx.HostHeight()
	if err != nil {
		return err
	}
	return ctx.StoreUpdateMeta(clientID, height, hostTime, hostHeight)
}

// UpdateClientValidate verifies a header or misbehaviour against an active
// client without mutating it.
func UpdateClientValidate(ctx core.ValidationContext, msg client.MsgUpdateClient) error {
	cs, err := ctx.ClientState(msg.ClientID)
	if err != nil {
		return err
	}
	if err := client.VerifyActive(ctx, cs, msg.ClientID); err != nil {
		return err
	}
	clientMsg, err := ctx.Codec().DecodeClientMessage(msg.ClientMessage)
	if err != nil {
		return err
	}
	return cs.VerifyClientMessage(ctx, msg.ClientID, clientMsg)
}

// UpdateClientExecute applies a verified message: it freezes the client on
// misbehaviour and stores the new consensus states otherwise.
func UpdateClientExecute(ctx core.ExecutionContext, msg client.MsgUpdateClient) error {
	cs, err := ctx.ClientState(msg.ClientID)
	if err != nil {
		return err
	}
	clientMsg, err := ctx.Codec().DecodeClientMessage(msg.ClientMessage)
	if err != nil {
		return err
	}

	misbehaving, err := cs.CheckForMisbehaviour(ctx, msg.ClientID, clientMsg)
	if err != nil {
		return err
	}
	if misbehaving {
		if err := cs.UpdateStateOnMisbehaviour(ctx, msg.ClientID, clientMsg); err != nil {
			return err
		}
		if err := ctx.LogMessage("success: client frozen on misbehaviour"); err != nil {
			return err
		}
		if err := ctx.EmitIBCEvent(events.MessageClient); err != nil {
			return err
		}
		return ctx.EmitIBCEvent(client.ClientMisbehaviourEvent{ClientID: msg.ClientID, ClientType: cs.ClientType()})
	}

	heights, err := cs.UpdateState(ctx, msg.ClientID, clientMsg)
	if err != nil {
		return err
	}
	for _, h := range heights {
		if err := storeUpdateMeta(ctx, msg.ClientID, h); err != nil {
			return err
		}
	}

	if err := ctx.LogMessage("success: client updated"); err != nil {
		return err
	}
	if err := ctx.EmitIBCEvent(events.MessageClient); err != nil {
		return err
	}
	return ctx.EmitIBCEvent(client.UpdateClientEvent{
		ClientID:         msg.ClientID,
		ClientType:       cs.ClientType(),
		ConsensusHeights: heights,
	})
}

// Package handler implements the IBC message handlers. Every message is
// handled in two phases: a validate phase against a read-only
// core.ValidationContext that decides whether the message is acceptable,
// and an execute phase against a core.ExecutionContext that applies it. The
// execute phase assumes the validate phase passed on the same state.
package handler

import (
	"context"
	"fmt"
	"runtime"
	"time"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/client"
	"github.com/tendermint/ibc/core/connection"
	ibcerrors "github.com/tendermint/ibc/core/errors"
	"github.com/tendermint/ibc/libs/log"
)

// Handler dispatches decoded messages to their handlers.
type Handler struct {
	logger  log.Logger
	metrics *Metrics
	router  core.Router
}

// HandlerOption sets an optional parameter on the Handler.
type HandlerOption func(*Handler)

// WithMetrics sets the metrics.
func WithMetrics(metrics *Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = metrics }
}

// NewHandler returns a Handler routing channel and packet callbacks through
// router.
func NewHandler(router core.Router, logger log.Logger, options ...HandlerOption) *Handler {
	h := &Handler{
		logger:  logger,
		metrics: NopMetrics(),
		router:  router,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Validate runs the validate phase of msg. It never mutates state.
func (h *Handler) Validate(ctx core.ValidationContext, msg core.Msg) error {
	return ibcerrors.FromError(h.validate(ctx, msg))
}

func (h *Handler) validate(ctx core.ValidationContext, msg core.Msg) error {
	switch msg := msg.(type) {
	case client.MsgCreateClient:
		return CreateClientValidate(ctx, msg)
	case client.MsgUpdateClient:
		return UpdateClientValidate(ctx, msg)

	case connection.MsgConnectionOpenInit:
		return ConnOpenInitValidate(ctx, msg)
	case connection.MsgConnectionOpenTry:
		return ConnOpenTryValidate(ctx, msg)
	case connection.MsgConnectionOpenAck:
		return ConnOpenAckValidate(ctx, msg)
	case connection.MsgConnectionOpenConfirm:
		return ConnOpenConfirmValidate(ctx, msg)

	case channel.MsgChannelOpenInit:
		return ChanOpenInitValidate(ctx, h.router, msg)
	case channel.MsgChannelOpenTry:
		return ChanOpenTryValidate(ctx, h.router, msg)
	case channel.MsgChannelOpenAck:
		return ChanOpenAckValidate(ctx, h.router, msg)
	case channel.MsgChannelOpenConfirm:
		return ChanOpenConfirmValidate(ctx, h.router, msg)
	case channel.MsgChannelCloseInit:
		return ChanCloseInitValidate(ctx, h.router, msg)
	case channel.MsgChannelCloseConfirm:
		return ChanCloseConfirmValidate(ctx, h.router, msg)

	case channel.MsgRecvPacket:
		return RecvPacketValidate(ctx, msg)
	case channel.MsgAcknowledgement:
		return AcknowledgePacketValidate(ctx, msg)
	case channel.MsgTimeout:
		return TimeoutPacketValidate(ctx, msg)
	case channel.MsgTimeoutOnClose:
		return TimeoutOnCloseValidate(ctx, msg)

	default:
		return errorsmod.Wrapf(ibcerrors.ErrUnknownMessage, "%T", msg)
	}
}

// Execute runs the execute phase of msg. It must only be called after
// Validate accepted msg against the same state.
func (h *Handler) Execute(ctx core.ExecutionContext, msg core.Msg) error {
	return ibcerrors.FromError(h.execute(ctx, msg))
}

func (h *Handler) execute(ctx core.ExecutionContext, msg core.Msg) error {
	switch msg := msg.(type) {
	case client.MsgCreateClient:
		return CreateClientExecute(ctx, msg)
	case client.MsgUpdateClient:
		return UpdateClientExecute(ctx, msg)

	case connection.MsgConnectionOpenInit:
		return ConnOpenInitExecute(ctx, msg)
	case connection.MsgConnectionOpenTry:
		return ConnOpenTryExecute(ctx, msg)
	case connection.MsgConnectionOpenAck:
		return ConnOpenAckExecute(ctx, msg)
	case connection.MsgConnectionOpenConfirm:
		return ConnOpenConfirmExecute(ctx, msg)

	case channel.MsgChannelOpenInit:
		return ChanOpenInitExecute(ctx, h.router, msg)
	case channel.MsgChannelOpenTry:
		return ChanOpenTryExecute(ctx, h.router, msg)
	case channel.MsgChannelOpenAck:
		return ChanOpenAckExecute(ctx, h.router, msg)
	case channel.MsgChannelOpenConfirm:
		return ChanOpenConfirmExecute(ctx, h.router, msg)
	case channel.MsgChannelCloseInit:
		return ChanCloseInitExecute(ctx, h.router, msg)
	case channel.MsgChannelCloseConfirm:
		return ChanCloseConfirmExecute(ctx, h.router, msg)

	case channel.MsgRecvPacket:
		return RecvPacketExecute(ctx, h.router, msg)
	case channel.MsgAcknowledgement:
		return AcknowledgePacketExecute(ctx, h.router, msg)
	case channel.MsgTimeout:
		return TimeoutPacketExecute(ctx, h.router, msg)
	case channel.MsgTimeoutOnClose:
		return TimeoutOnCloseExecute(ctx, h.router, msg)

	default:
		return errorsmod.Wrapf(ibcerrors.ErrUnknownMessage, "%T", msg)
	}
}

// Deliver validates and then executes msg. The execute phase is skipped if
// validation fails.
func (h *Handler) Deliver(ctx core.ExecutionContext, msg core.Msg) (err error) {
	start := time.Now()
	defer func() {
		h.observe(msg.TypeURL(), start, err)
	}()

	if err = h.Validate(ctx, msg); err != nil {
		h.logger.Debug("message rejected", "type_url", msg.TypeURL(), "err", err)
		return err
	}
	if err = h.Execute(ctx, msg); err != nil {
		h.logger.Error("message execution failed", "type_url", msg.TypeURL(), "err", err)
		return err
	}
	h.logger.Debug("message delivered", "type_url", msg.TypeURL())
	return nil
}

// SendPacket validates and commits a packet built by an application.
func (h *Handler) SendPacket(ctx core.ExecutionContext, packet channel.Packet) (err error) {
	start := time.Now()
	defer func() {
		h.observe("send_packet", start, err)
	}()

	if err = SendPacket(ctx, packet); err != nil {
		return err
	}
	h.metrics.PacketsSent.Add(1)
	h.logger.Debug("packet sent", "packet", packet)
	return nil
}

func (h *Handler) observe(typeURL string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = ibcerrors.Codespace(err)
	}
	h.metrics.Messages.With("type_url", typeURL, "result", result).Add(1)
	h.metrics.MessageDuration.With("type_url", typeURL).Observe(time.Since(start).Seconds())
}

// ValidateBatch runs the validate phase of every message concurrently and
// returns the first failure. Validation is read-only, so msgs are checked
// against the same state; messages that depend on each other must be
// delivered in order instead.
func (h *Handler) ValidateBatch(ctx context.Context, vctx core.ValidationContext, msgs []core.Msg) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, msg := range msgs {
		i, msg := i, msg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := h.Validate(vctx, msg); err != nil {
				return fmt.Errorf("message %d (%s): %w", i, msg.TypeURL(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

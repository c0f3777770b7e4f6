// Package gateway implements the cross-layer authorization and outbound
// message construction for an L2 contract paired with an L1 counterpart.
package gateway

import (
	"context"
	"math/big"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/aliasing"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/calldata"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/metrics"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type GatewayConfig struct {
	// Emitter is the L2 address of the contract that owns this gateway
	Emitter common.Address

	Policy config.CounterpartPolicy
	// Admin may update the counterpart under CounterpartPolicyAdmin
	Admin common.Address
}

// CrossLayerGateway owns the counterpart registration of one contract
// instance. It is not safe for concurrent use; the owning contract
// serializes invocations.
type CrossLayerGateway struct {
	registration *types.CounterpartRegistration
	transport    transport.IOutboundTransport
	sink         events.IEventSink
	config       *GatewayConfig
	metrics      metrics.Metricer
	logger       *zap.Logger
}

// NewCrossLayerGateway binds a gateway to registration, which stays owned by
// the caller's contract state.
func NewCrossLayerGateway(
	registration *types.CounterpartRegistration,
	t transport.IOutboundTransport,
	sink events.IEventSink,
	cfg *GatewayConfig,
	m metrics.Metricer,
	logger *zap.Logger,
) *CrossLayerGateway {
	gatewayConfig := GatewayConfig{}
	if cfg != nil {
		gatewayConfig = *cfg
	}
	if gatewayConfig.Policy == "" {
		gatewayConfig.Policy = config.CounterpartPolicyOpen
	}
	if m == nil {
		m = metrics.NoopMetrics{}
	}
	return &CrossLayerGateway{
		registration: registration,
		transport:    t,
		sink:         sink,
		config:       &gatewayConfig,
		metrics:      m,
		logger:       logger,
	}
}

// GetCounterpart returns the registered L1 target
func (g *CrossLayerGateway) GetCounterpart() common.Address {
	return g.registration.L1Target
}

func (g *CrossLayerGateway) GetCounterpartStatus() types.CounterpartStatus {
	return g.registration.Status()
}

// SetCounterpart overwrites the registered L1 target. Under the open policy
// any caller may do this, including setting the zero address.
func (g *CrossLayerGateway) SetCounterpart(caller common.Address, newTarget common.Address) error {
	if g.config.Policy == config.CounterpartPolicyAdmin && caller != g.config.Admin {
		return ErrCounterpartAdminOnly
	}

	previous := g.registration.L1Target
	g.registration.L1Target = newTarget

	g.logger.Sugar().Infow("Updated L1 target",
		"caller", caller.Hex(),
		"previous", previous.Hex(),
		"l1Target", newTarget.Hex(),
	)
	return nil
}

// AuthorizeInbound reports whether caller is the bridge alias of the
// registered counterpart.
func (g *CrossLayerGateway) AuthorizeInbound(caller common.Address) bool {
	return aliasing.IsAliasOf(caller, g.registration.L1Target)
}

// BuildAndDispatch sends selector(signature) ‖ argsEncoded to the
// counterpart. Exactly one CrossLayerMessageCreated event is emitted per
// accepted message; nothing is emitted on failure.
func (g *CrossLayerGateway) BuildAndDispatch(ctx context.Context, signature string, argsEncoded []byte) (*big.Int, error) {
	msg := calldata.NewOutboundMessage(g.registration.L1Target, signature, argsEncoded)

	onDone := g.metrics.RecordDispatch()
	messageId, err := g.transport.Submit(ctx, msg.Destination, msg.Payload)
	onDone(err)
	if err != nil {
		g.logger.Sugar().Warnw("Outbound dispatch failed",
			"destination", msg.Destination.Hex(),
			"selector", msg.Selector.Hex(),
			"error", err,
		)
		return nil, ErrOutboundDispatchFailed.WithCause(err)
	}

	event := &types.CrossLayerMessageCreated{
		Emitter:     g.config.Emitter,
		MessageId:   messageId,
		Destination: msg.Destination,
		Selector:    msg.Selector,
	}
	// The transport has accepted the message, so a sink failure cannot undo it.
	if err := g.sink.Emit(ctx, event); err != nil {
		g.logger.Sugar().Errorw("Failed to emit event",
			"event", types.CrossLayerMessageCreatedEventName,
			"messageId", messageId.String(),
			"error", err,
		)
	}

	return messageId, nil
}

// Package greeter is the L2 greeter contract: a greeting that only the L1
// counterpart may change, and an operation that forwards a greeting to L1.
package greeter

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/aliasing"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/calldata"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/gateway"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/metrics"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/util"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type Config struct {
	// Address is the L2 address of this contract instance
	Address common.Address

	// InitialL1Target is the counterpart used when no state has been stored yet
	InitialL1Target common.Address

	CounterpartPolicy config.CounterpartPolicy
	AdminAddress      common.Address
}

// Greeter is one deployed contract instance. Invocations are serialized and
// each one either fully applies and persists or leaves no trace.
type Greeter struct {
	mu sync.Mutex

	config  *Config
	store   persistence.IGreeterPersistence
	gateway *gateway.CrossLayerGateway
	metrics metrics.Metricer
	logger  *zap.Logger

	state  types.ContractState
	loaded bool
}

func NewGreeter(
	cfg *Config,
	store persistence.IGreeterPersistence,
	t transport.IOutboundTransport,
	sink events.IEventSink,
	m metrics.Metricer,
	logger *zap.Logger,
) *Greeter {
	if m == nil {
		m = metrics.NoopMetrics{}
	}
	g := &Greeter{
		config:  cfg,
		store:   store,
		metrics: m,
		logger:  logger,
	}
	g.gateway = gateway.NewCrossLayerGateway(&g.state.Registration, t, sink, &gateway.GatewayConfig{
		Emitter: cfg.Address,
		Policy:  cfg.CounterpartPolicy,
		Admin:   cfg.AdminAddress,
	}, m, logger)
	return g
}

// Address returns the L2 address of this instance
func (g *Greeter) Address() common.Address {
	return g.config.Address
}

// GetL1Target returns the registered counterpart
func (g *Greeter) GetL1Target() (common.Address, error) {
	var target common.Address
	err := g.invoke(false, func() error {
		target = g.gateway.GetCounterpart()
		return nil
	})
	return target, err
}

// GetCounterpartStatus reports whether a non-zero counterpart is registered
func (g *Greeter) GetCounterpartStatus() (types.CounterpartStatus, error) {
	var status types.CounterpartStatus
	err := g.invoke(false, func() error {
		status = g.gateway.GetCounterpartStatus()
		return nil
	})
	return status, err
}

// UpdateL1Target registers a new counterpart
func (g *Greeter) UpdateL1Target(caller common.Address, target common.Address) error {
	return g.invoke(true, func() error {
		return g.gateway.SetCounterpart(caller, target)
	})
}

// Greet returns the current greeting
func (g *Greeter) Greet() (string, error) {
	var greeting string
	err := g.invoke(false, func() error {
		greeting = g.state.Greeting
		return nil
	})
	return greeting, err
}

// SetGreeting replaces the greeting. caller must be the alias of the
// registered counterpart.
func (g *Greeter) SetGreeting(caller common.Address, greeting string) error {
	return g.invoke(true, func() error {
		if !g.gateway.AuthorizeInbound(caller) {
			g.metrics.RecordUnauthorized()
			g.logger.Sugar().Warnw("Rejected greeting update",
				"caller", caller.Hex(),
				"callerUnaliased", aliasing.UndoAliasOf(caller).Hex(),
				"l1Target", g.gateway.GetCounterpart().Hex(),
			)
			return gateway.ErrUnauthorized
		}
		g.state.Greeting = greeting
		return nil
	})
}

// SetGreetingInL1 asks the L1 counterpart to set its greeting and returns the
// outbound message id. Local state is not changed.
func (g *Greeter) SetGreetingInL1(ctx context.Context, caller common.Address, greeting string) (*big.Int, error) {
	args, err := util.EncodeString(greeting)
	if err != nil {
		return nil, fmt.Errorf("failed to encode greeting: %w", err)
	}

	var messageId *big.Int
	err = g.invoke(false, func() error {
		id, err := g.gateway.BuildAndDispatch(ctx, calldata.SetGreetingSignature, args)
		if err != nil {
			return err
		}
		messageId = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.Sugar().Infow("Sent greeting to L1",
		"caller", caller.Hex(),
		"messageId", messageId.String(),
	)
	return messageId, nil
}

// invoke runs fn under the instance lock against the loaded state. If fn
// fails, or persisting a mutation fails, the state is restored.
func (g *Greeter) invoke(mutates bool, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.ensureLoaded(); err != nil {
		return err
	}

	snapshot := g.state
	if err := fn(); err != nil {
		g.state = snapshot
		return err
	}

	if mutates {
		if err := g.store.SaveContractState(g.config.Address, &g.state); err != nil {
			g.state = snapshot
			return fmt.Errorf("failed to persist contract state: %w", err)
		}
	}
	return nil
}

func (g *Greeter) ensureLoaded() error {
	if g.loaded {
		return nil
	}

	stored, err := g.store.LoadContractState(g.config.Address)
	if err != nil {
		return fmt.Errorf("failed to load contract state: %w", err)
	}
	if stored != nil {
		g.state = *stored
	} else {
		g.state = types.ContractState{
			Registration: types.CounterpartRegistration{L1Target: g.config.InitialL1Target},
		}
	}
	g.loaded = true

	g.logger.Sugar().Infow("Loaded greeter state",
		"contract", g.config.Address.Hex(),
		"fromStore", stored != nil,
		"l1Target", g.state.Registration.L1Target.Hex(),
	)
	return nil
}

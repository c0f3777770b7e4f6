// Package router decodes raw ABI calldata and dispatches it to a greeter.
package router

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/calldata"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/gateway"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/greeter"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/metrics"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// ErrMalformedCalldata is the cause of a revert for calldata that does not
// decode against the greeter ABI.
var ErrMalformedCalldata = errors.New("malformed calldata")

type Router struct {
	greeter *greeter.Greeter
	abi     abi.ABI
	metrics metrics.Metricer
	logger  *zap.Logger
}

func NewRouter(g *greeter.Greeter, m metrics.Metricer, logger *zap.Logger) (*Router, error) {
	parsed, err := abi.JSON(strings.NewReader(GreeterL2ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse greeter ABI: %w", err)
	}
	if m == nil {
		m = metrics.NoopMetrics{}
	}
	return &Router{
		greeter: g,
		abi:     parsed,
		metrics: m,
		logger:  logger,
	}, nil
}

// ABI returns the parsed greeter ABI
func (r *Router) ABI() abi.ABI {
	return r.abi
}

// Call executes data as an invocation from caller. Contract-level failures
// are reported as a reverted CallResult; the returned error is reserved for
// infrastructure failures such as storage errors.
func (r *Router) Call(ctx context.Context, caller common.Address, data []byte) (*types.CallResult, error) {
	method, args, err := r.decode(data)
	if err != nil {
		r.metrics.RecordInvocation("unknown", metrics.OutcomeReverted)
		return reverted(caller, err.Error()), nil
	}

	ret, logs, err := r.dispatch(ctx, caller, method, args)
	if err != nil {
		var revert *gateway.RevertError
		if errors.As(err, &revert) {
			r.metrics.RecordInvocation(method.Name, metrics.OutcomeReverted)
			r.logger.Sugar().Debugw("Invocation reverted",
				"method", method.Name,
				"caller", caller.Hex(),
				"reason", string(revert.Data),
			)
			result := reverted(caller, string(revert.Data))
			result.ReturnData = append([]byte(nil), revert.Data...)
			return result, nil
		}
		r.metrics.RecordInvocation(method.Name, metrics.OutcomeFailed)
		return nil, fmt.Errorf("%s failed: %w", method.Name, err)
	}

	r.metrics.RecordInvocation(method.Name, metrics.OutcomeSuccess)
	return &types.CallResult{
		ReturnData: ret,
		Logs:       logs,
		Caller:     caller,
	}, nil
}

func (r *Router) decode(data []byte) (*abi.Method, []interface{}, error) {
	selector, argData, err := calldata.SplitPayload(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedCalldata, err)
	}
	method, err := r.abi.MethodById(selector[:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unknown selector %s", ErrMalformedCalldata, selector.Hex())
	}
	args, err := method.Inputs.Unpack(argData)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to decode %s arguments: %v", ErrMalformedCalldata, method.Name, err)
	}
	if err := checkAddressWords(method, argData); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedCalldata, err)
	}
	return method, args, nil
}

// checkAddressWords rejects address arguments whose upper 12 bytes are not
// zero. The abi unpacker keeps the low 20 bytes of the word silently.
// Every greeter input occupies exactly one head word.
func checkAddressWords(method *abi.Method, argData []byte) error {
	for i, input := range method.Inputs {
		if input.Type.T != abi.AddressTy {
			continue
		}
		word := argData[i*32 : (i+1)*32]
		for _, b := range word[:common.HashLength-common.AddressLength] {
			if b != 0 {
				return fmt.Errorf("argument %q of %s is not a valid address", input.Name, method.Name)
			}
		}
	}
	return nil
}

func (r *Router) dispatch(ctx context.Context, caller common.Address, method *abi.Method, args []interface{}) ([]byte, []*ethTypes.Log, error) {
	switch method.Name {
	case MethodGetL1Target:
		target, err := r.greeter.GetL1Target()
		if err != nil {
			return nil, nil, err
		}
		ret, err := method.Outputs.Pack(target)
		return ret, nil, err

	case MethodUpdateL1Target:
		return nil, nil, r.greeter.UpdateL1Target(caller, args[0].(common.Address))

	case MethodGreet:
		greeting, err := r.greeter.Greet()
		if err != nil {
			return nil, nil, err
		}
		ret, err := method.Outputs.Pack(greeting)
		return ret, nil, err

	case MethodSetGreeting:
		return nil, nil, r.greeter.SetGreeting(caller, args[0].(string))

	case MethodSetGreetingInL1:
		messageId, err := r.greeter.SetGreetingInL1(ctx, caller, args[0].(string))
		if err != nil {
			return nil, nil, err
		}
		ret, err := method.Outputs.Pack(messageId)
		if err != nil {
			return nil, nil, err
		}
		log := events.ToLog(&types.CrossLayerMessageCreated{
			Emitter:   r.greeter.Address(),
			MessageId: new(big.Int).Set(messageId),
		})
		return ret, []*ethTypes.Log{log}, nil

	default:
		return nil, nil, gateway.NewRevertError(fmt.Sprintf("method %s is not routed", method.Name))
	}
}

func reverted(caller common.Address, reason string) *types.CallResult {
	return &types.CallResult{
		ReturnData:   []byte(reason),
		Reverted:     true,
		RevertReason: reason,
		Caller:       caller,
	}
}

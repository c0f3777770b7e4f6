// Package inbox simulates the L1→L2 bridge: a message created by an L1
// contract is executed on L2 with the sender rewritten to its alias.
package inbox

import (
	"context"
	"sync/atomic"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/aliasing"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ICallRouter executes calldata against an L2 contract on behalf of caller
type ICallRouter interface {
	Call(ctx context.Context, caller common.Address, data []byte) (*types.CallResult, error)
}

type Inbox struct {
	router ICallRouter
	logger *zap.Logger

	delivered atomic.Uint64
}

func NewInbox(router ICallRouter, logger *zap.Logger) *Inbox {
	return &Inbox{
		router: router,
		logger: logger,
	}
}

// Deliver executes data as if a retryable ticket from l1Sender was redeemed
func (i *Inbox) Deliver(ctx context.Context, l1Sender common.Address, data []byte) (*types.CallResult, error) {
	alias := aliasing.AliasOf(l1Sender)
	ticket := i.delivered.Add(1)

	i.logger.Sugar().Infow("Delivering L1 message",
		"ticket", ticket,
		"l1Sender", l1Sender.Hex(),
		"l2Sender", alias.Hex(),
	)

	result, err := i.router.Call(ctx, alias, data)
	if err != nil {
		return nil, err
	}
	if result.Reverted {
		i.logger.Sugar().Warnw("L1 message reverted on L2",
			"ticket", ticket,
			"reason", result.RevertReason,
		)
	}
	return result, nil
}

// Delivered returns the number of messages delivered so far
func (i *Inbox) Delivered() uint64 {
	return i.delivered.Load()
}

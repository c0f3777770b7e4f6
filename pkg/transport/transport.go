// Package transport defines the outbound L2→L1 messaging primitive and
// its implementations.
package transport

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrPayloadTooLarge is returned when the calldata exceeds what the
	// transport accepts in a single message.
	ErrPayloadTooLarge = errors.New("payload exceeds maximum message size")

	// ErrCapacityExceeded is returned when the transport is temporarily
	// unable to accept more messages.
	ErrCapacityExceeded = errors.New("transport capacity exceeded")
)

// IOutboundTransport submits a message to a destination on the remote layer.
// The returned id identifies the message for later proof/execution on L1.
// Submit is synchronous; delivery on L1 is not.
type IOutboundTransport interface {
	Submit(ctx context.Context, destination common.Address, payload []byte) (*big.Int, error)
}

// IChainStatus is implemented by transports backed by a live chain.
type IChainStatus interface {
	// BlockNumber returns the current L2 block number as seen by ArbSys.
	BlockNumber(ctx context.Context) (*big.Int, error)
}

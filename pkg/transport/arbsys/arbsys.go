// Package arbsys submits outbound messages on-chain through the ArbSys
// sendTxToL1 precompile.
package arbsys

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/contractCaller"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Transport struct {
	caller contractCaller.IContractCaller
	logger *zap.Logger
}

var _ transport.IOutboundTransport = (*Transport)(nil)
var _ transport.IChainStatus = (*Transport)(nil)

func NewTransport(caller contractCaller.IContractCaller, logger *zap.Logger) *Transport {
	return &Transport{
		caller: caller,
		logger: logger,
	}
}

// Submit sends the payload to destination and returns the L2ToL1Tx position,
// which is the id the L1 outbox uses to execute the message.
func (t *Transport) Submit(ctx context.Context, destination common.Address, payload []byte) (*big.Int, error) {
	receipt, err := t.caller.SendTxToL1(ctx, destination, payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit message to %s", destination.Hex())
	}

	event, err := t.caller.GetL2ToL1TxFromReceipt(receipt)
	if err != nil {
		return nil, errors.Wrapf(err, "message submitted but id could not be read")
	}
	if event.Position == nil {
		return nil, fmt.Errorf("L2ToL1Tx event in tx %s has no position", receipt.TxHash.Hex())
	}

	t.logger.Sugar().Infow("Submitted L2 to L1 message",
		"txHash", receipt.TxHash.Hex(),
		"destination", destination.Hex(),
		"position", event.Position.String(),
	)

	return new(big.Int).Set(event.Position), nil
}

// CheckChain confirms the connected RPC serves the ArbSys precompile and
// returns its ArbOS version.
func (t *Transport) CheckChain(ctx context.Context) (*big.Int, error) {
	version, err := t.caller.GetArbOSVersion(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "ArbSys is not reachable, is the rpc an Arbitrum chain?")
	}
	return version, nil
}

func (t *Transport) BlockNumber(ctx context.Context) (*big.Int, error) {
	blockNumber, err := t.caller.GetArbBlockNumber(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read arb block number")
	}
	return blockNumber, nil
}

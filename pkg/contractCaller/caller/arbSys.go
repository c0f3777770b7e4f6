package caller

import (
	"context"
	"fmt"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/bindings/ArbSys"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

func (cc *ContractCaller) SendTxToL1(
	ctx context.Context,
	destination common.Address,
	data []byte,
) (*ethereumTypes.Receipt, error) {
	txOpts, err := cc.buildTransactionOpts(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build transaction options")
	}

	tx, err := cc.arbSys.SendTxToL1(txOpts, destination, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create sendTxToL1 transaction for destination %s", destination.Hex())
	}

	return cc.signAndSendTransaction(ctx, tx, "SendTxToL1")
}

func (cc *ContractCaller) GetL2ToL1TxFromReceipt(receipt *ethereumTypes.Receipt) (*ArbSys.ArbSysL2ToL1Tx, error) {
	return parseL2ToL1Tx(cc.arbSys, cc.arbSysAddress, receipt)
}

func parseL2ToL1Tx(arbSys *ArbSys.ArbSys, arbSysAddress common.Address, receipt *ethereumTypes.Receipt) (*ArbSys.ArbSysL2ToL1Tx, error) {
	if receipt == nil {
		return nil, fmt.Errorf("receipt is nil")
	}

	parsed, err := ArbSys.ArbSysMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to load ArbSys ABI: %w", err)
	}
	eventId := parsed.Events["L2ToL1Tx"].ID

	for _, log := range receipt.Logs {
		if log == nil || log.Address != arbSysAddress || len(log.Topics) == 0 || log.Topics[0] != eventId {
			continue
		}
		event, err := arbSys.ParseL2ToL1Tx(*log)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse L2ToL1Tx log in tx %s", receipt.TxHash.Hex())
		}
		return event, nil
	}
	return nil, fmt.Errorf("no L2ToL1Tx event found in tx %s", receipt.TxHash.Hex())
}

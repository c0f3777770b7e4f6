package contractCaller

import (
	"context"
	"math/big"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/bindings/ArbSys"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
)

type IContractCaller interface {
	GetArbBlockNumber(ctx context.Context) (*big.Int, error)

	GetArbOSVersion(ctx context.Context) (*big.Int, error)

	// SendTxToL1 submits an L2→L1 message through ArbSys and waits for the
	// transaction to be mined.
	SendTxToL1(ctx context.Context, destination common.Address, data []byte) (*ethereumTypes.Receipt, error)

	// GetL2ToL1TxFromReceipt returns the ArbSys L2ToL1Tx event recorded in
	// receipt.
	GetL2ToL1TxFromReceipt(receipt *ethereumTypes.Receipt) (*ArbSys.ArbSysL2ToL1Tx, error)
}

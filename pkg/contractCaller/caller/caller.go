package caller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/bindings/ArbSys"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/contractCaller"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transactionSigner"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

type ContractCaller struct {
	ethclient     *ethclient.Client
	logger        *zap.Logger
	signer        transactionSigner.ITransactionSigner
	arbSysAddress common.Address

	arbSys *ArbSys.ArbSys
}

var _ contractCaller.IContractCaller = (*ContractCaller)(nil)

func NewContractCaller(
	ethclient *ethclient.Client,
	signer transactionSigner.ITransactionSigner,
	logger *zap.Logger,
) (*ContractCaller, error) {
	chainId, err := ethclient.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if _, ok := config.ChainIdToName[config.ChainId(chainId.Uint64())]; !ok {
		logger.Sugar().Warnw("Connected to a chain that is not a known Arbitrum chain",
			zap.Uint64("chainId", chainId.Uint64()),
		)
	}

	arbSys, err := ArbSys.NewArbSys(config.ArbSysAddress, ethclient)
	if err != nil {
		return nil, fmt.Errorf("failed to create ArbSys contract instance: %w", err)
	}

	return &ContractCaller{
		ethclient:     ethclient,
		logger:        logger,
		signer:        signer,
		arbSysAddress: config.ArbSysAddress,
		arbSys:        arbSys,
	}, nil
}

func (cc *ContractCaller) GetArbBlockNumber(ctx context.Context) (*big.Int, error) {
	blockNumber, err := cc.arbSys.ArbBlockNumber(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, fmt.Errorf("failed to get arb block number: %w", err)
	}
	return blockNumber, nil
}

func (cc *ContractCaller) GetArbOSVersion(ctx context.Context) (*big.Int, error) {
	version, err := cc.arbSys.ArbOSVersion(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, fmt.Errorf("failed to get ArbOS version: %w", err)
	}
	return version, nil
}

package transactionSigner

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/util"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// fallbackGasTipCap is used when the node does not support eth_maxPriorityFeePerGas.
// Arbitrum ignores the tip, so a small value is enough.
var fallbackGasTipCap = big.NewInt(1_000_000)

const baseFeeMultiplier = 2

// PrivateKeySigner signs transactions locally with an ECDSA key
type PrivateKeySigner struct {
	ethClient   *ethclient.Client
	logger      *zap.Logger
	chainID     *big.Int
	privateKey  *ecdsa.PrivateKey
	fromAddress common.Address
}

var _ ITransactionSigner = (*PrivateKeySigner)(nil)

func NewPrivateKeySigner(privateKey string, ethClient *ethclient.Client, logger *zap.Logger) (*PrivateKeySigner, error) {
	pk, err := util.StringToECDSAPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	from, err := util.DeriveAddressFromECDSAPrivateKey(pk)
	if err != nil {
		return nil, err
	}

	chainID, err := ethClient.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	logger.Sugar().Infow("Created private key transaction signer",
		"from", from.Hex(),
		"chainId", chainID.String(),
	)

	return &PrivateKeySigner{
		ethClient:   ethClient,
		logger:      logger,
		chainID:     chainID,
		privateKey:  pk,
		fromAddress: from,
	}, nil
}

// GetTransactOpts returns options that build and sign, but do not send, a transaction
func (pks *PrivateKeySigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pks.privateKey, pks.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyed transactor: %w", err)
	}
	opts.Context = ctx
	opts.NoSend = true
	return opts, nil
}

// SignAndSendTransaction re-prices tx with fresh fee estimates, signs it, sends
// it and waits until it is mined successfully.
func (pks *PrivateKeySigner) SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	maxFeePerGas, gasLimit, err := pks.EstimateGasPriceAndLimit(ctx, tx)
	if err != nil {
		return nil, err
	}
	gasTipCap := pks.suggestGasTipCap(ctx)

	nonce, err := pks.ethClient.PendingNonceAt(ctx, pks.fromAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	unsigned := types.NewTx(&types.DynamicFeeTx{
		ChainID:   pks.chainID,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Gas:       gasLimit,
		To:        tx.To(),
		Value:     tx.Value(),
		Data:      tx.Data(),
	})

	signedTx, err := types.SignTx(unsigned, types.LatestSignerForChainID(pks.chainID), pks.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	pks.logger.Info("SignAndSendTransaction: sending transaction",
		zap.String("to", signedTx.To().Hex()),
		zap.String("maxFeePerGas", maxFeePerGas.String()),
		zap.Uint64("gasLimit", gasLimit),
		zap.Uint64("nonce", nonce),
	)

	if err := pks.ethClient.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, pks.ethClient, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		pks.logger.Error("SignAndSendTransaction: transaction failed",
			zap.String("txHash", receipt.TxHash.Hex()),
			zap.Uint64("status", receipt.Status),
			zap.Uint64("gasUsed", receipt.GasUsed),
		)
		return nil, fmt.Errorf("transaction failed with status %d", receipt.Status)
	}

	pks.logger.Info("SignAndSendTransaction: transaction succeeded",
		zap.String("txHash", receipt.TxHash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
		zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()),
	)

	return receipt, nil
}

// GetFromAddress returns the address derived from the signing key
func (pks *PrivateKeySigner) GetFromAddress() common.Address {
	return pks.fromAddress
}

// EstimateGasPriceAndLimit returns basefee*2+tip as the fee cap and the
// estimated gas limit with a 20% buffer.
func (pks *PrivateKeySigner) EstimateGasPriceAndLimit(ctx context.Context, tx *types.Transaction) (*big.Int, uint64, error) {
	header, err := pks.ethClient.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get latest block header: %w", err)
	}
	gasTipCap := pks.suggestGasTipCap(ctx)

	maxFeePerGas := new(big.Int).Add(
		new(big.Int).Mul(header.BaseFee, big.NewInt(baseFeeMultiplier)),
		gasTipCap,
	)

	gasLimit, err := pks.ethClient.EstimateGas(ctx, ethereum.CallMsg{
		From:      pks.fromAddress,
		To:        tx.To(),
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Value:     tx.Value(),
		Data:      tx.Data(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to estimate gas: %w", err)
	}

	return maxFeePerGas, addGasBuffer(gasLimit), nil
}

func (pks *PrivateKeySigner) suggestGasTipCap(ctx context.Context) *big.Int {
	gasTipCap, err := pks.ethClient.SuggestGasTipCap(ctx)
	if err != nil {
		pks.logger.Sugar().Warnw("cannot get gasTipCap, using fallback", zap.Error(err))
		return fallbackGasTipCap
	}
	return gasTipCap
}

func addGasBuffer(gasLimit uint64) uint64 {
	return gasLimit * 12 / 10
}

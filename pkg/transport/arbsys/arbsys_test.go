package arbsys

import (
	"context"
	"errors"
	"testing"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/contractCaller"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_Submit(t *testing.T) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	ctx := context.Background()
	destination := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	t.Run("returns position as message id", func(t *testing.T) {
		stub := contractCaller.NewMockContractCallerStub()
		tr := NewTransport(stub, l)

		id, err := tr.Submit(ctx, destination, []byte{1})
		require.NoError(t, err)
		assert.Equal(t, int64(0), id.Int64())

		id, err = tr.Submit(ctx, destination, []byte{2})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id.Int64())

		require.Len(t, stub.Sent, 2)
		assert.Equal(t, destination, stub.Sent[1].Destination)
		assert.Equal(t, []byte{2}, stub.Sent[1].Data)
	})

	t.Run("send failure", func(t *testing.T) {
		stub := contractCaller.NewMockContractCallerStub()
		stub.SendErr = errors.New("insufficient funds")
		tr := NewTransport(stub, l)

		_, err := tr.Submit(ctx, destination, []byte{1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient funds")
	})

	t.Run("missing event", func(t *testing.T) {
		stub := contractCaller.NewMockContractCallerStub()
		stub.OmitEvent = true
		tr := NewTransport(stub, l)

		_, err := tr.Submit(ctx, destination, []byte{1})
		require.Error(t, err)
	})
}

func TestTransport_ChainStatus(t *testing.T) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("reports ArbOS version and block number", func(t *testing.T) {
		stub := contractCaller.NewMockContractCallerStub()
		tr := NewTransport(stub, l)

		version, err := tr.CheckChain(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(72), version.Int64())

		_, err = tr.Submit(ctx, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), []byte{1})
		require.NoError(t, err)
		blockNumber, err := tr.BlockNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), blockNumber.Int64())
	})

	t.Run("non-Arbitrum rpc", func(t *testing.T) {
		stub := contractCaller.NewMockContractCallerStub()
		stub.ChainErr = errors.New("execution reverted")
		tr := NewTransport(stub, l)

		_, err := tr.CheckChain(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "execution reverted")

		_, err = tr.BlockNumber(ctx)
		require.Error(t, err)
	})
}

package transactionSigner

import (
	"testing"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestAddGasBuffer(t *testing.T) {
	require.Equal(t, uint64(120_000), addGasBuffer(100_000))
	require.Equal(t, uint64(0), addGasBuffer(0))
}

func TestNewTransactionSigner_RequiresKey(t *testing.T) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	_, err = NewTransactionSigner(&SignerConfig{}, nil, l)
	require.Error(t, err)

	_, err = NewTransactionSigner(nil, nil, l)
	require.Error(t, err)
}

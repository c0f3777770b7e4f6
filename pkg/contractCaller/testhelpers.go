package contractCaller

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/bindings/ArbSys"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
)

// MockContractCallerStub is an in-memory IContractCaller for testing. Every
// SendTxToL1 is recorded and answered with an L2ToL1Tx whose position is the
// number of previous sends.
type MockContractCallerStub struct {
	mu sync.Mutex

	// SendErr, when set, is returned by SendTxToL1.
	SendErr error
	// OmitEvent makes GetL2ToL1TxFromReceipt fail as if the event was missing.
	OmitEvent bool
	// ChainErr, when set, is returned by the ArbSys chain queries.
	ChainErr error

	Sent   []*ArbSys.ArbSysL2ToL1Tx
	events map[common.Hash]*ArbSys.ArbSysL2ToL1Tx
}

var _ IContractCaller = (*MockContractCallerStub)(nil)

func NewMockContractCallerStub() *MockContractCallerStub {
	return &MockContractCallerStub{
		events: make(map[common.Hash]*ArbSys.ArbSysL2ToL1Tx),
	}
}

func (m *MockContractCallerStub) GetArbBlockNumber(ctx context.Context) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ChainErr != nil {
		return nil, m.ChainErr
	}
	return big.NewInt(int64(len(m.Sent))), nil
}

func (m *MockContractCallerStub) GetArbOSVersion(ctx context.Context) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ChainErr != nil {
		return nil, m.ChainErr
	}
	return big.NewInt(72), nil
}

func (m *MockContractCallerStub) SendTxToL1(ctx context.Context, destination common.Address, data []byte) (*ethTypes.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return nil, m.SendErr
	}

	position := big.NewInt(int64(len(m.Sent)))
	txHash := common.BigToHash(new(big.Int).Add(position, big.NewInt(1)))
	event := &ArbSys.ArbSysL2ToL1Tx{
		Destination: destination,
		Position:    position,
		Data:        append([]byte(nil), data...),
	}
	m.Sent = append(m.Sent, event)
	m.events[txHash] = event

	return &ethTypes.Receipt{Status: ethTypes.ReceiptStatusSuccessful, TxHash: txHash}, nil
}

func (m *MockContractCallerStub) GetL2ToL1TxFromReceipt(receipt *ethTypes.Receipt) (*ArbSys.ArbSysL2ToL1Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[receipt.TxHash]
	if !ok || m.OmitEvent {
		return nil, fmt.Errorf("no L2ToL1Tx event found in tx %s", receipt.TxHash.Hex())
	}
	return event, nil
}

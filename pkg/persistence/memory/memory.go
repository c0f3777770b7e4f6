package memory

import (
	"fmt"
	"sync"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// MemoryPersistence is an in-memory implementation of IGreeterPersistence.
// All data is lost when the process exits.
type MemoryPersistence struct {
	mu sync.RWMutex

	contracts map[common.Address]types.ContractState
	nodeState *persistence.NodeState

	closed bool
}

var _ persistence.IGreeterPersistence = (*MemoryPersistence)(nil)

// NewMemoryPersistence creates a new in-memory persistence layer.
func NewMemoryPersistence(logger *zap.Logger) *MemoryPersistence {
	logger.Sugar().Warnw("Using in-memory persistence - ALL DATA WILL BE LOST ON RESTART",
		"hint", "set GREETER_PERSISTENCE_TYPE=badger or redis for durable storage",
	)

	return &MemoryPersistence{
		contracts: make(map[common.Address]types.ContractState),
	}
}

func (m *MemoryPersistence) SaveContractState(contract common.Address, state *types.ContractState) error {
	if state == nil {
		return fmt.Errorf("cannot save nil ContractState")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}

	// ContractState has no reference fields, so a value copy is a deep copy
	m.contracts[contract] = *state
	return nil
}

func (m *MemoryPersistence) LoadContractState(contract common.Address) (*types.ContractState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("persistence layer is closed")
	}

	state, exists := m.contracts[contract]
	if !exists {
		return nil, nil // Not found is not an error
	}
	return &state, nil
}

// SaveNodeState persists node operational state.
func (m *MemoryPersistence) SaveNodeState(state *persistence.NodeState) error {
	if state == nil {
		return fmt.Errorf("cannot save nil NodeState")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}

	copied := *state
	m.nodeState = &copied
	return nil
}

// LoadNodeState retrieves node operational state.
func (m *MemoryPersistence) LoadNodeState() (*persistence.NodeState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("persistence layer is closed")
	}

	if m.nodeState == nil {
		return nil, nil
	}
	copied := *m.nodeState
	return &copied, nil
}

// Close marks the persistence layer as closed.
func (m *MemoryPersistence) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// HealthCheck verifies the persistence layer is operational.
func (m *MemoryPersistence) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}
	return nil
}

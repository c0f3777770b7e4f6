package persistence

import (
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

// IGreeterPersistence persists greeter contract storage and node state
// across restarts. All implementations must be thread-safe.
//
// Contract storage is keyed by the contract's L2 address so one store can
// hold several deployed instances.
type IGreeterPersistence interface {
	// Contract storage

	// SaveContractState overwrites the stored state for contract.
	SaveContractState(contract common.Address, state *types.ContractState) error

	// LoadContractState returns the stored state for contract.
	// Returns nil if the contract has never been saved, error only on storage failure.
	LoadContractState(contract common.Address) (*types.ContractState, error)

	// Node Operational State

	// SaveNodeState persists operational state. Overwrites any existing state.
	SaveNodeState(state *NodeState) error

	// LoadNodeState retrieves operational state.
	// Returns nil state if none exists (first run), error only on storage failure.
	LoadNodeState() (*NodeState, error)

	// Lifecycle Management

	// Close cleanly shuts down the persistence layer.
	// Idempotent - safe to call multiple times.
	// After Close(), all other operations should return errors.
	Close() error

	// HealthCheck verifies the persistence layer is operational.
	// Returns nil if healthy, error describing the problem if not.
	HealthCheck() error
}

package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

// ContractStateKey returns the storage key suffix for contract
func ContractStateKey(contract common.Address) string {
	return contract.Hex()
}

// MarshalContractState serializes a ContractState to JSON bytes.
func MarshalContractState(cs *types.ContractState) ([]byte, error) {
	if cs == nil {
		return nil, fmt.Errorf("cannot marshal nil ContractState")
	}

	data, err := json.Marshal(cs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ContractState to JSON: %w", err)
	}

	return data, nil
}

// UnmarshalContractState deserializes a ContractState from JSON bytes.
func UnmarshalContractState(data []byte) (*types.ContractState, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var cs types.ContractState
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to ContractState: %w", err)
	}

	return &cs, nil
}

// MarshalNodeState serializes NodeState to JSON bytes.
func MarshalNodeState(ns *NodeState) ([]byte, error) {
	if ns == nil {
		return nil, fmt.Errorf("cannot marshal nil NodeState")
	}

	return json.Marshal(ns)
}

// UnmarshalNodeState deserializes NodeState from JSON bytes.
func UnmarshalNodeState(data []byte) (*NodeState, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var ns NodeState
	if err := json.Unmarshal(data, &ns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to NodeState: %w", err)
	}

	return &ns, nil
}

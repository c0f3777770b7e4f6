package persistence

// NodeState represents operational state that must persist across restarts.
type NodeState struct {
	// NodeStartTime is the Unix timestamp when the node last started.
	NodeStartTime int64 `json:"nodeStartTime"`

	// ContractAddress is the L2 address of the greeter this node serves.
	// Stored so a data dir is not reused for a different deployment.
	ContractAddress string `json:"contractAddress"`

	// ChainId is the L2 chain the node was configured for.
	ChainId uint64 `json:"chainId"`
}

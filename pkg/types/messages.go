package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
)

// CallRequest is a raw ABI invocation of the greeter by an L2 caller
type CallRequest struct {
	From common.Address `json:"from"`
	Data hexutil.Bytes  `json:"data"`
}

// InboxDeliveryRequest simulates the execution of an L1→L2 retryable ticket.
// L1Sender is the unaliased L1 address that created the ticket.
type InboxDeliveryRequest struct {
	L1Sender common.Address `json:"l1Sender"`
	Data     hexutil.Bytes  `json:"data"`
}

// CallResult is the outcome of a routed invocation. Reverted results carry
// the raw revert bytes and no logs.
type CallResult struct {
	ReturnData   hexutil.Bytes   `json:"returnData,omitempty"`
	Reverted     bool            `json:"reverted"`
	RevertReason string          `json:"revertReason,omitempty"`
	Logs         []*ethTypes.Log `json:"logs,omitempty"`
	Caller       common.Address  `json:"caller"`
	RequestId    string          `json:"requestId,omitempty"`
}

// GreetingResponse is returned by GET /greeting
type GreetingResponse struct {
	Greeting string `json:"greeting"`
}

// CounterpartResponse is returned by GET /counterpart
type CounterpartResponse struct {
	L1Target common.Address    `json:"l1Target"`
	Alias    common.Address    `json:"alias"`
	Status   CounterpartStatus `json:"status"`
}

// UpdateCounterpartRequest is the body of POST /counterpart
type UpdateCounterpartRequest struct {
	From     common.Address `json:"from"`
	L1Target common.Address `json:"l1Target"`
}

// SendGreetingToL1Request is the body of POST /greeting/l1
type SendGreetingToL1Request struct {
	From     common.Address `json:"from"`
	Greeting string         `json:"greeting"`
}

// SendGreetingToL1Response carries the id assigned by the transport
type SendGreetingToL1Response struct {
	MessageId *hexutil.Big `json:"messageId"`
}

// OutboxProofResponse proves inclusion of a simulated L2→L1 send
type OutboxProofResponse struct {
	MessageId *hexutil.Big  `json:"messageId"`
	SendHash  common.Hash   `json:"sendHash"`
	Root      common.Hash   `json:"root"`
	Proof     []common.Hash `json:"proof"`
}

// HealthResponse reports node health. ArbBlockNumber is only set when the
// node dispatches through a live chain.
type HealthResponse struct {
	Status         string       `json:"status"`
	ArbBlockNumber *hexutil.Big `json:"arbBlockNumber,omitempty"`
}

// ErrorResponse is written on any non-2xx HTTP status
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestId string `json:"requestId,omitempty"`
}

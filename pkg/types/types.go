package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CounterpartStatus distinguishes an unset registration from a registered one.
// The zero address is reported as Unset but is otherwise a valid counterpart.
type CounterpartStatus string

const (
	CounterpartStatusUnset      CounterpartStatus = "unset"
	CounterpartStatusRegistered CounterpartStatus = "registered"
)

// CounterpartRegistration holds the address of the L1 contract this L2
// contract trusts. It starts as the zero address at deployment.
type CounterpartRegistration struct {
	L1Target common.Address `json:"l1Target"`
}

// Status returns the logical registration state
func (r CounterpartRegistration) Status() CounterpartStatus {
	if r.L1Target == (common.Address{}) {
		return CounterpartStatusUnset
	}
	return CounterpartStatusRegistered
}

// ContractState is the complete persistent storage of one deployed greeter
type ContractState struct {
	Registration CounterpartRegistration `json:"registration"`
	Greeting     string                  `json:"greeting"`
}

// Selector is the 4-byte function identifier at the head of a call payload
type Selector [4]byte

// Hex returns the 0x-prefixed selector
func (s Selector) Hex() string {
	return "0x" + common.Bytes2Hex(s[:])
}

// OutboundMessage is a cross-layer call built for the counterpart. It is never
// persisted.
type OutboundMessage struct {
	Selector    Selector       `json:"selector"`
	Payload     []byte         `json:"payload"`
	Destination common.Address `json:"destination"`
}

// CrossLayerMessageCreated is emitted once per accepted outbound message
type CrossLayerMessageCreated struct {
	// Emitter is the L2 contract address that dispatched the message
	Emitter     common.Address `json:"emitter"`
	MessageId   *big.Int       `json:"messageId"`
	Destination common.Address `json:"destination"`
	Selector    Selector       `json:"selector"`
}

// CrossLayerMessageCreatedEventName is the name observers index on
const CrossLayerMessageCreatedEventName = "CrossLayerMessageCreated"

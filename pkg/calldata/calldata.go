// Package calldata builds the payloads the L2 greeter sends to its L1
// counterpart: a 4-byte function selector followed by the ABI-encoded
// arguments.
package calldata

import (
	"fmt"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/util"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// SetGreetingSignature is the counterpart function invoked by setGreetingInL1
const SetGreetingSignature = "setGreeting(string)"

// SignatureDigest returns keccak256 over the UTF-8 bytes of a canonical
// function signature. Same digest as crypto.Keccak256Hash.
func SignatureDigest(signature string) common.Hash {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(signature))

	var digest common.Hash
	hasher.Sum(digest[:0])
	return digest
}

// SelectorOf returns the first four bytes of the signature digest
func SelectorOf(signature string) types.Selector {
	digest := SignatureDigest(signature)

	var selector types.Selector
	copy(selector[:], digest[:4])
	return selector
}

// BuildPayload returns selector ‖ argsEncoded
func BuildPayload(signature string, argsEncoded []byte) []byte {
	selector := SelectorOf(signature)

	payload := make([]byte, 0, len(selector)+len(argsEncoded))
	payload = append(payload, selector[:]...)
	payload = append(payload, argsEncoded...)
	return payload
}

// NewOutboundMessage builds the message for a call on destination
func NewOutboundMessage(destination common.Address, signature string, argsEncoded []byte) *types.OutboundMessage {
	return &types.OutboundMessage{
		Selector:    SelectorOf(signature),
		Payload:     BuildPayload(signature, argsEncoded),
		Destination: destination,
	}
}

// SplitPayload separates a call payload into its selector and arguments
func SplitPayload(payload []byte) (types.Selector, []byte, error) {
	var selector types.Selector
	if len(payload) < len(selector) {
		return selector, nil, fmt.Errorf("payload too short: %d bytes, need at least %d", len(payload), len(selector))
	}
	copy(selector[:], payload[:len(selector)])
	return selector, payload[len(selector):], nil
}

// EncodeSetGreeting builds the full setGreeting(string) payload for greeting
func EncodeSetGreeting(greeting string) ([]byte, error) {
	args, err := util.EncodeString(greeting)
	if err != nil {
		return nil, fmt.Errorf("failed to encode greeting: %w", err)
	}
	return BuildPayload(SetGreetingSignature, args), nil
}

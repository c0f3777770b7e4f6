// Package events delivers CrossLayerMessageCreated notifications to observers.
package events

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// CrossLayerMessageCreatedSignature is the canonical event signature; the
// message id is the only (indexed) field.
const CrossLayerMessageCreatedSignature = "CrossLayerMessageCreated(uint256)"

// CrossLayerMessageCreatedTopic is topic0 of every CrossLayerMessageCreated log
var CrossLayerMessageCreatedTopic = crypto.Keccak256Hash([]byte(CrossLayerMessageCreatedSignature))

// IEventSink receives events for accepted outbound messages.
type IEventSink interface {
	Emit(ctx context.Context, event *types.CrossLayerMessageCreated) error
}

// ToLog renders the event the way the EVM would record it.
func ToLog(event *types.CrossLayerMessageCreated) *ethTypes.Log {
	id := event.MessageId
	if id == nil {
		id = new(big.Int)
	}
	return &ethTypes.Log{
		Address: event.Emitter,
		Topics: []common.Hash{
			CrossLayerMessageCreatedTopic,
			common.BigToHash(id),
		},
		Data: []byte{},
	}
}

// FromLog decodes a CrossLayerMessageCreated log. Only the emitter and the
// message id are recoverable.
func FromLog(log *ethTypes.Log) (*types.CrossLayerMessageCreated, error) {
	if log == nil {
		return nil, errors.New("log is nil")
	}
	if len(log.Topics) != 2 {
		return nil, fmt.Errorf("expected 2 topics, got %d", len(log.Topics))
	}
	if log.Topics[0] != CrossLayerMessageCreatedTopic {
		return nil, fmt.Errorf("unexpected event topic %s", log.Topics[0].Hex())
	}
	return &types.CrossLayerMessageCreated{
		Emitter:   log.Address,
		MessageId: log.Topics[1].Big(),
	}, nil
}

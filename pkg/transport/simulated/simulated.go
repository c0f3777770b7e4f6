// Package simulated provides an in-process outbox that mimics the ArbSys
// sendTxToL1 precompile: every accepted message is hashed into a keccak
// merkle accumulator and its leaf position is returned as the message id.
package simulated

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/merkle"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultMaxPayloadBytes matches the nitro per-message calldata ceiling.
const DefaultMaxPayloadBytes = 96 * 1024

type Config struct {
	// MaxPayloadBytes rejects larger payloads. Zero means DefaultMaxPayloadBytes.
	MaxPayloadBytes int

	// RatePerSecond and Burst bound how many messages are accepted.
	// A zero RatePerSecond disables limiting.
	RatePerSecond float64
	Burst         int

	// Caller is recorded as the L2 sender of every message.
	Caller common.Address
}

// Send is one accepted outbound message.
type Send struct {
	Position    uint64         `json:"position"`
	Hash        common.Hash    `json:"hash"`
	Caller      common.Address `json:"caller"`
	Destination common.Address `json:"destination"`
	Data        []byte         `json:"data"`
	Timestamp   int64          `json:"timestamp"`
}

type Outbox struct {
	mu      sync.Mutex
	config  *Config
	limiter *rate.Limiter
	logger  *zap.Logger

	sends   []*Send
	failErr error
}

var _ transport.IOutboundTransport = (*Outbox)(nil)

func NewOutbox(cfg *Config, logger *zap.Logger) *Outbox {
	outboxConfig := Config{}
	if cfg != nil {
		outboxConfig = *cfg
	}
	if outboxConfig.MaxPayloadBytes <= 0 {
		outboxConfig.MaxPayloadBytes = DefaultMaxPayloadBytes
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if outboxConfig.RatePerSecond > 0 {
		burst := outboxConfig.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(outboxConfig.RatePerSecond), burst)
	}

	return &Outbox{
		config:  &outboxConfig,
		limiter: limiter,
		logger:  logger,
		sends:   make([]*Send, 0),
	}
}

// Submit appends the message to the accumulator and returns its position.
// The message is recorded as sent by Config.Caller.
func (o *Outbox) Submit(ctx context.Context, destination common.Address, payload []byte) (*big.Int, error) {
	return o.submit(ctx, o.config.Caller, destination, payload)
}

// Sender is a view of an outbox that records a fixed L2 caller, used when
// several contracts share one outbox.
type Sender struct {
	outbox *Outbox
	caller common.Address
}

var _ transport.IOutboundTransport = (*Sender)(nil)

// SenderFor returns a transport that submits to o as caller
func (o *Outbox) SenderFor(caller common.Address) *Sender {
	return &Sender{outbox: o, caller: caller}
}

func (s *Sender) Submit(ctx context.Context, destination common.Address, payload []byte) (*big.Int, error) {
	return s.outbox.submit(ctx, s.caller, destination, payload)
}

// Outbox returns the shared outbox behind s
func (s *Sender) Outbox() *Outbox {
	return s.outbox
}

func (o *Outbox) submit(ctx context.Context, caller common.Address, destination common.Address, payload []byte) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.failErr != nil {
		return nil, o.failErr
	}
	if len(payload) > o.config.MaxPayloadBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", transport.ErrPayloadTooLarge, len(payload), o.config.MaxPayloadBytes)
	}
	if !o.limiter.Allow() {
		return nil, transport.ErrCapacityExceeded
	}

	data := make([]byte, len(payload))
	copy(data, payload)

	send := &Send{
		Position:    uint64(len(o.sends)),
		Hash:        common.Hash(merkle.HashSend(nil, destination, data)),
		Caller:      caller,
		Destination: destination,
		Data:        data,
		Timestamp:   time.Now().Unix(),
	}
	o.sends = append(o.sends, send)

	o.logger.Sugar().Debugw("Outbox accepted message",
		"position", send.Position,
		"caller", caller.Hex(),
		"destination", destination.Hex(),
		"hash", send.Hash.Hex(),
		"size", len(data),
	)

	return new(big.Int).SetUint64(send.Position), nil
}

// FailWith makes every following Submit return err. Passing nil restores
// normal operation.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failErr = err
}

// Size returns the number of accepted messages.
func (o *Outbox) Size() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sends)
}

// Sends returns copies of all accepted messages in position order.
func (o *Outbox) Sends() []*Send {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*Send, 0, len(o.sends))
	for _, s := range o.sends {
		out = append(out, copySend(s))
	}
	return out
}

// GetSend returns the message at position id, or nil if none exists.
func (o *Outbox) GetSend(id *big.Int) *Send {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id == nil || !id.IsUint64() || id.Uint64() >= uint64(len(o.sends)) {
		return nil
	}
	return copySend(o.sends[id.Uint64()])
}

// Root returns the accumulator root over all accepted sends. An empty outbox
// has the zero root.
func (o *Outbox) Root() (common.Hash, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.sends) == 0 {
		return common.Hash{}, nil
	}
	tree, err := o.buildTree()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(tree.Root), nil
}

// Proof returns the merkle proof for the send at position id along with the
// current root.
func (o *Outbox) Proof(id *big.Int) (*merkle.MerkleProof, common.Hash, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id == nil || !id.IsUint64() || id.Uint64() >= uint64(len(o.sends)) {
		return nil, common.Hash{}, fmt.Errorf("unknown message id %v", id)
	}

	tree, err := o.buildTree()
	if err != nil {
		return nil, common.Hash{}, err
	}
	proof, err := tree.GenerateProof(int(id.Uint64()))
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("failed to generate proof: %w", err)
	}
	return proof, common.Hash(tree.Root), nil
}

func (o *Outbox) buildTree() (*merkle.MerkleTree, error) {
	leaves := make([][32]byte, len(o.sends))
	for i, s := range o.sends {
		leaves[i] = s.Hash
	}
	tree, err := merkle.BuildMerkleTree(leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to build outbox tree: %w", err)
	}
	return tree, nil
}

func copySend(s *Send) *Send {
	c := *s
	c.Data = append([]byte(nil), s.Data...)
	return &c
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PublishedEvent is the JSON message published for each event
type PublishedEvent struct {
	Event       string         `json:"event"`
	Emitter     common.Address `json:"emitter"`
	MessageId   *hexutil.Big   `json:"messageId"`
	Destination common.Address `json:"destination"`
	Selector    string         `json:"selector"`
	Topics      []common.Hash  `json:"topics"`
}

// RedisSink publishes events to a redis pub/sub channel
type RedisSink struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

var _ IEventSink = (*RedisSink)(nil)

type RedisSinkConfig struct {
	Address  string
	Password string
	DB       int
	Channel  string
}

func NewRedisSink(cfg *RedisSinkConfig, logger *zap.Logger) (*RedisSink, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	if cfg.Channel == "" {
		return nil, fmt.Errorf("redis channel cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	logger.Sugar().Infow("Redis event sink initialized", "address", cfg.Address, "channel", cfg.Channel)

	return &RedisSink{
		client:  client,
		channel: cfg.Channel,
		logger:  logger,
	}, nil
}

func (s *RedisSink) Emit(ctx context.Context, event *types.CrossLayerMessageCreated) error {
	msg, err := json.Marshal(NewPublishedEvent(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", s.channel, err)
	}
	return nil
}

// Subscribe returns a subscription to the sink's channel
func (s *RedisSink) Subscribe(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, s.channel)
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

func NewPublishedEvent(event *types.CrossLayerMessageCreated) *PublishedEvent {
	log := ToLog(event)
	return &PublishedEvent{
		Event:       types.CrossLayerMessageCreatedEventName,
		Emitter:     event.Emitter,
		MessageId:   (*hexutil.Big)(log.Topics[1].Big()),
		Destination: event.Destination,
		Selector:    event.Selector.Hex(),
		Topics:      log.Topics,
	}
}

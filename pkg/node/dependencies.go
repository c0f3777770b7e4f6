package node

import (
	"context"
	"fmt"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/metrics"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/badger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/memory"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/redis"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transactionSigner"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport/arbsys"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport/simulated"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// chainCheckTimeout bounds the ArbOS version check made before the arbsys
// transport is accepted.
const chainCheckTimeout = 10 * time.Second

// BuildDependencies constructs persistence, transport and event sinks from a
// validated config. On error anything already opened is closed again.
func BuildDependencies(cfg *config.GreeterNodeConfig, logger *zap.Logger) (*Dependencies, error) {
	store, err := NewPersistence(&cfg.Persistence, logger)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{
		Persistence: store,
		Metrics:     metrics.NewMetrics("node"),
	}

	t, closeTransport, err := NewTransport(&cfg.Transport, common.HexToAddress(cfg.ContractAddress), logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	deps.Transport = t
	if closeTransport != nil {
		deps.Closers = append(deps.Closers, closeTransport)
	}

	if cfg.EventChannel != "" {
		sink, err := events.NewRedisSink(&events.RedisSinkConfig{
			Address:  cfg.Persistence.RedisAddress,
			Password: cfg.Persistence.RedisPassword,
			DB:       cfg.Persistence.RedisDB,
			Channel:  cfg.EventChannel,
		}, logger)
		if err != nil {
			_ = store.Close()
			for _, c := range deps.Closers {
				_ = c()
			}
			return nil, fmt.Errorf("failed to create redis event sink: %w", err)
		}
		deps.Sink = sink
		deps.Closers = append(deps.Closers, sink.Close)
	}

	return deps, nil
}

// NewPersistence opens the configured persistence backend
func NewPersistence(cfg *config.PersistenceConfig, logger *zap.Logger) (persistence.IGreeterPersistence, error) {
	switch cfg.Type {
	case config.PersistenceTypeMemory, "":
		return memory.NewMemoryPersistence(logger), nil
	case config.PersistenceTypeBadger:
		store, err := badger.NewBadgerPersistence(cfg.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger persistence: %w", err)
		}
		return store, nil
	case config.PersistenceTypeRedis:
		store, err := redis.NewRedisPersistence(&redis.RedisConfig{
			Address:   cfg.RedisAddress,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis persistence: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s", cfg.Type)
	}
}

// NewTransport creates the configured outbound transport. sender is recorded
// as the L2 caller of simulated sends. The returned closer is nil when the
// transport holds no connection.
func NewTransport(cfg *config.TransportConfig, sender common.Address, logger *zap.Logger) (transport.IOutboundTransport, func() error, error) {
	switch cfg.Type {
	case config.TransportTypeSimulated, "":
		return simulated.NewOutbox(&simulated.Config{
			MaxPayloadBytes: cfg.MaxPayloadBytes,
			RatePerSecond:   cfg.RatePerSecond,
			Burst:           cfg.Burst,
			Caller:          sender,
		}, logger), nil, nil

	case config.TransportTypeArbSys:
		client, err := ethclient.Dial(cfg.RpcUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to dial %s: %w", cfg.RpcUrl, err)
		}
		signer, err := transactionSigner.NewTransactionSigner(&transactionSigner.SignerConfig{
			PrivateKey: cfg.SignerPrivateKey,
		}, client, logger)
		if err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to create transaction signer: %w", err)
		}
		cc, err := caller.NewContractCaller(client, signer, logger)
		if err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to create contract caller: %w", err)
		}
		t := arbsys.NewTransport(cc, logger)

		ctx, cancel := context.WithTimeout(context.Background(), chainCheckTimeout)
		defer cancel()
		version, err := t.CheckChain(ctx)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Sugar().Infow("Dispatching L2→L1 messages through ArbSys",
			"rpcUrl", cfg.RpcUrl,
			"sender", signer.GetFromAddress().Hex(),
			"arbOSVersion", version.String(),
		)
		return t, func() error {
			client.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported transport type: %s", cfg.Type)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/node"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "greeter-node",
		Usage: "Cross-layer greeter L2 node",
		Description: `Hosts one L2 greeter instance whose greeting can only be changed by its
registered L1 counterpart, and which forwards greetings to L1.

The node exposes the contract ABI over HTTP, simulates L1→L2 delivery with
address aliasing, and dispatches L2→L1 messages either to an in-process outbox
or through the ArbSys precompile of a nitro chain.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8000,
				Usage:   "HTTP server port",
				EnvVars: []string{config.EnvGreeterPort},
			},
			&cli.Uint64Flag{
				Name:    "chain-id",
				Aliases: []string{"chain"},
				Value:   uint64(config.ChainId_NitroDevnode),
				Usage:   fmt.Sprintf("L2 chain ID: %s", config.GetSupportedChainIDsString()),
				EnvVars: []string{config.EnvGreeterChainID},
			},
			&cli.StringFlag{
				Name:     "contract-address",
				Aliases:  []string{"contract"},
				Usage:    "L2 address of the greeter instance",
				EnvVars:  []string{config.EnvGreeterContractAddress},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "initial-l1-target",
				Usage:   "L1 counterpart registered on first start",
				EnvVars: []string{config.EnvGreeterInitialL1Target},
			},
			&cli.StringFlag{
				Name:    "counterpart-policy",
				Value:   string(config.CounterpartPolicyOpen),
				Usage:   "Who may update the L1 target: open | admin",
				EnvVars: []string{config.EnvGreeterCounterpartPolicy},
			},
			&cli.StringFlag{
				Name:    "admin-address",
				Usage:   "Admin allowed to update the L1 target under the admin policy",
				EnvVars: []string{config.EnvGreeterAdminAddress},
			},
			&cli.StringFlag{
				Name:    "transport",
				Value:   string(config.TransportTypeSimulated),
				Usage:   "L2→L1 transport: simulated | arbsys",
				EnvVars: []string{config.EnvGreeterTransportType},
			},
			&cli.StringFlag{
				Name:    "rpc-url",
				Aliases: []string{"rpc"},
				Value:   "http://localhost:8547",
				Usage:   "L2 RPC endpoint URL (arbsys transport)",
				EnvVars: []string{config.EnvGreeterRPCURL},
			},
			&cli.StringFlag{
				Name:    "signer-private-key",
				Usage:   "Hex private key that signs sendTxToL1 transactions (arbsys transport)",
				EnvVars: []string{config.EnvGreeterSignerPrivateKey},
			},
			&cli.IntFlag{
				Name:    "outbox-max-payload-bytes",
				Usage:   "Largest outbound payload the simulated outbox accepts",
				EnvVars: []string{config.EnvGreeterOutboxMaxPayload},
			},
			&cli.Float64Flag{
				Name:    "outbox-rate-per-second",
				Usage:   "Simulated outbox admission rate, 0 disables limiting",
				EnvVars: []string{config.EnvGreeterOutboxRate},
			},
			&cli.IntFlag{
				Name:    "outbox-burst",
				Usage:   "Simulated outbox burst size",
				EnvVars: []string{config.EnvGreeterOutboxBurst},
			},
			&cli.StringFlag{
				Name:    "persistence",
				Value:   string(config.PersistenceTypeMemory),
				Usage:   "Contract state storage: memory | badger | redis",
				EnvVars: []string{config.EnvGreeterPersistenceType},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Badger data directory",
				EnvVars: []string{config.EnvGreeterPersistenceDataDir},
			},
			&cli.StringFlag{
				Name:    "redis-address",
				Usage:   "Redis host:port for redis persistence and event publishing",
				EnvVars: []string{config.EnvGreeterRedisAddress},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				EnvVars: []string{config.EnvGreeterRedisPassword},
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Usage:   "Redis database number",
				EnvVars: []string{config.EnvGreeterRedisDB},
			},
			&cli.StringFlag{
				Name:    "redis-key-prefix",
				Usage:   "Prefix for every redis key",
				EnvVars: []string{config.EnvGreeterRedisKeyPrefix},
			},
			&cli.StringFlag{
				Name:    "event-channel",
				Usage:   "Redis pub/sub channel for CrossLayerMessageCreated events",
				EnvVars: []string{config.EnvGreeterEventChannel},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvGreeterDebug},
			},
		},
		Action: runGreeterNode,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func runGreeterNode(c *cli.Context) error {
	l, err := logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("verbose"),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	nodeConfig := parseGreeterNodeConfig(c)
	if err := nodeConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l.Sugar().Infow("Using chain", "name", nodeConfig.ChainName, "chain_id", nodeConfig.ChainID)

	deps, err := node.BuildDependencies(nodeConfig, l)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}

	n, err := node.NewNode(nodeConfig, deps, l)
	if err != nil {
		return fmt.Errorf("failed to create node: %w", err)
	}

	if c.Bool("verbose") {
		l.Sugar().Infow("Greeter node configuration",
			"contract", nodeConfig.ContractAddress,
			"port", nodeConfig.Port,
			"chain", nodeConfig.ChainName,
			"counterpart_policy", nodeConfig.CounterpartPolicy,
			"transport", nodeConfig.Transport.Type,
			"persistence", nodeConfig.Persistence.Type,
		)
	}

	if err := n.Start(); err != nil {
		return fmt.Errorf("failed to start node: %w", err)
	}

	l.Sugar().Infow("Greeter node running", "contract", nodeConfig.ContractAddress, "port", nodeConfig.Port)
	l.Sugar().Infow("Available endpoints",
		"call", "POST /call",
		"inbox", "POST /inbox/deliver",
		"greeting", "GET /greeting, POST /greeting/l1",
		"counterpart", "GET|POST /counterpart",
		"outbox", "GET /outbox/{id}/proof")
	l.Sugar().Info("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	l.Sugar().Info("Shutting down")
	return n.Stop()
}

func parseGreeterNodeConfig(c *cli.Context) *config.GreeterNodeConfig {
	return &config.GreeterNodeConfig{
		Port:              c.Int("port"),
		ChainID:           config.ChainId(c.Uint64("chain-id")),
		ContractAddress:   c.String("contract-address"),
		InitialL1Target:   c.String("initial-l1-target"),
		CounterpartPolicy: config.CounterpartPolicy(c.String("counterpart-policy")),
		AdminAddress:      c.String("admin-address"),
		EventChannel:      c.String("event-channel"),
		Transport: config.TransportConfig{
			Type:             config.TransportType(c.String("transport")),
			MaxPayloadBytes:  c.Int("outbox-max-payload-bytes"),
			RatePerSecond:    c.Float64("outbox-rate-per-second"),
			Burst:            c.Int("outbox-burst"),
			RpcUrl:           c.String("rpc-url"),
			SignerPrivateKey: c.String("signer-private-key"),
		},
		Persistence: config.PersistenceConfig{
			Type:           config.PersistenceType(c.String("persistence")),
			DataDir:        c.String("data-dir"),
			RedisAddress:   c.String("redis-address"),
			RedisPassword:  c.String("redis-password"),
			RedisDB:        c.Int("redis-db"),
			RedisKeyPrefix: c.String("redis-key-prefix"),
		},
		Debug: c.Bool("verbose"),
	}
}

package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/clients/greeterClient"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/node"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/memory"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport/simulated"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// TestCluster is a set of greeter deployments on one simulated L2. Every
// instance dispatches into the same outbox, so message ids are global
// across instances the way ArbSys positions are.
type TestCluster struct {
	Nodes      []*node.Node
	Servers    []*httptest.Server
	ServerURLs []string
	Clients    []*greeterClient.Client
	Stores     []persistence.IGreeterPersistence

	Outbox *simulated.Outbox
	Events *events.MemorySink

	NumNodes int
	logger   *zap.Logger
}

// ClusterOptions tweaks how each instance is built
type ClusterOptions struct {
	// ConfigureNode edits the config of instance i before it is built
	ConfigureNode func(i int, cfg *config.GreeterNodeConfig)

	// NewStore overrides the in-memory store of instance i
	NewStore func(t *testing.T, i int) persistence.IGreeterPersistence
}

// ContractAddress returns the deterministic test address of instance i
func ContractAddress(i int) common.Address {
	return common.HexToAddress(fmt.Sprintf("0x%040x", 0xe1+i))
}

// NewTestCluster starts numNodes greeter instances behind httptest servers.
// Servers are closed through t.Cleanup.
func NewTestCluster(t *testing.T, numNodes int, opts *ClusterOptions) *TestCluster {
	t.Helper()
	if opts == nil {
		opts = &ClusterOptions{}
	}

	clusterLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	tc := &TestCluster{
		Outbox:   simulated.NewOutbox(nil, clusterLogger),
		Events:   events.NewMemorySink(),
		NumNodes: numNodes,
		logger:   clusterLogger,
	}

	for i := 0; i < numNodes; i++ {
		cfg := &config.GreeterNodeConfig{
			Port:              8000 + i + 1,
			ChainID:           config.ChainId_NitroDevnode,
			ContractAddress:   ContractAddress(i).Hex(),
			CounterpartPolicy: config.CounterpartPolicyOpen,
		}
		if opts.ConfigureNode != nil {
			opts.ConfigureNode(i, cfg)
		}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Invalid config for node %d: %v", i, err)
		}

		var store persistence.IGreeterPersistence
		if opts.NewStore != nil {
			store = opts.NewStore(t, i)
		} else {
			store = memory.NewMemoryPersistence(clusterLogger)
		}

		n, err := node.NewNode(cfg, &node.Dependencies{
			Persistence: store,
			Transport:   tc.Outbox.SenderFor(ContractAddress(i)),
			Sink:        tc.Events,
		}, clusterLogger)
		if err != nil {
			t.Fatalf("Failed to create node %d: %v", i, err)
		}

		tc.Nodes = append(tc.Nodes, n)
		tc.Stores = append(tc.Stores, store)
	}

	tc.startServers(t)
	t.Cleanup(tc.Close)
	return tc
}

func (tc *TestCluster) startServers(t *testing.T) {
	for i, n := range tc.Nodes {
		testServer := httptest.NewServer(n.GetHandler())

		c, err := greeterClient.NewClient(&greeterClient.ClientConfig{
			NodeURL: testServer.URL,
			Logger:  tc.logger,
		})
		if err != nil {
			testServer.Close()
			t.Fatalf("Failed to create client for node %d: %v", i, err)
		}

		tc.Servers = append(tc.Servers, testServer)
		tc.ServerURLs = append(tc.ServerURLs, testServer.URL)
		tc.Clients = append(tc.Clients, c)

		tc.logger.Sugar().Debugw("Started server", "node", i, "url", testServer.URL)
	}
}

// GetServerURLs returns the base URL of every instance
func (tc *TestCluster) GetServerURLs() []string {
	return tc.ServerURLs
}

// Close shuts down all test servers
func (tc *TestCluster) Close() {
	for i, server := range tc.Servers {
		if server != nil {
			server.Close()
			tc.logger.Sugar().Debugw("Closed server", "node", i)
		}
	}
	tc.Servers = nil
}

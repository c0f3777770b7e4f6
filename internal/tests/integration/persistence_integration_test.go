package integration

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/node"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/badger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_PersistenceIntegration restarts a badger-backed deployment and checks
// that contract state survives while a foreign data dir is refused
func Test_PersistenceIntegration(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	badgerStore := func(t *testing.T, i int) persistence.IGreeterPersistence {
		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
		require.NoError(t, err)
		store, err := badger.NewBadgerPersistence(dataDir, l)
		require.NoError(t, err)
		return store
	}

	// first run
	cluster := testutil.NewTestCluster(t, 1, &testutil.ClusterOptions{NewStore: badgerStore})
	n := cluster.Nodes[0]

	_, err := cluster.Clients[0].UpdateCounterpart(ctx, deployer, l1GreeterA)
	require.NoError(t, err)
	result, err := cluster.Clients[0].SetGreetingFromL1(ctx, l1GreeterA, "persisted greeting")
	require.NoError(t, err)
	require.False(t, result.Reverted)

	cluster.Close()
	require.NoError(t, n.Stop())

	// second run on the same data dir
	restarted := testutil.NewTestCluster(t, 1, &testutil.ClusterOptions{NewStore: badgerStore})
	counterpart, err := restarted.Clients[0].GetCounterpart(ctx)
	require.NoError(t, err)
	assert.Equal(t, l1GreeterA, counterpart.L1Target)

	greeting, err := restarted.Clients[0].Greet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted greeting", greeting)

	// node state written by the first instance belongs to another contract
	// once the deployment address changes
	require.NoError(t, restarted.Stores[0].SaveNodeState(&persistence.NodeState{
		NodeStartTime:   time.Now().Unix(),
		ContractAddress: l1GreeterB.Hex(),
	}))
	assert.Error(t, restarted.Nodes[0].Start())
	require.NoError(t, restarted.Nodes[0].Stop())
}

// Test_RedisIntegration runs a node on redis persistence with event
// publishing. Requires Redis at REDIS_TEST_ADDRESS (default localhost:6379).
func Test_RedisIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	prefix := "itest-" + uuid.New().String() + ":"
	channel := prefix + "events"
	cfg := &config.GreeterNodeConfig{
		Port:            8000,
		ChainID:         config.ChainId_NitroDevnode,
		ContractAddress: testutil.ContractAddress(0).Hex(),
		InitialL1Target: l1GreeterA.Hex(),
		EventChannel:    channel,
		Persistence: config.PersistenceConfig{
			Type:           config.PersistenceTypeRedis,
			RedisAddress:   addr,
			RedisDB:        15,
			RedisKeyPrefix: prefix,
		},
	}
	require.NoError(t, cfg.Validate())

	deps, err := node.BuildDependencies(cfg, l)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}
	subscriber, err := events.NewRedisSink(&events.RedisSinkConfig{Address: addr, DB: 15, Channel: channel}, l)
	require.NoError(t, err)
	defer func() { _ = subscriber.Close() }()

	n, err := node.NewNode(cfg, deps, l)
	require.NoError(t, err)
	defer func() { _ = n.Stop() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sub := subscriber.Subscribe(ctx)
	defer func() { _ = sub.Close() }()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	messageId, err := n.GetGreeter().SetGreetingInL1(ctx, deployer, "over redis")
	require.NoError(t, err)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var published events.PublishedEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &published))
	assert.Equal(t, 0, published.MessageId.ToInt().Cmp(messageId))
	assert.Equal(t, l1GreeterA, published.Destination)
	assert.Equal(t, testutil.ContractAddress(0), published.Emitter)
}

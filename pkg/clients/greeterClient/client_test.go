package greeterClient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/merkle"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/node"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/memory"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport/simulated"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	contractAddress = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	l1Greeter       = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	user            = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)
	return l
}

func newTestServer(t *testing.T) (*httptest.Server, *simulated.Outbox) {
	t.Helper()
	l := testLogger(t)
	outbox := simulated.NewOutbox(&simulated.Config{Caller: contractAddress}, l)
	n, err := node.NewNode(&config.GreeterNodeConfig{
		Port:              8080,
		ChainID:           config.ChainId_NitroDevnode,
		ContractAddress:   contractAddress.Hex(),
		CounterpartPolicy: config.CounterpartPolicyOpen,
	}, &node.Dependencies{
		Persistence: memory.NewMemoryPersistence(l),
		Transport:   outbox,
	}, l)
	require.NoError(t, err)

	server := httptest.NewServer(n.GetHandler())
	t.Cleanup(server.Close)
	return server, outbox
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(&ClientConfig{
		NodeURL: url,
		Logger:  testLogger(t),
		Retry: &RetryConfig{
			MaxAttempts:     3,
			InitialBackoff:  time.Millisecond,
			MaxBackoff:      5 * time.Millisecond,
			BackoffMultiple: 2,
		},
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{Logger: testLogger(t)})
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{NodeURL: "http://localhost:8080"})
	assert.Error(t, err)
}

func TestClient_GreeterFlow(t *testing.T) {
	server, outbox := newTestServer(t)
	c := newTestClient(t, server.URL)
	ctx := context.Background()

	counterpart, err := c.UpdateCounterpart(ctx, user, l1Greeter)
	require.NoError(t, err)
	assert.Equal(t, types.CounterpartStatusRegistered, counterpart.Status)

	counterpart, err = c.GetCounterpart(ctx)
	require.NoError(t, err)
	assert.Equal(t, l1Greeter, counterpart.L1Target)

	result, err := c.SetGreetingFromL1(ctx, user, "impostor")
	require.NoError(t, err)
	assert.True(t, result.Reverted)
	assert.Equal(t, "Greeting only updateable by L1", result.RevertReason)

	result, err = c.SetGreetingFromL1(ctx, l1Greeter, "hello from L1")
	require.NoError(t, err)
	assert.False(t, result.Reverted)

	greeting, err := c.Greet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello from L1", greeting)

	messageId, err := c.SendGreetingToL1(ctx, user, "hello L1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), messageId.Int64())
	assert.Equal(t, 1, outbox.Size())

	proof, err := c.GetOutboxProof(ctx, messageId)
	require.NoError(t, err)
	assert.Equal(t, common.Hash(outbox.Sends()[0].Hash), proof.SendHash)
	assert.True(t, merkle.VerifyProof(&merkle.MerkleProof{
		LeafIndex: 0,
		Leaf:      proof.SendHash,
	}, proof.Root))
}

func TestClient_DispatchFailureIsNotRetried(t *testing.T) {
	server, outbox := newTestServer(t)
	c := newTestClient(t, server.URL)
	outbox.FailWith(errors.New("sequencer unavailable"))

	_, err := c.SendGreetingToL1(context.Background(), user, "hi")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "External call failed", statusErr.Message)
	assert.NotEmpty(t, statusErr.RequestId)
}

func TestClient_RetriesReads(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"greeting":"eventually"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	greeting, err := c.Greet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eventually", greeting)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_GivesUpAfterMaxAttempts(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.GetCounterpart(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "down", statusErr.Message)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_WritesAreSentOnce(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.SendGreetingToL1(context.Background(), user, "once")
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_UndecodableResponseIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`<html>proxy page</html>`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Greet(context.Background())
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, int32(1), attempts.Load())
}

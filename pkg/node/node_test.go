package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/aliasing"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/contractCaller"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/merkle"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence/memory"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport/arbsys"
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
	admin           = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)
	return l
}

func testConfig() *config.GreeterNodeConfig {
	return &config.GreeterNodeConfig{
		Port:              8080,
		ChainID:           config.ChainId_NitroDevnode,
		ContractAddress:   contractAddress.Hex(),
		CounterpartPolicy: config.CounterpartPolicyOpen,
		Transport:         config.TransportConfig{Type: config.TransportTypeSimulated},
		Persistence:       config.PersistenceConfig{Type: config.PersistenceTypeMemory},
	}
}

func newTestNode(t *testing.T, cfg *config.GreeterNodeConfig) (*Node, *simulated.Outbox, persistence.IGreeterPersistence) {
	t.Helper()
	l := testLogger(t)
	store := memory.NewMemoryPersistence(l)
	outbox := simulated.NewOutbox(&simulated.Config{Caller: contractAddress}, l)

	n, err := NewNode(cfg, &Dependencies{Persistence: store, Transport: outbox}, l)
	require.NoError(t, err)
	return n, outbox, store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return &v
}

func TestNewNode_Validation(t *testing.T) {
	l := testLogger(t)
	store := memory.NewMemoryPersistence(l)

	_, err := NewNode(nil, &Dependencies{}, l)
	assert.Error(t, err)

	_, err = NewNode(testConfig(), nil, l)
	assert.Error(t, err)

	_, err = NewNode(testConfig(), &Dependencies{Persistence: store}, l)
	assert.Error(t, err)

	n, err := NewNode(testConfig(), &Dependencies{Persistence: store, Transport: simulated.NewOutbox(nil, l)}, l)
	require.NoError(t, err)
	assert.NotNil(t, n.GetOutbox())
	assert.Equal(t, contractAddress, n.GetGreeter().Address())
}

func TestServer_GreeterFlow(t *testing.T) {
	n, outbox, _ := newTestNode(t, testConfig())
	h := n.GetHandler()
	contractABI := n.GetRouter().ABI()

	t.Run("counterpart starts unset", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/counterpart", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.CounterpartResponse](t, w)
		assert.Equal(t, common.Address{}, resp.L1Target)
		assert.Equal(t, types.CounterpartStatusUnset, resp.Status)
	})

	t.Run("register counterpart", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/counterpart", &types.UpdateCounterpartRequest{From: user, L1Target: l1Greeter})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.CounterpartResponse](t, w)
		assert.Equal(t, l1Greeter, resp.L1Target)
		assert.Equal(t, aliasing.AliasOf(l1Greeter), resp.Alias)
		assert.Equal(t, types.CounterpartStatusRegistered, resp.Status)
	})

	t.Run("setGreeting from a plain L2 account reverts", func(t *testing.T) {
		data, err := contractABI.Pack("setGreeting", "not allowed")
		require.NoError(t, err)

		w := doJSON(t, h, http.MethodPost, "/call", &types.CallRequest{From: user, Data: data})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[types.CallResult](t, w)
		assert.True(t, result.Reverted)
		assert.Equal(t, "Greeting only updateable by L1", result.RevertReason)
		assert.NotEmpty(t, result.RequestId)
	})

	t.Run("setGreeting delivered from L1", func(t *testing.T) {
		data, err := contractABI.Pack("setGreeting", "hello from L1")
		require.NoError(t, err)

		w := doJSON(t, h, http.MethodPost, "/inbox/deliver", &types.InboxDeliveryRequest{L1Sender: l1Greeter, Data: data})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[types.CallResult](t, w)
		assert.False(t, result.Reverted)
		assert.Equal(t, aliasing.AliasOf(l1Greeter), result.Caller)

		w = doJSON(t, h, http.MethodGet, "/greeting", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello from L1", decode[types.GreetingResponse](t, w).Greeting)
	})

	t.Run("greet through calldata", func(t *testing.T) {
		data, err := contractABI.Pack("greet")
		require.NoError(t, err)

		w := doJSON(t, h, http.MethodPost, "/call", &types.CallRequest{From: user, Data: data})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[types.CallResult](t, w)
		require.False(t, result.Reverted)

		out, err := contractABI.Unpack("greet", result.ReturnData)
		require.NoError(t, err)
		assert.Equal(t, "hello from L1", out[0])
	})

	t.Run("send greeting to L1", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/greeting/l1", &types.SendGreetingToL1Request{From: user, Greeting: "hello L1"})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.SendGreetingToL1Response](t, w)
		require.NotNil(t, resp.MessageId)
		assert.Equal(t, int64(0), resp.MessageId.ToInt().Int64())

		require.Equal(t, 1, outbox.Size())
		send := outbox.Sends()[0]
		assert.Equal(t, l1Greeter, send.Destination)
		assert.Equal(t, common.FromHex("a4136862"), send.Data[:4])
	})

	t.Run("outbox proof", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/outbox/0/proof", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.OutboxProofResponse](t, w)

		siblings := make([][32]byte, len(resp.Proof))
		for i, p := range resp.Proof {
			siblings[i] = p
		}
		assert.True(t, merkle.VerifyProof(&merkle.MerkleProof{
			LeafIndex: 0,
			Leaf:      resp.SendHash,
			Proof:     siblings,
		}, resp.Root))

		w = doJSON(t, h, http.MethodGet, "/outbox/7/proof", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(t, h, http.MethodGet, "/outbox/nope/proof", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("metrics reflect invocations", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/metrics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "greeter_node_invocations_total")
		assert.Contains(t, w.Body.String(), "greeter_node_unauthorized_total 1")
	})
}

func TestServer_DispatchFailure(t *testing.T) {
	n, outbox, _ := newTestNode(t, testConfig())
	outbox.FailWith(errors.New("sequencer unavailable"))

	w := doJSON(t, n.GetHandler(), http.MethodPost, "/greeting/l1", &types.SendGreetingToL1Request{From: user, Greeting: "hi"})
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "External call failed", decode[types.ErrorResponse](t, w).Error)
	assert.Equal(t, 0, outbox.Size())
}

func TestServer_AdminPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.CounterpartPolicy = config.CounterpartPolicyAdmin
	cfg.AdminAddress = admin.Hex()
	n, _, _ := newTestNode(t, cfg)
	h := n.GetHandler()

	w := doJSON(t, h, http.MethodPost, "/counterpart", &types.UpdateCounterpartRequest{From: user, L1Target: l1Greeter})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "L1 target only updateable by admin", decode[types.ErrorResponse](t, w).Error)

	w = doJSON(t, h, http.MethodPost, "/counterpart", &types.UpdateCounterpartRequest{From: admin, L1Target: l1Greeter})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, l1Greeter, decode[types.CounterpartResponse](t, w).L1Target)
}

func TestServer_RequestValidation(t *testing.T) {
	n, _, _ := newTestNode(t, testConfig())
	h := n.GetHandler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"call requires POST", http.MethodGet, "/call", "", http.StatusMethodNotAllowed},
		{"call rejects invalid JSON", http.MethodPost, "/call", "invalid json", http.StatusBadRequest},
		{"deliver requires POST", http.MethodGet, "/inbox/deliver", "", http.StatusMethodNotAllowed},
		{"deliver rejects invalid JSON", http.MethodPost, "/inbox/deliver", "{", http.StatusBadRequest},
		{"greeting requires GET", http.MethodPost, "/greeting", "", http.StatusMethodNotAllowed},
		{"counterpart rejects DELETE", http.MethodDelete, "/counterpart", "", http.StatusMethodNotAllowed},
		{"counterpart rejects invalid JSON", http.MethodPost, "/counterpart", "[]", http.StatusBadRequest},
		{"greeting/l1 requires POST", http.MethodGet, "/greeting/l1", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			require.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode[types.ErrorResponse](t, w).RequestId)
		})
	}
}

func TestServer_MalformedCalldataReverts(t *testing.T) {
	n, _, _ := newTestNode(t, testConfig())

	w := doJSON(t, n.GetHandler(), http.MethodPost, "/call", &types.CallRequest{From: user, Data: []byte{0xde, 0xad}})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[types.CallResult](t, w)
	assert.True(t, result.Reverted)
	assert.Contains(t, result.RevertReason, "malformed calldata")
}

// /call executes as the given from without authentication, so a client that
// names the alias of the counterpart passes the inbound check.
func TestServer_CallTrustsFrom(t *testing.T) {
	n, _, _ := newTestNode(t, testConfig())
	h := n.GetHandler()
	contractABI := n.GetRouter().ABI()

	data, err := contractABI.Pack("updateL1Target", l1Greeter)
	require.NoError(t, err)
	w := doJSON(t, h, http.MethodPost, "/call", &types.CallRequest{From: user, Data: data})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decode[types.CallResult](t, w).Reverted)

	data, err = contractABI.Pack("setGreeting", "claimed alias")
	require.NoError(t, err)
	w = doJSON(t, h, http.MethodPost, "/call", &types.CallRequest{From: aliasing.AliasOf(l1Greeter), Data: data})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decode[types.CallResult](t, w).Reverted)

	greeting, err := n.GetGreeter().Greet()
	require.NoError(t, err)
	assert.Equal(t, "claimed alias", greeting)

	// a dirty address word is still refused at the decoding step
	data, err = contractABI.Pack("updateL1Target", user)
	require.NoError(t, err)
	data[4] = 0xff
	w = doJSON(t, h, http.MethodPost, "/call", &types.CallRequest{From: user, Data: data})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[types.CallResult](t, w).Reverted)
	target, err := n.GetGreeter().GetL1Target()
	require.NoError(t, err)
	assert.Equal(t, l1Greeter, target)
}

func TestServer_RequestIdHeader(t *testing.T) {
	n, _, _ := newTestNode(t, testConfig())
	h := n.GetHandler()

	req := httptest.NewRequest(http.MethodGet, "/greeting", nil)
	req.Header.Set(requestIdHeader, "req-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(requestIdHeader))

	w = doJSON(t, h, http.MethodGet, "/greeting", nil)
	assert.NotEmpty(t, w.Header().Get(requestIdHeader))
}

func TestServer_Healthz(t *testing.T) {
	n, _, store := newTestNode(t, testConfig())
	h := n.GetHandler()

	w := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[types.HealthResponse](t, w).ArbBlockNumber)

	require.NoError(t, store.Close())
	w = doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServer_HealthzReportsChain(t *testing.T) {
	l := testLogger(t)
	stub := contractCaller.NewMockContractCallerStub()
	n, err := NewNode(testConfig(), &Dependencies{
		Persistence: memory.NewMemoryPersistence(l),
		Transport:   arbsys.NewTransport(stub, l),
	}, l)
	require.NoError(t, err)
	h := n.GetHandler()

	w := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[types.HealthResponse](t, w)
	assert.Equal(t, "ok", health.Status)
	require.NotNil(t, health.ArbBlockNumber)
	assert.Equal(t, int64(0), health.ArbBlockNumber.ToInt().Int64())

	stub.ChainErr = errors.New("connection refused")
	w = doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServer_OutboxProofRequiresSimulatedTransport(t *testing.T) {
	l := testLogger(t)
	n, err := NewNode(testConfig(), &Dependencies{
		Persistence: memory.NewMemoryPersistence(l),
		Transport:   &failingTransport{},
	}, l)
	require.NoError(t, err)

	w := doJSON(t, n.GetHandler(), http.MethodGet, "/outbox/0/proof", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNode_RecordStart(t *testing.T) {
	n, _, store := newTestNode(t, testConfig())

	require.NoError(t, n.recordStart())
	state, err := store.LoadNodeState()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, contractAddress.Hex(), state.ContractAddress)
	assert.Equal(t, uint64(config.ChainId_NitroDevnode), state.ChainId)
	assert.NotZero(t, state.NodeStartTime)

	// restarting for the same deployment is fine
	require.NoError(t, n.recordStart())

	require.NoError(t, store.SaveNodeState(&persistence.NodeState{
		ContractAddress: l1Greeter.Hex(),
	}))
	assert.Error(t, n.recordStart())
}

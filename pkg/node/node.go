package node

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/config"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/events"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/greeter"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/inbox"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/metrics"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/persistence"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/router"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport/simulated"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Node hosts one greeter instance and exposes it over HTTP
type Node struct {
	// Identity
	ContractAddress common.Address
	ChainId         config.ChainId
	Port            int

	// Dependencies
	greeter   *greeter.Greeter
	router    *router.Router
	inbox     *inbox.Inbox
	store     persistence.IGreeterPersistence
	transport transport.IOutboundTransport
	outbox    *simulated.Outbox
	metrics   *metrics.Metrics
	closers   []func() error
	server    *Server
	logger    *zap.Logger
}

// Dependencies are the collaborators a node is wired with. Persistence and
// Transport are required; a nil Sink only logs events and a nil Metrics gets
// a fresh registry.
type Dependencies struct {
	Persistence persistence.IGreeterPersistence
	Transport   transport.IOutboundTransport
	Sink        events.IEventSink
	Metrics     *metrics.Metrics

	// Closers run on Stop after the HTTP server and persistence are closed
	Closers []func() error
}

// NewNode creates a new node instance with dependency injection. cfg must
// already be validated.
func NewNode(cfg *config.GreeterNodeConfig, deps *Dependencies, l *zap.Logger) (*Node, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if deps == nil || deps.Persistence == nil {
		return nil, fmt.Errorf("persistence is required")
	}
	if deps.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}

	nodeLogger := l
	if nodeLogger == nil {
		nodeLogger, _ = logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	}

	m := deps.Metrics
	if m == nil {
		m = metrics.NewMetrics("node")
	}

	sink := events.IEventSink(events.NewLoggingSink(nodeLogger))
	if deps.Sink != nil {
		sink = events.NewMultiSink(sink, deps.Sink)
	}

	contractAddress := common.HexToAddress(cfg.ContractAddress)
	g := greeter.NewGreeter(&greeter.Config{
		Address:           contractAddress,
		InitialL1Target:   common.HexToAddress(cfg.InitialL1Target),
		CounterpartPolicy: cfg.CounterpartPolicy,
		AdminAddress:      common.HexToAddress(cfg.AdminAddress),
	}, deps.Persistence, deps.Transport, sink, m, nodeLogger)

	r, err := router.NewRouter(g, m, nodeLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	n := &Node{
		ContractAddress: contractAddress,
		ChainId:         cfg.ChainID,
		Port:            cfg.Port,
		greeter:         g,
		router:          r,
		inbox:           inbox.NewInbox(r, nodeLogger),
		store:           deps.Persistence,
		transport:       deps.Transport,
		metrics:         m,
		closers:         deps.Closers,
		logger:          nodeLogger,
	}
	switch t := deps.Transport.(type) {
	case *simulated.Outbox:
		n.outbox = t
	case *simulated.Sender:
		n.outbox = t.Outbox()
	}
	n.server = NewServer(n, cfg.Port)

	return n, nil
}

// Start records the node state and starts the HTTP server
func (n *Node) Start() error {
	if err := n.recordStart(); err != nil {
		return err
	}
	n.metrics.RecordUp()
	return n.server.Start()
}

// Stop stops the HTTP server and releases storage and sinks
func (n *Node) Stop() error {
	var errs []error
	if err := n.server.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop server: %w", err))
	}
	if err := n.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close persistence: %w", err))
	}
	for _, c := range n.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// recordStart refuses to reuse a data dir written for another deployment,
// then stores the current start time.
func (n *Node) recordStart() error {
	previous, err := n.store.LoadNodeState()
	if err != nil {
		return fmt.Errorf("failed to load node state: %w", err)
	}
	if previous != nil {
		if previous.ContractAddress != "" && !strings.EqualFold(previous.ContractAddress, n.ContractAddress.Hex()) {
			return fmt.Errorf("persisted state belongs to contract %s, node is configured for %s",
				previous.ContractAddress, n.ContractAddress.Hex())
		}
		n.logger.Sugar().Infow("Restarting with persisted state",
			"contract", n.ContractAddress.Hex(),
			"lastStart", time.Unix(previous.NodeStartTime, 0).UTC(),
		)
	}

	state := &persistence.NodeState{
		NodeStartTime:   time.Now().Unix(),
		ContractAddress: n.ContractAddress.Hex(),
		ChainId:         uint64(n.ChainId),
	}
	if err := n.store.SaveNodeState(state); err != nil {
		return fmt.Errorf("failed to save node state: %w", err)
	}
	return nil
}

// GetGreeter returns the hosted contract instance
func (n *Node) GetGreeter() *greeter.Greeter {
	return n.greeter
}

// GetRouter returns the ABI router for the hosted instance
func (n *Node) GetRouter() *router.Router {
	return n.router
}

// GetInbox returns the L1→L2 delivery simulator
func (n *Node) GetInbox() *inbox.Inbox {
	return n.inbox
}

// GetOutbox returns the simulated outbox, or nil when the node dispatches
// through ArbSys.
func (n *Node) GetOutbox() *simulated.Outbox {
	return n.outbox
}

// GetHandler returns the HTTP handler (for testing)
func (n *Node) GetHandler() http.Handler {
	return n.server.GetHandler()
}

package node

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

/*
Server exposes one greeter instance over HTTP.

Contract surface:
  POST /call
    - Request: { from, data }
    - data is ABI calldata for getL1Target, updateL1Target, greet,
      setGreeting or setGreetingInL1, executed with caller = from
    - Response: CallResult. Reverts are a 200 with reverted=true and the
      revert bytes as returnData

  POST /inbox/deliver
    - Request: { l1Sender, data }
    - Executes data with caller = alias(l1Sender), the way a redeemed
      retryable ticket arrives from L1

Convenience surface (same semantics, JSON instead of calldata):
  GET  /greeting
  GET  /counterpart
  POST /counterpart      { from, l1Target }
  POST /greeting/l1      { from, greeting }

Outbox (simulated transport only):
  GET /outbox/{id}/proof
    - Merkle inclusion proof of send {id} against the current outbox root

Operations:
  GET /healthz
    - Checks persistence, and the ArbSys block number when dispatching
      on-chain
  GET /metrics

Every response carries an X-Request-Id header, taken from the request when
present.

The server does not authenticate callers. The from of /call, /counterpart
and /greeting/l1 is trusted as given, so any client can act as the alias of
the counterpart or as the admin. The admin counterpart policy only holds
when the node sits behind an authenticated front that pins from.
*/

const requestIdHeader = "X-Request-Id"

type requestIdKey struct{}

// Server handles HTTP requests for the node
type Server struct {
	node       *Node
	httpServer *http.Server
}

// NewServer creates a new server instance
func NewServer(node *Node, port int) *Server {
	s := &Server{
		node: node,
	}

	mux := http.NewServeMux()

	// Contract endpoints
	mux.HandleFunc("/call", s.handleCall)
	mux.HandleFunc("/inbox/deliver", s.handleInboxDeliver)

	// Convenience endpoints
	mux.HandleFunc("/greeting", s.handleGreeting)
	mux.HandleFunc("/greeting/l1", s.handleSendGreetingToL1)
	mux.HandleFunc("/counterpart", s.handleCounterpart)

	// Outbox proofs
	mux.HandleFunc("/outbox/{id}/proof", s.handleOutboxProof)

	mux.HandleFunc("/healthz", s.handleHealthz)
	if node.metrics != nil {
		mux.Handle("/metrics", node.metrics.Handler())
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           withRequestId(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		s.node.logger.Sugar().Infow("Starting HTTP server", "contract_address", s.node.ContractAddress.Hex(), "port", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.node.logger.Sugar().Errorw("HTTP server error", "contract_address", s.node.ContractAddress.Hex(), "error", err)
		}
	}()
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}

func withRequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIdHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIdKey{}, id)))
	})
}

func requestIdFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}

package node

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/aliasing"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/gateway"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/transport"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// handleCall executes raw calldata against the greeter
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req types.CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	result, err := s.node.router.Call(r.Context(), req.From, req.Data)
	if err != nil {
		s.node.logger.Sugar().Errorw("Call failed", "from", req.From.Hex(), "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Call failed")
		return
	}
	result.RequestId = requestIdFrom(r.Context())
	s.writeJSON(w, http.StatusOK, result)
}

// handleInboxDeliver executes calldata as a message arriving from L1
func (s *Server) handleInboxDeliver(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req types.InboxDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	result, err := s.node.inbox.Deliver(r.Context(), req.L1Sender, req.Data)
	if err != nil {
		s.node.logger.Sugar().Errorw("Inbox delivery failed", "l1Sender", req.L1Sender.Hex(), "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Delivery failed")
		return
	}
	result.RequestId = requestIdFrom(r.Context())
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	greeting, err := s.node.greeter.Greet()
	if err != nil {
		s.writeInvocationError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, &types.GreetingResponse{Greeting: greeting})
}

// handleCounterpart reads (GET) or updates (POST) the registered L1 target
func (s *Server) handleCounterpart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req types.UpdateCounterpartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Failed to parse request: %v", err))
			return
		}
		if err := s.node.greeter.UpdateL1Target(req.From, req.L1Target); err != nil {
			s.writeInvocationError(w, r, err)
			return
		}
	default:
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	target, err := s.node.greeter.GetL1Target()
	if err != nil {
		s.writeInvocationError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, counterpartResponse(target))
}

// handleSendGreetingToL1 forwards a greeting to the L1 counterpart
func (s *Server) handleSendGreetingToL1(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req types.SendGreetingToL1Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	messageId, err := s.node.greeter.SetGreetingInL1(r.Context(), req.From, req.Greeting)
	if err != nil {
		s.writeInvocationError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, &types.SendGreetingToL1Response{MessageId: (*hexutil.Big)(messageId)})
}

// handleOutboxProof returns the inclusion proof of a simulated send
func (s *Server) handleOutboxProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.node.outbox == nil {
		s.writeError(w, r, http.StatusNotFound, "Outbox proofs are only available with the simulated transport")
		return
	}

	id, ok := math.ParseBig256(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid message id")
		return
	}

	send := s.node.outbox.GetSend(id)
	if send == nil {
		s.writeError(w, r, http.StatusNotFound, fmt.Sprintf("Unknown message id %s", id))
		return
	}

	proof, root, err := s.node.outbox.Proof(id)
	if err != nil {
		s.node.logger.Sugar().Errorw("Failed to build outbox proof", "messageId", id, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Failed to build proof")
		return
	}

	siblings := make([]common.Hash, len(proof.Proof))
	for i, p := range proof.Proof {
		siblings[i] = common.Hash(p)
	}
	s.writeJSON(w, http.StatusOK, &types.OutboxProofResponse{
		MessageId: (*hexutil.Big)(id),
		SendHash:  common.Hash(proof.Leaf),
		Root:      root,
		Proof:     siblings,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.node.store.HealthCheck(); err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, fmt.Sprintf("Persistence unhealthy: %v", err))
		return
	}
	resp := &types.HealthResponse{Status: "ok"}
	if chain, ok := s.node.transport.(transport.IChainStatus); ok {
		blockNumber, err := chain.BlockNumber(r.Context())
		if err != nil {
			s.writeError(w, r, http.StatusServiceUnavailable, fmt.Sprintf("Chain unreachable: %v", err))
			return
		}
		resp.ArbBlockNumber = (*hexutil.Big)(blockNumber)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func counterpartResponse(target common.Address) *types.CounterpartResponse {
	return &types.CounterpartResponse{
		L1Target: target,
		Alias:    aliasing.AliasOf(target),
		Status:   types.CounterpartRegistration{L1Target: target}.Status(),
	}
}

// writeInvocationError maps greeter failures to HTTP statuses. Reverts keep
// their revert string as the error message.
func (s *Server) writeInvocationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized), errors.Is(err, gateway.ErrCounterpartAdminOnly):
		s.writeError(w, r, http.StatusForbidden, revertMessage(err))
	case errors.Is(err, gateway.ErrOutboundDispatchFailed):
		s.node.logger.Sugar().Warnw("Outbound dispatch failed", "error", err)
		s.writeError(w, r, http.StatusBadGateway, revertMessage(err))
	default:
		s.node.logger.Sugar().Errorw("Invocation failed", "path", r.URL.Path, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Internal error")
	}
}

func revertMessage(err error) string {
	var revert *gateway.RevertError
	if errors.As(err, &revert) {
		return string(revert.Data)
	}
	return err.Error()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, &types.ErrorResponse{
		Error:     msg,
		RequestId: requestIdFrom(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.node.logger.Sugar().Errorw("Failed to encode response", "error", err)
	}
}

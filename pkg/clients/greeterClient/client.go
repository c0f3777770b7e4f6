package greeterClient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/calldata"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidResponse wraps a 2xx response body that does not decode. The
// node answered, so the read is not repeated.
var ErrInvalidResponse = errors.New("invalid response from node")

// RetryConfig configures retry behavior for idempotent reads
type RetryConfig struct {
	MaxAttempts     int
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	BackoffMultiple float64
}

// DefaultRetryConfig provides default retry settings
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:     5,
	InitialBackoff:  100 * time.Millisecond,
	MaxBackoff:      5 * time.Second,
	BackoffMultiple: 2.0,
}

// ClientConfig holds the configuration for the greeter client
type ClientConfig struct {
	NodeURL    string
	Logger     *zap.Logger
	HTTPClient *http.Client
	Retry      *RetryConfig
}

// Client talks to a greeter node over HTTP. Reads are retried with backoff;
// writes are sent exactly once so an outbound message is never dispatched
// twice by the client.
type Client struct {
	nodeURL    string
	httpClient *http.Client
	retry      RetryConfig
	logger     *zap.Logger
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Message    string
	RequestId  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("node returned %d: %s (request %s)", e.StatusCode, e.Message, e.RequestId)
}

// NewClient creates a new greeter client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.NodeURL == "" {
		return nil, fmt.Errorf("node URL is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	retry := DefaultRetryConfig
	if config.Retry != nil {
		retry = *config.Retry
	}
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	return &Client{
		nodeURL:    strings.TrimRight(config.NodeURL, "/"),
		httpClient: httpClient,
		retry:      retry,
		logger:     config.Logger,
	}, nil
}

// Call executes raw calldata as from
func (c *Client) Call(ctx context.Context, from common.Address, data []byte) (*types.CallResult, error) {
	var result types.CallResult
	if err := c.post(ctx, "/call", &types.CallRequest{From: from, Data: data}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeliverFromL1 executes calldata as a message from l1Sender arriving via the
// bridge
func (c *Client) DeliverFromL1(ctx context.Context, l1Sender common.Address, data []byte) (*types.CallResult, error) {
	var result types.CallResult
	if err := c.post(ctx, "/inbox/deliver", &types.InboxDeliveryRequest{L1Sender: l1Sender, Data: data}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetGreetingFromL1 delivers setGreeting(greeting) from l1Sender. A revert is
// returned as a reverted result, not an error.
func (c *Client) SetGreetingFromL1(ctx context.Context, l1Sender common.Address, greeting string) (*types.CallResult, error) {
	payload, err := calldata.EncodeSetGreeting(greeting)
	if err != nil {
		return nil, err
	}
	return c.DeliverFromL1(ctx, l1Sender, payload)
}

// Greet returns the current greeting
func (c *Client) Greet(ctx context.Context) (string, error) {
	var resp types.GreetingResponse
	if err := c.get(ctx, "/greeting", &resp); err != nil {
		return "", err
	}
	return resp.Greeting, nil
}

// GetCounterpart returns the registered L1 target with its alias
func (c *Client) GetCounterpart(ctx context.Context) (*types.CounterpartResponse, error) {
	var resp types.CounterpartResponse
	if err := c.get(ctx, "/counterpart", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCounterpart registers l1Target as the counterpart, sent by from
func (c *Client) UpdateCounterpart(ctx context.Context, from common.Address, l1Target common.Address) (*types.CounterpartResponse, error) {
	var resp types.CounterpartResponse
	req := &types.UpdateCounterpartRequest{From: from, L1Target: l1Target}
	if err := c.post(ctx, "/counterpart", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendGreetingToL1 asks the node to forward greeting to the L1 counterpart and
// returns the message id
func (c *Client) SendGreetingToL1(ctx context.Context, from common.Address, greeting string) (*big.Int, error) {
	var resp types.SendGreetingToL1Response
	req := &types.SendGreetingToL1Request{From: from, Greeting: greeting}
	if err := c.post(ctx, "/greeting/l1", req, &resp); err != nil {
		return nil, err
	}
	if resp.MessageId == nil {
		return nil, fmt.Errorf("node response has no message id")
	}
	return resp.MessageId.ToInt(), nil
}

// GetOutboxProof fetches the inclusion proof of a simulated send
func (c *Client) GetOutboxProof(ctx context.Context, messageId *big.Int) (*types.OutboxProofResponse, error) {
	var resp types.OutboxProofResponse
	if err := c.get(ctx, fmt.Sprintf("/outbox/%s/proof", hexutil.EncodeBig(messageId)), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	backoff := c.retry.InitialBackoff
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil || ctx.Err() != nil || !retryable(err) {
			return err
		}
		lastErr = err

		if attempt < c.retry.MaxAttempts-1 {
			c.logger.Sugar().Debugw("Retrying request", "path", path, "attempt", attempt+1, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = time.Duration(float64(backoff) * c.retry.BackoffMultiple)
			if backoff > c.retry.MaxBackoff {
				backoff = c.retry.MaxBackoff
			}
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", c.retry.MaxAttempts, lastErr)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data, out)
}

func (c *Client) do(ctx context.Context, method string, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.nodeURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestId := uuid.New().String()
	req.Header.Set("X-Request-Id", requestId)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to contact node: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp types.ErrorResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr != nil || errResp.Error == "" {
			errResp.Error = strings.TrimSpace(string(raw))
		}
		if errResp.RequestId == "" {
			errResp.RequestId = requestId
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error, RequestId: errResp.RequestId}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// retryable reports whether a GET should be attempted again. Only transport
// failures and 5xx responses other than 502 qualify.
func retryable(err error) bool {
	if errors.Is(err, ErrInvalidResponse) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 && se.StatusCode != http.StatusBadGateway
	}
	return true
}

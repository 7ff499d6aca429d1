package mpesa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"communityaid/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("mpesa: api key is required")

// DefaultBaseURL points at the gateway sandbox.
const DefaultBaseURL = "https://sandbox.intasend.com/api/v1"

// maxResponseBytes caps how much of a gateway reply is buffered.
const maxResponseBytes = 1 << 20

// Options configures the STK push client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client sends STK push requests to the payment gateway.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// PushRequest is one STK push prompt sent to the donor's handset.
type PushRequest struct {
	Amount    int64
	Phone     string
	Reference string
	Currency  string
}

// PushResponse is the gateway's reply. Body is the raw JSON as received.
type PushResponse struct {
	Status int
	Body   json.RawMessage
}

type pushPayload struct {
	Amount      int64  `json:"amount"`
	PhoneNumber string `json:"phone_number"`
	APIRef      string `json:"api_ref"`
	Currency    string `json:"currency"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		l := zerolog.New(io.Discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// STKPush performs exactly one gateway call. Any JSON reply below 500 is
// returned as a response, accepted or declined; transport failures, 5xx
// replies and non-JSON bodies come back as *domain.UpstreamError.
func (c *Client) STKPush(ctx context.Context, req PushRequest) (*PushResponse, error) {
	if !c.HasCredentials() {
		return nil, upstream("gateway credentials are not configured", ErrMissingAPIKey)
	}
	body, err := json.Marshal(pushPayload{
		Amount:      req.Amount,
		PhoneNumber: req.Phone,
		APIRef:      req.Reference,
		Currency:    req.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("mpesa: encode request: %w", err)
	}
	endpoint := c.baseURL + "/payment/mpesa-stk-push/"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mpesa: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, upstream(err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, upstream("read gateway response", err)
	}
	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("reference", req.Reference).
		Dur("elapsed", time.Since(start)).
		Msg("mpesa: stk push response")

	if resp.StatusCode >= 500 {
		return nil, upstream(fmt.Sprintf("gateway status %d", resp.StatusCode), nil)
	}
	if !json.Valid(raw) {
		return nil, upstream(fmt.Sprintf("gateway status %d: non-JSON body", resp.StatusCode), nil)
	}
	return &PushResponse{Status: resp.StatusCode, Body: json.RawMessage(raw)}, nil
}

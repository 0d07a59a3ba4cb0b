package governance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"SnapVoter/internal/metrics"
	"SnapVoter/internal/state"
)

const (
	// DefaultDialTimeout is the timeout for establishing a TCP connection to the daemon.
	DefaultDialTimeout = 5 * time.Second

	// DefaultQueryTimeout is the timeout for a complete query.
	DefaultQueryTimeout = 10 * time.Second
)

// Client implements Provider by querying a governance daemon over HTTP JSON.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	queryTimeout time.Duration
	metrics      *metrics.Metrics
}

// Compile-time interface check
var _ Provider = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(c *Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithQueryTimeout sets the per-query timeout.
func WithQueryTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.queryTimeout = d
	}
}

// WithClientMetrics records call latency per endpoint.
func WithClientMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the daemon at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout: DefaultDialTimeout,
				}).DialContext,
			},
		},
		queryTimeout: DefaultQueryTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// errorBody is embedded in every daemon response.
type errorBody struct {
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// err returns the daemon error carried by the body, if any.
func (e errorBody) err() error {
	if e.Error == "" {
		return nil
	}
	return &Error{Code: e.Code, Msg: e.Error}
}

type pingResponse struct {
	Pong bool `json:"pong,omitempty"`
	errorBody
}

type realmRequest struct {
	Program state.Pubkey `json:"program"`
	Realm   state.Pubkey `json:"realm"`
	Mint    state.Pubkey `json:"mint"`
}

type realmResponse struct {
	Authority     *state.Pubkey `json:"authority,omitempty"`
	CommunityMint *state.Pubkey `json:"community_mint,omitempty"`
	CouncilMint   *state.Pubkey `json:"council_mint,omitempty"`
	errorBody
}

type proposalRequest struct {
	Program  state.Pubkey `json:"program"`
	Proposal state.Pubkey `json:"proposal"`
}

type proposalResponse struct {
	State string `json:"state,omitempty"`
	errorBody
}

type tokenOwnerRecordRequest struct {
	Program state.Pubkey `json:"program"`
	Record  state.Pubkey `json:"record"`
}

type tokenOwnerRecordResponse struct {
	Realm               *state.Pubkey `json:"realm,omitempty"`
	GoverningTokenMint  *state.Pubkey `json:"governing_token_mint,omitempty"`
	GoverningTokenOwner *state.Pubkey `json:"governing_token_owner,omitempty"`
	errorBody
}

// doRequest sends a POST to the daemon and decodes the response into result.
// Non-2xx responses carrying a JSON error body are returned as *Error.
func (c *Client) doRequest(ctx context.Context, endpoint string, reqBody, result any) error {
	if c.metrics != nil {
		defer c.metrics.ObserveGovernanceCall(endpoint, time.Now())
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request:\n%w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request:\n%w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w:\n%w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Read the full body so the connection can be reused
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response:\n%w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			return eb.err()
		}
		return fmt.Errorf("%w: HTTP error %d: %s", ErrUnavailable, resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decode response:\n%w", err)
	}

	return nil
}

// Ping checks that the daemon is reachable and healthy.
func (c *Client) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := c.doRequest(ctx, "/ping", struct{}{}, &resp); err != nil {
		return err
	}

	if err := resp.err(); err != nil {
		return err
	}

	if !resp.Pong {
		return fmt.Errorf("unexpected ping response: pong is false or missing")
	}

	return nil
}

// ResolveRealm implements IdentityAuthority.
func (c *Client) ResolveRealm(ctx context.Context, program, realm, mint state.Pubkey) (*Realm, error) {
	var resp realmResponse
	if err := c.doRequest(ctx, "/realm", realmRequest{Program: program, Realm: realm, Mint: mint}, &resp); err != nil {
		return nil, err
	}

	if err := resp.err(); err != nil {
		return nil, err
	}

	if resp.CommunityMint == nil {
		return nil, fmt.Errorf("realm response missing community_mint")
	}

	r := &Realm{
		ID:            realm,
		Authority:     resp.Authority,
		CommunityMint: *resp.CommunityMint,
		CouncilMint:   resp.CouncilMint,
	}

	// Mint acceptance is re-checked locally
	if !r.Accepts(mint) {
		return nil, ErrMintNotAccepted
	}

	return r, nil
}

// ProposalState implements DecisionInstanceProvider.
func (c *Client) ProposalState(ctx context.Context, program, proposal state.Pubkey) (ProposalState, error) {
	var resp proposalResponse
	if err := c.doRequest(ctx, "/proposal", proposalRequest{Program: program, Proposal: proposal}, &resp); err != nil {
		return 0, err
	}

	if err := resp.err(); err != nil {
		return 0, err
	}

	if resp.State == "" {
		return 0, fmt.Errorf("proposal response missing state")
	}

	return ParseProposalState(resp.State)
}

// TokenOwnerRecord implements MembershipProvider.
func (c *Client) TokenOwnerRecord(ctx context.Context, program, record state.Pubkey) (*TokenOwnerRecord, error) {
	var resp tokenOwnerRecordResponse
	if err := c.doRequest(ctx, "/token_owner_record", tokenOwnerRecordRequest{Program: program, Record: record}, &resp); err != nil {
		return nil, err
	}

	if err := resp.err(); err != nil {
		return nil, err
	}

	if resp.Realm == nil || resp.GoverningTokenMint == nil || resp.GoverningTokenOwner == nil {
		return nil, fmt.Errorf("token owner record response is incomplete")
	}

	return &TokenOwnerRecord{
		Realm:               *resp.Realm,
		GoverningTokenMint:  *resp.GoverningTokenMint,
		GoverningTokenOwner: *resp.GoverningTokenOwner,
	}, nil
}

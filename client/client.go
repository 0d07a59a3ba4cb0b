// Package client talks to a SnapVoter service over its HTTP API.
package client

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"SnapVoter/internal/api"
	"SnapVoter/internal/merkle"
	"SnapVoter/internal/state"
)

// Client connects to a SnapVoter service via HTTP.
type Client struct {
	baseURL    string       // baseURL is the service root (e.g. "http://127.0.0.1:8080")
	httpClient *http.Client // httpClient sends every request
}

// Wallet holds the Ed25519 keypair of a realm authority.
type Wallet struct {
	privKey ed25519.PrivateKey // privKey is the Ed25519 private key
	pubKey  ed25519.PublicKey  // pubKey is the Ed25519 public key

	mu   sync.Mutex
	last uint64 // last is the most recent timestamp signed
}

// NewClient creates a client for the service at addr.
// A bare host:port is treated as plain HTTP.
func NewClient(addr string) *Client {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	return &Client{
		baseURL:    strings.TrimRight(addr, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWallet creates a new wallet with a random Ed25519 keypair.
func NewWallet() *Wallet {
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)

	return &Wallet{privKey: priv, pubKey: pub}
}

// NewWalletFromSeed restores a wallet from a 32-byte Ed25519 seed.
func NewWalletFromSeed(seed []byte) (*Wallet, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length: got %d, want %d", len(seed), ed25519.SeedSize)
	}

	priv := ed25519.NewKeyFromSeed(seed)

	return &Wallet{privKey: priv, pubKey: priv.Public().(ed25519.PublicKey)}, nil
}

// Pubkey returns the wallet's public key.
func (w *Wallet) Pubkey() state.Pubkey {
	var pk state.Pubkey
	copy(pk[:], w.pubKey)
	return pk
}

// sign returns the signature headers for one request. Timestamps never repeat
// for one wallet, so two writes in the same millisecond are still ordered.
func (w *Wallet) sign(method, path string, body []byte) (signer, signature, timestamp string) {
	ts := w.nextTimestamp(time.Now())

	digest := api.SigningDigest(method, path, ts, body)
	sig := ed25519.Sign(w.privKey, digest[:])

	return w.Pubkey().String(), hex.EncodeToString(sig), strconv.FormatUint(ts, 10)
}

// nextTimestamp returns now in unix milliseconds, bumped past the last one.
func (w *Wallet) nextTimestamp(now time.Time) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := uint64(now.UnixMilli())
	if ts <= w.last {
		ts = w.last + 1
	}
	w.last = ts

	return ts
}

// EncodeProof returns the hex verification data for the row at index with the
// given sibling path.
func EncodeProof(index uint64, siblings [][32]byte) string {
	b := merkle.Bundle{Index: index, Siblings: siblings}
	return hex.EncodeToString(b.Encode())
}

// Health checks that the service is up and returns its version.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}

	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return "", fmt.Errorf("health:\n%w", err)
	}

	if resp.Status != "ok" {
		return "", fmt.Errorf("unexpected status: %q", resp.Status)
	}

	return resp.Version, nil
}

// CreateRegistrar creates a registrar, signed by the realm authority.
func (c *Client) CreateRegistrar(ctx context.Context, authority *Wallet, req api.CreateRegistrarRequest) (*api.Registrar, error) {
	var reg api.Registrar
	if err := c.do(ctx, http.MethodPost, "/registrars", req, authority, &reg); err != nil {
		return nil, fmt.Errorf("create registrar:\n%w", err)
	}

	return &reg, nil
}

// UpdateRegistrar rebinds a registrar to a new root, uri and proposal, signed
// by the realm authority.
func (c *Client) UpdateRegistrar(ctx context.Context, authority *Wallet, realm, mint state.Pubkey, req api.UpdateRegistrarRequest) (*api.Registrar, error) {
	var reg api.Registrar
	if err := c.do(ctx, http.MethodPut, registrarPath(realm, mint), req, authority, &reg); err != nil {
		return nil, fmt.Errorf("update registrar:\n%w", err)
	}

	return &reg, nil
}

// Registrar returns the registrar for (realm, mint).
func (c *Client) Registrar(ctx context.Context, realm, mint state.Pubkey) (*api.Registrar, error) {
	var reg api.Registrar
	if err := c.do(ctx, http.MethodGet, registrarPath(realm, mint), nil, nil, &reg); err != nil {
		return nil, fmt.Errorf("get registrar:\n%w", err)
	}

	return &reg, nil
}

// CreateVoterWeightRecord creates the empty voter weight record of owner.
func (c *Client) CreateVoterWeightRecord(ctx context.Context, realm, mint, owner state.Pubkey) (*api.VoterWeightRecord, error) {
	req := api.CreateVoterWeightRecordRequest{GoverningTokenOwner: owner}

	var rec api.VoterWeightRecord
	if err := c.do(ctx, http.MethodPost, registrarPath(realm, mint)+"/voter-weight-records", req, nil, &rec); err != nil {
		return nil, fmt.Errorf("create voter weight record:\n%w", err)
	}

	return &rec, nil
}

// UpdateVoterWeightRecord submits a snapshot claim for owner.
func (c *Client) UpdateVoterWeightRecord(ctx context.Context, realm, mint, owner state.Pubkey, req api.UpdateVoterWeightRecordRequest) (*api.VoterWeightRecord, error) {
	var rec api.VoterWeightRecord
	if err := c.do(ctx, http.MethodPost, voterWeightRecordPath(realm, mint, owner)+"/update", req, nil, &rec); err != nil {
		return nil, fmt.Errorf("update voter weight record:\n%w", err)
	}

	return &rec, nil
}

// VoterWeightRecord returns the voter weight record of owner.
func (c *Client) VoterWeightRecord(ctx context.Context, realm, mint, owner state.Pubkey) (*api.VoterWeightRecord, error) {
	var rec api.VoterWeightRecord
	if err := c.do(ctx, http.MethodGet, voterWeightRecordPath(realm, mint, owner), nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("get voter weight record:\n%w", err)
	}

	return &rec, nil
}

// CreateMaxVoterWeightRecord creates the empty max voter weight record.
func (c *Client) CreateMaxVoterWeightRecord(ctx context.Context, realm, mint state.Pubkey) (*api.MaxVoterWeightRecord, error) {
	var rec api.MaxVoterWeightRecord
	if err := c.do(ctx, http.MethodPost, registrarPath(realm, mint)+"/max-voter-weight-record", nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("create max voter weight record:\n%w", err)
	}

	return &rec, nil
}

// MaxVoterWeightRecord returns the max voter weight record.
func (c *Client) MaxVoterWeightRecord(ctx context.Context, realm, mint state.Pubkey) (*api.MaxVoterWeightRecord, error) {
	var rec api.MaxVoterWeightRecord
	if err := c.do(ctx, http.MethodGet, registrarPath(realm, mint)+"/max-voter-weight-record", nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("get max voter weight record:\n%w", err)
	}

	return &rec, nil
}

func registrarPath(realm, mint state.Pubkey) string {
	return "/registrars/" + realm.String() + "/" + mint.String()
}

func voterWeightRecordPath(realm, mint, owner state.Pubkey) string {
	return registrarPath(realm, mint) + "/voter-weight-records/" + owner.String()
}

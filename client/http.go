package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"SnapVoter/internal/api"
	"SnapVoter/internal/state"
	"SnapVoter/internal/voter"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status int    // Status is the HTTP status code
	Code   uint32 // Code is the rejection code, zero for other failures
	Name   string // Name is the rejection name
	Msg    string // Msg is the service's message
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("status %d: %s (%d): %s", e.Status, e.Name, e.Code, e.Msg)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Msg)
}

// Unwrap maps the response to the matching sentinel so callers can use
// errors.Is against voter and state errors.
func (e *APIError) Unwrap() error {
	if ve, ok := voter.ErrorByCode(e.Code); ok {
		return ve
	}

	if e.Name == api.NameStaleNonce {
		return voter.ErrStaleNonce
	}

	switch e.Status {
	case http.StatusNotFound:
		return state.ErrNotFound
	case http.StatusConflict:
		return state.ErrAlreadyExists
	default:
		return nil
	}
}

// do sends a JSON request and decodes the JSON response into result.
// A non-nil signer signs the exact body bytes sent.
func (c *Client) do(ctx context.Context, method, path string, body any, signer *Wallet, result any) error {
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshal body:\n%w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request:\n%w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if signer != nil {
		pub, sig, ts := signer.sign(method, path, raw)
		req.Header.Set(api.HeaderSigner, pub)
		req.Header.Set(api.HeaderSignature, sig)
		req.Header.Set(api.HeaderTimestamp, ts)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s:\n%w", method, path, err)
	}
	defer func() { io.Copy(io.Discard, resp.Body); resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// decodeAPIError builds an APIError from a failed response.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{Status: resp.StatusCode}

	var body api.ErrorResponse
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Name = body.Name
		apiErr.Msg = body.Error
	} else {
		apiErr.Msg = string(bytes.TrimSpace(data))
	}

	return apiErr
}

package api

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/zeebo/blake3"

	"SnapVoter/internal/state"
)

const (
	// HeaderSigner carries the hex Ed25519 public key of the signer.
	HeaderSigner = "X-Signer"

	// HeaderSignature carries the hex Ed25519 signature over SigningDigest.
	HeaderSignature = "X-Signature"

	// HeaderTimestamp carries the signing time in unix milliseconds.
	HeaderTimestamp = "X-Timestamp"

	// MaxClockSkew is how far a signed timestamp may be from the server clock.
	MaxClockSkew = 5 * time.Minute
)

// signedKey is the context key of the verified request signature.
type signedKey struct{}

// signedRequest is what a verified signature vouches for.
type signedRequest struct {
	signer    state.Pubkey
	timestamp uint64 // timestamp is the signed unix milliseconds, used as the write nonce
}

// SigningDigest returns the digest a signer signs for one request.
// Format: blake3(method || " " || path || "\n" || timestamp || "\n" || body)
func SigningDigest(method, path string, timestamp uint64, body []byte) [32]byte {
	h := blake3.New()
	h.Write([]byte(method))
	h.Write([]byte{' '})
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(strconv.AppendUint(nil, timestamp, 10))
	h.Write([]byte{'\n'})
	h.Write(body)

	var digest [32]byte
	h.Sum(digest[:0])

	return digest
}

// requireSigner verifies the request signature and its timestamp, then stores
// both in the request context. The body is buffered so the handler can read it
// again.
func (s *Server) requireSigner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		if len(body) > maxBodySize {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}

		ts, err := checkTimestamp(r.Header.Get(HeaderTimestamp), s.now())
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		signer, err := verifySignature(r.Header.Get(HeaderSigner), r.Header.Get(HeaderSignature), r.Method, r.URL.Path, ts, body)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		signed := signedRequest{signer: signer, timestamp: ts}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), signedKey{}, signed)))
	})
}

// checkTimestamp parses the timestamp header and rejects values outside
// MaxClockSkew of now.
func checkTimestamp(raw string, now time.Time) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", HeaderTimestamp)
	}

	ts, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %v", err)
	}

	skew := now.Sub(time.UnixMilli(int64(ts)))
	if skew > MaxClockSkew || skew < -MaxClockSkew {
		return 0, fmt.Errorf("timestamp outside the accepted window of %s", MaxClockSkew)
	}

	return ts, nil
}

// verifySignature checks the signature headers against the request.
func verifySignature(signerHex, signatureHex, method, path string, timestamp uint64, body []byte) (state.Pubkey, error) {
	if signerHex == "" || signatureHex == "" {
		return state.Pubkey{}, fmt.Errorf("missing %s or %s header", HeaderSigner, HeaderSignature)
	}

	signer, err := state.ParsePubkey(signerHex)
	if err != nil {
		return state.Pubkey{}, fmt.Errorf("invalid signer: %v", err)
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return state.Pubkey{}, fmt.Errorf("invalid signature encoding")
	}

	digest := SigningDigest(method, path, timestamp, body)

	if !ed25519.Verify(signer[:], digest[:], sig) {
		return state.Pubkey{}, fmt.Errorf("invalid signature")
	}

	return signer, nil
}

// signedFrom returns the verified signature of the request.
func signedFrom(ctx context.Context) (signedRequest, bool) {
	signed, ok := ctx.Value(signedKey{}).(signedRequest)
	return signed, ok
}

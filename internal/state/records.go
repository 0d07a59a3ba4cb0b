package state

import (
	"encoding/hex"
	"fmt"
)

// Pubkey is a 32-byte identity: realms, mints, token owners, programs and proposals.
type Pubkey [32]byte

// Hash is a 32-byte digest.
type Hash [32]byte

// String returns the hex encoding of the key.
func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

// IsZero reports whether every byte is zero.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalText encodes the key as hex.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a hex key.
func (p *Pubkey) UnmarshalText(text []byte) error {
	return decodeHex32(string(text), (*[32]byte)(p))
}

// ParsePubkey decodes a hex-encoded 32-byte identity.
func ParsePubkey(s string) (Pubkey, error) {
	var p Pubkey
	err := decodeHex32(s, (*[32]byte)(&p))
	return p, err
}

// String returns the hex encoding of the digest.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether every byte is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText encodes the digest as hex.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a hex digest.
func (h *Hash) UnmarshalText(text []byte) error {
	return decodeHex32(string(text), (*[32]byte)(h))
}

// decodeHex32 decodes exactly 32 bytes of hex into out.
func decodeHex32(s string, out *[32]byte) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode hex:\n%w", err)
	}

	if len(b) != 32 {
		return fmt.Errorf("invalid length: got %d bytes, want 32", len(b))
	}

	copy(out[:], b)

	return nil
}

// VoterWeightAction is the governance action a weight is scoped to.
type VoterWeightAction uint8

const (
	ActionCastVote VoterWeightAction = iota + 1
	ActionCommentProposal
	ActionCreateGovernance
	ActionCreateProposal
	ActionSignOffProposal
)

// Registrar binds a snapshot root and a proposal to one (realm, mint) pair.
type Registrar struct {
	GovernanceProgramID Pubkey  // GovernanceProgramID is the governance instance the realm belongs to
	Realm               Pubkey  // Realm is the realm the registrar is for
	GoverningTokenMint  Pubkey  // GoverningTokenMint is the community or council mint of the realm
	Root                Hash    // Root is the snapshot root; zero means unset
	URI                 *string // URI optionally points at the off-chain snapshot
	Proposal            Pubkey  // Proposal is the proposal the root is bound to

	// Nonce is the signed request time, in unix milliseconds, of the last
	// accepted authority write. Each write must carry a larger one.
	Nonce uint64
}

// HasRoot reports whether a snapshot root has been published.
func (r *Registrar) HasRoot() bool {
	return !r.Root.IsZero()
}

// VoterWeightRecord is the weight of one voter, consumed by the governance program.
type VoterWeightRecord struct {
	Realm               Pubkey
	GoverningTokenMint  Pubkey
	GoverningTokenOwner Pubkey
	VoterWeight         uint64

	// VoterWeightExpiry, when set, is the only slot at which the weight is valid.
	VoterWeightExpiry *uint64

	// WeightAction, when set, restricts the weight to one action.
	WeightAction *VoterWeightAction

	// WeightActionTarget, when set, restricts the weight to one proposal.
	WeightActionTarget *Pubkey
}

// MaxVoterWeightRecord is the realm-wide ceiling for one governing mint.
type MaxVoterWeightRecord struct {
	Realm                Pubkey
	GoverningTokenMint   Pubkey
	MaxVoterWeight       uint64
	MaxVoterWeightExpiry *uint64
}

// VoterWeightRecordKey identifies a voter weight record.
type VoterWeightRecordKey struct {
	Realm               Pubkey
	GoverningTokenMint  Pubkey
	GoverningTokenOwner Pubkey
}

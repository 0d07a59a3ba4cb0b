// Package governance defines the records this service reads from an external
// governance program, the ports used to resolve them, and two implementations:
// an HTTP client for a governance daemon and an in-memory registry.
//
// Every lookup names the governance program expected to own the record. A
// record owned by any other program is reported as ErrNotOwned, never returned.
package governance

//go:generate mockgen -source=governance.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"SnapVoter/internal/state"
)

var (
	// ErrNotOwned is returned when a record exists but is not owned by the given program.
	ErrNotOwned = errors.New("record not owned by governance program")

	// ErrMintNotAccepted is returned when a mint is neither the community nor the council mint of a realm.
	ErrMintNotAccepted = errors.New("mint not accepted by realm")

	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("governance record not found")

	// ErrUnavailable is returned when the governance daemon cannot be reached or
	// answers without a usable response.
	ErrUnavailable = errors.New("governance daemon unavailable")
)

// Error codes reported by a governance daemon.
const (
	CodeNotOwned        = "not_owned"
	CodeMintNotAccepted = "mint_not_accepted"
	CodeNotFound        = "not_found"
	CodeBadRequest      = "bad_request"
	CodeInternal        = "internal"
)

// Error is an error response from a governance daemon.
// It carries a machine-readable code and a human-readable message.
type Error struct {
	Code string // Code is one of the Code* constants, or a daemon-specific value
	Msg  string // Msg is the daemon's message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("governance error [%s]: %s", e.Code, e.Msg)
}

// Unwrap maps known codes to the package sentinels so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeNotOwned:
		return ErrNotOwned
	case CodeMintNotAccepted:
		return ErrMintNotAccepted
	case CodeNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// ProposalState is the lifecycle state of a proposal.
type ProposalState uint8

const (
	ProposalDraft ProposalState = iota
	ProposalSigningOff
	ProposalVoting
	ProposalSucceeded
	ProposalExecuting
	ProposalCompleted
	ProposalCancelled
	ProposalDefeated
	ProposalExecutingWithErrors
	ProposalVetoed
)

var proposalStateNames = [...]string{
	"Draft",
	"SigningOff",
	"Voting",
	"Succeeded",
	"Executing",
	"Completed",
	"Cancelled",
	"Defeated",
	"ExecutingWithErrors",
	"Vetoed",
}

// String returns the state name.
func (s ProposalState) String() string {
	if int(s) < len(proposalStateNames) {
		return proposalStateNames[s]
	}
	return fmt.Sprintf("ProposalState(%d)", uint8(s))
}

// ParseProposalState returns the state with the given name.
func ParseProposalState(name string) (ProposalState, error) {
	for i, n := range proposalStateNames {
		if n == name {
			return ProposalState(i), nil
		}
	}
	return 0, fmt.Errorf("unknown proposal state %q", name)
}

// Realm is the part of a governance realm this service relies on.
type Realm struct {
	ID            state.Pubkey
	Authority     *state.Pubkey // Authority is nil for a realm without an authority
	CommunityMint state.Pubkey
	CouncilMint   *state.Pubkey // CouncilMint is nil for a realm without a council
}

// Accepts reports whether mint is the community or the council mint.
func (r *Realm) Accepts(mint state.Pubkey) bool {
	if r.CommunityMint == mint {
		return true
	}
	return r.CouncilMint != nil && *r.CouncilMint == mint
}

// TokenOwnerRecord is a voter's membership of one realm.
type TokenOwnerRecord struct {
	Realm               state.Pubkey
	GoverningTokenMint  state.Pubkey
	GoverningTokenOwner state.Pubkey
}

// IdentityAuthority resolves realms.
type IdentityAuthority interface {
	// ResolveRealm returns the realm owned by program for which mint is an
	// accepted governing mint. Fails with ErrNotOwned or ErrMintNotAccepted.
	ResolveRealm(ctx context.Context, program, realm, mint state.Pubkey) (*Realm, error)
}

// DecisionInstanceProvider reports proposal state.
type DecisionInstanceProvider interface {
	// ProposalState returns the state of a proposal owned by program.
	ProposalState(ctx context.Context, program, proposal state.Pubkey) (ProposalState, error)
}

// MembershipProvider resolves token owner records.
type MembershipProvider interface {
	// TokenOwnerRecord returns the token owner record at address, owned by program.
	TokenOwnerRecord(ctx context.Context, program, record state.Pubkey) (*TokenOwnerRecord, error)
}

// Provider bundles all three ports.
type Provider interface {
	IdentityAuthority
	DecisionInstanceProvider
	MembershipProvider
}

package governance

import (
	"context"
	"sync"

	"SnapVoter/internal/state"
)

// Registry is an in-memory Provider. Records are added with their owning program.
type Registry struct {
	mu        sync.RWMutex
	realms    map[state.Pubkey]ownedRealm
	proposals map[state.Pubkey]ownedProposal
	members   map[state.Pubkey]ownedMember
}

type ownedRealm struct {
	program state.Pubkey
	realm   Realm
}

type ownedProposal struct {
	program state.Pubkey
	state   ProposalState
}

type ownedMember struct {
	program state.Pubkey
	record  TokenOwnerRecord
}

// Compile-time interface check
var _ Provider = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		realms:    make(map[state.Pubkey]ownedRealm),
		proposals: make(map[state.Pubkey]ownedProposal),
		members:   make(map[state.Pubkey]ownedMember),
	}
}

// PutRealm adds or replaces a realm owned by program.
func (r *Registry) PutRealm(program state.Pubkey, realm Realm) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.realms[realm.ID] = ownedRealm{program: program, realm: realm}
}

// PutProposal adds or replaces a proposal owned by program.
func (r *Registry) PutProposal(program, proposal state.Pubkey, s ProposalState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.proposals[proposal] = ownedProposal{program: program, state: s}
}

// PutTokenOwnerRecord adds or replaces the token owner record at address, owned by program.
func (r *Registry) PutTokenOwnerRecord(program, address state.Pubkey, rec TokenOwnerRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members[address] = ownedMember{program: program, record: rec}
}

// ResolveRealm implements IdentityAuthority.
func (r *Registry) ResolveRealm(_ context.Context, program, realm, mint state.Pubkey) (*Realm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned, ok := r.realms[realm]
	if !ok {
		return nil, ErrNotFound
	}

	if owned.program != program {
		return nil, ErrNotOwned
	}

	if !owned.realm.Accepts(mint) {
		return nil, ErrMintNotAccepted
	}

	out := owned.realm
	return &out, nil
}

// ProposalState implements DecisionInstanceProvider.
func (r *Registry) ProposalState(_ context.Context, program, proposal state.Pubkey) (ProposalState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned, ok := r.proposals[proposal]
	if !ok {
		return 0, ErrNotFound
	}

	if owned.program != program {
		return 0, ErrNotOwned
	}

	return owned.state, nil
}

// TokenOwnerRecord implements MembershipProvider.
func (r *Registry) TokenOwnerRecord(_ context.Context, program, record state.Pubkey) (*TokenOwnerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned, ok := r.members[record]
	if !ok {
		return nil, ErrNotFound
	}

	if owned.program != program {
		return nil, ErrNotOwned
	}

	out := owned.record
	return &out, nil
}

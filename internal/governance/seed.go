package governance

import (
	"encoding/json"
	"fmt"
	"io"

	"SnapVoter/internal/state"
)

// Seed is the JSON document LoadSeed reads into a Registry.
type Seed struct {
	Realms []struct {
		Program       state.Pubkey  `json:"program"`
		ID            state.Pubkey  `json:"id"`
		Authority     *state.Pubkey `json:"authority,omitempty"`
		CommunityMint state.Pubkey  `json:"community_mint"`
		CouncilMint   *state.Pubkey `json:"council_mint,omitempty"`
	} `json:"realms"`

	Proposals []struct {
		Program state.Pubkey `json:"program"`
		ID      state.Pubkey `json:"id"`
		State   string       `json:"state"`
	} `json:"proposals"`

	TokenOwnerRecords []struct {
		Program             state.Pubkey `json:"program"`
		Address             state.Pubkey `json:"address"`
		Realm               state.Pubkey `json:"realm"`
		GoverningTokenMint  state.Pubkey `json:"governing_token_mint"`
		GoverningTokenOwner state.Pubkey `json:"governing_token_owner"`
	} `json:"token_owner_records"`
}

// LoadSeed reads a Seed document and adds every record to the registry.
func (r *Registry) LoadSeed(in io.Reader) error {
	var seed Seed

	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("decode seed:\n%w", err)
	}

	for _, realm := range seed.Realms {
		r.PutRealm(realm.Program, Realm{
			ID:            realm.ID,
			Authority:     realm.Authority,
			CommunityMint: realm.CommunityMint,
			CouncilMint:   realm.CouncilMint,
		})
	}

	for i, p := range seed.Proposals {
		s, err := ParseProposalState(p.State)
		if err != nil {
			return fmt.Errorf("proposal %d:\n%w", i, err)
		}
		r.PutProposal(p.Program, p.ID, s)
	}

	for _, tor := range seed.TokenOwnerRecords {
		r.PutTokenOwnerRecord(tor.Program, tor.Address, TokenOwnerRecord{
			Realm:               tor.Realm,
			GoverningTokenMint:  tor.GoverningTokenMint,
			GoverningTokenOwner: tor.GoverningTokenOwner,
		})
	}

	return nil
}

package api

import (
	"SnapVoter/internal/state"
)

// ErrorResponse is the body of every failed request.
// Code and Name are set for rejected operations only.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  uint32 `json:"code,omitempty"`
	Name  string `json:"name,omitempty"`
}

// NameStaleNonce names the conflict returned for a replayed or out of order
// authority write.
const NameStaleNonce = "StaleNonce"

// CreateRegistrarRequest is the body of POST /registrars.
type CreateRegistrarRequest struct {
	GovernanceProgramID state.Pubkey `json:"governance_program_id"`
	Realm               state.Pubkey `json:"realm"`
	GoverningTokenMint  state.Pubkey `json:"governing_token_mint"`
}

// UpdateRegistrarRequest is the body of PUT /registrars/{realm}/{mint}.
type UpdateRegistrarRequest struct {
	Root     state.Hash   `json:"root"`
	URI      *string      `json:"uri,omitempty"`
	Proposal state.Pubkey `json:"proposal"`
}

// CreateVoterWeightRecordRequest is the body of
// POST /registrars/{realm}/{mint}/voter-weight-records.
type CreateVoterWeightRecordRequest struct {
	GoverningTokenOwner state.Pubkey `json:"governing_token_owner"`
}

// UpdateVoterWeightRecordRequest is the body of
// POST /registrars/{realm}/{mint}/voter-weight-records/{owner}/update.
type UpdateVoterWeightRecordRequest struct {
	// RecordRealm and RecordMint select a record outside the registrar's
	// (realm, mint). They default to the path values.
	RecordRealm *state.Pubkey `json:"record_realm,omitempty"`
	RecordMint  *state.Pubkey `json:"record_mint,omitempty"`

	TokenOwnerRecord        state.Pubkey `json:"token_owner_record"`
	TokenOwnerRecordProgram state.Pubkey `json:"token_owner_record_program"`
	Proposal                state.Pubkey `json:"proposal"`
	Amount                  uint64       `json:"amount"`
	VerificationData        string       `json:"verification_data"` // hex proof bundle
}

// Registrar is a registrar with its derived address.
type Registrar struct {
	Address             state.Pubkey `json:"address"`
	GovernanceProgramID state.Pubkey `json:"governance_program_id"`
	Realm               state.Pubkey `json:"realm"`
	GoverningTokenMint  state.Pubkey `json:"governing_token_mint"`
	Root                *state.Hash  `json:"root,omitempty"`
	URI                 *string      `json:"uri,omitempty"`
	Proposal            state.Pubkey `json:"proposal"`
}

// VoterWeightRecord is a voter weight record with its derived address.
type VoterWeightRecord struct {
	Address             state.Pubkey             `json:"address"`
	Realm               state.Pubkey             `json:"realm"`
	GoverningTokenMint  state.Pubkey             `json:"governing_token_mint"`
	GoverningTokenOwner state.Pubkey             `json:"governing_token_owner"`
	VoterWeight         uint64                   `json:"voter_weight"`
	VoterWeightExpiry   *uint64                  `json:"voter_weight_expiry,omitempty"`
	WeightAction        *state.VoterWeightAction `json:"weight_action,omitempty"`
	WeightActionTarget  *state.Pubkey            `json:"weight_action_target,omitempty"`
}

// MaxVoterWeightRecord is a max voter weight record with its derived address.
type MaxVoterWeightRecord struct {
	Address              state.Pubkey `json:"address"`
	Realm                state.Pubkey `json:"realm"`
	GoverningTokenMint   state.Pubkey `json:"governing_token_mint"`
	MaxVoterWeight       uint64       `json:"max_voter_weight"`
	MaxVoterWeightExpiry *uint64      `json:"max_voter_weight_expiry,omitempty"`
}

func toRegistrar(r *state.Registrar) Registrar {
	out := Registrar{
		Address:             state.RegistrarAddress(r.Realm, r.GoverningTokenMint),
		GovernanceProgramID: r.GovernanceProgramID,
		Realm:               r.Realm,
		GoverningTokenMint:  r.GoverningTokenMint,
		URI:                 r.URI,
		Proposal:            r.Proposal,
	}

	if r.HasRoot() {
		root := r.Root
		out.Root = &root
	}

	return out
}

func toVoterWeightRecord(r *state.VoterWeightRecord) VoterWeightRecord {
	return VoterWeightRecord{
		Address:             state.VoterWeightRecordAddress(r.Realm, r.GoverningTokenMint, r.GoverningTokenOwner),
		Realm:               r.Realm,
		GoverningTokenMint:  r.GoverningTokenMint,
		GoverningTokenOwner: r.GoverningTokenOwner,
		VoterWeight:         r.VoterWeight,
		VoterWeightExpiry:   r.VoterWeightExpiry,
		WeightAction:        r.WeightAction,
		WeightActionTarget:  r.WeightActionTarget,
	}
}

func toMaxVoterWeightRecord(r *state.MaxVoterWeightRecord) MaxVoterWeightRecord {
	return MaxVoterWeightRecord{
		Address:              state.MaxVoterWeightRecordAddress(r.Realm, r.GoverningTokenMint),
		Realm:                r.Realm,
		GoverningTokenMint:   r.GoverningTokenMint,
		MaxVoterWeight:       r.MaxVoterWeight,
		MaxVoterWeightExpiry: r.MaxVoterWeightExpiry,
	}
}

package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"SnapVoter/internal/state"
	"SnapVoter/internal/voter"
)

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": voter.Version,
	})
}

// handleCreateRegistrar handles POST /registrars requests.
func (s *Server) handleCreateRegistrar(w http.ResponseWriter, r *http.Request) {
	var req CreateRegistrarRequest
	if !readJSON(w, r, &req) {
		return
	}

	if req.GovernanceProgramID.IsZero() || req.Realm.IsZero() || req.GoverningTokenMint.IsZero() {
		writeError(w, http.StatusBadRequest, "governance_program_id, realm and governing_token_mint are required")
		return
	}

	signed, _ := signedFrom(r.Context())

	reg, err := s.voter.CreateRegistrar(r.Context(), voter.CreateRegistrarRequest{
		GovernanceProgramID: req.GovernanceProgramID,
		Realm:               req.Realm,
		GoverningTokenMint:  req.GoverningTokenMint,
		Signer:              signed.signer,
		Nonce:               signed.timestamp,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRegistrar(reg))
}

// handleUpdateRegistrar handles PUT /registrars/{realm}/{mint} requests.
func (s *Server) handleUpdateRegistrar(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	var req UpdateRegistrarRequest
	if !readJSON(w, r, &req) {
		return
	}

	signed, _ := signedFrom(r.Context())

	reg, err := s.voter.UpdateRegistrar(r.Context(), voter.UpdateRegistrarRequest{
		Realm:              realm,
		GoverningTokenMint: mint,
		Signer:             signed.signer,
		Nonce:              signed.timestamp,
		Root:               req.Root,
		URI:                req.URI,
		Proposal:           req.Proposal,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRegistrar(reg))
}

// handleGetRegistrar handles GET /registrars/{realm}/{mint} requests.
func (s *Server) handleGetRegistrar(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	reg, err := s.voter.Registrar(r.Context(), realm, mint)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRegistrar(reg))
}

// handleCreateVoterWeightRecord handles POST .../voter-weight-records requests.
func (s *Server) handleCreateVoterWeightRecord(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	var req CreateVoterWeightRecordRequest
	if !readJSON(w, r, &req) {
		return
	}

	rec, err := s.voter.CreateVoterWeightRecord(r.Context(), realm, mint, req.GoverningTokenOwner)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVoterWeightRecord(rec))
}

// handleGetVoterWeightRecord handles GET .../voter-weight-records/{owner} requests.
func (s *Server) handleGetVoterWeightRecord(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	owner, ok := pubkeyParam(w, r, "owner")
	if !ok {
		return
	}

	rec, err := s.voter.VoterWeightRecord(r.Context(), realm, mint, owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoterWeightRecord(rec))
}

// handleUpdateVoterWeightRecord handles POST .../voter-weight-records/{owner}/update requests.
func (s *Server) handleUpdateVoterWeightRecord(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	owner, ok := pubkeyParam(w, r, "owner")
	if !ok {
		return
	}

	var req UpdateVoterWeightRecordRequest
	if !readJSON(w, r, &req) {
		return
	}

	data, err := hex.DecodeString(req.VerificationData)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid verification_data: %v", err))
		return
	}

	key := state.VoterWeightRecordKey{Realm: realm, GoverningTokenMint: mint, GoverningTokenOwner: owner}
	if req.RecordRealm != nil {
		key.Realm = *req.RecordRealm
	}
	if req.RecordMint != nil {
		key.GoverningTokenMint = *req.RecordMint
	}

	rec, err := s.voter.UpdateVoterWeightRecord(r.Context(), voter.UpdateVoterWeightRecordRequest{
		Realm:                   realm,
		GoverningTokenMint:      mint,
		VoterWeightRecord:       key,
		TokenOwnerRecord:        req.TokenOwnerRecord,
		TokenOwnerRecordProgram: req.TokenOwnerRecordProgram,
		Proposal:                req.Proposal,
		Amount:                  req.Amount,
		VerificationData:        data,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoterWeightRecord(rec))
}

// handleCreateMaxVoterWeightRecord handles POST .../max-voter-weight-record requests.
func (s *Server) handleCreateMaxVoterWeightRecord(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	rec, err := s.voter.CreateMaxVoterWeightRecord(r.Context(), realm, mint)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMaxVoterWeightRecord(rec))
}

// handleGetMaxVoterWeightRecord handles GET .../max-voter-weight-record requests.
func (s *Server) handleGetMaxVoterWeightRecord(w http.ResponseWriter, r *http.Request) {
	realm, mint, ok := registrarParams(w, r)
	if !ok {
		return
	}

	rec, err := s.voter.MaxVoterWeightRecord(r.Context(), realm, mint)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMaxVoterWeightRecord(rec))
}

// registrarParams parses the {realm} and {mint} path parameters.
func registrarParams(w http.ResponseWriter, r *http.Request) (state.Pubkey, state.Pubkey, bool) {
	realm, ok := pubkeyParam(w, r, "realm")
	if !ok {
		return state.Pubkey{}, state.Pubkey{}, false
	}

	mint, ok := pubkeyParam(w, r, "mint")
	if !ok {
		return state.Pubkey{}, state.Pubkey{}, false
	}

	return realm, mint, true
}

// pubkeyParam parses a hex path parameter, writing a 400 on failure.
func pubkeyParam(w http.ResponseWriter, r *http.Request, name string) (state.Pubkey, bool) {
	p, err := state.ParsePubkey(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %v", name, err))
		return state.Pubkey{}, false
	}

	return p, true
}

// readJSON decodes a size-limited JSON body, writing a 400 on failure.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	return true
}

package governance

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"SnapVoter/internal/logger"
)

// maxDaemonBody bounds daemon request bodies.
const maxDaemonBody = 4096

// NewDaemonHandler serves the daemon protocol Client speaks, backed by p.
// It lets a Registry stand in for a real governance daemon.
func NewDaemonHandler(p Provider) http.Handler {
	d := &daemon{provider: p}

	r := chi.NewRouter()
	r.Post("/ping", d.handlePing)
	r.Post("/realm", d.handleRealm)
	r.Post("/proposal", d.handleProposal)
	r.Post("/token_owner_record", d.handleTokenOwnerRecord)

	return r
}

type daemon struct {
	provider Provider
}

func (d *daemon) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeDaemonJSON(w, http.StatusOK, pingResponse{Pong: true})
}

func (d *daemon) handleRealm(w http.ResponseWriter, r *http.Request) {
	var req realmRequest
	if !readDaemonJSON(w, r, &req) {
		return
	}

	realm, err := d.provider.ResolveRealm(r.Context(), req.Program, req.Realm, req.Mint)
	if err != nil {
		writeDaemonError(w, err)
		return
	}

	writeDaemonJSON(w, http.StatusOK, realmResponse{
		Authority:     realm.Authority,
		CommunityMint: &realm.CommunityMint,
		CouncilMint:   realm.CouncilMint,
	})
}

func (d *daemon) handleProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if !readDaemonJSON(w, r, &req) {
		return
	}

	s, err := d.provider.ProposalState(r.Context(), req.Program, req.Proposal)
	if err != nil {
		writeDaemonError(w, err)
		return
	}

	writeDaemonJSON(w, http.StatusOK, proposalResponse{State: s.String()})
}

func (d *daemon) handleTokenOwnerRecord(w http.ResponseWriter, r *http.Request) {
	var req tokenOwnerRecordRequest
	if !readDaemonJSON(w, r, &req) {
		return
	}

	rec, err := d.provider.TokenOwnerRecord(r.Context(), req.Program, req.Record)
	if err != nil {
		writeDaemonError(w, err)
		return
	}

	writeDaemonJSON(w, http.StatusOK, tokenOwnerRecordResponse{
		Realm:               &rec.Realm,
		GoverningTokenMint:  &rec.GoverningTokenMint,
		GoverningTokenOwner: &rec.GoverningTokenOwner,
	})
}

// readDaemonJSON decodes the request body, answering bad_request on failure.
func readDaemonJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDaemonBody))
	if err != nil || json.Unmarshal(body, v) != nil {
		writeDaemonJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Code: CodeBadRequest})
		return false
	}
	return true
}

// writeDaemonError maps provider errors to daemon error codes.
func writeDaemonError(w http.ResponseWriter, err error) {
	var ge *Error
	switch {
	case errors.As(err, &ge):
		writeDaemonJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ge.Msg, Code: ge.Code})
	case errors.Is(err, ErrNotFound):
		writeDaemonJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: CodeNotFound})
	case errors.Is(err, ErrNotOwned):
		writeDaemonJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Code: CodeNotOwned})
	case errors.Is(err, ErrMintNotAccepted):
		writeDaemonJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Code: CodeMintNotAccepted})
	default:
		logger.Error("governance daemon lookup failed", "error", err)
		writeDaemonJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: CodeInternal})
	}
}

func writeDaemonJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

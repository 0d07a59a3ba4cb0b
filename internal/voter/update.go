package voter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SnapVoter/internal/governance"
	"SnapVoter/internal/merkle"
	"SnapVoter/internal/metrics"
	"SnapVoter/internal/state"
)

// UpdateVoterWeightRecordRequest proves one snapshot row and turns it into a
// voter weight.
type UpdateVoterWeightRecordRequest struct {
	Realm              state.Pubkey // Realm and GoverningTokenMint select the registrar
	GoverningTokenMint state.Pubkey

	// VoterWeightRecord selects the record to update. Its realm and mint must
	// match the registrar's.
	VoterWeightRecord state.VoterWeightRecordKey

	TokenOwnerRecord        state.Pubkey // TokenOwnerRecord is the voter's membership in another realm
	TokenOwnerRecordProgram state.Pubkey // TokenOwnerRecordProgram is the governance program owning it

	Proposal         state.Pubkey // Proposal must be the registrar's bound proposal
	Amount           uint64       // Amount is the claimed snapshot amount
	VerificationData []byte       // VerificationData is the encoded proof bundle
}

// membership is the result of a token owner record lookup.
type membership struct {
	record *governance.TokenOwnerRecord
	err    error
}

// UpdateVoterWeightRecord verifies the claimed amount against the registrar's
// snapshot root and the voter's membership of another realm, then sets the
// weight, valid at the current slot only and scoped to the registrar's proposal.
//
// Checks run in a fixed order and the first failure aborts the update with
// nothing written.
func (s *Service) UpdateVoterWeightRecord(ctx context.Context, req UpdateVoterWeightRecordRequest) (*state.VoterWeightRecord, error) {
	start := time.Now()
	log := s.log.With("op", "update_voter_weight_record",
		"realm", req.Realm,
		"mint", req.GoverningTokenMint,
		"owner", req.VoterWeightRecord.GoverningTokenOwner,
	)

	// The membership lookup is remote, so it runs before the store unit.
	// Its outcome is only consulted once the earlier checks have passed.
	var member membership
	member.record, member.err = s.members.TokenOwnerRecord(ctx, req.TokenOwnerRecordProgram, req.TokenOwnerRecord)

	var updated *state.VoterWeightRecord

	err := s.store.Update(func(tx *state.Txn) error {
		rec, err := s.applyWeightUpdate(tx, req, member)
		if err != nil {
			return err
		}
		updated = rec
		return nil
	})

	if s.metrics != nil {
		s.metrics.ObserveUpdateWeight(start)
		s.recordOutcome(err)
	}

	if err != nil {
		logRejected(log, err)
		return nil, err
	}

	log.Info("voter weight updated",
		"weight", updated.VoterWeight,
		"expiry", *updated.VoterWeightExpiry,
		"proposal", req.Proposal,
	)

	return updated, nil
}

// applyWeightUpdate runs every check against the store view and stages the
// new record.
func (s *Service) applyWeightUpdate(tx *state.Txn, req UpdateVoterWeightRecordRequest, member membership) (*state.VoterWeightRecord, error) {
	reg, err := tx.Registrar(req.Realm, req.GoverningTokenMint)
	if err != nil {
		return nil, fmt.Errorf("load registrar:\n%w", err)
	}

	key := req.VoterWeightRecord
	rec, err := tx.VoterWeightRecord(key.Realm, key.GoverningTokenMint, key.GoverningTokenOwner)
	if err != nil {
		return nil, fmt.Errorf("load voter weight record:\n%w", err)
	}

	if rec.Realm != reg.Realm {
		return nil, ErrInvalidVoterWeightRecordRealm
	}

	if rec.GoverningTokenMint != reg.GoverningTokenMint {
		return nil, ErrInvalidVoterWeightRecordMint
	}

	if !reg.HasRoot() {
		return nil, ErrMerkleRootMissing
	}

	if req.Proposal != reg.Proposal {
		return nil, ErrProposalMismatch
	}

	if err := verifyClaim(reg.Root, rec.GoverningTokenOwner, req.Amount, req.VerificationData); err != nil {
		return nil, err
	}

	if err := checkMembership(reg, rec, member); err != nil {
		return nil, err
	}

	expiry := s.clock.Slot()
	target := reg.Proposal

	rec.VoterWeight = req.Amount
	rec.VoterWeightExpiry = &expiry
	rec.WeightAction = nil
	rec.WeightActionTarget = &target

	if err := tx.PutVoterWeightRecord(rec); err != nil {
		return nil, fmt.Errorf("store voter weight record:\n%w", err)
	}

	return rec, nil
}

// verifyClaim checks that (index, owner, amount) is a leaf under root.
// A malformed bundle fails the same way as a wrong proof.
func verifyClaim(root state.Hash, owner state.Pubkey, amount uint64, data []byte) error {
	bundle, err := merkle.DecodeBundle(data)
	if err != nil {
		return withDetail(ErrProofVerificationFailed, "%v", err)
	}

	leaf := merkle.LeafHash(bundle.Index, owner, amount)

	if err := merkle.Verify(bundle.Siblings, root, leaf); err != nil {
		return ErrProofVerificationFailed
	}

	return nil
}

// checkMembership requires the token owner record to belong to the record's
// owner and to come from a realm other than the registrar's.
func checkMembership(reg *state.Registrar, rec *state.VoterWeightRecord, member membership) error {
	if member.err != nil {
		return fmt.Errorf("resolve token owner record:\n%w", member.err)
	}

	if member.record == nil {
		return fmt.Errorf("resolve token owner record:\n%w", governance.ErrNotFound)
	}

	if member.record.GoverningTokenOwner != rec.GoverningTokenOwner {
		return ErrGoverningTokenOwnerMustMatch
	}

	if member.record.Realm == reg.Realm {
		return ErrTokenOwnerRecordFromOwnRealmNotAllowed
	}

	return nil
}

// recordOutcome counts an update attempt by outcome.
func (s *Service) recordOutcome(err error) {
	if err == nil {
		s.metrics.RecordWeightUpdate(metrics.OutcomeAccepted, "")
		return
	}

	name := "internal"
	var ve *Error
	if errors.As(err, &ve) {
		name = ve.Name
	}

	if errors.Is(err, ErrProofVerificationFailed) {
		s.metrics.IncrementProofFailure()
	}

	s.metrics.RecordWeightUpdate(metrics.OutcomeRejected, name)
}

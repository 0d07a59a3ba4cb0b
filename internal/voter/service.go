// Package voter implements snapshot-backed voter weights: registrars binding a
// snapshot root to a proposal, and the update protocol turning an inclusion
// proof into a weight valid for one slot and one proposal.
package voter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"SnapVoter/internal/clock"
	"SnapVoter/internal/governance"
	"SnapVoter/internal/logger"
	"SnapVoter/internal/metrics"
	"SnapVoter/internal/state"
)

// Version is logged with every operation.
const Version = "0.2.0"

// ErrStaleNonce is returned when an authority write does not carry a nonce
// larger than the last one the registrar accepted.
var ErrStaleNonce = errors.New("nonce is not newer than the registrar's last update")

// Record kinds used in metrics.
const (
	kindVoterWeight    = "voter_weight"
	kindMaxVoterWeight = "max_voter_weight"
)

// Service runs registrar and weight record operations against a state store.
type Service struct {
	store     *state.Store
	realms    governance.IdentityAuthority
	proposals governance.DecisionInstanceProvider
	members   governance.MembershipProvider
	clock     clock.Clock
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// Option configures a Service.
type Option func(s *Service)

// WithMetrics records operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// New creates a Service. Every collaborator is required.
func New(
	store *state.Store,
	realms governance.IdentityAuthority,
	proposals governance.DecisionInstanceProvider,
	members governance.MembershipProvider,
	clk clock.Clock,
	opts ...Option,
) (*Service, error) {
	switch {
	case store == nil:
		return nil, errors.New("state store is required")
	case realms == nil:
		return nil, errors.New("identity authority is required")
	case proposals == nil:
		return nil, errors.New("decision instance provider is required")
	case members == nil:
		return nil, errors.New("membership provider is required")
	case clk == nil:
		return nil, errors.New("clock is required")
	}

	s := &Service{
		store:     store,
		realms:    realms,
		proposals: proposals,
		members:   members,
		clock:     clk,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.With("component", "voter")
	}
	s.log = s.log.With("version", Version)

	return s, nil
}

// CreateRegistrarRequest creates the registrar for one (realm, mint) pair.
type CreateRegistrarRequest struct {
	GovernanceProgramID state.Pubkey // GovernanceProgramID must own the realm
	Realm               state.Pubkey
	GoverningTokenMint  state.Pubkey // GoverningTokenMint must be the community or council mint
	Signer              state.Pubkey // Signer must be the realm authority
	Nonce               uint64       // Nonce seeds the registrar's update nonce
}

// CreateRegistrar validates the realm and its authority, then stores a
// registrar with an unset root. Fails with state.ErrAlreadyExists if the
// (realm, mint) pair already has one.
func (s *Service) CreateRegistrar(ctx context.Context, req CreateRegistrarRequest) (*state.Registrar, error) {
	log := s.log.With("op", "create_registrar", "realm", req.Realm, "mint", req.GoverningTokenMint)

	if err := s.checkRealmAuthority(ctx, req.GovernanceProgramID, req.Realm, req.GoverningTokenMint, req.Signer); err != nil {
		logRejected(log, err)
		return nil, err
	}

	reg := &state.Registrar{
		GovernanceProgramID: req.GovernanceProgramID,
		Realm:               req.Realm,
		GoverningTokenMint:  req.GoverningTokenMint,
		Nonce:               req.Nonce,
	}

	err := s.store.Update(func(tx *state.Txn) error {
		return tx.CreateRegistrar(reg)
	})
	if err != nil {
		logRejected(log, err)
		return nil, fmt.Errorf("create registrar:\n%w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrarCreated()
	}

	log.Info("registrar created", "address", state.RegistrarAddress(req.Realm, req.GoverningTokenMint))

	return reg, nil
}

// UpdateRegistrarRequest rebinds a registrar to a new root, uri and proposal.
type UpdateRegistrarRequest struct {
	Realm              state.Pubkey
	GoverningTokenMint state.Pubkey
	Signer             state.Pubkey // Signer must be the realm authority
	Root               state.Hash
	URI                *string
	Proposal           state.Pubkey // Proposal must be in Draft
	Nonce              uint64       // Nonce must exceed the registrar's current nonce
}

// UpdateRegistrar re-validates the realm and its authority against the
// registrar's governance program, requires the proposal to be in Draft, then
// replaces root, uri and proposal together. A request whose nonce is not
// larger than the registrar's fails with ErrStaleNonce, so a replayed write
// cannot restore an earlier snapshot.
func (s *Service) UpdateRegistrar(ctx context.Context, req UpdateRegistrarRequest) (*state.Registrar, error) {
	log := s.log.With("op", "update_registrar", "realm", req.Realm, "mint", req.GoverningTokenMint)

	current, err := s.Registrar(ctx, req.Realm, req.GoverningTokenMint)
	if err != nil {
		logRejected(log, err)
		return nil, err
	}

	// The governance program is fixed at creation, so the checks below stay
	// valid for the unit that applies the update.
	program := current.GovernanceProgramID

	if err := s.checkRealmAuthority(ctx, program, req.Realm, req.GoverningTokenMint, req.Signer); err != nil {
		logRejected(log, err)
		return nil, err
	}

	if err := s.checkProposalDraft(ctx, program, req.Proposal); err != nil {
		logRejected(log, err)
		return nil, err
	}

	var updated *state.Registrar

	err = s.store.Update(func(tx *state.Txn) error {
		reg, err := tx.Registrar(req.Realm, req.GoverningTokenMint)
		if err != nil {
			return fmt.Errorf("load registrar:\n%w", err)
		}

		if req.Nonce <= reg.Nonce {
			return fmt.Errorf("%w: got %d, last %d", ErrStaleNonce, req.Nonce, reg.Nonce)
		}

		reg.Root = req.Root
		reg.URI = req.URI
		reg.Proposal = req.Proposal
		reg.Nonce = req.Nonce

		if err := tx.PutRegistrar(reg); err != nil {
			return fmt.Errorf("store registrar:\n%w", err)
		}

		updated = reg
		return nil
	})
	if err != nil {
		logRejected(log, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrarUpdated()
	}

	log.Info("registrar updated", "root", req.Root, "proposal", req.Proposal)

	return updated, nil
}

// CreateVoterWeightRecord stores an empty voter weight record for owner under
// an existing registrar. Anyone may create it.
func (s *Service) CreateVoterWeightRecord(ctx context.Context, realm, mint, owner state.Pubkey) (*state.VoterWeightRecord, error) {
	log := s.log.With("op", "create_voter_weight_record", "realm", realm, "mint", mint, "owner", owner)

	rec := &state.VoterWeightRecord{
		Realm:               realm,
		GoverningTokenMint:  mint,
		GoverningTokenOwner: owner,
	}

	err := s.store.Update(func(tx *state.Txn) error {
		if _, err := tx.Registrar(realm, mint); err != nil {
			return fmt.Errorf("load registrar:\n%w", err)
		}
		return tx.CreateVoterWeightRecord(rec)
	})
	if err != nil {
		logRejected(log, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementRecordCreated(kindVoterWeight)
	}

	log.Info("voter weight record created", "address", state.VoterWeightRecordAddress(realm, mint, owner))

	return rec, nil
}

// CreateMaxVoterWeightRecord stores an empty max voter weight record for an
// existing registrar.
func (s *Service) CreateMaxVoterWeightRecord(ctx context.Context, realm, mint state.Pubkey) (*state.MaxVoterWeightRecord, error) {
	log := s.log.With("op", "create_max_voter_weight_record", "realm", realm, "mint", mint)

	rec := &state.MaxVoterWeightRecord{
		Realm:              realm,
		GoverningTokenMint: mint,
	}

	err := s.store.Update(func(tx *state.Txn) error {
		if _, err := tx.Registrar(realm, mint); err != nil {
			return fmt.Errorf("load registrar:\n%w", err)
		}
		return tx.CreateMaxVoterWeightRecord(rec)
	})
	if err != nil {
		logRejected(log, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementRecordCreated(kindMaxVoterWeight)
	}

	log.Info("max voter weight record created", "address", state.MaxVoterWeightRecordAddress(realm, mint))

	return rec, nil
}

// Registrar returns the registrar for (realm, mint).
func (s *Service) Registrar(_ context.Context, realm, mint state.Pubkey) (*state.Registrar, error) {
	var reg *state.Registrar

	err := s.store.View(func(tx *state.Txn) error {
		var err error
		reg, err = tx.Registrar(realm, mint)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load registrar:\n%w", err)
	}

	return reg, nil
}

// VoterWeightRecord returns the voter weight record for (realm, mint, owner).
func (s *Service) VoterWeightRecord(_ context.Context, realm, mint, owner state.Pubkey) (*state.VoterWeightRecord, error) {
	var rec *state.VoterWeightRecord

	err := s.store.View(func(tx *state.Txn) error {
		var err error
		rec, err = tx.VoterWeightRecord(realm, mint, owner)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load voter weight record:\n%w", err)
	}

	return rec, nil
}

// MaxVoterWeightRecord returns the max voter weight record for (realm, mint).
func (s *Service) MaxVoterWeightRecord(_ context.Context, realm, mint state.Pubkey) (*state.MaxVoterWeightRecord, error) {
	var rec *state.MaxVoterWeightRecord

	err := s.store.View(func(tx *state.Txn) error {
		var err error
		rec, err = tx.MaxVoterWeightRecord(realm, mint)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load max voter weight record:\n%w", err)
	}

	return rec, nil
}

// checkRealmAuthority requires the realm to be owned by program, mint to be
// one of its governing mints, and signer to be its authority.
func (s *Service) checkRealmAuthority(ctx context.Context, program, realmID, mint, signer state.Pubkey) error {
	realm, err := s.realms.ResolveRealm(ctx, program, realmID, mint)
	switch {
	case errors.Is(err, governance.ErrNotOwned),
		errors.Is(err, governance.ErrMintNotAccepted),
		errors.Is(err, governance.ErrNotFound):
		return withDetail(ErrInvalidRealmForRegistrar, "%v", err)
	case err != nil:
		return fmt.Errorf("resolve realm:\n%w", err)
	}

	if realm.Authority == nil || *realm.Authority != signer {
		return ErrInvalidRealmAuthority
	}

	return nil
}

// checkProposalDraft requires the proposal, owned by program, to be in Draft.
func (s *Service) checkProposalDraft(ctx context.Context, program, proposal state.Pubkey) error {
	ps, err := s.proposals.ProposalState(ctx, program, proposal)
	switch {
	case errors.Is(err, governance.ErrNotOwned), errors.Is(err, governance.ErrNotFound):
		return withDetail(ErrInvalidProposalState, "%v", err)
	case err != nil:
		return fmt.Errorf("resolve proposal:\n%w", err)
	}

	if ps != governance.ProposalDraft {
		return withDetail(ErrInvalidProposalState, "proposal is %s", ps)
	}

	return nil
}

// logRejected logs a failed operation with its error name when it has one.
func logRejected(log *slog.Logger, err error) {
	var ve *Error
	if errors.As(err, &ve) {
		log.Warn("rejected", "code", ve.Code, "error", ve.Name)
		return
	}
	log.Warn("rejected", "error", err)
}

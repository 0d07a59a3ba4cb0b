package voter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"SnapVoter/internal/clock"
	"SnapVoter/internal/governance"
	"SnapVoter/internal/governance/mocks"
	"SnapVoter/internal/merkle"
	"SnapVoter/internal/merkle/merkletest"
	"SnapVoter/internal/metrics"
	"SnapVoter/internal/state"
	"SnapVoter/internal/storage"
)

func key(b byte) state.Pubkey {
	var p state.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

var (
	program      = key(0xA0)
	otherProgram = key(0xA1)
	realmID      = key(0x10)
	mint         = key(0x11)
	authority    = key(0x12)
	proposal     = key(0x20)
	nextProposal = key(0x21)
	otherRealm   = key(0x40)
	torAddr      = key(0x50)

	voterA = state.Pubkey(merkletest.Owner('A'))
	voterB = state.Pubkey(merkletest.Owner('B'))
	voterC = state.Pubkey(merkletest.Owner('C'))
	voterD = state.Pubkey(merkletest.Owner('D'))
)

// scenarioRows is the four-row snapshot used throughout.
func scenarioRows() []merkletest.Row {
	return []merkletest.Row{
		{Index: 0, Owner: voterA, Amount: 10},
		{Index: 1, Owner: voterB, Amount: 20},
		{Index: 2, Owner: voterC, Amount: 5},
		{Index: 3, Owner: voterD, Amount: 7},
	}
}

// newTestStore creates a record store on a temporary pebble database.
func newTestStore(t *testing.T) *state.Store {
	t.Helper()

	dir, err := os.MkdirTemp("", "voter_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := storage.New(dir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return state.NewStore(db)
}

// =============================================================================
// Voter Service Test Suite
// =============================================================================

type VoterServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	realms    *mocks.MockIdentityAuthority
	proposals *mocks.MockDecisionInstanceProvider
	members   *mocks.MockMembershipProvider
	store     *state.Store
	clock     *clock.Manual
	metrics   *metrics.Metrics
	service   *Service
	tree      *merkletest.Tree
}

func TestVoterServiceSuite(t *testing.T) {
	suite.Run(t, new(VoterServiceSuite))
}

func (s *VoterServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.realms = mocks.NewMockIdentityAuthority(s.ctrl)
	s.proposals = mocks.NewMockDecisionInstanceProvider(s.ctrl)
	s.members = mocks.NewMockMembershipProvider(s.ctrl)
	s.store = newTestStore(s.T())
	s.clock = clock.NewManual(100)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.tree = merkletest.Build(scenarioRows())

	var err error
	s.service, err = New(s.store, s.realms, s.proposals, s.members, s.clock,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func (s *VoterServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// realm returns the governance view of the registrar's realm.
func (s *VoterServiceSuite) realm() *governance.Realm {
	auth := authority
	return &governance.Realm{ID: realmID, Authority: &auth, CommunityMint: mint}
}

// seedRegistrar stores a registrar directly, bypassing authority checks.
func (s *VoterServiceSuite) seedRegistrar(realm state.Pubkey, m state.Pubkey, root state.Hash, prop state.Pubkey) {
	err := s.store.Update(func(tx *state.Txn) error {
		return tx.CreateRegistrar(&state.Registrar{
			GovernanceProgramID: program,
			Realm:               realm,
			GoverningTokenMint:  m,
			Root:                root,
			Proposal:            prop,
		})
	})
	s.Require().NoError(err)
}

// seedScenario publishes the scenario root bound to proposal and creates a
// voter weight record for every row.
func (s *VoterServiceSuite) seedScenario() {
	s.seedRegistrar(realmID, mint, state.Hash(s.tree.Root()), proposal)

	for _, row := range scenarioRows() {
		_, err := s.service.CreateVoterWeightRecord(context.Background(), realmID, mint, row.Owner)
		s.Require().NoError(err)
	}
}

// expectMember makes the token owner record resolve to owner in realm.
func (s *VoterServiceSuite) expectMember(owner, realm state.Pubkey) {
	s.members.EXPECT().
		TokenOwnerRecord(gomock.Any(), otherProgram, torAddr).
		Return(&governance.TokenOwnerRecord{
			Realm:               realm,
			GoverningTokenMint:  key(0x41),
			GoverningTokenOwner: owner,
		}, nil).
		AnyTimes()
}

// updateRequest builds a request for row i of the scenario with the given amount.
func (s *VoterServiceSuite) updateRequest(i int, amount uint64) UpdateVoterWeightRecordRequest {
	row := scenarioRows()[i]

	return UpdateVoterWeightRecordRequest{
		Realm:              realmID,
		GoverningTokenMint: mint,
		VoterWeightRecord: state.VoterWeightRecordKey{
			Realm:               realmID,
			GoverningTokenMint:  mint,
			GoverningTokenOwner: row.Owner,
		},
		TokenOwnerRecord:        torAddr,
		TokenOwnerRecordProgram: otherProgram,
		Proposal:                proposal,
		Amount:                  amount,
		VerificationData:        s.tree.Bundle(i, row.Index).Encode(),
	}
}

// storedRecord reads the voter weight record of owner.
func (s *VoterServiceSuite) storedRecord(owner state.Pubkey) *state.VoterWeightRecord {
	rec, err := s.service.VoterWeightRecord(context.Background(), realmID, mint, owner)
	s.Require().NoError(err)
	return rec
}

// requireUntouched checks that owner's record still has its created state.
func (s *VoterServiceSuite) requireUntouched(owner state.Pubkey) {
	rec := s.storedRecord(owner)
	s.Equal(uint64(0), rec.VoterWeight)
	s.Nil(rec.VoterWeightExpiry)
	s.Nil(rec.WeightActionTarget)
}

// =============================================================================
// Constructor
// =============================================================================

func (s *VoterServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil, s.realms, s.proposals, s.members, s.clock)
		s.ErrorContains(err, "state store is required")
	})

	s.Run("nil clock returns error", func() {
		_, err := New(s.store, s.realms, s.proposals, s.members, nil)
		s.ErrorContains(err, "clock is required")
	})

	s.Run("all collaborators returns service", func() {
		svc, err := New(s.store, s.realms, s.proposals, s.members, s.clock)
		s.NoError(err)
		s.NotNil(svc)
	})
}

// =============================================================================
// Registrar management
// =============================================================================

func (s *VoterServiceSuite) TestCreateRegistrar() {
	ctx := context.Background()
	req := CreateRegistrarRequest{
		GovernanceProgramID: program,
		Realm:               realmID,
		GoverningTokenMint:  mint,
		Signer:              authority,
	}

	s.Run("authority signer creates registrar with unset root", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)

		reg, err := s.service.CreateRegistrar(ctx, req)
		s.Require().NoError(err)
		s.False(reg.HasRoot())

		stored, err := s.service.Registrar(ctx, realmID, mint)
		s.Require().NoError(err)
		s.Equal(program, stored.GovernanceProgramID)
		s.Nil(stored.URI)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.RegistrarsCreated))
	})

	s.Run("second create for same pair fails", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)

		_, err := s.service.CreateRegistrar(ctx, req)
		s.ErrorIs(err, state.ErrAlreadyExists)
	})

	s.Run("other signer is rejected", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, key(0x13)).Return(s.realm(), nil)

		r := req
		r.GoverningTokenMint = key(0x13)
		r.Signer = key(0x66)

		_, err := s.service.CreateRegistrar(ctx, r)
		s.ErrorIs(err, ErrInvalidRealmAuthority)
	})

	s.Run("realm without authority is rejected", func() {
		noAuth := &governance.Realm{ID: realmID, CommunityMint: mint}
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, key(0x14), mint).Return(noAuth, nil)

		r := req
		r.Realm = key(0x14)

		_, err := s.service.CreateRegistrar(ctx, r)
		s.ErrorIs(err, ErrInvalidRealmAuthority)
	})

	s.Run("realm of another program is rejected", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), otherProgram, realmID, mint).Return(nil, governance.ErrNotOwned)

		r := req
		r.GovernanceProgramID = otherProgram

		_, err := s.service.CreateRegistrar(ctx, r)
		s.ErrorIs(err, ErrInvalidRealmForRegistrar)
	})

	s.Run("transport failure is not a domain error", func() {
		boom := errors.New("connection refused")
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, key(0x15), mint).Return(nil, boom)

		r := req
		r.Realm = key(0x15)

		_, err := s.service.CreateRegistrar(ctx, r)
		s.ErrorIs(err, boom)

		var ve *Error
		s.False(errors.As(err, &ve))
	})
}

func (s *VoterServiceSuite) TestUpdateRegistrar() {
	ctx := context.Background()
	s.seedRegistrar(realmID, mint, state.Hash{}, state.Pubkey{})

	uri := "ipfs://snapshot"
	root := state.Hash(s.tree.Root())
	req := UpdateRegistrarRequest{
		Realm:              realmID,
		GoverningTokenMint: mint,
		Signer:             authority,
		Root:               root,
		URI:                &uri,
		Proposal:           proposal,
		Nonce:              10,
	}

	s.Run("draft proposal binds root, uri and proposal", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)
		s.proposals.EXPECT().ProposalState(gomock.Any(), program, proposal).Return(governance.ProposalDraft, nil)

		_, err := s.service.UpdateRegistrar(ctx, req)
		s.Require().NoError(err)

		reg, err := s.service.Registrar(ctx, realmID, mint)
		s.Require().NoError(err)
		s.Equal(root, reg.Root)
		s.Equal(uri, *reg.URI)
		s.Equal(proposal, reg.Proposal)
		s.Equal(uint64(10), reg.Nonce)
	})

	s.Run("replayed or older nonce is rejected and nothing changes", func() {
		for _, nonce := range []uint64{10, 9} {
			s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)
			s.proposals.EXPECT().ProposalState(gomock.Any(), program, proposal).Return(governance.ProposalDraft, nil)

			r := req
			r.Root = state.Hash(key(0x78))
			r.Nonce = nonce

			_, err := s.service.UpdateRegistrar(ctx, r)
			s.ErrorIs(err, ErrStaleNonce)
		}

		reg, err := s.service.Registrar(ctx, realmID, mint)
		s.Require().NoError(err)
		s.Equal(root, reg.Root)
		s.Equal(uint64(10), reg.Nonce)
	})

	s.Run("proposal past draft is rejected and nothing changes", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)
		s.proposals.EXPECT().ProposalState(gomock.Any(), program, nextProposal).Return(governance.ProposalVoting, nil)

		r := req
		r.Proposal = nextProposal
		r.Root = state.Hash(key(0x77))

		_, err := s.service.UpdateRegistrar(ctx, r)
		s.ErrorIs(err, ErrInvalidProposalState)

		reg, err := s.service.Registrar(ctx, realmID, mint)
		s.Require().NoError(err)
		s.Equal(root, reg.Root)
		s.Equal(proposal, reg.Proposal)
	})

	s.Run("authority is checked before proposal state", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)

		r := req
		r.Signer = key(0x66)

		_, err := s.service.UpdateRegistrar(ctx, r)
		s.ErrorIs(err, ErrInvalidRealmAuthority)
	})

	s.Run("uri can be cleared", func() {
		s.realms.EXPECT().ResolveRealm(gomock.Any(), program, realmID, mint).Return(s.realm(), nil)
		s.proposals.EXPECT().ProposalState(gomock.Any(), program, proposal).Return(governance.ProposalDraft, nil)

		r := req
		r.URI = nil
		r.Nonce = 11

		_, err := s.service.UpdateRegistrar(ctx, r)
		s.Require().NoError(err)

		reg, err := s.service.Registrar(ctx, realmID, mint)
		s.Require().NoError(err)
		s.Nil(reg.URI)
	})

	s.Run("unknown registrar is not found", func() {
		r := req
		r.GoverningTokenMint = key(0x99)

		_, err := s.service.UpdateRegistrar(ctx, r)
		s.ErrorIs(err, state.ErrNotFound)
	})
}

func (s *VoterServiceSuite) TestCreateRecords() {
	ctx := context.Background()

	s.Run("records need a registrar", func() {
		_, err := s.service.CreateVoterWeightRecord(ctx, realmID, mint, voterA)
		s.ErrorIs(err, state.ErrNotFound)

		_, err = s.service.CreateMaxVoterWeightRecord(ctx, realmID, mint)
		s.ErrorIs(err, state.ErrNotFound)
	})

	s.seedRegistrar(realmID, mint, state.Hash{}, state.Pubkey{})

	s.Run("voter weight record starts empty", func() {
		rec, err := s.service.CreateVoterWeightRecord(ctx, realmID, mint, voterA)
		s.Require().NoError(err)
		s.Equal(uint64(0), rec.VoterWeight)
		s.Nil(rec.VoterWeightExpiry)
		s.Nil(rec.WeightAction)
		s.Nil(rec.WeightActionTarget)

		_, err = s.service.CreateVoterWeightRecord(ctx, realmID, mint, voterA)
		s.ErrorIs(err, state.ErrAlreadyExists)
	})

	s.Run("max voter weight record starts empty", func() {
		rec, err := s.service.CreateMaxVoterWeightRecord(ctx, realmID, mint)
		s.Require().NoError(err)
		s.Equal(uint64(0), rec.MaxVoterWeight)
		s.Nil(rec.MaxVoterWeightExpiry)

		_, err = s.service.CreateMaxVoterWeightRecord(ctx, realmID, mint)
		s.ErrorIs(err, state.ErrAlreadyExists)
	})
}

// =============================================================================
// Update protocol
// =============================================================================

func (s *VoterServiceSuite) TestUpdateAcceptsSnapshotRow() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	rec, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 20))
	s.Require().NoError(err)

	stored := s.storedRecord(voterB)
	s.Equal(rec, stored)
	s.Equal(uint64(20), stored.VoterWeight)
	s.Require().NotNil(stored.VoterWeightExpiry)
	s.Equal(uint64(100), *stored.VoterWeightExpiry)
	s.Nil(stored.WeightAction)
	s.Require().NotNil(stored.WeightActionTarget)
	s.Equal(proposal, *stored.WeightActionTarget)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.WeightUpdates.WithLabelValues(metrics.OutcomeAccepted, "")))
}

func (s *VoterServiceSuite) TestUpdateRejectsWrongAmount() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 21))
	s.ErrorIs(err, ErrProofVerificationFailed)

	s.requireUntouched(voterB)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ProofFailures))
}

func (s *VoterServiceSuite) TestUpdateEveryRow() {
	s.seedScenario()

	for i, row := range scenarioRows() {
		s.members.EXPECT().
			TokenOwnerRecord(gomock.Any(), otherProgram, torAddr).
			Return(&governance.TokenOwnerRecord{Realm: otherRealm, GoverningTokenOwner: row.Owner}, nil)

		rec, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(i, row.Amount))
		s.Require().NoError(err, "row %d", i)
		s.Equal(row.Amount, rec.VoterWeight)
	}
}

func (s *VoterServiceSuite) TestUpdateRejectsProofOfOtherRow() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	// Row 2's proof with row 1's index, owner and amount
	req := s.updateRequest(1, 20)
	req.VerificationData = s.tree.Bundle(2, 1).Encode()

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), req)
	s.ErrorIs(err, ErrProofVerificationFailed)
}

func (s *VoterServiceSuite) TestUpdateRejectsMalformedBundle() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	for name, data := range map[string][]byte{
		"empty":           nil,
		"short index":     {1, 0, 0},
		"partial sibling": append(s.tree.Bundle(1, 1).Encode(), 0xFF),
	} {
		s.Run(name, func() {
			req := s.updateRequest(1, 20)
			req.VerificationData = data

			_, err := s.service.UpdateVoterWeightRecord(context.Background(), req)
			s.ErrorIs(err, ErrProofVerificationFailed)
		})
	}

	s.requireUntouched(voterB)
}

func (s *VoterServiceSuite) TestUpdateWithoutRoot() {
	s.seedRegistrar(realmID, mint, state.Hash{}, proposal)
	_, err := s.service.CreateVoterWeightRecord(context.Background(), realmID, mint, voterB)
	s.Require().NoError(err)

	// The membership lookup fails too, but the missing root is reported first
	s.members.EXPECT().TokenOwnerRecord(gomock.Any(), otherProgram, torAddr).Return(nil, governance.ErrNotOwned)

	_, err = s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 20))
	s.ErrorIs(err, ErrMerkleRootMissing)
}

func (s *VoterServiceSuite) TestUpdateWithSupersededProposal() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	req := s.updateRequest(1, 20)
	req.Proposal = nextProposal

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), req)
	s.ErrorIs(err, ErrProposalMismatch)
	s.requireUntouched(voterB)
}

func (s *VoterServiceSuite) TestUpdateRecordOfOtherRegistrar() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	s.seedRegistrar(otherRealm, mint, state.Hash{}, state.Pubkey{})
	s.seedRegistrar(realmID, key(0x19), state.Hash{}, state.Pubkey{})

	ctx := context.Background()
	_, err := s.service.CreateVoterWeightRecord(ctx, otherRealm, mint, voterB)
	s.Require().NoError(err)
	_, err = s.service.CreateVoterWeightRecord(ctx, realmID, key(0x19), voterB)
	s.Require().NoError(err)

	s.Run("realm mismatch", func() {
		req := s.updateRequest(1, 20)
		req.VoterWeightRecord.Realm = otherRealm

		_, err := s.service.UpdateVoterWeightRecord(ctx, req)
		s.ErrorIs(err, ErrInvalidVoterWeightRecordRealm)
	})

	s.Run("mint mismatch", func() {
		req := s.updateRequest(1, 20)
		req.VoterWeightRecord.GoverningTokenMint = key(0x19)

		_, err := s.service.UpdateVoterWeightRecord(ctx, req)
		s.ErrorIs(err, ErrInvalidVoterWeightRecordMint)
	})
}

func (s *VoterServiceSuite) TestUpdateWithOtherOwnersMembership() {
	s.seedScenario()
	s.expectMember(voterC, otherRealm)

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 20))
	s.ErrorIs(err, ErrGoverningTokenOwnerMustMatch)
	s.requireUntouched(voterB)
}

func (s *VoterServiceSuite) TestUpdateWithOwnRealmMembership() {
	s.seedScenario()
	s.expectMember(voterB, realmID)

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 20))
	s.ErrorIs(err, ErrTokenOwnerRecordFromOwnRealmNotAllowed)
	s.requireUntouched(voterB)
}

func (s *VoterServiceSuite) TestUpdateWithUnownedMembership() {
	s.seedScenario()
	s.members.EXPECT().TokenOwnerRecord(gomock.Any(), otherProgram, torAddr).Return(nil, governance.ErrNotOwned)

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 20))
	s.ErrorIs(err, governance.ErrNotOwned)
	s.requireUntouched(voterB)
}

func (s *VoterServiceSuite) TestUpdateWithEmptyMembershipResult() {
	s.seedScenario()
	s.members.EXPECT().TokenOwnerRecord(gomock.Any(), otherProgram, torAddr).Return(nil, nil)

	_, err := s.service.UpdateVoterWeightRecord(context.Background(), s.updateRequest(1, 20))
	s.ErrorIs(err, governance.ErrNotFound)
	s.requireUntouched(voterB)
}

func (s *VoterServiceSuite) TestResubmissionOnlyRefreshesExpiry() {
	s.seedScenario()
	s.expectMember(voterB, otherRealm)

	ctx := context.Background()
	req := s.updateRequest(1, 20)

	first, err := s.service.UpdateVoterWeightRecord(ctx, req)
	s.Require().NoError(err)

	again, err := s.service.UpdateVoterWeightRecord(ctx, req)
	s.Require().NoError(err)
	s.Equal(first, again)

	s.clock.Advance(3)

	later, err := s.service.UpdateVoterWeightRecord(ctx, req)
	s.Require().NoError(err)
	s.Equal(uint64(20), later.VoterWeight)
	s.Equal(uint64(103), *later.VoterWeightExpiry)
	s.Equal(*first.WeightActionTarget, *later.WeightActionTarget)
}

func (s *VoterServiceSuite) TestErrorCodes() {
	for i, e := range Errors {
		s.Equal(uint32(6000+i), e.Code)

		got, ok := ErrorByCode(e.Code)
		s.True(ok)
		s.Same(e, got)
	}

	_, ok := ErrorByCode(6000 + uint32(len(Errors)))
	s.False(ok)

	detailed := withDetail(ErrProofVerificationFailed, "bad bundle")
	s.ErrorIs(detailed, ErrProofVerificationFailed)
	s.NotErrorIs(detailed, ErrMerkleRootMissing)
}

// =============================================================================
// End to end with the in-memory governance registry
// =============================================================================

func TestSnapshotFlowWithRegistry(t *testing.T) {
	ctx := context.Background()
	tree := merkletest.Build(scenarioRows())

	reg := governance.NewRegistry()
	auth := authority
	reg.PutRealm(program, governance.Realm{ID: realmID, Authority: &auth, CommunityMint: mint})
	reg.PutProposal(program, proposal, governance.ProposalDraft)
	reg.PutTokenOwnerRecord(otherProgram, torAddr, governance.TokenOwnerRecord{
		Realm:               otherRealm,
		GoverningTokenMint:  key(0x41),
		GoverningTokenOwner: voterB,
	})

	clk := clock.NewManual(7)
	svc, err := New(newTestStore(t), reg, reg, reg, clk, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = svc.CreateRegistrar(ctx, CreateRegistrarRequest{
		GovernanceProgramID: program,
		Realm:               realmID,
		GoverningTokenMint:  mint,
		Signer:              authority,
	})
	if err != nil {
		t.Fatalf("CreateRegistrar: %v", err)
	}

	if _, err := svc.CreateVoterWeightRecord(ctx, realmID, mint, voterB); err != nil {
		t.Fatalf("CreateVoterWeightRecord: %v", err)
	}

	update := UpdateVoterWeightRecordRequest{
		Realm:                   realmID,
		GoverningTokenMint:      mint,
		VoterWeightRecord:       state.VoterWeightRecordKey{Realm: realmID, GoverningTokenMint: mint, GoverningTokenOwner: voterB},
		TokenOwnerRecord:        torAddr,
		TokenOwnerRecordProgram: otherProgram,
		Proposal:                proposal,
		Amount:                  20,
		VerificationData:        tree.Bundle(1, 1).Encode(),
	}

	if _, err := svc.UpdateVoterWeightRecord(ctx, update); !errors.Is(err, ErrMerkleRootMissing) {
		t.Fatalf("update before root: err = %v, want MerkleRootMissing", err)
	}

	_, err = svc.UpdateRegistrar(ctx, UpdateRegistrarRequest{
		Realm:              realmID,
		GoverningTokenMint: mint,
		Signer:             authority,
		Root:               tree.Root(),
		Proposal:           proposal,
		Nonce:              1,
	})
	if err != nil {
		t.Fatalf("UpdateRegistrar: %v", err)
	}

	rec, err := svc.UpdateVoterWeightRecord(ctx, update)
	if err != nil {
		t.Fatalf("UpdateVoterWeightRecord: %v", err)
	}

	if rec.VoterWeight != 20 || *rec.VoterWeightExpiry != 7 || *rec.WeightActionTarget != proposal {
		t.Errorf("record = %+v", rec)
	}

	// Once voting opens the snapshot can no longer be replaced
	reg.PutProposal(program, proposal, governance.ProposalVoting)

	_, err = svc.UpdateRegistrar(ctx, UpdateRegistrarRequest{
		Realm:              realmID,
		GoverningTokenMint: mint,
		Signer:             authority,
		Root:               state.Hash(merkle.Keccak256([]byte("other snapshot"))),
		Proposal:           proposal,
		Nonce:              2,
	})
	if !errors.Is(err, ErrInvalidProposalState) {
		t.Fatalf("update during vote: err = %v, want InvalidProposalState", err)
	}

	// A membership record from another program is not accepted for this owner
	update.TokenOwnerRecordProgram = program
	if _, err := svc.UpdateVoterWeightRecord(ctx, update); !errors.Is(err, governance.ErrNotOwned) {
		t.Errorf("membership from other program: err = %v, want ErrNotOwned", err)
	}
}

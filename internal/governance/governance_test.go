package governance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SnapVoter/internal/state"
)

func key(b byte) state.Pubkey {
	var p state.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

var (
	program   = key(0xA0)
	other     = key(0xA1)
	realmID   = key(0x10)
	authority = key(0x11)
	community = key(0x12)
	council   = key(0x13)
	proposal  = key(0x20)
	torAddr   = key(0x30)
	voter     = key(0x31)
)

// newTestRegistry returns a registry with one realm, one draft proposal and
// one token owner record, all owned by program.
func newTestRegistry() *Registry {
	r := NewRegistry()

	auth := authority
	c := council
	r.PutRealm(program, Realm{ID: realmID, Authority: &auth, CommunityMint: community, CouncilMint: &c})
	r.PutProposal(program, proposal, ProposalDraft)
	r.PutTokenOwnerRecord(program, torAddr, TokenOwnerRecord{
		Realm:               realmID,
		GoverningTokenMint:  community,
		GoverningTokenOwner: voter,
	})

	return r
}

// newTestClient serves reg over the daemon protocol and returns a client for it.
func newTestClient(t *testing.T, reg *Registry) *Client {
	t.Helper()

	srv := httptest.NewServer(NewDaemonHandler(reg))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, WithQueryTimeout(2*time.Second))
}

func TestRegistryOwnership(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	realm, err := reg.ResolveRealm(ctx, program, realmID, council)
	require.NoError(t, err)
	require.Equal(t, authority, *realm.Authority)

	_, err = reg.ResolveRealm(ctx, other, realmID, community)
	require.ErrorIs(t, err, ErrNotOwned)

	_, err = reg.ResolveRealm(ctx, program, realmID, key(0x99))
	require.ErrorIs(t, err, ErrMintNotAccepted)

	_, err = reg.ResolveRealm(ctx, program, key(0x99), community)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.ProposalState(ctx, other, proposal)
	require.ErrorIs(t, err, ErrNotOwned)

	_, err = reg.TokenOwnerRecord(ctx, other, torAddr)
	require.ErrorIs(t, err, ErrNotOwned)
}

func TestRegistryReturnsCopies(t *testing.T) {
	reg := newTestRegistry()

	rec, err := reg.TokenOwnerRecord(context.Background(), program, torAddr)
	require.NoError(t, err)

	rec.GoverningTokenOwner = key(0xFF)

	again, err := reg.TokenOwnerRecord(context.Background(), program, torAddr)
	require.NoError(t, err)
	require.Equal(t, voter, again.GoverningTokenOwner)
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, newTestRegistry())

	require.NoError(t, c.Ping(ctx))

	realm, err := c.ResolveRealm(ctx, program, realmID, community)
	require.NoError(t, err)
	require.Equal(t, realmID, realm.ID)
	require.Equal(t, authority, *realm.Authority)
	require.Equal(t, council, *realm.CouncilMint)

	s, err := c.ProposalState(ctx, program, proposal)
	require.NoError(t, err)
	require.Equal(t, ProposalDraft, s)

	rec, err := c.TokenOwnerRecord(ctx, program, torAddr)
	require.NoError(t, err)
	require.Equal(t, voter, rec.GoverningTokenOwner)
	require.Equal(t, realmID, rec.Realm)
}

func TestClientErrorCodes(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, newTestRegistry())

	_, err := c.ResolveRealm(ctx, other, realmID, community)
	require.ErrorIs(t, err, ErrNotOwned)

	var ge *Error
	require.True(t, errors.As(err, &ge))
	require.Equal(t, CodeNotOwned, ge.Code)

	_, err = c.ResolveRealm(ctx, program, realmID, key(0x99))
	require.ErrorIs(t, err, ErrMintNotAccepted)

	_, err = c.ProposalState(ctx, program, key(0x99))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.TokenOwnerRecord(ctx, other, torAddr)
	require.ErrorIs(t, err, ErrNotOwned)
}

func TestClientRejectsLaxDaemon(t *testing.T) {
	// A daemon that answers a realm without checking the mint
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"community_mint":"` + community.String() + `"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.ResolveRealm(context.Background(), program, realmID, key(0x99))
	require.ErrorIs(t, err, ErrMintNotAccepted)
}

func TestClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.ProposalState(context.Background(), program, proposal)
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP error 502")
	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithQueryTimeout(50*time.Millisecond))

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestProposalStateNames(t *testing.T) {
	for s := ProposalDraft; s <= ProposalVetoed; s++ {
		got, err := ParseProposalState(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}

	_, err := ParseProposalState("Open")
	require.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	doc := `{
		"realms": [{"program": "` + program.String() + `", "id": "` + realmID.String() + `",
			"authority": "` + authority.String() + `", "community_mint": "` + community.String() + `"}],
		"proposals": [{"program": "` + program.String() + `", "id": "` + proposal.String() + `", "state": "Voting"}],
		"token_owner_records": []
	}`

	reg := NewRegistry()
	require.NoError(t, reg.LoadSeed(strings.NewReader(doc)))

	s, err := reg.ProposalState(context.Background(), program, proposal)
	require.NoError(t, err)
	require.Equal(t, ProposalVoting, s)

	_, err = reg.ResolveRealm(context.Background(), program, realmID, council)
	require.ErrorIs(t, err, ErrMintNotAccepted)

	bad := `{"proposals": [{"program": "` + program.String() + `", "id": "` + proposal.String() + `", "state": "Open"}]}`
	require.Error(t, NewRegistry().LoadSeed(strings.NewReader(bad)))
}

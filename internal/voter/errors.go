package voter

import "fmt"

// Error is a rejected operation. Codes are stable and start at 6000.
type Error struct {
	Code uint32 // Code is the stable numeric code
	Name string // Name is the stable symbolic name
	Msg  string // Msg is a human-readable description
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

// Is matches errors by code so wrapped copies compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// errorCodeBase is the first error code.
const errorCodeBase = 6000

var (
	ErrInvalidRealmAuthority                  = newError(0, "InvalidRealmAuthority", "invalid realm authority")
	ErrInvalidRealmForRegistrar               = newError(1, "InvalidRealmForRegistrar", "invalid realm for registrar")
	ErrInvalidVoterWeightRecordRealm          = newError(2, "InvalidVoterWeightRecordRealm", "invalid voter weight record realm")
	ErrInvalidVoterWeightRecordMint           = newError(3, "InvalidVoterWeightRecordMint", "invalid voter weight record mint")
	ErrTokenOwnerRecordFromOwnRealmNotAllowed = newError(4, "TokenOwnerRecordFromOwnRealmNotAllowed", "token owner record from own realm is not allowed")

	// ErrGovernanceProgramNotConfigured is reserved: membership records are
	// accepted from any governance program.
	ErrGovernanceProgramNotConfigured = newError(5, "GovernanceProgramNotConfigured", "governance program not configured")

	ErrGoverningTokenOwnerMustMatch = newError(6, "GoverningTokenOwnerMustMatch", "governing token owner must match")
	ErrInvalidProposalState         = newError(7, "InvalidProposalState", "invalid proposal state")
	ErrMerkleRootMissing            = newError(8, "MerkleRootMissing", "merkle root missing")
	ErrProposalMismatch             = newError(9, "ProposalMismatch", "proposal mismatch, update the registrar")
	ErrProofVerificationFailed      = newError(10, "ProofVerificationFailed", "proof verification failed")
)

// Errors lists every error in code order.
var Errors = []*Error{
	ErrInvalidRealmAuthority,
	ErrInvalidRealmForRegistrar,
	ErrInvalidVoterWeightRecordRealm,
	ErrInvalidVoterWeightRecordMint,
	ErrTokenOwnerRecordFromOwnRealmNotAllowed,
	ErrGovernanceProgramNotConfigured,
	ErrGoverningTokenOwnerMustMatch,
	ErrInvalidProposalState,
	ErrMerkleRootMissing,
	ErrProposalMismatch,
	ErrProofVerificationFailed,
}

func newError(offset uint32, name, msg string) *Error {
	return &Error{Code: errorCodeBase + offset, Name: name, Msg: msg}
}

// withDetail returns a copy of e carrying extra context. The copy still
// matches e with errors.Is.
func withDetail(e *Error, format string, args ...any) *Error {
	return &Error{Code: e.Code, Name: e.Name, Msg: e.Msg + ": " + fmt.Sprintf(format, args...)}
}

// ErrorByCode returns the error with the given code.
func ErrorByCode(code uint32) (*Error, bool) {
	if code < errorCodeBase || code >= errorCodeBase+uint32(len(Errors)) {
		return nil, false
	}
	return Errors[code-errorCodeBase], true
}

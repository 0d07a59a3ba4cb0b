package state

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"SnapVoter/internal/types"
)

// ErrCorruptRecord is returned when stored bytes do not decode to a valid record.
var ErrCorruptRecord = errors.New("corrupt record")

// encodeRegistrar serializes a registrar. The buffer is sized from the uri,
// so a longer or shorter uri simply produces a larger or smaller record.
func encodeRegistrar(r *Registrar) []byte {
	uriLen := 0
	if r.URI != nil {
		uriLen = len(*r.URI)
	}

	builder := flatbuffers.NewBuilder(256 + uriLen)

	programVec := builder.CreateByteVector(r.GovernanceProgramID[:])
	realmVec := builder.CreateByteVector(r.Realm[:])
	mintVec := builder.CreateByteVector(r.GoverningTokenMint[:])
	rootVec := builder.CreateByteVector(r.Root[:])
	proposalVec := builder.CreateByteVector(r.Proposal[:])

	var uriOff flatbuffers.UOffsetT
	if r.URI != nil {
		uriOff = builder.CreateString(*r.URI)
	}

	types.RegistrarStart(builder)
	types.RegistrarAddGovernanceProgramId(builder, programVec)
	types.RegistrarAddRealm(builder, realmVec)
	types.RegistrarAddGoverningTokenMint(builder, mintVec)
	types.RegistrarAddRoot(builder, rootVec)
	if r.URI != nil {
		types.RegistrarAddUri(builder, uriOff)
		types.RegistrarAddHasUri(builder, true)
	}
	types.RegistrarAddProposal(builder, proposalVec)
	types.RegistrarAddNonce(builder, r.Nonce)
	types.FinishRegistrarBuffer(builder, types.RegistrarEnd(builder))

	return builder.FinishedBytes()
}

// decodeRegistrar parses a registrar.
func decodeRegistrar(data []byte) (r *Registrar, err error) {
	defer recoverCorrupt(&err)

	fb := types.GetRootAsRegistrar(data, 0)
	r = &Registrar{}

	if err := copy32("governance_program_id", fb.GovernanceProgramIdBytes(), (*[32]byte)(&r.GovernanceProgramID)); err != nil {
		return nil, err
	}
	if err := copy32("realm", fb.RealmBytes(), (*[32]byte)(&r.Realm)); err != nil {
		return nil, err
	}
	if err := copy32("governing_token_mint", fb.GoverningTokenMintBytes(), (*[32]byte)(&r.GoverningTokenMint)); err != nil {
		return nil, err
	}
	if err := copy32("root", fb.RootBytes(), (*[32]byte)(&r.Root)); err != nil {
		return nil, err
	}
	if err := copy32("proposal", fb.ProposalBytes(), (*[32]byte)(&r.Proposal)); err != nil {
		return nil, err
	}

	if fb.HasUri() {
		uri := string(fb.Uri())
		r.URI = &uri
	}

	r.Nonce = fb.Nonce()

	return r, nil
}

// encodeVoterWeightRecord serializes a voter weight record.
func encodeVoterWeightRecord(r *VoterWeightRecord) []byte {
	builder := flatbuffers.NewBuilder(256)

	realmVec := builder.CreateByteVector(r.Realm[:])
	mintVec := builder.CreateByteVector(r.GoverningTokenMint[:])
	ownerVec := builder.CreateByteVector(r.GoverningTokenOwner[:])

	var targetVec flatbuffers.UOffsetT
	if r.WeightActionTarget != nil {
		targetVec = builder.CreateByteVector(r.WeightActionTarget[:])
	}

	types.VoterWeightRecordStart(builder)
	types.VoterWeightRecordAddRealm(builder, realmVec)
	types.VoterWeightRecordAddGoverningTokenMint(builder, mintVec)
	types.VoterWeightRecordAddGoverningTokenOwner(builder, ownerVec)
	types.VoterWeightRecordAddVoterWeight(builder, r.VoterWeight)
	if r.VoterWeightExpiry != nil {
		types.VoterWeightRecordAddVoterWeightExpiry(builder, *r.VoterWeightExpiry)
		types.VoterWeightRecordAddHasExpiry(builder, true)
	}
	if r.WeightAction != nil {
		types.VoterWeightRecordAddWeightAction(builder, types.VoterWeightAction(*r.WeightAction))
	}
	if r.WeightActionTarget != nil {
		types.VoterWeightRecordAddWeightActionTarget(builder, targetVec)
	}
	types.FinishVoterWeightRecordBuffer(builder, types.VoterWeightRecordEnd(builder))

	return builder.FinishedBytes()
}

// decodeVoterWeightRecord parses a voter weight record.
func decodeVoterWeightRecord(data []byte) (r *VoterWeightRecord, err error) {
	defer recoverCorrupt(&err)

	fb := types.GetRootAsVoterWeightRecord(data, 0)
	r = &VoterWeightRecord{VoterWeight: fb.VoterWeight()}

	if err := copy32("realm", fb.RealmBytes(), (*[32]byte)(&r.Realm)); err != nil {
		return nil, err
	}
	if err := copy32("governing_token_mint", fb.GoverningTokenMintBytes(), (*[32]byte)(&r.GoverningTokenMint)); err != nil {
		return nil, err
	}
	if err := copy32("governing_token_owner", fb.GoverningTokenOwnerBytes(), (*[32]byte)(&r.GoverningTokenOwner)); err != nil {
		return nil, err
	}

	if fb.HasExpiry() {
		expiry := fb.VoterWeightExpiry()
		r.VoterWeightExpiry = &expiry
	}

	if a := fb.WeightAction(); a != types.VoterWeightActionUnset {
		if _, ok := types.EnumNamesVoterWeightAction[a]; !ok {
			return nil, fmt.Errorf("%w: unknown weight action %d", ErrCorruptRecord, a)
		}
		action := VoterWeightAction(a)
		r.WeightAction = &action
	}

	if target := fb.WeightActionTargetBytes(); target != nil {
		var t Pubkey
		if err := copy32("weight_action_target", target, (*[32]byte)(&t)); err != nil {
			return nil, err
		}
		r.WeightActionTarget = &t
	}

	return r, nil
}

// encodeMaxVoterWeightRecord serializes a max voter weight record.
func encodeMaxVoterWeightRecord(r *MaxVoterWeightRecord) []byte {
	builder := flatbuffers.NewBuilder(128)

	realmVec := builder.CreateByteVector(r.Realm[:])
	mintVec := builder.CreateByteVector(r.GoverningTokenMint[:])

	types.MaxVoterWeightRecordStart(builder)
	types.MaxVoterWeightRecordAddRealm(builder, realmVec)
	types.MaxVoterWeightRecordAddGoverningTokenMint(builder, mintVec)
	types.MaxVoterWeightRecordAddMaxVoterWeight(builder, r.MaxVoterWeight)
	if r.MaxVoterWeightExpiry != nil {
		types.MaxVoterWeightRecordAddMaxVoterWeightExpiry(builder, *r.MaxVoterWeightExpiry)
		types.MaxVoterWeightRecordAddHasExpiry(builder, true)
	}
	types.FinishMaxVoterWeightRecordBuffer(builder, types.MaxVoterWeightRecordEnd(builder))

	return builder.FinishedBytes()
}

// decodeMaxVoterWeightRecord parses a max voter weight record.
func decodeMaxVoterWeightRecord(data []byte) (r *MaxVoterWeightRecord, err error) {
	defer recoverCorrupt(&err)

	fb := types.GetRootAsMaxVoterWeightRecord(data, 0)
	r = &MaxVoterWeightRecord{MaxVoterWeight: fb.MaxVoterWeight()}

	if err := copy32("realm", fb.RealmBytes(), (*[32]byte)(&r.Realm)); err != nil {
		return nil, err
	}
	if err := copy32("governing_token_mint", fb.GoverningTokenMintBytes(), (*[32]byte)(&r.GoverningTokenMint)); err != nil {
		return nil, err
	}

	if fb.HasExpiry() {
		expiry := fb.MaxVoterWeightExpiry()
		r.MaxVoterWeightExpiry = &expiry
	}

	return r, nil
}

// copy32 copies a 32-byte field, rejecting any other length.
func copy32(field string, src []byte, dst *[32]byte) error {
	if len(src) != 32 {
		return fmt.Errorf("%w: %s has %d bytes", ErrCorruptRecord, field, len(src))
	}

	copy(dst[:], src)

	return nil
}

// recoverCorrupt turns a FlatBuffers out-of-range panic on truncated input
// into ErrCorruptRecord.
func recoverCorrupt(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrCorruptRecord, r)
	}
}

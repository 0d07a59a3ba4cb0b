package state

import (
	"bytes"
	"fmt"

	"github.com/zeebo/blake3"
)

// Pebble key prefixes for each record kind.
var (
	registrarKeyPrefix = []byte("reg:")
	voterWeightPrefix  = []byte("vwr:")
	maxVoterWeightPfx  = []byte("mvwr:")
)

// Address seeds, mirroring the seeds governance programs use to locate records.
var (
	registrarSeed      = []byte("registrar")
	voterWeightSeed    = []byte("voter-weight-record")
	maxVoterWeightSeed = []byte("max-voter-weight-record")
)

// registrarKey builds the key for a registrar: "reg:" + realm + mint.
func registrarKey(realm, mint Pubkey) []byte {
	return compositeKey(registrarKeyPrefix, realm, mint)
}

// voterWeightKey builds the key for a voter weight record: "vwr:" + realm + mint + owner.
func voterWeightKey(realm, mint, owner Pubkey) []byte {
	return compositeKey(voterWeightPrefix, realm, mint, owner)
}

// maxVoterWeightKey builds the key for a max voter weight record: "mvwr:" + realm + mint.
func maxVoterWeightKey(realm, mint Pubkey) []byte {
	return compositeKey(maxVoterWeightPfx, realm, mint)
}

// compositeKey concatenates a prefix and fixed-width parts.
func compositeKey(prefix []byte, parts ...Pubkey) []byte {
	key := make([]byte, 0, len(prefix)+32*len(parts))
	key = append(key, prefix...)

	for _, p := range parts {
		key = append(key, p[:]...)
	}

	return key
}

// RegistrarAddress derives the public address of a registrar.
func RegistrarAddress(realm, mint Pubkey) Pubkey {
	return deriveAddress(registrarSeed, realm, mint)
}

// VoterWeightRecordAddress derives the public address of a voter weight record.
func VoterWeightRecordAddress(realm, mint, owner Pubkey) Pubkey {
	return deriveAddress(voterWeightSeed, realm, mint, owner)
}

// MaxVoterWeightRecordAddress derives the public address of a max voter weight record.
func MaxVoterWeightRecordAddress(realm, mint Pubkey) Pubkey {
	return deriveAddress(maxVoterWeightSeed, realm, mint)
}

// deriveAddress hashes the seed and parts with blake3.
func deriveAddress(seed []byte, parts ...Pubkey) Pubkey {
	hasher := blake3.New()
	hasher.Write(seed)

	for _, p := range parts {
		hasher.Write(p[:])
	}

	var addr Pubkey
	hasher.Sum(addr[:0])

	return addr
}

// DescribeKey renders a record key as its kind and hex parts.
func DescribeKey(key []byte) string {
	for _, k := range []struct {
		prefix []byte
		kind   string
		parts  []string
	}{
		{registrarKeyPrefix, "registrar", []string{"realm", "mint"}},
		{voterWeightPrefix, "voter_weight_record", []string{"realm", "mint", "owner"}},
		{maxVoterWeightPfx, "max_voter_weight_record", []string{"realm", "mint"}},
	} {
		rest, ok := bytes.CutPrefix(key, k.prefix)
		if !ok || len(rest) != 32*len(k.parts) {
			continue
		}

		out := k.kind
		for i, name := range k.parts {
			out += fmt.Sprintf(" %s=%x", name, rest[i*32:(i+1)*32])
		}

		return out
	}

	if bytes.Equal(key, clockParamsKey) {
		return "clock_params"
	}

	return fmt.Sprintf("unknown %x", key)
}

// Package merkle verifies inclusion proofs against a snapshot root.
//
// Trees use sorted-pair hashing: each parent is keccak256(min(a,b) || max(a,b)),
// so proofs carry no direction bits. The off-chain tree builder must use the
// same convention.
package merkle

import (
	"bytes"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/sha3"
)

const (
	// HashSize is the size of every node, leaf and root.
	HashSize = 32

	// leafPreimageSize is index (8) + owner (32) + amount (8).
	leafPreimageSize = 8 + HashSize + 8
)

// ErrProofMismatch is returned when a proof does not fold to the expected root.
var ErrProofMismatch = errors.New("merkle proof does not match root")

// Keccak256 hashes the concatenation of data with legacy Keccak-256.
func Keccak256(data ...[]byte) [HashSize]byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}

	var out [HashSize]byte
	d.Sum(out[:0])

	return out
}

// HashPair hashes two nodes with the smaller one on the left.
func HashPair(a, b [HashSize]byte) [HashSize]byte {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return Keccak256(a[:], b[:])
	}

	return Keccak256(b[:], a[:])
}

// LeafHash computes the leaf for a snapshot row:
// keccak256(index LE8 || owner || amount LE8).
func LeafHash(index uint64, owner [HashSize]byte, amount uint64) [HashSize]byte {
	var buf [leafPreimageSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], index)
	copy(buf[8:8+HashSize], owner[:])
	binary.LittleEndian.PutUint64(buf[8+HashSize:], amount)

	return Keccak256(buf[:])
}

// Fold walks proof from leaf and returns the recomputed root.
func Fold(proof [][HashSize]byte, leaf [HashSize]byte) [HashSize]byte {
	current := leaf
	for _, sibling := range proof {
		current = HashPair(current, sibling)
	}

	return current
}

// VerifyProof reports whether proof folds leaf to root.
func VerifyProof(proof [][HashSize]byte, root, leaf [HashSize]byte) bool {
	return Fold(proof, leaf) == root
}

// Verify is VerifyProof returning ErrProofMismatch on failure.
func Verify(proof [][HashSize]byte, root, leaf [HashSize]byte) error {
	if !VerifyProof(proof, root, leaf) {
		return ErrProofMismatch
	}

	return nil
}

// Package merkletest builds sorted-pair snapshot trees for tests.
package merkletest

import (
	"SnapVoter/internal/merkle"
)

// Row is one snapshot row.
type Row struct {
	Index  uint64
	Owner  [32]byte
	Amount uint64
}

// Tree is a sorted-pair Keccak tree over snapshot rows.
// An unpaired node at the end of a level is promoted unchanged.
type Tree struct {
	levels [][][32]byte // levels[0] are the leaves, the last level is the root
}

// Build hashes rows into leaves and builds every level up to the root.
func Build(rows []Row) *Tree {
	leaves := make([][32]byte, len(rows))
	for i, r := range rows {
		leaves[i] = merkle.LeafHash(r.Index, r.Owner, r.Amount)
	}

	return BuildFromLeaves(leaves)
}

// BuildFromLeaves builds a tree over precomputed leaves.
func BuildFromLeaves(leaves [][32]byte) *Tree {
	t := &Tree{levels: [][][32]byte{leaves}}

	level := leaves
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)

		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, merkle.HashPair(level[i], level[i+1]))
		}

		t.levels = append(t.levels, next)
		level = next
	}

	return t
}

// Root returns the tree root. An empty tree has a zero root.
func (t *Tree) Root() [32]byte {
	top := t.levels[len(t.levels)-1]
	if len(top) == 0 {
		return [32]byte{}
	}

	return top[0]
}

// Proof returns the sibling path for the leaf at position i.
func (t *Tree) Proof(i int) [][32]byte {
	var proof [][32]byte

	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := i ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		i /= 2
	}

	return proof
}

// Bundle returns the wire-ready proof bundle for the row at position i.
func (t *Tree) Bundle(i int, index uint64) merkle.Bundle {
	return merkle.Bundle{Index: index, Siblings: t.Proof(i)}
}

// Owner returns a deterministic 32-byte identity for tests.
func Owner(tag byte) [32]byte {
	var o [32]byte
	for i := range o {
		o[i] = tag
	}

	return o
}

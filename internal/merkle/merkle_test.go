package merkle_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"SnapVoter/internal/merkle"
	"SnapVoter/internal/merkle/merkletest"
)

// scenarioRows is the four-row snapshot used across tests.
func scenarioRows() []merkletest.Row {
	return []merkletest.Row{
		{Index: 0, Owner: merkletest.Owner('A'), Amount: 10},
		{Index: 1, Owner: merkletest.Owner('B'), Amount: 20},
		{Index: 2, Owner: merkletest.Owner('C'), Amount: 5},
		{Index: 3, Owner: merkletest.Owner('D'), Amount: 7},
	}
}

func TestKeccak256KnownVector(t *testing.T) {
	got := merkle.Keccak256(nil)
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"

	if hex.EncodeToString(got[:]) != want {
		t.Errorf("keccak256(\"\") = %x, want %s", got, want)
	}
}

func TestLeafHashPreimage(t *testing.T) {
	owner := merkletest.Owner(0x11)

	preimage := make([]byte, 0, 48)
	preimage = append(preimage, 7, 0, 0, 0, 0, 0, 0, 0)
	preimage = append(preimage, owner[:]...)
	preimage = append(preimage, 0x2c, 0x01, 0, 0, 0, 0, 0, 0) // 300 LE

	want := merkle.Keccak256(preimage)
	got := merkle.LeafHash(7, owner, 300)

	if got != want {
		t.Errorf("LeafHash = %x, want %x", got, want)
	}
}

func TestHashPairIsOrderIndependent(t *testing.T) {
	a := merkletest.Owner(0x01)
	b := merkletest.Owner(0x02)

	if merkle.HashPair(a, b) != merkle.HashPair(b, a) {
		t.Error("HashPair depends on argument order")
	}

	want := merkle.Keccak256(a[:], b[:])
	if merkle.HashPair(b, a) != want {
		t.Error("HashPair does not put the smaller node first")
	}
}

func TestVerifyProofAllLeaves(t *testing.T) {
	for n := 1; n <= 9; n++ {
		rows := make([]merkletest.Row, n)
		for i := range rows {
			rows[i] = merkletest.Row{Index: uint64(i), Owner: merkletest.Owner(byte(i + 1)), Amount: uint64(100 + i)}
		}

		tree := merkletest.Build(rows)
		root := tree.Root()

		for i, r := range rows {
			leaf := merkle.LeafHash(r.Index, r.Owner, r.Amount)
			if !merkle.VerifyProof(tree.Proof(i), root, leaf) {
				t.Errorf("n=%d leaf %d: valid proof rejected", n, i)
			}
		}
	}
}

func TestVerifyProofRejectsBitFlips(t *testing.T) {
	rows := scenarioRows()
	tree := merkletest.Build(rows)
	root := tree.Root()
	row := rows[1]
	proof := tree.Proof(1)

	if !merkle.VerifyProof(proof, root, merkle.LeafHash(row.Index, row.Owner, row.Amount)) {
		t.Fatal("baseline proof rejected")
	}

	for bit := 0; bit < 64; bit++ {
		if merkle.VerifyProof(proof, root, merkle.LeafHash(row.Index, row.Owner, row.Amount^(1<<bit))) {
			t.Errorf("amount bit %d flip accepted", bit)
		}

		if merkle.VerifyProof(proof, root, merkle.LeafHash(row.Index^(1<<bit), row.Owner, row.Amount)) {
			t.Errorf("index bit %d flip accepted", bit)
		}
	}

	for bit := 0; bit < 256; bit++ {
		owner := row.Owner
		owner[bit/8] ^= 1 << (bit % 8)

		if merkle.VerifyProof(proof, root, merkle.LeafHash(row.Index, owner, row.Amount)) {
			t.Errorf("owner bit %d flip accepted", bit)
		}
	}

	leaf := merkle.LeafHash(row.Index, row.Owner, row.Amount)
	for s := range proof {
		for bit := 0; bit < 256; bit++ {
			tampered := make([][32]byte, len(proof))
			copy(tampered, proof)
			tampered[s][bit/8] ^= 1 << (bit % 8)

			if merkle.VerifyProof(tampered, root, leaf) {
				t.Errorf("sibling %d bit %d flip accepted", s, bit)
			}
		}
	}
}

func TestVerifyReturnsMismatch(t *testing.T) {
	tree := merkletest.Build(scenarioRows())
	leaf := merkle.LeafHash(1, merkletest.Owner('B'), 21)

	err := merkle.Verify(tree.Proof(1), tree.Root(), leaf)
	if !errors.Is(err, merkle.ErrProofMismatch) {
		t.Errorf("Verify error = %v, want ErrProofMismatch", err)
	}
}

func TestSingleLeafTree(t *testing.T) {
	rows := []merkletest.Row{{Index: 0, Owner: merkletest.Owner('Z'), Amount: 1}}
	tree := merkletest.Build(rows)

	leaf := merkle.LeafHash(0, merkletest.Owner('Z'), 1)
	if tree.Root() != leaf {
		t.Fatal("single-leaf root must be the leaf")
	}

	if !merkle.VerifyProof(nil, tree.Root(), leaf) {
		t.Error("empty proof rejected for single-leaf tree")
	}
}

func TestBundleRoundTrip(t *testing.T) {
	tree := merkletest.Build(scenarioRows())
	bundle := tree.Bundle(2, 2)

	data := bundle.Encode()
	if len(data) != 8+32*len(bundle.Siblings) {
		t.Fatalf("encoded length = %d", len(data))
	}

	if !bytes.Equal(data[:8], []byte{2, 0, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("index prefix = %x, want little-endian 2", data[:8])
	}

	decoded, err := merkle.DecodeBundle(data)
	if err != nil {
		t.Fatalf("DecodeBundle: %v", err)
	}

	if decoded.Index != 2 || len(decoded.Siblings) != len(bundle.Siblings) {
		t.Fatalf("decoded = %+v", decoded)
	}

	for i := range bundle.Siblings {
		if decoded.Siblings[i] != bundle.Siblings[i] {
			t.Errorf("sibling %d differs", i)
		}
	}
}

func TestDecodeBundleMalformed(t *testing.T) {
	if _, err := merkle.DecodeBundle([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for short bundle")
	}

	if _, err := merkle.DecodeBundle(make([]byte, 8+31)); err == nil {
		t.Error("expected error for partial sibling")
	}

	b, err := merkle.DecodeBundle(make([]byte, 8))
	if err != nil {
		t.Fatalf("index-only bundle: %v", err)
	}

	if len(b.Siblings) != 0 {
		t.Errorf("index-only bundle has %d siblings", len(b.Siblings))
	}
}

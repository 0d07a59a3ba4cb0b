// Package statesync exports and imports every stored record as one compressed,
// checksummed snapshot.
package statesync

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"SnapVoter/internal/state"
	"SnapVoter/internal/storage"
	"SnapVoter/internal/types"
)

const (
	// snapshotVersion is the current snapshot format version.
	snapshotVersion = 1

	// maxSnapshotSize caps the decompressed size of an imported snapshot.
	maxSnapshotSize = 1 << 30 // 1 GiB
)

var (
	// ErrChecksumMismatch is returned when snapshot content does not match its checksum.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// Export builds a compressed snapshot of every record in the store.
func Export(store *state.Store) ([]byte, error) {
	entries, err := store.Entries()
	if err != nil {
		return nil, fmt.Errorf("collect entries:\n%w", err)
	}

	data := buildSnapshot(entries)

	compressed, err := compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress:\n%w", err)
	}

	return compressed, nil
}

// Import verifies a compressed snapshot and writes all of its records to the
// store in one batch. Returns the number of records written.
//
// Import merges: records already in the store that the snapshot does not
// contain are kept, and records with the same key are overwritten. A snapshot
// whose clock parameters differ from the store's is rejected.
func Import(store *state.Store, data []byte) (int, error) {
	raw, err := decompress(data, maxSnapshotSize)
	if err != nil {
		return 0, fmt.Errorf("decompress:\n%w", err)
	}

	entries, err := readSnapshot(raw)
	if err != nil {
		return 0, err
	}

	if err := store.Restore(entries); err != nil {
		return 0, fmt.Errorf("restore:\n%w", err)
	}

	return len(entries), nil
}

// buildSnapshot creates the FlatBuffers snapshot with checksum.
func buildSnapshot(entries []storage.KeyValue) []byte {
	// Sort entries by key for a deterministic checksum
	sortEntries(entries)

	checksum := computeChecksum(snapshotVersion, entries)

	size := 256
	for _, e := range entries {
		size += len(e.Key) + len(e.Value) + 16
	}

	builder := flatbuffers.NewBuilder(size)

	offsets := make([]flatbuffers.UOffsetT, len(entries))
	for i, e := range entries {
		keyOffset := builder.CreateByteVector(e.Key)
		valueOffset := builder.CreateByteVector(e.Value)

		types.StateEntryStart(builder)
		types.StateEntryAddKey(builder, keyOffset)
		types.StateEntryAddValue(builder, valueOffset)
		offsets[i] = types.StateEntryEnd(builder)
	}

	types.StateSnapshotStartEntriesVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	entriesVector := builder.EndVector(len(offsets))

	checksumOffset := builder.CreateByteVector(checksum[:])

	types.StateSnapshotStart(builder)
	types.StateSnapshotAddVersion(builder, snapshotVersion)
	types.StateSnapshotAddChecksum(builder, checksumOffset)
	types.StateSnapshotAddEntries(builder, entriesVector)
	types.FinishStateSnapshotBuffer(builder, types.StateSnapshotEnd(builder))

	return builder.FinishedBytes()
}

// readSnapshot parses a snapshot and verifies its version and checksum.
func readSnapshot(data []byte) (entries []storage.KeyValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("malformed snapshot: %v", r)
		}
	}()

	snapshot := types.GetRootAsStateSnapshot(data, 0)

	if v := snapshot.Version(); v != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	stored := snapshot.ChecksumBytes()
	if len(stored) != 32 {
		return nil, fmt.Errorf("invalid checksum length: %d", len(stored))
	}

	entries = make([]storage.KeyValue, snapshot.EntriesLength())
	var e types.StateEntry

	for i := range entries {
		if !snapshot.Entries(&e, i) {
			return nil, fmt.Errorf("read entry %d", i)
		}

		// Copy bytes out of the FlatBuffers buffer
		entries[i] = storage.KeyValue{
			Key:   bytes.Clone(e.KeyBytes()),
			Value: bytes.Clone(e.ValueBytes()),
		}
	}

	sortEntries(entries)
	computed := computeChecksum(snapshot.Version(), entries)

	if !bytes.Equal(computed[:], stored) {
		return nil, ErrChecksumMismatch
	}

	return entries, nil
}

// sortEntries sorts entries by key.
func sortEntries(entries []storage.KeyValue) {
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].Key, entries[j].Key) < 0
	})
}

// computeChecksum computes a blake3 checksum over canonical snapshot data.
// Format: version (4 bytes) + for each entry: key len (4) + key + value len (4) + value
func computeChecksum(version uint32, entries []storage.KeyValue) [32]byte {
	hasher := blake3.New()

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], version)
	hasher.Write(buf[:])

	for _, e := range entries {
		binary.BigEndian.PutUint32(buf[:], uint32(len(e.Key)))
		hasher.Write(buf[:])
		hasher.Write(e.Key)

		binary.BigEndian.PutUint32(buf[:], uint32(len(e.Value)))
		hasher.Write(buf[:])
		hasher.Write(e.Value)
	}

	var checksum [32]byte
	hasher.Sum(checksum[:0])

	return checksum
}

// compress compresses snapshot data using zstd.
func compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create encoder:\n%w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

// decompress decompresses zstd-compressed snapshot data, failing once the
// output would exceed limit bytes.
func decompress(data []byte, limit uint64) ([]byte, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(limit))
	if err != nil {
		return nil, fmt.Errorf("create decoder:\n%w", err)
	}
	defer decoder.Close()

	return decoder.DecodeAll(data, nil)
}

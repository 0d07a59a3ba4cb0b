package state

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"SnapVoter/internal/storage"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when creating a record whose key is taken.
	ErrAlreadyExists = errors.New("record already exists")
)

// Store holds registrars and weight records, backed by persistent storage.
// Every Update runs alone: reads and writes of one unit are never interleaved
// with another unit, and its writes are committed together or not at all.
type Store struct {
	db *storage.Storage
	mu sync.Mutex // mu serializes units of work
}

// NewStore creates a record store backed by the given storage.
func NewStore(db *storage.Storage) *Store {
	return &Store{db: db}
}

// Update runs fn as one indivisible unit. The staged writes are committed only
// if fn returns nil.
func (s *Store) Update(fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := fn(&Txn{batch: batch}); err != nil {
		return err
	}

	if batch.Empty() {
		return nil
	}

	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit:\n%w", err)
	}

	return nil
}

// View runs fn with a read-only view. Writes staged by fn are discarded.
func (s *Store) View(fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.db.NewBatch()
	defer batch.Close()

	return fn(&Txn{batch: batch})
}

// Entries returns every record, and the clock parameters when set, as raw
// key-value pairs.
func (s *Store) Entries() ([]storage.KeyValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []storage.KeyValue

	for _, prefix := range [][]byte{registrarKeyPrefix, voterWeightPrefix, maxVoterWeightPfx} {
		err := s.db.IteratePrefix(prefix, func(key, value []byte) error {
			entries = append(entries, storage.KeyValue{
				Key:   bytes.Clone(key),
				Value: bytes.Clone(value),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("iterate %s:\n%w", prefix, err)
		}
	}

	clockParams, err := s.db.Get(clockParamsKey)
	if err != nil {
		return nil, fmt.Errorf("read clock params:\n%w", err)
	}
	if clockParams != nil {
		entries = append(entries, storage.KeyValue{Key: bytes.Clone(clockParamsKey), Value: clockParams})
	}

	return entries, nil
}

// Restore writes raw records atomically after checking each one decodes
// under its key prefix. Records already in the store are kept unless the
// entries overwrite them. Clock parameters that differ from the stored ones
// fail the whole restore with ErrClockMismatch.
func (s *Store) Restore(entries []storage.KeyValue) error {
	for i, kv := range entries {
		if err := validateEntry(kv); err != nil {
			return fmt.Errorf("entry %d:\n%w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kv := range entries {
		if !bytes.Equal(kv.Key, clockParamsKey) {
			continue
		}

		stored, err := s.db.Get(clockParamsKey)
		if err != nil {
			return fmt.Errorf("read clock params:\n%w", err)
		}
		if stored != nil && !bytes.Equal(stored, kv.Value) {
			return ErrClockMismatch
		}
	}

	return s.db.SetBatch(entries)
}

// validateEntry checks that a raw record decodes and matches its key.
func validateEntry(kv storage.KeyValue) error {
	switch {
	case bytes.HasPrefix(kv.Key, registrarKeyPrefix):
		r, err := decodeRegistrar(kv.Value)
		if err != nil {
			return err
		}
		return expectKey(kv.Key, registrarKey(r.Realm, r.GoverningTokenMint))

	case bytes.HasPrefix(kv.Key, voterWeightPrefix):
		r, err := decodeVoterWeightRecord(kv.Value)
		if err != nil {
			return err
		}
		return expectKey(kv.Key, voterWeightKey(r.Realm, r.GoverningTokenMint, r.GoverningTokenOwner))

	case bytes.HasPrefix(kv.Key, maxVoterWeightPfx):
		r, err := decodeMaxVoterWeightRecord(kv.Value)
		if err != nil {
			return err
		}
		return expectKey(kv.Key, maxVoterWeightKey(r.Realm, r.GoverningTokenMint))

	case bytes.Equal(kv.Key, clockParamsKey):
		_, err := decodeClockParams(kv.Value)
		return err

	default:
		return fmt.Errorf("%w: unknown key prefix %q", ErrCorruptRecord, kv.Key)
	}
}

// expectKey rejects a record stored under a key that does not match its content.
func expectKey(got, want []byte) error {
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%w: key does not match record", ErrCorruptRecord)
	}
	return nil
}

// Txn is the view of the store inside one unit of work.
type Txn struct {
	batch *storage.Batch
}

// Registrar returns the registrar for (realm, mint).
func (tx *Txn) Registrar(realm, mint Pubkey) (*Registrar, error) {
	data, err := tx.get(registrarKey(realm, mint))
	if err != nil {
		return nil, err
	}

	return decodeRegistrar(data)
}

// CreateRegistrar stores a new registrar. Fails with ErrAlreadyExists if one
// exists for the same (realm, mint).
func (tx *Txn) CreateRegistrar(r *Registrar) error {
	return tx.create(registrarKey(r.Realm, r.GoverningTokenMint), encodeRegistrar(r))
}

// PutRegistrar overwrites a registrar.
func (tx *Txn) PutRegistrar(r *Registrar) error {
	return tx.batch.Set(registrarKey(r.Realm, r.GoverningTokenMint), encodeRegistrar(r))
}

// VoterWeightRecord returns the voter weight record for (realm, mint, owner).
func (tx *Txn) VoterWeightRecord(realm, mint, owner Pubkey) (*VoterWeightRecord, error) {
	data, err := tx.get(voterWeightKey(realm, mint, owner))
	if err != nil {
		return nil, err
	}

	return decodeVoterWeightRecord(data)
}

// CreateVoterWeightRecord stores a new voter weight record.
func (tx *Txn) CreateVoterWeightRecord(r *VoterWeightRecord) error {
	return tx.create(voterWeightKey(r.Realm, r.GoverningTokenMint, r.GoverningTokenOwner), encodeVoterWeightRecord(r))
}

// PutVoterWeightRecord overwrites a voter weight record.
func (tx *Txn) PutVoterWeightRecord(r *VoterWeightRecord) error {
	return tx.batch.Set(voterWeightKey(r.Realm, r.GoverningTokenMint, r.GoverningTokenOwner), encodeVoterWeightRecord(r))
}

// MaxVoterWeightRecord returns the max voter weight record for (realm, mint).
func (tx *Txn) MaxVoterWeightRecord(realm, mint Pubkey) (*MaxVoterWeightRecord, error) {
	data, err := tx.get(maxVoterWeightKey(realm, mint))
	if err != nil {
		return nil, err
	}

	return decodeMaxVoterWeightRecord(data)
}

// CreateMaxVoterWeightRecord stores a new max voter weight record.
func (tx *Txn) CreateMaxVoterWeightRecord(r *MaxVoterWeightRecord) error {
	return tx.create(maxVoterWeightKey(r.Realm, r.GoverningTokenMint), encodeMaxVoterWeightRecord(r))
}

// get reads a key, mapping absence to ErrNotFound.
func (tx *Txn) get(key []byte) ([]byte, error) {
	data, err := tx.batch.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %x:\n%w", key, err)
	}

	if data == nil {
		return nil, ErrNotFound
	}

	return data, nil
}

// create writes a key that must not exist yet.
func (tx *Txn) create(key, value []byte) error {
	existing, err := tx.batch.Get(key)
	if err != nil {
		return fmt.Errorf("read %x:\n%w", key, err)
	}

	if existing != nil {
		return ErrAlreadyExists
	}

	return tx.batch.Set(key, value)
}

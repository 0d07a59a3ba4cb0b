package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// clockParamsKey holds the slot clock parameters of the data directory.
var clockParamsKey = []byte("meta:clock")

// ErrClockMismatch is returned when clock parameters differ from the stored ones.
var ErrClockMismatch = errors.New("clock parameters differ from the stored ones")

// ClockParams fixes how wall time maps to slots. Once stored they never change,
// so slots keep increasing across restarts.
type ClockParams struct {
	Genesis      time.Time     // Genesis is the start of slot 0
	SlotDuration time.Duration // SlotDuration is the length of one slot
}

// Equal reports whether both parameter sets describe the same clock.
func (p ClockParams) Equal(o ClockParams) bool {
	return p.Genesis.Equal(o.Genesis) && p.SlotDuration == o.SlotDuration
}

// String renders the parameters for logs and errors.
func (p ClockParams) String() string {
	return fmt.Sprintf("genesis=%s slot=%s", p.Genesis.UTC().Format(time.RFC3339Nano), p.SlotDuration)
}

// ClockParams returns the stored clock parameters, or ErrNotFound.
func (tx *Txn) ClockParams() (*ClockParams, error) {
	data, err := tx.get(clockParamsKey)
	if err != nil {
		return nil, err
	}

	return decodeClockParams(data)
}

// PutClockParams stores the clock parameters. Fails with ErrClockMismatch if
// different ones are already stored.
func (tx *Txn) PutClockParams(p ClockParams) error {
	if p.SlotDuration <= 0 {
		return fmt.Errorf("slot duration must be positive: %s", p.SlotDuration)
	}

	stored, err := tx.ClockParams()
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return err
	case !stored.Equal(p):
		return fmt.Errorf("%w: stored %s, got %s", ErrClockMismatch, stored, p)
	default:
		return nil
	}

	return tx.batch.Set(clockParamsKey, encodeClockParams(p))
}

// encodeClockParams serializes p as genesis unix nanos (8) + slot nanos (8), big-endian.
func encodeClockParams(p ClockParams) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], uint64(p.Genesis.UnixNano()))
	binary.BigEndian.PutUint64(buf[8:16], uint64(p.SlotDuration))
	return buf
}

// decodeClockParams parses stored clock parameters.
func decodeClockParams(data []byte) (*ClockParams, error) {
	if len(data) != 16 {
		return nil, fmt.Errorf("%w: clock params length %d", ErrCorruptRecord, len(data))
	}

	p := &ClockParams{
		Genesis:      time.Unix(0, int64(binary.BigEndian.Uint64(data[0:8]))).UTC(),
		SlotDuration: time.Duration(binary.BigEndian.Uint64(data[8:16])),
	}

	if p.SlotDuration <= 0 {
		return nil, fmt.Errorf("%w: slot duration %s", ErrCorruptRecord, p.SlotDuration)
	}

	return p, nil
}

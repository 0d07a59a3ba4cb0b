package statesync

import (
	"bytes"
	"fmt"

	"SnapVoter/internal/state"
	"SnapVoter/internal/storage"
)

// Diff lists the record keys that differ between two stores.
type Diff struct {
	OnlyLeft  [][]byte // OnlyLeft are keys present in the left store only
	OnlyRight [][]byte // OnlyRight are keys present in the right store only
	Changed   [][]byte // Changed are keys present in both with different values
}

// Empty reports whether both stores hold the same records.
func (d Diff) Empty() bool {
	return len(d.OnlyLeft) == 0 && len(d.OnlyRight) == 0 && len(d.Changed) == 0
}

// CompareStores diffs every record of two stores.
func CompareStores(left, right *state.Store) (Diff, error) {
	l, err := left.Entries()
	if err != nil {
		return Diff{}, fmt.Errorf("collect left entries:\n%w", err)
	}

	r, err := right.Entries()
	if err != nil {
		return Diff{}, fmt.Errorf("collect right entries:\n%w", err)
	}

	return Compare(l, r), nil
}

// Compare diffs two entry sets. Each list in the result is in key order.
func Compare(left, right []storage.KeyValue) Diff {
	sortEntries(left)
	sortEntries(right)

	var d Diff
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		switch c := bytes.Compare(left[i].Key, right[j].Key); {
		case c < 0:
			d.OnlyLeft = append(d.OnlyLeft, left[i].Key)
			i++
		case c > 0:
			d.OnlyRight = append(d.OnlyRight, right[j].Key)
			j++
		default:
			if !bytes.Equal(left[i].Value, right[j].Value) {
				d.Changed = append(d.Changed, left[i].Key)
			}
			i++
			j++
		}
	}

	for ; i < len(left); i++ {
		d.OnlyLeft = append(d.OnlyLeft, left[i].Key)
	}

	for ; j < len(right); j++ {
		d.OnlyRight = append(d.OnlyRight, right[j].Key)
	}

	return d
}

package phonebook

import (
	"io"
	"sort"
)

// Position is the result of locating a name within a store.
type Position struct {
	// Index is the slot holding the name if Found, otherwise the slot
	// at which the name would have to be inserted to preserve order.
	Index int64
	// Found is true when the slot at Index holds the name.
	Found bool
}

// Locate performs a binary search for name over the slots in r, which must
// be size bytes long. A recordSize < 1 selects DefaultRecordSize.
func Locate(r io.ReaderAt, size int64, recordSize int, name string) (Position, error) {
	s, err := newSlotFile(r, size, recordSize)
	if err != nil {
		return Position{}, err
	}

	buf := fetchBuffer(s.rs)
	defer releaseBuffer(buf)

	return locate(s, buf, name)
}

// locate needs O(log N) slot reads, plus one read to confirm a match.
func locate(s *slotFile, buf []byte, name string) (Position, error) {
	count := s.Count()

	var err error
	pos := sort.Search(int(count), func(i int) bool {
		if err != nil {
			return true
		}

		var ent Entry
		if ent, err = s.ReadEntry(buf, int64(i)); err != nil {
			return true
		}
		return ent.Name >= name
	})
	if err != nil {
		return Position{}, err
	}

	idx := int64(pos)
	if idx == count {
		return Position{Index: idx}, nil
	}

	ent, err := s.ReadEntry(buf, idx)
	if err != nil {
		return Position{}, err
	}
	return Position{Index: idx, Found: ent.Name == name}, nil
}

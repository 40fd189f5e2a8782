package phonebook

import (
	"fmt"
	"io"
)

// GetByName retrieves the entry stored under name. It returns false
// if the name is not in the store.
func (s *Store) GetByName(name string) (Entry, bool, error) {
	f, err := openRead(s.path, s.o.RecordSize)
	if err != nil {
		return Entry{}, false, err
	}
	defer f.Close()

	buf := fetchBuffer(f.rs)
	defer releaseBuffer(buf)

	p, err := locate(f, buf, name)
	if err != nil || !p.Found {
		return Entry{}, false, err
	}

	ent, err := f.ReadEntry(buf, p.Index)
	if err != nil {
		return Entry{}, false, err
	}
	return ent, true, nil
}

// IterateOrderedByName returns an iterator over all entries, in name order.
func (s *Store) IterateOrderedByName() (*Iterator, error) {
	f, err := openRead(s.path, s.o.RecordSize)
	if err != nil {
		return nil, err
	}
	iter := newIterator(f)
	iter.state = stateStreaming
	return iter, nil
}

// IterateOrderedByNameAfter returns an iterator over entries with names
// strictly greater than name, in name order. The name itself does not
// need to be present.
func (s *Store) IterateOrderedByNameAfter(name string) (*Iterator, error) {
	f, err := openRead(s.path, s.o.RecordSize)
	if err != nil {
		return nil, err
	}

	iter := newIterator(f)
	if err := iter.seekAfter(name); err != nil {
		iter.Release()
		return nil, err
	}
	return iter, nil
}

// Verify scans the whole store, decoding every slot and checking that
// names are strictly ascending. It returns the number of entries.
func (s *Store) Verify() (int64, error) {
	iter, err := s.IterateOrderedByName()
	if err != nil {
		return 0, err
	}
	defer iter.Release()

	var n int64
	var prev string
	for iter.Next() {
		name := iter.Entry().Name
		if n != 0 && name <= prev {
			return n, &CorruptRecordError{
				Slot:   n,
				Reason: fmt.Sprintf("name %q does not sort after %q", name, prev),
			}
		}
		prev = name
		n++
	}
	return n, iter.Err()
}

// --------------------------------------------------------------------

type iterState uint8

const (
	statePositioning iterState = iota
	stateStreaming
	stateDone
	stateFailed
)

// Iterator streams entries in name order, reading one slot at a time.
// Iterators hold an open file handle until they are exhausted, fail or
// are released. They read live slot positions and are not restartable.
type Iterator struct {
	f   *slotFile
	buf []byte
	pos int64 // next slot to read

	ent   Entry
	state iterState
	err   error
}

func newIterator(f *slotFile) *Iterator {
	return &Iterator{f: f, buf: fetchBuffer(f.rs)}
}

func (i *Iterator) seekAfter(name string) error {
	p, err := locate(i.f, i.buf, name)
	if err != nil {
		return err
	}

	i.pos = p.Index
	if p.Found {
		i.pos++
	}
	i.state = stateStreaming
	return nil
}

// Next advances the cursor to the next entry and returns true if successful.
func (i *Iterator) Next() bool {
	if i.state != stateStreaming {
		return false
	}

	err := i.f.ReadSlots(i.buf, i.pos)
	if err == io.EOF {
		i.finish(nil)
		return false
	}
	if err == nil {
		i.ent, err = decodeSlot(i.buf, i.pos)
	}
	if err != nil {
		i.finish(err)
		return false
	}

	i.pos++
	return true
}

// Entry returns the current entry.
func (i *Iterator) Entry() Entry { return i.ent }

// Err exposes iterator errors, if any.
func (i *Iterator) Err() error { return i.err }

// Release releases the iterator and frees up resources. The iterator must
// not be used after this method is called.
func (i *Iterator) Release() {
	if i.state == stateDone || i.state == stateFailed {
		return
	}
	i.finish(errReleased)
}

func (i *Iterator) finish(err error) {
	if cerr := i.f.Close(); err == nil {
		err = cerr
	}
	releaseBuffer(i.buf)
	i.buf = nil

	i.ent = Entry{}
	i.err = err
	if err != nil {
		i.state = stateFailed
	} else {
		i.state = stateDone
	}
}

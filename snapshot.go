package phonebook

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Backup streams all slots, in order, to w as a snappy framed stream.
// It returns the number of entries written.
func (s *Store) Backup(w io.Writer) (int64, error) {
	iter, err := s.IterateOrderedByName()
	if err != nil {
		return 0, err
	}
	defer iter.Release()

	slot := fetchBuffer(s.o.RecordSize)
	defer releaseBuffer(slot)

	sw := snappy.NewBufferedWriter(w)
	defer sw.Close()

	var n int64
	for iter.Next() {
		if err := encodeSlot(slot, iter.Entry()); err != nil {
			return n, err
		}
		if _, err := sw.Write(slot); err != nil {
			return n, errors.Wrap(err, "phonebook: backup")
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, err
	}
	if err := sw.Close(); err != nil {
		return n, errors.Wrap(err, "phonebook: backup")
	}
	return n, nil
}

// Restore replaces the store with the slots read from a snappy framed
// stream produced by Backup. Every slot is decoded and checked for order
// before the store file is swapped; on error the store is left untouched.
// It returns the number of entries restored.
func (s *Store) Restore(r io.Reader) (int64, error) {
	tmp, err := ioutil.TempFile(filepath.Dir(s.path), filepath.Base(s.path)+".restore-")
	if err != nil {
		return 0, &StorageIOError{Op: "create", Path: s.path, Err: err}
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	n, err := s.restoreTo(tmp, snappy.NewReader(r))
	if err != nil {
		return n, err
	}

	if s.o.Sync {
		if err := tmp.Sync(); err != nil {
			return n, &StorageIOError{Op: "sync", Path: tmp.Name(), Err: err}
		}
	}
	if err := tmp.Close(); err != nil {
		return n, &StorageIOError{Op: "close", Path: tmp.Name(), Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return n, &StorageIOError{Op: "rename", Path: s.path, Err: err}
	}
	return n, nil
}

func (s *Store) restoreTo(w io.Writer, r io.Reader) (int64, error) {
	slot := fetchBuffer(s.o.RecordSize)
	defer releaseBuffer(slot)

	var n int64
	var prev string
	for ; ; n++ {
		if _, err := io.ReadFull(r, slot); err == io.EOF {
			return n, nil
		} else if err == io.ErrUnexpectedEOF {
			return n, &CorruptRecordError{Slot: n, Reason: "truncated snapshot"}
		} else if err != nil {
			return n, errors.Wrapf(err, "phonebook: restore slot %d", n)
		}

		ent, err := decodeSlot(slot, n)
		if err != nil {
			return n, err
		}
		if n != 0 && ent.Name <= prev {
			return n, &CorruptRecordError{
				Slot:   n,
				Reason: fmt.Sprintf("name %q does not sort after %q", ent.Name, prev),
			}
		}
		prev = ent.Name

		if _, err := w.Write(slot); err != nil {
			return n, &StorageIOError{Op: "write", Path: s.path, Err: err}
		}
	}
}

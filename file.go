package phonebook

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// slotFile is a handle scoped to a single operation.
type slotFile struct {
	r    io.ReaderAt
	f    *os.File // nil for in-memory readers and missing files
	path string

	size int64 // size in bytes
	rs   int   // record size
}

func newSlotFile(r io.ReaderAt, size int64, recordSize int) (*slotFile, error) {
	if recordSize < 1 {
		recordSize = DefaultRecordSize
	}
	s := &slotFile{r: r, size: size, rs: recordSize}
	if err := s.checkSize(); err != nil {
		return nil, err
	}
	return s, nil
}

// openRead opens path for reading. A missing file is an empty store.
func openRead(path string, recordSize int) (*slotFile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &slotFile{path: path, rs: recordSize}, nil
	} else if err != nil {
		return nil, &StorageIOError{Op: "open", Path: path, Err: err}
	}
	return wrapFile(f, path, recordSize)
}

// openWrite opens path for reading and writing, creating it if needed.
func openWrite(path string, recordSize int) (*slotFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, &StorageIOError{Op: "open", Path: path, Err: err}
	}
	return wrapFile(f, path, recordSize)
}

func wrapFile(f *os.File, path string, recordSize int) (*slotFile, error) {
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &StorageIOError{Op: "stat", Path: path, Err: err}
	}

	s := &slotFile{r: f, f: f, path: path, size: fi.Size(), rs: recordSize}
	if err := s.checkSize(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *slotFile) checkSize() error {
	if s.size%int64(s.rs) != 0 {
		return &CorruptRecordError{
			Slot:   -1,
			Reason: fmt.Sprintf("size %d is not a multiple of record size %d", s.size, s.rs),
		}
	}
	return nil
}

// Count returns the number of slots.
func (s *slotFile) Count() int64 { return s.size / int64(s.rs) }

// ReadSlots reads consecutive slots starting at pos into buf, which must be
// a whole number of records long. It returns io.EOF if pos is at or past the
// end of the file.
func (s *slotFile) ReadSlots(buf []byte, pos int64) error {
	if s.r == nil {
		return io.EOF
	}

	n, err := s.r.ReadAt(buf, pos*int64(s.rs))
	if n == len(buf) {
		return nil
	}
	if err == io.EOF {
		if n == 0 {
			return io.EOF
		}
		return &CorruptRecordError{Slot: pos, Reason: fmt.Sprintf("short read of %d/%d bytes", n, len(buf))}
	}
	if err == nil {
		err = io.ErrShortBuffer
	}
	return &StorageIOError{Op: "read", Path: s.path, Err: err}
}

// ReadEntry reads and decodes the slot at pos.
func (s *slotFile) ReadEntry(buf []byte, pos int64) (Entry, error) {
	if err := s.ReadSlots(buf, pos); err == io.EOF {
		return Entry{}, &CorruptRecordError{Slot: pos, Reason: "unexpected end of file"}
	} else if err != nil {
		return Entry{}, err
	}
	return decodeSlot(buf, pos)
}

// WriteSlots writes one or more consecutive slots starting at pos.
func (s *slotFile) WriteSlots(p []byte, pos int64) error {
	off := pos * int64(s.rs)
	if _, err := s.f.WriteAt(p, off); err != nil {
		return &StorageIOError{Op: "write", Path: s.path, Err: err}
	}
	if end := off + int64(len(p)); end > s.size {
		s.size = end
	}
	return nil
}

// Sync commits the file to stable storage.
func (s *slotFile) Sync() error {
	if err := s.f.Sync(); err != nil {
		return &StorageIOError{Op: "sync", Path: s.path, Err: err}
	}
	return nil
}

// Close releases the underlying file, if any.
func (s *slotFile) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f, s.r = nil, nil
	if err := f.Close(); err != nil {
		return &StorageIOError{Op: "close", Path: s.path, Err: err}
	}
	return nil
}

// --------------------------------------------------------------------

var bufPool sync.Pool

func fetchBuffer(sz int) []byte {
	if v := bufPool.Get(); v != nil {
		if p := v.([]byte); sz <= cap(p) {
			return p[:sz]
		}
	}
	return make([]byte, sz)
}

func releaseBuffer(p []byte) {
	if cap(p) != 0 {
		bufPool.Put(p)
	}
}

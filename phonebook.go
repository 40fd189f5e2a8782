package phonebook

import (
	"errors"
	"fmt"
)

// DefaultRecordSize is the default width of a slot in bytes.
const DefaultRecordSize = 64

const (
	fieldSep = ','
	fillByte = ' '
)

var errReleased = errors.New("phonebook: iterator was released")

// Entry is a single phonebook record. Name is the unique lookup and sort key.
type Entry struct {
	Name   string
	Number string
	Type   string
}

func (e Entry) String() string {
	return e.Name + string(fieldSep) + e.Number + string(fieldSep) + e.Type
}

// --------------------------------------------------------------------

// InvalidFieldError is returned when an entry field cannot be stored, either
// because it contains the field separator or because it is not valid UTF-8.
type InvalidFieldError struct {
	Field string
	Value string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("phonebook: invalid %s field %q", e.Field, e.Value)
}

// RecordTooLargeError is returned when an encoded entry does not fit a slot.
type RecordTooLargeError struct {
	Size  int
	Limit int
}

func (e *RecordTooLargeError) Error() string {
	return fmt.Sprintf("phonebook: record of %d bytes exceeds slot size of %d", e.Size, e.Limit)
}

// CorruptRecordError is returned when a slot cannot be decoded, is out of
// order, or when the file is not a whole number of slots. Slot is -1 when
// no slot position is known.
type CorruptRecordError struct {
	Slot   int64
	Reason string
}

func (e *CorruptRecordError) Error() string {
	if e.Slot < 0 {
		return "phonebook: corrupt record, " + e.Reason
	}
	return fmt.Sprintf("phonebook: corrupt record at slot %d, %s", e.Slot, e.Reason)
}

// StorageIOError wraps a failed open, stat, read, write or sync.
type StorageIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageIOError) Error() string {
	return fmt.Sprintf("phonebook: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageIOError) Unwrap() error { return e.Err }

package phonebook

import (
	"bytes"
	"unicode/utf8"
)

// Encode encodes an entry into a slot of exactly recordSize bytes.
// A recordSize < 1 selects DefaultRecordSize.
func Encode(e Entry, recordSize int) ([]byte, error) {
	if recordSize < 1 {
		recordSize = DefaultRecordSize
	}

	slot := make([]byte, recordSize)
	if err := encodeSlot(slot, e); err != nil {
		return nil, err
	}
	return slot, nil
}

// encodeSlot encodes e into slot, padding the remainder with fill bytes.
func encodeSlot(slot []byte, e Entry) error {
	if err := validateField("name", e.Name); err != nil {
		return err
	}
	if err := validateField("number", e.Number); err != nil {
		return err
	}
	if err := validateField("type", e.Type); err != nil {
		return err
	}

	size := len(e.Name) + len(e.Number) + len(e.Type) + 2
	if size > len(slot) {
		return &RecordTooLargeError{Size: size, Limit: len(slot)}
	}

	n := copy(slot, e.Name)
	slot[n] = fieldSep
	n++
	n += copy(slot[n:], e.Number)
	slot[n] = fieldSep
	n++
	n += copy(slot[n:], e.Type)

	for ; n < len(slot); n++ {
		slot[n] = fillByte
	}
	return nil
}

func validateField(field, value string) error {
	if !utf8.ValidString(value) {
		return &InvalidFieldError{Field: field, Value: value}
	}
	for i := 0; i < len(value); i++ {
		if value[i] == fieldSep {
			return &InvalidFieldError{Field: field, Value: value}
		}
	}
	return nil
}

// Decode decodes a slot. Trailing fill bytes are trimmed from the last
// field only, so a Type ending in spaces does not survive a round trip.
func Decode(slot []byte) (Entry, error) {
	return decodeSlot(slot, -1)
}

func decodeSlot(slot []byte, pos int64) (Entry, error) {
	if !utf8.Valid(slot) {
		return Entry{}, &CorruptRecordError{Slot: pos, Reason: "invalid utf-8"}
	}

	i := bytes.IndexByte(slot, fieldSep)
	if i < 0 {
		return Entry{}, &CorruptRecordError{Slot: pos, Reason: "expected 3 fields, got 1"}
	}
	j := bytes.IndexByte(slot[i+1:], fieldSep)
	if j < 0 {
		return Entry{}, &CorruptRecordError{Slot: pos, Reason: "expected 3 fields, got 2"}
	}
	j += i + 1
	if bytes.IndexByte(slot[j+1:], fieldSep) >= 0 {
		return Entry{}, &CorruptRecordError{Slot: pos, Reason: "expected 3 fields, got more"}
	}

	return Entry{
		Name:   string(slot[:i]),
		Number: string(slot[i+1 : j]),
		Type:   string(bytes.TrimRight(slot[j+1:], string(fillByte))),
	}, nil
}

package phonebook

import "io"

// InsertOrUpdate stores e. An existing entry with the same name is
// overwritten in place, otherwise all slots sorting after e.Name are
// shifted one slot towards the end of the file and e is written into the
// gap. Slots before the insertion point are never touched.
//
// There is no rollback. A failure part-way through a shift may leave a
// slot duplicated.
func (s *Store) InsertOrUpdate(e Entry) error {
	slot := fetchBuffer(s.o.RecordSize)
	defer releaseBuffer(slot)

	if err := encodeSlot(slot, e); err != nil {
		return err
	}

	f, err := openWrite(s.path, s.o.RecordSize)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := fetchBuffer(f.rs)
	p, err := locate(f, buf, e.Name)
	releaseBuffer(buf)
	if err != nil {
		return err
	}

	if !p.Found {
		if err := s.shiftTail(f, p.Index); err != nil {
			return err
		}
	}
	if err := f.WriteSlots(slot, p.Index); err != nil {
		return err
	}

	if s.o.Sync {
		if err := f.Sync(); err != nil {
			return err
		}
	}
	return f.Close()
}

// shiftTail moves slots [from, count) to [from+1, count+1), copying at most
// ShiftSlots slots at a time and working backwards so that no slot is
// overwritten before it has been read.
func (s *Store) shiftTail(f *slotFile, from int64) error {
	count := f.Count()
	if from >= count {
		return nil
	}

	chunk := int64(s.o.ShiftSlots)
	if n := count - from; n < chunk {
		chunk = n
	}

	buf := fetchBuffer(int(chunk) * f.rs)
	defer releaseBuffer(buf)

	for hi := count; hi > from; {
		lo := hi - chunk
		if lo < from {
			lo = from
		}

		p := buf[:int(hi-lo)*f.rs]
		if err := f.ReadSlots(p, lo); err == io.EOF {
			return &CorruptRecordError{Slot: lo, Reason: "unexpected end of file"}
		} else if err != nil {
			return err
		}
		if err := f.WriteSlots(p, lo+1); err != nil {
			return err
		}
		hi = lo
	}
	return nil
}

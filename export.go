package phonebook

import (
	"github.com/colinmarc/cdb"
	"github.com/pkg/errors"
)

// ExportCDB writes a constant database to dst, mapping each name to
// "number,type". It returns the number of entries exported.
func (s *Store) ExportCDB(dst string) (int64, error) {
	iter, err := s.IterateOrderedByName()
	if err != nil {
		return 0, err
	}
	defer iter.Release()

	w, err := cdb.Create(dst)
	if err != nil {
		return 0, errors.Wrapf(err, "phonebook: export %s", dst)
	}
	defer w.Close()

	var n int64
	for iter.Next() {
		ent := iter.Entry()
		val := ent.Number + string(fieldSep) + ent.Type
		if err := w.Put([]byte(ent.Name), []byte(val)); err != nil {
			return n, errors.Wrapf(err, "phonebook: export %s", dst)
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, err
	}
	if err := w.Close(); err != nil {
		return n, errors.Wrapf(err, "phonebook: export %s", dst)
	}
	return n, nil
}

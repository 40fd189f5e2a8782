package phonebook

// Store provides access to a phonebook file. It retains nothing but the
// path and options between calls, every operation opens and releases its
// own file handle. Stores do not coordinate writers; callers must not run
// writes concurrently with each other or with an iteration.
type Store struct {
	path string
	o    *Options
}

// New returns a store for the file at path. The file does not need to exist.
func New(path string, o *Options) *Store {
	return &Store{path: path, o: o.norm()}
}

// Path returns the file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of stored entries.
func (s *Store) Len() (int64, error) {
	f, err := openRead(s.path, s.o.RecordSize)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return f.Count(), nil
}

// --------------------------------------------------------------------

// InsertOrUpdate is a shortcut for New(path, nil).InsertOrUpdate(e).
func InsertOrUpdate(path string, e Entry) error {
	return New(path, nil).InsertOrUpdate(e)
}

// GetByName is a shortcut for New(path, nil).GetByName(name).
func GetByName(path, name string) (Entry, bool, error) {
	return New(path, nil).GetByName(name)
}

// IterateOrderedByName is a shortcut for New(path, nil).IterateOrderedByName().
func IterateOrderedByName(path string) (*Iterator, error) {
	return New(path, nil).IterateOrderedByName()
}

// IterateOrderedByNameAfter is a shortcut for
// New(path, nil).IterateOrderedByNameAfter(name).
func IterateOrderedByNameAfter(path, name string) (*Iterator, error) {
	return New(path, nil).IterateOrderedByNameAfter(name)
}

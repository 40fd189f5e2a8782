package phonebook

// Options define store specific options.
type Options struct {
	// RecordSize is the fixed width in bytes of every slot.
	// Default: 64.
	RecordSize int

	// ShiftSlots is the maximum number of slots moved by a single
	// read/write pair when making room for an insert.
	// Default: 64.
	ShiftSlots int

	// Sync forces an fsync after every successful write.
	// Default: false.
	Sync bool
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.RecordSize < 1 {
		oo.RecordSize = DefaultRecordSize
	}
	if oo.ShiftSlots < 1 {
		oo.ShiftSlots = 64
	}

	return &oo
}

package phonebook_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bsm/phonebook"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Writer", func() {
	var dir, path string
	var subject *phonebook.Store

	BeforeEach(func() {
		dir = tempDir()
		path = filepath.Join(dir, "book.db")
		subject = phonebook.New(path, nil)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should create the file on first insert", func() {
		Expect(subject.InsertOrUpdate(alice)).To(Succeed())
		Expect(fileSize(path)).To(Equal(int64(64)))
	})

	It("should keep slots ordered", func() {
		Expect(subject.InsertOrUpdate(alice)).To(Succeed())
		Expect(subject.InsertOrUpdate(carol)).To(Succeed())
		Expect(subject.InsertOrUpdate(bob)).To(Succeed())
		Expect(fileSize(path)).To(Equal(int64(3 * 64)))

		raw, err := ioutil.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(string(encodeAll(0, alice, bob, carol))))
	})

	It("should update in place", func() {
		seedStore(path, alice, carol, bob)

		updated := phonebook.Entry{Name: "Alice", Number: "999", Type: "Mobile"}
		Expect(subject.InsertOrUpdate(updated)).To(Succeed())
		Expect(fileSize(path)).To(Equal(int64(3 * 64)))

		ent, ok, err := subject.GetByName("Alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(ent).To(Equal(updated))

		iter, err := subject.IterateOrderedByName()
		Expect(err).NotTo(HaveOccurred())
		Expect(collect(iter)).To(Equal([]phonebook.Entry{updated, bob, carol}))
	})

	It("should insert at the front and the back", func() {
		seedStore(path, bob)
		Expect(subject.InsertOrUpdate(carol)).To(Succeed())
		Expect(subject.InsertOrUpdate(alice)).To(Succeed())

		iter, err := subject.IterateOrderedByName()
		Expect(err).NotTo(HaveOccurred())
		Expect(collect(iter)).To(Equal([]phonebook.Entry{alice, bob, carol}))
	})

	It("should insert via shortcut", func() {
		Expect(phonebook.InsertOrUpdate(path, bob)).To(Succeed())
		Expect(phonebook.InsertOrUpdate(path, alice)).To(Succeed())
		Expect(subject.Len()).To(Equal(int64(2)))
	})

	It("should leave slots before the insertion point untouched", func() {
		seedStore(path, alice, carol)

		// overwrite Alice's slot behind the store's back, an insert after
		// it must not rewrite it
		raw, err := ioutil.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		marker := encodeAll(0, phonebook.Entry{Name: "Alice", Number: "000", Type: "Marker"})
		copy(raw, marker)
		Expect(ioutil.WriteFile(path, raw, 0644)).To(Succeed())

		Expect(subject.InsertOrUpdate(bob)).To(Succeed())

		raw, err = ioutil.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw[:64])).To(Equal(string(marker)))
	})

	It("should shift across chunk boundaries", func() {
		for _, shift := range []int{1, 2, 3, 7, 64} {
			fname := filepath.Join(dir, fmt.Sprintf("shift-%d.db", shift))
			store := phonebook.New(fname, &phonebook.Options{ShiftSlots: shift})

			// insert in reverse order, every insert shifts the whole file
			for i := 19; i >= 0; i-- {
				Expect(store.InsertOrUpdate(phonebook.Entry{
					Name: fmt.Sprintf("n%02d", i), Number: fmt.Sprint(i), Type: "T",
				})).To(Succeed())
			}

			Expect(store.Verify()).To(Equal(int64(20)), "for shift %d", shift)
			iter, err := store.IterateOrderedByName()
			Expect(err).NotTo(HaveOccurred())
			res := collect(iter)
			Expect(res).To(HaveLen(20))
			for i, ent := range res {
				Expect(ent).To(Equal(phonebook.Entry{Name: fmt.Sprintf("n%02d", i), Number: fmt.Sprint(i), Type: "T"}))
			}
		}
	})

	It("should maintain order over random inserts and updates", func() {
		seedNumbered(subject, 100)
		seedNumbered(subject, 100) // all updates
		Expect(subject.Len()).To(Equal(int64(100)))

		iter, err := subject.IterateOrderedByName()
		Expect(err).NotTo(HaveOccurred())
		res := names(collect(iter))
		Expect(res).To(HaveLen(100))
		Expect(sort.StringsAreSorted(res)).To(BeTrue())

		for i := 0; i < 100; i++ {
			ent, ok, err := subject.GetByName(fmt.Sprintf("name-%04d", i))
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(ent.Number).To(Equal(fmt.Sprintf("%07d", i)))
		}
	})

	It("should support custom record sizes", func() {
		store := phonebook.New(path, &phonebook.Options{RecordSize: 128})
		long := phonebook.Entry{Name: strings.Repeat("x", 90), Number: "1", Type: "Home"}
		Expect(store.InsertOrUpdate(long)).To(Succeed())
		Expect(store.InsertOrUpdate(alice)).To(Succeed())
		Expect(fileSize(path)).To(Equal(int64(256)))

		ent, ok, err := store.GetByName(long.Name)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(ent).To(Equal(long))

		// wrong record size
		_, _, err = subject.GetByName("Alice")
		Expect(err).To(HaveOccurred())
	})

	It("should sync when requested", func() {
		store := phonebook.New(path, &phonebook.Options{Sync: true})
		Expect(store.InsertOrUpdate(alice)).To(Succeed())
		Expect(store.InsertOrUpdate(alice)).To(Succeed())
		Expect(store.Len()).To(Equal(int64(1)))
	})

	It("should reject invalid entries without touching the file", func() {
		seedStore(path, alice)

		err := subject.InsertOrUpdate(phonebook.Entry{Name: "Doe, Jane", Number: "1", Type: "Home"})
		Expect(err).To(BeAssignableToTypeOf(&phonebook.InvalidFieldError{}))

		err = subject.InsertOrUpdate(phonebook.Entry{Name: strings.Repeat("x", 64), Number: "1", Type: "Home"})
		Expect(err).To(Equal(&phonebook.RecordTooLargeError{Size: 71, Limit: 64}))

		Expect(fileSize(path)).To(Equal(int64(64)))
	})

	It("should reject partial files", func() {
		writeRaw(path, "Alice,111,Home")
		err := subject.InsertOrUpdate(bob)
		Expect(err).To(BeAssignableToTypeOf(&phonebook.CorruptRecordError{}))
		Expect(fileSize(path)).To(Equal(int64(14)))
	})

	It("should wrap storage errors", func() {
		err := phonebook.New(filepath.Join(dir, "missing", "book.db"), nil).InsertOrUpdate(alice)
		Expect(err).To(BeAssignableToTypeOf(&phonebook.StorageIOError{}))
		Expect(err.(*phonebook.StorageIOError).Op).To(Equal("open"))
		Expect(os.IsNotExist(err.(*phonebook.StorageIOError).Err)).To(BeTrue())
	})
})

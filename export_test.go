package phonebook_test

import (
	"os"
	"path/filepath"

	"github.com/bsm/phonebook"
	"github.com/colinmarc/cdb"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExportCDB", func() {
	var dir string
	var subject *phonebook.Store

	BeforeEach(func() {
		dir = tempDir()
		subject = seedStore(filepath.Join(dir, "book.db"), alice, carol, bob)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should export", func() {
		dst := filepath.Join(dir, "book.cdb")
		Expect(subject.ExportCDB(dst)).To(Equal(int64(3)))

		db, err := cdb.Open(dst)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		Expect(db.Get([]byte("Alice"))).To(Equal([]byte("111,Home")))
		Expect(db.Get([]byte("Bob"))).To(Equal([]byte("222,Home")))
		Expect(db.Get([]byte("Carol"))).To(Equal([]byte("333,Work")))
		Expect(db.Get([]byte("Dave"))).To(BeNil())
	})

	It("should fail on bad destinations", func() {
		_, err := subject.ExportCDB(filepath.Join(dir, "missing", "book.cdb"))
		Expect(err).To(MatchError(HavePrefix("phonebook: export ")))
	})
})

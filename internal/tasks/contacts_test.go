package tasks_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/task-runner/internal/tasks"
)

type person struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

var _ = Describe("SortContacts", func() {
	var (
		svc   *tasks.Service
		paths tasks.Paths
	)

	sorted := func() []person {
		var out []person
		Expect(json.Unmarshal([]byte(readFile(paths.ContactsOut)), &out)).To(Succeed())
		return out
	}

	BeforeEach(func() {
		svc = newService(GinkgoT().TempDir(), nil, nil)
		paths = svc.Paths()
	})

	It("should sort by last name then first name", func() {
		writeFile(paths.ContactsFile, `[
			{"first_name": "Zoe", "last_name": "Adams", "email": "z@a"},
			{"first_name": "Bob", "last_name": "Young", "email": "b@y"},
			{"first_name": "Amy", "last_name": "Adams", "email": "a@a"}
		]`)

		_, err := svc.SortContacts(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(sorted()).To(Equal([]person{
			{"Amy", "Adams", "a@a"},
			{"Zoe", "Adams", "z@a"},
			{"Bob", "Young", "b@y"},
		}))
	})

	It("should keep equal keys in input order", func() {
		writeFile(paths.ContactsFile, `[
			{"first_name": "Ann", "last_name": "Lee", "email": "first"},
			{"first_name": "Ann", "last_name": "Kim", "email": "x"},
			{"first_name": "Ann", "last_name": "Lee", "email": "second"}
		]`)

		_, err := svc.SortContacts(context.Background())
		Expect(err).NotTo(HaveOccurred())

		out := sorted()
		Expect(out[1].Email).To(Equal("first"))
		Expect(out[2].Email).To(Equal("second"))
	})

	It("should preserve every field and its order with two-space indentation", func() {
		writeFile(paths.ContactsFile, `[{"last_name":"Doe","first_name":"Jane","phone":"+1 555","tags":["a","b"]}]`)

		_, err := svc.SortContacts(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(readFile(paths.ContactsOut)).To(Equal(`[
  {
    "last_name": "Doe",
    "first_name": "Jane",
    "phone": "+1 555",
    "tags": [
      "a",
      "b"
    ]
  }
]`))
	})

	It("should produce a sorted permutation that is stable under re-sorting", func() {
		rng := rand.New(rand.NewSource(7))
		names := []string{"Ng", "Ng", "Smith", "Adams", "adams", "Ólafsson"}
		var in []person
		for i := 0; i < 40; i++ {
			in = append(in, person{
				FirstName: names[rng.Intn(len(names))],
				LastName:  names[rng.Intn(len(names))],
				Email:     fmt.Sprintf("%d@example.com", i),
			})
		}
		data, err := json.Marshal(in)
		Expect(err).NotTo(HaveOccurred())
		writeFile(paths.ContactsFile, string(data))

		_, err = svc.SortContacts(context.Background())
		Expect(err).NotTo(HaveOccurred())
		once := sorted()

		Expect(once).To(ConsistOf(in))
		for i := 1; i < len(once); i++ {
			a, b := once[i-1], once[i]
			Expect(a.LastName < b.LastName || (a.LastName == b.LastName && a.FirstName <= b.FirstName)).To(BeTrue())
		}

		writeFile(paths.ContactsFile, readFile(paths.ContactsOut))
		_, err = svc.SortContacts(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(sorted()).To(Equal(once))
	})

	DescribeTable("fails on malformed records",
		func(content string) {
			writeFile(paths.ContactsFile, content)

			_, err := svc.SortContacts(context.Background())
			Expect(tasks.IsKind(err, tasks.KindParse)).To(BeTrue())
			Expect(paths.ContactsOut).NotTo(BeAnExistingFile())
		},
		Entry("missing last_name", `[{"first_name":"A","last_name":"B"},{"first_name":"C"}]`),
		Entry("missing first_name", `[{"last_name":"B"}]`),
		Entry("non-string name", `[{"first_name":"A","last_name":42}]`),
		Entry("not an array", `{"first_name":"A","last_name":"B"}`),
		Entry("array of scalars", `["A"]`),
		Entry("null document", `null`),
	)

	It("should report a missing contacts file as not found", func() {
		_, err := svc.SortContacts(context.Background())
		Expect(err).To(MatchError(tasks.ErrNotFound))
	})
})

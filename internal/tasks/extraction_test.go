package tasks_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/task-runner/internal/tasks"
)

var _ = Describe("extraction tasks", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("ExtractEmailSender", func() {
		It("should write the extracted sender", func() {
			ex := &fakeExtractor{sender: " alice@example.com\n"}
			svc := newService(dir, nil, ex)
			writeFile(svc.Paths().EmailFile, "From: Alice <alice@example.com>\nHi!\n")

			res, err := svc.ExtractEmailSender(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.NotImplemented).To(BeFalse())
			Expect(res.Value).To(Equal("alice@example.com"))
			Expect(ex.got).To(ContainSubstring("From: Alice"))
			Expect(readFile(svc.Paths().EmailSenderOut)).To(Equal("alice@example.com"))
		})

		It("should report not implemented without an extraction service", func() {
			svc := newService(dir, nil, nil)
			writeFile(svc.Paths().EmailFile, "From: bob@example.com\n")

			res, err := svc.ExtractEmailSender(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.NotImplemented).To(BeTrue())
			Expect(svc.Paths().EmailSenderOut).NotTo(BeAnExistingFile())
		})

		It("should fail when the extraction service fails", func() {
			svc := newService(dir, nil, &fakeExtractor{err: errors.New("service down")})
			writeFile(svc.Paths().EmailFile, "hi\n")

			_, err := svc.ExtractEmailSender(context.Background())
			Expect(err).To(MatchError(ContainSubstring("service down")))
			Expect(svc.Paths().EmailSenderOut).NotTo(BeAnExistingFile())
		})

		It("should report a missing email as not found", func() {
			svc := newService(dir, nil, nil)

			_, err := svc.ExtractEmailSender(context.Background())
			Expect(err).To(MatchError(tasks.ErrNotFound))
		})
	})

	DescribeTable("unimplemented tasks answer without error",
		func(run func(*tasks.Service) (tasks.Result, error), message string) {
			res, err := run(newService(dir, nil, nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.NotImplemented).To(BeTrue())
			Expect(res.Message).To(Equal(message))
		},
		Entry("credit card", func(s *tasks.Service) (tasks.Result, error) {
			return s.ExtractCreditCard(context.Background())
		}, "Credit card extraction not yet implemented."),
		Entry("similar comments", func(s *tasks.Service) (tasks.Result, error) {
			return s.FindSimilarComments(context.Background())
		}, "Finding similar comments not yet implemented."),
	)
})

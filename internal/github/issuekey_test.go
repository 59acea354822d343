package github_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/tracker/internal/github"
)

var _ = Describe("ExtractIssueKeys", func() {
	It("finds a single key", func() {
		Expect(github.ExtractIssueKeys("Fix login redirect, closes BUG-42")).To(Equal([]string{"BUG-42"}))
	})

	It("finds multiple keys in order of first appearance", func() {
		keys := github.ExtractIssueKeys("BUG-7 and BUG-3 are both addressed here")
		Expect(keys).To(Equal([]string{"BUG-7", "BUG-3"}))
	})

	It("uppercases lowercase references and dedupes them against uppercase ones", func() {
		keys := github.ExtractIssueKeys("fixes BUG-1, see bug-1 and BUG-2")
		Expect(keys).To(Equal([]string{"BUG-1", "BUG-2"}))
	})

	It("matches keys embedded in longer tokens", func() {
		// The pattern is unanchored on purpose, so XBUG-12 yields BUG-12.
		Expect(github.ExtractIssueKeys("refactor XBUG-12 handling")).To(Equal([]string{"BUG-12"}))
	})

	It("matches keys across multiline commit messages", func() {
		msg := "Fix crash on empty payload\n\nRoot cause in parser.\nRefs BUG-101 BUG-102"
		Expect(github.ExtractIssueKeys(msg)).To(Equal([]string{"BUG-101", "BUG-102"}))
	})

	It("returns nil when there are no references", func() {
		Expect(github.ExtractIssueKeys("chore: bump dependencies")).To(BeNil())
	})

	It("returns nil for empty input", func() {
		Expect(github.ExtractIssueKeys("")).To(BeNil())
	})

	It("ignores the prefix without a number", func() {
		Expect(github.ExtractIssueKeys("BUG- needs triage")).To(BeNil())
	})

	It("treats repeated mentions of the same key as one", func() {
		Expect(github.ExtractIssueKeys("BUG-5 BUG-5 BUG-5")).To(Equal([]string{"BUG-5"}))
	})
})

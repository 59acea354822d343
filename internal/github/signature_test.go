package github_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/tracker/internal/github"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

var _ = Describe("VerifySignature", func() {
	const secret = "webhook-secret"
	payload := []byte(`{"action":"closed"}`)

	It("accepts a correctly signed body", func() {
		Expect(github.VerifySignature(payload, sign(payload, secret), secret)).To(BeTrue())
	})

	It("rejects a signature computed with a different secret", func() {
		Expect(github.VerifySignature(payload, sign(payload, "other"), secret)).To(BeFalse())
	})

	It("rejects when the body was altered after signing", func() {
		sig := sign(payload, secret)
		Expect(github.VerifySignature([]byte(`{"action":"opened"}`), sig, secret)).To(BeFalse())
	})

	It("rejects a missing signature header", func() {
		Expect(github.VerifySignature(payload, "", secret)).To(BeFalse())
	})

	It("rejects a signature without the sha256= prefix", func() {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(payload)
		bare := hex.EncodeToString(mac.Sum(nil))
		Expect(github.VerifySignature(payload, bare, secret)).To(BeFalse())
	})

	It("rejects garbage in the signature header", func() {
		Expect(github.VerifySignature(payload, "sha256=not-hex", secret)).To(BeFalse())
	})

	It("is sensitive to whitespace in the body", func() {
		sig := sign(payload, secret)
		Expect(github.VerifySignature([]byte(`{"action": "closed"}`), sig, secret)).To(BeFalse())
	})
})

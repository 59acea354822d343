package webhook_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/tracker/internal/github"
	"bugdesk.app/tracker/internal/http/handler/webhook"
)

type fakeReconcileService struct {
	outcome  string
	err      error
	received *github.Delivery
}

func (f *fakeReconcileService) HandleDelivery(ctx context.Context, d github.Delivery) (string, error) {
	f.received = &d
	return f.outcome, f.err
}

var _ = Describe("GitHubWebhookHandler", func() {
	var (
		router    *gin.Engine
		reconcile *fakeReconcileService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		reconcile = &fakeReconcileService{outcome: "push: 1 commits, 1 issue links"}

		router = gin.New()
		h := webhook.NewGitHubWebhookHandler(reconcile)
		router.POST("/webhooks/github", h.HandleEvent)
	})

	post := func(body []byte, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("passes headers and the raw body through to the reconciler", func() {
		body := []byte(`{"ref":"refs/heads/main","commits":[]}`)
		w := post(body, map[string]string{
			"X-GitHub-Delivery":   "guid-123",
			"X-GitHub-Event":      "push",
			"X-Hub-Signature-256": "sha256=abc",
		})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("1 issue links"))

		Expect(reconcile.received).NotTo(BeNil())
		Expect(reconcile.received.ID).To(Equal("guid-123"))
		Expect(reconcile.received.Event).To(Equal("push"))
		Expect(reconcile.received.Signature).To(Equal("sha256=abc"))
		Expect(reconcile.received.Payload).To(Equal(body))
	})

	It("returns 401 when the signature is rejected", func() {
		reconcile.err = github.ErrUnauthorized

		w := post([]byte(`{}`), map[string]string{
			"X-GitHub-Event":      "push",
			"X-Hub-Signature-256": "sha256=wrong",
		})

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 400 for a malformed payload", func() {
		reconcile.err = github.ErrMalformedPayload

		w := post([]byte(`{not json`), map[string]string{
			"X-GitHub-Event":      "push",
			"X-Hub-Signature-256": "sha256=abc",
		})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 500 for processing failures", func() {
		reconcile.err = errors.New("database unavailable")

		w := post([]byte(`{}`), map[string]string{
			"X-GitHub-Event":      "push",
			"X-Hub-Signature-256": "sha256=abc",
		})

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	It("returns 200 for events the reconciler ignores", func() {
		reconcile.outcome = `ignored "star" event`

		w := post([]byte(`{"action":"created"}`), map[string]string{
			"X-GitHub-Event":      "star",
			"X-Hub-Signature-256": "sha256=abc",
		})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("ignored"))
	})
})

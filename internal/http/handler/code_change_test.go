package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/tracker/internal/http/handler"
	"bugdesk.app/tracker/internal/http/middleware"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/store"
)

type fakeCodeChangeStore struct {
	byID map[int64]*model.CodeChange
}

func (f *fakeCodeChangeStore) Upsert(ctx context.Context, change *model.CodeChange) (*model.CodeChange, error) {
	return change, nil
}

func (f *fakeCodeChangeStore) GetByID(ctx context.Context, id int64) (*model.CodeChange, error) {
	if change, ok := f.byID[id]; ok {
		return change, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeCodeChangeStore) ListByIssue(ctx context.Context, issueID int64) ([]model.CodeChange, error) {
	var changes []model.CodeChange
	for _, change := range f.byID {
		changes = append(changes, *change)
	}
	return changes, nil
}

type fakeIssueStoreHTTP struct {
	issue *model.Issue
}

func (f *fakeIssueStoreHTTP) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	return issue, nil
}

func (f *fakeIssueStoreHTTP) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	if f.issue != nil && f.issue.ID == id {
		return f.issue, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeIssueStoreHTTP) GetByKey(ctx context.Context, key string) (*model.Issue, error) {
	return nil, store.ErrNotFound
}

func (f *fakeIssueStoreHTTP) List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, int64, error) {
	return nil, 0, nil
}

func (f *fakeIssueStoreHTTP) UpdateDetails(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	return issue, nil
}

func (f *fakeIssueStoreHTTP) TakeIfNew(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	return nil, store.ErrConflict
}

func (f *fakeIssueStoreHTTP) Assign(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	return nil, store.ErrNotFound
}

func (f *fakeIssueStoreHTTP) UpdateStatusIf(ctx context.Context, id int64, from, to model.Status) (*model.Issue, error) {
	return nil, store.ErrConflict
}

var _ = Describe("CodeChangeHandler", func() {
	var (
		router  *gin.Engine
		changes *fakeCodeChangeStore
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		changes = &fakeCodeChangeStore{byID: map[int64]*model.CodeChange{
			42: {
				ID:         42,
				Type:       model.CodeChangeCommit,
				ExternalID: "abc123",
				Title:      "fix BUG-1 crash",
				URL:        "https://example.com/commit/abc123",
				Author:     "dana",
				OccurredAt: time.Now(),
			},
		}}
		issues := &fakeIssueStoreHTTP{issue: &model.Issue{ID: 1, Key: "BUG-1", Status: model.StatusNew}}

		sessions := &fakeSessionStore{
			user: &model.User{ID: 9, Name: "Dana", Role: model.RoleDev, Active: true},
		}

		h := handler.NewCodeChangeHandler(issues, changes)
		router = gin.New()
		group := router.Group("/api/v1")
		group.Use(middleware.RequireAuth(sessions))
		group.GET("/issues/:id/code-changes", h.ListByIssue)
		group.GET("/code-changes/:id", h.GetByID)
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("GetByID", func() {
		It("returns the code change", func() {
			w := get("/api/v1/code-changes/42")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"external_id":"abc123"`))
		})

		It("returns 404 for an unknown code change", func() {
			w := get("/api/v1/code-changes/404")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a non-numeric id", func() {
			w := get("/api/v1/code-changes/abc")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("ListByIssue", func() {
		It("returns 404 when the issue does not exist", func() {
			w := get("/api/v1/issues/404/code-changes")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("lists changes linked to the issue", func() {
			w := get("/api/v1/issues/1/code-changes")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"external_id":"abc123"`))
		})
	})
})

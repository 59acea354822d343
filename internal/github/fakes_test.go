package github_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/service"
	"bugdesk.app/tracker/internal/store"
)

type fakeIssueStore struct {
	byKey map[string]*model.Issue

	updateStatusCalls []statusCall
}

type statusCall struct {
	issueID  int64
	from, to model.Status
}

func newFakeIssueStore(issues ...*model.Issue) *fakeIssueStore {
	s := &fakeIssueStore{byKey: make(map[string]*model.Issue)}
	for _, issue := range issues {
		s.byKey[issue.Key] = issue
	}
	return s
}

func (s *fakeIssueStore) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	s.byKey[issue.Key] = issue
	return issue, nil
}

func (s *fakeIssueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	for _, issue := range s.byKey {
		if issue.ID == id {
			return issue, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeIssueStore) GetByKey(ctx context.Context, key string) (*model.Issue, error) {
	if issue, ok := s.byKey[key]; ok {
		return issue, nil
	}
	return nil, store.ErrNotFound
}

func (s *fakeIssueStore) List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, int64, error) {
	return nil, 0, nil
}

func (s *fakeIssueStore) UpdateDetails(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	return issue, nil
}

func (s *fakeIssueStore) TakeIfNew(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	return nil, store.ErrConflict
}

func (s *fakeIssueStore) Assign(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	return nil, store.ErrNotFound
}

func (s *fakeIssueStore) UpdateStatusIf(ctx context.Context, id int64, from, to model.Status) (*model.Issue, error) {
	s.updateStatusCalls = append(s.updateStatusCalls, statusCall{issueID: id, from: from, to: to})
	for _, issue := range s.byKey {
		if issue.ID == id {
			if issue.Status != from {
				return nil, store.ErrConflict
			}
			issue.Status = to
			return issue, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeCodeChangeStore struct {
	changes map[string]*model.CodeChange // keyed by type:external_id
	upserts int
}

func newFakeCodeChangeStore() *fakeCodeChangeStore {
	return &fakeCodeChangeStore{changes: make(map[string]*model.CodeChange)}
}

func (s *fakeCodeChangeStore) Upsert(ctx context.Context, change *model.CodeChange) (*model.CodeChange, error) {
	s.upserts++
	key := fmt.Sprintf("%s:%s", change.Type, change.ExternalID)
	if existing, ok := s.changes[key]; ok {
		// Refresh mutable fields, keep the original surrogate ID.
		existing.Title = change.Title
		existing.URL = change.URL
		existing.Author = change.Author
		existing.OccurredAt = change.OccurredAt
		return existing, nil
	}
	s.changes[key] = change
	return change, nil
}

func (s *fakeCodeChangeStore) GetByID(ctx context.Context, id int64) (*model.CodeChange, error) {
	for _, change := range s.changes {
		if change.ID == id {
			return change, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeCodeChangeStore) ListByIssue(ctx context.Context, issueID int64) ([]model.CodeChange, error) {
	return nil, nil
}

type linkKey struct {
	issueID      int64
	codeChangeID int64
}

type fakeIssueLinkStore struct {
	links map[linkKey]struct{}
}

func newFakeIssueLinkStore() *fakeIssueLinkStore {
	return &fakeIssueLinkStore{links: make(map[linkKey]struct{})}
}

func (s *fakeIssueLinkStore) Attach(ctx context.Context, issueID, codeChangeID int64) (bool, error) {
	key := linkKey{issueID: issueID, codeChangeID: codeChangeID}
	if _, ok := s.links[key]; ok {
		return false, nil
	}
	s.links[key] = struct{}{}
	return true, nil
}

type fakeCommentStore struct {
	created []*model.Comment
}

func (s *fakeCommentStore) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	s.created = append(s.created, comment)
	return comment, nil
}

func (s *fakeCommentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	return nil, store.ErrNotFound
}

func (s *fakeCommentStore) Update(ctx context.Context, id int64, body string) (*model.Comment, error) {
	return nil, store.ErrNotFound
}

func (s *fakeCommentStore) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	return nil, nil
}

type fakeDeliveryStore struct {
	seen     map[string]struct{}
	records  int64
	recordFn func(ctx context.Context, delivery *model.WebhookDelivery) (bool, error)
}

func newFakeDeliveryStore() *fakeDeliveryStore {
	return &fakeDeliveryStore{seen: make(map[string]struct{})}
}

func (s *fakeDeliveryStore) Record(ctx context.Context, delivery *model.WebhookDelivery) (bool, error) {
	atomic.AddInt64(&s.records, 1)
	if s.recordFn != nil {
		return s.recordFn(ctx, delivery)
	}
	if _, ok := s.seen[delivery.DeliveryID]; ok {
		return false, nil
	}
	s.seen[delivery.DeliveryID] = struct{}{}
	return true, nil
}

type fakeStoreProvider struct {
	issues      store.IssueStore
	comments    store.CommentStore
	codeChanges store.CodeChangeStore
	issueLinks  store.IssueLinkStore
}

func (p *fakeStoreProvider) Issues() store.IssueStore           { return p.issues }
func (p *fakeStoreProvider) Comments() store.CommentStore       { return p.comments }
func (p *fakeStoreProvider) CodeChanges() store.CodeChangeStore { return p.codeChanges }
func (p *fakeStoreProvider) IssueLinks() store.IssueLinkStore   { return p.issueLinks }

type fakeTxRunner struct {
	provider *fakeStoreProvider
}

func (r *fakeTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	return fn(r.provider)
}

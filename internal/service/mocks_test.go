package service_test

import (
	"context"

	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/store"
)

type mockIssueStore struct {
	createFn         func(ctx context.Context, issue *model.Issue) (*model.Issue, error)
	getByIDFn        func(ctx context.Context, id int64) (*model.Issue, error)
	listFn           func(ctx context.Context, filter store.IssueFilter) ([]model.Issue, int64, error)
	updateDetailsFn  func(ctx context.Context, issue *model.Issue) (*model.Issue, error)
	takeIfNewFn      func(ctx context.Context, id, assigneeID int64) (*model.Issue, error)
	assignFn         func(ctx context.Context, id, assigneeID int64) (*model.Issue, error)
	updateStatusIfFn func(ctx context.Context, id int64, from, to model.Status) (*model.Issue, error)

	capturedIssue *model.Issue
}

func (m *mockIssueStore) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	m.capturedIssue = issue
	if m.createFn != nil {
		return m.createFn(ctx, issue)
	}
	return issue, nil
}

func (m *mockIssueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockIssueStore) GetByKey(ctx context.Context, key string) (*model.Issue, error) {
	return nil, store.ErrNotFound
}

func (m *mockIssueStore) List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockIssueStore) UpdateDetails(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	if m.updateDetailsFn != nil {
		return m.updateDetailsFn(ctx, issue)
	}
	return issue, nil
}

func (m *mockIssueStore) TakeIfNew(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	if m.takeIfNewFn != nil {
		return m.takeIfNewFn(ctx, id, assigneeID)
	}
	return nil, store.ErrConflict
}

func (m *mockIssueStore) Assign(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	if m.assignFn != nil {
		return m.assignFn(ctx, id, assigneeID)
	}
	return nil, store.ErrNotFound
}

func (m *mockIssueStore) UpdateStatusIf(ctx context.Context, id int64, from, to model.Status) (*model.Issue, error) {
	if m.updateStatusIfFn != nil {
		return m.updateStatusIfFn(ctx, id, from, to)
	}
	return nil, store.ErrConflict
}

type mockUserStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
	listFn    func(ctx context.Context, filter store.UserFilter) ([]model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) List(ctx context.Context, filter store.UserFilter) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

type mockWatcherStore struct {
	subscribeFn func(ctx context.Context, issueID, userID int64) (bool, error)

	subscribeCalls []struct{ issueID, userID int64 }
}

func (m *mockWatcherStore) Subscribe(ctx context.Context, issueID, userID int64) (bool, error) {
	m.subscribeCalls = append(m.subscribeCalls, struct{ issueID, userID int64 }{issueID, userID})
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, issueID, userID)
	}
	return true, nil
}

type mockCommentStore struct {
	createFn  func(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	getByIDFn func(ctx context.Context, id int64) (*model.Comment, error)
	updateFn  func(ctx context.Context, id int64, body string) (*model.Comment, error)
	listFn    func(ctx context.Context, issueID int64) ([]model.Comment, error)

	capturedComment *model.Comment
}

func (m *mockCommentStore) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	m.capturedComment = comment
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return comment, nil
}

func (m *mockCommentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockCommentStore) Update(ctx context.Context, id int64, body string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, body)
	}
	return nil, store.ErrNotFound
}

func (m *mockCommentStore) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, issueID)
	}
	return nil, nil
}

package service

import (
	"context"
	"errors"

	"bugdesk.app/tracker/common/id"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/store"
)

// ErrCommentImmutable rejects edits to system comments and to comments the
// actor did not write.
var ErrCommentImmutable = errors.New("comment cannot be edited")

type CommentService interface {
	ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error)
	Create(ctx context.Context, actor model.Actor, issueID int64, body string) (*model.Comment, error)
	Update(ctx context.Context, actor model.Actor, commentID int64, body string) (*model.Comment, error)
}

type commentService struct {
	issues   store.IssueStore
	comments store.CommentStore
}

func NewCommentService(issues store.IssueStore, comments store.CommentStore) CommentService {
	return &commentService{issues: issues, comments: comments}
}

func (s *commentService) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	if _, err := s.issues.GetByID(ctx, issueID); err != nil {
		return nil, err
	}
	return s.comments.ListByIssue(ctx, issueID)
}

func (s *commentService) Create(ctx context.Context, actor model.Actor, issueID int64, body string) (*model.Comment, error) {
	if _, err := s.issues.GetByID(ctx, issueID); err != nil {
		return nil, err
	}

	authorID := actor.UserID
	return s.comments.Create(ctx, &model.Comment{
		ID:       id.New(),
		IssueID:  issueID,
		AuthorID: &authorID,
		Body:     body,
		IsSystem: false,
	})
}

func (s *commentService) Update(ctx context.Context, actor model.Actor, commentID int64, body string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	// System comments are the audit trail; nobody edits them.
	if comment.IsSystem {
		return nil, ErrCommentImmutable
	}
	if comment.AuthorID == nil || *comment.AuthorID != actor.UserID {
		return nil, ErrCommentImmutable
	}

	return s.comments.Update(ctx, commentID, body)
}

package service

import (
	"bugdesk.app/tracker/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
}

func NewServices(stores *store.Stores, txRunner TxRunner) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
	}
}

func (s *Services) Issues() IssueService {
	return NewIssueService(s.stores.Issues(), s.stores.Users(), s.stores.Watchers(), nil)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Comments() CommentService {
	return NewCommentService(s.stores.Issues(), s.stores.Comments())
}

func (s *Services) TxRunner() TxRunner {
	return s.txRunner
}

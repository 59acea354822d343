package store

import (
	"bugdesk.app/tracker/core/db"
)

// Stores provides typed store accessors over a shared querier. Passing a
// pgx.Tx instead of the pool binds every store to that transaction.
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Issues() IssueStore {
	return &issueStore{q: s.q}
}

func (s *Stores) Users() UserStore {
	return &userStore{q: s.q}
}

func (s *Stores) Sessions() SessionStore {
	return &sessionStore{q: s.q}
}

func (s *Stores) Comments() CommentStore {
	return &commentStore{q: s.q}
}

func (s *Stores) CodeChanges() CodeChangeStore {
	return &codeChangeStore{q: s.q}
}

func (s *Stores) Watchers() IssueWatcherStore {
	return &issueWatcherStore{q: s.q}
}

func (s *Stores) IssueLinks() IssueLinkStore {
	return &issueLinkStore{q: s.q}
}

func (s *Stores) WebhookDeliveries() WebhookDeliveryStore {
	return &webhookDeliveryStore{q: s.q}
}

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bugdesk.app/tracker/common/id"
	"bugdesk.app/tracker/common/logger"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/service"
	"bugdesk.app/tracker/internal/store"
)

// Recognized event kinds. Anything else is acknowledged and ignored so new
// GitHub event types never break the endpoint.
const (
	EventPush        = "push"
	EventPullRequest = "pull_request"
)

var (
	// ErrUnauthorized means the delivery's signature did not match the raw
	// body. Nothing is parsed or persisted in that case.
	ErrUnauthorized = errors.New("webhook signature rejected")

	// ErrMalformedPayload means the body could not be decoded for a
	// recognized event kind.
	ErrMalformedPayload = errors.New("malformed webhook payload")
)

// Delivery is one inbound webhook call: headers plus the raw body bytes.
type Delivery struct {
	ID        string // X-GitHub-Delivery
	Event     string // X-GitHub-Event
	Signature string // X-Hub-Signature-256
	Payload   []byte
}

// ReconcileService drives the per-delivery pipeline: verify, extract issue
// keys, upsert the code change, link it to referenced issues, and apply the
// automatic merge transition. Every step is idempotent, so replaying a
// delivery converges on the same end state.
type ReconcileService interface {
	HandleDelivery(ctx context.Context, d Delivery) (string, error)
}

type reconcileService struct {
	secret     string
	issues     store.IssueStore
	changes    store.CodeChangeStore
	deliveries store.WebhookDeliveryStore
	txRunner   service.TxRunner
	logger     *slog.Logger
}

func NewReconcileService(
	secret string,
	issues store.IssueStore,
	changes store.CodeChangeStore,
	deliveries store.WebhookDeliveryStore,
	txRunner service.TxRunner,
	log *slog.Logger,
) ReconcileService {
	if log == nil {
		log = slog.Default()
	}
	return &reconcileService{
		secret:     secret,
		issues:     issues,
		changes:    changes,
		deliveries: deliveries,
		txRunner:   txRunner,
		logger:     log,
	}
}

func (s *reconcileService) HandleDelivery(ctx context.Context, d Delivery) (string, error) {
	// Trust boundary first: nothing is parsed until the raw bytes check out.
	if !VerifySignature(d.Payload, d.Signature, s.secret) {
		return "", ErrUnauthorized
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DeliveryID: logger.Ptr(d.ID),
		Event:      logger.Ptr(d.Event),
		Component:  "tracker.github.reconcile",
	})

	if d.ID != "" {
		created, err := s.deliveries.Record(ctx, &model.WebhookDelivery{
			DeliveryID: d.ID,
			Event:      d.Event,
		})
		if err != nil {
			return "", fmt.Errorf("recording delivery: %w", err)
		}
		if !created {
			// Redelivery. Processing continues: the pipeline is idempotent,
			// and the first attempt may have failed partway through.
			s.logger.InfoContext(ctx, "redelivery of known webhook delivery")
		}
	}

	switch d.Event {
	case EventPush:
		var event PushEvent
		if err := json.Unmarshal(d.Payload, &event); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return s.processPush(ctx, event)

	case EventPullRequest:
		var event PullRequestEvent
		if err := json.Unmarshal(d.Payload, &event); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return s.processPullRequest(ctx, event)

	default:
		return fmt.Sprintf("ignored %q event", d.Event), nil
	}
}

func (s *reconcileService) processPush(ctx context.Context, event PushEvent) (string, error) {
	linked := 0
	for _, commit := range event.Commits {
		keys := ExtractIssueKeys(commit.Message)
		if len(keys) == 0 {
			continue
		}

		author := commit.Author.Username
		if author == "" {
			author = commit.Author.Name
		}

		change, err := s.changes.Upsert(ctx, &model.CodeChange{
			ID:         id.New(),
			Type:       model.CodeChangeCommit,
			ExternalID: commit.ID,
			Title:      firstLine(commit.Message),
			URL:        commit.URL,
			Author:     author,
			OccurredAt: commit.Timestamp,
		})
		if err != nil {
			return "", fmt.Errorf("upserting commit %s: %w", commit.ID, err)
		}

		n, err := s.attachToReferenced(ctx, keys, change.ID, commit.URL)
		if err != nil {
			return "", err
		}
		linked += n
	}

	return fmt.Sprintf("push: %d commits, %d issue links", len(event.Commits), linked), nil
}

func (s *reconcileService) processPullRequest(ctx context.Context, event PullRequestEvent) (string, error) {
	pr := event.PullRequest

	text := pr.Title
	if pr.Body != nil {
		text += " " + *pr.Body
	}
	keys := ExtractIssueKeys(text)
	if len(keys) == 0 {
		return "pull request: no issue references", nil
	}

	change, err := s.changes.Upsert(ctx, &model.CodeChange{
		ID:         id.New(),
		Type:       model.CodeChangePullRequest,
		ExternalID: fmt.Sprintf("pr-%d", pr.Number),
		Title:      pr.Title,
		URL:        pr.HTMLURL,
		Author:     pr.User.Login,
		OccurredAt: pr.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("upserting pull request %d: %w", pr.Number, err)
	}

	linked, err := s.attachToReferenced(ctx, keys, change.ID, pr.HTMLURL)
	if err != nil {
		return "", err
	}

	closed := 0
	if event.Action == "closed" && pr.Merged {
		for _, key := range keys {
			didClose, err := s.autoCloseOnMerge(ctx, key, pr.HTMLURL)
			if err != nil {
				return "", err
			}
			if didClose {
				closed++
			}
		}
	}

	return fmt.Sprintf("pull request: %d issue links, %d auto-closed", linked, closed), nil
}

// attachToReferenced links the change to every issue the keys resolve to.
// Unknown keys are skipped: commit messages routinely reference deleted or
// mistyped keys, and one bad key must not poison the rest of the event.
func (s *reconcileService) attachToReferenced(ctx context.Context, keys []string, codeChangeID int64, sourceURL string) (int, error) {
	linked := 0
	for _, key := range keys {
		issue, err := s.issues.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.logger.DebugContext(ctx, "referenced issue key not found", "key", key)
				continue
			}
			return 0, fmt.Errorf("resolving issue %s: %w", key, err)
		}

		if err := s.attach(ctx, issue.ID, codeChangeID, sourceURL); err != nil {
			return 0, fmt.Errorf("attaching change to %s: %w", key, err)
		}
		linked++
	}
	return linked, nil
}

// attach creates the issue↔change link and its audit comment in one
// transaction. A pre-existing link means a duplicate delivery already did the
// work, so no second comment is written.
func (s *reconcileService) attach(ctx context.Context, issueID, codeChangeID int64, sourceURL string) error {
	return s.txRunner.WithTx(ctx, func(sp service.StoreProvider) error {
		created, err := sp.IssueLinks().Attach(ctx, issueID, codeChangeID)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		_, err = sp.Comments().Create(ctx, &model.Comment{
			ID:       id.New(),
			IssueID:  issueID,
			Body:     fmt.Sprintf("Automatically linked code change: %s", sourceURL),
			IsSystem: true,
		})
		return err
	})
}

// autoCloseOnMerge closes the issue if it is currently READY_FOR_QA and
// writes the audit comment, atomically. Any other status is left alone: a
// merge against an issue still in progress is a linkage fact, not a QA
// verdict. The conditional update also makes replays no-ops, since a closed
// issue no longer matches.
func (s *reconcileService) autoCloseOnMerge(ctx context.Context, key, prURL string) (bool, error) {
	issue, err := s.issues.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	didClose := false
	err = s.txRunner.WithTx(ctx, func(sp service.StoreProvider) error {
		_, err := sp.Issues().UpdateStatusIf(ctx, issue.ID, model.StatusReadyForQA, model.StatusClosed)
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				return nil
			}
			return err
		}

		didClose = true
		_, err = sp.Comments().Create(ctx, &model.Comment{
			ID:       id.New(),
			IssueID:  issue.ID,
			Body:     fmt.Sprintf("Automatically closed by merged pull request: %s", prURL),
			IsSystem: true,
		})
		return err
	})
	if err != nil {
		return false, err
	}

	if didClose {
		s.logger.InfoContext(ctx, "issue auto-closed on merge",
			"issue_id", issue.ID, "key", key, "pr_url", prURL)
	}
	return didClose, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/github"
)

type GitHubWebhookHandler struct {
	reconcile github.ReconcileService
}

func NewGitHubWebhookHandler(reconcile github.ReconcileService) *GitHubWebhookHandler {
	return &GitHubWebhookHandler{reconcile: reconcile}
}

func (h *GitHubWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	delivery := github.Delivery{
		ID:        c.GetHeader("X-GitHub-Delivery"),
		Event:     c.GetHeader("X-GitHub-Event"),
		Signature: c.GetHeader("X-Hub-Signature-256"),
		Payload:   body,
	}

	outcome, err := h.reconcile.HandleDelivery(ctx, delivery)
	if err != nil {
		switch {
		case errors.Is(err, github.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		case errors.Is(err, github.ErrMalformedPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		default:
			slog.ErrorContext(ctx, "failed to process github event",
				"error", err,
				"delivery_id", delivery.ID,
				"event", delivery.Event,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		}
		return
	}

	slog.InfoContext(ctx, "github webhook processed",
		"delivery_id", delivery.ID,
		"event", delivery.Event,
		"outcome", outcome,
	)

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": outcome})
}

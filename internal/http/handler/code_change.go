package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/http/dto"
	"bugdesk.app/tracker/internal/store"
)

type CodeChangeHandler struct {
	issues      store.IssueStore
	codeChanges store.CodeChangeStore
}

func NewCodeChangeHandler(issues store.IssueStore, codeChanges store.CodeChangeStore) *CodeChangeHandler {
	return &CodeChangeHandler{issues: issues, codeChanges: codeChanges}
}

func (h *CodeChangeHandler) GetByID(c *gin.Context) {
	changeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	change, err := h.codeChanges.GetByID(c.Request.Context(), changeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCodeChangeResponse(change))
}

// ListByIssue returns the code changes linked to an issue, most recent
// occurrence first.
func (h *CodeChangeHandler) ListByIssue(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.issues.GetByID(ctx, issueID); err != nil {
		respondError(c, err)
		return
	}

	changes, err := h.codeChanges.ListByIssue(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.CodeChangeResponse, 0, len(changes))
	for i := range changes {
		items = append(items, *dto.ToCodeChangeResponse(&changes[i]))
	}
	c.JSON(http.StatusOK, items)
}

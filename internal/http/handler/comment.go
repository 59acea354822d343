package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/http/dto"
	"bugdesk.app/tracker/internal/http/middleware"
	"bugdesk.app/tracker/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ListByIssue(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByIssue(c.Request.Context(), issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, *dto.ToCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *CommentHandler) Create(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.commentService.Create(ctx, middleware.GetActor(ctx), issueID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := paramID(c, "comment_id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.commentService.Update(ctx, middleware.GetActor(ctx), commentID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

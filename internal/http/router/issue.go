package router

import (
	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/http/handler"
)

func IssueRouter(rg *gin.RouterGroup, issues *handler.IssueHandler, comments *handler.CommentHandler, codeChanges *handler.CodeChangeHandler) {
	rg.POST("", issues.Create)
	rg.GET("", issues.List)
	rg.GET("/:id", issues.GetByID)
	rg.PATCH("/:id", issues.Update)
	rg.POST("/:id/take", issues.Take)
	rg.POST("/:id/assign", issues.Assign)
	rg.POST("/:id/status", issues.ChangeStatus)
	rg.POST("/:id/subscribe", issues.Subscribe)

	rg.GET("/:id/comments", comments.ListByIssue)
	rg.POST("/:id/comments", comments.Create)
	rg.PATCH("/:id/comments/:comment_id", comments.Update)

	rg.GET("/:id/code-changes", codeChanges.ListByIssue)
}

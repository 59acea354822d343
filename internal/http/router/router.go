package router

import (
	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/github"
	"bugdesk.app/tracker/internal/http/handler"
	"bugdesk.app/tracker/internal/http/handler/webhook"
	"bugdesk.app/tracker/internal/http/middleware"
	"bugdesk.app/tracker/internal/service"
	"bugdesk.app/tracker/internal/store"
)

func SetupRoutes(router *gin.Engine, stores *store.Stores, services *service.Services, reconcile github.ReconcileService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Webhook deliveries authenticate by signature, not by session.
	githubHandler := webhook.NewGitHubWebhookHandler(reconcile)
	router.POST("/webhooks/github", githubHandler.HandleEvent)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(stores.Sessions()))
	{
		issueHandler := handler.NewIssueHandler(services.Issues())
		commentHandler := handler.NewCommentHandler(services.Comments())
		codeChangeHandler := handler.NewCodeChangeHandler(stores.Issues(), stores.CodeChanges())
		IssueRouter(v1.Group("/issues"), issueHandler, commentHandler, codeChangeHandler)
		v1.GET("/code-changes/:id", codeChangeHandler.GetByID)

		userHandler := handler.NewUserHandler(services.Users())
		UserRouter(v1.Group("/users"), userHandler)
	}
}

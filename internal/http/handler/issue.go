package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/http/dto"
	"bugdesk.app/tracker/internal/http/middleware"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/service"
	"bugdesk.app/tracker/internal/store"
)

type IssueHandler struct {
	issueService service.IssueService
}

func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

func (h *IssueHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := model.Priority(req.Priority)
	severity := model.Severity(req.Severity)
	if !model.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}
	if !model.ValidSeverity(severity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid severity"})
		return
	}

	issue, err := h.issueService.Create(ctx, middleware.GetActor(ctx), service.CreateIssueParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Severity:    severity,
		Environment: req.Environment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) GetByID(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	issue, err := h.issueService.Get(c.Request.Context(), issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) List(c *gin.Context) {
	filter := store.IssueFilter{
		Search: c.Query("search"),
	}

	if status := c.Query("status"); status != "" {
		if !model.ValidStatus(model.Status(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		filter.Status = model.Status(status)
	}
	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee_id"})
			return
		}
		filter.AssigneeID = &id
	}
	if v := c.Query("reporter_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reporter_id"})
			return
		}
		filter.ReporterID = &id
	}
	if v := c.Query("watcher_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watcher_id"})
			return
		}
		filter.WatcherID = &id
	}
	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		filter.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
			return
		}
		filter.PageSize = size
	}

	filter = filter.Normalize()
	issues, total, err := h.issueService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, *dto.ToIssueResponse(&issues[i]))
	}

	c.JSON(http.StatusOK, dto.IssueListResponse{
		Items:    items,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	})
}

func (h *IssueHandler) Update(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.UpdateIssueParams{
		Title:       req.Title,
		Description: req.Description,
		Environment: req.Environment,
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		if !model.ValidPriority(priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		params.Priority = &priority
	}
	if req.Severity != nil {
		severity := model.Severity(*req.Severity)
		if !model.ValidSeverity(severity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid severity"})
			return
		}
		params.Severity = &severity
	}

	ctx := c.Request.Context()
	issue, err := h.issueService.Update(ctx, middleware.GetActor(ctx), issueID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) Take(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	issue, err := h.issueService.Take(ctx, middleware.GetActor(ctx), issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) Assign(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AssignIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	issue, err := h.issueService.Assign(ctx, middleware.GetActor(ctx), issueID, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) ChangeStatus(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := model.Status(req.Status)
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	ctx := c.Request.Context()
	issue, err := h.issueService.ChangeStatus(ctx, middleware.GetActor(ctx), issueID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) Subscribe(c *gin.Context) {
	issueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.issueService.Subscribe(ctx, middleware.GetActor(ctx), issueID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribed": true})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

package dto

import (
	"time"

	"bugdesk.app/tracker/internal/model"
)

type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"required"`
	Priority    string  `json:"priority" binding:"required"`
	Severity    string  `json:"severity" binding:"required"`
	Environment *string `json:"environment,omitempty" binding:"omitempty,max=255"`
}

type UpdateIssueRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Severity    *string `json:"severity,omitempty"`
	Environment *string `json:"environment,omitempty" binding:"omitempty,max=255"`
}

type AssignIssueRequest struct {
	AssigneeID int64 `json:"assignee_id,string" binding:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type IssueResponse struct {
	ID          int64          `json:"id,string"`
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      model.Status   `json:"status"`
	Priority    model.Priority `json:"priority"`
	Severity    model.Severity `json:"severity"`
	Environment *string        `json:"environment,omitempty"`
	ReporterID  int64          `json:"reporter_id,string"`
	AssigneeID  *int64         `json:"assignee_id,string,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type IssueListResponse struct {
	Items    []IssueResponse `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int64           `json:"total"`
}

func ToIssueResponse(issue *model.Issue) *IssueResponse {
	return &IssueResponse{
		ID:          issue.ID,
		Key:         issue.Key,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      issue.Status,
		Priority:    issue.Priority,
		Severity:    issue.Severity,
		Environment: issue.Environment,
		ReporterID:  issue.ReporterID,
		AssigneeID:  issue.AssigneeID,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}

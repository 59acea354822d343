package dto

import (
	"time"

	"bugdesk.app/tracker/internal/model"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

type CommentResponse struct {
	ID         int64     `json:"id,string"`
	IssueID    int64     `json:"issue_id,string"`
	AuthorID   *int64    `json:"author_id,string,omitempty"`
	AuthorName *string   `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	IsSystem   bool      `json:"is_system"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:         c.ID,
		IssueID:    c.IssueID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Body:       c.Body,
		IsSystem:   c.IsSystem,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type CodeChangeResponse struct {
	ID         int64                `json:"id,string"`
	Type       model.CodeChangeType `json:"type"`
	ExternalID string               `json:"external_id"`
	Title      string               `json:"title"`
	URL        string               `json:"url"`
	Author     string               `json:"author"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func ToCodeChangeResponse(cc *model.CodeChange) *CodeChangeResponse {
	return &CodeChangeResponse{
		ID:         cc.ID,
		Type:       cc.Type,
		ExternalID: cc.ExternalID,
		Title:      cc.Title,
		URL:        cc.URL,
		Author:     cc.Author,
		OccurredAt: cc.OccurredAt,
	}
}

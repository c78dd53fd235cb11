package api

import (
	"time"

	"github.com/itchan-dev/bbs/shared/domain"
)

type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required"`
	Author   string `json:"author" validate:"required"`
	BoardId  int64  `json:"board_id" validate:"required,min=1"`
	ParentId *int64 `json:"parent_id,omitempty" validate:"omitempty,min=1"`
}

// CommentResponse is returned when a comment is created.
type CommentResponse struct {
	Id        int64     `json:"id"`
	BoardId   int64     `json:"board_id"`
	ParentId  *int64    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Depth     int       `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentTreeNode is the read shape of a thread: no ids, no flags.
type CommentTreeNode struct {
	Content   string            `json:"content"`
	Author    string            `json:"author"`
	CreatedAt time.Time         `json:"created_at"`
	Replies   []CommentTreeNode `json:"replies"`
}

type CommentListResponse = PageResponse[CommentTreeNode]

func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		Id:        c.Id,
		BoardId:   c.BoardId,
		ParentId:  c.ParentId,
		Content:   c.Content,
		Author:    c.Author,
		Depth:     c.Depth,
		CreatedAt: c.CreatedAt,
	}
}

func NewCommentTree(comments []domain.Comment) []CommentTreeNode {
	nodes := make([]CommentTreeNode, len(comments))
	for i, c := range comments {
		nodes[i] = CommentTreeNode{
			Content:   c.Content,
			Author:    c.Author,
			CreatedAt: c.CreatedAt,
			Replies:   NewCommentTree(c.Replies),
		}
	}
	return nodes
}

func NewCommentListResponse(res domain.PageResult[domain.Comment]) CommentListResponse {
	return CommentListResponse{Items: NewCommentTree(res.Items), Total: res.Total, Page: res.Page, Limit: res.Limit}
}

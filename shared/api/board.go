package api

import (
	"time"

	"github.com/itchan-dev/bbs/shared/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateBoardRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=2"`
	Content  *string `json:"content,omitempty"`
	Password string  `json:"password" validate:"required,min=4"`
}

type DeleteBoardRequest struct {
	Password string `json:"password" validate:"required"`
}

// PageQuery bounds mirror domain.MaxPage and domain.MaxLimit.
type PageQuery struct {
	Page  int `query:"page" validate:"min=1,max=1000000"`
	Limit int `query:"limit" validate:"min=1,max=50"`
}

type SearchBoardQuery struct {
	Id     *int64  `query:"id" validate:"omitempty,min=1"`
	Author *string `query:"author"`
}

// Response DTOs

// BoardResponse never carries the password or deletion flag.
type BoardResponse struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BoardDetailResponse struct {
	BoardResponse
	ContentHTML string             `json:"content_html"`
	Comments    []CommentTreeNode `json:"comments"`
}

type BoardListResponse = PageResponse[BoardResponse]

type PageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func NewBoardResponse(b domain.BoardMetadata) BoardResponse {
	return BoardResponse{
		Id:        b.Id,
		Title:     b.Title,
		Content:   b.Content,
		Author:    b.Author,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewBoardListResponse(res domain.PageResult[domain.BoardMetadata]) BoardListResponse {
	items := make([]BoardResponse, len(res.Items))
	for i, b := range res.Items {
		items[i] = NewBoardResponse(b)
	}
	return BoardListResponse{Items: items, Total: res.Total, Page: res.Page, Limit: res.Limit}
}

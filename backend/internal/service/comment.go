package service

import (
	"context"
	"errors"

	"github.com/itchan-dev/bbs/backend/internal/notify"
	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
)

type CommentService interface {
	Create(ctx context.Context, content string, author domain.Author, boardId domain.BoardId, parentId *domain.CommentId) (*domain.Comment, error)
	List(ctx context.Context, boardId domain.BoardId, page domain.Page) (*domain.PageResult[domain.Comment], error)
}

type Comment struct {
	storage CommentStorage
	boards  BoardGetter
	checker KeywordChecker
}

type CommentStorage interface {
	CreateComment(ctx context.Context, creationData domain.CommentCreationData) (*domain.Comment, error)
	GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	// ListTopLevelComments pages over depth 0 comments of a live board.
	ListTopLevelComments(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.Comment, int, error)
	ListReplies(ctx context.Context, parentIds []domain.CommentId) ([]domain.Comment, error)
}

type BoardGetter interface {
	GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error)
}

func NewComment(storage CommentStorage, boards BoardGetter, checker KeywordChecker) CommentService {
	return &Comment{storage: storage, boards: boards, checker: checker}
}

func (c *Comment) Create(ctx context.Context, content string, author domain.Author, boardId domain.BoardId, parentId *domain.CommentId) (*domain.Comment, error) {
	if content == "" || author == "" {
		return nil, internal_errors.BadRequest("Required fields missing")
	}
	if _, err := c.boards.GetBoard(ctx, boardId); err != nil {
		return nil, err
	}

	var parent *domain.Comment
	if parentId != nil {
		p, err := c.storage.GetComment(ctx, *parentId)
		if err != nil {
			return nil, err
		}
		if p.BoardId != boardId {
			return nil, internal_errors.BadRequest("Parent comment belongs to another board")
		}
		parent = p
	}
	depth, err := domain.ReplyDepth(parent)
	if err != nil {
		if errors.Is(err, domain.ErrReplyDepthExceeded) {
			return nil, internal_errors.BadRequest(err.Error())
		}
		return nil, err
	}

	comment, err := c.storage.CreateComment(ctx, domain.CommentCreationData{
		BoardId:  boardId,
		ParentId: parentId,
		Content:  content,
		Author:   author,
		Depth:    depth,
	})
	if err != nil {
		return nil, err
	}

	c.checker.Check(notify.Content{Body: comment.Content, Author: comment.Author})
	return comment, nil
}

func (c *Comment) List(ctx context.Context, boardId domain.BoardId, page domain.Page) (*domain.PageResult[domain.Comment], error) {
	page = page.Normalize()
	topLevel, total, err := c.storage.ListTopLevelComments(ctx, boardId, page)
	if err != nil {
		return nil, err
	}

	ids := make([]domain.CommentId, 0, len(topLevel))
	for _, t := range topLevel {
		ids = append(ids, t.Id)
	}
	var replies []domain.Comment
	if len(ids) > 0 {
		if replies, err = c.storage.ListReplies(ctx, ids); err != nil {
			return nil, err
		}
	}

	return &domain.PageResult[domain.Comment]{
		Items: domain.BuildCommentTree(topLevel, replies),
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

package service

import (
	"context"

	"github.com/itchan-dev/bbs/backend/internal/notify"
	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
	"github.com/itchan-dev/bbs/shared/utils"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, title, content string, author domain.Author, password domain.Password) (*domain.Board, error)
	List(ctx context.Context, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error)
	Search(ctx context.Context, filter domain.BoardFilter, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error)
	Get(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	Update(ctx context.Context, id domain.BoardId, patch domain.BoardPatch, password domain.Password) (*domain.Board, error)
	Delete(ctx context.Context, id domain.BoardId, password domain.Password) error
}

type Board struct {
	storage    BoardStorage
	comments   CommentReader
	checker    KeywordChecker
	bcryptCost int
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, creationData domain.BoardCreationData) (*domain.Board, error)
	// ListBoards returns one page of non-deleted boards matching filter and
	// the number of all such boards.
	ListBoards(ctx context.Context, filter domain.BoardFilter, page domain.Page) ([]domain.BoardMetadata, int, error)
	// GetBoard returns NotFound for missing and soft-deleted boards.
	GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	UpdateBoard(ctx context.Context, metadata domain.BoardMetadata) (*domain.Board, error)
	SoftDeleteBoard(ctx context.Context, id domain.BoardId) error
}

// CommentReader loads every comment of a board, flat, in display order.
type CommentReader interface {
	ListBoardComments(ctx context.Context, boardId domain.BoardId) ([]domain.Comment, error)
}

// KeywordChecker is handed new content after it is persisted.
// It must not block and has no way to fail the caller.
type KeywordChecker interface {
	Check(content notify.Content)
}

func NewBoard(storage BoardStorage, comments CommentReader, checker KeywordChecker, bcryptCost int) BoardService {
	return &Board{storage: storage, comments: comments, checker: checker, bcryptCost: bcryptCost}
}

func (b *Board) Create(ctx context.Context, title, content string, author domain.Author, password domain.Password) (*domain.Board, error) {
	if title == "" || content == "" || author == "" || password == "" {
		return nil, internal_errors.BadRequest("Required fields missing")
	}
	hash, err := utils.HashPassword(password, b.bcryptCost)
	if err != nil {
		return nil, err
	}

	board, err := b.storage.CreateBoard(ctx, domain.BoardCreationData{
		Title:        title,
		Content:      content,
		Author:       author,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	b.checker.Check(notify.Content{Title: board.Title, Body: board.Content, Author: board.Author})
	return board, nil
}

func (b *Board) List(ctx context.Context, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error) {
	return b.Search(ctx, domain.BoardFilter{}, page)
}

func (b *Board) Search(ctx context.Context, filter domain.BoardFilter, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error) {
	page = page.Normalize()
	boards, total, err := b.storage.ListBoards(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if boards == nil {
		boards = []domain.BoardMetadata{}
	}
	return &domain.PageResult[domain.BoardMetadata]{Items: boards, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	board, err := b.storage.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := b.comments.ListBoardComments(ctx, id)
	if err != nil {
		return nil, err
	}
	var topLevel, replies []domain.Comment
	for _, c := range comments {
		if c.ParentId == nil {
			topLevel = append(topLevel, c)
		} else {
			replies = append(replies, c)
		}
	}
	board.Comments = domain.BuildCommentTree(topLevel, replies)
	return board, nil
}

func (b *Board) Update(ctx context.Context, id domain.BoardId, patch domain.BoardPatch, password domain.Password) (*domain.Board, error) {
	board, err := b.authorize(ctx, id, password)
	if err != nil {
		return nil, err
	}
	return b.storage.UpdateBoard(ctx, patch.Apply(board.BoardMetadata))
}

func (b *Board) Delete(ctx context.Context, id domain.BoardId, password domain.Password) error {
	if _, err := b.authorize(ctx, id, password); err != nil {
		return err
	}
	return b.storage.SoftDeleteBoard(ctx, id)
}

// authorize loads the board and checks its password. NotFound wins over
// Unauthorized.
func (b *Board) authorize(ctx context.Context, id domain.BoardId, password domain.Password) (*domain.Board, error) {
	board, err := b.storage.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(board.PasswordHash, password) {
		return nil, internal_errors.Unauthorized("Invalid password")
	}
	return board, nil
}

package handler

import (
	"context"

	"github.com/itchan-dev/bbs/shared/domain"
)

type MockBoardService struct {
	MockCreate func(ctx context.Context, title, content, author, password string) (*domain.Board, error)
	MockList   func(ctx context.Context, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error)
	MockSearch func(ctx context.Context, filter domain.BoardFilter, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error)
	MockGet    func(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	MockUpdate func(ctx context.Context, id domain.BoardId, patch domain.BoardPatch, password string) (*domain.Board, error)
	MockDelete func(ctx context.Context, id domain.BoardId, password string) error
}

func (m *MockBoardService) Create(ctx context.Context, title, content, author, password string) (*domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, title, content, author, password)
	}
	return &domain.Board{}, nil
}

func (m *MockBoardService) List(ctx context.Context, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error) {
	if m.MockList != nil {
		return m.MockList(ctx, page)
	}
	return &domain.PageResult[domain.BoardMetadata]{Items: []domain.BoardMetadata{}, Page: page.Page, Limit: page.Limit}, nil
}

func (m *MockBoardService) Search(ctx context.Context, filter domain.BoardFilter, page domain.Page) (*domain.PageResult[domain.BoardMetadata], error) {
	if m.MockSearch != nil {
		return m.MockSearch(ctx, filter, page)
	}
	return &domain.PageResult[domain.BoardMetadata]{Items: []domain.BoardMetadata{}, Page: page.Page, Limit: page.Limit}, nil
}

func (m *MockBoardService) Get(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Board{}, nil
}

func (m *MockBoardService) Update(ctx context.Context, id domain.BoardId, patch domain.BoardPatch, password string) (*domain.Board, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, patch, password)
	}
	return &domain.Board{}, nil
}

func (m *MockBoardService) Delete(ctx context.Context, id domain.BoardId, password string) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id, password)
	}
	return nil
}

type MockCommentService struct {
	MockCreate func(ctx context.Context, content, author string, boardId domain.BoardId, parentId *domain.CommentId) (*domain.Comment, error)
	MockList   func(ctx context.Context, boardId domain.BoardId, page domain.Page) (*domain.PageResult[domain.Comment], error)
}

func (m *MockCommentService) Create(ctx context.Context, content, author string, boardId domain.BoardId, parentId *domain.CommentId) (*domain.Comment, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, content, author, boardId, parentId)
	}
	return &domain.Comment{}, nil
}

func (m *MockCommentService) List(ctx context.Context, boardId domain.BoardId, page domain.Page) (*domain.PageResult[domain.Comment], error) {
	if m.MockList != nil {
		return m.MockList(ctx, boardId, page)
	}
	return &domain.PageResult[domain.Comment]{Items: []domain.Comment{}, Page: page.Page, Limit: page.Limit}, nil
}

type MockAlertService struct {
	MockRegister     func(ctx context.Context, author, keyword string) (*domain.KeywordAlert, error)
	MockListByAuthor func(ctx context.Context, author string) ([]domain.KeywordAlert, error)
	MockDelete       func(ctx context.Context, id domain.AlertId, author string) error
}

func (m *MockAlertService) Register(ctx context.Context, author, keyword string) (*domain.KeywordAlert, error) {
	if m.MockRegister != nil {
		return m.MockRegister(ctx, author, keyword)
	}
	return &domain.KeywordAlert{}, nil
}

func (m *MockAlertService) ListByAuthor(ctx context.Context, author string) ([]domain.KeywordAlert, error) {
	if m.MockListByAuthor != nil {
		return m.MockListByAuthor(ctx, author)
	}
	return []domain.KeywordAlert{}, nil
}

func (m *MockAlertService) Delete(ctx context.Context, id domain.AlertId, author string) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id, author)
	}
	return nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

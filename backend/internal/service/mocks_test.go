package service

import (
	"context"
	"sync"

	"github.com/itchan-dev/bbs/backend/internal/notify"
	"github.com/itchan-dev/bbs/shared/domain"
)

// MockBoardStorage mocks the BoardStorage interface.
type MockBoardStorage struct {
	createBoardFunc     func(ctx context.Context, creationData domain.BoardCreationData) (*domain.Board, error)
	listBoardsFunc      func(ctx context.Context, filter domain.BoardFilter, page domain.Page) ([]domain.BoardMetadata, int, error)
	getBoardFunc        func(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	updateBoardFunc     func(ctx context.Context, metadata domain.BoardMetadata) (*domain.Board, error)
	softDeleteBoardFunc func(ctx context.Context, id domain.BoardId) error

	updateCalled bool
	deleteCalled bool
}

func (m *MockBoardStorage) CreateBoard(ctx context.Context, creationData domain.BoardCreationData) (*domain.Board, error) {
	if m.createBoardFunc != nil {
		return m.createBoardFunc(ctx, creationData)
	}
	return &domain.Board{BoardMetadata: domain.BoardMetadata{Id: 1, Title: creationData.Title, Content: creationData.Content, Author: creationData.Author}}, nil
}

func (m *MockBoardStorage) ListBoards(ctx context.Context, filter domain.BoardFilter, page domain.Page) ([]domain.BoardMetadata, int, error) {
	if m.listBoardsFunc != nil {
		return m.listBoardsFunc(ctx, filter, page)
	}
	return nil, 0, nil
}

func (m *MockBoardStorage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	if m.getBoardFunc != nil {
		return m.getBoardFunc(ctx, id)
	}
	return &domain.Board{BoardMetadata: domain.BoardMetadata{Id: id}}, nil
}

func (m *MockBoardStorage) UpdateBoard(ctx context.Context, metadata domain.BoardMetadata) (*domain.Board, error) {
	m.updateCalled = true
	if m.updateBoardFunc != nil {
		return m.updateBoardFunc(ctx, metadata)
	}
	return &domain.Board{BoardMetadata: metadata}, nil
}

func (m *MockBoardStorage) SoftDeleteBoard(ctx context.Context, id domain.BoardId) error {
	m.deleteCalled = true
	if m.softDeleteBoardFunc != nil {
		return m.softDeleteBoardFunc(ctx, id)
	}
	return nil
}

// MockCommentStorage mocks CommentStorage and CommentReader.
type MockCommentStorage struct {
	createCommentFunc        func(ctx context.Context, creationData domain.CommentCreationData) (*domain.Comment, error)
	getCommentFunc           func(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	listTopLevelCommentsFunc func(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.Comment, int, error)
	listRepliesFunc          func(ctx context.Context, parentIds []domain.CommentId) ([]domain.Comment, error)
	listBoardCommentsFunc    func(ctx context.Context, boardId domain.BoardId) ([]domain.Comment, error)

	createCalled bool
}

func (m *MockCommentStorage) CreateComment(ctx context.Context, creationData domain.CommentCreationData) (*domain.Comment, error) {
	m.createCalled = true
	if m.createCommentFunc != nil {
		return m.createCommentFunc(ctx, creationData)
	}
	return &domain.Comment{
		Id:       1,
		BoardId:  creationData.BoardId,
		ParentId: creationData.ParentId,
		Content:  creationData.Content,
		Author:   creationData.Author,
		Depth:    creationData.Depth,
	}, nil
}

func (m *MockCommentStorage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	if m.getCommentFunc != nil {
		return m.getCommentFunc(ctx, id)
	}
	return &domain.Comment{Id: id}, nil
}

func (m *MockCommentStorage) ListTopLevelComments(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.Comment, int, error) {
	if m.listTopLevelCommentsFunc != nil {
		return m.listTopLevelCommentsFunc(ctx, boardId, page)
	}
	return nil, 0, nil
}

func (m *MockCommentStorage) ListReplies(ctx context.Context, parentIds []domain.CommentId) ([]domain.Comment, error) {
	if m.listRepliesFunc != nil {
		return m.listRepliesFunc(ctx, parentIds)
	}
	return nil, nil
}

func (m *MockCommentStorage) ListBoardComments(ctx context.Context, boardId domain.BoardId) ([]domain.Comment, error) {
	if m.listBoardCommentsFunc != nil {
		return m.listBoardCommentsFunc(ctx, boardId)
	}
	return nil, nil
}

// MockAlertStorage mocks the AlertStorage interface.
type MockAlertStorage struct {
	createAlertFunc        func(ctx context.Context, creationData domain.KeywordAlertCreationData) (*domain.KeywordAlert, error)
	listAlertsByAuthorFunc func(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error)
	deleteAlertFunc        func(ctx context.Context, id domain.AlertId, author domain.Author) error

	createCalled bool
}

func (m *MockAlertStorage) CreateAlert(ctx context.Context, creationData domain.KeywordAlertCreationData) (*domain.KeywordAlert, error) {
	m.createCalled = true
	if m.createAlertFunc != nil {
		return m.createAlertFunc(ctx, creationData)
	}
	return &domain.KeywordAlert{Id: 1, Author: creationData.Author, Keyword: creationData.Keyword}, nil
}

func (m *MockAlertStorage) ListAlertsByAuthor(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error) {
	if m.listAlertsByAuthorFunc != nil {
		return m.listAlertsByAuthorFunc(ctx, author)
	}
	return nil, nil
}

func (m *MockAlertStorage) DeleteAlert(ctx context.Context, id domain.AlertId, author domain.Author) error {
	if m.deleteAlertFunc != nil {
		return m.deleteAlertFunc(ctx, id, author)
	}
	return nil
}

// MockKeywordChecker records every checked content.
type MockKeywordChecker struct {
	mu      sync.Mutex
	checked []notify.Content
}

func (m *MockKeywordChecker) Check(content notify.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checked = append(m.checked, content)
}

func (m *MockKeywordChecker) Checked() []notify.Content {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Content(nil), m.checked...)
}

func ptr[T any](v T) *T { return &v }

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
)

const commentColumns = "c.id, c.board_id, c.parent_id, c.content, c.author, c.depth, c.is_deleted, c.created_at"

func scanComment(row scanner) (*domain.Comment, error) {
	var c domain.Comment
	var parentId sql.NullInt64
	if err := row.Scan(&c.Id, &c.BoardId, &parentId, &c.Content, &c.Author, &c.Depth, &c.IsDeleted, &c.CreatedAt); err != nil {
		return nil, err
	}
	if parentId.Valid {
		c.ParentId = &parentId.Int64
	}
	return &c, nil
}

func collectComments(rows *sql.Rows) ([]domain.Comment, error) {
	defer rows.Close()
	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

func (s *Storage) CreateComment(ctx context.Context, creationData domain.CommentCreationData) (*domain.Comment, error) {
	var parentId sql.NullInt64
	if creationData.ParentId != nil {
		parentId = sql.NullInt64{Int64: *creationData.ParentId, Valid: true}
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO comments (board_id, parent_id, content, author, depth, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		creationData.BoardId, parentId, creationData.Content, creationData.Author, creationData.Depth, s.now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment id: %w", err)
	}
	return s.GetComment(ctx, id)
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments c WHERE c.id = ?", id)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (s *Storage) ListBoardComments(ctx context.Context, boardId domain.BoardId) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments c WHERE c.board_id = ? ORDER BY c.created_at, c.id", boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	return collectComments(rows)
}

func (s *Storage) ListTopLevelComments(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.Comment, int, error) {
	const from = `FROM comments c JOIN boards b ON b.id = c.board_id
		WHERE c.board_id = ? AND c.parent_id IS NULL AND b.is_deleted = 0`

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) "+from, boardId).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+" "+from+" ORDER BY c.created_at, c.id LIMIT ? OFFSET ?",
		boardId, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	comments, err := collectComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *Storage) ListReplies(ctx context.Context, parentIds []domain.CommentId) ([]domain.Comment, error) {
	if len(parentIds) == 0 {
		return []domain.Comment{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(parentIds)), ",")
	args := make([]any, len(parentIds))
	for i, id := range parentIds {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments c WHERE c.parent_id IN ("+placeholders+") ORDER BY c.created_at, c.id",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	return collectComments(rows)
}

package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
	"github.com/lib/pq"
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
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO comments AS c (board_id, parent_id, content, author, depth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns,
		creationData.BoardId, parentId, creationData.Content, creationData.Author, creationData.Depth,
	)
	comment, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments c WHERE c.id = $1", id)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListBoardComments returns top-level comments and replies of a board in
// creation order.
func (s *Storage) ListBoardComments(ctx context.Context, boardId domain.BoardId) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments c
		WHERE c.board_id = $1
		ORDER BY c.created_at, c.id`, boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	return collectComments(rows)
}

func (s *Storage) ListTopLevelComments(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.Comment, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM comments c
		JOIN boards b ON b.id = c.board_id
		WHERE c.board_id = $1 AND c.parent_id IS NULL AND NOT b.is_deleted`, boardId).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments c
		JOIN boards b ON b.id = c.board_id
		WHERE c.board_id = $1 AND c.parent_id IS NULL AND NOT b.is_deleted
		ORDER BY c.created_at, c.id
		LIMIT $2 OFFSET $3`, boardId, page.Limit, page.Offset())
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
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments c
		WHERE c.parent_id = ANY($1)
		ORDER BY c.created_at, c.id`, pq.Array(parentIds))
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	return collectComments(rows)
}

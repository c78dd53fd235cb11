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

const boardColumns = "id, title, content, author, password_hash, is_deleted, created_at, updated_at"

func scanBoard(row scanner) (*domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.Id, &b.Title, &b.Content, &b.Author, &b.PasswordHash, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Storage) CreateBoard(ctx context.Context, creationData domain.BoardCreationData) (*domain.Board, error) {
	now := s.now()
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO boards (title, content, author, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		creationData.Title, creationData.Content, creationData.Author, creationData.PasswordHash, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get board id: %w", err)
	}
	return s.GetBoard(ctx, id)
}

func boardFilterClause(filter domain.BoardFilter) (string, []any) {
	conds := []string{"is_deleted = 0"}
	var args []any
	if filter.Id != nil {
		conds = append(conds, "id = ?")
		args = append(args, *filter.Id)
	}
	if filter.Author != nil && *filter.Author != "" {
		// instr is case-sensitive, unlike LIKE
		conds = append(conds, "instr(author, ?) > 0")
		args = append(args, *filter.Author)
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (s *Storage) ListBoards(ctx context.Context, filter domain.BoardFilter, page domain.Page) ([]domain.BoardMetadata, int, error) {
	where, args := boardFilterClause(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boards "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count boards: %w", err)
	}

	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+boardColumns+" FROM boards "+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.BoardMetadata{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b.BoardMetadata)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate boards: %w", err)
	}
	return boards, total, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+boardColumns+" FROM boards WHERE id = ? AND is_deleted = 0", id)
	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return board, nil
}

func (s *Storage) UpdateBoard(ctx context.Context, metadata domain.BoardMetadata) (*domain.Board, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE boards SET title = ?, content = ?, updated_at = ? WHERE id = ? AND is_deleted = 0",
		metadata.Title, metadata.Content, s.now(), metadata.Id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	if err := requireAffected(result, "Board not found"); err != nil {
		return nil, err
	}
	return s.GetBoard(ctx, metadata.Id)
}

// SoftDeleteBoard flips is_deleted and touches nothing else.
func (s *Storage) SoftDeleteBoard(ctx context.Context, id domain.BoardId) error {
	result, err := s.db.ExecContext(ctx, "UPDATE boards SET is_deleted = 1 WHERE id = ? AND is_deleted = 0", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return requireAffected(result, "Board not found")
}

func requireAffected(result sql.Result, notFound string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return internal_errors.NotFound(notFound)
	}
	return nil
}

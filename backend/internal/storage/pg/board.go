package pg

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
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO boards (title, content, author, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING `+boardColumns,
		creationData.Title, creationData.Content, creationData.Author, creationData.PasswordHash,
	)
	board, err := scanBoard(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}
	return board, nil
}

// boardFilterClause renders the WHERE clause shared by the count and page
// queries. Soft-deleted boards never match.
func boardFilterClause(filter domain.BoardFilter) (string, []any) {
	conds := []string{"NOT is_deleted"}
	var args []any
	if filter.Id != nil {
		args = append(args, *filter.Id)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}
	if filter.Author != nil && *filter.Author != "" {
		args = append(args, *filter.Author)
		conds = append(conds, fmt.Sprintf("strpos(author, $%d) > 0", len(args)))
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
	query := fmt.Sprintf(`
		SELECT %s FROM boards %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, boardColumns, where, len(args)-1, len(args))
	rows, err := s.db.QueryContext(ctx, query, args...)
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
	row := s.db.QueryRowContext(ctx, "SELECT "+boardColumns+" FROM boards WHERE id = $1 AND NOT is_deleted", id)
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
	row := s.db.QueryRowContext(ctx, `
		UPDATE boards SET title = $1, content = $2, updated_at = now()
		WHERE id = $3 AND NOT is_deleted
		RETURNING `+boardColumns,
		metadata.Title, metadata.Content, metadata.Id,
	)
	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// SoftDeleteBoard flips is_deleted and touches nothing else.
func (s *Storage) SoftDeleteBoard(ctx context.Context, id domain.BoardId) error {
	result, err := s.db.ExecContext(ctx, "UPDATE boards SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}
